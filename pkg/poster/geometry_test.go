package poster

import "testing"

func TestGeometryDefault(t *testing.T) {
	g := DefaultGeometry()
	if g.Width != 1200 || g.Height != 1600 {
		t.Errorf("DefaultGeometry() = %dx%d, want 1200x1600", g.Width, g.Height)
	}
}

func TestGeometrySpecTop(t *testing.T) {
	g := DefaultGeometry()
	if got := g.SpecTop(); got != 1220 {
		t.Errorf("SpecTop() = %d, want 1220", got)
	}
}

func TestGeometryColumns(t *testing.T) {
	g := DefaultGeometry()

	if got := g.ColumnWidth(); got != 326 {
		t.Errorf("ColumnWidth() = %d, want 326", got)
	}

	tests := []struct {
		col  int
		want int
	}{
		{0, 60},
		{1, 436},
		{2, 812},
	}
	for _, tt := range tests {
		if got := g.ColumnX(tt.col); got != tt.want {
			t.Errorf("ColumnX(%d) = %d, want %d", tt.col, got, tt.want)
		}
	}

	// The last column must end inside the right margin.
	right := g.ColumnX(2) + g.ColumnWidth()
	if right > g.Width-margin {
		t.Errorf("column area ends at %d, want <= %d", right, g.Width-margin)
	}
}

func TestGeometryPhotoBox(t *testing.T) {
	g := DefaultGeometry()
	x, y, w, h := g.PhotoBox(300)

	if x != 80 {
		t.Errorf("x = %d, want 80", x)
	}
	if y != 340 {
		t.Errorf("y = %d, want 340", y)
	}
	if w != 1040 {
		t.Errorf("w = %d, want 1040", w)
	}
	if h != 840 {
		t.Errorf("h = %d, want 840", h)
	}
}

func TestGeometryRows(t *testing.T) {
	g := DefaultGeometry()

	if got := g.FirstRowY(); got != 1240 {
		t.Errorf("FirstRowY() = %d, want 1240", got)
	}
	if got := g.RowY(3); got != 1240+3*42 {
		t.Errorf("RowY(3) = %d, want %d", got, 1240+3*42)
	}
}

func TestGeometryFlagPos(t *testing.T) {
	g := DefaultGeometry()
	x, y := g.FlagPos(2)

	if want := g.ColumnX(2) + g.ColumnWidth() - 36; x != want {
		t.Errorf("flag x = %d, want %d", x, want)
	}
	if want := g.RowY(2) + 12; y != want {
		t.Errorf("flag y = %d, want %d", y, want)
	}
}

func TestScaleToFit(t *testing.T) {
	tests := []struct {
		name           string
		iw, ih, bw, bh int
		want           float64
	}{
		{"wide image", 2000, 1000, 1000, 1000, 0.5},
		{"tall image", 1000, 2000, 1000, 1000, 0.5},
		{"exact fit", 1000, 800, 1000, 800, 1.0},
		{"small image never upscaled", 100, 50, 1000, 800, 1.0},
		{"zero image", 0, 100, 1000, 800, 0},
		{"zero box", 100, 100, 0, 800, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScaleToFit(tt.iw, tt.ih, tt.bw, tt.bh); got != tt.want {
				t.Errorf("ScaleToFit(%d, %d, %d, %d) = %v, want %v",
					tt.iw, tt.ih, tt.bw, tt.bh, got, tt.want)
			}
		})
	}
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"poster.png", FormatPNG},
		{"poster.jpg", FormatJPEG},
		{"poster.jpeg", FormatJPEG},
		{"poster.JPG", FormatJPEG},
		{"poster.webp", FormatPNG},
		{"poster", FormatPNG},
		{"dir.jpg/poster.png", FormatPNG},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := FormatForPath(tt.path); got != tt.want {
				t.Errorf("FormatForPath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
