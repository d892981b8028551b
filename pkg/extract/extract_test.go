package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/haffenloher/carposter/pkg/errors"
	"github.com/haffenloher/carposter/pkg/vehicle"
)

const tablePage = `
<html><body>
<h1>Audi TT RS</h1>
<table>
<tr><th>Model overview</th></tr>
<tr><td>Engine type</td><td>see submodel Coupe</td></tr>
<tr><td>Engine:</td><td>2.5L TFSI inline-5 turbo</td></tr>
<tr><td>Horsepower net:</td><td>394 HP</td></tr>
<tr><td>Horsepower gross:</td><td>500 HP</td></tr>
<tr><td>Torque:</td><td>480 Nm</td></tr>
<tr><td>Curb weight:</td><td>1450 kg</td></tr>
<tr><td>Acceleration 0-100 km/h:</td><td>3.7 s</td></tr>
<tr><td>Top speed:</td><td>250 km/h (electronically limited)</td></tr>
<tr><td>Production years overview</td><td>from model year onward</td></tr>
<tr><td>Production years:</td><td>2016 - 2023</td></tr>
</table>
<img src="/images/logo.png">
<img src="/images/audi_tt_rs_front.jpg">
</body></html>`

func TestFromHTMLTable(t *testing.T) {
	specs, err := FromHTML(tablePage, "https://www.automobile-catalog.com/model/audi/tt_rs.html")
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}

	want := vehicle.SpecificationSet{
		Year:         "2016 - 2023",
		Engine:       "2.5L TFSI inline-5 turbo",
		Power:        "394 HP",
		Torque:       "480 Nm",
		Weight:       "1450 kg",
		Acceleration: "3.7 s",
		TopSpeed:     "250 km/h (electronically limited)",
		ImageURL:     "https://www.automobile-catalog.com/images/audi_tt_rs_front.jpg",
	}
	if specs != want {
		t.Errorf("FromHTML() = %+v, want %+v", specs, want)
	}
}

func TestFromHTMLTableTruncatesLongValues(t *testing.T) {
	long := strings.Repeat("turbocharged ", 10)
	html := `<table><tr><td>Engine:</td><td>` + long + `</td></tr></table>`

	specs, err := FromHTML(html, "")
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}
	if got := len([]rune(specs.Engine)); got != 35 {
		t.Errorf("len(Engine) = %d runes, want 35", got)
	}
	if !strings.HasSuffix(specs.Engine, "…") {
		t.Errorf("Engine = %q, want ellipsis suffix", specs.Engine)
	}
}

func TestFromHTMLRegexFallback(t *testing.T) {
	page := `<html><body><p>
	The Audi TT RS carries a 2.5 L TFSI engine rated at 400 PS with
	480 Nm of torque. Curb weight is 1450 kg. It covers 0-100 km/h in
	3.7 s and reaches a top speed of 250 km/h. Built 2016-2023.
	</p></body></html>`

	specs, err := FromHTML(page, "https://www.automobile-catalog.com/model/audi/tt_rs.html")
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}

	tests := []struct {
		field vehicle.Field
		want  string
	}{
		{vehicle.FieldEngine, "2.5L TFSI"},
		{vehicle.FieldPower, "400 HP"},
		{vehicle.FieldTorque, "480 Nm"},
		{vehicle.FieldWeight, "1450 kg"},
		{vehicle.FieldAcceleration, "3.7 s"},
		{vehicle.FieldTopSpeed, "250 km/h"},
		{vehicle.FieldYear, "2016-2023"},
	}
	for _, tt := range tests {
		if got := specs.Get(tt.field); got != tt.want {
			t.Errorf("Get(%s) = %q, want %q", tt.field, got, tt.want)
		}
	}
}

func TestFromHTMLTorquePrefersMetric(t *testing.T) {
	page := `<p>Torque output: 354 lb-ft which equals 480 Nm.</p>`

	specs, err := FromHTML(page, "")
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}
	if specs.Torque != "480 Nm" {
		t.Errorf("Torque = %q, want %q", specs.Torque, "480 Nm")
	}
}

func TestFromHTMLYearFromURL(t *testing.T) {
	page := `<p>A car with 394 HP and nothing else of note.</p>`

	specs, err := FromHTML(page, "https://www.automobile-catalog.com/model/audi/tt_rs_2016.html")
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}
	if specs.Year != "2016" {
		t.Errorf("Year = %q, want %q", specs.Year, "2016")
	}
}

func TestFromHTMLNoFields(t *testing.T) {
	specs, err := FromHTML(`<html><body><p>Nothing here.</p></body></html>`, "")
	if err == nil {
		t.Fatal("FromHTML() error = nil, want no-fields error")
	}
	if code := errors.GetCode(err); code != errors.ErrCodeNoFields {
		t.Errorf("GetCode() = %q, want %q", code, errors.ErrCodeNoFields)
	}
	if specs.Count() != 0 {
		t.Errorf("Count() = %d, want 0", specs.Count())
	}
}

func TestFieldForLabel(t *testing.T) {
	tests := []struct {
		label string
		want  vehicle.Field
		ok    bool
	}{
		{"engine:", vehicle.FieldEngine, true},
		{"displacement", vehicle.FieldEngine, true},
		{"horsepower net", vehicle.FieldPower, true},
		{"maximum torque", vehicle.FieldTorque, true},
		{"curb weight", vehicle.FieldWeight, true},
		{"acceleration 0-100 km/h", vehicle.FieldAcceleration, true},
		{"top speed", vehicle.FieldTopSpeed, true},
		{"production years", vehicle.FieldYear, true},
		{"engine power", vehicle.FieldEngine, true},
		{"fuel consumption", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := fieldForLabel(tt.label)
			if got != tt.want || ok != tt.ok {
				t.Errorf("fieldForLabel(%q) = (%q, %v), want (%q, %v)", tt.label, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestYearLike(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"range", "2016 - 2023", true},
		{"single", "2019", true},
		{"prose", "from model year onward", false},
		{"empty", "   ", false},
		{"long numeric head", "2016 - 2023 2016 - 2023 (all versions)", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := yearLike(tt.raw); got != tt.want {
				t.Errorf("yearLike(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("NewDocumentFromReader() error = %v", err)
	}
	return doc
}

func TestFindImage(t *testing.T) {
	base := "https://www.automobile-catalog.com/model/audi/tt_rs.html"

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "skips logo",
			html: `<img src="/img/site-logo.png"><img src="/cars/tt_rs.jpg">`,
			want: "https://www.automobile-catalog.com/cars/tt_rs.jpg",
		},
		{
			name: "absolute kept",
			html: `<img src="https://cdn.example.com/photos/tt.jpg">`,
			want: "https://cdn.example.com/photos/tt.jpg",
		},
		{
			name: "relative without slash",
			html: `<img src="gallery/tt_front.jpg">`,
			want: "https://www.automobile-catalog.com/model/audi/gallery/tt_front.jpg",
		},
		{
			name: "all chrome falls back to long src",
			html: `<img src="/assets/header-logo-wide.png"><img src="/i/icon.svg">`,
			want: "https://www.automobile-catalog.com/assets/header-logo-wide.png",
		},
		{
			name: "short srcs yield nothing",
			html: `<img src="a.png"><img src="b.gif">`,
			want: "",
		},
		{
			name: "data uri skipped",
			html: `<img src="data:image/png;base64,iVBORw0KGgo="><img src="/cars/tt_side.jpg">`,
			want: "https://www.automobile-catalog.com/cars/tt_side.jpg",
		},
		{
			name: "no images",
			html: `<p>text only</p>`,
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := findImage(mustDoc(t, tt.html), base)
			if got != tt.want {
				t.Errorf("findImage() = %q, want %q", got, tt.want)
			}
		})
	}
}
