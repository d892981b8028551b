package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/haffenloher/carposter/pkg/catalog"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// CandidateListModel - Interactive catalog page selection
// =============================================================================

// CandidateListModel is the bubbletea model for interactive candidate selection.
type CandidateListModel struct {
	Candidates []catalog.Candidate
	Cursor     int
	Selected   *catalog.Candidate
}

// NewCandidateListModel creates a new candidate list model.
func NewCandidateListModel(candidates []catalog.Candidate) CandidateListModel {
	return CandidateListModel{Candidates: candidates}
}

func (m CandidateListModel) Init() tea.Cmd {
	return nil
}

func (m CandidateListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Candidates)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = &m.Candidates[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m CandidateListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Catalog Page"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("arrows: navigate  enter: select  q: quit"))
	b.WriteString("\n\n")

	for i, cand := range m.Candidates {
		cursor := "  "
		if i == m.Cursor {
			cursor = "> "
		}

		marker := " "
		if i == 0 {
			marker = StyleSuccess.Render("*")
		}

		line := fmt.Sprintf("%s%s %-24s  %s", cursor, marker, cand.Name, listDimStyle.Render(cand.URL))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s best match first\n", StyleSuccess.Render("*")))

	return b.String()
}

// pickCandidate runs the interactive candidate picker and returns the
// selected page URL, or "" when the user quits without selecting.
func (c *CLI) pickCandidate(brand, model string) (string, error) {
	candidates := catalog.Candidates(brand, model)
	if len(candidates) == 0 {
		return "", nil
	}

	m := NewCandidateListModel(candidates)
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return "", err
	}

	result, ok := final.(CandidateListModel)
	if !ok || result.Selected == nil {
		return "", nil
	}
	return result.Selected.URL, nil
}
