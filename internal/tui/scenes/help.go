package scenes

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/itrgo/internal/tui/tuistyles"
)

type helpEntry struct {
	keys string
	desc string
}

var helpSections = []struct {
	title   string
	entries []helpEntry
}{
	{"NAVIGATION", []helpEntry{
		{"F2", "Calculator"},
		{"F3", "Profile"},
		{"F4", "Settings"},
		{"F1 / ?", "This help"},
		{"c p s", "Switch scene when no field is being edited"},
		{"esc", "Back"},
		{"q / ctrl+c", "Quit (ctrl+c works everywhere)"},
	}},
	{"CALCULATOR", []helpEntry{
		{"tab / ↓", "Next field"},
		{"shift+tab / ↑", "Previous field"},
		{"enter", "Recalculate and move on"},
		{"ctrl+r", "Reset all fields"},
	}},
	{"PROFILE", []helpEntry{
		{"e", "Edit"},
		{"space", "Toggle a checkbox or cycle gender"},
		{"enter", "Save"},
		{"v", "View the raw store contents"},
		{"x", "Delete the profile"},
	}},
}

// HelpModel renders the key reference
type HelpModel struct {
	styles tuistyles.Styles
}

// NewHelpModel creates the help scene
func NewHelpModel(styles tuistyles.Styles) *HelpModel {
	return &HelpModel{styles: styles}
}

// SetStyles applies a new theme
func (m *HelpModel) SetStyles(styles tuistyles.Styles) {
	m.styles = styles
}

// View renders the help scene
func (m *HelpModel) View() string {
	s := m.styles
	var content strings.Builder

	content.WriteString(s.Title.Render("itrgo - Income Tax Regime Calculator"))
	content.WriteString("\n")
	content.WriteString(s.Subtitle.Render("Amounts are annual and in rupees. Commas are accepted."))
	content.WriteString("\n")

	for _, section := range helpSections {
		content.WriteString("\n")
		content.WriteString(s.Section.Render(section.title))
		content.WriteString("\n")
		for _, e := range section.entries {
			content.WriteString(s.HelpKey.Render(fmt.Sprintf("  %-16s", e.keys)))
			content.WriteString(s.HelpDesc.Render(e.desc))
			content.WriteString("\n")
		}
	}

	return s.Border.Render(strings.TrimRight(content.String(), "\n"))
}
