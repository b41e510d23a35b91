package scenes

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/itrgo/internal/tui/tuimsg"
	"github.com/rgehrsitz/itrgo/internal/tui/tuistyles"
)

// SettingsModel shows the theme toggle and where data is kept
type SettingsModel struct {
	storeInfo string
	styles    tuistyles.Styles
	width     int
	height    int
}

// NewSettingsModel creates the settings scene
func NewSettingsModel(styles tuistyles.Styles, storeInfo string) *SettingsModel {
	return &SettingsModel{styles: styles, storeInfo: storeInfo}
}

// SetStyles applies a new theme
func (m *SettingsModel) SetStyles(styles tuistyles.Styles) {
	m.styles = styles
}

// SetSize updates the scene dimensions
func (m *SettingsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the settings scene
func (m *SettingsModel) Update(msg tea.Msg) (*SettingsModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case " ", "enter", "d":
			return m, emit(tuimsg.ToggleThemeMsg{})
		}
	}
	return m, nil
}

// View renders the settings scene
func (m *SettingsModel) View() string {
	s := m.styles
	var content strings.Builder

	content.WriteString(s.Title.Render("Settings"))
	content.WriteString("\n\n")

	content.WriteString(s.SelectedItem.Render("> Dark mode  "))
	content.WriteString(checkbox(s.Theme.IsDark()))
	content.WriteString("\n")
	content.WriteString(s.Subtitle.Render("  press space to toggle"))
	content.WriteString("\n\n")

	content.WriteString(s.Section.Render("Data"))
	content.WriteString("\n")
	info := m.storeInfo
	if info == "" {
		info = "no profile store configured"
	}
	content.WriteString(s.Label.Render("Profile store  "))
	content.WriteString(s.Value.Render(info))

	return s.Border.Render(content.String())
}
