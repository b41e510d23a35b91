package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch m.currentScene {
	case SceneCalculator:
		content = m.calculatorModel.View()
	case SceneProfile:
		content = m.profileModel.View()
	case SceneSettings:
		content = m.settingsModel.View()
	case SceneHelp:
		content = m.helpModel.View()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar, status bar, and main container
func (m Model) renderApp(content string) string {
	titleBar := m.renderTitleBar()
	statusBar := m.renderStatusBar()

	return m.styles.App.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		titleBar,
		content,
		statusBar,
	))
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := m.styles.Title.Render("itrgo")
	breadcrumb := m.styles.Subtitle.Render(" / " + m.currentScene.String())

	if p := m.profileModel.Profile(); p != nil {
		breadcrumb += m.styles.Subtitle.Render(" · " + p.Name)
	}

	return title + breadcrumb
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut(m, "F2", "calculator"),
		formatShortcut(m, "F3", "profile"),
		formatShortcut(m, "F4", "settings"),
		formatShortcut(m, "F1", "help"),
		formatShortcut(m, "ctrl+c", "quit"),
	}
	statusText := strings.Join(shortcuts, " • ")

	if m.notice != "" {
		style := m.styles.Info
		if m.noticeError {
			style = m.styles.Error
		}
		statusText = style.Render(m.notice) + "\n" + statusText
	}

	return m.styles.StatusBar.Width(max(m.width-2, 20)).Render(statusText)
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(m Model, key, desc string) string {
	return m.styles.StatusKey.Render(key) + " " + desc
}
