package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/itrgo/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.calculatorModel.SetSize(msg.Width, msg.Height)
		m.profileModel.SetSize(msg.Width, msg.Height)
		m.settingsModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case QuitMsg:
		return m, tea.Quit

	case clearNoticeMsg:
		if msg.id == m.noticeID {
			m.notice = ""
			m.noticeError = false
		}
		return m, nil

	case tuimsg.ErrorMsg:
		return m, m.setNotice("Error: "+msg.Err.Error(), true)

	case tuimsg.ProfileLoadedMsg:
		if msg.Err != nil {
			return m, m.setNotice("Could not load profile: "+msg.Err.Error(), true)
		}
		m.profileModel.SetProfile(msg.Profile)
		m.calculatorModel.SetProfile(msg.Profile)
		return m, nil

	case tuimsg.SaveProfileMsg:
		return m, saveProfileCmd(m.profiles, msg.Profile)

	case tuimsg.ProfileSavedMsg:
		m.profileModel.SetSaveResult(msg.Profile, msg.Err)
		if msg.Err != nil {
			return m, m.setNotice("Could not save profile: "+msg.Err.Error(), true)
		}
		m.calculatorModel.SetProfile(msg.Profile)
		return m, m.setNotice("Profile saved", false)

	case tuimsg.DeleteProfileMsg:
		return m, deleteProfileCmd(m.profiles)

	case tuimsg.ProfileDeletedMsg:
		if msg.Err != nil {
			return m, m.setNotice("Could not delete profile: "+msg.Err.Error(), true)
		}
		m.profileModel.SetProfile(nil)
		m.calculatorModel.SetProfile(nil)
		return m, m.setNotice("Profile deleted", false)

	case tuimsg.DumpStoreMsg:
		return m, dumpStoreCmd(m.profiles)

	case tuimsg.StoreDumpedMsg:
		if msg.Err != nil {
			return m, m.setNotice("Could not read store: "+msg.Err.Error(), true)
		}
		m.profileModel.SetDump(msg.JSON)
		return m, nil

	case tuimsg.ToggleThemeMsg:
		m.setTheme(m.theme.Toggle())
		return m, nil
	}

	// Delegate to scene-specific update handlers
	return m.updateCurrentScene(msg)
}

// capturing reports whether the current scene wants plain keys for text entry
func (m Model) capturing() bool {
	switch m.currentScene {
	case SceneCalculator:
		return m.calculatorModel.Capturing()
	case SceneProfile:
		return m.profileModel.Capturing()
	}
	return false
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Function keys work from any scene, even while typing
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "f1":
		return m, navigate(SceneHelp)
	case "f2":
		return m, navigate(SceneCalculator)
	case "f3":
		return m, navigate(SceneProfile)
	case "f4":
		return m, navigate(SceneSettings)
	}

	if !m.capturing() {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "?":
			return m, navigate(SceneHelp)
		case "c":
			return m, navigate(SceneCalculator)
		case "p":
			return m, navigate(SceneProfile)
		case "s":
			return m, navigate(SceneSettings)
		case "esc":
			if m.currentScene != SceneCalculator {
				back := m.previousScene
				if back == m.currentScene {
					back = SceneCalculator
				}
				return m, navigate(back)
			}
		}
	}

	// Let the current scene handle other keys
	return m.updateCurrentScene(msg)
}

func navigate(scene Scene) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Scene: scene}
	}
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneCalculator:
		m.calculatorModel, cmd = m.calculatorModel.Update(msg)
	case SceneProfile:
		m.profileModel, cmd = m.profileModel.Update(msg)
	case SceneSettings:
		m.settingsModel, cmd = m.settingsModel.Update(msg)
	}
	return m, cmd
}
