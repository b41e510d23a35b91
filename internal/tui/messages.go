package tui

// Scene represents different screens in the TUI
type Scene int

const (
	SceneCalculator Scene = iota
	SceneProfile
	SceneSettings
	SceneHelp
)

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneCalculator:
		return "Calculator"
	case SceneProfile:
		return "Profile"
	case SceneSettings:
		return "Settings"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// QuitMsg signals the application should exit
type QuitMsg struct{}

// clearNoticeMsg removes a transient notice once it has been shown
type clearNoticeMsg struct {
	id int
}
