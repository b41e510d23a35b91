package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/compare"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/tui/scenes"
	"github.com/rgehrsitz/itrgo/internal/tui/tuimsg"
	"github.com/rgehrsitz/itrgo/internal/tui/tuistyles"
)

const noticeDuration = 4 * time.Second

var errNoStore = errors.New("no profile store configured")

// ProfileService is the persistence surface the UI needs
type ProfileService interface {
	Load(ctx context.Context) (*domain.Profile, error)
	Save(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
	Delete(ctx context.Context) error
	ExportJSON(ctx context.Context) ([]byte, error)
}

// Options configures a new Model
type Options struct {
	// Theme is "light" or "dark"
	Theme string
	// Profiles may be nil; the profile scene then reports that no store is configured
	Profiles ProfileService
	// StoreInfo is shown on the settings scene
	StoreInfo string
	// Engine defaults to a report engine over the standard regime rules
	Engine *compare.Engine
}

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	theme  tuistyles.Theme
	styles tuistyles.Styles

	profiles ProfileService

	calculatorModel *scenes.CalculatorModel
	profileModel    *scenes.ProfileModel
	settingsModel   *scenes.SettingsModel
	helpModel       *scenes.HelpModel

	// Transient status line message
	notice      string
	noticeError bool
	noticeID    int
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	theme := tuistyles.ThemeByName(opts.Theme)
	styles := tuistyles.NewStyles(theme)

	engine := opts.Engine
	if engine == nil {
		engine = compare.NewEngine(calculation.NewEngine())
	}

	return Model{
		currentScene:    SceneCalculator,
		previousScene:   SceneCalculator,
		theme:           theme,
		styles:          styles,
		profiles:        opts.Profiles,
		calculatorModel: scenes.NewCalculatorModel(engine, styles),
		profileModel:    scenes.NewProfileModel(styles),
		settingsModel:   scenes.NewSettingsModel(styles, opts.StoreInfo),
		helpModel:       scenes.NewHelpModel(styles),
		width:           100,
		height:          40,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.calculatorModel.Init(), loadProfileCmd(m.profiles))
}

// CurrentScene returns the visible scene
func (m Model) CurrentScene() Scene {
	return m.currentScene
}

// Theme returns the active theme
func (m Model) Theme() tuistyles.Theme {
	return m.theme
}

// Notice returns the status line message and whether it reports an error
func (m Model) Notice() (string, bool) {
	return m.notice, m.noticeError
}

// Calculator exposes the calculator scene
func (m Model) Calculator() *scenes.CalculatorModel {
	return m.calculatorModel
}

// ProfileScene exposes the profile scene
func (m Model) ProfileScene() *scenes.ProfileModel {
	return m.profileModel
}

func (m *Model) setTheme(theme tuistyles.Theme) {
	m.theme = theme
	m.styles = tuistyles.NewStyles(theme)
	m.calculatorModel.SetStyles(m.styles)
	m.profileModel.SetStyles(m.styles)
	m.settingsModel.SetStyles(m.styles)
	m.helpModel.SetStyles(m.styles)
}

// setNotice shows msg on the status line and schedules its removal
func (m *Model) setNotice(msg string, isError bool) tea.Cmd {
	m.noticeID++
	m.notice = msg
	m.noticeError = isError
	id := m.noticeID
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return clearNoticeMsg{id: id}
	})
}

// loadProfileCmd returns a command that reads the stored profile
func loadProfileCmd(svc ProfileService) tea.Cmd {
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		p, err := svc.Load(context.Background())
		return tuimsg.ProfileLoadedMsg{Profile: p, Err: err}
	}
}

// saveProfileCmd returns a command that persists p
func saveProfileCmd(svc ProfileService, p domain.Profile) tea.Cmd {
	return func() tea.Msg {
		if svc == nil {
			return tuimsg.ProfileSavedMsg{Err: errNoStore}
		}
		saved, err := svc.Save(context.Background(), &p)
		return tuimsg.ProfileSavedMsg{Profile: saved, Err: err}
	}
}

// deleteProfileCmd returns a command that clears the store
func deleteProfileCmd(svc ProfileService) tea.Cmd {
	return func() tea.Msg {
		if svc == nil {
			return tuimsg.ProfileDeletedMsg{Err: errNoStore}
		}
		return tuimsg.ProfileDeletedMsg{Err: svc.Delete(context.Background())}
	}
}

// dumpStoreCmd returns a command that exports the store as JSON
func dumpStoreCmd(svc ProfileService) tea.Cmd {
	return func() tea.Msg {
		if svc == nil {
			return tuimsg.StoreDumpedMsg{Err: errNoStore}
		}
		data, err := svc.ExportJSON(context.Background())
		return tuimsg.StoreDumpedMsg{JSON: string(data), Err: err}
	}
}
