package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/tui/tuimsg"
	"github.com/rgehrsitz/itrgo/mocks"
)

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return updated.(Model)
}

func press(t *testing.T, m Model, k tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(tea.KeyMsg{Type: k})
	return updated.(Model), cmd
}

// run executes cmd and feeds its message back into the model
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	updated, _ := m.Update(cmd())
	return updated.(Model)
}

func TestModel_CalculatorRecomputesOnKeystroke(t *testing.T) {
	m := NewModel(Options{})

	m = typeText(t, m, "1200000")
	m, _ = press(t, m, tea.KeyTab)
	m = typeText(t, m, "150000")
	m, _ = press(t, m, tea.KeyTab)
	m = typeText(t, m, "25000")

	report := m.Calculator().Report()
	require.NotNil(t, report)
	assert.True(t, report.Old.TotalTaxWithCess.Equal(decimal.NewFromInt(111800)))
	assert.True(t, report.New.TotalTaxWithCess.Equal(decimal.NewFromInt(85800)))
	assert.Equal(t, domain.RegimeNew, report.Comparison.Cheaper)
	assert.Contains(t, m.View(), "₹26,000")
}

func TestModel_CalculatorReset(t *testing.T) {
	m := NewModel(Options{})
	m = typeText(t, m, "900000")
	require.True(t, m.Calculator().Report().Inputs.GrossIncome.IsPositive())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m = updated.(Model)

	assert.True(t, m.Calculator().Report().Inputs.GrossIncome.IsZero())
	assert.Equal(t, "", m.Calculator().Raw().GrossIncome)
}

func TestModel_LettersGoToFieldsOnCalculator(t *testing.T) {
	m := NewModel(Options{})
	m = typeText(t, m, "q")

	assert.Equal(t, SceneCalculator, m.CurrentScene())
	assert.Equal(t, "q", m.Calculator().Raw().GrossIncome)
	assert.NotEmpty(t, m.Calculator().Report().Warnings)
}

func TestModel_FunctionKeyNavigation(t *testing.T) {
	m := NewModel(Options{})

	m, cmd := press(t, m, tea.KeyF4)
	m = run(t, m, cmd)
	assert.Equal(t, SceneSettings, m.CurrentScene())

	m, cmd = press(t, m, tea.KeyF3)
	m = run(t, m, cmd)
	assert.Equal(t, SceneProfile, m.CurrentScene())

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = run(t, updated.(Model), cmd)
	assert.Equal(t, SceneSettings, m.CurrentScene())
}

func TestModel_ThemeToggle(t *testing.T) {
	m := NewModel(Options{Theme: "light"})
	assert.False(t, m.Theme().IsDark())

	m, cmd := press(t, m, tea.KeyF4)
	m = run(t, m, cmd)
	m, cmd = press(t, m, tea.KeySpace)
	m = run(t, m, cmd)

	assert.True(t, m.Theme().IsDark())
	assert.Contains(t, m.View(), "[x]")
}

func TestModel_LoadsProfileOnInit(t *testing.T) {
	svc := new(mocks.MockProfileService)
	p := &domain.Profile{ID: uuid.New(), Name: "Asha Rao"}
	svc.On("Load", mock.Anything).Return(p, nil)

	m := NewModel(Options{Profiles: svc})
	msg := loadProfileCmd(svc)()
	updated, _ := m.Update(msg)
	m = updated.(Model)

	assert.Equal(t, p, m.ProfileScene().Profile())
	assert.Contains(t, m.View(), "Asha Rao")
	svc.AssertExpectations(t)
}

func TestModel_LoadFailureShowsNotice(t *testing.T) {
	m := NewModel(Options{})
	updated, _ := m.Update(tuimsg.ProfileLoadedMsg{Err: errors.New("disk gone")})
	m = updated.(Model)

	notice, isErr := m.Notice()
	assert.True(t, isErr)
	assert.Contains(t, notice, "disk gone")
	assert.Nil(t, m.ProfileScene().Profile())
}

func TestModel_SaveProfileFlow(t *testing.T) {
	svc := new(mocks.MockProfileService)
	saved := &domain.Profile{ID: uuid.New(), Name: "Asha", Salaried: true}
	svc.On("Save", mock.Anything, mock.MatchedBy(func(p *domain.Profile) bool {
		return p.Name == "Asha" && p.Salaried && p.DateOfBirth != nil
	})).Return(saved, nil)

	m := NewModel(Options{Profiles: svc})
	m, cmd := press(t, m, tea.KeyF3)
	m = run(t, m, cmd)

	m = typeText(t, m, "e")
	require.True(t, m.ProfileScene().Editing())

	m = typeText(t, m, "Asha")
	m, _ = press(t, m, tea.KeyTab) // gender
	m, _ = press(t, m, tea.KeyTab) // dob
	m = typeText(t, m, "1990-06-15")
	m, _ = press(t, m, tea.KeyTab) // salaried
	m, _ = press(t, m, tea.KeySpace)

	m, cmd = press(t, m, tea.KeyEnter)
	require.NotNil(t, cmd)
	updated, saveCmd := m.Update(cmd()) // SaveProfileMsg
	m = run(t, updated.(Model), saveCmd) // ProfileSavedMsg

	assert.False(t, m.ProfileScene().Editing())
	assert.Equal(t, saved, m.ProfileScene().Profile())
	notice, isErr := m.Notice()
	assert.False(t, isErr)
	assert.Equal(t, "Profile saved", notice)
	svc.AssertExpectations(t)
}

func TestModel_SaveFailureKeepsForm(t *testing.T) {
	svc := new(mocks.MockProfileService)
	svc.On("Save", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidProfile)

	m := NewModel(Options{Profiles: svc})
	m, cmd := press(t, m, tea.KeyF3)
	m = run(t, m, cmd)
	m = typeText(t, m, "e")
	m = typeText(t, m, "Asha")

	m, cmd = press(t, m, tea.KeyEnter)
	updated, saveCmd := m.Update(cmd())
	m = run(t, updated.(Model), saveCmd)

	assert.True(t, m.ProfileScene().Editing())
	assert.Nil(t, m.ProfileScene().Profile())
	assert.Contains(t, m.View(), "invalid profile")
}

func TestModel_DumpStore(t *testing.T) {
	svc := new(mocks.MockProfileService)
	svc.On("ExportJSON", mock.Anything).Return([]byte(`{"profiles": [], "totalProfiles": 0}`), nil)

	m := NewModel(Options{Profiles: svc})
	m, cmd := press(t, m, tea.KeyF3)
	m = run(t, m, cmd)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("v")})
	updated, dumpCmd := updated.(Model).Update(cmd()) // DumpStoreMsg
	m = run(t, updated.(Model), dumpCmd)
	assert.Contains(t, m.View(), "totalProfiles")
	svc.AssertExpectations(t)
}

func TestModel_NoStoreConfigured(t *testing.T) {
	m := NewModel(Options{})
	msg := saveProfileCmd(nil, domain.Profile{Name: "x"})()
	updated, _ := m.Update(msg)
	m = updated.(Model)

	notice, isErr := m.Notice()
	assert.True(t, isErr)
	assert.Contains(t, notice, "no profile store configured")
}

func TestModel_NoticeClears(t *testing.T) {
	m := NewModel(Options{})
	updated, _ := m.Update(tuimsg.ErrorMsg{Err: errors.New("first")})
	m = updated.(Model)
	staleID := m.noticeID
	updated, _ = m.Update(tuimsg.ErrorMsg{Err: errors.New("second")})
	m = updated.(Model)

	updated, _ = m.Update(clearNoticeMsg{id: staleID})
	m = updated.(Model)
	notice, _ := m.Notice()
	assert.Contains(t, notice, "second")

	updated, _ = m.Update(clearNoticeMsg{id: m.noticeID})
	m = updated.(Model)
	notice, _ = m.Notice()
	assert.Empty(t, notice)
}

func TestModel_QuitKeys(t *testing.T) {
	m := NewModel(Options{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
