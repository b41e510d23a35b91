package scenes

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/compare"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/tui/components"
	"github.com/rgehrsitz/itrgo/internal/tui/tuistyles"
)

// Calculator input fields, in focus order
const (
	FieldGrossIncome = iota
	FieldSection80C
	FieldSection80D
	FieldOtherDeductions
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Gross Income",
	"Section 80C",
	"Section 80D",
	"Other Deductions",
}

var fieldPlaceholders = [fieldCount]string{
	"annual salary, e.g. 1200000",
	"up to 1,50,000",
	"up to 25,000",
	"HRA, 80E, 80G ...",
}

var (
	nextFieldKey = key.NewBinding(key.WithKeys("tab", "down"))
	prevFieldKey = key.NewBinding(key.WithKeys("shift+tab", "up"))
	resetKey     = key.NewBinding(key.WithKeys("ctrl+r"))
	calculateKey = key.NewBinding(key.WithKeys("enter"))
)

// CalculatorModel is the regime comparison scene. Every keystroke
// recomputes the report.
type CalculatorModel struct {
	engine  *compare.Engine
	inputs  [fieldCount]textinput.Model
	focus   int
	report  *compare.Report
	profile *domain.Profile
	err     error
	styles  tuistyles.Styles
	width   int
	height  int
}

// NewCalculatorModel creates the calculator scene
func NewCalculatorModel(engine *compare.Engine, styles tuistyles.Styles) *CalculatorModel {
	m := &CalculatorModel{
		engine: engine,
		styles: styles,
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = "₹ "
		ti.Placeholder = fieldPlaceholders[i]
		ti.CharLimit = 18
		ti.Width = 24
		m.inputs[i] = ti
	}
	m.inputs[FieldGrossIncome].Focus()
	m.recalculate()
	return m
}

// Init starts the cursor blinking
func (m *CalculatorModel) Init() tea.Cmd {
	return textinput.Blink
}

// SetStyles applies a new theme
func (m *CalculatorModel) SetStyles(styles tuistyles.Styles) {
	m.styles = styles
}

// SetSize updates the scene dimensions
func (m *CalculatorModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetProfile attaches the profile shown alongside the report
func (m *CalculatorModel) SetProfile(p *domain.Profile) {
	m.profile = p
	m.recalculate()
}

// Report returns the most recent report
func (m *CalculatorModel) Report() *compare.Report {
	return m.report
}

// Raw returns the current field values
func (m *CalculatorModel) Raw() domain.RawTaxInputs {
	return domain.RawTaxInputs{
		GrossIncome:     m.inputs[FieldGrossIncome].Value(),
		Section80C:      m.inputs[FieldSection80C].Value(),
		Section80D:      m.inputs[FieldSection80D].Value(),
		OtherDeductions: m.inputs[FieldOtherDeductions].Value(),
	}
}

// Focused returns the focused field index
func (m *CalculatorModel) Focused() int {
	return m.focus
}

// Capturing reports whether plain keys go to a text field; always true here
func (m *CalculatorModel) Capturing() bool {
	return true
}

// Reset clears every field and recomputes
func (m *CalculatorModel) Reset() {
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.setFocus(FieldGrossIncome)
	m.recalculate()
}

// Update handles messages for the calculator scene
func (m *CalculatorModel) Update(msg tea.Msg) (*CalculatorModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, nextFieldKey):
		m.setFocus((m.focus + 1) % fieldCount)
		return m, nil
	case key.Matches(keyMsg, prevFieldKey):
		m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, nil
	case key.Matches(keyMsg, resetKey):
		m.Reset()
		return m, nil
	case key.Matches(keyMsg, calculateKey):
		m.recalculate()
		m.setFocus((m.focus + 1) % fieldCount)
		return m, nil
	}

	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if m.inputs[m.focus].Value() != before {
		m.recalculate()
	}
	return m, cmd
}

func (m *CalculatorModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

func (m *CalculatorModel) recalculate() {
	if m.engine == nil {
		return
	}
	report, err := m.engine.Build(context.Background(), m.Raw(), m.profile)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.report = report
}

// View renders the calculator
func (m *CalculatorModel) View() string {
	s := m.styles
	var content strings.Builder

	content.WriteString(s.Title.Render("Income Tax Regime Calculator"))
	content.WriteString("\n")
	content.WriteString(s.Subtitle.Render("Compare the Old and New regimes as you type"))
	content.WriteString("\n\n")

	left := m.renderInputs()
	right := ""
	if m.report != nil {
		right = m.renderSummary()
	}
	content.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right))

	if m.report != nil {
		content.WriteString("\n\n")
		content.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			components.NewRegimeCard(m.report.Old).
				SetRecommended(m.report.Comparison.Cheaper == domain.RegimeOld).
				Render(s),
			" ",
			components.NewRegimeCard(m.report.New).
				SetRecommended(m.report.Comparison.Cheaper == domain.RegimeNew).
				Render(s),
		))
		content.WriteString("\n\n")
		content.WriteString(m.renderRecommendations())
	}

	if m.err != nil {
		content.WriteString("\n")
		content.WriteString(s.Error.Render("Error: " + m.err.Error()))
	}

	return content.String()
}

func (m *CalculatorModel) renderInputs() string {
	s := m.styles
	var content strings.Builder

	for i := range m.inputs {
		label := s.Label
		if i == m.focus {
			label = s.SelectedItem
		}
		content.WriteString(label.Render(fieldLabels[i]))
		content.WriteString("\n")
		content.WriteString(m.inputs[i].View())
		content.WriteString("\n\n")
	}

	if m.report != nil {
		rules := calculation.OldRegimeRules()
		content.WriteString(components.NewUsageBar("80C used", m.report.Old.Section80C, rules.Section80CCap).WithWidth(16).Render(s))
		content.WriteString("\n")
		content.WriteString(components.NewUsageBar("80D used", m.report.Old.Section80D, rules.Section80DCap).WithWidth(16).Render(s))
		content.WriteString("\n")
	}

	return s.Border.Render(content.String())
}

func (m *CalculatorModel) renderSummary() string {
	s := m.styles
	r := m.report
	cmp := r.Comparison

	savings := cmp.Savings.Abs()
	savingsCard := components.NewAmountCard("You Save", savings)
	if savings.IsPositive() {
		savingsCard.WithNote("with the "+cmp.Cheaper.String(), components.ToneGood)
	} else {
		savingsCard.WithNote("both regimes cost the same", components.ToneNeutral)
	}

	oldCard := components.NewAmountCard("Old Regime Total", r.Old.TotalTaxWithCess)
	newCard := components.NewAmountCard("New Regime Total", r.New.TotalTaxWithCess)
	if cmp.Cheaper == domain.RegimeNew {
		newCard.Highlighted()
	} else {
		oldCard.Highlighted()
	}

	cards := []*components.MetricCard{
		components.NewMetricCard("Recommended", cmp.Cheaper.String()).Highlighted(),
		savingsCard,
		oldCard,
		newCard,
	}

	if r.BreakEven != nil && !r.BreakEven.AlreadyCheaper {
		cards = append(cards, components.NewAmountCard("Break-even", r.BreakEven.ExtraDeduction).
			WithNote("more deductions for Old", components.ToneBad))
	}

	return components.MetricGrid(s, cards, 2)
}

func (m *CalculatorModel) renderRecommendations() string {
	s := m.styles
	var content strings.Builder

	if len(m.report.Warnings) > 0 {
		for _, w := range m.report.Warnings {
			content.WriteString(s.Warning.Render("! " + w))
			content.WriteString("\n")
		}
	}

	for _, rec := range m.report.Recommendations {
		content.WriteString(s.Info.Render("• " + rec))
		content.WriteString("\n")
	}

	return strings.TrimRight(content.String(), "\n")
}
