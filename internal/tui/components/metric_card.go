package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/itrgo/internal/money"
	"github.com/rgehrsitz/itrgo/internal/tui/tuistyles"
)

const metricCardWidth = 26

var oneLakh = decimal.NewFromInt(100000)

// Tone colours the note under a metric
type Tone int

const (
	ToneNeutral Tone = iota
	ToneGood
	ToneBad
)

// MetricCard shows one headline figure of a computation
type MetricCard struct {
	Label     string
	Value     string
	Note      string
	Tone      Tone
	Highlight bool
}

// NewMetricCard creates a card for a preformatted value
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{Label: label, Value: value}
}

// NewAmountCard creates a card for a rupee amount. Amounts of a lakh or
// more carry the lakh figure as their note until WithNote replaces it.
func NewAmountCard(label string, amount decimal.Decimal) *MetricCard {
	card := NewMetricCard(label, tuistyles.FormatCurrency(amount))
	if amount.Abs().GreaterThanOrEqual(oneLakh) {
		card.Note = money.Lakh(amount)
	}
	return card
}

// WithNote sets the line shown under the value
func (m *MetricCard) WithNote(note string, tone Tone) *MetricCard {
	m.Note = note
	m.Tone = tone
	return m
}

// Highlighted draws the card with the accent border
func (m *MetricCard) Highlighted() *MetricCard {
	m.Highlight = true
	return m
}

func (m *MetricCard) note(s tuistyles.Styles) string {
	switch m.Tone {
	case ToneGood:
		return s.MetricTrendStyle(true).Render(tuistyles.TrendIndicator(true) + " " + m.Note)
	case ToneBad:
		return s.MetricTrendStyle(false).Render(tuistyles.TrendIndicator(false) + " " + m.Note)
	default:
		return s.Subtitle.Render(m.Note)
	}
}

// Render returns the bordered card
func (m *MetricCard) Render(s tuistyles.Styles) string {
	lines := []string{s.MetricLabel.Render(m.Label), s.MetricValue.Render(m.Value)}
	if m.Note != "" {
		lines = append(lines, m.note(s))
	}

	border := s.Theme.Border
	if m.Highlight {
		border = s.Theme.Accent
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(metricCardWidth).
		Render(strings.Join(lines, "\n"))
}

// Inline renders "label: value note" on one line
func (m *MetricCard) Inline(s tuistyles.Styles) string {
	out := s.MetricLabel.Render(m.Label+":") + " " + s.MetricValue.Render(m.Value)
	if m.Note != "" {
		out += " " + m.note(s)
	}
	return out
}

// MetricGrid lays cards out left to right, columns per row
func MetricGrid(s tuistyles.Styles, cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	columns = max(columns, 1)

	var rows []string
	for start := 0; start < len(cards); start += columns {
		end := min(start+columns, len(cards))
		rendered := make([]string, 0, end-start)
		for _, card := range cards[start:end] {
			rendered = append(rendered, card.Render(s))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
