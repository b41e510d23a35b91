package scenes

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/profile"
	"github.com/rgehrsitz/itrgo/internal/tui/tuimsg"
	"github.com/rgehrsitz/itrgo/internal/tui/tuistyles"
)

// Profile form fields, in focus order
const (
	profileFieldName = iota
	profileFieldGender
	profileFieldDOB
	profileFieldSalaried
	profileFieldMetro
	profileFieldCount
)

var genderChoices = []string{"", domain.GenderMale, domain.GenderFemale}

// ProfileModel views and edits the stored profile
type ProfileModel struct {
	saved *domain.Profile

	editing       bool
	nameInput     textinput.Model
	dobInput      textinput.Model
	gender        int
	salaried      bool
	metro         bool
	focus         int
	formErr       string
	confirmDelete bool

	showDump bool
	dump     string

	now    func() time.Time
	styles tuistyles.Styles
	width  int
	height int
}

// NewProfileModel creates the profile scene
func NewProfileModel(styles tuistyles.Styles) *ProfileModel {
	name := textinput.New()
	name.Prompt = ""
	name.Placeholder = "Full name"
	name.CharLimit = 80
	name.Width = 30

	dob := textinput.New()
	dob.Prompt = ""
	dob.Placeholder = "YYYY-MM-DD"
	dob.CharLimit = 10
	dob.Width = 12

	return &ProfileModel{
		nameInput: name,
		dobInput:  dob,
		now:       time.Now,
		styles:    styles,
	}
}

// SetStyles applies a new theme
func (m *ProfileModel) SetStyles(styles tuistyles.Styles) {
	m.styles = styles
}

// SetSize updates the scene dimensions
func (m *ProfileModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetClock replaces the time source used for the age display
func (m *ProfileModel) SetClock(now func() time.Time) {
	m.now = now
}

// SetProfile replaces the saved profile shown in view mode
func (m *ProfileModel) SetProfile(p *domain.Profile) {
	m.saved = p
	if !m.editing {
		m.loadForm()
	}
}

// Profile returns the saved profile, nil when none exists
func (m *ProfileModel) Profile() *domain.Profile {
	return m.saved
}

// Editing reports whether the form is open
func (m *ProfileModel) Editing() bool {
	return m.editing
}

// Capturing reports whether plain keys go to a text field
func (m *ProfileModel) Capturing() bool {
	return m.editing || m.confirmDelete
}

// SetSaveResult applies the outcome of a save request
func (m *ProfileModel) SetSaveResult(p *domain.Profile, err error) {
	if err != nil {
		m.formErr = err.Error()
		return
	}
	m.saved = p
	m.formErr = ""
	m.editing = false
	m.blurAll()
	m.loadForm()
}

// SetDump shows the JSON dump of the store
func (m *ProfileModel) SetDump(dump string) {
	m.dump = dump
	m.showDump = true
}

// Update handles messages for the profile scene
func (m *ProfileModel) Update(msg tea.Msg) (*ProfileModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInputs(msg)
	}
	if m.editing {
		return m.handleEditKey(keyMsg)
	}
	return m.handleViewKey(keyMsg)
}

func (m *ProfileModel) handleViewKey(msg tea.KeyMsg) (*ProfileModel, tea.Cmd) {
	if m.confirmDelete {
		m.confirmDelete = false
		if msg.String() == "y" {
			return m, emit(tuimsg.DeleteProfileMsg{})
		}
		return m, nil
	}

	switch msg.String() {
	case "e", "enter":
		m.startEditing()
		return m, textinput.Blink
	case "v":
		if m.showDump {
			m.showDump = false
			return m, nil
		}
		return m, emit(tuimsg.DumpStoreMsg{})
	case "x":
		if m.saved != nil {
			m.confirmDelete = true
		}
	}
	return m, nil
}

func (m *ProfileModel) handleEditKey(msg tea.KeyMsg) (*ProfileModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.formErr = ""
		m.blurAll()
		m.loadForm()
		return m, nil
	case "tab", "down":
		m.setFocus((m.focus + 1) % profileFieldCount)
		return m, nil
	case "shift+tab", "up":
		m.setFocus((m.focus + profileFieldCount - 1) % profileFieldCount)
		return m, nil
	case "enter", "ctrl+s":
		return m, m.submit()
	}

	switch m.focus {
	case profileFieldGender:
		switch msg.String() {
		case " ", "right", "l":
			m.gender = (m.gender + 1) % len(genderChoices)
		case "left", "h":
			m.gender = (m.gender + len(genderChoices) - 1) % len(genderChoices)
		}
		return m, nil
	case profileFieldSalaried:
		if msg.String() == " " {
			m.salaried = !m.salaried
		}
		return m, nil
	case profileFieldMetro:
		if msg.String() == " " {
			m.metro = !m.metro
		}
		return m, nil
	}

	return m.updateInputs(msg)
}

func (m *ProfileModel) updateInputs(msg tea.Msg) (*ProfileModel, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case profileFieldName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case profileFieldDOB:
		m.dobInput, cmd = m.dobInput.Update(msg)
	}
	return m, cmd
}

// submit builds the profile from the form; the root model performs the save
func (m *ProfileModel) submit() tea.Cmd {
	dob, err := profile.ParseDate(m.dobInput.Value())
	if err != nil {
		m.formErr = err.Error()
		return nil
	}
	if strings.TrimSpace(m.nameInput.Value()) == "" {
		m.formErr = "name is required"
		return nil
	}
	m.formErr = ""

	p := domain.Profile{
		Name:            m.nameInput.Value(),
		Gender:          genderChoices[m.gender],
		DateOfBirth:     dob,
		Salaried:        m.salaried,
		ResidingInMetro: m.metro,
	}
	if m.saved != nil {
		p.Email = m.saved.Email
		p.PAN = m.saved.PAN
		p.Phone = m.saved.Phone
		p.Occupation = m.saved.Occupation
	}
	return emit(tuimsg.SaveProfileMsg{Profile: p})
}

func (m *ProfileModel) startEditing() {
	m.editing = true
	m.showDump = false
	m.formErr = ""
	m.loadForm()
	m.focus = profileFieldName
	m.nameInput.Focus()
}

func (m *ProfileModel) loadForm() {
	m.nameInput.SetValue("")
	m.dobInput.SetValue("")
	m.gender = 0
	m.salaried = false
	m.metro = false
	if m.saved == nil {
		return
	}
	m.nameInput.SetValue(m.saved.Name)
	if m.saved.DateOfBirth != nil {
		m.dobInput.SetValue(m.saved.DateOfBirth.Format(time.DateOnly))
	}
	for i, g := range genderChoices {
		if g == m.saved.Gender {
			m.gender = i
		}
	}
	m.salaried = m.saved.Salaried
	m.metro = m.saved.ResidingInMetro
}

func (m *ProfileModel) setFocus(i int) {
	m.blurAll()
	m.focus = i
	switch i {
	case profileFieldName:
		m.nameInput.Focus()
	case profileFieldDOB:
		m.dobInput.Focus()
	}
}

func (m *ProfileModel) blurAll() {
	m.nameInput.Blur()
	m.dobInput.Blur()
}

// View renders the profile scene
func (m *ProfileModel) View() string {
	s := m.styles
	var content strings.Builder

	content.WriteString(s.Title.Render("Profile"))
	content.WriteString("\n\n")

	switch {
	case m.editing:
		content.WriteString(m.renderForm())
	case m.saved == nil:
		content.WriteString(s.Subtitle.Render("No profile saved yet. Press e to create one."))
	default:
		content.WriteString(m.renderSaved())
	}

	if m.confirmDelete {
		content.WriteString("\n\n")
		content.WriteString(s.Warning.Render("Delete the stored profile? Press y to confirm, any other key to cancel."))
	}

	if m.showDump {
		content.WriteString("\n\n")
		content.WriteString(s.Section.Render("Store contents"))
		content.WriteString("\n")
		content.WriteString(s.Value.Render(m.dump))
	}

	return s.Border.Render(content.String())
}

func (m *ProfileModel) renderSaved() string {
	s := m.styles
	p := m.saved
	var content strings.Builder

	avatar := s.ActiveBorder.Padding(0, 1).Render(p.Initials())
	content.WriteString(avatar)
	content.WriteString("  ")
	content.WriteString(s.MetricValue.Render(p.Name))
	content.WriteString("\n\n")

	gender := p.Gender
	if gender == "" {
		gender = "not set"
	}
	dob := "not set"
	ageLine := "not set"
	if age, category, ok := profile.CategoryOf(p, m.now()); ok {
		dob = p.DateOfBirth.Format(time.DateOnly)
		ageLine = fmt.Sprintf("%d (%s)", age, category)
	}

	rows := [][2]string{
		{"Gender", gender},
		{"Date of birth", dob},
		{"Age", ageLine},
		{"Salaried", yesNo(p.Salaried)},
		{"Residing in metro", yesNo(p.ResidingInMetro)},
	}
	if p.PAN != "" {
		rows = append(rows, [2]string{"PAN", p.PAN})
	}
	if p.Email != "" {
		rows = append(rows, [2]string{"Email", p.Email})
	}
	for _, row := range rows {
		content.WriteString(s.Label.Render(fmt.Sprintf("%-18s", row[0])))
		content.WriteString(s.Value.Render(row[1]))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(s.HelpKey.Render("e") + s.HelpDesc.Render(" edit  "))
	content.WriteString(s.HelpKey.Render("v") + s.HelpDesc.Render(" view store  "))
	content.WriteString(s.HelpKey.Render("x") + s.HelpDesc.Render(" delete"))
	return content.String()
}

func (m *ProfileModel) renderForm() string {
	s := m.styles
	var content strings.Builder

	field := func(i int, label, value string) {
		style := s.Label
		marker := "  "
		if i == m.focus {
			style = s.SelectedItem
			marker = "> "
		}
		content.WriteString(style.Render(fmt.Sprintf("%s%-18s", marker, label)))
		content.WriteString(value)
		content.WriteString("\n")
	}

	gender := genderChoices[m.gender]
	if gender == "" {
		gender = "not set"
	}

	field(profileFieldName, "Name", m.nameInput.View())
	field(profileFieldGender, "Gender", "< "+gender+" >")
	field(profileFieldDOB, "Date of birth", m.dobInput.View())
	field(profileFieldSalaried, "Salaried", checkbox(m.salaried))
	field(profileFieldMetro, "Residing in metro", checkbox(m.metro))

	if dob, err := profile.ParseDate(m.dobInput.Value()); err == nil && dob != nil {
		age := profile.Age(*dob, m.now())
		content.WriteString("\n")
		content.WriteString(s.Info.Render(fmt.Sprintf("Age %d, %s", age, profile.CategoryFor(age))))
		content.WriteString("\n")
	}

	if m.formErr != "" {
		content.WriteString("\n")
		content.WriteString(s.Error.Render(m.formErr))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(s.HelpKey.Render("enter") + s.HelpDesc.Render(" save  "))
	content.WriteString(s.HelpKey.Render("esc") + s.HelpDesc.Render(" cancel  "))
	content.WriteString(s.HelpKey.Render("space") + s.HelpDesc.Render(" toggle"))
	return content.String()
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
