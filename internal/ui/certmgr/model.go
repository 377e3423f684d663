package certmgr

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/careerlog/careerlog/internal/keys"
	"github.com/careerlog/careerlog/internal/model"
	"github.com/careerlog/careerlog/internal/query"
	"github.com/careerlog/careerlog/internal/store"
	"github.com/careerlog/careerlog/internal/theme"
	"github.com/careerlog/careerlog/internal/ui"
)

// CertificationChangedMsg signals that certifications were modified.
type CertificationChangedMsg struct{}

type certMode int

const (
	modeList certMode = iota
	modeForm
	modeConfirmDelete
)

type formBindings struct {
	name     string
	obtained string
	expires  string
	number   string
	memo     string
	confirm  bool
}

// fill loads an existing certification into the bindings.
func (fb *formBindings) fill(d model.CertificationDraft) {
	*fb = formBindings{
		name:     d.Name,
		obtained: model.FormatDate(&d.ObtainedDate),
		expires:  model.FormatDate(d.ExpirationDate),
		number:   d.CertificationNumber,
		memo:     d.Memo,
	}
}

// draft converts the bindings into a validated CertificationDraft.
func (fb *formBindings) draft() (model.CertificationDraft, error) {
	obtained, err := model.ParseDate(fb.obtained)
	if err != nil {
		return model.CertificationDraft{}, &model.ValidationError{Field: "obtained date", Reason: err.Error()}
	}
	d := model.CertificationDraft{
		Name:                fb.name,
		ObtainedDate:        obtained,
		CertificationNumber: fb.number,
		Memo:                fb.memo,
	}
	if strings.TrimSpace(fb.expires) != "" {
		exp, err := model.ParseDate(fb.expires)
		if err != nil {
			return model.CertificationDraft{}, &model.ValidationError{Field: "expiration date", Reason: err.Error()}
		}
		d.ExpirationDate = &exp
	}
	if err := d.Validate(); err != nil {
		return model.CertificationDraft{}, err
	}
	return d, nil
}

type certSavedMsg struct{ err error }
type certDeletedMsg struct{ err error }

// Model is the Bubble Tea model for certification management.
type Model struct {
	mode        certMode
	store       store.Store
	logger      *zap.Logger
	keys        *keys.KeyMap
	certs       []model.Certification
	now         time.Time
	selectedIdx int
	editingID   string
	isNew       bool
	form        *huh.Form
	confirmForm *huh.Form
	fb          *formBindings
	statusMsg   string
	width       int
	height      int
}

// New creates a new certification manager model.
// A nil logger discards log output.
func New(s store.Store, logger *zap.Logger, k *keys.KeyMap, width, height int) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Model{
		mode:   modeList,
		store:  s,
		logger: logger,
		keys:   k,
		fb:     &formBindings{},
		width:  width, height: height,
	}
}

// SetCertifications replaces the listed certifications, newest first.
func (m *Model) SetCertifications(certs []model.Certification, now time.Time) {
	m.certs = query.SortCertifications(certs)
	m.now = now
	if m.selectedIdx >= len(m.certs) {
		m.selectedIdx = max(len(m.certs)-1, 0)
	}
}

// Summary counts the listed certifications by expiry state.
func (m Model) Summary() query.Summary {
	return query.Summarize(nil, m.certs, m.now)
}

// SummaryLine renders the certification counts. Renewal due excludes
// certifications that have already expired.
func (m Model) SummaryLine() string {
	sum := m.Summary()
	return fmt.Sprintf("Total %d · Renewal due %d · Expired %d",
		sum.CertificationCount, sum.ExpiringCount-sum.ExpiredCount, sum.ExpiredCount)
}

// Editing reports whether a form or confirmation currently owns the keyboard.
func (m Model) Editing() bool {
	return m.mode != modeList
}

// Selected returns the highlighted certification.
func (m Model) Selected() (model.Certification, bool) {
	if m.selectedIdx < len(m.certs) {
		return m.certs[m.selectedIdx], true
	}
	return model.Certification{}, false
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case certSavedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.statusMsg = "Certification saved"
		}
		m.mode = modeList
		return m, func() tea.Msg { return CertificationChangedMsg{} }

	case certDeletedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.statusMsg = "Certification deleted"
		}
		m.mode = modeList
		return m, func() tea.Msg { return CertificationChangedMsg{} }

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateActiveForm(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.mode {
	case modeList:
		return m.handleListKey(msg)
	case modeForm:
		return m.updateForm(msg)
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if len(m.certs) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(m.certs)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if len(m.certs) > 0 {
			m.selectedIdx--
			if m.selectedIdx < 0 {
				m.selectedIdx = len(m.certs) - 1
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.isNew = true
		m.editingID = ""
		*m.fb = formBindings{}
		m.form = m.buildForm()
		m.mode = modeForm
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Edit):
		c, ok := m.Selected()
		if !ok {
			return m, nil
		}
		m.isNew = false
		m.editingID = c.ID
		m.fb.fill(model.DraftFromCertification(c))
		m.form = m.buildForm()
		m.mode = modeForm
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Delete):
		if len(m.certs) == 0 {
			return m, nil
		}
		m.fb.confirm = false
		m.confirmForm = m.buildConfirmForm()
		m.mode = modeConfirmDelete
		return m, m.confirmForm.Init()
	}
	return m, nil
}

func (m Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("e.g. AWS Solutions Architect - Associate").
				Value(&m.fb.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Obtained").
				Placeholder("YYYY-MM or YYYY-MM-DD").
				Value(&m.fb.obtained).
				Validate(func(s string) error {
					if _, err := model.ParseDate(s); err != nil {
						return fmt.Errorf("obtained date %v", err)
					}
					return nil
				}),
			huh.NewInput().
				Title("Expires").
				Placeholder("YYYY-MM-DD (leave empty if it never expires)").
				Value(&m.fb.expires).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					_, err := model.ParseDate(s)
					return err
				}),
			huh.NewInput().
				Title("Certification number").
				Value(&m.fb.number),
			huh.NewText().
				Title("Memo").
				Value(&m.fb.memo),
		),
	).WithKeyMap(ui.FormKeyMap()).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) buildConfirmForm() *huh.Form {
	name := ""
	if c, ok := m.Selected(); ok {
		name = c.Name
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete certification %q?", name)).
				Affirmative("Yes, delete").
				Negative("Cancel").
				Value(&m.fb.confirm),
		),
	).WithKeyMap(ui.FormKeyMap()).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		d, err := m.fb.draft()
		if err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", err)
			m.mode = modeList
			return m, nil
		}
		return m, m.saveCertification(d)
	}
	if m.form.State == huh.StateAborted {
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	if m.confirmForm == nil {
		return m, nil
	}
	mdl, cmd := m.confirmForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirmForm = f
	}
	if m.confirmForm.State == huh.StateCompleted {
		if c, ok := m.Selected(); ok && m.fb.confirm {
			return m, m.deleteCertification(c.ID)
		}
		m.mode = modeList
		return m, nil
	}
	if m.confirmForm.State == huh.StateAborted {
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

func (m Model) updateActiveForm(msg tea.Msg) (Model, tea.Cmd) {
	switch m.mode {
	case modeForm:
		return m.updateForm(msg)
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	}
	return m, nil
}

// View renders the certification manager.
func (m Model) View() string {
	switch m.mode {
	case modeForm:
		title := "New Certification"
		if !m.isNew {
			title = "Edit Certification"
		}
		return m.viewForm(title, m.form)
	case modeConfirmDelete:
		return m.viewForm("Delete Certification", m.confirmForm)
	default:
		return m.viewList()
	}
}

func (m Model) viewList() string {
	var b strings.Builder

	b.WriteString(theme.TitleStyle.Render(fmt.Sprintf("Certifications (%d)", len(m.certs))))
	b.WriteString("\n\n")

	if len(m.certs) == 0 {
		emptyStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Italic(true)
		b.WriteString(emptyStyle.Render("No certifications yet. Press 'n' to add one."))
	} else {
		b.WriteString(m.summaryView())
		b.WriteString("\n\n")
		for i, c := range m.certs {
			label := fmt.Sprintf("%-40s %s  %s",
				c.Name,
				theme.DimmedStyle.Render(c.ObtainedDate.Format("2006.01")),
				theme.CertificationStatusStyle(c.StatusAt(m.now)).Render(c.StatusTextAt(m.now)))

			if i == m.selectedIdx {
				b.WriteString(theme.SelectedItemStyle.Render(label))
			} else {
				b.WriteString(theme.ListItemStyle.Render(label))
			}
			b.WriteString("\n")
		}

		if c, ok := m.Selected(); ok {
			b.WriteString("\n")
			b.WriteString(m.viewSelected(c))
		}
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorYellow).Italic(true).Render(m.statusMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(theme.HelpStyle.Render("n new | e edit | d delete | tab switch view"))

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Render(b.String())
}

func (m Model) summaryView() string {
	sum := m.Summary()
	style := theme.DimmedStyle
	switch {
	case sum.ExpiredCount > 0:
		style = theme.CertificationStatusStyle(model.CertificationExpired)
	case sum.ExpiringCount > 0:
		style = theme.CertificationStatusStyle(model.CertificationExpiring)
	}
	return style.Render(m.SummaryLine())
}

func (m Model) viewSelected(c model.Certification) string {
	expires := "never"
	if c.ExpirationDate != nil {
		expires = c.ExpirationDate.Format("2006.01.02")
	}
	lines := []string{
		fmt.Sprintf("Obtained  %s", c.ObtainedDate.Format("2006.01.02")),
		fmt.Sprintf("Expires   %s", expires),
	}
	if c.CertificationNumber != "" {
		lines = append(lines, fmt.Sprintf("Number    %s", c.CertificationNumber))
	}
	if c.Memo != "" {
		lines = append(lines, "", c.Memo)
	}
	return theme.DetailPanelStyle.Width(max(m.width-8, 20)).Render(strings.Join(lines, "\n"))
}

func (m Model) viewForm(title string, f *huh.Form) string {
	if f == nil {
		return ""
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(theme.TitleStyle.Render(title) + "\n" + f.View())
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func (m Model) saveCertification(d model.CertificationDraft) tea.Cmd {
	s := m.store
	logger := m.logger
	editID := m.editingID
	isNew := m.isNew
	return func() tea.Msg {
		var err error
		if isNew {
			_, err = s.CreateCertification(context.Background(), d)
		} else {
			_, err = s.UpdateCertification(context.Background(), editID, d)
		}
		if err != nil {
			logger.Error("save certification failed", zap.String("id", editID), zap.Error(err))
		}
		return certSavedMsg{err: err}
	}
}

func (m Model) deleteCertification(id string) tea.Cmd {
	s := m.store
	logger := m.logger
	return func() tea.Msg {
		err := s.DeleteCertification(context.Background(), id)
		if err != nil {
			logger.Error("delete certification failed", zap.String("id", id), zap.Error(err))
		}
		return certDeletedMsg{err: err}
	}
}
