package projectform

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/careerlog/careerlog/internal/model"
	"github.com/careerlog/careerlog/internal/theme"
	"github.com/careerlog/careerlog/internal/ui"
)

// ProjectSubmittedMsg carries a validated draft. ProjectID is empty for a
// new project.
type ProjectSubmittedMsg struct {
	ProjectID string
	Draft     model.ProjectDraft
}

// ProjectFormCancelMsg is dispatched when the user leaves the form without
// saving. Err is set when the final draft check failed.
type ProjectFormCancelMsg struct {
	Err error
}

// Model is the Bubble Tea model for the three-step project form.
type Model struct {
	form         *huh.Form
	fb           *formBindings
	editMode     bool
	editID       string
	technologies []model.Technology
	width        int
	height       int
}

// New creates a new project form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// SetOptions sets the stored technologies offered next to the catalog.
func (m *Model) SetOptions(techs []model.Technology) {
	m.technologies = techs
}

// StartCreate initializes the form for a new project.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editID = ""
	*m.fb = formBindings{}
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form prefilled from an existing project.
func (m *Model) StartEdit(p model.Project) tea.Cmd {
	m.editMode = true
	m.editID = p.ID
	m.fb.fill(model.DraftFromProject(p))
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the project form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return ProjectFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the project form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Project"
	if m.editMode {
		titleText = "Edit Project"
	}

	content := theme.TitleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// buildForm lays the fields out in three pages: basic information,
// technologies and stages, then team and free text.
func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Placeholder("e.g. EC site renewal").
				Value(&m.fb.name).
				Validate(validateRequired("project name")),
			huh.NewInput().
				Title("Start date").
				Placeholder("YYYY-MM or YYYY-MM-DD").
				Value(&m.fb.startDate).
				Validate(validateRequiredDate),
			huh.NewConfirm().
				Title("Still working on it?").
				Affirmative("Ongoing").
				Negative("Finished").
				Value(&m.fb.ongoing),
			huh.NewInput().
				Title("End date").
				Description("Ignored for ongoing projects.").
				Placeholder("YYYY-MM or YYYY-MM-DD (optional)").
				Value(&m.fb.endDate).
				Validate(m.fb.validateEndDate),
			huh.NewSelect[string]().
				Title("Industry").
				Options(labelOptions(model.Industries)...).
				Value(&m.fb.industry),
		).Title("1/3 Basic information"),

		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Technologies").
				Options(technologyOptions(m.technologies)...).
				Filterable(true).
				Height(12).
				Value(&m.fb.technologies),
			huh.NewInput().
				Title("Other technologies").
				Placeholder("comma separated, e.g. Rust, Elixir").
				Value(&m.fb.otherTechnologies),
			huh.NewSelect[string]().
				Title("Role").
				Options(labelOptions(model.Roles)...).
				Value(&m.fb.role),
			huh.NewMultiSelect[string]().
				Title("Development processes").
				Options(processOptions()...).
				Value(&m.fb.processes),
		).Title("2/3 Technologies and role"),

		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Team size").
				Options(labelOptions(model.TeamSizes)...).
				Value(&m.fb.teamSize),
			huh.NewText().
				Title("Overview").
				Value(&m.fb.overview),
			huh.NewText().
				Title("Responsibilities").
				Value(&m.fb.responsibilities),
			huh.NewText().
				Title("Achievements").
				Value(&m.fb.achievements),
		).Title("3/3 Details"),
	).WithKeyMap(ui.FormKeyMap()).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	draft, err := m.fb.draft()
	if err != nil {
		return func() tea.Msg { return ProjectFormCancelMsg{Err: err} }
	}

	id := ""
	if m.editMode {
		id = m.editID
	}
	return func() tea.Msg { return ProjectSubmittedMsg{ProjectID: id, Draft: draft} }
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

// labelOptions builds select options for a closed label set, led by an
// empty "not set" choice.
func labelOptions[T ~string](labels []T) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("未設定", "")}
	for _, l := range labels {
		opts = append(opts, huh.NewOption(string(l), string(l)))
	}
	return opts
}

// technologyOptions lists the catalog by category, then any stored custom
// technologies.
func technologyOptions(stored []model.Technology) []huh.Option[string] {
	var opts []huh.Option[string]
	seen := make(map[string]bool)
	for _, c := range model.TechnologyCategories {
		for _, name := range model.PredefinedTechnologies[c] {
			seen[name] = true
			opts = append(opts, huh.NewOption(
				fmt.Sprintf("%s (%s)", name, c.DisplayName()), name))
		}
	}
	for _, t := range stored {
		if seen[t.Name] {
			continue
		}
		seen[t.Name] = true
		opts = append(opts, huh.NewOption(
			fmt.Sprintf("%s (%s)", t.Name, t.Category.DisplayName()), t.Name))
	}
	return opts
}

func processOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(model.DevelopmentProcesses))
	for i, p := range model.DevelopmentProcesses {
		opts[i] = huh.NewOption(
			fmt.Sprintf("%s - %s", p, p.Description()), string(p))
	}
	return opts
}
