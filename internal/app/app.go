package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/careerlog/careerlog/internal/keys"
	"github.com/careerlog/careerlog/internal/model"
	"github.com/careerlog/careerlog/internal/store"
	"github.com/careerlog/careerlog/internal/ui"
	"github.com/careerlog/careerlog/internal/ui/certmgr"
	"github.com/careerlog/careerlog/internal/ui/confirm"
	helpview "github.com/careerlog/careerlog/internal/ui/help"
	"github.com/careerlog/careerlog/internal/ui/home"
	"github.com/careerlog/careerlog/internal/ui/projectdetail"
	"github.com/careerlog/careerlog/internal/ui/projectform"
	"github.com/careerlog/careerlog/internal/ui/projectlist"
	"github.com/careerlog/careerlog/internal/ui/skills"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewHome ViewState = iota
	ViewProjects
	ViewProjectDetail
	ViewProjectForm
	ViewConfirmDelete
	ViewSkills
	ViewCertifications
	ViewHelp
)

// Tab order in the tab bar.
const (
	tabHome = iota
	tabProjects
	tabSkills
	tabCertifications
)

var tabLabels = []string{"1 Home", "2 Projects", "3 Skills", "4 Certifications"}

var tabViews = []ViewState{ViewHome, ViewProjects, ViewSkills, ViewCertifications}

// Model is the root Bubble Tea model that manages view routing,
// layout, and access to the persistence layer.
type Model struct {
	currentView  ViewState
	previousView ViewState
	activeTab    int
	layout       ui.Layout
	store        store.Store
	logger       *zap.Logger
	keys         *keys.KeyMap
	clock        func() time.Time

	home          home.Model
	projectList   projectlist.Model
	projectDetail projectdetail.Model
	projectForm   projectform.Model
	confirmView   confirm.Model
	skillsView    skills.Model
	certView      certmgr.Model
	helpView      helpview.Model

	projects  []model.Project
	certs     []model.Certification
	loaded    bool
	ready     bool
	statusMsg string
	statusErr bool
}

// New creates a new root application model with the given store.
func New(s store.Store, logger *zap.Logger, cfg model.AppConfig) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	k := keys.DefaultKeyMap()

	return Model{
		currentView:   ViewHome,
		store:         s,
		logger:        logger,
		keys:          k,
		clock:         time.Now,
		home:          home.New(cfg.Display.RecentCount, 80, 24),
		projectList:   projectlist.New(k, 80, 24),
		projectDetail: projectdetail.New(k, 80, 24),
		projectForm:   projectform.New(80, 24),
		confirmView:   confirm.New(80, 24),
		skillsView:    skills.New(k, 80, 24),
		certView:      certmgr.New(s, logger, k, 80, 24),
		helpView:      helpview.New(k, 80, 24),
	}
}

// Init loads every record from the store.
func (m Model) Init() tea.Cmd {
	return m.loadData()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.home.SetSize(contentWidth, contentHeight)
		m.projectList.SetSize(contentWidth, contentHeight)
		m.projectDetail.SetSize(contentWidth, contentHeight)
		m.projectForm.SetSize(contentWidth, contentHeight)
		m.confirmView.SetSize(contentWidth, contentHeight)
		m.skillsView.SetSize(contentWidth, contentHeight)
		m.certView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case dataLoadedMsg:
		if msg.err != nil {
			m.setError("Could not load records", msg.err)
			return m, nil
		}
		return m, m.applyData(msg.projects, msg.certs)

	case projectlist.SelectedProjectMsg:
		p, ok := m.findProject(msg.ProjectID)
		if !ok {
			return m, nil
		}
		m.projectDetail.SetProject(p, m.clock())
		m.currentView = ViewProjectDetail
		return m, nil

	case projectdetail.BackMsg:
		m.currentView = ViewProjects
		return m, nil

	case projectdetail.EditMsg:
		return m, m.openEditForm(msg.ProjectID)

	case projectdetail.DeleteMsg:
		return m, m.askDelete(msg.ProjectID)

	case formOptionsLoadedMsg:
		if msg.err != nil {
			m.setError("Could not load technologies", msg.err)
		}
		m.projectForm.SetOptions(msg.techs)
		m.previousView = m.currentView
		m.currentView = ViewProjectForm
		if msg.edit != nil {
			return m, m.projectForm.StartEdit(*msg.edit)
		}
		return m, m.projectForm.StartCreate()

	case projectform.ProjectSubmittedMsg:
		m.currentView = m.previousView
		if msg.ProjectID == "" {
			return m, m.createProject(msg.Draft)
		}
		return m, m.updateProject(msg.ProjectID, msg.Draft)

	case projectform.ProjectFormCancelMsg:
		m.currentView = m.previousView
		if msg.Err != nil {
			m.setError("Project not saved", msg.Err)
		}
		return m, nil

	case projectSavedMsg:
		if msg.err != nil {
			m.setError("Could not save project", msg.err)
			return m, nil
		}
		if msg.created {
			m.setStatus(fmt.Sprintf("Added %q", msg.project.Name))
		} else {
			m.setStatus(fmt.Sprintf("Updated %q", msg.project.Name))
		}
		return m, m.loadData()

	case confirm.ResultMsg:
		m.currentView = m.previousView
		if !msg.Confirmed {
			return m, nil
		}
		return m, m.deleteProject(msg.Subject)

	case projectDeletedMsg:
		if msg.err != nil {
			if msg.result.Total() > 0 {
				m.setError(fmt.Sprintf("Removed %d links but the project remains", msg.result.Total()), msg.err)
				return m, m.loadData()
			}
			m.setError("Could not delete project", msg.err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Deleted project and %d links", msg.result.Total()))
		if m.currentView == ViewProjectDetail {
			m.currentView = ViewProjects
		}
		return m, m.loadData()

	case certmgr.CertificationChangedMsg:
		return m, m.loadData()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if !m.statusErr {
			m.statusMsg = ""
		}
		if m.inputFocused() {
			break
		}
		if next, cmd, handled := m.handleGlobalKey(msg); handled {
			return next, cmd
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// inputFocused reports whether the active view owns every key press.
func (m Model) inputFocused() bool {
	switch m.currentView {
	case ViewProjectForm, ViewConfirmDelete:
		return true
	case ViewProjects:
		return m.projectList.Searching()
	case ViewCertifications:
		return m.certView.Editing()
	}
	return false
}

// handleGlobalKey processes keys that work across views.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit, true

	case key.Matches(msg, m.keys.Help):
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil, true

	case m.currentView == ViewHelp && key.Matches(msg, m.keys.Back):
		m.currentView = m.previousView
		return m, nil, true

	case key.Matches(msg, m.keys.NextTab):
		m.switchTab((m.activeTab + 1) % len(tabViews))
		return m, nil, true

	case key.Matches(msg, m.keys.PrevTab):
		m.switchTab((m.activeTab + len(tabViews) - 1) % len(tabViews))
		return m, nil, true

	case key.Matches(msg, m.keys.Home):
		m.switchTab(tabHome)
		return m, nil, true

	case key.Matches(msg, m.keys.Projs):
		m.switchTab(tabProjects)
		return m, nil, true

	case key.Matches(msg, m.keys.Skills):
		m.switchTab(tabSkills)
		return m, nil, true

	case key.Matches(msg, m.keys.Certs):
		m.switchTab(tabCertifications)
		return m, nil, true

	case key.Matches(msg, m.keys.Refresh):
		m.setStatus("Reloading...")
		return m, m.loadData(), true
	}

	if m.currentView != ViewHome && m.currentView != ViewProjects {
		return m, nil, false
	}

	switch {
	case key.Matches(msg, m.keys.New):
		return m, m.loadFormOptions(nil), true

	case m.currentView == ViewProjects && key.Matches(msg, m.keys.Edit):
		if p, ok := m.projectList.SelectedProject(); ok {
			return m, m.openEditForm(p.ID), true
		}
		return m, nil, true

	case m.currentView == ViewProjects && key.Matches(msg, m.keys.Delete):
		if p, ok := m.projectList.SelectedProject(); ok {
			return m, m.askDelete(p.ID), true
		}
		return m, nil, true
	}
	return m, nil, false
}

func (m *Model) switchTab(tab int) {
	m.activeTab = tab
	m.currentView = tabViews[tab]
}

func (m *Model) openEditForm(id string) tea.Cmd {
	p, ok := m.findProject(id)
	if !ok {
		m.setError("Could not edit project", fmt.Errorf("project %s: %w", id, store.ErrNotFound))
		return nil
	}
	return m.loadFormOptions(&p)
}

func (m *Model) askDelete(id string) tea.Cmd {
	p, ok := m.findProject(id)
	if !ok {
		return nil
	}
	m.previousView = m.currentView
	m.currentView = ViewConfirmDelete
	return m.confirmView.Ask(p.ID,
		fmt.Sprintf("Delete project %q?", p.Name),
		fmt.Sprintf("Its %d technology and %d process links are removed too. Technologies and processes stay.",
			len(p.Technologies), len(p.Processes)))
}

// applyData distributes freshly loaded records to every view.
func (m *Model) applyData(projects []model.Project, certs []model.Certification) tea.Cmd {
	now := m.clock()
	m.projects = projects
	m.certs = certs
	m.loaded = true

	m.home.SetData(projects, certs, now)
	m.skillsView.SetProjects(projects, now)
	m.certView.SetCertifications(certs, now)
	cmd := m.projectList.SetProjects(projects, now)

	if m.currentView == ViewProjectDetail {
		if p, ok := m.findProject(m.projectDetail.ProjectID()); ok {
			m.projectDetail.SetProject(p, now)
		} else {
			m.currentView = ViewProjects
		}
	}
	return cmd
}

func (m *Model) setStatus(text string) {
	m.statusMsg = text
	m.statusErr = false
}

// setError shows a failure in the status line. Not-found and validation
// failures are user errors; anything else is a storage failure the user can
// retry.
func (m *Model) setError(prefix string, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		m.statusMsg = fmt.Sprintf("%s: it no longer exists", prefix)
	case errors.Is(err, model.ErrValidation):
		m.statusMsg = fmt.Sprintf("%s: %v", prefix, err)
	default:
		m.statusMsg = fmt.Sprintf("%s: %v (press r to reload and try again)", prefix, err)
	}
	m.statusErr = true
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewHome:
		m.home, cmd = m.home.Update(msg)
	case ViewProjects:
		m.projectList, cmd = m.projectList.Update(msg)
	case ViewProjectDetail:
		m.projectDetail, cmd = m.projectDetail.Update(msg)
	case ViewProjectForm:
		m.projectForm, cmd = m.projectForm.Update(msg)
	case ViewConfirmDelete:
		m.confirmView, cmd = m.confirmView.Update(msg)
	case ViewSkills:
		m.skillsView, cmd = m.skillsView.Update(msg)
	case ViewCertifications:
		m.certView, cmd = m.certView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	note := fmt.Sprintf("%d projects · %d certifications", len(m.projects), len(m.certs))
	if !m.loaded {
		note = "loading"
	}
	header := m.layout.RenderHeader("CareerLog", note)
	tabs := m.layout.RenderTabs(tabLabels, m.activeTab)
	content := m.renderContent()

	status := m.keyHints()
	if m.statusMsg != "" {
		status = m.statusMsg
	}
	statusBar := m.layout.RenderStatusBar(status, m.statusErr)

	return m.layout.RenderWithFrame(header, tabs, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewHome:
		return m.home.View()
	case ViewProjects:
		return m.projectList.View()
	case ViewProjectDetail:
		return m.projectDetail.View()
	case ViewProjectForm:
		return m.projectForm.View()
	case ViewConfirmDelete:
		return m.confirmView.View()
	case ViewSkills:
		return m.skillsView.View()
	case ViewCertifications:
		return m.certView.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return ""
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewProjectDetail:
		return "esc back | e edit | d delete | j/k scroll"
	case ViewProjectForm:
		return "enter next | shift+tab previous | esc cancel"
	case ViewConfirmDelete:
		return "←/→ choose | enter confirm | esc cancel"
	case ViewSkills:
		return "s toggle sort | j/k move | tab next view | q quit"
	case ViewCertifications:
		if m.certView.Editing() {
			return "enter submit | esc cancel"
		}
		return "n new | e edit | d delete | tab next view | q quit"
	case ViewProjects:
		if m.projectList.Searching() {
			return "type to search | enter keep | esc clear"
		}
		if summary := m.projectList.FilterSummary(); summary != "" {
			return summary + " | esc clear"
		}
		return "/ search | f filter | enter open | n new | e edit | d delete | ? help"
	default:
		return "q quit | ? help | n new project | tab switch view"
	}
}
