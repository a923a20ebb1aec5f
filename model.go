package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/liquidity-ai/liquidity-tui/internal/api"
	"github.com/liquidity-ai/liquidity-tui/internal/config"
)

const appName = "Liquidity AI"
const appTagline = "Stop Bleeding Capital. Start Claiming Yours."

// ---------------------------------------------------------------------------
// Phases
// ---------------------------------------------------------------------------

// The flow is strictly linear; restarting the program is the only way back to
// the upload phase.
const (
	phaseUpload = iota
	phaseScanning
	phaseDashboard
)

// ---------------------------------------------------------------------------
// Modal overlays (orthogonal to the phase flow)
// ---------------------------------------------------------------------------

type modalKind int

const (
	modalNone modalKind = iota
	modalDetail
	modalAlert
	modalCatalog
)

// ---------------------------------------------------------------------------
// File-picker item (implements list.Item)
// ---------------------------------------------------------------------------

type fileItem struct {
	name   string
	size   int64
	picked bool
}

func (f fileItem) Title() string       { return f.name }
func (f fileItem) Description() string { return "" }
func (f fileItem) FilterValue() string { return f.name }

type fileItemDelegate struct{}

func (d fileItemDelegate) Height() int  { return 1 }
func (d fileItemDelegate) Spacing() int { return 0 }
func (d fileItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}
func (d fileItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry, ok := item.(fileItem)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = "> "
	}
	mark := "[ ]"
	if entry.picked {
		mark = "[x]"
	}
	line := fmt.Sprintf("%s%s %s  %s", prefix, mark, entry.name, formatFileSize(entry.size))
	fmt.Fprint(w, padRight(line, m.Width()))
}

// ---------------------------------------------------------------------------
// Bubble Tea messages
// ---------------------------------------------------------------------------

type filesLoadedMsg struct {
	items []list.Item
	err   error
}

// scanDoneMsg carries the analysis outcome. It never carries an error: the
// degrade-to-demo policy resolves every failure on this path to the demo
// dataset, with demo marking the degrade explicitly.
type scanDoneMsg struct {
	result    *api.AnalysisResult
	backendUp bool
	demo      bool
}

type scanTickMsg struct{}

type scanFinishedMsg struct{}

type alertDoneMsg struct {
	resp *api.AlertResponse
	err  error
}

type alertDismissMsg struct{}

type alertCancelledMsg struct {
	resp *api.CancelResponse
	err  error
}

type catalogLoadedMsg struct {
	catalog *api.SubsidyList
	err     error
}

type exportDoneMsg struct {
	path  string
	count int
	err   error
}

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

type model struct {
	cfg    config.Config
	client *api.Client
	log    zerolog.Logger
	th     theme
	keys   keyMap

	phase int

	// upload phase
	basePath  string
	fileList  list.Model
	listReady bool

	// scanning phase
	scanID    string
	progress  int
	stage     int
	docCount  int
	finishing bool

	// analysis outcome
	result    *api.AnalysisResult
	sessionID string
	backendUp bool
	demo      bool

	// dashboard
	cursor      int
	topIndex    int
	filtering   bool
	filterInput textinput.Model
	searchQuery string
	alertID     string

	// modals
	modal   modalKind
	detail  *api.SubsidyOpportunity
	alert   alertModal
	catalog catalogState

	status string
	width  int
	height int
}

func newModel(cfg config.Config, client *api.Client, log zerolog.Logger) model {
	listModel := list.New([]list.Item{}, fileItemDelegate{}, 0, 0)
	listModel.Title = "Documents"
	listModel.Styles.NoItems = lipgloss.NewStyle()
	listModel.SetShowStatusBar(false)
	listModel.SetFilteringEnabled(false)
	listModel.SetShowHelp(false)
	listModel.DisableQuitKeybindings()

	filterInput := textinput.New()
	filterInput.Placeholder = "filter opportunities"
	filterInput.CharLimit = 64

	cwd, _ := os.Getwd()
	return model{
		cfg:         cfg,
		client:      client,
		log:         log,
		th:          themeByName(cfg.UI.Theme),
		keys:        newKeyMap(),
		phase:       phaseUpload,
		basePath:    cwd,
		fileList:    listModel,
		filterInput: filterInput,
		alert:       newAlertModal(),
		backendUp:   true,
	}
}

// ---------------------------------------------------------------------------
// Bubble Tea interface: Init / Update / View
// ---------------------------------------------------------------------------

func (m model) Init() tea.Cmd {
	return loadFilesCmd(m.basePath)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case filesLoadedMsg:
		return m.handleFilesLoaded(msg)
	case scanDoneMsg:
		return m.handleScanDone(msg)
	case scanTickMsg:
		return m.handleScanTick()
	case scanFinishedMsg:
		return m.handleScanFinished()
	case alertDoneMsg:
		return m.handleAlertDone(msg)
	case alertDismissMsg:
		return m.handleAlertDismiss()
	case alertCancelledMsg:
		return m.handleAlertCancelled(msg)
	case catalogLoadedMsg:
		return m.handleCatalogLoaded(msg)
	case exportDoneMsg:
		return m.handleExportDone(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeList()
		m.ensureCursorInWindow()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) View() string {
	var body string
	switch m.phase {
	case phaseUpload:
		body = m.uploadView()
	case phaseScanning:
		body = m.scanningView()
	case phaseDashboard:
		body = m.dashboardView()
	}

	main := m.renderHeader() + "\n\n" + body
	screen := m.placeWithFooter(main)
	if m.modal != modalNone {
		return m.composeModal(screen)
	}
	return screen
}

// ---------------------------------------------------------------------------
// Message handlers
// ---------------------------------------------------------------------------

func (m model) handleFilesLoaded(msg filesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = fmt.Sprintf("File scan error: %v", msg.err)
		return m, nil
	}
	m.fileList.SetItems(msg.items)
	m.listReady = true
	if len(msg.items) == 0 {
		m.status = "No documents found in " + m.basePath
	} else {
		m.status = "Space marks files, enter starts the scan."
	}
	return m, nil
}

func (m model) handleScanDone(msg scanDoneMsg) (tea.Model, tea.Cmd) {
	m.result = msg.result
	m.backendUp = msg.backendUp
	m.demo = msg.demo
	m.sessionID = msg.result.SessionID
	if m.phase == phaseScanning && m.progress >= scanProgressMax && !m.finishing {
		m.finishing = true
		return m, scanFinishCmd()
	}
	return m, nil
}

// handleScanTick advances the scan animation. The counter moves twice as fast
// once the result has arrived, and holds at the top until it does: leaving the
// scanning phase requires both the timer and the data.
func (m model) handleScanTick() (tea.Model, tea.Cmd) {
	if m.phase != phaseScanning || m.finishing {
		return m, nil
	}
	if m.progress >= scanProgressMax {
		if m.result != nil {
			m.finishing = true
			return m, scanFinishCmd()
		}
		return m, scanTickCmd()
	}
	step := 1
	if m.result != nil {
		step = 2
	}
	m.progress += step
	if m.progress > scanProgressMax {
		m.progress = scanProgressMax
	}
	m.stage = scanStageFor(m.progress)
	if m.progress >= scanProgressMax && m.result != nil {
		m.finishing = true
		return m, scanFinishCmd()
	}
	return m, scanTickCmd()
}

func (m model) handleScanFinished() (tea.Model, tea.Cmd) {
	if m.phase != phaseScanning || m.result == nil {
		return m, nil
	}
	m.phase = phaseDashboard
	m.cursor = 0
	m.topIndex = 0
	if m.demo {
		m.status = "Showing demonstration data."
	} else {
		m.status = "Enter opens details, e sets up alerts, x exports CSV."
	}
	return m, nil
}

func (m model) handleExportDone(msg exportDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = fmt.Sprintf("Export failed: %v", msg.err)
		return m, nil
	}
	m.status = fmt.Sprintf("Exported %d opportunities to %s", msg.count, msg.path)
	return m, nil
}

func (m model) handleCatalogLoaded(msg catalogLoadedMsg) (tea.Model, tea.Cmd) {
	m.catalog.loading = false
	if msg.err != nil {
		m.catalog.err = msg.err.Error()
		return m, nil
	}
	m.catalog.err = ""
	m.catalog.entries = msg.catalog.Subsidies
	m.catalog.cursor = 0
	return m, nil
}

// ---------------------------------------------------------------------------
// Derived state
// ---------------------------------------------------------------------------

// visibleOpportunities applies the dashboard fuzzy filter to the result set.
func (m model) visibleOpportunities() []api.SubsidyOpportunity {
	if m.result == nil {
		return nil
	}
	return filterOpportunities(m.result.Subsidies, m.searchQuery)
}

// alertSessionID is the session an alert subscription is bound to. Demo
// results carry the mock session, matching backend expectations.
func (m model) alertSessionID() string {
	if m.sessionID != "" {
		return m.sessionID
	}
	return api.DemoSessionID
}

func (m *model) resizeList() {
	if m.width == 0 || m.height == 0 {
		return
	}
	listWidth := min(70, m.width-6)
	if listWidth < 40 {
		listWidth = 40
	}
	m.fileList.SetWidth(listWidth)
	m.fileList.SetHeight(min(14, m.height-12))
}

func (m *model) ensureCursorInWindow() {
	visible := m.visibleTableRows()
	if visible <= 0 {
		return
	}
	if m.cursor < m.topIndex {
		m.topIndex = m.cursor
	} else if m.cursor >= m.topIndex+visible {
		m.topIndex = m.cursor - visible + 1
	}
	maxTop := len(m.visibleOpportunities()) - visible
	if maxTop < 0 {
		maxTop = 0
	}
	if m.topIndex > maxTop {
		m.topIndex = maxTop
	}
	if m.topIndex < 0 {
		m.topIndex = 0
	}
}

func (m *model) visibleTableRows() int {
	if m.height == 0 {
		return 10
	}
	available := m.height - 18
	if available < 3 {
		available = 3
	}
	if available > 20 {
		available = 20
	}
	return available
}
