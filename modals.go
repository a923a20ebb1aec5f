package main

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/liquidity-ai/liquidity-tui/internal/api"
)

// alertDismissDelay is how long the success state stays up before the modal
// closes itself.
const alertDismissDelay = 2 * time.Second

// ---------------------------------------------------------------------------
// Email alert modal
// ---------------------------------------------------------------------------

type alertStatus int

const (
	alertIdle alertStatus = iota
	alertLoading
	alertSuccess
	alertError
)

type alertOption struct {
	id      string
	label   string
	desc    string
	enabled bool
}

// alertModal is a self-contained idle -> loading -> success|error machine.
// Error permits resubmission; success auto-dismisses.
type alertModal struct {
	input   textinput.Model
	options []alertOption
	cursor  int // 0 = email field, 1..len(options) = toggles
	status  alertStatus
	message string
}

func newAlertModal() alertModal {
	input := textinput.New()
	input.Placeholder = "your@email.com"
	input.CharLimit = 128
	input.Focus()

	return alertModal{
		input: input,
		options: []alertOption{
			{id: "weekly_summary", label: "Weekly Summary", desc: "Weekly overview of your subsidy opportunities", enabled: true},
			{id: "new_subsidies", label: "New Subsidies", desc: "Instant alerts when new subsidies match your profile", enabled: true},
			{id: "deadline_reminders", label: "Deadline Reminders", desc: "Notice 30 days before application deadlines"},
			{id: "market_updates", label: "Market Updates", desc: "Industry benchmark and competitor insights"},
		},
	}
}

func (a alertModal) selectedTypes() []string {
	var out []string
	for _, opt := range a.options {
		if opt.enabled {
			out = append(out, opt.id)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Catalog overlay
// ---------------------------------------------------------------------------

type catalogState struct {
	loading bool
	err     string
	entries []api.SubsidyOpportunity
	query   textinput.Model
	cursor  int
}

func newCatalogState() catalogState {
	query := textinput.New()
	query.Placeholder = "search subsidies"
	query.CharLimit = 64
	query.Focus()
	return catalogState{loading: true, query: query}
}

func (c catalogState) visible() []api.SubsidyOpportunity {
	return rankCatalog(c.entries, c.query.Value())
}

// ---------------------------------------------------------------------------
// Modal key handling
// ---------------------------------------------------------------------------

func (m model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalDetail:
		return m.updateDetailModal(msg)
	case modalAlert:
		return m.updateAlertModal(msg)
	case modalCatalog:
		return m.updateCatalogModal(msg)
	}
	return m, nil
}

func (m model) updateDetailModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "enter", "q":
		m.modal = modalNone
		m.detail = nil
		return m, nil
	}
	return m, nil
}

func (m model) updateAlertModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.modal = modalNone
		return m, nil
	case "up", "shift+tab":
		if m.alert.cursor > 0 {
			m.alert.cursor--
		}
		m.syncAlertFocus()
		return m, nil
	case "down", "tab":
		if m.alert.cursor < len(m.alert.options) {
			m.alert.cursor++
		}
		m.syncAlertFocus()
		return m, nil
	case " ":
		if m.alert.cursor > 0 {
			idx := m.alert.cursor - 1
			m.alert.options[idx].enabled = !m.alert.options[idx].enabled
			return m, nil
		}
	case "enter":
		return m.submitAlert()
	}

	if m.alert.cursor == 0 && m.alert.status != alertLoading {
		var cmd tea.Cmd
		m.alert.input, cmd = m.alert.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) syncAlertFocus() {
	if m.alert.cursor == 0 {
		m.alert.input.Focus()
	} else {
		m.alert.input.Blur()
	}
}

// submitAlert validates locally before any network call: an address without
// "@" fails straight to the error state with zero requests issued.
func (m model) submitAlert() (tea.Model, tea.Cmd) {
	if m.alert.status == alertLoading {
		return m, nil
	}
	email := strings.TrimSpace(m.alert.input.Value())
	if email == "" || !strings.Contains(email, "@") {
		m.alert.status = alertError
		m.alert.message = "Please enter a valid email address"
		return m, nil
	}
	m.alert.status = alertLoading
	m.alert.message = ""
	return m, setupAlertCmd(m.client, email, m.alertSessionID(), m.alert.selectedTypes())
}

func (m model) handleAlertDone(msg alertDoneMsg) (tea.Model, tea.Cmd) {
	if m.modal != modalAlert {
		return m, nil
	}
	if msg.err != nil {
		m.alert.status = alertError
		m.alert.message = msg.err.Error()
		return m, nil
	}
	m.alert.status = alertSuccess
	m.alert.message = "Email alerts configured successfully!"
	m.alertID = msg.resp.AlertID
	return m, alertDismissCmd()
}

func (m model) handleAlertDismiss() (tea.Model, tea.Cmd) {
	if m.modal == modalAlert && m.alert.status == alertSuccess {
		m.modal = modalNone
	}
	return m, nil
}

func (m model) handleAlertCancelled(msg alertCancelledMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = "Cancel failed: " + msg.err.Error()
		return m, nil
	}
	m.alertID = ""
	m.status = msg.resp.Message
	return m, nil
}

func (m model) updateCatalogModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.modal = modalNone
		return m, nil
	case "up":
		if m.catalog.cursor > 0 {
			m.catalog.cursor--
		}
		return m, nil
	case "down":
		if m.catalog.cursor < len(m.catalog.visible())-1 {
			m.catalog.cursor++
		}
		return m, nil
	case "enter":
		visible := m.catalog.visible()
		if m.catalog.cursor >= 0 && m.catalog.cursor < len(visible) {
			entry := visible[m.catalog.cursor]
			m.detail = &entry
			m.modal = modalDetail
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.catalog.query, cmd = m.catalog.query.Update(msg)
	if m.catalog.cursor >= len(m.catalog.visible()) {
		m.catalog.cursor = 0
	}
	return m, cmd
}
