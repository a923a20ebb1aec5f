package main

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/liquidity-ai/liquidity-tui/internal/config"
)

// ---------------------------------------------------------------------------
// Key dispatch
// ---------------------------------------------------------------------------

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal != modalNone {
		return m.updateModal(msg)
	}
	switch m.phase {
	case phaseUpload:
		return m.updateUpload(msg)
	case phaseScanning:
		return m.updateScanning(msg)
	case phaseDashboard:
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.updateDashboard(msg)
	}
	return m, nil
}

// ---------------------------------------------------------------------------
// Upload phase
// ---------------------------------------------------------------------------

func (m model) updateUpload(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "t":
		return m.toggleTheme()
	case " ":
		m.togglePickedAtCursor()
		return m, nil
	case "r":
		m.listReady = false
		return m, loadFilesCmd(m.basePath)
	case "y", "n":
		if m.cfg.UI.CookieConsent == "" {
			return m.answerConsent(msg.String() == "y")
		}
	case "enter":
		return m.startScan()
	}

	var cmd tea.Cmd
	m.fileList, cmd = m.fileList.Update(msg)
	return m, cmd
}

func (m *model) togglePickedAtCursor() {
	item, ok := m.fileList.SelectedItem().(fileItem)
	if !ok {
		return
	}
	item.picked = !item.picked
	m.fileList.SetItem(m.fileList.Index(), item)
}

// pickedFiles returns the absolute paths of marked files. With nothing
// marked, the cursor file stands in, so enter-on-a-file just works.
func (m model) pickedFiles() []string {
	var names []string
	for _, it := range m.fileList.Items() {
		if entry, ok := it.(fileItem); ok && entry.picked {
			names = append(names, entry.name)
		}
	}
	if len(names) == 0 {
		if entry, ok := m.fileList.SelectedItem().(fileItem); ok {
			names = append(names, entry.name)
		}
	}
	paths := make([]string, 0, len(names))
	for _, name := range names {
		paths = append(paths, filepath.Join(m.basePath, name))
	}
	return paths
}

// startScan enters the scanning phase synchronously; the network pipeline and
// the animation timer run as two independent commands joined by the tick
// handler.
func (m model) startScan() (tea.Model, tea.Cmd) {
	files := m.pickedFiles()
	if len(files) == 0 {
		m.status = "No files selected."
		return m, nil
	}

	m.status = ""
	m.phase = phaseScanning
	m.progress = 0
	m.stage = 0
	m.finishing = false
	m.result = nil
	m.demo = false
	m.docCount = len(files)
	m.scanID = newScanID()

	return m, tea.Batch(
		startScanCmd(m.client, m.log, m.scanID, files),
		scanTickCmd(),
	)
}

// ---------------------------------------------------------------------------
// Scanning phase
// ---------------------------------------------------------------------------

// The scan is not cancellable; only quitting the program interrupts it.
func (m model) updateScanning(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	}
	return m, nil
}

// ---------------------------------------------------------------------------
// Dashboard phase
// ---------------------------------------------------------------------------

func (m model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "t":
		return m.toggleTheme()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.ensureCursorInWindow()
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.visibleOpportunities())-1 {
			m.cursor++
			m.ensureCursorInWindow()
		}
		return m, nil
	case "enter":
		rows := m.visibleOpportunities()
		if m.cursor >= 0 && m.cursor < len(rows) {
			opp := rows[m.cursor]
			m.detail = &opp
			m.modal = modalDetail
		}
		return m, nil
	case "/":
		m.filtering = true
		m.filterInput.SetValue(m.searchQuery)
		m.filterInput.Focus()
		return m, nil
	case "esc":
		if m.searchQuery != "" {
			m.searchQuery = ""
			m.cursor = 0
			m.topIndex = 0
		}
		return m, nil
	case "e":
		m.alert = newAlertModal()
		m.modal = modalAlert
		return m, nil
	case "c":
		if m.alertID == "" {
			m.status = "No active alert to cancel."
			return m, nil
		}
		m.status = "Cancelling alert..."
		return m, cancelAlertCmd(m.client, m.alertID)
	case "s":
		m.modal = modalCatalog
		m.catalog = newCatalogState()
		return m, loadCatalogCmd(m.client)
	case "x":
		if m.result == nil || len(m.result.Subsidies) == 0 {
			m.status = "Nothing to export."
			return m, nil
		}
		return m, exportCmd(m.result.Subsidies, m.basePath)
	}
	return m, nil
}

func (m model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		m.filtering = false
		m.filterInput.Blur()
		return m, nil
	case "esc":
		m.filtering = false
		m.filterInput.Blur()
		m.searchQuery = ""
		m.cursor = 0
		m.topIndex = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	if q := m.filterInput.Value(); q != m.searchQuery {
		m.searchQuery = q
		m.cursor = 0
		m.topIndex = 0
	}
	return m, cmd
}

// answerConsent records the usage-logging choice once; the prompt never
// reappears after an answer is saved.
func (m model) answerConsent(accepted bool) (tea.Model, tea.Cmd) {
	if accepted {
		m.cfg.UI.CookieConsent = "accepted"
	} else {
		m.cfg.UI.CookieConsent = "declined"
	}
	if err := config.Save(m.cfg); err != nil {
		m.status = fmt.Sprintf("Choice saved for this session only: %v", err)
		return m, nil
	}
	m.status = "Preference saved."
	return m, nil
}

// ---------------------------------------------------------------------------
// Theme preference
// ---------------------------------------------------------------------------

// toggleTheme flips dark/light and saves the preference immediately; the
// config object owns persistence, views only read the palette.
func (m model) toggleTheme() (tea.Model, tea.Cmd) {
	if m.cfg.UI.Theme == "dark" {
		m.cfg.UI.Theme = "light"
	} else {
		m.cfg.UI.Theme = "dark"
	}
	m.th = themeByName(m.cfg.UI.Theme)
	if err := config.Save(m.cfg); err != nil {
		m.status = fmt.Sprintf("Theme saved for this session only: %v", err)
		return m, nil
	}
	m.status = "Theme: " + m.cfg.UI.Theme
	return m, nil
}
