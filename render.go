package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// ---------------------------------------------------------------------------
// Styles are built from the active theme so dark/light switching works
// ---------------------------------------------------------------------------

func (t theme) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.accent()).Bold(true)
}

func (t theme) headerBarStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.text).Background(t.surface).Padding(0, 2)
}

func (t theme) statusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.subtext)
}

func (t theme) statusBarStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.subtext).Background(t.surface).Padding(0, 2)
}

func (t theme) footerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.subtext).Background(t.surface).Padding(0, 2)
}

func (t theme) sectionBoxStyle() lipgloss.Style {
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.muted).Padding(0, 1)
}

func (t theme) modalStyle() lipgloss.Style {
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.accent()).Padding(0, 1)
}

func (t theme) tableHeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.subtext).Bold(true)
}

func (t theme) lossStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.loss()).Bold(true)
}

func (t theme) badgeStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.warning()).Bold(true)
}

// ---------------------------------------------------------------------------
// Chrome
// ---------------------------------------------------------------------------

func (m model) renderHeader() string {
	name := lipgloss.NewStyle().Foreground(m.th.accent()).Bold(true).Background(m.th.surface).Render(appName)
	tagline := lipgloss.NewStyle().Foreground(m.th.muted).Background(m.th.surface).Render(appTagline)
	content := name + "  " + tagline
	if m.demo && m.phase == phaseDashboard {
		badge := m.th.badgeStyle().Background(m.th.surface).Render("  [Demo Mode]")
		content += badge
	}
	if m.width <= 0 {
		return m.th.headerBarStyle().Render(content)
	}
	return m.th.headerBarStyle().Width(m.width).Render(content)
}

func (m model) renderSection(title, content string) string {
	contentWidth := m.sectionContentWidth()
	header := padRight(m.th.titleStyle().Render(title), contentWidth)
	separator := lipgloss.NewStyle().Foreground(m.th.muted).Render(strings.Repeat("─", contentWidth))
	section := m.th.sectionBoxStyle().Width(m.sectionWidth()).Render(header + "\n" + separator + "\n" + content)
	if m.width == 0 {
		return section
	}
	return lipgloss.Place(m.width, lipgloss.Height(section), lipgloss.Center, lipgloss.Top, section)
}

func (m model) renderFooter(bindings []key.Binding) string {
	bg := m.th.surface
	keyStyle := lipgloss.NewStyle().Foreground(m.th.accent()).Bold(true).Background(bg)
	descStyle := lipgloss.NewStyle().Foreground(m.th.subtext).Background(bg)
	space := lipgloss.NewStyle().Background(bg).Render(" ")
	sep := lipgloss.NewStyle().Background(bg).Render("  ")

	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, keyStyle.Render(help.Key)+space+descStyle.Render(help.Desc))
	}
	content := strings.Join(parts, sep)

	if m.width == 0 {
		return m.th.footerStyle().Render(content)
	}
	return m.th.footerStyle().Width(m.width).Render(content)
}

func (m model) renderStatus() string {
	flat := strings.ReplaceAll(m.status, "\n", " ")
	if m.width == 0 {
		return m.th.statusBarStyle().Render(flat)
	}
	return m.th.statusBarStyle().Width(m.width).Render(flat)
}

func (m model) placeWithFooter(body string) string {
	statusLine := m.renderStatus()
	footer := m.renderFooter(m.footerBindings())
	if m.height == 0 {
		return body + "\n\n" + statusLine + "\n" + footer
	}
	contentHeight := m.height - 2
	if contentHeight < 1 {
		contentHeight = 1
	}
	if lipgloss.Height(body) >= contentHeight {
		return body + "\n" + statusLine + "\n" + footer
	}
	main := lipgloss.Place(m.width, contentHeight, lipgloss.Left, lipgloss.Top, body)
	// Full-width lines prevent ghosting from previous frames.
	lines := splitLines(main)
	for i, line := range lines {
		lines[i] = padRight(line, m.width)
	}
	main = strings.Join(lines, "\n")
	return main + "\n" + statusLine + "\n" + footer
}

func (m *model) sectionContentWidth() int {
	if m.width == 0 {
		return 80
	}
	frameH := m.th.sectionBoxStyle().GetHorizontalFrameSize()
	contentWidth := m.sectionWidth() - frameH
	if contentWidth < 1 {
		contentWidth = 1
	}
	return contentWidth
}

func (m *model) sectionWidth() int {
	if m.width == 0 {
		return 80
	}
	width := m.width - 4
	if width < 20 {
		width = m.width
	}
	return width
}

// ---------------------------------------------------------------------------
// Upload view
// ---------------------------------------------------------------------------

func (m model) uploadView() string {
	if !m.listReady {
		return m.th.statusStyle().Render("Scanning for documents...")
	}

	intro := m.th.statusStyle().Render("Upload your financial documents to detect capital leakage.\n" +
		"Supported: PDF, Excel, CSV.")

	picked := 0
	for _, it := range m.fileList.Items() {
		if entry, ok := it.(fileItem); ok && entry.picked {
			picked++
		}
	}
	summary := fmt.Sprintf("Selected files: %d", picked)
	if picked == 0 {
		summary = "No files marked yet. Enter scans the highlighted file."
	}

	body := intro + "\n\n" + m.fileList.View() + "\n" + m.th.statusStyle().Render(summary)
	if m.cfg.UI.CookieConsent == "" {
		notice := lipgloss.NewStyle().Foreground(m.th.muted).Render(
			"Allow anonymous usage logging? y accepts, n declines.")
		body += "\n\n" + notice
	}
	return m.renderSection("Start AI Scan", body)
}

// ---------------------------------------------------------------------------
// Scanning view
// ---------------------------------------------------------------------------

func (m model) scanningView() string {
	stage := scanStages[m.stage]
	label := m.th.titleStyle().Render(stage.label)
	percent := m.th.lossStyle().Render(fmt.Sprintf("%d%%", m.progress))

	barWidth := min(48, m.sectionContentWidth())
	bar := renderProgressBar(barWidth, m.progress, scanProgressMax, m.th)

	dots := make([]string, len(scanStages))
	for i := range scanStages {
		if i <= m.stage {
			dots[i] = lipgloss.NewStyle().Foreground(m.th.loss()).Render("●")
		} else {
			dots[i] = lipgloss.NewStyle().Foreground(m.th.muted).Render("○")
		}
	}

	count := fmt.Sprintf("Analyzing %d document(s)", m.docCount)
	lines := []string{label, m.th.statusStyle().Render(count), "", percent, "", bar, "", strings.Join(dots, " ")}
	if m.result != nil {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(m.th.success()).Render("✓ Data received from server"))
	}
	return m.renderSection("Scanning", strings.Join(lines, "\n"))
}

// ---------------------------------------------------------------------------
// String helpers
// ---------------------------------------------------------------------------

// splitLines splits on newlines, always returning at least one element.
func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

func maxLineWidth(lines []string) int {
	widest := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > widest {
			widest = w
		}
	}
	return widest
}

// padRight pads s with spaces so its visual width equals width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// truncate shortens s to width cells, appending an ellipsis if cut.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

func renderProgressBar(width, value, maxValue int, t theme) string {
	if width < 4 {
		width = 4
	}
	filled := width * value / maxValue
	if filled > width {
		filled = width
	}
	bar := lipgloss.NewStyle().Foreground(t.loss()).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(t.surface).Render(strings.Repeat("░", width-filled))
	return bar
}
