package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ---------------------------------------------------------------------------
// Dashboard
// ---------------------------------------------------------------------------

func (m model) dashboardView() string {
	if m.result == nil {
		return m.th.statusStyle().Render("No analysis loaded.")
	}
	sections := []string{
		m.heroCard(),
		m.benchmarkCard(),
		m.opportunityTable(),
	}
	return strings.Join(sections, "\n")
}

// heroCard shows the headline leakage figure and analysis metadata.
func (m model) heroCard() string {
	r := m.result
	amount := m.th.lossStyle().Render(formatCurrency(r.TotalLeakage))
	label := m.th.statusStyle().Render("estimated annual capital leakage")

	meta := fmt.Sprintf("%d document(s) · analyzed %s", r.DocumentCount, formatAnalyzedAt(r.AnalyzedAt))
	metaLine := lipgloss.NewStyle().Foreground(m.th.muted).Render(meta)

	body := amount + " " + label + "\n" + metaLine
	return m.renderSection("Capital Leakage", body)
}

// benchmarkCard draws claim-rate bars for the company against its peers.
func (m model) benchmarkCard() string {
	b := m.result.Benchmark
	width := min(40, m.sectionContentWidth()-28)
	if width < 10 {
		width = 10
	}

	rows := []struct {
		label string
		value float64
		color lipgloss.Color
	}{
		{"You", b.You, m.th.loss()},
		{"Competitors", b.Competitors, m.th.success()},
		{"Industry avg", b.IndustryAverage, m.th.accent()},
	}

	var lines []string
	for _, row := range rows {
		bar := renderBenchmarkBar(width, row.value, row.color, m.th)
		label := padRight(row.label, 14)
		lines = append(lines, fmt.Sprintf("%s %s %s",
			m.th.statusStyle().Render(label), bar, formatPercent(row.value)))
	}

	gap := benchmarkGap(b.You, b.Competitors)
	callout := lipgloss.NewStyle().Foreground(m.th.warning()).Render(
		fmt.Sprintf("Competitors claim %s more of the subsidies available to them.", formatPercent(gap)))
	lines = append(lines, "", callout)

	return m.renderSection("Subsidy Claim Rate", strings.Join(lines, "\n"))
}

func renderBenchmarkBar(width int, value float64, color lipgloss.Color, t theme) string {
	filled := int(float64(width) * value / 100)
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(t.surface).Render(strings.Repeat("░", width-filled))
}

// ---------------------------------------------------------------------------
// Opportunity table
// ---------------------------------------------------------------------------

const (
	colGlyph    = 2
	colItem     = 26
	colSubsidy  = 24
	colCategory = 10
	colAmount   = 12
)

func (m model) opportunityTable() string {
	subs := m.visibleOpportunities()

	title := "Missed Opportunities"
	if m.searchQuery != "" {
		title = fmt.Sprintf("Missed Opportunities (filter: %s)", m.searchQuery)
	}

	var sb strings.Builder
	if m.filtering {
		sb.WriteString(m.filterInput.View())
		sb.WriteString("\n\n")
	}

	header := fmt.Sprintf("%s %s %s %s %s",
		padRight("", colGlyph),
		padRight("Item", colItem),
		padRight("Subsidy", colSubsidy),
		padRight("Category", colCategory),
		padRight("Amount", colAmount))
	sb.WriteString(m.th.tableHeaderStyle().Render(header))
	sb.WriteString("\n")

	if len(subs) == 0 {
		sb.WriteString(m.th.statusStyle().Render("No opportunities match."))
		return m.renderSection(title, sb.String())
	}

	visible := m.visibleTableRows()
	end := m.topIndex + visible
	if end > len(subs) {
		end = len(subs)
	}

	for i := m.topIndex; i < end; i++ {
		sub := subs[i]
		cat := m.th.categoryStyle(sub.Category)
		glyph := lipgloss.NewStyle().Foreground(cat.color).Render(padRight(cat.glyph, colGlyph))
		amount := lipgloss.NewStyle().Foreground(m.th.loss()).Render(padRight(formatCurrency(sub.Amount), colAmount))

		line := fmt.Sprintf("%s %s %s %s %s",
			glyph,
			padRight(truncate(sub.Item, colItem), colItem),
			padRight(truncate(sub.Subsidy, colSubsidy), colSubsidy),
			padRight(sub.Category, colCategory),
			amount)
		if i == m.cursor {
			line = lipgloss.NewStyle().Background(m.th.surface).Render("> ") + line
		} else {
			line = "  " + line
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	if len(subs) > visible {
		sb.WriteString(lipgloss.NewStyle().Foreground(m.th.muted).Render(
			fmt.Sprintf("%d-%d of %d", m.topIndex+1, end, len(subs))))
	}

	return m.renderSection(title, strings.TrimRight(sb.String(), "\n"))
}

// ---------------------------------------------------------------------------
// Modal compositing
// ---------------------------------------------------------------------------

func (m model) composeModal(screen string) string {
	var body string
	switch m.modal {
	case modalDetail:
		body = m.detailModalView()
	case modalAlert:
		body = m.alertModalView()
	case modalCatalog:
		body = m.catalogModalView()
	default:
		return screen
	}

	modal := m.th.modalStyle().Render(body)
	modalWidth := lipgloss.Width(modal)
	modalHeight := lipgloss.Height(modal)
	x := (m.width - modalWidth) / 2
	if x < 0 {
		x = 0
	}
	y := (m.height - modalHeight) / 2
	if y < 1 {
		y = 1
	}
	return m.overlay(screen, modal, x, y)
}

func (m model) detailModalView() string {
	if m.detail == nil {
		return "No subsidy selected."
	}
	d := m.detail
	cat := m.th.categoryStyle(d.Category)
	w := m.modalContentWidth()

	var lines []string
	lines = append(lines,
		m.th.titleStyle().Render(truncate(d.Subsidy, w)),
		lipgloss.NewStyle().Foreground(cat.color).Render(cat.glyph+" "+d.Category)+
			"  "+m.th.lossStyle().Render(formatCurrency(d.Amount)),
		"")
	lines = append(lines, wrapText("Applies to: "+d.Item, w)...)
	lines = append(lines, "")
	lines = append(lines, wrapText(d.Description, w)...)
	lines = append(lines, "")
	if d.Deadline != "" {
		lines = append(lines, m.th.statusStyle().Render("Deadline: ")+d.Deadline)
	}
	if len(d.Eligibility) > 0 {
		lines = append(lines, m.th.statusStyle().Render("Eligibility:"))
		for _, criterion := range d.Eligibility {
			lines = append(lines, wrapText("• "+criterion, w)...)
		}
	}
	lines = append(lines, "", lipgloss.NewStyle().Foreground(m.th.muted).Render("esc closes"))
	return strings.Join(lines, "\n")
}

func (m model) alertModalView() string {
	a := m.alert
	w := m.modalContentWidth()

	var lines []string
	lines = append(lines, m.th.titleStyle().Render("Email Alerts"), "")

	cursorMark := func(idx int) string {
		if a.cursor == idx {
			return "> "
		}
		return "  "
	}

	lines = append(lines, cursorMark(0)+a.input.View(), "")
	for i, opt := range a.options {
		mark := "[ ]"
		if opt.enabled {
			mark = "[x]"
		}
		label := fmt.Sprintf("%s%s %s", cursorMark(i+1), mark, opt.label)
		lines = append(lines, label)
		lines = append(lines, "      "+lipgloss.NewStyle().Foreground(m.th.muted).Render(truncate(opt.desc, w-6)))
	}
	lines = append(lines, "")

	switch a.status {
	case alertLoading:
		lines = append(lines, m.th.statusStyle().Render("Subscribing..."))
	case alertSuccess:
		lines = append(lines, lipgloss.NewStyle().Foreground(m.th.success()).Render("✓ "+a.message))
	case alertError:
		lines = append(lines, lipgloss.NewStyle().Foreground(m.th.loss()).Render("✗ "+a.message))
	default:
		lines = append(lines, lipgloss.NewStyle().Foreground(m.th.muted).Render("enter subscribes, esc closes"))
	}
	return strings.Join(lines, "\n")
}

func (m model) catalogModalView() string {
	c := m.catalog
	w := m.modalContentWidth()

	var lines []string
	lines = append(lines, m.th.titleStyle().Render("Available Subsidies"), "", c.query.View(), "")

	switch {
	case c.loading:
		lines = append(lines, m.th.statusStyle().Render("Loading catalog..."))
	case c.err != "":
		lines = append(lines, lipgloss.NewStyle().Foreground(m.th.loss()).Render(truncate(c.err, w)))
	default:
		visible := c.visible()
		if len(visible) == 0 {
			lines = append(lines, m.th.statusStyle().Render("No subsidies match."))
		}
		for i, entry := range visible {
			prefix := "  "
			if i == c.cursor {
				prefix = "> "
			}
			cat := m.th.categoryStyle(entry.Category)
			glyph := lipgloss.NewStyle().Foreground(cat.color).Render(cat.glyph)
			line := fmt.Sprintf("%s%s %s  %s", prefix, glyph,
				padRight(truncate(entry.Subsidy, 30), 30),
				m.th.lossStyle().Render(formatCurrency(entry.Amount)))
			lines = append(lines, line)
		}
	}
	lines = append(lines, "", lipgloss.NewStyle().Foreground(m.th.muted).Render("enter opens details, esc closes"))
	return strings.Join(lines, "\n")
}

func (m model) modalContentWidth() int {
	w := 56
	if m.width > 0 && m.width-8 < w {
		w = m.width - 8
	}
	if w < 20 {
		w = 20
	}
	return w
}

// wrapText greedily wraps s into lines at most width cells wide.
func wrapText(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	lines = append(lines, line)
	return lines
}
