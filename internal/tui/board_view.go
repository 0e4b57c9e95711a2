package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/proflow/internal/track"
	"github.com/kingrea/proflow/internal/views"
)

var (
	titleStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	headerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC")).Bold(true)
	selectedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	statusBarStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
	panelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
	cellCompleted   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	cellInProgress  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	cellWaiting     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true)
	cellBlocked     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	cellNone        = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))
	highlightedCell = lipgloss.NewStyle().Reverse(true)
)

const (
	nameColWidth = 26
	prioColWidth = 4
	doneColWidth = 5
	teamColWidth = 5
)

func statusCellStyle(status track.Status) lipgloss.Style {
	switch status {
	case track.StatusCompleted:
		return cellCompleted
	case track.StatusInProgress:
		return cellInProgress
	case track.StatusWaiting:
		return cellWaiting
	case track.StatusBlocked:
		return cellBlocked
	default:
		return cellNone
	}
}

// statusGlyph is the two-character marker shown in a board cell.
func statusGlyph(status track.Status) string {
	switch status {
	case track.StatusCompleted:
		return "✓"
	case track.StatusInProgress:
		return "▶"
	case track.StatusWaiting:
		return "…"
	case track.StatusBlocked:
		return "✗"
	default:
		return "·"
	}
}

func (a *App) renderBoard() string {
	visible := a.visibleFeatures()

	lines := []string{titleStyle.Render("proflow"), ""}
	lines = append(lines, a.renderFilterLine())
	lines = append(lines, "")
	lines = append(lines, a.renderBoardHeader())

	if len(visible) == 0 {
		lines = append(lines, dimStyle.Render("  no features match"))
	}
	for i, f := range visible {
		lines = append(lines, a.renderFeatureRow(i, f))
	}

	lines = append(lines, "", a.renderStatsPanel(visible))
	if panel := a.renderAnalysisPanel(); panel != "" {
		lines = append(lines, "", panel)
	}
	if tail := a.renderLogTail(); tail != "" {
		lines = append(lines, "", tail)
	}
	lines = append(lines, "", statusBarStyle.Render(a.statusMsg))
	return strings.Join(lines, "\n")
}

func (a *App) renderFilterLine() string {
	filter := "all teams"
	if a.teamFilter >= 0 {
		filter = track.Teams()[a.teamFilter].Label()
	}
	search := a.searchInput.View()
	if !a.searchFocused && a.searchInput.Value() == "" {
		search = dimStyle.Render("/ to search")
	}
	return fmt.Sprintf("Team: %s · %s", headerStyle.Render(filter), search)
}

func (a *App) renderBoardHeader() string {
	cols := []string{
		headerStyle.Render(pad("Feature", nameColWidth)),
		headerStyle.Render(pad("Pri", prioColWidth)),
		headerStyle.Render(pad("Done", doneColWidth)),
	}
	for i, team := range track.Teams() {
		label := pad(team.Short(), teamColWidth)
		if i == a.colSelection {
			label = selectedStyle.Render(label)
		} else {
			label = headerStyle.Render(label)
		}
		cols = append(cols, label)
	}
	return "  " + strings.Join(cols, " ")
}

func (a *App) renderFeatureRow(idx int, f track.Feature) string {
	indicator := " "
	if idx == a.rowSelection {
		indicator = ">"
	}
	name := pad(f.Name, nameColWidth)
	if idx == a.rowSelection {
		name = selectedStyle.Render(name)
	}
	cols := []string{
		name,
		pad(f.Priority, prioColWidth),
		pad(fmt.Sprintf("%d%%", views.OverallProgress(f)), doneColWidth),
	}
	for col, team := range track.Teams() {
		status := f.Status(team)
		cell := pad(statusGlyph(status), teamColWidth)
		rendered := statusCellStyle(status).Render(cell)
		if idx == a.rowSelection && col == a.colSelection {
			rendered = highlightedCell.Render(cell)
		}
		cols = append(cols, rendered)
	}
	return indicator + " " + strings.Join(cols, " ")
}

func (a *App) renderStatsPanel(visible []track.Feature) string {
	dist := views.StatusDistribution(visible, a.currentTeamFilter())
	progress := 0
	if dist.Total() > 0 {
		progress = dist.Completed * 100 / dist.Total()
	}

	bar := renderProgressBar(progress, 24)
	distLine := fmt.Sprintf("%s %d  %s %d  %s %d  %s %d",
		cellCompleted.Render("done"), dist.Completed,
		cellInProgress.Render("active"), dist.InProgress,
		cellWaiting.Render("waiting"), dist.Waiting,
		cellBlocked.Render("blocked"), dist.Blocked,
	)
	return panelStyle.Render(fmt.Sprintf("Progress %s %d%%", bar, progress)) + "\n" + distLine
}

func renderProgressBar(percent, width int) string {
	filled := percent * width / 100
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

func (a *App) renderAnalysisPanel() string {
	if a.analyzing {
		return panelStyle.Render("Analyzing board…")
	}
	if a.analysisText == "" {
		return ""
	}
	header := headerStyle.Render("Analysis")
	if a.analysisStale {
		header += " " + dimStyle.Render("(board changed since)")
	}
	return header + "\n" + panelStyle.Render(wrapText(a.analysisText, 78))
}

func (a *App) renderLogTail() string {
	lines, _ := a.logbook.Tail(3)
	if len(lines) == 0 {
		return ""
	}
	return dimStyle.Render(strings.Join(lines, "\n"))
}

func (a *App) renderQuickMenu() string {
	feature, ok := a.store.Get(a.quickMenu.featureID)
	if !ok {
		return "feature no longer exists"
	}
	lines := []string{
		titleStyle.Render(fmt.Sprintf("%s · %s", feature.Name, a.quickMenu.team.Label())),
		"",
	}
	for i, status := range track.ActiveStatuses() {
		indicator := " "
		if i == a.quickMenu.selection {
			indicator = ">"
		}
		label := status.Label()
		if status == a.quickMenu.current {
			label += " (current)"
		}
		lines = append(lines, fmt.Sprintf("%s %s", indicator, statusCellStyle(status).Render(label)))
	}
	lines = append(lines, "", dimStyle.Render("enter=apply  esc=cancel"))
	return strings.Join(lines, "\n")
}

func (a *App) renderPrompt() string {
	if a.prompt == nil {
		return ""
	}
	var title string
	switch a.prompt.kind {
	case promptReason:
		title = fmt.Sprintf("Blockage reason · %s", a.prompt.team.Label())
	case promptCompletion:
		title = fmt.Sprintf("Days to complete · %s", a.prompt.team.Label())
	case promptEstimate:
		title = fmt.Sprintf("Estimated days · %s", a.prompt.team.Label())
	}
	lines := []string{
		titleStyle.Render(title),
		"",
		a.prompt.input.View(),
		"",
		dimStyle.Render("enter=save  esc=skip"),
	}
	return strings.Join(lines, "\n")
}

func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(runes))
}

func wrapText(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}
	var out []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			out = append(out, line)
			line = word
			continue
		}
		line += " " + word
	}
	out = append(out, line)
	return strings.Join(out, "\n")
}
