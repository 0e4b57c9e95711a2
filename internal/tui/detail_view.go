package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/proflow/internal/engine"
	"github.com/kingrea/proflow/internal/track"
	"github.com/kingrea/proflow/internal/views"
)

func (a *App) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	feature, exists := a.store.Get(a.detailID)
	if !exists {
		a.detailID = ""
		a.state = stateBoard
		return a, nil
	}
	team := track.Teams()[a.detailSelection]

	switch keyMsg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc", "q":
		a.detailID = ""
		a.state = stateBoard
	case "up", "k":
		a.detailSelection = clamp(a.detailSelection-1, 0, track.TeamCount-1)
	case "down", "j":
		a.detailSelection = clamp(a.detailSelection+1, 0, track.TeamCount-1)
	case "enter":
		// Unlike the board, the detail view can engage a NONE team.
		a.quickMenu = quickMenuState{featureID: feature.ID, team: team, current: feature.Status(team)}
		a.state = stateQuickMenu
	case "r":
		if feature.Status(team) == track.StatusBlocked {
			return a.openPrompt(promptReason, feature.ID, team, track.StatusBlocked)
		}
		a.statusMsg = team.Label() + " is not blocked"
	case "d":
		if feature.Status(team) == track.StatusCompleted {
			return a.openPrompt(promptCompletion, feature.ID, team, track.StatusCompleted)
		}
		a.statusMsg = team.Label() + " is not completed"
	case "e":
		if feature.Status(team) != track.StatusNone {
			return a.openPrompt(promptEstimate, feature.ID, team, feature.Status(team))
		}
		a.statusMsg = team.Label() + " is not engaged on this feature"
	case "x":
		if feature.Status(team) != track.StatusNone {
			a.engine.SetTeamStatus(feature.ID, team, track.StatusNone, engine.Annotations{})
		}
	}
	return a, nil
}

func (a *App) renderDetail() string {
	feature, ok := a.store.Get(a.detailID)
	if !ok {
		return "feature no longer exists"
	}

	lines := []string{
		titleStyle.Render(feature.Name),
		panelStyle.Render(fmt.Sprintf("%s · priority %s", feature.ProjectName, feature.Priority)),
	}
	if feature.Description != "" {
		lines = append(lines, panelStyle.Render(wrapText(feature.Description, 70)))
	}
	progress := views.OverallProgress(feature)
	lines = append(lines, "", fmt.Sprintf("Progress %s %d%%", renderProgressBar(progress, 24), progress), "")

	for i, team := range track.Teams() {
		lines = append(lines, a.renderTeamLine(i, feature, team))
	}

	lines = append(lines, "", dimStyle.Render("enter=status  r=reason  d=days  e=estimate  x=disengage  esc=back"))
	return strings.Join(lines, "\n")
}

func (a *App) renderTeamLine(idx int, feature track.Feature, team track.Team) string {
	indicator := " "
	if idx == a.detailSelection {
		indicator = ">"
	}
	status := feature.Status(team)
	line := fmt.Sprintf("%s %s %s", indicator, pad(team.Label(), 10), statusCellStyle(status).Render(pad(status.Label(), 12)))

	var notes []string
	if reason, ok := feature.BlockageReasons[team]; ok {
		notes = append(notes, "blocked: "+reason)
	}
	if days, ok := feature.CompletionDays[team]; ok {
		notes = append(notes, "took "+days+"d")
	}
	if estimate, ok := feature.EstimatedDays[team]; ok {
		notes = append(notes, "est "+estimate+"d")
	}
	if len(notes) > 0 {
		line += " " + dimStyle.Render(strings.Join(notes, " · "))
	}
	return line
}
