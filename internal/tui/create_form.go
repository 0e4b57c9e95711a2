package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/kingrea/proflow/internal/views"
)

// createFormState holds the new-feature form and its field bindings. The
// huh form runs embedded inside the bubbletea loop rather than standalone.
type createFormState struct {
	form *huh.Form

	name        string
	project     string
	description string
	letter      string
	rank        string
}

func (a *App) openCreateForm() (tea.Model, tea.Cmd) {
	state := &createFormState{letter: "B", rank: "1"}

	// Existing project names come first so related work lands in the same
	// project; free-form entry stays possible through the custom option.
	projectOptions := []huh.Option[string]{}
	for _, name := range views.DistinctProjectNames(a.store.All()) {
		projectOptions = append(projectOptions, huh.NewOption(name, name))
	}

	fields := []huh.Field{
		huh.NewInput().
			Title("Feature name").
			Placeholder("e.g., Bulk invite flow").
			Value(&state.name).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("name is required")
				}
				return nil
			}),
	}
	if len(projectOptions) > 0 {
		fields = append(fields, huh.NewSelect[string]().
			Title("Project").
			Options(projectOptions...).
			Value(&state.project))
	} else {
		fields = append(fields, huh.NewInput().
			Title("Project").
			Placeholder("project name").
			Value(&state.project).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("project is required")
				}
				return nil
			}))
	}
	fields = append(fields,
		huh.NewText().
			Title("Description").
			CharLimit(500).
			Value(&state.description),
		huh.NewSelect[string]().
			Title("Severity").
			Options(
				huh.NewOption("A - Critical", "A"),
				huh.NewOption("B - Important", "B"),
				huh.NewOption("C - Nice to have", "C"),
			).
			Value(&state.letter),
		huh.NewInput().
			Title("Rank").
			Placeholder("1").
			Value(&state.rank).
			Validate(func(s string) error {
				n, err := strconv.Atoi(strings.TrimSpace(s))
				if err != nil || n < 1 {
					return fmt.Errorf("rank must be a positive number")
				}
				return nil
			}),
	)

	state.form = huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeBase())
	a.createForm = state
	a.state = stateCreate
	return a, state.form.Init()
}

func (a *App) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.createForm == nil {
		a.state = stateBoard
		return a, nil
	}
	if keyMsg, isKey := msg.(tea.KeyMsg); isKey {
		switch keyMsg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "esc":
			a.createForm = nil
			a.state = stateBoard
			return a, nil
		}
	}

	model, cmd := a.createForm.form.Update(msg)
	if form, ok := model.(*huh.Form); ok {
		a.createForm.form = form
	}

	if a.createForm.form.State == huh.StateCompleted {
		return a.submitCreateForm()
	}
	return a, cmd
}

func (a *App) submitCreateForm() (tea.Model, tea.Cmd) {
	state := a.createForm
	a.createForm = nil
	a.state = stateBoard

	created, err := a.engine.CreateFeature(state.name, state.project, state.description, state.letter, state.rank)
	if err != nil {
		a.statusMsg = "Create failed: " + err.Error()
		return a, nil
	}
	a.rowSelection = 0 // new features land at the top
	a.statusMsg = fmt.Sprintf("Created %s (%s)", created.Name, created.Priority)
	return a, nil
}

func (a *App) renderCreate() string {
	if a.createForm == nil {
		return ""
	}
	return titleStyle.Render("New feature") + "\n\n" + a.createForm.form.View()
}
