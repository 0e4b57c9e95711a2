// internal/tui/app.go
//
// The main TUI for the proflow dashboard, built on bubbletea's Elm
// architecture: one App model, messages in, a rendered string out.
//
// Screens: the board (feature table + stats + analysis panel), a feature
// detail view, a quick status menu for one (feature, team) cell, an
// annotation prompt, and the creation form.

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/proflow/internal/analysis"
	"github.com/kingrea/proflow/internal/config"
	"github.com/kingrea/proflow/internal/engine"
	"github.com/kingrea/proflow/internal/logbook"
	"github.com/kingrea/proflow/internal/store"
	"github.com/kingrea/proflow/internal/track"
	"github.com/kingrea/proflow/internal/views"
)

// appState represents which "screen" we're on.
type appState int

const (
	stateBoard     appState = iota // main dashboard
	stateDetail                    // single feature detail
	stateQuickMenu                 // status picker for one cell
	statePrompt                    // reason/duration/estimate prompt
	stateCreate                    // new feature form
)

// analysisResultMsg carries the summarizer's prose back into the loop.
type analysisResultMsg struct {
	text string
}

// quickMenuState is the context for the status picker: which cell it was
// opened on and which option is highlighted.
type quickMenuState struct {
	featureID string
	team      track.Team
	current   track.Status
	selection int
}

// promptKind says what the annotation prompt is collecting.
type promptKind int

const (
	promptReason promptKind = iota
	promptCompletion
	promptEstimate
)

// promptState tracks the open annotation prompt. For reason/completion
// prompts the answer feeds the engine's resolver; estimate prompts call
// SetAnnotationOnly directly.
type promptState struct {
	kind      promptKind
	featureID string
	team      track.Team
	status    track.Status // status to apply when the prompt closes
	input     textinput.Model
}

// App is the main application model. It holds all TUI state; record state
// stays in the store and the engine is the only writer.
type App struct {
	state    appState
	config   *config.Config
	store    *store.Store
	engine   *engine.Engine
	analyzer *analysis.Analyzer
	logbook  *logbook.Logbook

	width  int
	height int

	// Board state
	searchInput   textinput.Model
	searchFocused bool
	teamFilter    int // -1 = all teams, otherwise index into track.Teams()
	rowSelection  int
	colSelection  int // index into track.Teams()

	// Analysis panel
	analysisText  string
	analysisStale bool
	analyzing     bool

	// Sub-screens
	detailID        string
	detailSelection int // team row in the detail view
	quickMenu       quickMenuState
	prompt          *promptState
	createForm      *createFormState

	// Pending prompt answer consumed by Resolve.
	pendingAnswer   string
	pendingAnswered bool
	pendingValid    bool

	statusMsg string
}

// NewApp wires the dashboard together. The analyzer may be nil, in which
// case the analyze action reports that it is not configured.
func NewApp(cfg *config.Config, st *store.Store, analyzer *analysis.Analyzer, log *logbook.Logbook) *App {
	search := textinput.New()
	search.Placeholder = "search features…"
	search.CharLimit = 80
	search.Width = 28

	app := &App{
		state:       stateBoard,
		config:      cfg,
		store:       st,
		analyzer:    analyzer,
		logbook:     log,
		searchInput: search,
		teamFilter:  -1,
		statusMsg:   "n: new feature · a: analyze · /: search · enter: cell menu · q: quit",
	}
	app.engine = engine.New(st, app, log)
	st.Subscribe(func(track.Feature) {
		// Any change dates a summary that was generated before it.
		if app.analysisText != "" {
			app.analysisStale = true
		}
	})
	return app
}

// Engine exposes the transition engine for the entry point and tests.
func (a *App) Engine() *engine.Engine {
	return a.engine
}

// Resolve implements engine.AnnotationResolver. The TUI collects answers
// through the prompt screen before invoking the engine, so by the time the
// engine asks, the answer (or the refusal) is already queued.
func (a *App) Resolve(kind engine.AnnotationKind, team track.Team, previous string) (string, bool) {
	if !a.pendingValid {
		return "", false
	}
	a.pendingValid = false
	return a.pendingAnswer, a.pendingAnswered
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update routes messages to the active screen.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case analysisResultMsg:
		a.analyzing = false
		a.analysisText = msg.text
		a.analysisStale = false
		a.logbook.Info("Analysis result received (%d chars)", len(msg.text))
		return a, nil
	}

	switch a.state {
	case stateBoard:
		return a.updateBoard(msg)
	case stateDetail:
		return a.updateDetail(msg)
	case stateQuickMenu:
		return a.updateQuickMenu(msg)
	case statePrompt:
		return a.updatePrompt(msg)
	case stateCreate:
		return a.updateCreate(msg)
	}
	return a, nil
}

// View renders the current screen.
func (a *App) View() string {
	switch a.state {
	case stateDetail:
		return a.renderDetail()
	case stateQuickMenu:
		return a.renderQuickMenu()
	case statePrompt:
		return a.renderPrompt()
	case stateCreate:
		return a.renderCreate()
	default:
		return a.renderBoard()
	}
}

// visibleFeatures applies the current search and team filter.
func (a *App) visibleFeatures() []track.Feature {
	return views.Filter(a.store.All(), a.searchInput.Value(), a.currentTeamFilter())
}

func (a *App) currentTeamFilter() views.TeamFilter {
	if a.teamFilter < 0 {
		return views.AllTeams()
	}
	return views.OnlyTeam(track.Teams()[a.teamFilter])
}

func (a *App) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	if a.searchFocused {
		switch keyMsg.String() {
		case "enter", "esc":
			a.searchFocused = false
			a.searchInput.Blur()
			return a, nil
		default:
			var cmd tea.Cmd
			a.searchInput, cmd = a.searchInput.Update(msg)
			a.rowSelection = 0
			return a, cmd
		}
	}

	switch keyMsg.String() {
	case "ctrl+c", "q":
		a.logbook.Info("Session closed")
		return a, tea.Quit
	case "/":
		a.searchFocused = true
		a.searchInput.Focus()
		return a, textinput.Blink
	case "tab":
		a.cycleTeamFilter(1)
	case "shift+tab":
		a.cycleTeamFilter(-1)
	case "up", "k":
		a.rowSelection = clamp(a.rowSelection-1, 0, maxRow(a))
	case "down", "j":
		a.rowSelection = clamp(a.rowSelection+1, 0, maxRow(a))
	case "left", "h":
		a.colSelection = clamp(a.colSelection-1, 0, track.TeamCount-1)
	case "right", "l":
		a.colSelection = clamp(a.colSelection+1, 0, track.TeamCount-1)
	case "n":
		return a.openCreateForm()
	case "a":
		return a.startAnalysis()
	case "o", " ":
		return a.openSelectedDetail()
	case "enter":
		return a.openQuickMenuAtSelection()
	}
	return a, nil
}

func (a *App) cycleTeamFilter(delta int) {
	// -1 (all) .. TeamCount-1, wrapping at both ends.
	span := track.TeamCount + 1
	idx := (a.teamFilter + 1 + delta + span) % span
	a.teamFilter = idx - 1
	a.rowSelection = 0
}

func maxRow(a *App) int {
	n := len(a.visibleFeatures())
	if n == 0 {
		return 0
	}
	return n - 1
}

func (a *App) selectedFeature() (track.Feature, bool) {
	visible := a.visibleFeatures()
	if len(visible) == 0 || a.rowSelection >= len(visible) {
		return track.Feature{}, false
	}
	return visible[a.rowSelection], true
}

func (a *App) openSelectedDetail() (tea.Model, tea.Cmd) {
	f, ok := a.selectedFeature()
	if !ok {
		return a, nil
	}
	a.detailID = f.ID
	a.detailSelection = 0
	a.state = stateDetail
	return a, nil
}

// openQuickMenuAtSelection opens the status picker for the highlighted
// cell. NONE cells have no quick menu; engaging a team is a detail-view
// action.
func (a *App) openQuickMenuAtSelection() (tea.Model, tea.Cmd) {
	f, ok := a.selectedFeature()
	if !ok {
		return a, nil
	}
	team := track.Teams()[a.colSelection]
	if f.Status(team) == track.StatusNone {
		a.statusMsg = team.Label() + " is not engaged on this feature; open the detail view to engage it"
		return a, nil
	}
	a.quickMenu = quickMenuState{featureID: f.ID, team: team, current: f.Status(team)}
	a.state = stateQuickMenu
	return a, nil
}

func (a *App) startAnalysis() (tea.Model, tea.Cmd) {
	if a.analyzing {
		return a, nil
	}
	a.analyzing = true
	a.logbook.Info("Analysis requested for %d feature(s)", a.store.Len())

	// Point-in-time copy: edits made while the request is in flight do not
	// touch the payload, and the answer is shown whenever it lands.
	snapshot := a.store.All()
	analyzer := a.analyzer
	return a, func() tea.Msg {
		if analyzer == nil {
			return analysisResultMsg{text: analysis.MsgNotConfigured}
		}
		return analysisResultMsg{text: analyzer.Analyze(context.Background(), snapshot)}
	}
}

func (a *App) updateQuickMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	options := track.ActiveStatuses()
	switch keyMsg.String() {
	case "esc":
		a.state = stateBoard
	case "up", "k":
		a.quickMenu.selection = clamp(a.quickMenu.selection-1, 0, len(options)-1)
	case "down", "j":
		a.quickMenu.selection = clamp(a.quickMenu.selection+1, 0, len(options)-1)
	case "enter":
		status := options[a.quickMenu.selection]
		returnTo := stateBoard
		if a.detailID != "" {
			returnTo = stateDetail
		}
		return a.applyStatus(a.quickMenu.featureID, a.quickMenu.team, status, returnTo)
	case "ctrl+c":
		return a, tea.Quit
	}
	return a, nil
}

// applyStatus runs a status change picked from a menu. BLOCKED and
// COMPLETED need an annotation, so those detour through the prompt screen;
// everything else hits the engine immediately.
func (a *App) applyStatus(featureID string, team track.Team, status track.Status, returnTo appState) (tea.Model, tea.Cmd) {
	switch status {
	case track.StatusBlocked:
		return a.openPrompt(promptReason, featureID, team, status)
	case track.StatusCompleted:
		return a.openPrompt(promptCompletion, featureID, team, status)
	default:
		a.engine.SetTeamStatus(featureID, team, status, engine.Annotations{})
		a.state = returnTo
		return a, nil
	}
}

func (a *App) openPrompt(kind promptKind, featureID string, team track.Team, status track.Status) (tea.Model, tea.Cmd) {
	feature, ok := a.store.Get(featureID)
	if !ok {
		a.state = stateBoard
		return a, nil
	}

	input := textinput.New()
	input.CharLimit = 120
	input.Width = 48
	switch kind {
	case promptReason:
		input.Placeholder = "why is " + team.Label() + " blocked?"
		input.SetValue(feature.BlockageReasons[team])
	case promptCompletion:
		input.Placeholder = "days spent by " + team.Label()
		input.SetValue(feature.CompletionDays[team])
	case promptEstimate:
		input.Placeholder = "estimated days for " + team.Label()
		input.SetValue(feature.EstimatedDays[team])
	}
	input.Focus()

	a.prompt = &promptState{kind: kind, featureID: featureID, team: team, status: status, input: input}
	a.state = statePrompt
	return a, textinput.Blink
}

func (a *App) updatePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.prompt == nil {
		a.state = stateBoard
		return a, nil
	}
	if keyMsg, isKey := msg.(tea.KeyMsg); isKey {
		switch keyMsg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "esc":
			return a.closePrompt(false)
		case "enter":
			return a.closePrompt(true)
		}
	}
	var cmd tea.Cmd
	a.prompt.input, cmd = a.prompt.input.Update(msg)
	return a, cmd
}

// closePrompt feeds the collected answer to the engine. For reason and
// completion prompts the answer is queued for the resolver so the engine's
// full fallback chain (answer, then previous value, then placeholder)
// applies; a dismissed prompt queues a refusal. Estimate prompts are
// direct edits.
func (a *App) closePrompt(submitted bool) (tea.Model, tea.Cmd) {
	p := a.prompt
	a.prompt = nil
	returnTo := stateBoard
	if a.detailID != "" {
		returnTo = stateDetail
	}

	if p.kind == promptEstimate {
		if submitted {
			a.engine.SetAnnotationOnly(p.featureID, p.team, engine.FieldEstimate, strings.TrimSpace(p.input.Value()))
		}
		a.state = returnTo
		return a, nil
	}

	a.pendingAnswer = p.input.Value()
	a.pendingAnswered = submitted
	a.pendingValid = true
	a.engine.SetTeamStatus(p.featureID, p.team, p.status, engine.Annotations{})
	a.pendingValid = false

	a.state = returnTo
	return a, nil
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
