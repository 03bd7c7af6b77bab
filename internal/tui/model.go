// Package tui is the interactive terminal browser: type-ahead search with debounced
// suggestions, a detail view with favorites, and playback of the demo explainers.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"

	"github.com/fairwaylabs/formats-api/internal/debounce"
	"github.com/fairwaylabs/formats-api/internal/demo"
	"github.com/fairwaylabs/formats-api/internal/logic"
	"github.com/fairwaylabs/formats-api/internal/models"
	"github.com/fairwaylabs/formats-api/internal/state"
)

type screen int

const (
	screenBrowse screen = iota
	screenDetail
	screenDemo
)

// sortCycle is the order ctrl+s steps through
var sortCycle = []models.SortKey{
	models.SortDefault,
	models.SortName,
	models.SortPopularity,
	models.SortDifficulty,
	models.SortPlayersMin,
	models.SortPlayersMax,
}

// suggestionsMsg carries the debounced suggestions for query
type suggestionsMsg struct {
	query string
	items []string
}

// demoStepMsg redraws the demo after the player moved
type demoStepMsg struct{}

// Config wires the browser to its services
type Config struct {
	Formats      logic.FormatService
	Sessions     logic.SessionService
	SessionID    string
	Clock        clockwork.Clock
	SuggestDelay time.Duration
	DemoDelay    time.Duration
	Styles       *Styles
}

// Model is the bubbletea model of the browser. It is used through a pointer so
// timer callbacks and the program share one sender.
type Model struct {
	ctx       context.Context
	formats   logic.FormatService
	sessions  logic.SessionService
	sessionID string
	clock     clockwork.Clock
	demoDelay time.Duration
	styles    Styles

	send      func(tea.Msg)
	suggester *debounce.Debouncer[string]

	input       textinput.Model
	ui          models.UIState
	result      *models.FormatListResponse
	suggestions []string
	favorites   map[string]bool
	cursor      int

	screen   screen
	selected *models.Format
	player   *demo.Player

	status string
	err    error
	width  int
}

// New builds the browser and loads the session's saved browse state
func New(ctx context.Context, cfg Config) *Model {
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	styles := DefaultStyles()
	if cfg.Styles != nil {
		styles = *cfg.Styles
	}

	input := textinput.New()
	input.Placeholder = "Search formats..."
	input.CharLimit = 100
	input.Focus()

	m := &Model{
		ctx:       ctx,
		formats:   cfg.Formats,
		sessions:  cfg.Sessions,
		sessionID: cfg.SessionID,
		clock:     cfg.Clock,
		demoDelay: cfg.DemoDelay,
		styles:    styles,
		input:     input,
		favorites: make(map[string]bool),
		ui:        models.DefaultUIState(),
	}
	m.suggester = debounce.New(cfg.Clock, cfg.SuggestDelay, func(q string) {
		m.emit(suggestionsMsg{query: q, items: m.formats.Suggest(m.ctx, q)})
	})

	if ui, err := m.sessions.UIState(ctx, m.sessionID); err == nil {
		m.ui = ui
		m.input.SetValue(ui.Query)
	}
	if favs, err := m.sessions.Favorites(ctx, m.sessionID); err == nil {
		m.setFavorites(favs)
	}
	m.refresh()
	return m
}

// SetSender sets where timer callbacks deliver their messages, normally Program.Send
func (m *Model) SetSender(send func(tea.Msg)) {
	m.send = send
}

func (m *Model) emit(msg tea.Msg) {
	if m.send != nil {
		m.send(msg)
	}
}

// Close stops pending timers
func (m *Model) Close() {
	m.suggester.Stop()
	if m.player != nil {
		m.player.Close()
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case suggestionsMsg:
		// Stale answers for an older query are dropped
		if msg.query == m.input.Value() {
			m.suggestions = msg.items
		}
		return m, nil
	case demoStepMsg:
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.Close()
			return m, tea.Quit
		}
		switch m.screen {
		case screenDetail:
			return m.updateDetail(msg)
		case screenDemo:
			return m.updateDemo(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if m.input.Value() != "" {
			m.input.SetValue("")
			m.queryChanged()
			return m, nil
		}
		m.Close()
		return m, tea.Quit
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case tea.KeyDown:
		if m.result != nil && m.cursor < len(m.result.Formats)-1 {
			m.cursor++
		}
		return m, nil
	case tea.KeyEnter:
		m.openSelected()
		return m, nil
	case tea.KeyCtrlS:
		m.apply(state.Action{Type: state.ActionSetSort, Value: string(nextSort(m.ui.Sort))})
		return m, nil
	case tea.KeyCtrlT:
		view := models.ViewList
		if m.ui.ViewMode == models.ViewList {
			view = models.ViewGrid
		}
		m.apply(state.Action{Type: state.ActionSetViewMode, Value: string(view)})
		return m, nil
	case tea.KeyCtrlF:
		if f := m.current(); f != nil {
			m.toggleFavorite(f.ID)
		}
		return m, nil
	case tea.KeyCtrlX:
		m.input.SetValue("")
		m.apply(state.Action{Type: state.ActionClearAll})
		m.suggester.Cancel()
		m.suggestions = nil
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.queryChanged()
	}
	return m, cmd
}

func (m *Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace", "q":
		m.screen = screenBrowse
		m.selected = nil
	case "f":
		m.toggleFavorite(m.selected.ID)
	case "d":
		m.startDemo()
	}
	return m, nil
}

func (m *Model) updateDemo(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.player.Close()
		m.player = nil
		m.screen = screenDetail
	case " ", "p":
		if m.player.State() == demo.StatePlaying {
			m.player.Pause()
		} else {
			m.player.Play()
		}
	case "right", "n":
		m.player.Step()
	case "r":
		m.player.Reset()
	}
	return m, nil
}

func (m *Model) queryChanged() {
	q := m.input.Value()
	m.apply(state.Action{Type: state.ActionSetQuery, Value: q})
	if len([]rune(strings.TrimSpace(q))) < logic.MinSuggestQueryLen {
		m.suggester.Cancel()
		m.suggestions = nil
		return
	}
	m.suggester.Call(q)
}

// apply runs action through the session reducer, persisting the result
func (m *Model) apply(action state.Action) {
	ui, err := m.sessions.ApplyAction(m.ctx, m.sessionID, action)
	if err != nil {
		m.err = err
		ui = state.Reduce(m.ui, action)
	}
	m.ui = ui
	m.refresh()
}

func (m *Model) refresh() {
	res, err := m.formats.List(m.ctx, m.ui)
	if err != nil {
		m.err = err
		return
	}
	m.result = res
	if m.cursor >= len(res.Formats) {
		m.cursor = max(len(res.Formats)-1, 0)
	}
}

func (m *Model) current() *models.Format {
	if m.result == nil || m.cursor >= len(m.result.Formats) {
		return nil
	}
	return &m.result.Formats[m.cursor]
}

func (m *Model) openSelected() {
	f := m.current()
	if f == nil {
		return
	}
	if q := strings.TrimSpace(m.input.Value()); q != "" {
		if _, err := m.sessions.AddRecentSearch(m.ctx, m.sessionID, q); err != nil {
			m.err = err
		}
	}
	if _, err := m.sessions.RecordView(m.ctx, m.sessionID, f.ID); err != nil {
		m.err = err
	}
	m.selected = f
	m.screen = screenDetail
	m.status = ""
}

func (m *Model) toggleFavorite(id string) {
	favs, err := m.sessions.ToggleFavorite(m.ctx, m.sessionID, id)
	if err != nil {
		m.err = err
		return
	}
	m.setFavorites(favs)
}

func (m *Model) setFavorites(ids []string) {
	m.favorites = make(map[string]bool, len(ids))
	for _, id := range ids {
		m.favorites[id] = true
	}
}

func (m *Model) startDemo() {
	seq, err := m.formats.Demo(m.ctx, m.selected.ID)
	if err != nil {
		m.status = fmt.Sprintf("No demo for %s yet", m.selected.Name)
		return
	}
	m.player = demo.NewPlayer(*seq, m.clock, m.demoDelay, func(int, demo.Step) {
		m.emit(demoStepMsg{})
	})
	m.screen = screenDemo
}

func nextSort(k models.SortKey) models.SortKey {
	for i, s := range sortCycle {
		if s == k {
			return sortCycle[(i+1)%len(sortCycle)]
		}
	}
	return models.SortDefault
}

// Run starts the browser full screen and blocks until the user quits
func Run(ctx context.Context, cfg Config) error {
	m := New(ctx, cfg)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	m.SetSender(p.Send)
	_, err := p.Run()
	return err
}
