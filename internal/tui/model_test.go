package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fairwaylabs/formats-api/internal/catalog"
	"github.com/fairwaylabs/formats-api/internal/demo"
	"github.com/fairwaylabs/formats-api/internal/logic"
	"github.com/fairwaylabs/formats-api/internal/models"
	"github.com/fairwaylabs/formats-api/internal/store"
)

const (
	suggestDelay = 200 * time.Millisecond
	demoDelay    = time.Second
)

type harness struct {
	m        *Model
	clock    *clockwork.FakeClock
	sessions logic.SessionService
	msgs     chan tea.Msg
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cat := catalog.MustLoad()
	sessions := logic.NewSessionService(store.NewMemoryStore(), cat, time.Hour, zap.NewNop())
	clock := clockwork.NewFakeClock()

	m := New(context.Background(), Config{
		Formats:      logic.NewFormatService(cat),
		Sessions:     sessions,
		SessionID:    "tui-test",
		Clock:        clock,
		SuggestDelay: suggestDelay,
		DemoDelay:    demoDelay,
	})
	msgs := make(chan tea.Msg, 16)
	m.SetSender(func(msg tea.Msg) {
		select {
		case msgs <- msg:
		default:
		}
	})
	t.Cleanup(m.Close)
	return &harness{m: m, clock: clock, sessions: sessions, msgs: msgs}
}

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (h *harness) key(t tea.KeyType) {
	h.m.Update(tea.KeyMsg{Type: t})
}

func (h *harness) runes(s string) {
	h.m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (h *harness) waitMsg(t *testing.T) tea.Msg {
	t.Helper()
	select {
	case msg := <-h.msgs:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a timer message")
		return nil
	}
}

func TestBrowseShowsWholeCatalog(t *testing.T) {
	h := newHarness(t)
	view := h.m.View()
	assert.Contains(t, view, "20 of 20 formats")
	assert.Contains(t, view, "Stroke Play")
	assert.Contains(t, view, "Ryder Cup")
}

func TestTypingFiltersAndPersistsQuery(t *testing.T) {
	h := newHarness(t)
	h.typeText("wolf")

	require.NotNil(t, h.m.result)
	require.Len(t, h.m.result.Formats, 1)
	assert.Equal(t, "wolf", h.m.result.Formats[0].ID)
	assert.Contains(t, h.m.View(), "1 of 20 formats")

	ui, err := h.sessions.UIState(context.Background(), "tui-test")
	require.NoError(t, err)
	assert.Equal(t, "wolf", ui.Query)
}

func TestSuggestionsAreDebounced(t *testing.T) {
	h := newHarness(t)
	h.typeText("wo")

	assert.Empty(t, h.m.suggestions, "suggestions must wait for the quiet window")
	h.clock.Advance(suggestDelay)

	msg := h.waitMsg(t)
	h.m.Update(msg)
	assert.Equal(t, []string{"Wolf", "Around the World", "two players"}, h.m.suggestions)
	assert.Contains(t, h.m.View(), "Around the World")
}

func TestStaleSuggestionsAreDropped(t *testing.T) {
	h := newHarness(t)
	h.typeText("wo")
	h.m.Update(suggestionsMsg{query: "w", items: []string{"stale"}})
	assert.Empty(t, h.m.suggestions)
}

func TestShortQueryClearsSuggestions(t *testing.T) {
	h := newHarness(t)
	h.typeText("wo")
	h.clock.Advance(suggestDelay)
	h.m.Update(h.waitMsg(t))
	require.NotEmpty(t, h.m.suggestions)

	h.key(tea.KeyBackspace)
	assert.Empty(t, h.m.suggestions)
	assert.False(t, h.m.suggester.Pending())
}

func TestNoResultsOffersDidYouMean(t *testing.T) {
	h := newHarness(t)
	h.typeText("stablefrod")
	view := h.m.View()
	assert.Contains(t, view, "No formats match.")
	assert.Contains(t, view, "Stableford")
}

func TestSortAndViewCycle(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyCtrlS)
	assert.Equal(t, models.SortName, h.m.ui.Sort)
	assert.Equal(t, "alternate-shot", h.m.result.Formats[0].ID)

	h.key(tea.KeyCtrlT)
	assert.Equal(t, models.ViewList, h.m.ui.ViewMode)
	h.key(tea.KeyCtrlT)
	assert.Equal(t, models.ViewGrid, h.m.ui.ViewMode)
}

func TestOpenDetailRecordsViewAndSearch(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.typeText("wolf")
	h.key(tea.KeyEnter)

	assert.Equal(t, screenDetail, h.m.screen)
	view := h.m.View()
	assert.Contains(t, view, "chooses a partner")
	assert.Contains(t, view, "Rules")

	viewed, err := h.sessions.RecentlyViewed(ctx, "tui-test")
	require.NoError(t, err)
	assert.Equal(t, []string{"wolf"}, viewed)

	recent, err := h.sessions.RecentSearches(ctx, "tui-test")
	require.NoError(t, err)
	assert.Equal(t, []string{"wolf"}, recent)

	h.runes("f")
	assert.True(t, h.m.favorites["wolf"])
	assert.Contains(t, h.m.View(), "★")

	h.key(tea.KeyEsc)
	assert.Equal(t, screenBrowse, h.m.screen)
}

func TestFavoriteFromBrowse(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyDown)
	h.key(tea.KeyCtrlF)

	favs, err := h.sessions.Favorites(context.Background(), "tui-test")
	require.NoError(t, err)
	assert.Equal(t, []string{"match-play"}, favs)

	h.key(tea.KeyCtrlF)
	favs, err = h.sessions.Favorites(context.Background(), "tui-test")
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestDemoPlayback(t *testing.T) {
	h := newHarness(t)
	h.typeText("wolf")
	h.key(tea.KeyEnter)
	h.runes("d")

	require.Equal(t, screenDemo, h.m.screen)
	assert.Contains(t, h.m.View(), "Set the order")
	assert.Contains(t, h.m.View(), "step 1/5")

	h.runes("n")
	assert.Contains(t, h.m.View(), "The Wolf tees off last")

	h.key(tea.KeySpace)
	assert.Equal(t, demo.StatePlaying, h.m.player.State())
	h.clock.Advance(demoDelay)
	h.m.Update(h.waitMsg(t))
	assert.Contains(t, h.m.View(), "Pick or pass")

	h.key(tea.KeySpace)
	assert.Equal(t, demo.StatePaused, h.m.player.State())

	h.runes("r")
	assert.Contains(t, h.m.View(), "step 1/5")

	h.key(tea.KeyEsc)
	assert.Equal(t, screenDetail, h.m.screen)
	assert.Nil(t, h.m.player)
}

func TestDemoMissingShowsStatus(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyEnter)
	require.Equal(t, "stroke-play", h.m.selected.ID)

	h.runes("d")
	assert.Equal(t, screenDetail, h.m.screen)
	assert.Contains(t, h.m.View(), "No demo for Stroke Play yet")
}

func TestEscQuitsWhenQueryEmpty(t *testing.T) {
	h := newHarness(t)
	h.typeText("ab")
	_, cmd := h.m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.Equal(t, "", h.m.input.Value())

	_, cmd = h.m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestNextSortWraps(t *testing.T) {
	assert.Equal(t, models.SortName, nextSort(models.SortDefault))
	assert.Equal(t, models.SortDefault, nextSort(models.SortPlayersMax))
	assert.Equal(t, models.SortDefault, nextSort("bogus"))
}

func TestPlayersLabel(t *testing.T) {
	assert.Equal(t, "2 players", playersLabel(models.PlayerRange{Min: 2, Max: 2}))
	assert.Equal(t, "2-4 players", playersLabel(models.PlayerRange{Min: 2, Max: 4}))
	assert.True(t, strings.HasPrefix(demoStateLabel(demo.StateIdle), "ready"))
}
