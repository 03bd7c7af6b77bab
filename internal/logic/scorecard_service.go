package logic

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/fairwaylabs/formats-api/internal/models"
	"github.com/fairwaylabs/formats-api/internal/scorecard"
)

type cardEntry struct {
	card    *scorecard.Card
	touched time.Time
}

// Scorecards keeps scorecards in memory. A card idle for longer than the ttl is
// removed by the next Sweep.
type Scorecards struct {
	mu      sync.Mutex
	cards   map[string]*cardEntry
	catalog Catalog
	clock   clockwork.Clock
	ttl     time.Duration
	logger  *zap.SugaredLogger
}

func NewScorecardService(catalog Catalog, clock clockwork.Clock, ttl time.Duration, logger *zap.Logger) *Scorecards {
	return &Scorecards{
		cards:   make(map[string]*cardEntry),
		catalog: catalog,
		clock:   clock,
		ttl:     ttl,
		logger:  logger.Sugar(),
	}
}

// Create starts a card. An unknown formatID is dropped rather than rejected,
// the card is still usable without a preselected format.
func (s *Scorecards) Create(ctx context.Context, formatID string) (*scorecard.Card, error) {
	if formatID != "" && !s.catalog.Has(formatID) {
		s.logger.Debugw("Ignoring unknown format for scorecard", "format", formatID)
		formatID = ""
	}
	card := scorecard.New(formatID)

	s.mu.Lock()
	s.cards[card.ID] = &cardEntry{card: card, touched: s.clock.Now()}
	s.mu.Unlock()

	return card.Clone(), nil
}

func (s *Scorecards) Get(ctx context.Context, id string) (*scorecard.Card, error) {
	return s.mutate(id, func(*scorecard.Card) error { return nil })
}

func (s *Scorecards) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cards[id]; !ok {
		return fmt.Errorf("%q: %w", id, models.ErrScorecardNotFound)
	}
	delete(s.cards, id)
	return nil
}

func (s *Scorecards) AddPlayer(ctx context.Context, id, name string, handicap int) (*scorecard.Card, error) {
	return s.mutate(id, func(c *scorecard.Card) error {
		_, err := c.AddPlayer(name, handicap)
		return err
	})
}

// UpdatePlayer renames and/or sets the handicap of a player; nil fields are left alone
func (s *Scorecards) UpdatePlayer(ctx context.Context, id, playerID string, name *string, handicap *int) (*scorecard.Card, error) {
	return s.mutate(id, func(c *scorecard.Card) error {
		if name != nil {
			if err := c.RenamePlayer(playerID, *name); err != nil {
				return err
			}
		}
		if handicap != nil {
			if err := c.SetHandicap(playerID, *handicap); err != nil {
				return err
			}
		}
		if name == nil && handicap == nil {
			return c.RenamePlayer(playerID, "")
		}
		return nil
	})
}

func (s *Scorecards) RemovePlayer(ctx context.Context, id, playerID string) (*scorecard.Card, error) {
	return s.mutate(id, func(c *scorecard.Card) error {
		return c.RemovePlayer(playerID)
	})
}

func (s *Scorecards) SetStrokes(ctx context.Context, id string, hole int, playerID string, strokes int) (*scorecard.Card, error) {
	return s.mutate(id, func(c *scorecard.Card) error {
		return c.SetStrokes(hole, playerID, strokes)
	})
}

func (s *Scorecards) Reset(ctx context.Context, id string) (*scorecard.Card, error) {
	return s.mutate(id, func(c *scorecard.Card) error {
		c.Reset()
		return nil
	})
}

// mutate runs fn on the card under the lock, refreshes its idle timer and
// returns a copy of the result
func (s *Scorecards) mutate(id string, fn func(*scorecard.Card) error) (*scorecard.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.cards[id]
	if !ok {
		return nil, fmt.Errorf("%q: %w", id, models.ErrScorecardNotFound)
	}
	if err := fn(e.card); err != nil {
		return nil, err
	}
	e.touched = s.clock.Now()
	return e.card.Clone(), nil
}

// Sweep removes cards idle for longer than the ttl and returns how many went.
// A zero ttl keeps cards forever.
func (s *Scorecards) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, e := range s.cards {
		if now.Sub(e.touched) > s.ttl {
			delete(s.cards, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live cards
func (s *Scorecards) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cards)
}
