package logic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fairwaylabs/formats-api/internal/models"
	"github.com/fairwaylabs/formats-api/internal/state"
	"github.com/fairwaylabs/formats-api/internal/store"
)

// Session state keys, one JSON document each
const (
	keyRecentSearches = "recent-searches"
	keyFavorites      = "favorites"
	keyRecentlyViewed = "recently-viewed"
	keySettings       = "settings"
	keyUI             = "ui"
)

// SessionKey returns the store key of one piece of session state
func SessionKey(sessionID, name string) string {
	return "session:" + sessionID + ":" + name
}

type sessionService struct {
	store   store.Store
	catalog Catalog
	ttl     time.Duration
	logger  *zap.SugaredLogger
}

// NewSessionService persists session state in st. Every write refreshes the key's ttl;
// a zero ttl keeps state forever.
func NewSessionService(st store.Store, catalog Catalog, ttl time.Duration, logger *zap.Logger) SessionService {
	return &sessionService{store: st, catalog: catalog, ttl: ttl, logger: logger.Sugar()}
}

// load decodes the document under key into target and reports whether it did.
// Missing keys and undecodable documents both report false; the latter are logged
// and callers fall back to their defaults.
func (s *sessionService) load(ctx context.Context, sessionID, name string, target any) (bool, error) {
	key := SessionKey(sessionID, name)
	data, err := s.store.Get(ctx, key)
	if errors.Is(err, models.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", name, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		s.logger.Warnw("Discarding unreadable session state", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

func (s *sessionService) save(ctx context.Context, sessionID, name string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := s.store.Set(ctx, SessionKey(sessionID, name), data, s.ttl); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

func (s *sessionService) loadList(ctx context.Context, sessionID, name string) ([]string, error) {
	var list []string
	ok, err := s.load(ctx, sessionID, name, &list)
	if err != nil {
		return nil, err
	}
	if !ok || list == nil {
		list = []string{}
	}
	return list, nil
}

// updateList is a read-modify-write of one list. Concurrent writers to the same
// session race and the last write wins.
func (s *sessionService) updateList(ctx context.Context, sessionID, name string, fn func([]string) []string) ([]string, error) {
	list, err := s.loadList(ctx, sessionID, name)
	if err != nil {
		return nil, err
	}
	next := fn(list)
	if err := s.save(ctx, sessionID, name, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *sessionService) RecentSearches(ctx context.Context, sessionID string) ([]string, error) {
	return s.loadList(ctx, sessionID, keyRecentSearches)
}

func (s *sessionService) AddRecentSearch(ctx context.Context, sessionID, query string) ([]string, error) {
	return s.updateList(ctx, sessionID, keyRecentSearches, func(history []string) []string {
		return state.AddRecentSearch(history, query)
	})
}

// ClearRecentSearches deletes the persisted history rather than storing an empty list
func (s *sessionService) ClearRecentSearches(ctx context.Context, sessionID string) error {
	if err := s.store.Del(ctx, SessionKey(sessionID, keyRecentSearches)); err != nil {
		return fmt.Errorf("clear recent searches: %w", err)
	}
	return nil
}

func (s *sessionService) Favorites(ctx context.Context, sessionID string) ([]string, error) {
	return s.loadList(ctx, sessionID, keyFavorites)
}

func (s *sessionService) AddFavorite(ctx context.Context, sessionID, formatID string) ([]string, error) {
	if err := s.checkFormat(formatID); err != nil {
		return nil, err
	}
	return s.updateList(ctx, sessionID, keyFavorites, func(favs []string) []string {
		return state.AddFavorite(favs, formatID)
	})
}

// RemoveFavorite accepts unknown ids so stale favorites can always be dropped
func (s *sessionService) RemoveFavorite(ctx context.Context, sessionID, formatID string) ([]string, error) {
	return s.updateList(ctx, sessionID, keyFavorites, func(favs []string) []string {
		return state.RemoveFavorite(favs, formatID)
	})
}

func (s *sessionService) ToggleFavorite(ctx context.Context, sessionID, formatID string) ([]string, error) {
	if err := s.checkFormat(formatID); err != nil {
		return nil, err
	}
	return s.updateList(ctx, sessionID, keyFavorites, func(favs []string) []string {
		return state.ToggleFavorite(favs, formatID)
	})
}

func (s *sessionService) RecentlyViewed(ctx context.Context, sessionID string) ([]string, error) {
	return s.loadList(ctx, sessionID, keyRecentlyViewed)
}

func (s *sessionService) RecordView(ctx context.Context, sessionID, formatID string) ([]string, error) {
	if err := s.checkFormat(formatID); err != nil {
		return nil, err
	}
	return s.updateList(ctx, sessionID, keyRecentlyViewed, func(viewed []string) []string {
		return state.AddRecentlyViewed(viewed, formatID)
	})
}

func (s *sessionService) Settings(ctx context.Context, sessionID string) (models.Settings, error) {
	settings := models.DefaultSettings()
	ok, err := s.load(ctx, sessionID, keySettings, &settings)
	if err != nil {
		return models.Settings{}, err
	}
	if !ok {
		settings = models.DefaultSettings()
	}
	return state.NormalizeSettings(settings), nil
}

// SaveSettings stores settings after clamping out of range values
func (s *sessionService) SaveSettings(ctx context.Context, sessionID string, settings models.Settings) (models.Settings, error) {
	settings = state.NormalizeSettings(settings)
	if err := s.save(ctx, sessionID, keySettings, settings); err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}

func (s *sessionService) UIState(ctx context.Context, sessionID string) (models.UIState, error) {
	ui := models.DefaultUIState()
	ok, err := s.load(ctx, sessionID, keyUI, &ui)
	if err != nil {
		return models.UIState{}, err
	}
	if !ok {
		ui = models.DefaultUIState()
	}
	if ui.ViewMode != models.ViewGrid && ui.ViewMode != models.ViewList {
		ui.ViewMode = models.ViewGrid
	}
	return ui, nil
}

func (s *sessionService) SaveUIState(ctx context.Context, sessionID string, ui models.UIState) (models.UIState, error) {
	ui.Sort = ParseSortKey(string(ui.Sort))
	if ui.ViewMode != models.ViewList {
		ui.ViewMode = models.ViewGrid
	}
	if err := s.save(ctx, sessionID, keyUI, ui); err != nil {
		return models.UIState{}, err
	}
	return ui, nil
}

// ApplyAction loads the browse state, reduces it with action and stores the result
func (s *sessionService) ApplyAction(ctx context.Context, sessionID string, action state.Action) (models.UIState, error) {
	ui, err := s.UIState(ctx, sessionID)
	if err != nil {
		return models.UIState{}, err
	}
	return s.SaveUIState(ctx, sessionID, state.Reduce(ui, action))
}

func (s *sessionService) checkFormat(formatID string) error {
	if !s.catalog.Has(formatID) {
		return fmt.Errorf("%q: %w", formatID, models.ErrFormatNotFound)
	}
	return nil
}
