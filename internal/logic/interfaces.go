package logic

import (
	"context"

	"github.com/fairwaylabs/formats-api/internal/demo"
	"github.com/fairwaylabs/formats-api/internal/models"
	"github.com/fairwaylabs/formats-api/internal/scorecard"
	"github.com/fairwaylabs/formats-api/internal/state"
)

// Catalog is the read-only format dataset
type Catalog interface {
	All() []models.Format
	Get(id string) (models.Format, error)
	Has(id string) bool
}

// FormatService answers browse, search and compare requests over the catalog
type FormatService interface {
	List(ctx context.Context, ui models.UIState) (*models.FormatListResponse, error)
	Get(ctx context.Context, id string) (*models.Format, error)
	Compare(ctx context.Context, ids []string) (*models.CompareResult, error)
	Suggest(ctx context.Context, query string) []string
	Demo(ctx context.Context, id string) (*demo.Sequence, error)
}

// SessionService reads and updates the persisted per-session state
type SessionService interface {
	RecentSearches(ctx context.Context, sessionID string) ([]string, error)
	AddRecentSearch(ctx context.Context, sessionID, query string) ([]string, error)
	ClearRecentSearches(ctx context.Context, sessionID string) error

	Favorites(ctx context.Context, sessionID string) ([]string, error)
	AddFavorite(ctx context.Context, sessionID, formatID string) ([]string, error)
	RemoveFavorite(ctx context.Context, sessionID, formatID string) ([]string, error)
	ToggleFavorite(ctx context.Context, sessionID, formatID string) ([]string, error)

	RecentlyViewed(ctx context.Context, sessionID string) ([]string, error)
	RecordView(ctx context.Context, sessionID, formatID string) ([]string, error)

	Settings(ctx context.Context, sessionID string) (models.Settings, error)
	SaveSettings(ctx context.Context, sessionID string, settings models.Settings) (models.Settings, error)

	UIState(ctx context.Context, sessionID string) (models.UIState, error)
	SaveUIState(ctx context.Context, sessionID string, ui models.UIState) (models.UIState, error)
	ApplyAction(ctx context.Context, sessionID string, action state.Action) (models.UIState, error)
}

// ScorecardService manages the in-memory scorecards
type ScorecardService interface {
	Create(ctx context.Context, formatID string) (*scorecard.Card, error)
	Get(ctx context.Context, id string) (*scorecard.Card, error)
	Delete(ctx context.Context, id string) error
	AddPlayer(ctx context.Context, id, name string, handicap int) (*scorecard.Card, error)
	UpdatePlayer(ctx context.Context, id, playerID string, name *string, handicap *int) (*scorecard.Card, error)
	RemovePlayer(ctx context.Context, id, playerID string) (*scorecard.Card, error)
	SetStrokes(ctx context.Context, id string, hole int, playerID string, strokes int) (*scorecard.Card, error)
	Reset(ctx context.Context, id string) (*scorecard.Card, error)
}
