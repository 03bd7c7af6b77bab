package handlers

import (
	"context"
	"errors"

	"github.com/fairwaylabs/formats-api/internal/demo"
	"github.com/fairwaylabs/formats-api/internal/models"
	"github.com/fairwaylabs/formats-api/internal/state"
	"github.com/fairwaylabs/formats-api/internal/store"
)

// MockFormatService
type MockFormatService struct {
	ListFunc    func(ctx context.Context, ui models.UIState) (*models.FormatListResponse, error)
	GetFunc     func(ctx context.Context, id string) (*models.Format, error)
	CompareFunc func(ctx context.Context, ids []string) (*models.CompareResult, error)
	SuggestFunc func(ctx context.Context, query string) []string
	DemoFunc    func(ctx context.Context, id string) (*demo.Sequence, error)
}

func (m *MockFormatService) List(ctx context.Context, ui models.UIState) (*models.FormatListResponse, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ui)
	}
	return &models.FormatListResponse{}, nil
}

func (m *MockFormatService) Get(ctx context.Context, id string) (*models.Format, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return &models.Format{ID: id}, nil
}

func (m *MockFormatService) Compare(ctx context.Context, ids []string) (*models.CompareResult, error) {
	if m.CompareFunc != nil {
		return m.CompareFunc(ctx, ids)
	}
	return &models.CompareResult{}, nil
}

func (m *MockFormatService) Suggest(ctx context.Context, query string) []string {
	if m.SuggestFunc != nil {
		return m.SuggestFunc(ctx, query)
	}
	return []string{}
}

func (m *MockFormatService) Demo(ctx context.Context, id string) (*demo.Sequence, error) {
	if m.DemoFunc != nil {
		return m.DemoFunc(ctx, id)
	}
	return &demo.Sequence{FormatID: id}, nil
}

// MockSessionService records views; everything else returns empty values
type MockSessionService struct {
	RecordViewFunc      func(ctx context.Context, sessionID, formatID string) ([]string, error)
	AddRecentSearchFunc func(ctx context.Context, sessionID, query string) ([]string, error)
	SaveSettingsFunc    func(ctx context.Context, sessionID string, settings models.Settings) (models.Settings, error)
}

func (m *MockSessionService) RecentSearches(ctx context.Context, sessionID string) ([]string, error) {
	return nil, nil
}

func (m *MockSessionService) AddRecentSearch(ctx context.Context, sessionID, query string) ([]string, error) {
	if m.AddRecentSearchFunc != nil {
		return m.AddRecentSearchFunc(ctx, sessionID, query)
	}
	return []string{query}, nil
}

func (m *MockSessionService) ClearRecentSearches(ctx context.Context, sessionID string) error {
	return nil
}

func (m *MockSessionService) Favorites(ctx context.Context, sessionID string) ([]string, error) {
	return nil, nil
}

func (m *MockSessionService) AddFavorite(ctx context.Context, sessionID, formatID string) ([]string, error) {
	return []string{formatID}, nil
}

func (m *MockSessionService) RemoveFavorite(ctx context.Context, sessionID, formatID string) ([]string, error) {
	return nil, nil
}

func (m *MockSessionService) ToggleFavorite(ctx context.Context, sessionID, formatID string) ([]string, error) {
	return []string{formatID}, nil
}

func (m *MockSessionService) RecentlyViewed(ctx context.Context, sessionID string) ([]string, error) {
	return nil, nil
}

func (m *MockSessionService) RecordView(ctx context.Context, sessionID, formatID string) ([]string, error) {
	if m.RecordViewFunc != nil {
		return m.RecordViewFunc(ctx, sessionID, formatID)
	}
	return []string{formatID}, nil
}

func (m *MockSessionService) Settings(ctx context.Context, sessionID string) (models.Settings, error) {
	return models.DefaultSettings(), nil
}

func (m *MockSessionService) SaveSettings(ctx context.Context, sessionID string, settings models.Settings) (models.Settings, error) {
	if m.SaveSettingsFunc != nil {
		return m.SaveSettingsFunc(ctx, sessionID, settings)
	}
	return settings, nil
}

func (m *MockSessionService) UIState(ctx context.Context, sessionID string) (models.UIState, error) {
	return models.DefaultUIState(), nil
}

func (m *MockSessionService) SaveUIState(ctx context.Context, sessionID string, ui models.UIState) (models.UIState, error) {
	return ui, nil
}

func (m *MockSessionService) ApplyAction(ctx context.Context, sessionID string, action state.Action) (models.UIState, error) {
	return state.Reduce(models.DefaultUIState(), action), nil
}

// MockStore only answers Ping
type MockStore struct {
	store.Store
	PingErr error
}

func (m *MockStore) Ping(ctx context.Context) error { return m.PingErr }

var errBoom = errors.New("boom")

