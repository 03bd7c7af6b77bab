package logic

import (
	"context"
	"fmt"
	"strings"

	"github.com/fairwaylabs/formats-api/internal/demo"
	"github.com/fairwaylabs/formats-api/internal/models"
)

const (
	MinCompare = 2
	MaxCompare = 4
)

type formatService struct {
	catalog Catalog
}

func NewFormatService(catalog Catalog) FormatService {
	return &formatService{catalog: catalog}
}

// List runs the engine over the catalog for one browse state
func (s *formatService) List(ctx context.Context, ui models.UIState) (*models.FormatListResponse, error) {
	all := s.catalog.All()

	counts, err := FilterCounts(ctx, all, ui.Query, ui.Filters)
	if err != nil {
		return nil, fmt.Errorf("filter counts: %w", err)
	}

	results := Apply(all, ui.Query, ui.Filters, ui.Sort)
	resp := &models.FormatListResponse{
		Formats:    results,
		Total:      len(all),
		Matched:    len(results),
		Counts:     counts,
		ShareQuery: BuildShareQuery(ui.Filters),
	}
	if len(results) == 0 && strings.TrimSpace(ui.Query) != "" {
		resp.DidYouMean = DidYouMean(all, ui.Query)
	}
	return resp, nil
}

func (s *formatService) Get(ctx context.Context, id string) (*models.Format, error) {
	f, err := s.catalog.Get(id)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Compare returns 2 to 4 formats side by side. Repeated ids count once.
func (s *formatService) Compare(ctx context.Context, ids []string) (*models.CompareResult, error) {
	seen := make(map[string]bool, len(ids))
	formats := make([]models.Format, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		f, err := s.catalog.Get(id)
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	if len(formats) < MinCompare || len(formats) > MaxCompare {
		return nil, fmt.Errorf("got %d formats: %w", len(formats), models.ErrCompareSize)
	}

	res := &models.CompareResult{Formats: formats, Players: formats[0].Players}
	res.Players.Ideal = 0
	easiest, popular := formats[0], formats[0]
	for _, f := range formats[1:] {
		res.Players.Min = min(res.Players.Min, f.Players.Min)
		res.Players.Max = max(res.Players.Max, f.Players.Max)
		if f.Difficulty < easiest.Difficulty {
			easiest = f
		}
		if f.Popularity > popular.Popularity {
			popular = f
		}
	}
	res.Easiest = easiest.ID
	res.MostPopular = popular.ID
	res.SharedSkills = sharedSkillLevels(formats)
	return res, nil
}

func sharedSkillLevels(formats []models.Format) []models.SkillLevel {
	out := []models.SkillLevel{}
	for _, level := range models.SkillLevels {
		shared := true
		for i := range formats {
			if !formats[i].HasSkillLevel(level) {
				shared = false
				break
			}
		}
		if shared {
			out = append(out, level)
		}
	}
	return out
}

func (s *formatService) Suggest(ctx context.Context, query string) []string {
	return Suggest(s.catalog.All(), query)
}

// Demo returns the explainer steps of a format. Known formats without a demo
// return models.ErrDemoNotFound.
func (s *formatService) Demo(ctx context.Context, id string) (*demo.Sequence, error) {
	if !s.catalog.Has(id) {
		return nil, fmt.Errorf("%q: %w", id, models.ErrFormatNotFound)
	}
	seq, err := demo.Get(id)
	if err != nil {
		return nil, err
	}
	return &seq, nil
}
