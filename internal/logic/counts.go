package logic

import (
	"context"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/fairwaylabs/formats-api/internal/models"
)

// FilterCounts returns, for every option of every dimension, how many formats would match
// if that option alone were selected in its dimension while the query and all other
// dimensions keep their current selections. The dimension's own selection is ignored,
// so the numbers shown next to options do not collapse to zero once one option is picked.
func FilterCounts(ctx context.Context, formats []models.Format, query string, filters models.FilterState) (map[string]map[string]int, error) {
	searched := Search(formats, query)

	counts := make(map[string]map[string]int, len(models.Dimensions))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, dim := range models.Dimensions {
		dim := dim
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			dimCounts := countDimension(searched, filters, dim)
			mu.Lock()
			counts[dim] = dimCounts
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return counts, nil
}

func countDimension(formats []models.Format, filters models.FilterState, dim string) map[string]int {
	out := make(map[string]int)
	for _, opt := range dimensionOptions(dim) {
		single := withOnly(filters, dim, opt)
		n := 0
		for i := range formats {
			if Passes(&formats[i], single) {
				n++
			}
		}
		out[opt] = n
	}
	return out
}

func dimensionOptions(dim string) []string {
	switch dim {
	case models.DimensionCategory:
		opts := make([]string, len(models.Categories))
		for i, c := range models.Categories {
			opts[i] = string(c)
		}
		return opts
	case models.DimensionSkillLevel:
		opts := make([]string, len(models.SkillLevels))
		for i, l := range models.SkillLevels {
			opts[i] = string(l)
		}
		return opts
	case models.DimensionType:
		opts := make([]string, len(models.CompetitionTypes))
		for i, t := range models.CompetitionTypes {
			opts[i] = string(t)
		}
		return opts
	case models.DimensionPlayers:
		return models.PlayerBuckets
	case models.DimensionDifficulty:
		opts := make([]string, len(models.DifficultyBuckets))
		for i, b := range models.DifficultyBuckets {
			opts[i] = strconv.Itoa(b)
		}
		return opts
	case models.DimensionDuration:
		return models.DurationBuckets
	}
	return nil
}

// withOnly returns a copy of filters with dim's selection replaced by the single option
func withOnly(filters models.FilterState, dim, opt string) models.FilterState {
	out := filters
	switch dim {
	case models.DimensionCategory:
		out.Categories = []models.Category{models.Category(opt)}
	case models.DimensionSkillLevel:
		out.SkillLevels = []models.SkillLevel{models.SkillLevel(opt)}
	case models.DimensionType:
		out.Types = []models.CompetitionType{models.CompetitionType(opt)}
	case models.DimensionPlayers:
		out.PlayerCounts = []string{opt}
	case models.DimensionDifficulty:
		n, _ := strconv.Atoi(opt)
		out.Difficulty = []int{n}
	case models.DimensionDuration:
		out.Durations = []string{opt}
	}
	return out
}
