package logic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairwaylabs/formats-api/internal/catalog"
	"github.com/fairwaylabs/formats-api/internal/models"
)

func newFormatService(t *testing.T) FormatService {
	t.Helper()
	c, err := catalog.Load()
	require.NoError(t, err)
	return NewFormatService(c)
}

func TestFormatService_List(t *testing.T) {
	svc := newFormatService(t)
	ctx := context.Background()

	resp, err := svc.List(ctx, models.DefaultUIState())
	require.NoError(t, err)
	assert.Equal(t, 20, resp.Total)
	assert.Equal(t, 20, resp.Matched)
	assert.Empty(t, resp.DidYouMean)
	assert.Empty(t, resp.ShareQuery)
	assert.Equal(t, 6, resp.Counts[models.DimensionCategory]["betting"])

	ui := models.UIState{
		Query:   "scramble",
		Filters: models.FilterState{Categories: []models.Category{models.CategoryTeam}},
	}
	resp, err = svc.List(ctx, ui)
	require.NoError(t, err)
	require.Len(t, resp.Formats, 1)
	assert.Equal(t, "scramble", resp.Formats[0].ID)
	assert.Equal(t, "category=team", resp.ShareQuery)
}

func TestFormatService_ListDidYouMean(t *testing.T) {
	svc := newFormatService(t)

	resp, err := svc.List(context.Background(), models.UIState{Query: "scrambel"})
	require.NoError(t, err)
	assert.Empty(t, resp.Formats)
	assert.Equal(t, 0, resp.Matched)
	assert.Equal(t, "Scramble", resp.DidYouMean)
}

func TestFormatService_Get(t *testing.T) {
	svc := newFormatService(t)

	f, err := svc.Get(context.Background(), "wolf")
	require.NoError(t, err)
	assert.Equal(t, "Wolf", f.Name)

	_, err = svc.Get(context.Background(), "croquet")
	assert.ErrorIs(t, err, models.ErrFormatNotFound)
}

func TestFormatService_Compare(t *testing.T) {
	svc := newFormatService(t)
	ctx := context.Background()

	res, err := svc.Compare(ctx, []string{"scramble", "stroke-play", "wolf"})
	require.NoError(t, err)
	assert.Len(t, res.Formats, 3)
	assert.Equal(t, models.PlayerRange{Min: 1, Max: 4}, res.Players)
	assert.Equal(t, "scramble", res.Easiest)
	assert.Equal(t, "stroke-play", res.MostPopular)
	assert.Empty(t, res.SharedSkills)

	res, err = svc.Compare(ctx, []string{"scramble", "stroke-play", "scramble"})
	require.NoError(t, err)
	assert.Len(t, res.Formats, 2)
	assert.Equal(t, []models.SkillLevel{models.SkillAll}, res.SharedSkills)
}

func TestFormatService_CompareErrors(t *testing.T) {
	svc := newFormatService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		ids  []string
		want error
	}{
		{"one format", []string{"wolf"}, models.ErrCompareSize},
		{"duplicates collapse", []string{"wolf", "wolf"}, models.ErrCompareSize},
		{"too many", []string{"wolf", "skins", "nassau", "vegas", "nines"}, models.ErrCompareSize},
		{"unknown", []string{"wolf", "croquet"}, models.ErrFormatNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Compare(ctx, tt.ids)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFormatService_Demo(t *testing.T) {
	svc := newFormatService(t)
	ctx := context.Background()

	seq, err := svc.Demo(ctx, "scramble")
	require.NoError(t, err)
	assert.Equal(t, "scramble", seq.FormatID)
	assert.NotEmpty(t, seq.Steps)

	_, err = svc.Demo(ctx, "flags")
	assert.ErrorIs(t, err, models.ErrDemoNotFound)

	_, err = svc.Demo(ctx, "croquet")
	assert.ErrorIs(t, err, models.ErrFormatNotFound)
}

func TestFormatService_Suggest(t *testing.T) {
	svc := newFormatService(t)
	assert.Equal(t, []string{"Scramble"}, svc.Suggest(context.Background(), "scr"))
}
