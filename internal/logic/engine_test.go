package logic

import (
	"context"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fairwaylabs/formats-api/internal/catalog"
	"github.com/fairwaylabs/formats-api/internal/models"
)

func dataset(t *testing.T) []models.Format {
	t.Helper()
	c, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return c.All()
}

func ids(formats []models.Format) []string {
	out := make([]string, len(formats))
	for i, f := range formats {
		out[i] = f.ID
	}
	return out
}

func TestSearch_EmptyQueryReturnsEverythingInOrder(t *testing.T) {
	all := dataset(t)
	for _, q := range []string{"", "   "} {
		got := Search(all, q)
		if diff := cmp.Diff(ids(all), ids(got)); diff != "" {
			t.Errorf("Search(%q) mismatch (-want +got):\n%s", q, diff)
		}
	}
}

func TestSearch(t *testing.T) {
	all := dataset(t)
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"exact name", "scramble", []string{"scramble"}},
		{"case insensitive", "SCRAMBLE", []string{"scramble"}},
		{"no match", "xyzzy", []string{}},
		{"category", "training", []string{"one-club-challenge", "around-the-world"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Search(all, tt.query))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSearch_MatchesRulesAndVariations(t *testing.T) {
	formats := []models.Format{
		{ID: "a", Name: "A", Rules: []string{"Pick up after double bogey"}},
		{ID: "b", Name: "B", Variations: []string{"Reverse order"}},
		{ID: "c", Name: "C"},
	}
	if got := ids(Search(formats, "double bogey")); !cmp.Equal(got, []string{"a"}) {
		t.Errorf("rules search = %v", got)
	}
	if got := ids(Search(formats, "reverse")); !cmp.Equal(got, []string{"b"}) {
		t.Errorf("variations search = %v", got)
	}
}

func TestFilter_DifficultyBucket(t *testing.T) {
	got := ids(Filter(dataset(t), models.FilterState{Difficulty: []int{1}}))

	has := func(id string) bool {
		for _, g := range got {
			if g == id {
				return true
			}
		}
		return false
	}
	if !has("scramble") {
		t.Error("easy bucket should include scramble")
	}
	if has("stroke-play") {
		t.Error("easy bucket should not include stroke-play")
	}
}

func TestFilter_OrWithinAndAcross(t *testing.T) {
	all := dataset(t)

	betting := Filter(all, models.FilterState{Categories: []models.Category{models.CategoryBetting}})
	bettingOrTeam := Filter(all, models.FilterState{Categories: []models.Category{models.CategoryBetting, models.CategoryTeam}})
	bettingBeginner := Filter(all, models.FilterState{
		Categories:  []models.Category{models.CategoryBetting},
		SkillLevels: []models.SkillLevel{models.SkillBeginner},
	})

	if len(bettingOrTeam) < len(betting) {
		t.Errorf("adding an option shrank results: %d < %d", len(bettingOrTeam), len(betting))
	}
	if len(bettingBeginner) > len(betting) {
		t.Errorf("adding a dimension grew results: %d > %d", len(bettingBeginner), len(betting))
	}
	if diff := cmp.Diff([]string{"rabbit"}, ids(bettingBeginner)); diff != "" {
		t.Errorf("betting+beginner mismatch (-want +got):\n%s", diff)
	}
	if got := Filter(all, models.FilterState{}); len(got) != len(all) {
		t.Errorf("empty filter returned %d of %d", len(got), len(all))
	}
}

func TestDifficultyBucket(t *testing.T) {
	tests := []struct {
		difficulty int
		want       int
	}{
		{1, 1}, {3, 1}, {4, 2}, {6, 2}, {7, 3}, {8, 3}, {9, 4}, {10, 4},
	}
	for _, tt := range tests {
		if got := DifficultyBucket(tt.difficulty); got != tt.want {
			t.Errorf("DifficultyBucket(%d) = %d; want %d", tt.difficulty, got, tt.want)
		}
	}
}

func TestInPlayerBucket(t *testing.T) {
	tests := []struct {
		name   string
		r      models.PlayerRange
		bucket string
		want   bool
	}{
		{"solo in 1-4", models.PlayerRange{Min: 1, Max: 4}, models.PlayersSolo, true},
		{"solo not in 2-4", models.PlayerRange{Min: 2, Max: 4}, models.PlayersSolo, false},
		{"small in 4-4", models.PlayerRange{Min: 4, Max: 4}, models.PlayersSmall, true},
		{"large not in 4-4", models.PlayerRange{Min: 4, Max: 4}, models.PlayersLarge, false},
		{"large in 2-6", models.PlayerRange{Min: 2, Max: 6}, models.PlayersLarge, true},
		{"pair not in 8-24", models.PlayerRange{Min: 8, Max: 24}, models.PlayersPair, false},
		{"unknown bucket", models.PlayerRange{Min: 1, Max: 144}, "crowd", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InPlayerBucket(tt.r, tt.bucket); got != tt.want {
				t.Errorf("InPlayerBucket(%+v, %q) = %v; want %v", tt.r, tt.bucket, got, tt.want)
			}
		})
	}
}

func TestDurationBucket(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"30-45 minutes", models.DurationQuick},
		{"2 hours", models.DurationQuick},
		{"2-3 hours", models.DurationStandard},
		{"3-4 hours", models.DurationStandard},
		{"4-5 hours", models.DurationLong},
		{"2-3 days", models.DurationLong},
		{"a full round", models.DurationStandard},
		{"", models.DurationStandard},
	}
	for _, tt := range tests {
		if got := DurationBucket(tt.text); got != tt.want {
			t.Errorf("DurationBucket(%q) = %q; want %q", tt.text, got, tt.want)
		}
	}
}

func TestSort(t *testing.T) {
	all := dataset(t)
	before := ids(all)

	byPop := Sort(all, models.SortPopularity)
	for i := 1; i < len(byPop); i++ {
		if byPop[i-1].Popularity < byPop[i].Popularity {
			t.Fatalf("popularity not descending at %d: %d < %d", i, byPop[i-1].Popularity, byPop[i].Popularity)
		}
	}

	byDiff := Sort(all, models.SortDifficulty)
	for i := 1; i < len(byDiff); i++ {
		if byDiff[i-1].Difficulty > byDiff[i].Difficulty {
			t.Fatalf("difficulty not ascending at %d", i)
		}
	}

	byMax := Sort(all, models.SortPlayersMax)
	if byMax[0].ID != "flags" {
		t.Errorf("players-max first = %q; want flags", byMax[0].ID)
	}

	byName := Sort(all, models.SortName)
	if byName[0].ID != "alternate-shot" {
		t.Errorf("name first = %q; want alternate-shot", byName[0].ID)
	}

	if diff := cmp.Diff(before, ids(Sort(all, models.SortKey("bogus")))); diff != "" {
		t.Errorf("unknown key reordered (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(before, ids(all)); diff != "" {
		t.Errorf("input mutated (-want +got):\n%s", diff)
	}
}

func TestSort_Stable(t *testing.T) {
	formats := []models.Format{
		{ID: "a", Difficulty: 5},
		{ID: "b", Difficulty: 3},
		{ID: "c", Difficulty: 5},
		{ID: "d", Difficulty: 3},
	}
	got := ids(Sort(formats, models.SortDifficulty))
	if diff := cmp.Diff([]string{"b", "d", "a", "c"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSortKey(t *testing.T) {
	tests := map[string]models.SortKey{
		"popularity":  models.SortPopularity,
		" Name ":      models.SortName,
		"players-max": models.SortPlayersMax,
		"":            models.SortDefault,
		"rating":      models.SortDefault,
	}
	for raw, want := range tests {
		if got := ParseSortKey(raw); got != want {
			t.Errorf("ParseSortKey(%q) = %q; want %q", raw, got, want)
		}
	}
}

func TestFilterCounts_MatchApply(t *testing.T) {
	all := dataset(t)
	filters := models.FilterState{SkillLevels: []models.SkillLevel{models.SkillIntermediate}}

	counts, err := FilterCounts(context.Background(), all, "", filters)
	if err != nil {
		t.Fatalf("FilterCounts: %v", err)
	}

	for _, c := range models.Categories {
		single := filters
		single.Categories = []models.Category{c}
		want := len(Apply(all, "", single, models.SortDefault))
		if got := counts[models.DimensionCategory][string(c)]; got != want {
			t.Errorf("category %s: count %d, Apply %d", c, got, want)
		}
	}

	// own selection is ignored
	for _, l := range models.SkillLevels {
		single := models.FilterState{SkillLevels: []models.SkillLevel{l}}
		want := len(Apply(all, "", single, models.SortDefault))
		if got := counts[models.DimensionSkillLevel][string(l)]; got != want {
			t.Errorf("skill %s: count %d, Apply %d", l, got, want)
		}
	}
}

func TestFilterCounts_Categories(t *testing.T) {
	counts, err := FilterCounts(context.Background(), dataset(t), "", models.FilterState{})
	if err != nil {
		t.Fatalf("FilterCounts: %v", err)
	}
	want := map[string]int{"tournament": 4, "casual": 4, "betting": 6, "team": 4, "training": 2}
	if diff := cmp.Diff(want, counts[models.DimensionCategory]); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if len(counts) != len(models.Dimensions) {
		t.Errorf("got %d dimensions; want %d", len(counts), len(models.Dimensions))
	}
}

func TestFilterCounts_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := FilterCounts(ctx, dataset(t), "", models.FilterState{}); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestShareQuery_RoundTrip(t *testing.T) {
	filters := models.FilterState{
		Categories:  []models.Category{models.CategoryBetting, models.CategoryTeam},
		SkillLevels: []models.SkillLevel{models.SkillBeginner},
	}
	raw := BuildShareQuery(filters)
	values, err := url.ParseQuery(raw)
	if err != nil {
		t.Fatalf("ParseQuery(%q): %v", raw, err)
	}
	got := ParseBrowseQuery(values).Filters
	if diff := cmp.Diff(filters, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	if BuildShareQuery(models.FilterState{Types: []models.CompetitionType{models.TypeTeam}}) != "" {
		t.Error("share query should only mirror category and skill level")
	}
}
