package logic

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/fairwaylabs/formats-api/internal/models"
)

// Allowed values per query parameter. Anything else is dropped.
var (
	allowedCategories = setOf(models.Categories)
	allowedSkills     = setOf(models.SkillLevels)
	allowedTypes      = setOf(models.CompetitionTypes)
	allowedPlayers    = setOf(models.PlayerBuckets)
	allowedDurations  = setOf(models.DurationBuckets)
)

func setOf[T ~string](values []T) map[T]bool {
	m := make(map[T]bool, len(values))
	for _, v := range values {
		m[v] = true
	}
	return m
}

// splitParam reads a parameter given either repeated (?a=x&a=y) or comma separated (?a=x,y)
func splitParam(values url.Values, key string) []string {
	var out []string
	for _, raw := range values[key] {
		for _, part := range strings.Split(raw, ",") {
			if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func keepAllowed[T ~string](raw []string, allowed map[T]bool) []T {
	var out []T
	seen := make(map[T]bool)
	for _, r := range raw {
		v := T(r)
		if allowed[v] && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// ParseBrowseQuery builds a browse state from URL query parameters:
// q, category, skillLevel, type, players, difficulty, duration, sort, view.
func ParseBrowseQuery(values url.Values) models.UIState {
	state := models.DefaultUIState()
	state.Query = strings.TrimSpace(values.Get("q"))
	state.Sort = ParseSortKey(values.Get("sort"))
	if v := models.ViewMode(values.Get("view")); v == models.ViewGrid || v == models.ViewList {
		state.ViewMode = v
	}

	f := &state.Filters
	f.Categories = keepAllowed(splitParam(values, models.DimensionCategory), allowedCategories)
	f.SkillLevels = keepAllowed(splitParam(values, models.DimensionSkillLevel), allowedSkills)
	f.Types = keepAllowed(splitParam(values, models.DimensionType), allowedTypes)
	f.PlayerCounts = keepAllowed(splitParam(values, models.DimensionPlayers), allowedPlayers)
	f.Durations = keepAllowed(splitParam(values, models.DimensionDuration), allowedDurations)

	seen := make(map[int]bool)
	for _, raw := range splitParam(values, models.DimensionDifficulty) {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > len(models.DifficultyBuckets) || seen[n] {
			continue
		}
		seen[n] = true
		f.Difficulty = append(f.Difficulty, n)
	}

	return state
}

// BuildShareQuery mirrors the category and skill level selections into a query string
// so a filtered view can be shared, e.g. "category=betting%2Cteam&skillLevel=beginner".
// Returns "" when neither is selected.
func BuildShareQuery(filters models.FilterState) string {
	values := url.Values{}
	if len(filters.Categories) > 0 {
		parts := make([]string, len(filters.Categories))
		for i, c := range filters.Categories {
			parts[i] = string(c)
		}
		values.Set(models.DimensionCategory, strings.Join(parts, ","))
	}
	if len(filters.SkillLevels) > 0 {
		parts := make([]string, len(filters.SkillLevels))
		for i, l := range filters.SkillLevels {
			parts[i] = string(l)
		}
		values.Set(models.DimensionSkillLevel, strings.Join(parts, ","))
	}
	return values.Encode()
}
