// Package state holds the pure reducers over per-session UI state.
// Every function returns a new value and leaves its inputs untouched, so the
// session service can load state, apply one reducer and save the result.
package state

import (
	"strconv"
	"strings"

	"github.com/fairwaylabs/formats-api/internal/models"
)

const (
	MaxRecentSearches = 10
	MaxRecentlyViewed = 12
	MinRecentQueryLen = 2
	MaxHandicap       = 54
	MaxPreferredGroup = 8
	MinPreferredGroup = 1
)

// AddRecentSearch puts query at the front of history, removing any earlier
// case-insensitive duplicate and trimming to MaxRecentSearches.
// Queries shorter than MinRecentQueryLen after trimming are ignored.
func AddRecentSearch(history []string, query string) []string {
	q := strings.TrimSpace(query)
	if len([]rune(q)) < MinRecentQueryLen {
		return clone(history)
	}
	out := make([]string, 0, MaxRecentSearches)
	out = append(out, q)
	for _, h := range history {
		if len(out) >= MaxRecentSearches {
			break
		}
		if !strings.EqualFold(h, q) {
			out = append(out, h)
		}
	}
	return out
}

// ToggleFavorite adds id if absent, removes it if present
func ToggleFavorite(favorites []string, id string) []string {
	if contains(favorites, id) {
		return RemoveFavorite(favorites, id)
	}
	return AddFavorite(favorites, id)
}

// AddFavorite appends id when not already a favorite
func AddFavorite(favorites []string, id string) []string {
	out := clone(favorites)
	if !contains(out, id) {
		out = append(out, id)
	}
	return out
}

// RemoveFavorite drops id, keeping the order of the rest
func RemoveFavorite(favorites []string, id string) []string {
	out := make([]string, 0, len(favorites))
	for _, f := range favorites {
		if f != id {
			out = append(out, f)
		}
	}
	return out
}

// AddRecentlyViewed moves id to the front, capped at MaxRecentlyViewed
func AddRecentlyViewed(viewed []string, id string) []string {
	out := make([]string, 0, MaxRecentlyViewed)
	out = append(out, id)
	for _, v := range viewed {
		if len(out) >= MaxRecentlyViewed {
			break
		}
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// NormalizeSettings clamps numeric settings and fills unknown enums with defaults
func NormalizeSettings(s models.Settings) models.Settings {
	def := models.DefaultSettings()
	s.Handicap = clamp(s.Handicap, 0, MaxHandicap)
	if s.PreferredGroupSize == 0 {
		s.PreferredGroupSize = def.PreferredGroupSize
	}
	s.PreferredGroupSize = clamp(s.PreferredGroupSize, MinPreferredGroup, MaxPreferredGroup)
	switch s.SkillLevel {
	case models.SkillBeginner, models.SkillIntermediate, models.SkillAdvanced, models.SkillAll:
	default:
		s.SkillLevel = def.SkillLevel
	}
	switch s.Theme {
	case models.ThemeLight, models.ThemeDark, models.ThemeSystem:
	default:
		s.Theme = def.Theme
	}
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func clone(list []string) []string {
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// ActionType names a browse state transition
type ActionType string

const (
	ActionToggleFilter ActionType = "toggle_filter"
	ActionClearFilter  ActionType = "clear_filter"
	ActionClearAll     ActionType = "clear_all"
	ActionSetSort      ActionType = "set_sort"
	ActionSetQuery     ActionType = "set_query"
	ActionSetViewMode  ActionType = "set_view_mode"
)

// Action is one user interaction on the browse screen
type Action struct {
	Type      ActionType `json:"type" validate:"required,oneof=toggle_filter clear_filter clear_all set_sort set_query set_view_mode"`
	Dimension string     `json:"dimension,omitempty"`
	Value     string     `json:"value,omitempty"`
}

// Reduce applies action to ui and returns the new state.
// Unknown actions and invalid values leave the state unchanged.
func Reduce(ui models.UIState, action Action) models.UIState {
	next := cloneUI(ui)
	switch action.Type {
	case ActionToggleFilter:
		next.Filters = ToggleFilter(next.Filters, action.Dimension, action.Value)
	case ActionClearFilter:
		next.Filters = ClearDimension(next.Filters, action.Dimension)
	case ActionClearAll:
		next.Filters = models.FilterState{}
		next.Query = ""
	case ActionSetSort:
		next.Sort = sortKey(action.Value)
	case ActionSetQuery:
		next.Query = strings.TrimSpace(action.Value)
	case ActionSetViewMode:
		if v := models.ViewMode(action.Value); v == models.ViewGrid || v == models.ViewList {
			next.ViewMode = v
		}
	}
	return next
}

func sortKey(raw string) models.SortKey {
	switch k := models.SortKey(raw); k {
	case models.SortName, models.SortPopularity, models.SortDifficulty, models.SortPlayersMin, models.SortPlayersMax:
		return k
	}
	return models.SortDefault
}

// ToggleFilter selects value in dim if unselected, otherwise deselects it.
// Values outside the dimension's options are ignored.
func ToggleFilter(f models.FilterState, dim, value string) models.FilterState {
	out := cloneFilters(f)
	switch dim {
	case models.DimensionCategory:
		if validOption(models.Categories, value) {
			out.Categories = toggle(out.Categories, models.Category(value))
		}
	case models.DimensionSkillLevel:
		if validOption(models.SkillLevels, value) {
			out.SkillLevels = toggle(out.SkillLevels, models.SkillLevel(value))
		}
	case models.DimensionType:
		if validOption(models.CompetitionTypes, value) {
			out.Types = toggle(out.Types, models.CompetitionType(value))
		}
	case models.DimensionPlayers:
		if validOption(models.PlayerBuckets, value) {
			out.PlayerCounts = toggle(out.PlayerCounts, value)
		}
	case models.DimensionDuration:
		if validOption(models.DurationBuckets, value) {
			out.Durations = toggle(out.Durations, value)
		}
	case models.DimensionDifficulty:
		if n, err := strconv.Atoi(value); err == nil && n >= 1 && n <= len(models.DifficultyBuckets) {
			out.Difficulty = toggle(out.Difficulty, n)
		}
	}
	return out
}

// ClearDimension empties one dimension's selection
func ClearDimension(f models.FilterState, dim string) models.FilterState {
	out := cloneFilters(f)
	switch dim {
	case models.DimensionCategory:
		out.Categories = nil
	case models.DimensionSkillLevel:
		out.SkillLevels = nil
	case models.DimensionType:
		out.Types = nil
	case models.DimensionPlayers:
		out.PlayerCounts = nil
	case models.DimensionDifficulty:
		out.Difficulty = nil
	case models.DimensionDuration:
		out.Durations = nil
	}
	return out
}

func validOption[T ~string](options []T, value string) bool {
	for _, o := range options {
		if string(o) == value {
			return true
		}
	}
	return false
}

func toggle[T comparable](list []T, v T) []T {
	out := make([]T, 0, len(list)+1)
	found := false
	for _, x := range list {
		if x == v {
			found = true
			continue
		}
		out = append(out, x)
	}
	if !found {
		out = append(out, v)
	}
	return out
}

func cloneFilters(f models.FilterState) models.FilterState {
	return models.FilterState{
		Categories:   append([]models.Category(nil), f.Categories...),
		SkillLevels:  append([]models.SkillLevel(nil), f.SkillLevels...),
		Types:        append([]models.CompetitionType(nil), f.Types...),
		PlayerCounts: append([]string(nil), f.PlayerCounts...),
		Difficulty:   append([]int(nil), f.Difficulty...),
		Durations:    append([]string(nil), f.Durations...),
	}
}

func cloneUI(ui models.UIState) models.UIState {
	ui.Filters = cloneFilters(ui.Filters)
	return ui
}
