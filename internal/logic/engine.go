package logic

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/fairwaylabs/formats-api/internal/models"
)

// Search returns the formats whose searchable text contains query, case-insensitively.
// An empty query returns every format in its original order.
func Search(formats []models.Format, query string) []models.Format {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Format, 0, len(formats))
	for _, f := range formats {
		if q == "" || matchesQuery(&f, q) {
			out = append(out, f)
		}
	}
	return out
}

// matchesQuery expects q already lowercased
func matchesQuery(f *models.Format, q string) bool {
	if containsFold(f.Name, q) || containsFold(f.Description, q) ||
		containsFold(string(f.Category), q) || containsFold(string(f.Type), q) {
		return true
	}
	for _, l := range f.SkillLevels {
		if containsFold(string(l), q) {
			return true
		}
	}
	for _, r := range f.Rules {
		if containsFold(r, q) {
			return true
		}
	}
	for _, v := range f.Variations {
		if containsFold(v, q) {
			return true
		}
	}
	return false
}

func containsFold(s, lowerSubstr string) bool {
	return strings.Contains(strings.ToLower(s), lowerSubstr)
}

// Filter keeps the formats that pass every filter dimension
func Filter(formats []models.Format, filters models.FilterState) []models.Format {
	out := make([]models.Format, 0, len(formats))
	for _, f := range formats {
		if Passes(&f, filters) {
			out = append(out, f)
		}
	}
	return out
}

// Passes reports whether f satisfies all dimensions of filters
func Passes(f *models.Format, filters models.FilterState) bool {
	for _, dim := range models.Dimensions {
		if !passesDimension(f, filters, dim) {
			return false
		}
	}
	return true
}

func passesDimension(f *models.Format, filters models.FilterState, dim string) bool {
	switch dim {
	case models.DimensionCategory:
		if len(filters.Categories) == 0 {
			return true
		}
		for _, c := range filters.Categories {
			if f.Category == c {
				return true
			}
		}
	case models.DimensionSkillLevel:
		if len(filters.SkillLevels) == 0 {
			return true
		}
		for _, l := range filters.SkillLevels {
			if f.HasSkillLevel(l) {
				return true
			}
		}
	case models.DimensionType:
		if len(filters.Types) == 0 {
			return true
		}
		for _, t := range filters.Types {
			if f.Type == t {
				return true
			}
		}
	case models.DimensionPlayers:
		if len(filters.PlayerCounts) == 0 {
			return true
		}
		for _, b := range filters.PlayerCounts {
			if InPlayerBucket(f.Players, b) {
				return true
			}
		}
	case models.DimensionDifficulty:
		if len(filters.Difficulty) == 0 {
			return true
		}
		bucket := DifficultyBucket(f.Difficulty)
		for _, b := range filters.Difficulty {
			if b == bucket {
				return true
			}
		}
	case models.DimensionDuration:
		if len(filters.Durations) == 0 {
			return true
		}
		bucket := DurationBucket(f.Duration)
		for _, b := range filters.Durations {
			if b == bucket {
				return true
			}
		}
	default:
		return true
	}
	return false
}

// DifficultyBucket maps a 1-10 difficulty score to buckets 1 (Easy) to 4 (Expert)
func DifficultyBucket(difficulty int) int {
	switch {
	case difficulty <= 3:
		return 1
	case difficulty <= 6:
		return 2
	case difficulty <= 8:
		return 3
	default:
		return 4
	}
}

var playerBucketRanges = map[string][2]int{
	models.PlayersSolo:  {1, 1},
	models.PlayersPair:  {2, 2},
	models.PlayersSmall: {3, 4},
	models.PlayersLarge: {5, 1 << 30},
}

// InPlayerBucket reports whether the player range intersects the bucket's range.
// Unknown buckets never match.
func InPlayerBucket(p models.PlayerRange, bucket string) bool {
	r, ok := playerBucketRanges[bucket]
	if !ok {
		return false
	}
	return p.Min <= r[1] && p.Max >= r[0]
}

var durationNumber = regexp.MustCompile(`\d+(\.\d+)?`)

// DurationBucket classifies free duration text by its upper bound:
// quick up to 2 hours, standard up to 4 hours, long beyond that (days are always long).
// Text without a number is standard.
func DurationBucket(text string) string {
	lower := strings.ToLower(text)
	nums := durationNumber.FindAllString(lower, -1)
	if len(nums) == 0 {
		return models.DurationStandard
	}
	upper := 0.0
	for _, n := range nums {
		if v, err := strconv.ParseFloat(n, 64); err == nil && v > upper {
			upper = v
		}
	}

	hours := upper
	switch {
	case strings.Contains(lower, "day"):
		return models.DurationLong
	case strings.Contains(lower, "min") && !strings.Contains(lower, "hour"):
		hours = upper / 60
	}

	switch {
	case hours <= 2:
		return models.DurationQuick
	case hours <= 4:
		return models.DurationStandard
	default:
		return models.DurationLong
	}
}

// ParseSortKey maps a raw value to a known sort key, or SortDefault
func ParseSortKey(raw string) models.SortKey {
	switch k := models.SortKey(strings.ToLower(strings.TrimSpace(raw))); k {
	case models.SortName, models.SortPopularity, models.SortDifficulty, models.SortPlayersMin, models.SortPlayersMax:
		return k
	}
	return models.SortDefault
}

// Sort returns a stably sorted copy of formats. Unknown keys keep the input order.
func Sort(formats []models.Format, key models.SortKey) []models.Format {
	out := make([]models.Format, len(formats))
	copy(out, formats)

	var less func(a, b *models.Format) bool
	switch key {
	case models.SortName:
		less = func(a, b *models.Format) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case models.SortPopularity:
		less = func(a, b *models.Format) bool { return a.Popularity > b.Popularity }
	case models.SortDifficulty:
		less = func(a, b *models.Format) bool { return a.Difficulty < b.Difficulty }
	case models.SortPlayersMin:
		less = func(a, b *models.Format) bool { return a.Players.Min < b.Players.Min }
	case models.SortPlayersMax:
		less = func(a, b *models.Format) bool { return a.Players.Max > b.Players.Max }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(&out[i], &out[j]) })
	return out
}

// Apply runs search, filter and sort in that order
func Apply(formats []models.Format, query string, filters models.FilterState, key models.SortKey) []models.Format {
	return Sort(Filter(Search(formats, query), filters), key)
}
