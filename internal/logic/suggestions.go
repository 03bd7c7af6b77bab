package logic

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/fairwaylabs/formats-api/internal/models"
)

const (
	MinSuggestQueryLen = 2
	maxSuggestions     = 8
	maxNameSuggestions = 5
	maxPopularMatches  = 3

	didYouMeanThreshold = 0.5
)

// PopularSearches is the curated list offered alongside format names
var PopularSearches = []string{
	"team games",
	"betting games",
	"beginner friendly",
	"two players",
	"quick games",
	"match play",
	"points games",
	"practice drills",
}

// Suggest returns up to 8 suggestions for query: format names containing it (at most 5,
// dataset order) followed by popular searches containing it (at most 3, list order),
// deduplicated case-insensitively. Queries shorter than 2 characters yield nothing.
func Suggest(formats []models.Format, query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if len([]rune(q)) < MinSuggestQueryLen {
		return []string{}
	}

	out := make([]string, 0, maxSuggestions)
	seen := make(map[string]bool)
	add := func(s string) {
		key := strings.ToLower(s)
		if seen[key] || len(out) >= maxSuggestions {
			return
		}
		seen[key] = true
		out = append(out, s)
	}

	names := 0
	for _, f := range formats {
		if names >= maxNameSuggestions {
			break
		}
		if containsFold(f.Name, q) {
			add(f.Name)
			names++
		}
	}

	popular := 0
	for _, p := range PopularSearches {
		if popular >= maxPopularMatches {
			break
		}
		if containsFold(p, q) {
			add(p)
			popular++
		}
	}
	return out
}

// DidYouMean returns the format name closest to query by Levenshtein similarity,
// or "" when nothing is similar enough.
func DidYouMean(formats []models.Format, query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	if len(q) < MinSuggestQueryLen {
		return ""
	}

	best := ""
	bestScore := didYouMeanThreshold
	for _, f := range formats {
		name := strings.ToLower(f.Name)
		distance := fuzzy.LevenshteinDistance(q, name)
		maxLen := float64(max(len(q), len(name)))
		similarity := 1 - float64(distance)/maxLen
		if similarity > bestScore {
			bestScore = similarity
			best = f.Name
		}
	}
	return best
}
