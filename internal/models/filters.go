package models

// SortKey selects the ordering of a result list
type SortKey string

const (
	SortDefault    SortKey = ""
	SortName       SortKey = "name"
	SortPopularity SortKey = "popularity"
	SortDifficulty SortKey = "difficulty"
	SortPlayersMin SortKey = "players-min"
	SortPlayersMax SortKey = "players-max"
)

// Player count buckets
const (
	PlayersSolo  = "solo"
	PlayersPair  = "pair"
	PlayersSmall = "small"
	PlayersLarge = "large"
)

var PlayerBuckets = []string{PlayersSolo, PlayersPair, PlayersSmall, PlayersLarge}

// Duration buckets
const (
	DurationQuick    = "quick"
	DurationStandard = "standard"
	DurationLong     = "long"
)

var DurationBuckets = []string{DurationQuick, DurationStandard, DurationLong}

// Difficulty buckets: 1 Easy (<=3), 2 Medium (4-6), 3 Hard (7-8), 4 Expert (>=9)
var DifficultyBuckets = []int{1, 2, 3, 4}

// DifficultyLabels names each difficulty bucket
var DifficultyLabels = map[int]string{
	1: "Easy",
	2: "Medium",
	3: "Hard",
	4: "Expert",
}

// FilterState holds the active selections of every filter dimension.
// An empty selection imposes no restriction; values inside a dimension are OR'ed,
// dimensions are AND'ed.
type FilterState struct {
	Categories   []Category        `json:"categories"`
	SkillLevels  []SkillLevel      `json:"skill_levels"`
	Types        []CompetitionType `json:"types"`
	PlayerCounts []string          `json:"player_counts"`
	Difficulty   []int             `json:"difficulty"`
	Durations    []string          `json:"durations"`
}

// IsEmpty reports whether no dimension has a selection
func (f FilterState) IsEmpty() bool {
	return len(f.Categories) == 0 && len(f.SkillLevels) == 0 && len(f.Types) == 0 &&
		len(f.PlayerCounts) == 0 && len(f.Difficulty) == 0 && len(f.Durations) == 0
}

// Filter dimension names, used by reducers, counts and query parameters
const (
	DimensionCategory   = "category"
	DimensionSkillLevel = "skillLevel"
	DimensionType       = "type"
	DimensionPlayers    = "players"
	DimensionDifficulty = "difficulty"
	DimensionDuration   = "duration"
)

var Dimensions = []string{
	DimensionCategory,
	DimensionSkillLevel,
	DimensionType,
	DimensionPlayers,
	DimensionDifficulty,
	DimensionDuration,
}

// ViewMode is how the result list is displayed
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)
