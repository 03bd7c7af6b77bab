package models

import "slices"

// Category groups formats by the occasion they are played for
type Category string

const (
	CategoryTournament Category = "tournament"
	CategoryCasual     Category = "casual"
	CategoryBetting    Category = "betting"
	CategoryTeam       Category = "team"
	CategoryTraining   Category = "training"
)

// Categories lists every category in display order
var Categories = []Category{CategoryTournament, CategoryCasual, CategoryBetting, CategoryTeam, CategoryTraining}

// CompetitionType describes who competes against whom
type CompetitionType string

const (
	TypeIndividual  CompetitionType = "individual"
	TypeTeam        CompetitionType = "team"
	TypePartnership CompetitionType = "partnership"
)

var CompetitionTypes = []CompetitionType{TypeIndividual, TypeTeam, TypePartnership}

// SkillLevel is the player ability a format suits
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillAll          SkillLevel = "all"
)

var SkillLevels = []SkillLevel{SkillBeginner, SkillIntermediate, SkillAdvanced, SkillAll}

// PlayerRange is the supported group size of a format
type PlayerRange struct {
	Min   int `json:"min" yaml:"min" validate:"required,min=1,max=144"`
	Max   int `json:"max" yaml:"max" validate:"required,gtefield=Min"`
	Ideal int `json:"ideal,omitempty" yaml:"ideal,omitempty" validate:"omitempty,gtefield=Min,ltefield=Max"`
}

// Scoring describes how a format is scored
type Scoring struct {
	Method      string `json:"method" yaml:"method" validate:"required"`
	Description string `json:"description" yaml:"description"`
}

// Format is a single golf game format. Records are static and shared, treat as read-only.
type Format struct {
	ID          string          `json:"id" yaml:"id" validate:"required"`
	Name        string          `json:"name" yaml:"name" validate:"required"`
	Category    Category        `json:"category" yaml:"category" validate:"required,oneof=tournament casual betting team training"`
	Description string          `json:"description" yaml:"description" validate:"required"`
	Players     PlayerRange     `json:"players" yaml:"players"`
	SkillLevels []SkillLevel    `json:"skill_levels" yaml:"skill_levels" validate:"required,min=1,dive,oneof=beginner intermediate advanced all"`
	Duration    string          `json:"duration" yaml:"duration" validate:"required"`
	Type        CompetitionType `json:"type" yaml:"type" validate:"required,oneof=individual team partnership"`
	Rules       []string        `json:"rules" yaml:"rules" validate:"required,min=1"`
	Scoring     Scoring         `json:"scoring" yaml:"scoring"`
	Pros        []string        `json:"pros" yaml:"pros"`
	Cons        []string        `json:"cons" yaml:"cons"`
	Tips        []string        `json:"tips,omitempty" yaml:"tips,omitempty"`
	Variations  []string        `json:"variations,omitempty" yaml:"variations,omitempty"`
	Equipment   []string        `json:"equipment,omitempty" yaml:"equipment,omitempty"`
	Popularity  int             `json:"popularity" yaml:"popularity" validate:"min=0,max=100"`
	Difficulty  int             `json:"difficulty" yaml:"difficulty" validate:"min=1,max=10"`
}

// Clone returns a deep copy of f whose slices share nothing with the original
func (f Format) Clone() Format {
	f.SkillLevels = slices.Clone(f.SkillLevels)
	f.Rules = slices.Clone(f.Rules)
	f.Pros = slices.Clone(f.Pros)
	f.Cons = slices.Clone(f.Cons)
	f.Tips = slices.Clone(f.Tips)
	f.Variations = slices.Clone(f.Variations)
	f.Equipment = slices.Clone(f.Equipment)
	return f
}

// HasSkillLevel reports whether the format lists the given skill level
func (f *Format) HasSkillLevel(level SkillLevel) bool {
	for _, l := range f.SkillLevels {
		if l == level {
			return true
		}
	}
	return false
}
