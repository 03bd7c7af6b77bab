package models

// Theme options for the client
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Settings are the user preferences persisted per session
type Settings struct {
	Handicap           int        `json:"handicap"`
	SkillLevel         SkillLevel `json:"skill_level" validate:"omitempty,oneof=beginner intermediate advanced all"`
	PreferredGroupSize int        `json:"preferred_group_size"`
	Theme              Theme      `json:"theme" validate:"omitempty,oneof=light dark system"`
	Animations         bool       `json:"animations"`
}

// DefaultSettings returns the settings used when nothing is stored
func DefaultSettings() Settings {
	return Settings{
		Handicap:           0,
		SkillLevel:         SkillIntermediate,
		PreferredGroupSize: 4,
		Theme:              ThemeSystem,
		Animations:         true,
	}
}

// UnmarshalJSON accepts numbers and booleans encoded as strings, as sent by form inputs.
func (s *Settings) UnmarshalJSON(data []byte) error {
	type Alias Settings
	return flexUnmarshal(data, (*Alias)(s))
}

// UIState is the browse state of a session: filters, sort, query and view mode
type UIState struct {
	Query    string      `json:"query"`
	Filters  FilterState `json:"filters"`
	Sort     SortKey     `json:"sort"`
	ViewMode ViewMode    `json:"view_mode"`
}

// DefaultUIState returns the browse state of a fresh session
func DefaultUIState() UIState {
	return UIState{ViewMode: ViewGrid}
}

// FormatListResponse is the payload of a format search
type FormatListResponse struct {
	Formats    []Format                  `json:"formats"`
	Total      int                       `json:"total"`
	Matched    int                       `json:"matched"`
	Counts     map[string]map[string]int `json:"counts"`
	DidYouMean string                    `json:"did_you_mean,omitempty"`
	ShareQuery string                    `json:"share_query,omitempty"`
}

// CompareResult places formats side by side with a short summary
type CompareResult struct {
	Formats      []Format     `json:"formats"`
	Players      PlayerRange  `json:"players"`
	Easiest      string       `json:"easiest"`
	MostPopular  string       `json:"most_popular"`
	SharedSkills []SkillLevel `json:"shared_skill_levels"`
}
