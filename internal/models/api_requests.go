package models

// AddPlayerRequest adds a player to a scorecard roster
type AddPlayerRequest struct {
	Name     string `json:"name" validate:"max=40"`
	Handicap int    `json:"handicap"`
}

func (r *AddPlayerRequest) UnmarshalJSON(data []byte) error {
	type Alias AddPlayerRequest
	return flexUnmarshal(data, (*Alias)(r))
}

// UpdatePlayerRequest renames a player and/or sets their handicap. Nil fields are left unchanged.
type UpdatePlayerRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=40"`
	Handicap *int    `json:"handicap,omitempty"`
}

func (r *UpdatePlayerRequest) UnmarshalJSON(data []byte) error {
	type Alias UpdatePlayerRequest
	return flexUnmarshal(data, (*Alias)(r))
}

// SetStrokesRequest records strokes for one player on one hole
type SetStrokesRequest struct {
	Strokes int `json:"strokes"`
}

func (r *SetStrokesRequest) UnmarshalJSON(data []byte) error {
	type Alias SetStrokesRequest
	return flexUnmarshal(data, (*Alias)(r))
}

// RecentSearchRequest submits a search query to the history
type RecentSearchRequest struct {
	Query string `json:"query" validate:"required,max=100"`
}

