package models

import (
	"encoding/json"
	"testing"
)

func TestFlexUnmarshal_AllStrings(t *testing.T) {
	input := `{"handicap": "18", "skill_level": "beginner", "preferred_group_size": "3", "theme": "dark", "animations": "off"}`

	var s Settings
	if err := json.Unmarshal([]byte(input), &s); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}

	if s.Handicap != 18 {
		t.Errorf("Handicap = %d, want 18", s.Handicap)
	}
	if s.SkillLevel != SkillBeginner {
		t.Errorf("SkillLevel = %q, want beginner", s.SkillLevel)
	}
	if s.PreferredGroupSize != 3 {
		t.Errorf("PreferredGroupSize = %d, want 3", s.PreferredGroupSize)
	}
	if s.Animations {
		t.Error("Animations = true, want false")
	}
}

func TestFlexUnmarshal_NativeTypes(t *testing.T) {
	input := `{"handicap": 7, "theme": "light", "animations": true}`

	var s Settings
	if err := json.Unmarshal([]byte(input), &s); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if s.Handicap != 7 {
		t.Errorf("Handicap = %d, want 7", s.Handicap)
	}
	if !s.Animations {
		t.Error("Animations = false, want true")
	}
}

func TestFlexUnmarshal_DecimalHandicap(t *testing.T) {
	var req UpdatePlayerRequest
	if err := json.Unmarshal([]byte(`{"name": "Ana", "handicap": "12.6"}`), &req); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if req.Handicap == nil || *req.Handicap != 12 {
		t.Errorf("Handicap = %v, want 12", req.Handicap)
	}
}

func TestFlexUnmarshal_InvalidJSON(t *testing.T) {
	var s Settings
	if err := json.Unmarshal([]byte(`{"handicap": `), &s); err == nil {
		t.Error("expected error for truncated JSON")
	}
}
