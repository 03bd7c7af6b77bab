// Package demo holds the scripted format explainers: fixed, narrated step
// sequences played back one step at a time.
package demo

import (
	"fmt"

	"github.com/fairwaylabs/formats-api/internal/models"
)

// Step is one narrated moment of an explainer
type Step struct {
	Title     string `json:"title"`
	Narration string `json:"narration"`
	// Hole is the hole the step is on, 0 when not tied to one
	Hole int `json:"hole,omitempty"`
}

// Sequence is the explainer for one format
type Sequence struct {
	FormatID string `json:"format_id"`
	Steps    []Step `json:"steps"`
}

var sequences = map[string][]Step{
	"scramble": {
		{Title: "Everyone tees off", Narration: "All four players hit a drive from the first tee.", Hole: 1},
		{Title: "Pick the best drive", Narration: "The team walks to the drive in the best position and marks it.", Hole: 1},
		{Title: "Play from the spot", Narration: "Every player hits their second shot from within a club length of the marker.", Hole: 1},
		{Title: "Repeat to the green", Narration: "The best shot is chosen again, and so on until a putt drops.", Hole: 1},
		{Title: "One team score", Narration: "The team records a single score for the hole.", Hole: 1},
	},
	"best-ball": {
		{Title: "Own ball", Narration: "Each partner plays their own ball from tee to cup.", Hole: 1},
		{Title: "Compare", Narration: "Partner A makes 5 and partner B makes 4.", Hole: 1},
		{Title: "Lower score counts", Narration: "The side takes the 4 as its score for the hole.", Hole: 1},
	},
	"wolf": {
		{Title: "Set the order", Narration: "Players draw tees to set a rotating hitting order.", Hole: 1},
		{Title: "The Wolf tees off last", Narration: "The fourth player in the order is the Wolf on this hole.", Hole: 1},
		{Title: "Pick or pass", Narration: "After each drive the Wolf decides whether to take that player as a partner.", Hole: 1},
		{Title: "Lone Wolf", Narration: "Passing on everyone makes it one against three for double points.", Hole: 1},
		{Title: "Rotate", Narration: "On the next hole the order shifts and a new player is the Wolf.", Hole: 2},
	},
	"nassau": {
		{Title: "Three bets", Narration: "Set a stake for the front nine, the back nine and the full round."},
		{Title: "Front nine", Narration: "Holes 1 to 9 are a match of their own.", Hole: 9},
		{Title: "Press", Narration: "Two down, a player may press to start a new side bet.", Hole: 12},
		{Title: "Back nine and overall", Narration: "Holes 10 to 18 settle the second bet and all 18 holes settle the third.", Hole: 18},
	},
	"skins": {
		{Title: "A skin per hole", Narration: "Every hole is worth one skin.", Hole: 1},
		{Title: "Tie carries", Narration: "Two players make par on the first, so the skin carries over.", Hole: 1},
		{Title: "Outright win", Narration: "A lone birdie on the second wins two skins.", Hole: 2},
	},
	"stableford": {
		{Title: "Points not strokes", Narration: "Each hole scores points relative to par."},
		{Title: "Par is two", Narration: "A par earns 2 points, a bogey 1, a birdie 3.", Hole: 1},
		{Title: "Pick up", Narration: "Once a double bogey is certain, pick up and score zero.", Hole: 2},
		{Title: "Highest total wins", Narration: "Add the points for all 18 holes."},
	},
	"match-play": {
		{Title: "Hole by hole", Narration: "Each hole is a contest of its own.", Hole: 1},
		{Title: "Win, lose or halve", Narration: "A 4 beats a 5 and the leader goes 1 up.", Hole: 1},
		{Title: "Dormie", Narration: "Leading by as many holes as remain means the match can no longer be lost.", Hole: 16},
		{Title: "Closed out", Narration: "Three up with two to play ends the match 3 & 2.", Hole: 16},
	},
}

// Get returns the explainer for formatID
func Get(formatID string) (Sequence, error) {
	steps, ok := sequences[formatID]
	if !ok {
		return Sequence{}, fmt.Errorf("%q: %w", formatID, models.ErrDemoNotFound)
	}
	out := make([]Step, len(steps))
	copy(out, steps)
	return Sequence{FormatID: formatID, Steps: out}, nil
}

// Has reports whether formatID has an explainer
func Has(formatID string) bool {
	_, ok := sequences[formatID]
	return ok
}
