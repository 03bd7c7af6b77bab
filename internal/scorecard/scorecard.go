// Package scorecard is the ad hoc per-hole stroke tracker: a roster of 2 to 8
// players and 18 holes at standard pars. Cards are not persisted.
package scorecard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/fairwaylabs/formats-api/internal/models"
)

const (
	Holes       = 18
	MinPlayers  = 2
	MaxPlayers  = 8
	MaxStrokes  = 20
	MaxHandicap = 54
)

// StandardPars is a par 72 layout
var StandardPars = [Holes]int{4, 4, 3, 5, 4, 4, 3, 4, 5, 4, 3, 5, 4, 4, 3, 4, 5, 4}

// Player is a roster entry
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Handicap int    `json:"handicap"`
}

// Hole holds the par and each player's strokes. 0 strokes means not entered.
type Hole struct {
	Number  int            `json:"number"`
	Par     int            `json:"par"`
	Strokes map[string]int `json:"strokes"`
}

// Card is one scorecard. It is not safe for concurrent use; the service serialises access.
type Card struct {
	ID       string   `json:"id"`
	FormatID string   `json:"format_id,omitempty"`
	Players  []Player `json:"players"`
	Holes    []Hole   `json:"holes"`

	newID func() string
}

// New returns a card with two default players and standard pars
func New(formatID string) *Card {
	return newCard(formatID, func() string { return uuid.New().String() })
}

func newCard(formatID string, newID func() string) *Card {
	c := &Card{ID: newID(), FormatID: formatID, newID: newID, Holes: make([]Hole, Holes)}
	for i := range c.Holes {
		c.Holes[i] = Hole{Number: i + 1, Par: StandardPars[i], Strokes: make(map[string]int)}
	}
	for i := 0; i < MinPlayers; i++ {
		c.addPlayer("", 0)
	}
	return c
}

// AddPlayer appends a player with zero strokes on every hole.
// An empty name becomes "Player N".
func (c *Card) AddPlayer(name string, handicap int) (Player, error) {
	if len(c.Players) >= MaxPlayers {
		return Player{}, models.ErrRosterFull
	}
	return c.addPlayer(name, handicap), nil
}

func (c *Card) addPlayer(name string, handicap int) Player {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Player " + strconv.Itoa(len(c.Players)+1)
	}
	p := Player{ID: c.newID(), Name: name, Handicap: clamp(handicap, 0, MaxHandicap)}
	c.Players = append(c.Players, p)
	for i := range c.Holes {
		c.Holes[i].Strokes[p.ID] = 0
	}
	return p
}

// RemovePlayer drops a player and their strokes
func (c *Card) RemovePlayer(playerID string) error {
	idx := c.playerIndex(playerID)
	if idx < 0 {
		return fmt.Errorf("%q: %w", playerID, models.ErrPlayerNotFound)
	}
	if len(c.Players) <= MinPlayers {
		return models.ErrRosterMinimum
	}
	c.Players = append(c.Players[:idx], c.Players[idx+1:]...)
	for i := range c.Holes {
		delete(c.Holes[i].Strokes, playerID)
	}
	return nil
}

// RenamePlayer sets a player's display name. Blank names are ignored.
func (c *Card) RenamePlayer(playerID, name string) error {
	idx := c.playerIndex(playerID)
	if idx < 0 {
		return fmt.Errorf("%q: %w", playerID, models.ErrPlayerNotFound)
	}
	if name = strings.TrimSpace(name); name != "" {
		c.Players[idx].Name = name
	}
	return nil
}

// SetHandicap clamps handicap to 0..54
func (c *Card) SetHandicap(playerID string, handicap int) error {
	idx := c.playerIndex(playerID)
	if idx < 0 {
		return fmt.Errorf("%q: %w", playerID, models.ErrPlayerNotFound)
	}
	c.Players[idx].Handicap = clamp(handicap, 0, MaxHandicap)
	return nil
}

// SetStrokes records strokes on hole (1-18), clamped to 0..20
func (c *Card) SetStrokes(hole int, playerID string, strokes int) error {
	if hole < 1 || hole > Holes {
		return models.ErrInvalidHole
	}
	if c.playerIndex(playerID) < 0 {
		return fmt.Errorf("%q: %w", playerID, models.ErrPlayerNotFound)
	}
	c.Holes[hole-1].Strokes[playerID] = clamp(strokes, 0, MaxStrokes)
	return nil
}

// Reset zeroes every stroke, leaving the roster untouched
func (c *Card) Reset() {
	for i := range c.Holes {
		for id := range c.Holes[i].Strokes {
			c.Holes[i].Strokes[id] = 0
		}
	}
}

// Clone returns a deep copy, safe to hand out while the original keeps changing
func (c *Card) Clone() *Card {
	out := &Card{ID: c.ID, FormatID: c.FormatID, newID: c.newID}
	out.Players = append([]Player(nil), c.Players...)
	out.Holes = make([]Hole, len(c.Holes))
	for i, h := range c.Holes {
		strokes := make(map[string]int, len(h.Strokes))
		for k, v := range h.Strokes {
			strokes[k] = v
		}
		out.Holes[i] = Hole{Number: h.Number, Par: h.Par, Strokes: strokes}
	}
	return out
}

func (c *Card) playerIndex(id string) int {
	for i, p := range c.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
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
