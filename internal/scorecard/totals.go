package scorecard

import "strconv"

// PlayerTotals are the derived figures for one player
type PlayerTotals struct {
	PlayerID    string `json:"player_id"`
	Name        string `json:"name"`
	Front       int    `json:"front"`
	Back        int    `json:"back"`
	Total       int    `json:"total"`
	HolesPlayed int    `json:"holes_played"`
	ToPar       string `json:"to_par"`
	Net         int    `json:"net"`
}

// Totals derives every player's figures in roster order
func (c *Card) Totals() []PlayerTotals {
	out := make([]PlayerTotals, 0, len(c.Players))
	for _, p := range c.Players {
		t := PlayerTotals{PlayerID: p.ID, Name: p.Name}
		parPlayed := 0
		for i, h := range c.Holes {
			s := h.Strokes[p.ID]
			if s == 0 {
				continue
			}
			if i < Holes/2 {
				t.Front += s
			} else {
				t.Back += s
			}
			t.HolesPlayed++
			parPlayed += h.Par
		}
		t.Total = t.Front + t.Back
		t.Net = t.Total - p.Handicap
		if t.HolesPlayed == 0 {
			t.ToPar = "-"
		} else {
			t.ToPar = FormatToPar(t.Total - parPlayed)
		}
		out = append(out, t)
	}
	return out
}

// FormatToPar renders a relative score as "E", "+n" or "-n"
func FormatToPar(diff int) string {
	switch {
	case diff == 0:
		return "E"
	case diff > 0:
		return "+" + strconv.Itoa(diff)
	default:
		return strconv.Itoa(diff)
	}
}

// Par returns the total par of the card
func (c *Card) Par() int {
	total := 0
	for _, h := range c.Holes {
		total += h.Par
	}
	return total
}

// Summary is a card together with its derived figures
type Summary struct {
	*Card
	Par    int            `json:"par"`
	Totals []PlayerTotals `json:"totals"`
}

// Summarize derives par and totals for c
func (c *Card) Summarize() Summary {
	return Summary{Card: c, Par: c.Par(), Totals: c.Totals()}
}
