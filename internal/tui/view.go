package tui

import (
	"fmt"
	"strings"

	"github.com/fairwaylabs/formats-api/internal/demo"
	"github.com/fairwaylabs/formats-api/internal/logic"
	"github.com/fairwaylabs/formats-api/internal/models"
)

func (m *Model) View() string {
	var sb strings.Builder
	switch m.screen {
	case screenDetail:
		m.viewDetail(&sb)
	case screenDemo:
		m.viewDemo(&sb)
	default:
		m.viewBrowse(&sb)
	}
	if m.status != "" {
		sb.WriteString("\n" + m.styles.Muted.Render(m.status) + "\n")
	}
	if m.err != nil {
		sb.WriteString("\n" + m.styles.Error.Render("error: "+m.err.Error()) + "\n")
	}
	return sb.String()
}

func (m *Model) viewBrowse(sb *strings.Builder) {
	sb.WriteString(m.styles.Title.Render("Golf Formats"))
	sb.WriteString("\n\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n")

	if len(m.suggestions) > 0 {
		sb.WriteString(m.styles.Suggestion.Render("  " + strings.Join(m.suggestions, " · ")))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if m.result == nil {
		return
	}
	sortLabel := string(m.ui.Sort)
	if sortLabel == "" {
		sortLabel = "default"
	}
	sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("%d of %d formats · sort: %s · view: %s",
		m.result.Matched, m.result.Total, sortLabel, m.ui.ViewMode)))
	sb.WriteString("\n\n")

	if len(m.result.Formats) == 0 {
		sb.WriteString("No formats match.")
		if m.result.DidYouMean != "" {
			sb.WriteString(" Did you mean " + m.styles.Suggestion.Render(m.result.DidYouMean) + "?")
		}
		sb.WriteString("\n")
	}

	for i, f := range m.result.Formats {
		star := " "
		if m.favorites[f.ID] {
			star = m.styles.Favorite.Render("★")
		}
		line := fmt.Sprintf("%-22s %-10s %s", f.Name, f.Category, playersLabel(f.Players))
		if m.ui.ViewMode == models.ViewList {
			line = fmt.Sprintf("%-22s %-10s %-12s %-8s pop %3d", f.Name, f.Category,
				playersLabel(f.Players), models.DifficultyLabels[logic.DifficultyBucket(f.Difficulty)], f.Popularity)
		}
		if i == m.cursor {
			line = m.styles.Selected.Render(line)
		}
		sb.WriteString(star + " " + line + "\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("↑/↓ move · enter open · ctrl+f favorite · ctrl+s sort · ctrl+t view · ctrl+x clear · esc quit"))
	sb.WriteString("\n")
}

func (m *Model) viewDetail(sb *strings.Builder) {
	f := m.selected
	title := f.Name
	if m.favorites[f.ID] {
		title += " " + m.styles.Favorite.Render("★")
	}
	sb.WriteString(m.styles.Title.Render(title))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("%s · %s · %s · %s", f.Category, f.Type, playersLabel(f.Players), f.Duration)))
	sb.WriteString("\n\n")
	sb.WriteString(f.Description)
	sb.WriteString("\n")

	section := func(name string, items []string) {
		if len(items) == 0 {
			return
		}
		sb.WriteString("\n" + m.styles.Header.Render(name) + "\n")
		for _, item := range items {
			sb.WriteString("  • " + item + "\n")
		}
	}
	section("Rules", f.Rules)
	if f.Scoring.Method != "" {
		sb.WriteString("\n" + m.styles.Header.Render("Scoring") + "\n")
		sb.WriteString("  " + f.Scoring.Method)
		if f.Scoring.Description != "" {
			sb.WriteString(": " + f.Scoring.Description)
		}
		sb.WriteString("\n")
	}
	section("Pros", f.Pros)
	section("Cons", f.Cons)
	section("Tips", f.Tips)

	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("f favorite · d demo · esc back"))
	sb.WriteString("\n")
}

func (m *Model) viewDemo(sb *strings.Builder) {
	idx, step := m.player.Current()
	sb.WriteString(m.styles.Title.Render(m.selected.Name + " explained"))
	sb.WriteString("\n\n")

	body := step.Title + "\n\n" + step.Narration
	if step.Hole > 0 {
		body += "\n\n" + m.styles.Muted.Render(fmt.Sprintf("Hole %d", step.Hole))
	}
	sb.WriteString(m.styles.Box.Render(body))
	sb.WriteString("\n")

	dots := make([]string, m.player.Len())
	for i := range dots {
		dots[i] = "○"
		if i == idx {
			dots[i] = "●"
		}
	}
	sb.WriteString(strings.Join(dots, " "))
	sb.WriteString(fmt.Sprintf("  step %d/%d · %s\n\n", idx+1, m.player.Len(), demoStateLabel(m.player.State())))
	sb.WriteString(m.styles.Muted.Render("space play/pause · n next · r restart · esc back"))
	sb.WriteString("\n")
}

func playersLabel(p models.PlayerRange) string {
	if p.Min == p.Max {
		return fmt.Sprintf("%d players", p.Min)
	}
	return fmt.Sprintf("%d-%d players", p.Min, p.Max)
}

func demoStateLabel(s demo.State) string {
	switch s {
	case demo.StatePlaying:
		return "playing"
	case demo.StatePaused:
		return "paused"
	case demo.StateFinished:
		return "done"
	}
	return "ready"
}
