package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/fairwaylabs/formats-api/internal/demo"
	"github.com/fairwaylabs/formats-api/internal/logic"
	"github.com/fairwaylabs/formats-api/internal/models"
	"github.com/fairwaylabs/formats-api/internal/tui"
)

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5FD787"))

func newListCmd(a *app) *cobra.Command {
	var (
		query, sortKey                     string
		categories, skills, types, players []string
		difficulty, durations              []string
		asJSON                             bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List formats, optionally searched, filtered and sorted",
		Example: `  formats list --category betting,team --skill beginner
  formats list -q scramble --sort popularity`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values := url.Values{}
			values.Set("q", query)
			values.Set("sort", sortKey)
			setAll := func(key string, v []string) {
				if len(v) > 0 {
					values[key] = v
				}
			}
			setAll(models.DimensionCategory, categories)
			setAll(models.DimensionSkillLevel, skills)
			setAll(models.DimensionType, types)
			setAll(models.DimensionPlayers, players)
			setAll(models.DimensionDifficulty, difficulty)
			setAll(models.DimensionDuration, durations)

			res, err := a.formats.List(cmd.Context(), logic.ParseBrowseQuery(values))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, res)
			}
			if q := strings.TrimSpace(query); len(q) >= logic.MinSuggestQueryLen {
				if _, err := a.sessions.AddRecentSearch(cmd.Context(), localSession, q); err != nil {
					return err
				}
			}
			printFormatTable(out, res.Formats)
			fmt.Fprintf(out, "%d of %d formats\n", res.Matched, res.Total)
			if res.DidYouMean != "" {
				fmt.Fprintf(out, "Did you mean %q?\n", res.DidYouMean)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&query, "query", "q", "", "free text search")
	f.StringVar(&sortKey, "sort", "", "name, popularity, difficulty, players-min or players-max")
	f.StringSliceVar(&categories, "category", nil, "tournament, casual, betting, team, training")
	f.StringSliceVar(&skills, "skill", nil, "beginner, intermediate, advanced, all")
	f.StringSliceVar(&types, "type", nil, "individual, team, partnership")
	f.StringSliceVar(&players, "players", nil, "solo, pair, small, large")
	f.StringSliceVar(&difficulty, "difficulty", nil, "1 easy, 2 medium, 3 hard, 4 expert")
	f.StringSliceVar(&durations, "duration", nil, "quick, standard, long")
	f.BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show the full details of a format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.formats.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if _, err := a.sessions.RecordView(cmd.Context(), localSession, f.ID); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, f)
			}
			favs, err := a.sessions.Favorites(cmd.Context(), localSession)
			if err != nil {
				return err
			}
			printFormat(out, f, contains(favs, f.ID))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newCompareCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "compare <id> <id> [id] [id]",
		Short: "Compare two to four formats side by side",
		Args:  cobra.RangeArgs(logic.MinCompare, logic.MaxCompare),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.formats.Compare(cmd.Context(), args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, res)
			}

			headers := []string{""}
			rows := [][]string{
				{"Category"}, {"Type"}, {"Players"}, {"Duration"}, {"Difficulty"}, {"Popularity"}, {"Scoring"},
			}
			for _, f := range res.Formats {
				headers = append(headers, f.Name)
				rows[0] = append(rows[0], string(f.Category))
				rows[1] = append(rows[1], string(f.Type))
				rows[2] = append(rows[2], playerRange(f.Players))
				rows[3] = append(rows[3], f.Duration)
				rows[4] = append(rows[4], fmt.Sprintf("%d/10", f.Difficulty))
				rows[5] = append(rows[5], strconv.Itoa(f.Popularity))
				rows[6] = append(rows[6], f.Scoring.Method)
			}
			fmt.Fprintln(out, table.New().Border(lipgloss.NormalBorder()).Headers(headers...).Rows(rows...).Render())

			fmt.Fprintf(out, "Player range: %s\n", playerRange(res.Players))
			fmt.Fprintf(out, "Easiest: %s\n", res.Easiest)
			fmt.Fprintf(out, "Most popular: %s\n", res.MostPopular)
			if len(res.SharedSkills) > 0 {
				skills := make([]string, len(res.SharedSkills))
				for i, s := range res.SharedSkills {
					skills[i] = string(s)
				}
				fmt.Fprintf(out, "Shared skill levels: %s\n", strings.Join(skills, ", "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newSuggestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <query>",
		Short: "Print type-ahead suggestions for a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range a.formats.Suggest(cmd.Context(), strings.Join(args, " ")) {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}
}

func newFavCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fav [id]",
		Short: "Toggle a favorite, or list favorites when no id is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				favs, err := a.sessions.Favorites(ctx, localSession)
				if err != nil {
					return err
				}
				printIDs(out, favs, "No favorites yet")
				return nil
			}

			if _, err := a.formats.Get(ctx, args[0]); err != nil {
				return err
			}
			favs, err := a.sessions.ToggleFavorite(ctx, localSession, args[0])
			if err != nil {
				return err
			}
			if contains(favs, args[0]) {
				fmt.Fprintf(out, "Added %s to favorites\n", args[0])
			} else {
				fmt.Fprintf(out, "Removed %s from favorites\n", args[0])
			}
			return nil
		},
	}
}

func newRecentCmd(a *app) *cobra.Command {
	var clearHistory, viewed bool
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show recent searches or recently viewed formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			switch {
			case clearHistory:
				if err := a.sessions.ClearRecentSearches(ctx, localSession); err != nil {
					return err
				}
				fmt.Fprintln(out, "Recent searches cleared")
				return nil
			case viewed:
				ids, err := a.sessions.RecentlyViewed(ctx, localSession)
				if err != nil {
					return err
				}
				printIDs(out, ids, "Nothing viewed yet")
				return nil
			}
			searches, err := a.sessions.RecentSearches(ctx, localSession)
			if err != nil {
				return err
			}
			printIDs(out, searches, "No recent searches")
			return nil
		},
	}
	cmd.Flags().BoolVar(&clearHistory, "clear", false, "clear the recent search history")
	cmd.Flags().BoolVar(&viewed, "viewed", false, "show recently viewed formats instead")
	return cmd
}

func newDemoCmd(a *app, opts *rootOptions) *cobra.Command {
	var play bool
	cmd := &cobra.Command{
		Use:   "demo <id>",
		Short: "Walk through the explainer of a format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, err := a.formats.Demo(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !play {
				for i, step := range seq.Steps {
					printStep(out, i, len(seq.Steps), step)
				}
				return nil
			}
			return playDemo(cmd, *seq, clockwork.NewRealClock(), opts.demoDelay)
		},
	}
	cmd.Flags().BoolVar(&play, "play", false, "advance through the steps on a timer")
	return cmd
}

// playDemo prints each step as the player reaches it and returns once the last
// step is shown or the command is cancelled
func playDemo(cmd *cobra.Command, seq demo.Sequence, clock clockwork.Clock, delay time.Duration) error {
	out := cmd.OutOrStdout()
	total := len(seq.Steps)
	done := make(chan struct{})
	var once sync.Once
	var mu sync.Mutex

	player := demo.NewPlayer(seq, clock, delay, func(i int, step demo.Step) {
		mu.Lock()
		printStep(out, i, total, step)
		mu.Unlock()
		if i == total-1 {
			once.Do(func() { close(done) })
		}
	})
	defer player.Close()

	idx, first := player.Current()
	printStep(out, idx, total, first)
	if total == 1 {
		return nil
	}
	player.Play()

	select {
	case <-done:
		return nil
	case <-cmd.Context().Done():
		return cmd.Context().Err()
	}
}

func newBrowseCmd(a *app, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(cmd.Context(), tui.Config{
				Formats:      a.formats,
				Sessions:     a.sessions,
				SessionID:    localSession,
				SuggestDelay: opts.suggestDelay,
				DemoDelay:    opts.demoDelay,
			})
		},
	}
}

func printFormatTable(out io.Writer, formats []models.Format) {
	if len(formats) == 0 {
		fmt.Fprintln(out, "No formats match.")
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Name", "Category", "Players", "Difficulty", "Popularity")
	for _, f := range formats {
		t.Row(f.ID, f.Name, string(f.Category), playerRange(f.Players),
			models.DifficultyLabels[logic.DifficultyBucket(f.Difficulty)], strconv.Itoa(f.Popularity))
	}
	fmt.Fprintln(out, t.Render())
}

func printFormat(out io.Writer, f *models.Format, favorite bool) {
	title := f.Name
	if favorite {
		title += " ★"
	}
	fmt.Fprintln(out, titleStyle.Render(title))
	fmt.Fprintf(out, "%s · %s · %s · %s\n\n", f.Category, f.Type, playerRange(f.Players), f.Duration)
	fmt.Fprintln(out, f.Description)

	list := func(name string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(out, "\n%s\n", name)
		for _, item := range items {
			fmt.Fprintf(out, "  - %s\n", item)
		}
	}
	list("Rules", f.Rules)
	fmt.Fprintf(out, "\nScoring\n  %s", f.Scoring.Method)
	if f.Scoring.Description != "" {
		fmt.Fprintf(out, ": %s", f.Scoring.Description)
	}
	fmt.Fprintln(out)
	list("Pros", f.Pros)
	list("Cons", f.Cons)
	list("Tips", f.Tips)
	list("Variations", f.Variations)
	list("Equipment", f.Equipment)
}

func printStep(out io.Writer, i, total int, step demo.Step) {
	fmt.Fprintf(out, "[%d/%d] %s\n", i+1, total, titleStyle.Render(step.Title))
	fmt.Fprintf(out, "      %s\n", step.Narration)
}

func printIDs(out io.Writer, ids []string, empty string) {
	if len(ids) == 0 {
		fmt.Fprintln(out, empty)
		return
	}
	for _, id := range ids {
		fmt.Fprintln(out, id)
	}
}

func playerRange(p models.PlayerRange) string {
	if p.Min == p.Max {
		return strconv.Itoa(p.Min)
	}
	return fmt.Sprintf("%d-%d", p.Min, p.Max)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func writeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
