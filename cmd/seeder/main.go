package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fairwaylabs/formats-api/internal/handlers"
	"github.com/fairwaylabs/formats-api/internal/scorecard"
)

// Config
const (
	defaultAPIURL = "http://localhost:8080/api/v1"
	seedFormat    = "stableford"
)

// seedSearches and seedFavorites are what a typical first visit leaves behind
var (
	seedSearches  = []string{"scramble", "betting games", "wolf"}
	seedFavorites = []string{"scramble", "wolf", "nassau"}
	seedViews     = []string{"best-ball", "skins", "wolf"}
)

// client talks to a running formats API under one session
type client struct {
	base      string
	sessionID string
	http      *http.Client
}

// seedResult is what the seeder created
type seedResult struct {
	SessionID   string
	ScorecardID string
	Players     []scorecard.Player
}

func main() {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()
	sugar := logger.Sugar()

	base := strings.TrimRight(getEnv("API_URL", defaultAPIURL), "/")
	c := &client{base: base, http: &http.Client{Timeout: 5 * time.Second}}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	res, err := seed(ctx, c)
	if err != nil {
		sugar.Fatalw("Seeding failed", "api", base, "error", err)
	}
	sugar.Infow("Seeding complete",
		"session_id", res.SessionID,
		"scorecard_id", res.ScorecardID,
		"players", len(res.Players),
	)
	fmt.Printf("export SESSION_ID=%s\n", res.SessionID)
}

// seed fills one session with history, favorites, views and a played scorecard
func seed(ctx context.Context, c *client) (*seedResult, error) {
	for _, q := range seedSearches {
		if err := c.do(ctx, http.MethodPost, "/me/recent-searches", map[string]string{"query": q}, nil); err != nil {
			return nil, fmt.Errorf("recent search %q: %w", q, err)
		}
	}
	for _, id := range seedFavorites {
		if err := c.do(ctx, http.MethodPut, "/me/favorites/"+id, nil, nil); err != nil {
			return nil, fmt.Errorf("favorite %s: %w", id, err)
		}
	}
	for _, id := range seedViews {
		if err := c.do(ctx, http.MethodGet, "/formats/"+id, nil, nil); err != nil {
			return nil, fmt.Errorf("view %s: %w", id, err)
		}
	}

	var card struct {
		ID      string             `json:"id"`
		Players []scorecard.Player `json:"players"`
	}
	if err := c.do(ctx, http.MethodPost, "/scorecards?format="+seedFormat, nil, &card); err != nil {
		return nil, fmt.Errorf("create scorecard: %w", err)
	}
	if err := c.do(ctx, http.MethodPost, "/scorecards/"+card.ID+"/players",
		map[string]interface{}{"name": "Guest", "handicap": 18}, &card); err != nil {
		return nil, fmt.Errorf("add player: %w", err)
	}

	for i, p := range card.Players {
		for hole := 1; hole <= scorecard.Holes; hole++ {
			// Par plus a deterministic spread so totals differ per player
			strokes := scorecard.StandardPars[hole-1] + (hole+i)%3
			path := fmt.Sprintf("/scorecards/%s/holes/%d/players/%s", card.ID, hole, p.ID)
			if err := c.do(ctx, http.MethodPut, path, map[string]int{"strokes": strokes}, nil); err != nil {
				return nil, fmt.Errorf("strokes hole %d: %w", hole, err)
			}
		}
	}

	return &seedResult{SessionID: c.sessionID, ScorecardID: card.ID, Players: card.Players}, nil
}

// do sends one request, keeping the session id the API hands back
func (c *client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.sessionID != "" {
		req.Header.Set(handlers.SessionHeader, c.sessionID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if id := resp.Header.Get(handlers.SessionHeader); id != "" {
		c.sessionID = id
	}
	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: %s: %s", method, path, resp.Status, strings.TrimSpace(string(data)))
	}
	if out != nil {
		return json.Unmarshal(data, out)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
