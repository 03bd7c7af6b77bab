package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairwaylabs/formats-api/internal/demo"
	"github.com/fairwaylabs/formats-api/internal/models"
)

func runCLI(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(append(args, "--db", db))
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func tempDB(t *testing.T) string {
	return filepath.Join(t.TempDir(), "state.db")
}

func TestListFiltersAsJSON(t *testing.T) {
	out, err := runCLI(t, tempDB(t), "list", "--category", "betting", "--json")
	require.NoError(t, err)

	var res models.FormatListResponse
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.NotEmpty(t, res.Formats)
	for _, f := range res.Formats {
		assert.Equal(t, models.CategoryBetting, f.Category, f.ID)
	}
	assert.Equal(t, "category=betting", res.ShareQuery)
}

func TestListDidYouMean(t *testing.T) {
	out, err := runCLI(t, tempDB(t), "list", "-q", "stablefrod")
	require.NoError(t, err)
	assert.Contains(t, out, "No formats match.")
	assert.Contains(t, out, `Did you mean "Stableford"?`)
}

func TestRecentSearches(t *testing.T) {
	db := tempDB(t)
	_, err := runCLI(t, db, "list", "-q", "scramble")
	require.NoError(t, err)
	_, err = runCLI(t, db, "list", "-q", "x")
	require.NoError(t, err)

	out, err := runCLI(t, db, "recent")
	require.NoError(t, err)
	assert.Equal(t, "scramble\n", out)

	out, err = runCLI(t, db, "recent", "--clear")
	require.NoError(t, err)
	assert.Contains(t, out, "cleared")

	out, err = runCLI(t, db, "recent")
	require.NoError(t, err)
	assert.Contains(t, out, "No recent searches")
}

func TestShowRecordsView(t *testing.T) {
	db := tempDB(t)
	out, err := runCLI(t, db, "show", "wolf")
	require.NoError(t, err)
	assert.Contains(t, out, "Wolf")
	assert.Contains(t, out, "Rules")

	out, err = runCLI(t, db, "recent", "--viewed")
	require.NoError(t, err)
	assert.Equal(t, "wolf\n", out)

	_, err = runCLI(t, db, "show", "no-such-format")
	assert.ErrorIs(t, err, models.ErrFormatNotFound)
}

func TestFavToggle(t *testing.T) {
	db := tempDB(t)
	out, err := runCLI(t, db, "fav", "wolf")
	require.NoError(t, err)
	assert.Contains(t, out, "Added wolf")

	out, err = runCLI(t, db, "fav")
	require.NoError(t, err)
	assert.Equal(t, "wolf\n", out)

	out, err = runCLI(t, db, "show", "wolf")
	require.NoError(t, err)
	assert.Contains(t, out, "Wolf ★")

	out, err = runCLI(t, db, "fav", "wolf")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed wolf")

	_, err = runCLI(t, db, "fav", "bogus")
	assert.ErrorIs(t, err, models.ErrFormatNotFound)
}

func TestCompare(t *testing.T) {
	out, err := runCLI(t, tempDB(t), "compare", "scramble", "best-ball")
	require.NoError(t, err)
	assert.Contains(t, out, "Scramble")
	assert.Contains(t, out, "Best Ball")
	assert.Contains(t, out, "Easiest:")
	assert.Contains(t, out, "Most popular:")

	_, err = runCLI(t, tempDB(t), "compare", "scramble")
	assert.Error(t, err)

	_, err = runCLI(t, tempDB(t), "compare", "scramble", "scramble")
	assert.ErrorIs(t, err, models.ErrCompareSize)
}

func TestSuggest(t *testing.T) {
	out, err := runCLI(t, tempDB(t), "suggest", "wo")
	require.NoError(t, err)
	assert.Equal(t, []string{"Wolf", "Around the World", "two players"}, strings.Split(strings.TrimSpace(out), "\n"))
}

func TestDemoPrintsAllSteps(t *testing.T) {
	out, err := runCLI(t, tempDB(t), "demo", "wolf")
	require.NoError(t, err)
	assert.Contains(t, out, "[1/5] Set the order")
	assert.Contains(t, out, "[5/5] Rotate")

	_, err = runCLI(t, tempDB(t), "demo", "stroke-play")
	assert.ErrorIs(t, err, models.ErrDemoNotFound)
}

func TestPlayDemoAdvancesOnTimer(t *testing.T) {
	seq, err := demo.Get("best-ball")
	require.NoError(t, err)

	clock := clockwork.NewFakeClock()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetContext(ctx)

	errCh := make(chan error, 1)
	go func() { errCh <- playDemo(cmd, seq, clock, time.Second) }()

	for i := 1; i < len(seq.Steps); i++ {
		require.NoError(t, clock.BlockUntilContext(ctx, 1))
		clock.Advance(time.Second)
	}
	require.NoError(t, <-errCh)

	out := buf.String()
	assert.Contains(t, out, "[1/3] Own ball")
	assert.Contains(t, out, "[2/3] Compare")
	assert.Contains(t, out, "[3/3] Lower score counts")
}
