package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

type mockSweeper struct {
	calls   atomic.Int32
	removed int
	swept   chan struct{}
}

func (m *mockSweeper) Sweep() int {
	m.calls.Add(1)
	if m.swept != nil {
		m.swept <- struct{}{}
	}
	return m.removed
}

func (m *mockSweeper) Len() int { return 3 }

func TestJanitor_SweepsOnInterval(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := clockwork.NewFakeClock()
	sweeper := &mockSweeper{removed: 2, swept: make(chan struct{}, 1)}
	j := NewJanitor(JanitorConfig{Name: "test", Interval: time.Minute, Clock: clock, Logger: zap.NewNop()}, sweeper)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	j.Start(ctx)
	defer j.Stop()

	if err := clock.BlockUntilContext(ctx, 1); err != nil {
		t.Fatalf("ticker never registered: %v", err)
	}

	for i := 1; i <= 2; i++ {
		clock.Advance(time.Minute)
		select {
		case <-sweeper.swept:
		case <-ctx.Done():
			t.Fatalf("sweep %d never ran", i)
		}
	}

	if got := sweeper.calls.Load(); got != 2 {
		t.Errorf("expected 2 sweeps, got %d", got)
	}
}

func TestJanitor_RunOnce(t *testing.T) {
	sweeper := &mockSweeper{removed: 4}
	j := NewJanitor(JanitorConfig{Logger: zap.NewNop()}, sweeper)

	if got := j.RunOnce(); got != 4 {
		t.Errorf("RunOnce() = %d; want 4", got)
	}
	if j.config.Interval != time.Minute {
		t.Errorf("default interval = %v; want 1m", j.config.Interval)
	}
}

func TestJanitor_StopWithoutStart(t *testing.T) {
	j := NewJanitor(JanitorConfig{Logger: zap.NewNop()}, &mockSweeper{})
	j.Stop()
}
