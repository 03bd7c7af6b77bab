package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu    sync.Mutex
	calls []string
	fired chan struct{}
}

func newRecorder() *recorder {
	return &recorder{fired: make(chan struct{}, 16)}
}

func (r *recorder) record(v string) {
	r.mu.Lock()
	r.calls = append(r.calls, v)
	r.mu.Unlock()
	r.fired <- struct{}{}
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func waitFired(t *testing.T, r *recorder) {
	t.Helper()
	select {
	case <-r.fired:
	case <-time.After(time.Second):
		t.Fatal("debounced function did not fire")
	}
}

func TestDebouncer_LastCallWins(t *testing.T) {
	clock := clockwork.NewFakeClock()
	rec := newRecorder()
	d := New(clock, 200*time.Millisecond, rec.record)

	d.Call("s")
	clock.Advance(100 * time.Millisecond)
	d.Call("sk")
	clock.Advance(100 * time.Millisecond)
	d.Call("ski")
	assert.Empty(t, rec.snapshot())

	clock.Advance(199 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
	assert.True(t, d.Pending())

	clock.Advance(time.Millisecond)
	waitFired(t, rec)
	assert.Equal(t, []string{"ski"}, rec.snapshot())
	assert.False(t, d.Pending())
}

func TestDebouncer_SeparateWindowsFireSeparately(t *testing.T) {
	clock := clockwork.NewFakeClock()
	rec := newRecorder()
	d := New(clock, 200*time.Millisecond, rec.record)

	d.Call("wolf")
	clock.Advance(200 * time.Millisecond)
	waitFired(t, rec)

	d.Call("skins")
	clock.Advance(200 * time.Millisecond)
	waitFired(t, rec)

	assert.Equal(t, []string{"wolf", "skins"}, rec.snapshot())
}

func TestDebouncer_Cancel(t *testing.T) {
	clock := clockwork.NewFakeClock()
	rec := newRecorder()
	d := New(clock, 200*time.Millisecond, rec.record)

	d.Call("nassau")
	d.Cancel()
	require.False(t, d.Pending())

	clock.Advance(time.Second)
	assert.Empty(t, rec.snapshot())
}

func TestDebouncer_StopIgnoresLaterCalls(t *testing.T) {
	clock := clockwork.NewFakeClock()
	rec := newRecorder()
	d := New(clock, 200*time.Millisecond, rec.record)

	d.Stop()
	d.Call("vegas")
	assert.False(t, d.Pending())

	clock.Advance(time.Second)
	assert.Empty(t, rec.snapshot())
}
