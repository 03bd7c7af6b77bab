package demo

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultStepDelay is the time each step stays on screen while playing
const DefaultStepDelay = 2500 * time.Millisecond

// State of a Player
type State string

const (
	StateIdle     State = "idle"
	StatePlaying  State = "playing"
	StatePaused   State = "paused"
	StateFinished State = "finished"
)

// Player advances through a sequence on a fixed timer. There is no branching:
// steps run in order and playback stops on the last one.
type Player struct {
	seq    Sequence
	clock  clockwork.Clock
	delay  time.Duration
	onStep func(index int, step Step)

	mu      sync.Mutex
	index   int
	state   State
	timer   clockwork.Timer
	version uint64
}

// NewPlayer prepares seq at step 0. onStep, if set, is called every time the
// current step changes, outside the player's lock.
func NewPlayer(seq Sequence, clock clockwork.Clock, delay time.Duration, onStep func(int, Step)) *Player {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if delay <= 0 {
		delay = DefaultStepDelay
	}
	return &Player{seq: seq, clock: clock, delay: delay, onStep: onStep, state: StateIdle}
}

// Current returns the index and step being shown
func (p *Player) Current() (int, Step) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.index, p.seq.Steps[p.index]
}

// State returns the playback state
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Len returns the number of steps
func (p *Player) Len() int {
	return len(p.seq.Steps)
}

// Play starts or resumes automatic advancing. Playing a finished sequence restarts it.
func (p *Player) Play() {
	p.mu.Lock()
	if p.state == StatePlaying {
		p.mu.Unlock()
		return
	}
	restarted := false
	if p.state == StateFinished {
		p.index = 0
		restarted = true
	}
	p.state = StatePlaying
	p.scheduleLocked()
	idx, step := p.index, p.seq.Steps[p.index]
	p.mu.Unlock()

	if restarted {
		p.notify(idx, step)
	}
}

// Pause stops automatic advancing, keeping the current step
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StatePlaying {
		return
	}
	p.stopTimerLocked()
	p.state = StatePaused
}

// Step moves one step forward manually. It pauses playback. Returns false at the last step.
func (p *Player) Step() bool {
	p.mu.Lock()
	p.stopTimerLocked()
	if p.index >= len(p.seq.Steps)-1 {
		p.state = StateFinished
		p.mu.Unlock()
		return false
	}
	p.index++
	if p.index == len(p.seq.Steps)-1 {
		p.state = StateFinished
	} else {
		p.state = StatePaused
	}
	idx, step := p.index, p.seq.Steps[p.index]
	p.mu.Unlock()

	p.notify(idx, step)
	return true
}

// Reset returns to the first step and stops playback
func (p *Player) Reset() {
	p.mu.Lock()
	p.stopTimerLocked()
	p.index = 0
	p.state = StateIdle
	step := p.seq.Steps[0]
	p.mu.Unlock()

	p.notify(0, step)
}

// Close stops any pending timer
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopTimerLocked()
	if p.state == StatePlaying {
		p.state = StatePaused
	}
}

func (p *Player) scheduleLocked() {
	p.version++
	version := p.version
	p.timer = p.clock.AfterFunc(p.delay, func() { p.advance(version) })
}

func (p *Player) stopTimerLocked() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.version++
}

func (p *Player) advance(version uint64) {
	p.mu.Lock()
	if version != p.version || p.state != StatePlaying {
		p.mu.Unlock()
		return
	}
	p.timer = nil
	p.index++
	if p.index >= len(p.seq.Steps)-1 {
		p.index = len(p.seq.Steps) - 1
		p.state = StateFinished
	} else {
		p.scheduleLocked()
	}
	idx, step := p.index, p.seq.Steps[p.index]
	p.mu.Unlock()

	p.notify(idx, step)
}

func (p *Player) notify(idx int, step Step) {
	if p.onStep != nil {
		p.onStep(idx, step)
	}
}
