package canvas

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"
)

// Ticker steps a set of animations through a frame function.
// It stands in for the host's animation loop when the module runs outside the host.
type Ticker struct {
	log        *slog.Logger
	frame      FrameFunc
	animations []*Animation
	onStep     func(dt float64)
	mu         sync.Mutex
}

// NewTicker creates an instance of a Ticker driving animations through frame.
func NewTicker(log *slog.Logger, frame FrameFunc) *Ticker {
	t := new(Ticker)
	t.log = log
	t.frame = frame
	return t
}

// SetFrameFunc swaps the frame function, e.g. when an override is installed or removed.
func (t *Ticker) SetFrameFunc(frame FrameFunc) {
	t.mu.Lock()
	t.frame = frame
	t.mu.Unlock()
}

// OnStep registers a callback run after every Step.
func (t *Ticker) OnStep(fn func(dt float64)) {
	t.mu.Lock()
	t.onStep = fn
	t.mu.Unlock()
}

// Add schedules an animation from the next Step onwards.
func (t *Ticker) Add(a *Animation) {
	t.mu.Lock()
	t.animations = append(t.animations, a)
	t.mu.Unlock()
}

// Len returns the number of animations still running.
func (t *Ticker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.animations)
}

// Step advances every animation by dt milliseconds and drops those that settled.
func (t *Ticker) Step(dt float64) {
	t.mu.Lock()
	frame := t.frame
	animations := t.animations
	onStep := t.onStep
	t.mu.Unlock()

	settled := make(map[*Animation]bool)
	for _, a := range animations {
		if frame(dt, a) {
			settled[a] = true
		}
	}

	if len(settled) > 0 {
		t.mu.Lock()
		t.animations = lo.Reject(t.animations, func(a *Animation, _ int) bool {
			return settled[a]
		})
		t.mu.Unlock()
		t.log.Debug("animations settled", "count", len(settled))
	}

	if onStep != nil {
		onStep(dt)
	}
}

// Run steps the animations on a fixed interval until ctx is cancelled.
func (t *Ticker) Run(ctx context.Context, interval time.Duration) {
	frameTimer := time.NewTicker(interval)
	defer frameTimer.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-frameTimer.C:
			t.Step(float64(now.Sub(last)) / float64(time.Millisecond))
			last = now
		}
	}
}
