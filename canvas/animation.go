package canvas

import (
	"errors"
	"sync"
)

// ErrSettled is returned when resolving or rejecting an Animation that has already finished.
var ErrSettled = errors.New("animation already settled")

// Attribute names a numeric property of an animated object.
type Attribute string

const (
	Rotation Attribute = "rotation"
	ScaleX   Attribute = "scaleX"
	ScaleY   Attribute = "scaleY"
	X        Attribute = "x"
	Y        Attribute = "y"
	Alpha    Attribute = "alpha"
)

// IsScale reports whether the attribute is either scale axis.
func (a Attribute) IsScale() bool {
	return a == ScaleX || a == ScaleY
}

// A Target is an object whose attributes can be animated.
type Target interface {
	SetAttribute(attr Attribute, value float64) error
}

// Job interpolates one attribute of a Target.
type Job struct {
	Attribute Attribute
	Parent    Target
	From      float64
	To        float64
	Delta     float64
	Done      float64
}

// NewJob creates an instance of a Job, precomputing its delta.
func NewJob(parent Target, attr Attribute, from float64, to float64) *Job {
	j := new(Job)
	j.Attribute = attr
	j.Parent = parent
	j.From = from
	j.To = to
	j.Delta = to - from
	return j
}

// TickFunc is called once per frame after every job has been updated.
type TickFunc func(dt float64, a *Animation) error

// Animation is one in-flight batch of attribute jobs sharing a duration.
type Animation struct {
	Name     string
	Jobs     []*Job
	Time     float64
	Duration float64
	Easing   Easing
	OnTick   TickFunc

	// Optional hooks fired when the animation settles.
	OnComplete func()
	OnFail     func(error)

	once    sync.Once
	done    chan struct{}
	err     error
	settled bool
}

// NewAnimation creates an instance of an Animation lasting durationMs milliseconds.
func NewAnimation(name string, durationMs float64, jobs ...*Job) *Animation {
	a := new(Animation)
	a.Name = name
	a.Duration = durationMs
	a.Jobs = jobs
	a.done = make(chan struct{})
	return a
}

// Done is closed once the animation has either resolved or been rejected.
// Animations built without NewAnimation return a nil channel.
func (a *Animation) Done() <-chan struct{} {
	return a.done
}

// Err returns the rejection error, or nil if the animation resolved or is still running.
func (a *Animation) Err() error {
	if !a.settled {
		return nil
	}
	return a.err
}

// Settled reports whether Resolve or Reject has taken effect.
func (a *Animation) Settled() bool {
	return a.settled
}

// Resolve marks the animation as successfully completed.
func (a *Animation) Resolve() error {
	return a.settle(nil)
}

// Reject terminates the animation with err.
func (a *Animation) Reject(err error) error {
	if err == nil {
		err = errors.New("animation rejected")
	}
	return a.settle(err)
}

func (a *Animation) settle(err error) error {
	settled := false
	a.once.Do(func() {
		settled = true
		a.settled = true
		a.err = err
		if a.done != nil {
			close(a.done)
		}
	})
	if !settled {
		return ErrSettled
	}

	if err != nil {
		if a.OnFail != nil {
			a.OnFail(err)
		}
	} else if a.OnComplete != nil {
		a.OnComplete()
	}
	return nil
}
