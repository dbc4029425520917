package canvas

import (
	"fmt"
	"log/slog"
)

// SnapPolicy selects which attributes jump straight to their target instead of animating.
type SnapPolicy struct {
	ForceRotation bool
	ForceScale    bool
}

// SnapPolicyFromOrdinal decodes the stored setting value: 0 none, 1 scale, 2 rotation, 3 both.
func SnapPolicyFromOrdinal(v int) (SnapPolicy, error) {
	if v < 0 || v > 3 {
		return SnapPolicy{}, fmt.Errorf("snap policy %d out of range 0-3", v)
	}
	return SnapPolicy{
		ForceRotation: v&2 != 0,
		ForceScale:    v&1 != 0,
	}, nil
}

// Ordinal encodes the policy in its stored form.
func (p SnapPolicy) Ordinal() int {
	v := 0
	if p.ForceRotation {
		v |= 2
	}
	if p.ForceScale {
		v |= 1
	}
	return v
}

// Enabled reports whether anything is forced to snap.
func (p SnapPolicy) Enabled() bool {
	return p.ForceRotation || p.ForceScale
}

func (p SnapPolicy) snaps(attr Attribute) bool {
	switch {
	case attr == Rotation:
		return p.ForceRotation
	case attr.IsScale():
		return p.ForceScale
	}
	return false
}

// FrameFunc advances an animation by dt milliseconds and reports whether it has settled.
type FrameFunc func(dt float64, a *Animation) bool

// Animator advances animations one frame at a time under a fixed SnapPolicy.
type Animator struct {
	log    *slog.Logger
	policy SnapPolicy
}

// NewAnimator creates an instance of an Animator.
func NewAnimator(log *slog.Logger, policy SnapPolicy) *Animator {
	a := new(Animator)
	a.log = log
	a.policy = policy
	return a
}

// Policy returns the snap policy the Animator was built with.
func (an *Animator) Policy() SnapPolicy {
	return an.policy
}

// AnimateFrame applies dt milliseconds of progress to every job in a.
// Jobs complete when the animation does, or immediately when the policy forces their attribute.
// A failing job or tick callback rejects the animation and stops the frame.
func (an *Animator) AnimateFrame(dt float64, a *Animation) bool {
	if a.Settled() {
		return true
	}

	a.Time += dt
	pt := a.Time / a.Duration
	complete := a.Time >= a.Duration
	pa := pt
	if complete {
		pa = 1
	} else if a.Easing != nil {
		pa = a.Easing(pt)
	}

	if err := an.applyFrame(dt, a, complete, pa); err != nil {
		an.log.Warn("animation rejected", "animation", a.Name, "time", a.Time, "error", err)
		a.Reject(err)
		return true
	}

	if complete {
		a.Resolve()
		return true
	}
	return false
}

func (an *Animator) applyFrame(dt float64, a *Animation, complete bool, pa float64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during frame: %v", r)
		}
	}()

	for _, j := range a.Jobs {
		if complete || an.policy.snaps(j.Attribute) {
			if err := j.Parent.SetAttribute(j.Attribute, j.To); err != nil {
				return fmt.Errorf("set %s: %w", j.Attribute, err)
			}
			j.Done = j.Delta
			continue
		}

		da := j.Delta * pa
		if err := j.Parent.SetAttribute(j.Attribute, j.From+da); err != nil {
			return fmt.Errorf("set %s: %w", j.Attribute, err)
		}
		j.Done = da
	}

	if a.OnTick != nil {
		if err := a.OnTick(dt, a); err != nil {
			return fmt.Errorf("tick: %w", err)
		}
	}
	return nil
}
