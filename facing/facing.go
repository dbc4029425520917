// Package facing turns token movement into rotation angles.
package facing

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Facing is the direction a token's artwork points when its rotation is zero.
type Facing string

const (
	Down  Facing = "down"
	Right Facing = "right"
	Up    Facing = "up"
	Left  Facing = "left"
)

// ParseFacing validates a stored facing name.
func ParseFacing(s string) (Facing, error) {
	switch f := Facing(s); f {
	case Down, Right, Up, Left:
		return f, nil
	}
	return "", fmt.Errorf("unknown facing %q", s)
}

// Offset returns the rotation needed to turn artwork facing f towards angle zero (east).
func (f Facing) Offset() float64 {
	switch f {
	case Right:
		return 0
	case Up:
		return 90
	case Left:
		return 180
	default:
		return -90
	}
}

// Direction returns the angle in degrees of the move from -> to, in screen coordinates with y pointing down.
// ok is false when the positions are the same.
func Direction(from, to mgl64.Vec2) (deg float64, ok bool) {
	d := to.Sub(from)
	if d.ApproxEqual(mgl64.Vec2{}) {
		return 0, false
	}
	return Normalize(mgl64.RadToDeg(math.Atan2(d.Y(), d.X()))), true
}

// Rotation converts a movement direction into the token rotation for artwork facing f.
func Rotation(direction float64, f Facing) float64 {
	return Normalize(direction + f.Offset())
}

// Normalize wraps deg into [0, 360).
func Normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg -= 360
	}
	return deg
}

// Towards returns the angle equivalent to to that is reached from from by the shortest turn.
func Towards(from, to float64) float64 {
	d := math.Mod(to-from, 360)
	if d > 180 {
		d -= 360
	} else if d < -180 {
		d += 360
	}
	return from + d
}
