package facing

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// IndicatorMode controls when the facing arrow is drawn.
type IndicatorMode string

const (
	IndicatorNever  IndicatorMode = "never"
	IndicatorHover  IndicatorMode = "hover"
	IndicatorAlways IndicatorMode = "always"
)

// ParseIndicatorMode validates a stored indicator mode.
func ParseIndicatorMode(s string) (IndicatorMode, error) {
	switch m := IndicatorMode(s); m {
	case IndicatorNever, IndicatorHover, IndicatorAlways:
		return m, nil
	}
	return "", fmt.Errorf("unknown indicator mode %q", s)
}

// Visible reports whether the arrow should be drawn for a token with the given hover state.
func (m IndicatorMode) Visible(hovered bool) bool {
	switch m {
	case IndicatorAlways:
		return true
	case IndicatorHover:
		return hovered
	}
	return false
}

// GradientTable stores a look-up table of colours interpolated by hue.
type GradientTable []struct {
	Hue float64
	Pos float64
}

// DispositionGradient runs from hostile red through neutral yellow to friendly green.
var DispositionGradient = GradientTable{
	{0.0, 0.0},   // Red
	{60.0, 0.5},  // Yellow
	{130.0, 1.0}, // Green
}

// GetColor gets a colour at the specified point on the look-up table.
func (g GradientTable) GetColor(t, c, l float64) colorful.Color {
	for i := 0; i < len(g)-1; i++ {
		c1 := g[i]
		c2 := g[i+1]
		if c1.Pos <= t && t <= c2.Pos {
			h := (((t - c1.Pos) / (c2.Pos - c1.Pos)) * (c2.Hue - c1.Hue)) + c1.Hue
			return colorful.Hcl(h, c, l)
		}
	}

	if t < g[0].Pos {
		return colorful.Hcl(g[0].Hue, c, l)
	}
	return colorful.Hcl(g[len(g)-1].Hue, c, l)
}

// Indicator is the arrow drawn on a token's edge to show its facing.
type Indicator struct {
	Points [3]mgl64.Vec2
	Colour colorful.Color
}

// Hex returns the indicator colour as a #rrggbb string.
func (i *Indicator) Hex() string {
	return i.Colour.Clamped().Hex()
}

// NewIndicator builds the arrow for a token whose centre is at centre and whose
// shorter side is size pixels, pointing along direction degrees.
// disposition ranges from -1 (hostile) to 1 (friendly).
func NewIndicator(centre mgl64.Vec2, size, direction float64, disposition int) *Indicator {
	i := new(Indicator)

	radius := size / 2
	arrow := size / 8
	rot := mgl64.Rotate2D(mgl64.DegToRad(direction))

	// Arrow drawn pointing east, then rotated into place.
	local := [3]mgl64.Vec2{
		{radius + arrow, 0},
		{radius, -arrow},
		{radius, arrow},
	}
	for n, p := range local {
		i.Points[n] = centre.Add(rot.Mul2x1(p))
	}

	t := (float64(disposition) + 1) / 2
	i.Colour = DispositionGradient.GetColor(t, 0.9, 0.6)
	return i
}
