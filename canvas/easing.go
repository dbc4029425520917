package canvas

import (
	"fmt"
	"sort"

	"github.com/fogleman/ease"
)

// Easing maps linear progress in [0,1] to eased progress.
type Easing func(t float64) float64

var easings = map[string]Easing{
	"linear":     ease.Linear,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inCubic":    ease.InCubic,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
	"inSine":     ease.InSine,
	"outSine":    ease.OutSine,
	"inOutSine":  ease.InOutSine,
}

// EasingByName looks up a named easing function. The empty name means no easing.
func EasingByName(name string) (Easing, error) {
	if name == "" {
		return nil, nil
	}
	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q", name)
	}
	return fn, nil
}

// EasingNames lists the supported easing names in sorted order.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EasingLUT samples fn at length evenly spaced points from 0 to 1 inclusive.
func EasingLUT(fn Easing, length int) []float64 {
	if length < 2 {
		return []float64{fn(1)}
	}
	increment := 1.0 / float64(length-1)
	lut := make([]float64, length)
	for i := 0; i < length; i++ {
		lut[i] = fn(float64(i) * increment)
	}
	return lut
}
