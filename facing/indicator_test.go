package facing

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewIndicatorPointsAlongDirection(t *testing.T) {
	centre := mgl64.Vec2{50, 50}
	i := NewIndicator(centre, 100, 90, 0)

	tip := i.Points[0]
	if !tip.ApproxEqualThreshold(mgl64.Vec2{50, 112.5}, 1e-9) {
		t.Errorf("Expected tip below the token at (50, 112.5), got %v", tip)
	}
	for n, p := range i.Points[1:] {
		if d := p.Sub(centre).Len(); d <= 50 {
			t.Errorf("Expected base point %d outside the token edge, got distance %v", n, d)
		}
	}
}

func TestIndicatorColourByDisposition(t *testing.T) {
	hostile := NewIndicator(mgl64.Vec2{}, 100, 0, -1)
	friendly := NewIndicator(mgl64.Vec2{}, 100, 0, 1)

	hh, _, _ := hostile.Colour.Hcl()
	fh, _, _ := friendly.Colour.Hcl()
	if hh > 10 && hh < 350 {
		t.Errorf("Expected hostile hue near red, got %v", hh)
	}
	if fh < 100 || fh > 160 {
		t.Errorf("Expected friendly hue near green, got %v", fh)
	}
	if len(hostile.Hex()) != 7 {
		t.Errorf("Expected #rrggbb colour, got %q", hostile.Hex())
	}
}

func TestIndicatorModeVisible(t *testing.T) {
	tests := []struct {
		mode    IndicatorMode
		hovered bool
		want    bool
	}{
		{IndicatorNever, true, false},
		{IndicatorHover, false, false},
		{IndicatorHover, true, true},
		{IndicatorAlways, false, true},
	}

	for _, tt := range tests {
		if got := tt.mode.Visible(tt.hovered); got != tt.want {
			t.Errorf("Expected %s visible=%v when hovered=%v, got %v", tt.mode, tt.want, tt.hovered, got)
		}
	}
}
