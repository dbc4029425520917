package facing

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestDirection(t *testing.T) {
	tests := []struct {
		name   string
		from   mgl64.Vec2
		to     mgl64.Vec2
		want   float64
		wantOK bool
	}{
		{"East", mgl64.Vec2{0, 0}, mgl64.Vec2{100, 0}, 0, true},
		{"South", mgl64.Vec2{0, 0}, mgl64.Vec2{0, 100}, 90, true},
		{"West", mgl64.Vec2{100, 0}, mgl64.Vec2{0, 0}, 180, true},
		{"North", mgl64.Vec2{0, 100}, mgl64.Vec2{0, 0}, 270, true},
		{"SouthEast", mgl64.Vec2{0, 0}, mgl64.Vec2{50, 50}, 45, true},
		{"Stationary", mgl64.Vec2{10, 10}, mgl64.Vec2{10, 10}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Direction(tt.from, tt.to)
			if ok != tt.wantOK {
				t.Fatalf("Expected ok %v, got %v", tt.wantOK, ok)
			}
			if !mgl64.FloatEqual(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRotation(t *testing.T) {
	tests := []struct {
		facing    Facing
		direction float64
		want      float64
	}{
		{Down, 90, 0},
		{Down, 0, 270},
		{Right, 0, 0},
		{Right, 270, 270},
		{Up, 270, 0},
		{Left, 180, 0},
		{Left, 90, 270},
	}

	for _, tt := range tests {
		got := Rotation(tt.direction, tt.facing)
		if !mgl64.FloatEqual(got, tt.want) {
			t.Errorf("Expected %v for %s moving %v, got %v", tt.want, tt.facing, tt.direction, got)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{-90, 270},
		{450, 90},
		{-720, 0},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Expected Normalize(%v) = %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestParseFacing(t *testing.T) {
	if f, err := ParseFacing("up"); err != nil || f != Up {
		t.Errorf("Expected up, got %v (%v)", f, err)
	}
	if _, err := ParseFacing("sideways"); err == nil {
		t.Errorf("Expected error for unknown facing")
	}
}

func TestTowards(t *testing.T) {
	tests := []struct {
		from, to, want float64
	}{
		{0, 90, 90},
		{350, 10, 370},
		{10, 350, -10},
		{90, 270, 270},
		{720, 90, 810},
	}

	for _, tt := range tests {
		if got := Towards(tt.from, tt.to); !mgl64.FloatEqual(got, tt.want) {
			t.Errorf("Expected Towards(%v, %v) = %v, got %v", tt.from, tt.to, tt.want, got)
		}
	}
}
