package document

import (
	"testing"

	"github.com/matt-g-everett/aboutface/canvas"
)

func TestTokenSetAttribute(t *testing.T) {
	tok := NewToken("t1", "Goblin", 0, 0, 100, 100)

	tests := []struct {
		attr canvas.Attribute
		get  func() float64
	}{
		{canvas.X, func() float64 { return tok.X }},
		{canvas.Y, func() float64 { return tok.Y }},
		{canvas.Rotation, func() float64 { return tok.Rotation }},
		{canvas.ScaleX, func() float64 { return tok.ScaleX }},
		{canvas.ScaleY, func() float64 { return tok.ScaleY }},
	}

	for _, tt := range tests {
		t.Run(string(tt.attr), func(t *testing.T) {
			if err := tok.SetAttribute(tt.attr, 42); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tt.get() != 42 {
				t.Errorf("Expected 42, got %v", tt.get())
			}
		})
	}

	if err := tok.SetAttribute(canvas.Alpha, 0.5); err == nil {
		t.Errorf("Expected error for unsupported attribute")
	}
}

func TestTokenUpdateMoves(t *testing.T) {
	tok := NewToken("t1", "Goblin", 100, 100, 100, 100)
	same := 100.0
	moved := 200.0
	rot := 90.0

	tests := []struct {
		name   string
		update TokenUpdate
		want   bool
	}{
		{"Nothing", TokenUpdate{}, false},
		{"Rotation only", TokenUpdate{Rotation: &rot}, false},
		{"Same position", TokenUpdate{X: &same, Y: &same}, false},
		{"Horizontal", TokenUpdate{X: &moved}, true},
		{"Vertical", TokenUpdate{Y: &moved}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.update.Moves(tok); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}

	u := TokenUpdate{Y: &moved}
	if d := u.Destination(tok); d.X() != 100 || d.Y() != 200 {
		t.Errorf("Expected destination (100, 200), got %v", d)
	}
}

func TestSceneApplyUpdates(t *testing.T) {
	s := NewScene("s1", "Crypt", 100)
	a := NewToken("a", "A", 0, 0, 100, 100)
	b := NewToken("b", "B", 0, 0, 100, 100)
	s.Tokens = []*Token{a, b}

	locked := true
	flags := make(Flags)
	flags.Set("about-face", "lockArrowRotation", true)

	err := s.ApplyUpdates([]*TokenUpdate{
		{ID: "a", LockRotation: &locked},
		{ID: "b", Flags: flags},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !a.LockRotation {
		t.Errorf("Expected token a to be locked")
	}
	if !b.Flags.Bool("about-face", "lockArrowRotation", false) {
		t.Errorf("Expected token b arrow to be locked")
	}

	unlocked := false
	err = s.ApplyUpdates([]*TokenUpdate{
		{ID: "a", LockRotation: &unlocked},
		{ID: "missing", LockRotation: &unlocked},
	})
	if err == nil {
		t.Fatalf("Expected error for missing token")
	}
	if !a.LockRotation {
		t.Errorf("Expected failed batch to leave token a untouched")
	}
}

func TestFlags(t *testing.T) {
	f := make(Flags)
	if f.Bool("ns", "k", true) != true {
		t.Errorf("Expected default for missing flag")
	}
	f.Set("ns", "k", "not-a-bool")
	if f.Bool("ns", "k", false) != false {
		t.Errorf("Expected default for mistyped flag")
	}
	f.Set("ns", "angle", 45)
	if v, ok := f.Float("ns", "angle"); !ok || v != 45 {
		t.Errorf("Expected 45, got %v (%v)", v, ok)
	}
}
