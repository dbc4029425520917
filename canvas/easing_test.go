package canvas

import "testing"

func TestEasingByName(t *testing.T) {
	for _, name := range EasingNames() {
		t.Run(name, func(t *testing.T) {
			fn, err := EasingByName(name)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if fn(0) > 1e-9 || fn(0) < -1e-9 {
				t.Errorf("Expected %s(0) to be 0, got %v", name, fn(0))
			}
			if d := fn(1) - 1; d > 1e-9 || d < -1e-9 {
				t.Errorf("Expected %s(1) to be 1, got %v", name, fn(1))
			}
		})
	}

	if fn, err := EasingByName(""); fn != nil || err != nil {
		t.Errorf("Expected empty name to mean no easing")
	}
	if _, err := EasingByName("wobble"); err == nil {
		t.Errorf("Expected error for unknown easing")
	}
}

func TestEasingLUT(t *testing.T) {
	fn, _ := EasingByName("inOutQuad")
	lut := EasingLUT(fn, 11)
	if len(lut) != 11 {
		t.Fatalf("Expected 11 entries, got %d", len(lut))
	}
	for i := 1; i < len(lut); i++ {
		if lut[i] < lut[i-1] {
			t.Errorf("Expected non-decreasing LUT, got %v then %v", lut[i-1], lut[i])
		}
	}
	if d := lut[5] - 0.5; d > 1e-9 || d < -1e-9 {
		t.Errorf("Expected midpoint 0.5, got %v", lut[5])
	}
}
