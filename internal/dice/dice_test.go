package dice

import "testing"

func TestScriptedReplaysInOrder(t *testing.T) {
	s := NewScripted(0.1, 0.9)
	s.Ints = []int{4, 7}

	if got := s.Float64(); got != 0.1 {
		t.Fatalf("first float: got %v want 0.1", got)
	}
	if got := s.Float64(); got != 0.9 {
		t.Fatalf("second float: got %v want 0.9", got)
	}
	if got := s.Float64(); got != 0 {
		t.Fatalf("exhausted float: got %v want fallback 0", got)
	}
	if got := s.Intn(10); got != 4 {
		t.Fatalf("first int: got %d want 4", got)
	}
	if got := s.Intn(5); got != 2 {
		t.Fatalf("second int should wrap into range: got %d want 2", got)
	}
}

func TestBetweenAndUniform(t *testing.T) {
	s := &Scripted{Ints: []int{0, 2}, Floats: []float64{0.5}}
	if got := Between(s, 2, 4); got != 2 {
		t.Errorf("Between low: got %d", got)
	}
	if got := Between(s, 2, 4); got != 4 {
		t.Errorf("Between high: got %d", got)
	}
	if got := Between(s, 5, 5); got != 5 {
		t.Errorf("Between degenerate: got %d", got)
	}
	if got := Uniform(s, 0.85, 1.0); got < 0.924 || got > 0.926 {
		t.Errorf("Uniform midpoint: got %v", got)
	}

	for i := 0; i < 200; i++ {
		v := Between(Global, 1, 2)
		if v < 1 || v > 2 {
			t.Fatalf("Between(Global) out of range: %d", v)
		}
	}
}
