package dice

// Scripted replays fixed values, which makes formula and scenario tests
// deterministic. When a queue runs dry it keeps returning its fallback.
type Scripted struct {
	Floats        []float64
	Ints          []int
	FloatFallback float64
	IntFallback   int
}

// NewScripted returns a source that yields floats in order, then 0.
func NewScripted(floats ...float64) *Scripted {
	return &Scripted{Floats: floats}
}

func (s *Scripted) Float64() float64 {
	if len(s.Floats) == 0 {
		return s.FloatFallback
	}
	v := s.Floats[0]
	s.Floats = s.Floats[1:]
	return v
}

func (s *Scripted) Intn(n int) int {
	v := s.IntFallback
	if len(s.Ints) > 0 {
		v = s.Ints[0]
		s.Ints = s.Ints[1:]
	}
	if n <= 0 {
		return 0
	}
	if v < 0 {
		v = 0
	}
	return v % n
}
