package features

import (
	"math"
	"math/rand"
)

// Float64Source yields uniform values in [0, 1).
type Float64Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// Random returns a complete record with every field drawn uniformly from its
// catalogue range and rounded to its precision. A nil src uses the global
// generator.
func Random(src Float64Source) InputFeatures {
	if src == nil {
		src = globalSource{}
	}
	var f InputFeatures
	for _, s := range catalogue {
		v := s.Min + src.Float64()*(s.Max-s.Min)
		_ = f.SetValue(s.Name, round(v, s.Precision))
	}
	return f
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	r := math.Round(v*scale) / scale
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}
