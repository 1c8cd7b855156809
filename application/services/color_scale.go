package services

import (
	"github.com/lucasb-eyer/go-colorful"
)

// ylGnBu stops, light to dark
var ylGnBu = []string{
	"#ffffd9", "#edf8b1", "#c7e9b4", "#7fcdbb", "#41b6c4",
	"#1d91c0", "#225ea8", "#253494", "#081d58",
}

// ColorScale maps a value within [min, max] onto a sequential palette
type ColorScale struct {
	stops []colorful.Color
}

// NewReversedYlGnBu returns YlGnBu running dark to light, so that the best
// connected nodes are the lightest.
func NewReversedYlGnBu() *ColorScale {
	stops := make([]colorful.Color, 0, len(ylGnBu))
	for i := len(ylGnBu) - 1; i >= 0; i-- {
		c, err := colorful.Hex(ylGnBu[i])
		if err != nil {
			panic(err)
		}
		stops = append(stops, c)
	}
	return &ColorScale{stops: stops}
}

// At returns the hex color for v. A degenerate range maps to the first stop.
func (s *ColorScale) At(v, min, max float64) string {
	if max <= min {
		return s.stops[0].Hex()
	}
	t := (v - min) / (max - min)
	if t <= 0 {
		return s.stops[0].Hex()
	}
	if t >= 1 {
		return s.stops[len(s.stops)-1].Hex()
	}
	pos := t * float64(len(s.stops)-1)
	i := int(pos)
	return s.stops[i].BlendLab(s.stops[i+1], pos-float64(i)).Clamped().Hex()
}
