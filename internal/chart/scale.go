package chart

import (
	"math"
	"time"
)

// Projection maps a sample onto one pixel axis.
type Projection func(Sample) float64

// PointScale spreads a discrete, ordered domain of timestamps evenly across
// [0, width]. Spacing ignores the real time between samples, so gaps such as
// closed markets do not show up as empty stretches.
type PointScale struct {
	index map[int64]int
	step  float64
}

// NewPointScale builds a point scale over the distinct timestamps of domain,
// which must be in ascending order. A single-point domain sits at x = 0.
func NewPointScale(domain []time.Time, width float64) PointScale {
	p := PointScale{index: make(map[int64]int, len(domain))}
	n := 0
	for i, t := range domain {
		if i > 0 && t.Equal(domain[i-1]) {
			continue
		}
		p.index[t.UnixNano()] = n
		n++
	}
	if n > 1 {
		p.step = width / float64(n-1)
	}
	return p
}

// Position returns the pixel position of t and whether t is in the domain.
func (p PointScale) Position(t time.Time) (float64, bool) {
	i, ok := p.index[t.UnixNano()]
	if !ok {
		return math.NaN(), false
	}
	return float64(i) * p.step, true
}

// Step returns the distance between adjacent domain points.
func (p PointScale) Step() float64 {
	return p.step
}

// LinearScale maps the continuous domain [d0, d1] onto [r0, r1].
type LinearScale struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinearScale builds a linear scale. Ranges may be inverted.
func NewLinearScale(d0, d1, r0, r1 float64) LinearScale {
	return LinearScale{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Map projects v. A degenerate domain maps every value to the middle of the range.
func (l LinearScale) Map(v float64) float64 {
	span := l.d1 - l.d0
	t := 0.5
	if span != 0 {
		t = (v - l.d0) / span
	}
	return l.r0 + t*(l.r1-l.r0)
}

// Invert maps a range value back into the domain.
func (l LinearScale) Invert(r float64) float64 {
	span := l.r1 - l.r0
	if span == 0 {
		return l.d0
	}
	return l.d0 + (r-l.r0)/span*(l.d1-l.d0)
}

// Scales holds the horizontal and vertical scales for one series in one
// viewport. It is rebuilt whenever either changes and keeps no other state.
type Scales struct {
	X        PointScale
	Y        LinearScale
	Viewport Viewport
}

// BuildScales returns the scales for s drawn into vp.
func BuildScales(s *Series, vp Viewport) (Scales, error) {
	if s.Empty() {
		return Scales{}, ErrEmptySeries
	}
	domain := make([]time.Time, s.Len())
	for i := range domain {
		domain[i] = s.At(i).Time
	}
	return Scales{
		X:        NewPointScale(domain, vp.Width),
		Y:        NewLinearScale(s.Min(), s.Max(), vp.Height, 0),
		Viewport: vp,
	}, nil
}

// XOf returns the horizontal pixel position of smp.
func (sc Scales) XOf(smp Sample) float64 {
	x, _ := sc.X.Position(smp.Time)
	return x
}

// YOf returns the vertical pixel position of smp, growing downwards.
func (sc Scales) YOf(smp Sample) float64 {
	return sc.Y.Map(smp.Value)
}
