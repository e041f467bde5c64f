package chart

import (
	"errors"
	"time"
)

// ErrEmptySeries is returned when scales are requested for a series with no samples.
var ErrEmptySeries = errors.New("series has no samples")

// Sample is a single observation of a price series.
type Sample struct {
	Time  time.Time
	Value float64
}

// Series is an ordered, immutable sequence of samples. Timestamps are strictly
// increasing and values are finite; callers clean the data before building one.
// Min, max, first and last are computed once at construction.
type Series struct {
	samples []Sample
	min     float64
	max     float64
}

// NewSeries copies samples into a new Series and caches its statistics.
func NewSeries(samples []Sample) *Series {
	s := &Series{samples: make([]Sample, len(samples))}
	copy(s.samples, samples)
	for i, smp := range s.samples {
		if i == 0 || smp.Value < s.min {
			s.min = smp.Value
		}
		if i == 0 || smp.Value > s.max {
			s.max = smp.Value
		}
	}
	return s
}

// Len returns the number of samples. A nil series has length zero.
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.samples)
}

// Empty reports whether the series has no samples.
func (s *Series) Empty() bool {
	return s.Len() == 0
}

// At returns the i-th sample.
func (s *Series) At(i int) Sample {
	return s.samples[i]
}

// Samples returns a copy of the samples in order.
func (s *Series) Samples() []Sample {
	out := make([]Sample, s.Len())
	if s != nil {
		copy(out, s.samples)
	}
	return out
}

// Values returns the sample values in order.
func (s *Series) Values() []float64 {
	out := make([]float64, s.Len())
	for i := range out {
		out[i] = s.samples[i].Value
	}
	return out
}

// First returns the oldest sample, or the zero Sample for an empty series.
func (s *Series) First() Sample {
	if s.Empty() {
		return Sample{}
	}
	return s.samples[0]
}

// Last returns the newest sample, or the zero Sample for an empty series.
func (s *Series) Last() Sample {
	if s.Empty() {
		return Sample{}
	}
	return s.samples[len(s.samples)-1]
}

// Min returns the smallest value in the series.
func (s *Series) Min() float64 {
	if s.Empty() {
		return 0
	}
	return s.min
}

// Max returns the largest value in the series.
func (s *Series) Max() float64 {
	if s.Empty() {
		return 0
	}
	return s.max
}

// IsIncreasing reports whether the last value is strictly above the first.
func (s *Series) IsIncreasing() bool {
	return s.Last().Value > s.First().Value
}

// Viewport is the drawing rectangle in pixel units, owned by the host.
type Viewport struct {
	Width  float64
	Height float64
}

// Drawable reports whether the viewport has a positive area.
func (v Viewport) Drawable() bool {
	return v.Width > 0 && v.Height > 0
}
