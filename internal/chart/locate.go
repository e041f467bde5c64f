package chart

import "sort"

// Locate returns the sample of s whose projected x position is nearest to
// pointerX. It projects every sample, so callers on a hot path should keep a
// Locator instead. s must not be empty.
func Locate(s *Series, xOf Projection, pointerX float64) Sample {
	return NewLocator(s, xOf).Locate(pointerX)
}

// Locator answers nearest-sample queries for one series and projection in
// O(log n) by keeping the ascending pixel positions of its samples.
type Locator struct {
	series    *Series
	positions []float64
}

// NewLocator projects every sample of s through xOf once.
func NewLocator(s *Series, xOf Projection) *Locator {
	l := &Locator{series: s, positions: make([]float64, s.Len())}
	for i := range l.positions {
		l.positions[i] = xOf(s.At(i))
	}
	return l
}

// Index returns the index of the nearest sample, or -1 for an empty series.
// On an exact tie the earlier sample wins.
func (l *Locator) Index(pointerX float64) int {
	n := len(l.positions)
	if n == 0 {
		return -1
	}
	i := sort.Search(n, func(j int) bool { return l.positions[j] > pointerX })
	switch {
	case i == 0:
		return 0
	case i == n:
		return n - 1
	}
	if pointerX-l.positions[i-1] > l.positions[i]-pointerX {
		return i
	}
	return i - 1
}

// Locate returns the nearest sample. The series must not be empty.
func (l *Locator) Locate(pointerX float64) Sample {
	return l.series.At(l.Index(pointerX))
}
