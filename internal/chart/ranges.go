package chart

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownRange is returned when a range key is not part of the enumeration.
var ErrUnknownRange = errors.New("unknown range")

// NamedRange is a user-selectable time window.
type NamedRange struct {
	Key    string
	Label  string
	Window time.Duration
}

const day = 24 * time.Hour

var ranges = []NamedRange{
	{Key: "1d", Label: "1D", Window: day},
	{Key: "1w", Label: "1W", Window: 7 * day},
	{Key: "1m", Label: "1M", Window: 30 * day},
	{Key: "3m", Label: "3M", Window: 91 * day},
	{Key: "1y", Label: "1Y", Window: 365 * day},
	{Key: "5y", Label: "5Y", Window: 5 * 365 * day},
}

// DefaultRangeKey is selected when nothing else is configured.
const DefaultRangeKey = "1m"

// Ranges returns the fixed range enumeration in display order.
func Ranges() []NamedRange {
	out := make([]NamedRange, len(ranges))
	copy(out, ranges)
	return out
}

// LookupRange returns the range registered under key.
func LookupRange(key string) (NamedRange, error) {
	for _, r := range ranges {
		if r.Key == key {
			return r, nil
		}
	}
	return NamedRange{}, fmt.Errorf("%w: %q", ErrUnknownRange, key)
}

// Intraday reports whether samples in this range are finer than one day.
func (r NamedRange) Intraday() bool {
	return r.Window <= 7*day
}

// TimeLayout returns the time format used to label samples of this range.
func (r NamedRange) TimeLayout() string {
	switch {
	case r.Window <= day:
		return "15:04"
	case r.Intraday():
		return "Mon 15:04"
	case r.Window <= 365*day:
		return "Jan 02"
	default:
		return "Jan 2006"
	}
}

// RangeChange is emitted by a RangeSelector whenever the selection moves.
type RangeChange struct {
	Previous NamedRange
	Current  NamedRange
}

// Persister stores the selected range key outside the chart, so a restart
// reproduces the same view.
type Persister interface {
	SaveRange(key string) error
}

// RangeSelector exposes the range enumeration and tracks the selected key.
// It holds no chart state; consumers react to the RangeChange it returns.
type RangeSelector struct {
	ranges    []NamedRange
	selected  int
	persister Persister
}

// NewRangeSelector starts at the range registered under key, falling back to
// DefaultRangeKey. persister may be nil.
func NewRangeSelector(key string, persister Persister) *RangeSelector {
	s := &RangeSelector{ranges: Ranges(), persister: persister}
	s.selected = s.indexOf(DefaultRangeKey)
	if i := s.indexOf(key); i >= 0 {
		s.selected = i
	}
	return s
}

func (s *RangeSelector) indexOf(key string) int {
	for i, r := range s.ranges {
		if r.Key == key {
			return i
		}
	}
	return -1
}

// Ranges returns the selectable ranges.
func (s *RangeSelector) Ranges() []NamedRange {
	return s.ranges
}

// Current returns the selected range.
func (s *RangeSelector) Current() NamedRange {
	return s.ranges[s.selected]
}

// Select moves the selection to key. Selecting the current range still
// returns a change so the caller can refetch.
func (s *RangeSelector) Select(key string) (RangeChange, error) {
	i := s.indexOf(key)
	if i < 0 {
		return RangeChange{}, fmt.Errorf("%w: %q", ErrUnknownRange, key)
	}
	return s.move(i)
}

// SelectIndex moves the selection to the i-th range.
func (s *RangeSelector) SelectIndex(i int) (RangeChange, error) {
	if i < 0 || i >= len(s.ranges) {
		return RangeChange{}, fmt.Errorf("%w: index %d", ErrUnknownRange, i)
	}
	return s.move(i)
}

// Next selects the following range, wrapping around.
func (s *RangeSelector) Next() (RangeChange, error) {
	return s.move((s.selected + 1) % len(s.ranges))
}

// Prev selects the preceding range, wrapping around.
func (s *RangeSelector) Prev() (RangeChange, error) {
	return s.move((s.selected - 1 + len(s.ranges)) % len(s.ranges))
}

func (s *RangeSelector) move(i int) (RangeChange, error) {
	change := RangeChange{Previous: s.ranges[s.selected], Current: s.ranges[i]}
	s.selected = i
	if s.persister != nil {
		if err := s.persister.SaveRange(change.Current.Key); err != nil {
			return change, fmt.Errorf("persist range: %w", err)
		}
	}
	return change, nil
}
