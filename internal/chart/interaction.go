package chart

import (
	"math"
	"strconv"
)

// Pointer is the last pointer position inside the viewport, in pixels.
type Pointer struct {
	X float64
	Y float64
}

// State is the render-ready result of the interaction reducer.
// Pointer is nil whenever the chart is not hovered.
type State struct {
	Highlighted   Sample
	Pointer       *Pointer
	RevealPercent float64
	Hovering      bool
}

// RevealOffset formats RevealPercent as a CSS-style percentage, e.g. "-40%".
func (s State) RevealOffset() string {
	return strconv.FormatFloat(s.RevealPercent, 'f', -1, 64) + "%"
}

// Event is a pointer event consumed by Machine.Apply.
type Event interface {
	isEvent()
}

// PointerMove reports the pointer at (X, Y) within a viewport Width pixels wide.
type PointerMove struct {
	X, Y  float64
	Width float64
}

// PointerLeave reports the pointer leaving the chart.
type PointerLeave struct{}

func (PointerMove) isEvent()  {}
func (PointerLeave) isEvent() {}

// RevealPercent returns the horizontal offset of the emphasis clip as a
// percentage of width: -100 at the left edge, 0 at the right edge. x is
// clamped into [0, width].
func RevealPercent(x, width float64) float64 {
	if width <= 0 {
		return 0
	}
	switch {
	case x < 0:
		x = 0
	case x > width:
		x = width
	}
	p := -(1 - x/width) * 100
	if p == 0 {
		return 0
	}
	return p
}

// Machine is the interaction reducer for one series. It is a value: Apply
// never mutates the machine or the state it is given.
type Machine struct {
	series  *Series
	locator *Locator
}

// NewMachine builds a reducer over s using the horizontal projection of sc.
func NewMachine(s *Series, sc Scales) Machine {
	return Machine{series: s, locator: NewLocator(s, sc.XOf)}
}

// Initial is the resting state: last sample, not hovering, fully revealed.
func (m Machine) Initial() State {
	return State{Highlighted: m.series.Last()}
}

// Apply returns the state that follows st after ev. Every event is defined
// for every state; events on an empty series leave the resting state. A
// move is clamped into [0, Width]; a non-finite position leaves st as is.
func (m Machine) Apply(st State, ev Event) State {
	switch ev := ev.(type) {
	case PointerMove:
		if m.series.Empty() {
			return m.Initial()
		}
		if !isFinite(ev.X) || !isFinite(ev.Y) || !isFinite(ev.Width) {
			return st
		}
		if ev.Width > 0 {
			ev.X = math.Min(math.Max(ev.X, 0), ev.Width)
		}
		return State{
			Highlighted:   m.locator.Locate(ev.X),
			Pointer:       &Pointer{X: ev.X, Y: ev.Y},
			RevealPercent: RevealPercent(ev.X, ev.Width),
			Hovering:      true,
		}
	case PointerLeave:
		return m.Initial()
	}
	return st
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
