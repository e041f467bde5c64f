package chart

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestMachine(t *testing.T, s *Series, width float64) Machine {
	t.Helper()
	sc, err := BuildScales(s, Viewport{Width: width, Height: 200})
	if err != nil {
		t.Fatalf("BuildScales() error: %v", err)
	}
	return NewMachine(s, sc)
}

func TestMachineInitial(t *testing.T) {
	s := fivePoints()
	m := newTestMachine(t, s, 500)
	want := State{Highlighted: s.Last()}
	if diff := cmp.Diff(want, m.Initial()); diff != "" {
		t.Errorf("initial state mismatch (-want +got):\n%s", diff)
	}
	if got := m.Initial().RevealOffset(); got != "0%" {
		t.Errorf("expected fully revealed offset 0%%, got %q", got)
	}
}

func TestMachineHoverAtRightEdge(t *testing.T) {
	s := fivePoints()
	m := newTestMachine(t, s, 500)
	st := m.Apply(m.Initial(), PointerMove{X: 500, Y: 40, Width: 500})
	if st.Highlighted != s.At(4) {
		t.Errorf("expected t5, got %+v", st.Highlighted)
	}
	if st.RevealPercent != 0 {
		t.Errorf("expected reveal 0, got %f", st.RevealPercent)
	}
	if !st.Hovering {
		t.Error("expected hovering after a pointer move")
	}
}

func TestMachineHoverBetweenPoints(t *testing.T) {
	s := fivePoints()
	m := newTestMachine(t, s, 500)
	st := m.Apply(m.Initial(), PointerMove{X: 200, Y: 10, Width: 500})
	want := State{
		Highlighted:   s.At(2),
		Pointer:       &Pointer{X: 200, Y: 10},
		RevealPercent: -60,
		Hovering:      true,
	}
	if diff := cmp.Diff(want, st); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
	if got := st.RevealOffset(); got != "-60%" {
		t.Errorf("expected -60%%, got %q", got)
	}
}

func TestMachineLeaveResets(t *testing.T) {
	s := fivePoints()
	m := newTestMachine(t, s, 500)
	st := m.Apply(m.Initial(), PointerMove{X: 130, Y: 10, Width: 500})
	st = m.Apply(st, PointerLeave{})
	if st.Hovering {
		t.Error("expected hovering=false after leave")
	}
	if st.Pointer != nil {
		t.Errorf("expected pointer cleared, got %+v", st.Pointer)
	}
	if diff := cmp.Diff(m.Initial(), st); diff != "" {
		t.Errorf("leave should restore the resting state (-want +got):\n%s", diff)
	}
}

func TestMachineIdempotent(t *testing.T) {
	s := fivePoints()
	m := newTestMachine(t, s, 500)

	idle := m.Initial()
	if diff := cmp.Diff(idle, m.Apply(idle, PointerLeave{})); diff != "" {
		t.Errorf("leave on idle state changed it (-want +got):\n%s", diff)
	}

	move := PointerMove{X: 321, Y: 77, Width: 500}
	once := m.Apply(idle, move)
	twice := m.Apply(once, move)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("repeated move changed the state (-once +twice):\n%s", diff)
	}
}

func TestMachineSingleSample(t *testing.T) {
	s := makeSeries(42)
	m := newTestMachine(t, s, 500)
	for _, x := range []float64{0, 100, 499, 500} {
		st := m.Apply(m.Initial(), PointerMove{X: x, Y: 0, Width: 500})
		if st.Highlighted != s.At(0) {
			t.Errorf("x=%f: expected the only sample, got %+v", x, st.Highlighted)
		}
	}
}

func TestMachineEmptySeries(t *testing.T) {
	s := NewSeries(nil)
	m := NewMachine(s, Scales{})
	st := m.Apply(m.Initial(), PointerMove{X: 10, Y: 10, Width: 100})
	if st.Hovering {
		t.Error("empty series should never enter hover")
	}
}

func TestMachineClampsPointer(t *testing.T) {
	s := fivePoints()
	m := newTestMachine(t, s, 500)
	tests := []struct {
		x     float64
		wantX float64
		want  Sample
	}{
		{-40, 0, s.At(0)},
		{5000, 500, s.At(4)},
	}
	for _, tt := range tests {
		st := m.Apply(m.Initial(), PointerMove{X: tt.x, Y: 10, Width: 500})
		if st.Pointer == nil || st.Pointer.X != tt.wantX {
			t.Errorf("x=%v: expected pointer at %v, got %+v", tt.x, tt.wantX, st.Pointer)
		}
		if st.Highlighted != tt.want {
			t.Errorf("x=%v: expected %+v, got %+v", tt.x, tt.want, st.Highlighted)
		}
	}
}

func TestMachineIgnoresNonFinitePointer(t *testing.T) {
	s := fivePoints()
	m := newTestMachine(t, s, 500)
	hover := m.Apply(m.Initial(), PointerMove{X: 200, Y: 10, Width: 500})
	for _, x := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if diff := cmp.Diff(hover, m.Apply(hover, PointerMove{X: x, Y: 10, Width: 500})); diff != "" {
			t.Errorf("x=%v changed the state (-want +got):\n%s", x, diff)
		}
		if st := m.Apply(m.Initial(), PointerMove{X: x, Y: 10, Width: 500}); st.Hovering {
			t.Errorf("x=%v should not start hovering", x)
		}
	}
}

func TestRevealPercentBounds(t *testing.T) {
	width := 640.0
	for x := 0.0; x <= width; x += 0.5 {
		p := RevealPercent(x, width)
		if p < -100 || p > 0 {
			t.Fatalf("RevealPercent(%f) = %f out of [-100, 0]", x, p)
		}
	}
	if p := RevealPercent(width, width); p != 0 {
		t.Errorf("expected 0 at right edge, got %f", p)
	}
	if p := RevealPercent(0, width); p != -100 {
		t.Errorf("expected -100 at left edge, got %f", p)
	}
	if p := RevealPercent(-20, width); p != -100 {
		t.Errorf("expected clamp to -100, got %f", p)
	}
	if p := RevealPercent(5, 0); p != 0 {
		t.Errorf("expected 0 for zero width, got %f", p)
	}
}
