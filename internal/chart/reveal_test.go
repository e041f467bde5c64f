package chart

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestComposeEmptySeries(t *testing.T) {
	f := Compose(NewSeries(nil), Viewport{Width: 300, Height: 100}, State{}, FrameOptions{})
	if !f.Empty || f.Placeholder != NoDataText {
		t.Errorf("expected placeholder frame, got empty=%v placeholder=%q", f.Empty, f.Placeholder)
	}
	if f.Line != nil || f.Marker != nil {
		t.Error("placeholder frame should carry no geometry")
	}
}

func TestComposeUndrawableViewport(t *testing.T) {
	f := Compose(fivePoints(), Viewport{}, State{}, FrameOptions{})
	if !f.Empty {
		t.Error("zero viewport should produce an empty frame")
	}
}

func TestComposeRestingFrame(t *testing.T) {
	s := fivePoints()
	m := newTestMachine(t, s, 500)
	f := Compose(s, Viewport{Width: 500, Height: 200}, m.Initial(), FrameOptions{})

	if f.Color != DefaultPalette.Positive {
		t.Errorf("rising series at rest should use the positive colour, got %q", f.Color)
	}
	if f.Crosshair != nil || f.Marker != nil || f.Label != nil {
		t.Error("crosshair, marker and label are hover-only")
	}
	wantClip := &Rect{X: 0, Y: 0, W: 500, H: 200}
	if diff := cmp.Diff(wantClip, f.Emphasis.Clip); diff != "" {
		t.Errorf("resting clip should cover the viewport (-want +got):\n%s", diff)
	}
	if f.Base.Clip != nil {
		t.Error("base layer must never be clipped")
	}
	if len(f.Line) != 5 || len(f.Area) != 7 {
		t.Fatalf("expected 5 line points and 7 area points, got %d and %d", len(f.Line), len(f.Area))
	}
	if f.Area[5] != (Point{X: 500, Y: 200}) || f.Area[6] != (Point{X: 0, Y: 200}) {
		t.Errorf("area should close along the bottom edge, got %v %v", f.Area[5], f.Area[6])
	}
}

func TestComposeFallingSeriesColour(t *testing.T) {
	s := makeSeries(20, 18, 11)
	m := newTestMachine(t, s, 100)
	f := Compose(s, Viewport{Width: 100, Height: 50}, m.Initial(), FrameOptions{})
	if f.Color != DefaultPalette.Negative {
		t.Errorf("falling series should use the negative colour, got %q", f.Color)
	}
}

func TestComposeHoverFrame(t *testing.T) {
	s := fivePoints()
	vp := Viewport{Width: 500, Height: 200}
	m := newTestMachine(t, s, 500)
	st := m.Apply(m.Initial(), PointerMove{X: 200, Y: 30, Width: 500})
	f := Compose(s, vp, st, FrameOptions{FormatValue: MoneyFormatter("USD")})

	if f.Color != DefaultPalette.Focus {
		t.Errorf("hover should switch to the focus colour, got %q", f.Color)
	}
	if f.Crosshair == nil || f.Crosshair[0] != (Point{X: 200, Y: 0}) || f.Crosshair[1] != (Point{X: 200, Y: 200}) {
		t.Errorf("crosshair should span the height at x=200, got %v", f.Crosshair)
	}
	// t3 has value 9, the series minimum, so it sits on the bottom edge.
	if f.Marker == nil || *f.Marker != (Point{X: 200, Y: 200}) {
		t.Errorf("marker should be at (200, y(t3)), got %v", f.Marker)
	}
	if f.Label == nil || f.Label.Text != "$9.00" || f.Label.Anchor != AnchorStart {
		t.Errorf("unexpected label %+v", f.Label)
	}
	if f.Emphasis.Clip.X != -300 || f.Emphasis.Clip.Right() != 200 {
		t.Errorf("clip should end at the pointer, got %+v", f.Emphasis.Clip)
	}
}

func TestComposeLabelFlipsPastMiddle(t *testing.T) {
	s := fivePoints()
	m := newTestMachine(t, s, 500)
	st := m.Apply(m.Initial(), PointerMove{X: 400, Y: 30, Width: 500})
	f := Compose(s, Viewport{Width: 500, Height: 200}, st, FrameOptions{})
	if f.Label == nil || f.Label.Anchor != AnchorEnd {
		t.Errorf("label right of centre should flip to AnchorEnd, got %+v", f.Label)
	}
	if f.Label.Text != "15.00" {
		t.Errorf("expected plain formatted 15.00, got %q", f.Label.Text)
	}
}

func TestComposeSingleSampleFinite(t *testing.T) {
	s := makeSeries(42)
	m := newTestMachine(t, s, 300)
	st := m.Apply(m.Initial(), PointerMove{X: 250, Y: 1, Width: 300})
	f := Compose(s, Viewport{Width: 300, Height: 80}, st, FrameOptions{})
	for _, p := range append(f.Line, f.Area...) {
		if !finite(p.X) || !finite(p.Y) {
			t.Fatalf("non-finite point %v", p)
		}
	}
	if !finite(f.Marker.Y) {
		t.Errorf("marker y not finite: %f", f.Marker.Y)
	}
}
