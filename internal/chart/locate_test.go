package chart

import (
	"math"
	"math/rand"
	"testing"
)

func TestLocateScenarios(t *testing.T) {
	s := fivePoints()
	sc, _ := BuildScales(s, Viewport{Width: 500, Height: 200})

	tests := []struct {
		name string
		x    float64
		want int
	}{
		{"right edge", 500, 4},
		{"between t2 and t3", 200, 2},
		{"left edge", 0, 0},
		{"before first", -30, 0},
		{"past last", 900, 4},
		{"exact tie prefers earlier", 62.5, 0},
		{"just past midpoint", 62.6, 1},
	}
	for _, tt := range tests {
		got := Locate(s, sc.XOf, tt.x)
		if got != s.At(tt.want) {
			t.Errorf("%s: Locate(%f) = %+v, want %+v", tt.name, tt.x, got, s.At(tt.want))
		}
	}
}

func TestLocateSingleSample(t *testing.T) {
	s := makeSeries(42)
	sc, _ := BuildScales(s, Viewport{Width: 500, Height: 200})
	for _, x := range []float64{-1, 0, 1, 250, 500, 1e9} {
		if got := Locate(s, sc.XOf, x); got != s.At(0) {
			t.Errorf("Locate(%f) = %+v, want the only sample", x, got)
		}
	}
}

func TestLocatorEmpty(t *testing.T) {
	l := NewLocator(NewSeries(nil), func(Sample) float64 { return 0 })
	if i := l.Index(10); i != -1 {
		t.Errorf("expected -1 for empty series, got %d", i)
	}
}

// TestLocateMatchesBruteForce checks the binary search against a linear scan
// over random series sizes, widths and pointer positions.
func TestLocateMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 200; round++ {
		n := 1 + rng.Intn(300)
		values := make([]float64, n)
		for i := range values {
			values[i] = rng.Float64() * 1000
		}
		s := makeSeries(values...)
		width := 1 + rng.Float64()*1500
		sc, _ := BuildScales(s, Viewport{Width: width, Height: 100})
		l := NewLocator(s, sc.XOf)

		for probe := 0; probe < 50; probe++ {
			x := rng.Float64() * width
			got := l.Index(x)
			best := math.Inf(1)
			for i := 0; i < n; i++ {
				if d := math.Abs(sc.XOf(s.At(i)) - x); d < best {
					best = d
				}
			}
			if d := math.Abs(sc.XOf(s.At(got)) - x); d != best {
				t.Fatalf("n=%d width=%f x=%f: got index %d at distance %f, best is %f", n, width, x, got, d, best)
			}
		}
	}
}

func TestLocateDeterministic(t *testing.T) {
	s := fivePoints()
	sc, _ := BuildScales(s, Viewport{Width: 500, Height: 200})
	l := NewLocator(s, sc.XOf)
	first := l.Index(311)
	for i := 0; i < 100; i++ {
		if got := l.Index(311); got != first {
			t.Fatalf("call %d returned index %d, first call returned %d", i, got, first)
		}
		if Locate(s, sc.XOf, 311) != s.At(first) {
			t.Fatalf("Locate disagrees with Locator on call %d", i)
		}
	}
}

func BenchmarkLocator(b *testing.B) {
	values := make([]float64, 100_000)
	for i := range values {
		values[i] = float64(i % 97)
	}
	s := makeSeries(values...)
	sc, _ := BuildScales(s, Viewport{Width: 1920, Height: 400})
	l := NewLocator(s, sc.XOf)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Index(float64(i % 1920))
	}
}
