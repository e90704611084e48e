package core

import (
	"math"
	"testing"
)

func TestSolveQuadratic_TwoRoots(t *testing.T) {
	tests := []struct {
		name       string
		a, b, c    float64
		wantT0     float64
		wantT1     float64
		wantSolved bool
	}{
		{name: "distinct roots", a: 1, b: -5, c: 6, wantT0: 2, wantT1: 3, wantSolved: true},
		{name: "negative roots", a: 1, b: 3, c: 2, wantT0: -2, wantT1: -1, wantSolved: true},
		{name: "no real roots", a: 1, b: 0, c: 1, wantSolved: false},
		{name: "linear fallback", a: 0, b: 2, c: -8, wantT0: 4, wantT1: 4, wantSolved: true},
		{name: "double root", a: 1, b: -2, c: 1, wantT0: 1, wantT1: 1, wantSolved: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t0, t1, ok := SolveQuadratic(tt.a, tt.b, tt.c)
			if ok != tt.wantSolved {
				t.Fatalf("SolveQuadratic(%v, %v, %v) ok = %v, want %v", tt.a, tt.b, tt.c, ok, tt.wantSolved)
			}
			if !ok {
				return
			}
			if math.Abs(t0-tt.wantT0) > 1e-9 || math.Abs(t1-tt.wantT1) > 1e-9 {
				t.Errorf("got roots (%v, %v), want (%v, %v)", t0, t1, tt.wantT0, tt.wantT1)
			}
		})
	}
}

func TestSolveQuadratic_Stability(t *testing.T) {
	// Roots of very different magnitude should not lose the small root to
	// cancellation.
	t0, t1, ok := SolveQuadratic(1, -1e8, 1)
	if !ok {
		t.Fatal("expected real roots")
	}
	if math.Abs(t0-1e-8)/1e-8 > 1e-6 {
		t.Errorf("small root = %v, want 1e-8", t0)
	}
	if math.Abs(t1-1e8)/1e8 > 1e-6 {
		t.Errorf("large root = %v, want 1e8", t1)
	}
}

func TestSolveCubic_KnownRoots(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c float64 // t³ + a·t² + b·t + c
	}{
		{name: "three real roots", a: -6, b: 11, c: -6},   // roots 1, 2, 3
		{name: "one real root", a: 0, b: 0, c: -8},        // root 2
		{name: "triple root", a: -3, b: 3, c: -1},         // root 1
		{name: "negative root", a: 3, b: 3, c: 1},         // root -1
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := SolveCubic(tt.a, tt.b, tt.c)
			residual := root*root*root + tt.a*root*root + tt.b*root + tt.c
			if math.Abs(residual) > 1e-6 {
				t.Errorf("root %v has residual %v", root, residual)
			}
		})
	}
}

func TestSolveQuartic_KnownRoots(t *testing.T) {
	tests := []struct {
		name          string
		a, b, c, d, e float64
		wantRoots     []float64
	}{
		{
			// (t-1)(t-2)(t-3)(t-4) = t⁴ - 10t³ + 35t² - 50t + 24
			name: "four distinct roots",
			a:    1, b: -10, c: 35, d: -50, e: 24,
			wantRoots: []float64{1, 2, 3, 4},
		},
		{
			// (t²-1)(t²-4) = t⁴ - 5t² + 4, biquadratic
			name: "biquadratic",
			a:    1, b: 0, c: -5, d: 0, e: 4,
			wantRoots: []float64{-2, -1, 1, 2},
		},
		{
			// t⁴ + 1 has no real roots
			name: "no real roots",
			a:    1, b: 0, c: 0, d: 0, e: 1,
			wantRoots: nil,
		},
		{
			// (t²+1)(t-1)(t+1) = t⁴ - 1: two real, two complex
			name: "two real roots",
			a:    1, b: 0, c: 0, d: 0, e: -1,
			wantRoots: []float64{-1, 1},
		},
		{
			// (t-1)(t-2)(t-3) = t³ - 6t² + 11t - 6
			name: "zero leading coefficient cubic",
			a:    0, b: 1, c: -6, d: 11, e: -6,
			wantRoots: []float64{1, 2, 3},
		},
		{
			// t³ - 1: one real root, two complex
			name: "cubic one real root",
			a:    0, b: 1, c: 0, d: 0, e: -1,
			wantRoots: []float64{1},
		},
		{
			// (t-1)(t-2) = t² - 3t + 2
			name: "degenerates to quadratic",
			a:    0, b: 0, c: 1, d: -3, e: 2,
			wantRoots: []float64{1, 2},
		},
		{
			name: "degenerates to linear",
			a:    0, b: 0, c: 0, d: 2, e: -4,
			wantRoots: []float64{2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roots := SolveQuartic(tt.a, tt.b, tt.c, tt.d, tt.e)
			if len(roots) != len(tt.wantRoots) {
				t.Fatalf("got %d roots %v, want %d roots %v", len(roots), roots, len(tt.wantRoots), tt.wantRoots)
			}
			for i, want := range tt.wantRoots {
				if math.Abs(roots[i]-want) > 1e-6 {
					t.Errorf("root[%d] = %v, want %v", i, roots[i], want)
				}
			}
		})
	}
}

func TestSolveQuartic_RootsAscending(t *testing.T) {
	roots := SolveQuartic(1, -10, 35, -50, 24)
	for i := 1; i < len(roots); i++ {
		if roots[i-1] > roots[i] {
			t.Fatalf("roots not ascending: %v", roots)
		}
	}
}
