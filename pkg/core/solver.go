package core

import (
	"math"
	"sort"
)

// SolveQuadratic returns the real roots of a*t² + b*t + c = 0 in ascending
// order. ok is false when no real root exists. The discriminant is compared
// against zero exactly, so rays at exact tangency may be classified either
// way depending on rounding.
func SolveQuadratic(a, b, c float64) (t0, t1 float64, ok bool) {
	if a == 0 {
		if b == 0 {
			return 0, 0, false
		}
		t := -c / b
		return t, t, true
	}

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 0, 0, false
	}

	// Use the numerically stable form that avoids cancellation between
	// -b and the discriminant root.
	sqrtD := math.Sqrt(discriminant)
	var q float64
	if b < 0 {
		q = -0.5 * (b - sqrtD)
	} else {
		q = -0.5 * (b + sqrtD)
	}

	t0 = q / a
	t1 = c / q
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	return t0, t1, true
}

// SolveCubic returns one real root of t³ + a*t² + b*t + c = 0. Every cubic
// with real coefficients has at least one.
func SolveCubic(a, b, c float64) float64 {
	// Depress the cubic: t = s - a/3 gives s³ + p*s + q = 0.
	p := b - a*a/3
	q := c - a*b/3 + 2*a*a*a/27

	discriminant := q*q/4 + p*p*p/27
	var s float64
	if discriminant > 0 {
		// One real root (Cardano branch).
		sqrtD := math.Sqrt(discriminant)
		s = math.Cbrt(-q/2+sqrtD) + math.Cbrt(-q/2-sqrtD)
	} else if p == 0 {
		// Triple root.
		s = math.Cbrt(-q)
	} else {
		// Three real roots (trigonometric branch); take the largest.
		r := math.Sqrt(-p / 3)
		phi := math.Acos(Clamp(3*q/(2*p*r), -1, 1))
		s = 2 * r * math.Cos(phi/3)
	}
	return s - a/3
}

// SolveQuartic returns the real roots of a*t⁴ + b*t³ + c*t² + d*t + e = 0
// in ascending order, via the depressed quartic and its resolvent cubic.
// Degenerate leading coefficients fall back to the lower-order solvers.
func SolveQuartic(a, b, c, d, e float64) []float64 {
	if a == 0 {
		if b == 0 {
			if t0, t1, ok := SolveQuadratic(c, d, e); ok {
				if t0 == t1 {
					return []float64{t0}
				}
				return []float64{t0, t1}
			}
			return nil
		}
		// Cubic b*t³ + c*t² + d*t + e: take the guaranteed real root,
		// then deflate to a quadratic for the remaining two.
		A := c / b
		B := d / b
		t := SolveCubic(A, B, e/b)
		roots := []float64{t}
		if y0, y1, ok := SolveQuadratic(1, A+t, B+t*(A+t)); ok {
			roots = append(roots, y0, y1)
		}
		sort.Float64s(roots)
		return roots
	}

	// Normalize to a monic quartic t⁴ + B*t³ + C*t² + D*t + E.
	B := b / a
	C := c / a
	D := d / a
	E := e / a

	// Depress: t = y - B/4 gives y⁴ + p*y² + q*y + r = 0.
	p := C - 3*B*B/8
	q := D - B*C/2 + B*B*B/8
	r := E - B*D/4 + B*B*C/16 - 3*B*B*B*B/256

	shift := -B / 4
	var roots []float64

	if math.Abs(q) < 1e-12 {
		// Biquadratic: y⁴ + p*y² + r = 0.
		z0, z1, ok := SolveQuadratic(1, p, r)
		if !ok {
			return nil
		}
		for _, z := range []float64{z0, z1} {
			if z < 0 {
				continue
			}
			y := math.Sqrt(z)
			roots = append(roots, y+shift, -y+shift)
		}
	} else {
		// Resolvent cubic in z = m²: z³ + 2p*z² + (p²-4r)*z - q² = 0.
		z := SolveCubic(2*p, p*p-4*r, -q*q)
		if z <= 0 {
			return nil
		}
		m := math.Sqrt(z)

		// Factor into (y² + m*y + s0)(y² - m*y + s1).
		s0 := (p + z - q/m) / 2
		s1 := (p + z + q/m) / 2

		if y0, y1, ok := SolveQuadratic(1, m, s0); ok {
			roots = append(roots, y0+shift, y1+shift)
		}
		if y0, y1, ok := SolveQuadratic(1, -m, s1); ok {
			roots = append(roots, y0+shift, y1+shift)
		}
	}

	if len(roots) == 0 {
		return nil
	}
	sort.Float64s(roots)
	return roots
}
