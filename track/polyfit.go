package track

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Fit computes least-squares polynomial coefficients through the given
// points via QR decomposition of the Vandermonde design matrix. Coefficient
// k multiplies x^k. degree must satisfy 1 <= degree <= len(points)-1; fewer
// points than coefficients, or a degenerate x-spread, is an error.
func Fit(points []Waypoint, degree int) ([]float64, error) {
	n := len(points)
	if degree < 1 {
		return nil, fmt.Errorf("fit: degree %d below 1", degree)
	}
	if n < degree+1 {
		return nil, fmt.Errorf("fit: %d points cannot support degree %d", n, degree)
	}

	a := mat.NewDense(n, degree+1, nil)
	b := mat.NewVecDense(n, nil)
	for i, p := range points {
		v := 1.0
		for j := 0; j <= degree; j++ {
			a.Set(i, j, v)
			v *= p.X
		}
		b.SetVec(i, p.Y)
	}

	var qr mat.QR
	qr.Factorize(a)

	coeffs := mat.NewVecDense(degree+1, nil)
	if err := qr.SolveVecTo(coeffs, false, b); err != nil {
		return nil, fmt.Errorf("fit: degenerate points: %w", err)
	}
	return coeffs.RawVector().Data, nil
}

// Eval evaluates a fitted polynomial at x using Horner's method. Matches the
// Fit convention: coefficient k multiplies x^k, so Eval(c, 0) == c[0].
func Eval(coeffs []float64, x float64) float64 {
	y := 0.0
	for i := len(coeffs) - 1; i >= 0; i-- {
		y = y*x + coeffs[i]
	}
	return y
}
