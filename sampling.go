package gaussmi

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmat"
	"gonum.org/v1/gonum/stat/distmv"
)

// drawInvWishart draws Sigma ~ InvWishart(nu, scale) by sampling a Wishart
// variate with the inverted scale and inverting the result.
func drawInvWishart(scale *mat.SymDense, nu float64, src rand.Source) (*mat.SymDense, error) {
	p := scale.SymmetricDim()
	var chol mat.Cholesky
	if ok := chol.Factorize(scale); !ok {
		return nil, fmt.Errorf("posterior scale matrix: %w", ErrNonPositiveDefinite)
	}
	scaleInv := mat.NewSymDense(p, nil)
	if err := chol.InverseTo(scaleInv); err != nil {
		return nil, fmt.Errorf("inverting posterior scale: %w", ErrNonPositiveDefinite)
	}
	w, ok := distmat.NewWishart(scaleInv, nu, src)
	if !ok {
		return nil, fmt.Errorf("wishart setup, nu = %v: %w", nu, ErrNonPositiveDefinite)
	}
	draw := mat.NewSymDense(p, nil)
	w.RandSymTo(draw)
	var dchol mat.Cholesky
	if ok := dchol.Factorize(draw); !ok {
		return nil, fmt.Errorf("wishart draw: %w", ErrNonPositiveDefinite)
	}
	sigma := mat.NewSymDense(p, nil)
	if err := dchol.InverseTo(sigma); err != nil {
		return nil, fmt.Errorf("inverting wishart draw: %w", ErrNonPositiveDefinite)
	}
	return sigma, nil
}

// drawMVNormal draws one variate from N(mu, sigma).
func drawMVNormal(mu []float64, sigma mat.Symmetric, src rand.Source) ([]float64, error) {
	dist, ok := distmv.NewNormal(mu, sigma, src)
	if !ok {
		return nil, fmt.Errorf("normal setup: %w", ErrNonPositiveDefinite)
	}
	return dist.Rand(nil), nil
}
