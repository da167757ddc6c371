package gaussmi

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// NIWPrior holds the conjugate Normal-Inverse-Wishart prior on the Gaussian
// mean and covariance: mean ~ N(Mu0, Sigma/Kappa0), Sigma ~ InvWishart(Nu0, S0).
type NIWPrior struct {
	Mu0    []float64     // prior location of the mean
	Kappa0 float64       // strength of belief in Mu0
	S0     *mat.SymDense // scale matrix of the covariance prior
	Nu0    float64       // degrees of freedom, belief in S0
}

// InitNIWPrior will validate and assemble the prior. mu0 must have length p,
// s0 must be p×p and positive definite, kappa0 must be positive and nu0 at
// least p.
func InitNIWPrior(mu0 []float64, kappa0 float64, s0 *mat.SymDense, nu0 float64) (*NIWPrior, error) {
	p := len(mu0)
	if p == 0 {
		return nil, fmt.Errorf("prior mean has length 0: %w", ErrInvalidDimension)
	}
	if s0 == nil || s0.SymmetricDim() != p {
		return nil, fmt.Errorf("covariance prior shape disagrees with mean prior length %d: %w", p, ErrInvalidDimension)
	}
	if kappa0 <= 0 {
		return nil, fmt.Errorf("kappa0 = %v, must be positive: %w", kappa0, ErrInvalidDimension)
	}
	if nu0 < float64(p) {
		return nil, fmt.Errorf("nu0 = %v, must be at least %d: %w", nu0, p, ErrInvalidDimension)
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(s0); !ok {
		return nil, fmt.Errorf("covariance prior: %w", ErrNonPositiveDefinite)
	}
	pr := new(NIWPrior)
	pr.Mu0 = append([]float64(nil), mu0...)
	pr.Kappa0 = kappa0
	pr.S0 = mat.NewSymDense(p, nil)
	pr.S0.CopySym(s0)
	pr.Nu0 = nu0
	return pr, nil
}

// Dim returns the dimensionality p of the prior.
func (pr *NIWPrior) Dim() int {
	return len(pr.Mu0)
}

// Posterior will compute the conjugate-updated parameters given n completed
// observations with sample mean xbar and centered scatter matrix S:
//
//	kappaN = kappa0 + n
//	nuN    = nu0 + n
//	muN    = (kappa0*mu0 + n*xbar) / kappaN
//	Sn     = S0 + S + (kappa0*n/kappaN) (xbar-mu0)(xbar-mu0)^T
//
// With n = 0 the prior parameters come back unchanged, so fully missing data
// is imputed from the prior predictive.
func (pr *NIWPrior) Posterior(n int, xbar []float64, scatter *mat.SymDense) (kappaN, nuN float64, muN []float64, sN *mat.SymDense) {
	p := pr.Dim()
	sN = mat.NewSymDense(p, nil)
	sN.CopySym(pr.S0)
	if n == 0 {
		return pr.Kappa0, pr.Nu0, append([]float64(nil), pr.Mu0...), sN
	}
	nf := float64(n)
	kappaN = pr.Kappa0 + nf
	nuN = pr.Nu0 + nf
	muN = make([]float64, p)
	dev := mat.NewVecDense(p, nil)
	for j := 0; j < p; j++ {
		muN[j] = (pr.Kappa0*pr.Mu0[j] + nf*xbar[j]) / kappaN
		dev.SetVec(j, xbar[j]-pr.Mu0[j])
	}
	sN.AddSym(sN, scatter)
	out := mat.NewSymDense(p, nil)
	out.SymRankOne(sN, pr.Kappa0*nf/kappaN, dev)
	return kappaN, nuN, muN, out
}
