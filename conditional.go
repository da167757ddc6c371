package gaussmi

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// condTol is the largest acceptable 2-norm condition number for the
// observed-block covariance during row-wise conditioning. Beyond it the block
// is treated as singular and the sweep fails with ErrSingularConditional.
const condTol = 1e12

// patternCond caches the per-pattern pieces of the conditional distribution:
// the observed-block factorization, the cross block, and the conditional
// covariance. Only the conditional mean depends on the row values, so one
// patternCond serves every row sharing the pattern.
type patternCond struct {
	pat   *MissPattern
	chol  mat.Cholesky
	sigMO *mat.Dense // len(Mis) × len(Obs) cross block
	ccov  *mat.SymDense
}

func newPatternCond(cov *mat.SymDense, pat *MissPattern) (*patternCond, error) {
	no := len(pat.Obs)
	nm := len(pat.Mis)
	sigOO := mat.NewSymDense(no, nil)
	for a, i := range pat.Obs {
		for b := a; b < no; b++ {
			sigOO.SetSym(a, b, cov.At(i, pat.Obs[b]))
		}
	}
	pc := &patternCond{pat: pat}
	if ok := pc.chol.Factorize(sigOO); !ok {
		return nil, fmt.Errorf("observed block for columns %v: %w", pat.Obs, ErrSingularConditional)
	}
	if c := pc.chol.Cond(); c > condTol {
		return nil, fmt.Errorf("observed block condition number %.3g for columns %v: %w", c, pat.Obs, ErrSingularConditional)
	}
	pc.sigMO = mat.NewDense(nm, no, nil)
	for a, i := range pat.Mis {
		for b, j := range pat.Obs {
			pc.sigMO.Set(a, b, cov.At(i, j))
		}
	}
	sol := mat.NewDense(no, nm, nil)
	if err := pc.chol.SolveTo(sol, pc.sigMO.T()); err != nil {
		return nil, fmt.Errorf("solving observed block for columns %v: %w", pat.Obs, ErrSingularConditional)
	}
	raw := mat.NewDense(nm, nm, nil)
	raw.Mul(pc.sigMO, sol)
	// Schur complement, symmetrized against round-off.
	pc.ccov = mat.NewSymDense(nm, nil)
	for a := 0; a < nm; a++ {
		for b := a; b < nm; b++ {
			v := cov.At(pat.Mis[a], pat.Mis[b]) - 0.5*(raw.At(a, b)+raw.At(b, a))
			pc.ccov.SetSym(a, b, v)
		}
	}
	return pc, nil
}

// condMean computes mu_m + Sig_mo Sig_oo^-1 (x_o - mu_o) for one row.
func (pc *patternCond) condMean(mean []float64, row []float64) ([]float64, error) {
	no := len(pc.pat.Obs)
	dev := mat.NewVecDense(no, nil)
	for b, j := range pc.pat.Obs {
		dev.SetVec(b, row[j]-mean[j])
	}
	alpha := mat.NewVecDense(no, nil)
	if err := pc.chol.SolveVecTo(alpha, dev); err != nil {
		return nil, fmt.Errorf("solving observed block for columns %v: %w", pc.pat.Obs, ErrSingularConditional)
	}
	nm := len(pc.pat.Mis)
	adj := mat.NewVecDense(nm, nil)
	adj.MulVec(pc.sigMO, alpha)
	out := make([]float64, nm)
	for a, i := range pc.pat.Mis {
		out[a] = mean[i] + adj.AtVec(a)
	}
	return out, nil
}

// ConditionalNormal will compute the conditional distribution of the mis
// entries of a multivariate normal N(mean, cov) given the obs entries of row:
// conditional mean mu_m + Sig_mo Sig_oo^-1 (x_o - mu_o) and conditional
// covariance Sig_mm - Sig_mo Sig_oo^-1 Sig_om. With no observed entries the
// marginal over mis comes back unchanged.
func ConditionalNormal(mean []float64, cov *mat.SymDense, obs, mis []int, row []float64) ([]float64, *mat.SymDense, error) {
	p := len(mean)
	if cov == nil || cov.SymmetricDim() != p || len(row) != p {
		return nil, nil, fmt.Errorf("conditioning inputs disagree on dimension %d: %w", p, ErrInvalidDimension)
	}
	if len(mis) == 0 {
		return nil, nil, fmt.Errorf("no entries to condition on: %w", ErrInvalidDimension)
	}
	for _, j := range append(append([]int(nil), obs...), mis...) {
		if j < 0 || j >= p {
			return nil, nil, fmt.Errorf("column index %d out of range: %w", j, ErrInvalidDimension)
		}
	}
	if len(obs) == 0 {
		cmean := make([]float64, len(mis))
		ccov := mat.NewSymDense(len(mis), nil)
		for a, i := range mis {
			cmean[a] = mean[i]
			for b := a; b < len(mis); b++ {
				ccov.SetSym(a, b, cov.At(i, mis[b]))
			}
		}
		return cmean, ccov, nil
	}
	pat := &MissPattern{Obs: obs, Mis: mis}
	pc, err := newPatternCond(cov, pat)
	if err != nil {
		return nil, nil, err
	}
	cmean, err := pc.condMean(mean, row)
	if err != nil {
		return nil, nil, err
	}
	ccov := mat.NewSymDense(len(mis), nil)
	ccov.CopySym(pc.ccov)
	return cmean, ccov, nil
}
