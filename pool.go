package gaussmi

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// PooledResult holds the output of Rubin's combining rules across m
// completed-data analyses of the same scalar estimand.
type PooledResult struct {
	Estimate        float64 // pooled point estimate, the mean of est
	SE              float64 // sqrt(Total)
	Within          float64 // mean squared standard error
	Between         float64 // sample variance of est
	Total           float64 // Within + (1+1/m)*Between
	DF              float64 // (m-1)(1 + Within/((1+1/m)Between))^2
	RelIncrease     float64 // relative variance increase due to missingness
	FracMissingInfo float64
}

// PoolEstimates will combine per-imputation point estimates and their
// standard errors into one pooled estimate and variance accounting for
// between- and within-imputation spread. Standard errors must be positive.
func PoolEstimates(est, se []float64) (*PooledResult, error) {
	m := len(est)
	if m < 2 || len(se) != m {
		return nil, fmt.Errorf("need matched estimates and standard errors for at least 2 imputations: %w", ErrInvalidDimension)
	}
	for i, s := range se {
		if !(s > 0) {
			return nil, fmt.Errorf("standard error %v at index %d, must be positive: %w", s, i, ErrInvalidDimension)
		}
	}
	mf := float64(m)
	res := new(PooledResult)
	res.Estimate = stat.Mean(est, nil)
	res.Within = floats.Dot(se, se) / mf
	res.Between = stat.Variance(est, nil)
	if res.Between == 0 {
		// All analyses agree: no between-imputation spread, classical df.
		res.Total = res.Within
		res.SE = math.Sqrt(res.Within)
		res.DF = math.Inf(1)
		return res, nil
	}
	r := (1 + 1/mf) * res.Between / res.Within
	res.Total = res.Within + (1+1/mf)*res.Between
	res.SE = math.Sqrt(res.Total)
	res.RelIncrease = r
	res.DF = (mf - 1) * (1 + 1/r) * (1 + 1/r)
	res.FracMissingInfo = (r + 2/(res.DF+3)) / (r + 1)
	return res, nil
}
