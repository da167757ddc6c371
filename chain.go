package gaussmi

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Chain drives a GaussianImputer through repeated sweeps and collects a
// derived scalar statistic per retained draw. Gen counts total sweeps, Burn
// the leading sweeps to discard, Thin the keep-every stride (0 means keep
// every post-burn sweep).
type Chain struct {
	Gen  int
	Burn int
	Thin int
}

// Run will advance the imputer Gen sweeps and return the statistic evaluated
// on every retained draw.
func (c *Chain) Run(im *GaussianImputer, statFn func(*GaussianImputer) float64) ([]float64, error) {
	if im == nil || statFn == nil {
		return nil, fmt.Errorf("nil imputer or statistic: %w", ErrInvalidDimension)
	}
	if c.Gen <= 0 || c.Burn < 0 || c.Burn >= c.Gen || c.Thin < 0 {
		return nil, fmt.Errorf("chain schedule gen=%d burn=%d thin=%d: %w", c.Gen, c.Burn, c.Thin, ErrInvalidDimension)
	}
	thin := c.Thin
	if thin == 0 {
		thin = 1
	}
	var draws []float64
	for gen := 0; gen < c.Gen; gen++ {
		if err := im.Update(); err != nil {
			return nil, err
		}
		if gen < c.Burn || (gen-c.Burn)%thin != 0 {
			continue
		}
		draws = append(draws, statFn(im))
	}
	return draws, nil
}

// SummarizeDraws returns the mean and standard deviation of a draw sequence.
// Fewer than two draws yield NaN moments.
func SummarizeDraws(draws []float64) (mean, sd float64) {
	return stat.Mean(draws, nil), stat.StdDev(draws, nil)
}
