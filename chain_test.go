package gaussmi_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	gaussmi "github.com/XuDongting/mice-workshop"
)

func chainImputer(t *testing.T, seed uint64) *gaussmi.GaussianImputer {
	t.Helper()
	d, err := gaussmi.InitDataMatrix([]string{"x", "y"}, twoColRows(3, 1))
	require.NoError(t, err)
	pr, err := gaussmi.InitNIWPrior([]float64{0, 0}, 1, eyeSym(2), 4)
	require.NoError(t, err)
	im, err := gaussmi.InitImputer(d, pr, rand.NewSource(seed))
	require.NoError(t, err)
	return im
}

func TestChainRun_BurnAndThin(t *testing.T) {
	im := chainImputer(t, 20)
	calls := 0
	c := &gaussmi.Chain{Gen: 10, Burn: 4, Thin: 2}
	draws, err := c.Run(im, func(*gaussmi.GaussianImputer) float64 {
		calls++
		return float64(calls)
	})
	require.NoError(t, err)
	// Sweeps 4, 6 and 8 are retained.
	require.Equal(t, []float64{1, 2, 3}, draws)
}

func TestChainRun_DefaultThin(t *testing.T) {
	im := chainImputer(t, 21)
	c := &gaussmi.Chain{Gen: 6, Burn: 2}
	draws, err := c.Run(im, func(im *gaussmi.GaussianImputer) float64 {
		v, err := im.Correlation(0, 1)
		require.NoError(t, err)
		return v
	})
	require.NoError(t, err)
	require.Len(t, draws, 4)
	for _, v := range draws {
		require.False(t, math.IsNaN(v))
	}
}

func TestChainRun_ScheduleErrors(t *testing.T) {
	im := chainImputer(t, 22)
	statFn := func(*gaussmi.GaussianImputer) float64 { return 0 }

	for _, c := range []*gaussmi.Chain{
		{Gen: 0},
		{Gen: 5, Burn: -1},
		{Gen: 5, Burn: 5},
		{Gen: 5, Thin: -2},
	} {
		_, err := c.Run(im, statFn)
		require.ErrorIs(t, err, gaussmi.ErrInvalidDimension)
	}

	c := &gaussmi.Chain{Gen: 5}
	_, err := c.Run(nil, statFn)
	require.ErrorIs(t, err, gaussmi.ErrInvalidDimension)
	_, err = c.Run(im, nil)
	require.ErrorIs(t, err, gaussmi.ErrInvalidDimension)
}

func TestSummarizeDraws(t *testing.T) {
	mean, sd := gaussmi.SummarizeDraws([]float64{2, 4, 6})
	require.InDelta(t, 4.0, mean, 1e-12)
	require.InDelta(t, 2.0, sd, 1e-12)

	mean, sd = gaussmi.SummarizeDraws([]float64{5})
	require.Equal(t, 5.0, mean)
	require.True(t, math.IsNaN(sd))
}
