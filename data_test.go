package gaussmi_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	gaussmi "github.com/XuDongting/mice-workshop"
)

func TestInitDataMatrix_Patterns(t *testing.T) {
	nan := math.NaN()
	d, err := gaussmi.InitDataMatrix(
		[]string{"age", "bmi", "chl"},
		[][]float64{
			{30, 22.5, 190},
			{41, nan, 210},
			{nan, nan, nan},
			{55, nan, 180},
			{29, 24.0, 195},
		},
	)
	require.NoError(t, err)
	require.Equal(t, 5, d.NRows)
	require.Equal(t, 3, d.NCols)
	require.Equal(t, 5, d.NMissing())

	// Patterns appear in row-scan order: fully observed, {bmi} missing,
	// fully missing.
	require.Len(t, d.Patterns, 3)
	require.Equal(t, []int{0, 4}, d.Patterns[0].Rows)
	require.Empty(t, d.Patterns[0].Mis)
	require.Equal(t, []int{1, 3}, d.Patterns[1].Rows)
	require.Equal(t, []int{1}, d.Patterns[1].Mis)
	require.Equal(t, []int{0, 2}, d.Patterns[1].Obs)
	require.Equal(t, []int{2}, d.Patterns[2].Rows)
	require.Empty(t, d.Patterns[2].Obs)

	require.Equal(t, []int{0, 1, 3, 4}, d.EstimationRows())

	j, ok := d.ColumnIndex("bmi")
	require.True(t, ok)
	require.Equal(t, 1, j)
	_, ok = d.ColumnIndex("weight")
	require.False(t, ok)

	require.True(t, d.IsMissing(1, 1))
	require.False(t, d.IsMissing(1, 0))
}

func TestInitDataMatrix_Errors(t *testing.T) {
	tests := []struct {
		name  string
		cols  []string
		rows  [][]float64
		sentl error
	}{
		{"no columns", nil, [][]float64{{1}}, gaussmi.ErrEmptyRow},
		{"empty row", []string{"a"}, [][]float64{{1}, {}}, gaussmi.ErrEmptyRow},
		{"ragged row", []string{"a", "b"}, [][]float64{{1, 2}, {3}}, gaussmi.ErrInvalidDimension},
		{"duplicate column", []string{"a", "a"}, [][]float64{{1, 2}}, gaussmi.ErrInvalidDimension},
		{"no rows", []string{"a"}, nil, gaussmi.ErrInvalidDimension},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, err := gaussmi.InitDataMatrix(tc.cols, tc.rows)
			require.Nil(t, d)
			require.ErrorIs(t, err, tc.sentl)
		})
	}
}
