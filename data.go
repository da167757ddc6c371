package gaussmi

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// DataMatrix stores a partially observed N×P data table. Missing cells are
// marked NaN on input and tracked in an explicit mask; column names are
// resolved once at construction into integer positions, and all downstream
// conditioning logic works on index sets.
type DataMatrix struct {
	Names    []string
	Vals     *mat.Dense
	Miss     [][]bool
	NRows    int
	NCols    int
	Patterns []*MissPattern

	nameIdx map[string]int
}

// MissPattern groups the rows that share one missingness pattern, so the
// observed-block factorization is computed once per pattern per sweep.
type MissPattern struct {
	Obs  []int // observed column indices, ascending
	Mis  []int // missing column indices, ascending
	Rows []int // row indices carrying this pattern, ascending
}

// InitDataMatrix will build a DataMatrix from ordered column names and row
// slices. NaN cells are treated as missing. Every row must have exactly
// len(names) entries.
func InitDataMatrix(names []string, rows [][]float64) (*DataMatrix, error) {
	p := len(names)
	if p == 0 {
		return nil, fmt.Errorf("no columns: %w", ErrEmptyRow)
	}
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("no rows: %w", ErrInvalidDimension)
	}
	d := new(DataMatrix)
	d.Names = append([]string(nil), names...)
	d.NRows = n
	d.NCols = p
	d.nameIdx = make(map[string]int, p)
	for j, nm := range names {
		if _, ok := d.nameIdx[nm]; ok {
			return nil, fmt.Errorf("duplicate column %q: %w", nm, ErrInvalidDimension)
		}
		d.nameIdx[nm] = j
	}
	d.Vals = mat.NewDense(n, p, nil)
	d.Miss = make([][]bool, n)
	for i, row := range rows {
		if len(row) == 0 {
			return nil, fmt.Errorf("row %d: %w", i, ErrEmptyRow)
		}
		if len(row) != p {
			return nil, fmt.Errorf("row %d has %d columns, want %d: %w", i, len(row), p, ErrInvalidDimension)
		}
		d.Miss[i] = make([]bool, p)
		for j, v := range row {
			if math.IsNaN(v) {
				d.Miss[i][j] = true
			}
			d.Vals.Set(i, j, v)
		}
	}
	d.Patterns = derivePatterns(d.Miss, p)
	return d, nil
}

// ColumnIndex will resolve a column name to its integer position.
func (d *DataMatrix) ColumnIndex(name string) (int, bool) {
	j, ok := d.nameIdx[name]
	return j, ok
}

// IsMissing reports whether cell (i, j) was missing in the input.
func (d *DataMatrix) IsMissing(i, j int) bool {
	return d.Miss[i][j]
}

// NMissing will count the missing cells in the input mask.
func (d *DataMatrix) NMissing() int {
	count := 0
	for i := range d.Miss {
		for j := range d.Miss[i] {
			if d.Miss[i][j] {
				count++
			}
		}
	}
	return count
}

// EstimationRows returns the rows with at least one observed cell; rows that
// are entirely missing contribute nothing to parameter estimation.
func (d *DataMatrix) EstimationRows() []int {
	var rows []int
	for _, pat := range d.Patterns {
		if len(pat.Obs) == 0 {
			continue
		}
		rows = append(rows, pat.Rows...)
	}
	sort.Ints(rows)
	return rows
}

// derivePatterns partitions row indices by their set of missing columns.
// Pattern order follows first appearance in the row scan, so sweeps visit
// patterns deterministically.
func derivePatterns(miss [][]bool, p int) []*MissPattern {
	var pats []*MissPattern
	byKey := make(map[string]*MissPattern)
	for i, row := range miss {
		var sb strings.Builder
		var mis []int
		for j := 0; j < p; j++ {
			if row[j] {
				mis = append(mis, j)
				sb.WriteString(strconv.Itoa(j))
				sb.WriteByte(',')
			}
		}
		key := sb.String()
		if pat, ok := byKey[key]; ok {
			pat.Rows = append(pat.Rows, i)
			continue
		}
		var obs []int
		for j := 0; j < p; j++ {
			if !row[j] {
				obs = append(obs, j)
			}
		}
		pat := &MissPattern{Obs: obs, Mis: mis, Rows: []int{i}}
		byKey[key] = pat
		pats = append(pats, pat)
	}
	return pats
}

// observedColMeans will average the observed cells of each column. A column
// with no observed cells falls back to the supplied default for its index.
func (d *DataMatrix) observedColMeans(fallback []float64) []float64 {
	means := make([]float64, d.NCols)
	for j := 0; j < d.NCols; j++ {
		sum := 0.
		count := 0.
		for i := 0; i < d.NRows; i++ {
			if d.Miss[i][j] {
				continue
			}
			sum += d.Vals.At(i, j)
			count++
		}
		if count == 0 {
			means[j] = fallback[j]
			continue
		}
		means[j] = sum / count
	}
	return means
}
