package gaussmi

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

// GaussianImputer alternately draws missing cells conditional on the current
// (mean, covariance) and new posterior parameters conditional on the
// completed data. Each Update is one Gibbs sweep; the sequence of sweeps is a
// Markov chain over (mean, covariance, missing values).
type GaussianImputer struct {
	Data  *DataMatrix
	Prior *NIWPrior

	mean    []float64
	cov     *mat.SymDense
	imputed *mat.Dense
	estRows []int
	src     rand.Source
}

// InitImputer will validate shapes, fill missing cells with observed column
// means (prior location where a column has no observed cell), and set the
// starting covariance to S0/(Nu0-P-1), the prior mean of the covariance, when
// Nu0 > P+1, otherwise S0 itself. src must be non-nil; all draws flow from it.
func InitImputer(data *DataMatrix, prior *NIWPrior, src rand.Source) (*GaussianImputer, error) {
	if data == nil || prior == nil {
		return nil, fmt.Errorf("nil data or prior: %w", ErrInvalidDimension)
	}
	if src == nil {
		return nil, fmt.Errorf("nil rand source: %w", ErrInvalidDimension)
	}
	p := data.NCols
	if prior.Dim() != p {
		return nil, fmt.Errorf("prior dimension %d disagrees with %d data columns: %w", prior.Dim(), p, ErrInvalidDimension)
	}
	im := new(GaussianImputer)
	im.Data = data
	im.Prior = prior
	im.src = src
	im.estRows = data.EstimationRows()

	im.mean = data.observedColMeans(prior.Mu0)
	im.imputed = mat.NewDense(data.NRows, p, nil)
	im.imputed.Copy(data.Vals)
	for i := 0; i < data.NRows; i++ {
		for j := 0; j < p; j++ {
			if data.Miss[i][j] {
				im.imputed.Set(i, j, im.mean[j])
			}
		}
	}
	im.cov = mat.NewSymDense(p, nil)
	im.cov.CopySym(prior.S0)
	if denom := prior.Nu0 - float64(p) - 1; denom > 0 {
		im.cov.ScaleSym(1/denom, im.cov)
	}
	return im, nil
}

// Update performs one Gibbs sweep: redraw every missing cell from its
// conditional Gaussian given the current (mean, covariance), then draw a new
// covariance from the Inverse-Wishart conjugate posterior of the completed
// data and a new mean from its conditional Gaussian posterior. After Update
// the imputed matrix has no missing cells and the stored (mean, covariance)
// is one draw from the joint posterior chain.
func (im *GaussianImputer) Update() error {
	if err := im.imputeStep(); err != nil {
		return err
	}
	return im.parameterStep()
}

func (im *GaussianImputer) imputeStep() error {
	for _, pat := range im.Data.Patterns {
		if len(pat.Mis) == 0 {
			continue
		}
		if len(pat.Obs) == 0 {
			// No cells to condition on: draw the whole row from the
			// current marginal.
			dist, ok := distmv.NewNormal(im.mean, im.cov, im.src)
			if !ok {
				return fmt.Errorf("marginal draw: %w", ErrSingularConditional)
			}
			for _, i := range pat.Rows {
				row := dist.Rand(nil)
				im.imputed.SetRow(i, row)
			}
			continue
		}
		pc, err := newPatternCond(im.cov, pat)
		if err != nil {
			return err
		}
		zero := make([]float64, len(pat.Mis))
		dist, ok := distmv.NewNormal(zero, pc.ccov, im.src)
		if !ok {
			return fmt.Errorf("conditional draw for columns %v: %w", pat.Mis, ErrSingularConditional)
		}
		for _, i := range pat.Rows {
			row := im.imputed.RawRowView(i)
			cmean, err := pc.condMean(im.mean, row)
			if err != nil {
				return err
			}
			noise := dist.Rand(nil)
			for a, j := range pat.Mis {
				im.imputed.Set(i, j, cmean[a]+noise[a])
			}
		}
	}
	return nil
}

func (im *GaussianImputer) parameterStep() error {
	p := im.Data.NCols
	n := len(im.estRows)
	var xbar []float64
	var scatter *mat.SymDense
	if n > 0 {
		xbar = make([]float64, p)
		for _, i := range im.estRows {
			for j := 0; j < p; j++ {
				xbar[j] += im.imputed.At(i, j)
			}
		}
		for j := 0; j < p; j++ {
			xbar[j] /= float64(n)
		}
		scatter = mat.NewSymDense(p, nil)
		dev := mat.NewVecDense(p, nil)
		for _, i := range im.estRows {
			for j := 0; j < p; j++ {
				dev.SetVec(j, im.imputed.At(i, j)-xbar[j])
			}
			scatter.SymRankOne(scatter, 1, dev)
		}
	}
	kappaN, nuN, muN, sN := im.Prior.Posterior(n, xbar, scatter)
	cov, err := drawInvWishart(sN, nuN, im.src)
	if err != nil {
		return err
	}
	meanCov := mat.NewSymDense(p, nil)
	meanCov.ScaleSym(1/kappaN, cov)
	mean, err := drawMVNormal(muN, meanCov, im.src)
	if err != nil {
		return err
	}
	im.cov = cov
	im.mean = mean
	return nil
}

// Mean returns a copy of the current posterior mean draw.
func (im *GaussianImputer) Mean() []float64 {
	return append([]float64(nil), im.mean...)
}

// Covariance returns a copy of the current posterior covariance draw.
func (im *GaussianImputer) Covariance() *mat.SymDense {
	out := mat.NewSymDense(im.Data.NCols, nil)
	out.CopySym(im.cov)
	return out
}

// Imputed returns a copy of the completed data matrix as of the most recent
// sweep (the mean-filled start before the first Update).
func (im *GaussianImputer) Imputed() *mat.Dense {
	out := mat.NewDense(im.Data.NRows, im.Data.NCols, nil)
	out.Copy(im.imputed)
	return out
}

// Correlation derives the correlation of columns i and j from the current
// covariance draw.
func (im *GaussianImputer) Correlation(i, j int) (float64, error) {
	p := im.Data.NCols
	if i < 0 || i >= p || j < 0 || j >= p {
		return 0, fmt.Errorf("column index out of range: %w", ErrInvalidDimension)
	}
	vi := im.cov.At(i, i)
	vj := im.cov.At(j, j)
	if vi <= 0 || vj <= 0 {
		return 0, fmt.Errorf("zero variance draw for column %d or %d: %w", i, j, ErrSingularConditional)
	}
	return im.cov.At(i, j) / math.Sqrt(vi*vj), nil
}
