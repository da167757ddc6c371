package gaussmi

import "errors"

// Sentinel errors returned by constructors and Update. Callers match them
// with errors.Is; wrapped returns carry context via fmt.Errorf("...: %w", ...).
var (
	// ErrInvalidDimension indicates a shape mismatch between the data matrix
	// and the prior, or otherwise inconsistent input sizes.
	ErrInvalidDimension = errors.New("gaussmi: invalid dimension")

	// ErrNonPositiveDefinite indicates a covariance prior that does not admit
	// a Cholesky factorization.
	ErrNonPositiveDefinite = errors.New("gaussmi: matrix is not positive definite")

	// ErrSingularConditional indicates a degenerate observed-block covariance
	// encountered while conditioning during an impute sweep.
	ErrSingularConditional = errors.New("gaussmi: singular conditional covariance")

	// ErrEmptyRow indicates a data row with zero columns.
	ErrEmptyRow = errors.New("gaussmi: empty row")
)
