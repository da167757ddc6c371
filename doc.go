// Package gaussmi implements Bayesian multiple imputation for partially
// observed multivariate-Gaussian data.
//
// A GaussianImputer holds an N×P data matrix with missing cells and a
// conjugate Normal-Inverse-Wishart prior. Each call to Update performs one
// Gibbs sweep: missing cells are redrawn from their conditional Gaussian
// distribution given the current mean and covariance, then a new covariance
// and mean are drawn from the conjugate posterior given the completed data.
// Successive sweeps form a Markov chain whose stationary distribution is the
// joint posterior over (mean, covariance, missing values); burn-in handling
// is left to the caller (see Chain).
//
// All randomness flows from a caller-supplied rand.Source, so runs are
// reproducible under a fixed seed.
package gaussmi
