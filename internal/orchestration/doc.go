// Package orchestration coordinates the evaluation of a list of terms: it
// narrows raw input to the configured integer width, sums the resulting
// fractions concurrently and packages the outcome for presentation. It
// decouples business logic from presentation via the ResultPresenter
// interface.
package orchestration
