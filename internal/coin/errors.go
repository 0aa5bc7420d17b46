package coin

import "errors"

// Error taxonomy for the prediction pipeline. Callers match with
// errors.Is; the HTTP layer maps each to a status code. The pipeline
// performs no internal retries — retry policy belongs to the caller.
var (
	// ErrValidation marks a malformed address or missing required field.
	ErrValidation = errors.New("validation failed")

	// ErrCoinNotFound means the provider has no market data for the address.
	ErrCoinNotFound = errors.New("coin not found")

	// ErrModelNotReady means no trained model has been published yet.
	// Retryable once training completes.
	ErrModelNotReady = errors.New("model not ready")

	// ErrUpstreamTimeout marks a provider fetch that exceeded its
	// deadline. Retryable with backoff by the caller.
	ErrUpstreamTimeout = errors.New("upstream timeout")

	// ErrUpstream marks any other provider failure.
	ErrUpstream = errors.New("upstream error")

	// ErrInsufficientData means training was requested with no samples.
	ErrInsufficientData = errors.New("insufficient training data")
)

// ErrorKind returns the taxonomy tag for an error, for metrics labels
// and wire responses. Unrecognized errors report as "internal".
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrCoinNotFound):
		return "coin_not_found"
	case errors.Is(err, ErrModelNotReady):
		return "model_not_ready"
	case errors.Is(err, ErrUpstreamTimeout):
		return "upstream_timeout"
	case errors.Is(err, ErrUpstream):
		return "upstream_error"
	case errors.Is(err, ErrInsufficientData):
		return "insufficient_data"
	default:
		return "internal"
	}
}
