package providers

import (
	"errors"
	"fmt"
)

// ErrProviderUnavailable indicates a provider wrapper was constructed
// without an inner provider.
var ErrProviderUnavailable = errors.New("provider unavailable")

// InvalidPayloadError indicates an upstream payload was structurally
// unusable (nil or not an object). Callers should surface it to the user;
// no partial result accompanies it.
type InvalidPayloadError struct {
	Provider string
	Reason   string
}

func (e *InvalidPayloadError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "invalid payload"
	}
	if e.Provider != "" {
		return fmt.Sprintf("%s: %s", e.Provider, reason)
	}
	return reason
}

// AsInvalidPayloadError attempts to unwrap an error into an InvalidPayloadError.
func AsInvalidPayloadError(err error) (*InvalidPayloadError, bool) {
	var ipErr *InvalidPayloadError
	if errors.As(err, &ipErr) {
		return ipErr, true
	}
	return nil, false
}
