package arhttp

import (
	"errors"

	"github.com/arloliu/arhttp/internal/types"
)

// FieldError represents an error that occurred while processing a specific config field.
type FieldError = types.FieldError

// LoadError represents an error that occurred while loading configuration.
type LoadError = types.LoadError

// ValidationError wraps validation errors from the validator package.
type ValidationError = types.ValidationError

// TransportError reports a lookup request that never got an HTTP response.
type TransportError = types.TransportError

// StatusError reports a lookup response with a status other than 200.
type StatusError = types.StatusError

// IsTransportError reports whether err is or wraps a *TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsStatusError reports whether err is or wraps a *StatusError.
func IsStatusError(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}
