package alertsse

import "errors"

// ErrMalformedRequest is returned when the request body cannot be decoded.
var ErrMalformedRequest = errors.New("malformed alert request")
