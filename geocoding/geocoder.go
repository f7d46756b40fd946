package geocoding

import (
	"context"
	"errors"
	"fmt"

	"bitbucket.org/kleinnic74/geodist/domain/gps"
)

// ErrUnresolved is matched by every error returned from a Resolver, whatever
// went wrong. Callers that need the cause use errors.As with *LookupError.
var ErrUnresolved = errors.New("city not found or API error")

// Resolver turns a free-form place name into coordinates. The first match of
// the provider wins.
type Resolver interface {
	Geocode(ctx context.Context, name string) (gps.Coordinates, error)
}

type Reason string

const (
	ReasonTransport Reason = "transport"
	ReasonStatus    Reason = "status"
	ReasonMalformed Reason = "malformed"
	ReasonNoMatch   Reason = "no-match"
)

type LookupError struct {
	Query  string
	Reason Reason
	Err    error
}

func NewLookupError(query string, reason Reason, err error) *LookupError {
	return &LookupError{Query: query, Reason: reason, Err: err}
}

func (e *LookupError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("geocode %q: %s", e.Query, e.Reason)
	}
	return fmt.Sprintf("geocode %q: %s: %s", e.Query, e.Reason, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

func (e *LookupError) Is(target error) bool {
	return target == ErrUnresolved
}

// ReasonOf returns the failure reason of err, or the empty string when err
// did not come from a lookup.
func ReasonOf(err error) Reason {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Reason
	}
	return ""
}
