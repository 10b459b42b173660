package termstructure

import "errors"

var (
	// ErrOutOfRange is returned when a query date or time falls before the
	// reference date or beyond the curve's maximum without extrapolation.
	ErrOutOfRange = errors.New("date/time out of range")
	// ErrInvalidQuote is returned when a jump's underlying quote has no
	// valid value at query time.
	ErrInvalidQuote = errors.New("invalid jump quote")
	// ErrDomain is returned when an input makes a rate formula undefined:
	// non-positive compound factor, non-positive elapsed time, non-positive
	// jump multiplier, or reversed date order.
	ErrDomain = errors.New("domain error")
	// ErrUnresolvedReference is returned when the reference date is accessed
	// before being set.
	ErrUnresolvedReference = errors.New("reference date not set")
)
