package authz

import "errors"

// Diagnostic taxonomy. These never escape through the boolean Can* API: every
// one of them collapses to a deny. They exist so that loaders, handlers and
// debug logging can tell the conditions apart.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidActor    = errors.New("invalid actor")
	ErrUnknownRole     = errors.New("unknown role")
	ErrUnknownResource = errors.New("unknown resource")
	ErrAmbiguousScope  = errors.New("ambiguous target scope")
)
