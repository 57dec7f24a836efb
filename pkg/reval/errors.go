package reval

import "errors"

// Sentinel errors for container misuse.
var (
	// ErrNoValue is returned by the slice helpers when the container holds
	// no collection to mutate.
	ErrNoValue = errors.New("reval: container holds no value")
)
