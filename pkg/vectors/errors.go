package vectors

import "errors"

var (
	ErrInvalidSuite   = errors.New("invalid vector suite")
	ErrFailedToLoad   = errors.New("failed to load vector suite")
	ErrUnexpectedCode = errors.New("generated code does not match expected")
	ErrNotVerified    = errors.New("expected code was not accepted by Verify")
)
