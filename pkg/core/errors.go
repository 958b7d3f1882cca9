package core

import "errors"

// Common errors.
var (
	ErrNoFixtures       = errors.New("no fixture files matched")
	ErrWatchUnsupported = errors.New("fixture source does not support watching")
	ErrInvalidFixture   = errors.New("invalid fixture record")
)
