package store

import "errors"

var (
	// ErrRunNotFound indicates no run exists with the requested ID.
	ErrRunNotFound = errors.New("regression run not found")

	// ErrEmptySummary indicates SaveSummary was called with nil.
	ErrEmptySummary = errors.New("empty run summary")
)
