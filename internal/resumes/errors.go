package resumes

import "errors"

var (
	// ErrVersionConflict indicates another writer claimed the same
	// (user_id, version) pair first.
	ErrVersionConflict = errors.New("resume version conflict")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")
)
