package reembed

import "errors"

var (
	// ErrNoDocuments indicates the user has no documents to revert.
	ErrNoDocuments = errors.New("no documents for user")
)
