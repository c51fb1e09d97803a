package preprocess

import "errors"

var (
	// ErrEmptyQuery indicates the query was empty after trimming.
	ErrEmptyQuery = errors.New("query is empty")
)
