package search

import "errors"

var (
	// ErrCorpusUnavailable indicates the document corpus could not be fetched.
	ErrCorpusUnavailable = errors.New("document corpus unavailable")

	// ErrAllStrategiesFailed indicates every enabled strategy failed.
	ErrAllStrategiesFailed = errors.New("all search strategies failed")
)
