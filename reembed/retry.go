package reembed

import (
	"context"
	"time"
)

const (
	maxRetries     = 3
	initialBackoff = 50 * time.Millisecond
)

// retryWithBackoff retries fn with exponential backoff. Badger write
// transactions can conflict under concurrent revert and vectorize runs;
// a short retry absorbs those.
func retryWithBackoff(ctx context.Context, fn func() error) error {
	backoff := initialBackoff
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return err
}
