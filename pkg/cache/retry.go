package cache

import (
	"context"
	"time"

	"github.com/nekodev/skillring/pkg/errors"
)

const retryAttempts = 3

// retryDelay is the first backoff step; it doubles after each attempt.
var retryDelay = time.Second

// retry runs fn until it succeeds, fails with a non-temporary error, or
// has been tried retryAttempts times. Temporary means a NETWORK_ERROR or
// TIMEOUT code.
func retry(ctx context.Context, fn func() error) error {
	delay := retryDelay
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil || !errors.GetCode(err).Temporary() || attempt == retryAttempts {
			return err
		}

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
	}
}
