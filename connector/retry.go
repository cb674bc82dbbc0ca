package connector

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// retryConnect calls connectFn until it succeeds, MaxRetries attempts are
// spent or ctx is done. The delay grows by Backoff (default 2) up to MaxDelay.
func retryConnect(ctx context.Context, opts *RetryConfig, log *logrus.Entry, connectFn func(context.Context) error) error {
	delay := opts.BaseDelay
	if delay == 0 {
		delay = time.Second
	}
	factor := opts.Backoff
	if factor < 1 {
		factor = 2
	}

	var err error
	for attempt := 1; attempt <= opts.MaxRetries; attempt++ {
		if err = connectFn(ctx); err == nil {
			return nil
		}
		if attempt == opts.MaxRetries {
			break
		}
		log.WithError(err).WithFields(logrus.Fields{
			"attempt": attempt,
			"delay":   delay.String(),
		}).Warn("connect failed, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay = time.Duration(float64(delay) * factor)
			if opts.MaxDelay > 0 && delay > opts.MaxDelay {
				delay = opts.MaxDelay
			}
		}
	}
	return err
}
