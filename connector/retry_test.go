package connector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func TestRetryConnectSucceeds(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	attempts := 0
	err := retryConnect(context.Background(), &RetryConfig{MaxRetries: 5, BaseDelay: time.Millisecond}, logrus.NewEntry(logger),
		func(context.Context) error {
			attempts++
			if attempts < 3 {
				return errors.New("connection refused")
			}
			return nil
		})

	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Len(t, hook.AllEntries(), 2)
	assert.Equal(t, 2, hook.LastEntry().Data["attempt"])
}

func TestRetryConnectGivesUp(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	attempts := 0
	lastErr := errors.New("connection refused")
	err := retryConnect(context.Background(), &RetryConfig{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}, logrus.NewEntry(logger),
		func(context.Context) error {
			attempts++
			return lastErr
		})

	assert.ErrorIs(t, err, lastErr)
	assert.Equal(t, 3, attempts)
}

func TestRetryConnectHonoursContext(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	err := retryConnect(ctx, &RetryConfig{MaxRetries: 5, BaseDelay: time.Hour}, logrus.NewEntry(logger),
		func(context.Context) error {
			attempts++
			return errors.New("connection refused")
		})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}
