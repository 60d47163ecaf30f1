package utils

import (
	"context"
	"errors"
	"time"
)

var ErrChannelClosed = errors.New("channel was closed")

func RecvWithTimeout[T any](channel <-chan T, timeout time.Duration) (data T, err error) {
	ctx, cleanup := context.WithTimeout(context.Background(), timeout)
	defer cleanup()
	return RecvWithContext(ctx, channel)
}

// RecvWithContext waits for a value on channel. It fails with ErrChannelClosed once
// channel is closed, or with the context error if ctx is done first.
func RecvWithContext[T any](ctx context.Context, channel <-chan T) (data T, err error) {
	var ok bool
	select {
	case data, ok = <-channel:
		if !ok {
			err = ErrChannelClosed
		}
	case <-ctx.Done():
		err = ctx.Err()
	}
	return
}
