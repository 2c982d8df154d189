package client

import (
	"context"

	"github.com/samber/mo"
)

// GetBasicInfoFuture starts GetBasicInfo and returns its pending result.
func (c *Client) GetBasicInfoFuture(ctx context.Context, input string, opts ...Options) *mo.Future[*VideoInfo] {
	return futureOf(func() (*VideoInfo, error) {
		return c.GetBasicInfo(ctx, input, opts...)
	})
}

// GetFullInfoFuture starts GetFullInfo and returns its pending result.
func (c *Client) GetFullInfoFuture(ctx context.Context, input string, opts ...Options) *mo.Future[*VideoInfo] {
	return futureOf(func() (*VideoInfo, error) {
		return c.GetFullInfo(ctx, input, opts...)
	})
}

func futureOf[T any](run func() (T, error)) *mo.Future[T] {
	return mo.NewFuture(func(resolve func(T), reject func(error)) {
		v, err := run()
		if err != nil {
			reject(err)
			return
		}
		resolve(v)
	})
}

// Callback invokes cb once f settles, from a separate goroutine. Exactly one
// of the value and the error is meaningful.
func Callback[T any](f *mo.Future[T], cb func(T, error)) {
	go func() {
		cb(f.Collect())
	}()
}
