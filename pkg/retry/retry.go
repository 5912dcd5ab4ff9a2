// Package retry holds the read-path retry policy: a few tries with
// capped exponential backoff, giving up at once on answers that will not
// change.
package retry

import (
	"context"
	"errors"
	"time"

	clierrors "github.com/Om-Mishra7/InkBloom/pkg/errors"
	"github.com/Om-Mishra7/InkBloom/pkg/logger"
	"github.com/cenkalti/backoff/v5"
)

// Policy configures Do
type Policy struct {
	MaxTries        uint
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultPolicy is used by pagination
var DefaultPolicy = Policy{
	MaxTries:        3,
	InitialInterval: 250 * time.Millisecond,
	MaxInterval:     2 * time.Second,
}

// Retryable reports whether err is worth another attempt: transport
// failures and 5xx answers are, everything else is final.
func Retryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, clierrors.ErrNoMoreData) {
		return false
	}
	if clierrors.IsTransport(err) {
		return true
	}
	var sc clierrors.StatusCoder
	if errors.As(err, &sc) {
		return sc.HTTPStatus() >= 500
	}
	return false
}

// Do runs op until it succeeds, fails with a non-retryable error, or
// the policy runs out of tries.
func Do[T any](ctx context.Context, p Policy, name string, op func(context.Context) (T, error)) (T, error) {
	if p.MaxTries == 0 {
		p.MaxTries = 1
	}

	b := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		b.MaxInterval = p.MaxInterval
	}

	res, err := backoff.Retry(ctx, func() (T, error) {
		res, err := op(ctx)
		if err != nil && !Retryable(err) {
			return res, backoff.Permanent(err)
		}
		return res, err
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(p.MaxTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			logger.Warn("Retrying", "op", name, "in", next, "error", err)
		}),
	)

	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		err = permanent.Unwrap()
	}
	return res, err
}
