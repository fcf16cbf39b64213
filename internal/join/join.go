// Package join combines concurrent fetches into a single result.
package join

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// All2 runs fa and fb concurrently and waits for both.
// The first error cancels the context of the other fetch and is returned
// on its own, with both values discarded.
func All2[A, B any](ctx context.Context, fa func(context.Context) (A, error), fb func(context.Context) (B, error)) (A, B, error) {
	var a A
	var b B

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		value, err := fa(groupCtx)
		if err != nil {
			return err
		}
		a = value
		return nil
	})
	group.Go(func() error {
		value, err := fb(groupCtx)
		if err != nil {
			return err
		}
		b = value
		return nil
	})

	if err := group.Wait(); err != nil {
		var zeroA A
		var zeroB B
		return zeroA, zeroB, err
	}
	return a, b, nil
}
