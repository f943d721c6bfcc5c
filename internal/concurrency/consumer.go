// File: internal/concurrency/consumer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/momentics/hioload-ring/api"
)

// ErrOutOfOrder reports an item that broke the 0, 1, 2, ... sequence.
var ErrOutOfOrder = errors.New("consumer: item out of order")

// ConsumerConfig configures Consume.
type ConsumerConfig struct {
	Limit    Item          // stop after this item is removed
	Backoff  time.Duration // sleep after an EMPTY status
	Verbose  bool
	Logger   *zap.Logger
	Observer Observer
}

// Consume removes items from r until Limit arrives and returns the last item
// removed. Items must arrive as 0, 1, 2, ...; anything else fails with ErrOutOfOrder.
func Consume(ctx context.Context, r api.Ring[Item], cfg ConsumerConfig) (Item, error) {
	logger := loggerOrNop(cfg.Logger).Named("consumer")
	obs := observerOrNop(cfg.Observer)

	prev := api.StatusUnknown
	var (
		last     Item
		expected int
	)
	for expected <= int(cfg.Limit) {
		if err := ctx.Err(); err != nil {
			return last, err
		}

		status, item, n := r.Remove()
		obs.ObserveRemove(status, n)

		switch status {
		case api.StatusRemoved:
			if cfg.Verbose {
				logger.Debug(status.String(), zap.Uint16("item", item), zap.Int("elements", n))
			}
			if int(item) != expected {
				return last, fmt.Errorf("%w: got %d, want %d", ErrOutOfOrder, item, expected)
			}
			last = item
			expected++
			Allow(0)
		case api.StatusEmpty:
			if cfg.Verbose && status != prev {
				logger.Debug(status.String(), zap.Int("elements", n))
			}
			Allow(cfg.Backoff)
		}
		prev = status
	}

	logger.Info("terminated", zap.Uint16("last", last))
	return last, nil
}
