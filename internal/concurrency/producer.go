// File: internal/concurrency/producer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/momentics/hioload-ring/api"
)

// ProducerConfig configures Produce.
type ProducerConfig struct {
	Limit    Item          // items 0..Limit are sent in order
	Backoff  time.Duration // sleep after a FULL status
	Verbose  bool          // log every outcome at debug level
	Logger   *zap.Logger
	Observer Observer
}

// Produce adds 0..Limit to r, polling while the ring is full, and returns the
// last item accepted. A rejected item is retried until accepted.
func Produce(ctx context.Context, r api.Ring[Item], cfg ProducerConfig) (Item, error) {
	logger := loggerOrNop(cfg.Logger).Named("producer")
	obs := observerOrNop(cfg.Observer)

	prev := api.StatusUnknown
	next := 0
	for next <= int(cfg.Limit) {
		if err := ctx.Err(); err != nil {
			return lastSent(next), err
		}

		status, n := r.Add(Item(next))
		obs.ObserveAdd(status, n)

		switch status {
		case api.StatusAdded:
			if cfg.Verbose {
				logger.Debug(status.String(), zap.Uint16("item", Item(next)), zap.Int("elements", n))
			}
			next++
			Allow(0)
		case api.StatusFull:
			if cfg.Verbose && status != prev {
				logger.Debug(status.String(), zap.Int("elements", n))
			}
			Allow(cfg.Backoff)
		}
		prev = status
	}

	logger.Info("terminated", zap.Uint16("last", cfg.Limit))
	return cfg.Limit, nil
}

func lastSent(next int) Item {
	if next == 0 {
		return 0
	}
	return Item(next - 1)
}
