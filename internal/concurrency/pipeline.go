// File: internal/concurrency/pipeline.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pipeline wires one producer and one consumer to a fresh ring per run.

package concurrency

import (
	"context"
	"errors"
	"io"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/momentics/hioload-ring/affinity"
	"github.com/momentics/hioload-ring/api"
	"github.com/momentics/hioload-ring/core/ring"
)

// AutoCPU lets the pipeline choose a CPU.
const AutoCPU = -1

// PipelineConfig configures a producer/consumer run.
type PipelineConfig struct {
	Capacity        int
	Limit           Item
	Pin             bool
	ProducerCPU     int
	ConsumerCPU     int
	ProducerBackoff time.Duration
	ConsumerBackoff time.Duration
	Verbose         bool
	DumpTo          io.Writer // slot dump after each run; nil disables
}

// Result is what a run produced and consumed.
type Result struct {
	Produced Item
	Consumed Item
	Elapsed  time.Duration
}

// RingHook is called with every ring a pipeline creates, before workers start.
type RingHook func(name string, r *ring.RingBuffer[Item])

// Pipeline runs producer/consumer workloads.
type Pipeline struct {
	cfg      PipelineConfig
	logger   *zap.Logger
	observer Observer
	affinity api.Affinity
	hook     RingHook
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithObserver sets the ring outcome observer shared by both workers.
func WithObserver(o Observer) Option {
	return func(p *Pipeline) { p.observer = o }
}

// WithAffinity replaces the OS thread pinning implementation.
func WithAffinity(a api.Affinity) Option {
	return func(p *Pipeline) { p.affinity = a }
}

// WithRingHook registers a callback for each new ring.
func WithRingHook(h RingHook) Option {
	return func(p *Pipeline) { p.hook = h }
}

// NewPipeline validates cfg and applies options.
func NewPipeline(cfg PipelineConfig, opts ...Option) (*Pipeline, error) {
	if cfg.Capacity <= 0 {
		return nil, api.NewError(api.ErrCodeInvalidCapacity, "pipeline: capacity must be greater than zero").
			WithContext("capacity", cfg.Capacity)
	}
	p := &Pipeline{
		cfg:      cfg,
		affinity: affinity.OSThread{},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = loggerOrNop(p.logger)
	p.observer = observerOrNop(p.observer)
	return p, nil
}

// RunThreaded starts the consumer and then the producer on goroutines locked
// to OS threads pinned to separate CPUs, waits for both and dumps the ring.
func (p *Pipeline) RunThreaded(ctx context.Context) (Result, error) {
	const name = "threaded"
	logger := p.logger.Named(name)

	r, err := p.newRing(name)
	if err != nil {
		return Result{}, err
	}

	producerCPU, consumerCPU := p.cpus()
	logger.Info("starting",
		zap.Int("cores", affinity.NumCPUs()),
		zap.Bool("pin", p.cfg.Pin),
		zap.Int("producer_cpu", producerCPU),
		zap.Int("consumer_cpu", consumerCPU),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg                   sync.WaitGroup
		res                  Result
		producerErr, consErr error
	)
	start := time.Now()
	wg.Add(2)
	go func() {
		defer wg.Done()
		p.pinned(logger, "consumer", consumerCPU, func() {
			res.Consumed, consErr = Consume(ctx, r, p.consumerConfig(logger))
		})
		if consErr != nil {
			cancel()
		}
	}()
	go func() {
		defer wg.Done()
		p.pinned(logger, "producer", producerCPU, func() {
			res.Produced, producerErr = Produce(ctx, r, p.producerConfig(logger))
		})
		if producerErr != nil {
			cancel()
		}
	}()
	wg.Wait()
	res.Elapsed = time.Since(start)

	p.dump(logger, r, "RunThreaded")
	logger.Info("terminated", zap.Duration("elapsed", res.Elapsed))
	return res, errors.Join(producerErr, consErr)
}

// RunTasks runs both workers as errgroup tasks without pinning. The first
// failure cancels the other task.
func (p *Pipeline) RunTasks(ctx context.Context) (Result, error) {
	const name = "tasks"
	logger := p.logger.Named(name)

	r, err := p.newRing(name)
	if err != nil {
		return Result{}, err
	}
	logger.Info("starting", zap.Int("cores", runtime.NumCPU()))

	var res Result
	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		res.Consumed, err = Consume(gctx, r, p.consumerConfig(logger))
		return err
	})
	g.Go(func() error {
		var err error
		res.Produced, err = Produce(gctx, r, p.producerConfig(logger))
		return err
	})
	err = g.Wait()
	res.Elapsed = time.Since(start)
	if err != nil {
		return res, err
	}

	logger.Info("producer result", zap.Uint16("item", res.Produced))
	logger.Info("consumer result", zap.Uint16("item", res.Consumed))
	p.dump(logger, r, "RunTasks")
	logger.Info("terminated", zap.Duration("elapsed", res.Elapsed))
	return res, nil
}

func (p *Pipeline) newRing(name string) (*ring.RingBuffer[Item], error) {
	r, err := ring.New[Item](p.cfg.Capacity)
	if err != nil {
		return nil, err
	}
	if p.hook != nil {
		p.hook(name, r)
	}
	return r, nil
}

func (p *Pipeline) producerConfig(logger *zap.Logger) ProducerConfig {
	return ProducerConfig{
		Limit:    p.cfg.Limit,
		Backoff:  p.cfg.ProducerBackoff,
		Verbose:  p.cfg.Verbose,
		Logger:   logger,
		Observer: p.observer,
	}
}

func (p *Pipeline) consumerConfig(logger *zap.Logger) ConsumerConfig {
	return ConsumerConfig{
		Limit:    p.cfg.Limit,
		Backoff:  p.cfg.ConsumerBackoff,
		Verbose:  p.cfg.Verbose,
		Logger:   logger,
		Observer: p.observer,
	}
}

// cpus resolves AutoCPU entries against the CPUs this thread may use.
func (p *Pipeline) cpus() (producer, consumer int) {
	available, err := p.affinity.Get()
	if err != nil || len(available) == 0 {
		available = make([]int, affinity.NumCPUs())
		for i := range available {
			available[i] = i
		}
	}
	producer, consumer = PlanCPUs(available)
	if p.cfg.ProducerCPU != AutoCPU {
		producer = p.cfg.ProducerCPU
	}
	if p.cfg.ConsumerCPU != AutoCPU {
		consumer = p.cfg.ConsumerCPU
	}
	return producer, consumer
}

// pinned runs fn with the calling goroutine pinned to cpu when pinning is on.
// Pin failures are logged and the run continues unpinned.
func (p *Pipeline) pinned(logger *zap.Logger, role string, cpu int, fn func()) {
	if !p.cfg.Pin {
		fn()
		return
	}
	if err := p.affinity.Pin(cpu); err != nil {
		logger.Warn("pin failed", zap.String("role", role), zap.Int("cpu", cpu), zap.Error(err))
	}
	defer func() {
		if err := p.affinity.Unpin(); err != nil {
			logger.Warn("unpin failed", zap.String("role", role), zap.Error(err))
		}
	}()
	fn()
}

func (p *Pipeline) dump(logger *zap.Logger, r *ring.RingBuffer[Item], caller string) {
	if p.cfg.DumpTo == nil {
		return
	}
	if err := r.Dump(p.cfg.DumpTo, caller); err != nil {
		logger.Warn("dump failed", zap.Error(err))
	}
}

// PlanCPUs picks the second available CPU for the producer and the third for
// the consumer, wrapping around on small machines. available must not be empty.
func PlanCPUs(available []int) (producer, consumer int) {
	n := len(available)
	return available[1%n], available[2%n]
}
