package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/momentics/hioload-ring/control"
	"github.com/momentics/hioload-ring/core/ring"
	"github.com/momentics/hioload-ring/internal/concurrency"
)

type cliOptions struct {
	configPath string
	cfg        control.Config
	logger     *zap.Logger
}

type runFunc func(p *concurrency.Pipeline, ctx context.Context) (concurrency.Result, error)

func newRootCommand() *cobra.Command {
	opts := cliOptions{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "ringdemo",
		Short:         "Producer/consumer demo over a fixed-capacity ring buffer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := control.LoadConfig(opts.configPath, cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := buildLogger(cfg)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			opts.logger = logger.With(zap.String("run", uuid.NewString()))
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = opts.logger.Sync()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), &opts, "threaded", "tasks")
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	control.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		&cobra.Command{
			Use:   "threaded",
			Short: "Run producer and consumer on pinned OS threads",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return run(cmd.Context(), &opts, "threaded")
			},
		},
		&cobra.Command{
			Use:   "tasks",
			Short: "Run producer and consumer as tasks and collect their results",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return run(cmd.Context(), &opts, "tasks")
			},
		},
	)

	return root
}

func buildLogger(cfg control.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	level := cfg.Level()
	if cfg.Verbose && level > zapcore.DebugLevel {
		level = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.DisableStacktrace = true
	return zcfg.Build()
}

func run(parent context.Context, opts *cliOptions, variants ...string) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signalAwareContext(parent)
	defer cancel()

	cfg := opts.cfg
	logger := opts.logger

	registry := prometheus.NewRegistry()
	metrics := control.NewMetrics(registry)
	probes := control.NewDebugProbes()
	control.RegisterPlatformProbes(probes)

	if cfg.MetricsAddress != "" {
		stop, err := serveMetrics(cfg.MetricsAddress, registry, logger)
		if err != nil {
			return err
		}
		defer stop()
	}

	logger.Info("using ring buffer",
		zap.Int("capacity", cfg.Capacity),
		zap.Int("limit", cfg.Limit),
	)

	pipeline, err := concurrency.NewPipeline(pipelineConfig(cfg),
		concurrency.WithLogger(logger),
		concurrency.WithObserver(metrics),
		concurrency.WithRingHook(func(name string, r *ring.RingBuffer[concurrency.Item]) {
			metrics.SetCapacity(r.Size())
			probes.RegisterRing(name, r)
		}),
	)
	if err != nil {
		return err
	}

	runs := map[string]runFunc{
		"threaded": (*concurrency.Pipeline).RunThreaded,
		"tasks":    (*concurrency.Pipeline).RunTasks,
	}

	var errs []error
	for _, name := range variants {
		res, err := runs[name](pipeline, ctx)
		if err != nil {
			logger.Error("run failed", zap.String("variant", name), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			if ctx.Err() != nil {
				break
			}
			continue
		}
		logger.Info("run complete",
			zap.String("variant", name),
			zap.Uint16("produced", res.Produced),
			zap.Uint16("consumed", res.Consumed),
			zap.Duration("elapsed", res.Elapsed),
		)
	}

	state := probes.DumpState()
	for _, name := range probes.Names() {
		logger.Debug("probe", zap.String("name", name), zap.Any("value", state[name]))
	}
	logger.Info("terminated")
	return errors.Join(errs...)
}

func pipelineConfig(cfg control.Config) concurrency.PipelineConfig {
	pc := concurrency.PipelineConfig{
		Capacity:        cfg.Capacity,
		Limit:           concurrency.Item(cfg.Limit),
		Pin:             cfg.Pin,
		ProducerCPU:     cfg.ProducerCPU,
		ConsumerCPU:     cfg.ConsumerCPU,
		ProducerBackoff: cfg.ProducerBackoff,
		ConsumerBackoff: cfg.ConsumerBackoff,
		Verbose:         cfg.Verbose,
	}
	if cfg.Dump {
		pc.DumpTo = os.Stderr
	}
	return pc
}

func signalAwareContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
