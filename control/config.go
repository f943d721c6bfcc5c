// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Layered configuration for producer/consumer runs: defaults < config file <
// environment < explicitly set flags.

package control

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Defaults mirror the reference producer/consumer run.
const (
	DefaultCapacity        = 50
	DefaultLimit           = 20000
	DefaultProducerBackoff = 3 * time.Nanosecond
	DefaultConsumerBackoff = 5 * time.Nanosecond
	DefaultLogLevel        = "info"
	AutoCPU                = -1
	EnvPrefix              = "RINGDEMO"
)

// Config controls one demo run.
type Config struct {
	Capacity        int           `mapstructure:"capacity"`
	Limit           int           `mapstructure:"limit"`
	Pin             bool          `mapstructure:"pin"`
	ProducerCPU     int           `mapstructure:"producerCPU"`
	ConsumerCPU     int           `mapstructure:"consumerCPU"`
	ProducerBackoff time.Duration `mapstructure:"producerBackoff"`
	ConsumerBackoff time.Duration `mapstructure:"consumerBackoff"`
	Verbose         bool          `mapstructure:"verbose"`
	Dump            bool          `mapstructure:"dump"`
	LogLevel        string        `mapstructure:"logLevel"`
	MetricsAddress  string        `mapstructure:"metricsAddress"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"capacity":         "capacity",
	"limit":            "limit",
	"pin":              "pin",
	"producer-cpu":     "producerCPU",
	"consumer-cpu":     "consumerCPU",
	"producer-backoff": "producerBackoff",
	"consumer-backoff": "consumerBackoff",
	"verbose":          "verbose",
	"dump":             "dump",
	"log-level":        "logLevel",
	"metrics-addr":     "metricsAddress",
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("capacity", DefaultCapacity)
	v.SetDefault("limit", DefaultLimit)
	v.SetDefault("pin", true)
	v.SetDefault("producerCPU", AutoCPU)
	v.SetDefault("consumerCPU", AutoCPU)
	v.SetDefault("producerBackoff", DefaultProducerBackoff)
	v.SetDefault("consumerBackoff", DefaultConsumerBackoff)
	v.SetDefault("verbose", false)
	v.SetDefault("dump", true)
	v.SetDefault("logLevel", DefaultLogLevel)
	v.SetDefault("metricsAddress", "")
}

// RegisterFlags declares the config flags on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Int("capacity", DefaultCapacity, "ring buffer capacity")
	fs.Int("limit", DefaultLimit, "last item produced (items 0..limit are sent)")
	fs.Bool("pin", true, "pin producer and consumer threads to CPUs (threaded run)")
	fs.Int("producer-cpu", AutoCPU, "producer CPU, -1 picks automatically")
	fs.Int("consumer-cpu", AutoCPU, "consumer CPU, -1 picks automatically")
	fs.Duration("producer-backoff", DefaultProducerBackoff, "producer sleep after a FULL status")
	fs.Duration("consumer-backoff", DefaultConsumerBackoff, "consumer sleep after an EMPTY status")
	fs.Bool("verbose", false, "log every ring operation")
	fs.Bool("dump", true, "dump ring slots after each run")
	fs.String("log-level", DefaultLogLevel, "log level (debug, info, warn, error)")
	fs.String("metrics-addr", "", "serve Prometheus metrics on this address while running")
}

// LoadConfig resolves a Config. path may be empty; flags may be nil.
func LoadConfig(path string, flags *pflag.FlagSet) (Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("control: read config %q: %w", path, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("control: bind flag %q: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("control: decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges. The demo element type is uint16, which bounds Limit.
func (c Config) Validate() error {
	var errs []error
	if c.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("capacity must be greater than zero, got %d", c.Capacity))
	}
	if c.Limit < 1 || c.Limit > math.MaxUint16 {
		errs = append(errs, fmt.Errorf("limit must be in [1, %d], got %d", math.MaxUint16, c.Limit))
	}
	if c.ProducerCPU < AutoCPU || c.ConsumerCPU < AutoCPU {
		errs = append(errs, fmt.Errorf("cpu ids must be >= %d", AutoCPU))
	}
	if c.ProducerBackoff < 0 || c.ConsumerBackoff < 0 {
		errs = append(errs, errors.New("backoff must not be negative"))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("control: invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Level returns the parsed log level, falling back to info.
func (c Config) Level() zapcore.Level {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
