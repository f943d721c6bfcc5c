package control

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, Config{
		Capacity:        DefaultCapacity,
		Limit:           DefaultLimit,
		Pin:             true,
		ProducerCPU:     AutoCPU,
		ConsumerCPU:     AutoCPU,
		ProducerBackoff: DefaultProducerBackoff,
		ConsumerBackoff: DefaultConsumerBackoff,
		Dump:            true,
		LogLevel:        DefaultLogLevel,
	}, cfg)
	assert.Equal(t, zapcore.InfoLevel, cfg.Level())
}

func TestLoadConfig_FileEnvAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ring.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
capacity: 8
limit: 1000
producerBackoff: 10us
logLevel: debug
`), 0o600))
	t.Setenv("RINGDEMO_LIMIT", "2000")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--consumer-cpu", "2", "--pin=false"}))

	cfg, err := LoadConfig(path, fs)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Capacity)
	assert.Equal(t, 2000, cfg.Limit)
	assert.Equal(t, 10*time.Microsecond, cfg.ProducerBackoff)
	assert.Equal(t, DefaultConsumerBackoff, cfg.ConsumerBackoff)
	assert.Equal(t, 2, cfg.ConsumerCPU)
	assert.Equal(t, AutoCPU, cfg.ProducerCPU)
	assert.False(t, cfg.Pin)
	assert.Equal(t, zapcore.DebugLevel, cfg.Level())
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid, err := LoadConfig("", nil)
	require.NoError(t, err)

	cases := map[string]func(*Config){
		"zero capacity":    func(c *Config) { c.Capacity = 0 },
		"zero limit":       func(c *Config) { c.Limit = 0 },
		"limit too large":  func(c *Config) { c.Limit = 70000 },
		"cpu below auto":   func(c *Config) { c.ProducerCPU = -2 },
		"negative backoff": func(c *Config) { c.ConsumerBackoff = -time.Second },
		"bad log level":    func(c *Config) { c.LogLevel = "loud" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
