// Package control
// Author: momentics <momentics@gmail.com>
//
// Configuration, runtime metrics and debug introspection for producer/consumer
// runs over a hioload-ring buffer.
//
// Provides:
//   - Config loading from defaults, an optional YAML file, RINGDEMO_* environment
//     variables and command-line flags (viper + pflag)
//   - Prometheus counters for ring outcomes and an occupancy gauge
//   - Debug probe registration and state export
//
// This package is cross-platform and build-tag-partitioned as needed.
package control
