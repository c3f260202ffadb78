// Package main provides the command-line interface for the bass boost
// strength conformance suite.
//
// # Usage
//
// List the implementations the suite would test:
//
//	go run ./cmd/effectvts list
//
// Run the sweep against the built-in simulation:
//
//	go run ./cmd/effectvts run --verbose
//
// Run against implementations described by a manifest, eight cases at a time:
//
//	go run ./cmd/effectvts run --manifest vendor.yaml --parallel 8
//
// # Configuration
//
// Global flags:
//   - --manifest: YAML manifest of simulated factories and implementations
//   - --log-level: debug, info, warn or error (default: warn)
//   - --log-format: text or json (default: text)
//
// Run flags:
//   - --parallel: cases in flight, 1-64 (default: EFFECT_VTS_PARALLEL or 1)
//   - --probe-max-plus-one: include MAX+1 in the sweep (default: EFFECT_VTS_PROBE_MAX_PLUS_ONE or true)
//   - --verbose: print passing cases too
//
// Flags that are not set leave the environment configuration in place.
//
// # Exit Status
//
// The command exits with status 1 when any case fails or the configuration
// is invalid, 0 otherwise.
package main
