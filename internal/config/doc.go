// Package config loads and validates the application configuration.
//
// Configuration comes from three layers, later layers winning: built-in
// defaults, an optional config.yaml, and SII_-prefixed environment
// variables. Statistical parameters (the climatological reference
// window, smoothing, quantile levels, season definitions) are resolved
// once into an immutable Constants value so that every report in a run
// computes against the same baseline.
package config
