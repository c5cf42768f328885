// Package tasks orchestrates multi-endpoint catalog operations.
//
// The core abstraction is HomeEngine, which assembles the landing view from
// three concurrent catalog fetches. Operations emit progress updates via
// channels for non-blocking status reporting to CLI/UI layers.
package tasks
