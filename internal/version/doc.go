// Package version exposes build metadata of the feeder.
//
// Version, Commit and BuildTime are injected with -ldflags at build time.
package version
