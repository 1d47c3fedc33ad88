// Package feeder contains the core domain of the feeder: time-of-day values,
// the bounded feeding schedule, the Automatic/Manual mode machine and the
// debounced match detector.
//
// State is owned by a single goroutine (the controller's tick loop) and is
// deliberately not safe for concurrent use; other goroutines read Snapshot copies.
package feeder
