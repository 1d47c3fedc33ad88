// Package instance keeps a single feeder process per host.
//
// Two feeders driving the same actuators would interleave dispense sequences,
// so the service refuses to start when another process with the same
// executable name is already running.
package instance
