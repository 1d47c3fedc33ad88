// Package device provides host-side stand-ins for the feeder hardware: a clock
// reader backed by the system time, a settable clock for tests and bench runs,
// and simulated servo and DC motor drivers that log and remember their orders.
package device
