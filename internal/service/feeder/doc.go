// Package feeder runs the feeder process: configuration, actuators, the
// command channel, the control loop and the optional remote console.
package feeder
