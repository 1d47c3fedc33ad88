// Package dispenser drives the physical feeding sequence.
//
// A dispense is a fixed, linear list of stages (servo to feed position, optional
// wiggle, back to rest, motor forward, stop, motor backward, stop) built from a
// compiled-in Profile. Every stage holds for a constant duration; the sequence
// blocks its caller, has no feedback from the actuators and always completes.
package dispenser
