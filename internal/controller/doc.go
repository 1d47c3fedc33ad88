// Package controller runs the feeder's control cycle.
//
// Every tick reads the clock, lets the match detector fire a scheduled dispense
// when the feeder is in Automatic mode, then consumes at most one command line
// from the transport and dispatches it. The loop is single-threaded: a dispense
// blocks it entirely, so no command is read and no schedule is matched while the
// actuators move. Other goroutines observe the controller through Status only.
package controller
