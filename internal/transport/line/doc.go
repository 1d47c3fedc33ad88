// Package line implements the feeder's line-oriented command channel over any
// byte stream (a serial device node, stdin/stdout) plus an injection queue used
// by the remote console.
//
// Reads are polled: TryReadLine never blocks and hands out at most one complete
// line. Bytes after the last newline are held back until the terminator arrives.
package line
