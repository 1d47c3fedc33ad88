// Package logger wraps zap for the feeder process:
//   - a global sugared logger with a console encoder,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing for the log_level setting,
//   - shorthand functions (Info, InfoKV, WarnKV, etc.) that log through the context.
//
// The controller, the dispenser and the services receive a context and pull the
// logger out of it, so every line carries the component name that produced it.
package logger
