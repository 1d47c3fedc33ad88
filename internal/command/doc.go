// Package command decodes lines of the feeder's text protocol into commands.
package command
