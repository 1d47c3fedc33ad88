// Package config defines the feeder settings and provides helpers to load,
// validate and save them in YAML format.
//
// Values from the YAML file can be overridden by PAWFEEDER_* environment
// variables, optionally read from a .env file next to the binary.
package config
