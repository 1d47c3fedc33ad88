// Package common holds helpers shared by several services.
//
// It provides a lightweight gRPC client for the feeder console with call
// timeouts and a helper that identifies the local operator for audit logs.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
