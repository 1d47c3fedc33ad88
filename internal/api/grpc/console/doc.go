// Package console implements the gRPC remote console of the feeder.
//
// The service descriptor is declared by hand over protobuf well-known types:
// Submit takes a google.protobuf.StringValue carrying one command line and
// Status returns a google.protobuf.Struct describing the controller. The server
// never touches feeder state directly; it enqueues lines for the control loop
// and reads published snapshots.
package console
