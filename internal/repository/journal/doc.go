// Package journal records the most recent dispense on disk.
//
// The FileRepository writes the run as protobuf JSON (a google.protobuf.Struct)
// so the file can be inspected or edited by hand. It is informational only: the
// feeder never restores its schedule or mode from it.
package journal
