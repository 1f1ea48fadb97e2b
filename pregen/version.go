/*
Package pregen contains values which are pre-generated by the release process so the
flowlens executable can report them without reaching outside the binary.
*/
package pregen

const (
	// Version is auto-generated from ChangeLog.md
	Version = "v0.3.0"
	// ReleaseDate is also auto-generated from ChangeLog.md
	ReleaseDate = "2026-08-14"
)
