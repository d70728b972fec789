// Package simplefs implements the core of a pedagogical single-user block
// file system: a superblock, an inode table with direct and single-indirect
// pointers, a free-block bitmap reconstructed at mount time, and the six
// primitive file operations (Create, Remove, Stat, Read, Write, Debug).
//
// The package does not talk to a physical disk. It consumes a Disk
// implementation supplied by the caller (see disk.go); the subpackage
// disks provides two concrete implementations for tests and tooling.
package simplefs
