// Package filesystem provides the filesystem abstraction used by dotlink.
//
// Every engine reads and mutates the disk through the FS interface so that the
// source root, home directory and filesystem root can all live inside a
// temporary directory under test.
package filesystem
