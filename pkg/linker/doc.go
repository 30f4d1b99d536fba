// Package linker moves groups between the linked and unlinked states.
//
// Linking creates, for every file of a group, the missing parents of its
// deployment target and a symlink from the target back to the source file.
// Unlinking removes only symlinks that resolve into the group's directory;
// real files are never deleted by unlink.
//
// Files are mutated one at a time with no rollback: a failure on one file is
// recorded and the remaining files are still processed, and a failing group
// never stops the rest of a batch.
//
// A real file or directory at a target is an unowned conflict. It blocks that
// file unless a policy resolves it:
//
//   - Force removes the conflicting entry after a single confirmation per call.
//   - Adopt moves the conflicting regular file into the source tree, replacing
//     the stale source, and links it back.
package linker
