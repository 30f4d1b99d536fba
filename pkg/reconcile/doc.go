// Package reconcile classifies every tracked Configs file by comparing the
// source tree with what is currently deployed.
//
// Each file lands in exactly one of three sets:
//
//   - linked: the target is a symlink resolving into the file's group directory
//   - unlinked: the target is absent, or a symlink resolving anywhere else
//   - conflict: the target is a real file or directory (unowned conflict)
//
// Ownership is decided by canonicalizing both the link and the group directory
// and comparing the results component-wise. Classification reads the
// filesystem only; two passes without mutation in between are identical.
package reconcile
