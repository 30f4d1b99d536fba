// Package grouptree tracks which group owns each path of a source tree
// category.
//
// The tree is an arena: nodes and paths live in two flat slot slices and refer
// to each other by index only. Removing a node tombstones its slots instead of
// compacting them, so indices handed out earlier stay valid. Every query is
// answered by walking live nodes from the root; tombstoned slots are never
// yielded.
package grouptree
