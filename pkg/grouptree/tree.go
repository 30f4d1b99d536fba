package grouptree

import (
	"iter"
	"path/filepath"
	"slices"
)

// NoParent is the parent index of the root node.
const NoParent = -1

// Node is one live entry of the arena.
type Node struct {
	// Group is the owning group name; empty for the root.
	Group string
	// Parent is the arena index of the parent node, NoParent for the root.
	Parent int
	// PathSlot is the index of this node's path in the path arena.
	PathSlot int
	// Children holds arena indices of child nodes; nil for a leaf.
	Children []int
}

// Tree is an arena-indexed tree rooted at a declared path.
type Tree struct {
	root   string
	paths  []*string
	nodes  []*Node
	groups map[string]struct{}
}

// New creates an empty tree. The first Insert must be the root path itself.
func New(root string) *Tree {
	return &Tree{
		root:   filepath.Clean(root),
		groups: make(map[string]struct{}),
	}
}

// Root returns the declared root path.
func (t *Tree) Root() string {
	return t.root
}

// Insert adds path owned by group. It returns false when path is already
// present or when its parent is not in the tree yet.
func (t *Tree) Insert(group, path string) bool {
	path = filepath.Clean(path)

	if len(t.nodes) == 0 || t.nodes[0] == nil {
		if path != t.root {
			return false
		}
		t.paths = append(t.paths[:0], &path)
		t.nodes = append(t.nodes[:0], &Node{Group: group, Parent: NoParent, PathSlot: 0})
		t.register(group)
		return true
	}

	parentPath := filepath.Dir(path)
	parent := -1
	for i, n := range t.All() {
		p := *t.paths[n.PathSlot]
		if p == path {
			return false
		}
		if p == parentPath {
			parent = i
		}
	}
	if parent < 0 || parentPath == path {
		return false
	}

	idx := len(t.nodes)
	t.paths = append(t.paths, &path)
	t.nodes = append(t.nodes, &Node{Group: group, Parent: parent, PathSlot: len(t.paths) - 1})
	t.nodes[parent].Children = append(t.nodes[parent].Children, idx)
	t.register(group)
	return true
}

func (t *Tree) register(group string) {
	if group != "" {
		t.groups[group] = struct{}{}
	}
}

// Remove detaches the node at index together with its descendants and returns
// its path. The root and already tombstoned slots are not removable.
func (t *Tree) Remove(index int) (string, bool) {
	if index <= 0 || index >= len(t.nodes) || t.nodes[index] == nil {
		return "", false
	}

	n := t.nodes[index]
	removed := *t.paths[n.PathSlot]

	if parent := t.nodes[n.Parent]; parent != nil {
		parent.Children = slices.DeleteFunc(parent.Children, func(c int) bool { return c == index })
		if len(parent.Children) == 0 {
			parent.Children = nil
		}
	}

	touched := make(map[string]struct{})
	stack := []int{index}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := t.nodes[i]
		if node == nil {
			continue
		}
		stack = append(stack, node.Children...)
		if node.Group != "" {
			touched[node.Group] = struct{}{}
		}
		t.paths[node.PathSlot] = nil
		t.nodes[i] = nil
	}

	for group := range touched {
		if !t.referenced(group) {
			delete(t.groups, group)
		}
	}

	return removed, true
}

// RemovePath removes the node holding path.
func (t *Tree) RemovePath(path string) (string, bool) {
	idx := t.IndexOf(path)
	if idx < 0 {
		return "", false
	}
	return t.Remove(idx)
}

func (t *Tree) referenced(group string) bool {
	for _, n := range t.All() {
		if n.Group == group {
			return true
		}
	}
	return false
}

// All walks live nodes depth-first from the root using an explicit stack.
// Children are visited in insertion order. Yielded nodes are owned by the
// tree and must not be modified.
func (t *Tree) All() iter.Seq2[int, *Node] {
	return func(yield func(int, *Node) bool) {
		if len(t.nodes) == 0 || t.nodes[0] == nil {
			return
		}
		stack := []int{0}
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			n := t.nodes[i]
			if n == nil || t.paths[n.PathSlot] == nil {
				continue
			}
			if !yield(i, n) {
				return
			}
			for j := len(n.Children) - 1; j >= 0; j-- {
				stack = append(stack, n.Children[j])
			}
		}
	}
}

// Paths yields the path of every live node in traversal order.
func (t *Tree) Paths() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, n := range t.All() {
			if !yield(*t.paths[n.PathSlot]) {
				return
			}
		}
	}
}

// Path returns the path stored for the node at index.
func (t *Tree) Path(index int) (string, bool) {
	if index < 0 || index >= len(t.nodes) || t.nodes[index] == nil {
		return "", false
	}
	p := t.paths[t.nodes[index].PathSlot]
	if p == nil {
		return "", false
	}
	return *p, true
}

// IndexOf returns the arena index holding path, or -1.
func (t *Tree) IndexOf(path string) int {
	path = filepath.Clean(path)
	for i, n := range t.All() {
		if *t.paths[n.PathSlot] == path {
			return i
		}
	}
	return -1
}

// ContainsPath reports whether a live node holds path.
func (t *Tree) ContainsPath(path string) bool {
	return t.IndexOf(path) >= 0
}

// ContainsGroup reports whether any live node belongs to name.
func (t *Tree) ContainsGroup(name string) bool {
	_, ok := t.groups[name]
	return ok
}

// Groups returns the known group names, sorted.
func (t *Tree) Groups() []string {
	out := make([]string, 0, len(t.groups))
	for g := range t.groups {
		out = append(out, g)
	}
	slices.Sort(out)
	return out
}

// SubtreeForGroup returns every live path owned by name, sorted. The second
// result is false when the group is unknown.
func (t *Tree) SubtreeForGroup(name string) ([]string, bool) {
	if !t.ContainsGroup(name) {
		return nil, false
	}
	var out []string
	for _, n := range t.All() {
		if n.Group == name {
			out = append(out, *t.paths[n.PathSlot])
		}
	}
	slices.Sort(out)
	return out, true
}

// Len returns the number of live nodes.
func (t *Tree) Len() int {
	count := 0
	for range t.All() {
		count++
	}
	return count
}

// IsEmpty reports whether every slot is tombstoned or nothing was inserted.
func (t *Tree) IsEmpty() bool {
	for _, p := range t.paths {
		if p != nil {
			return false
		}
	}
	for _, n := range t.nodes {
		if n != nil {
			return false
		}
	}
	return true
}
