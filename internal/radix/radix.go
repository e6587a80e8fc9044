// Package radix implements a generic byte-level PATRICIA / radix trie: an
// ordered map from string keys to values of type T, with edges that carry
// multi-byte labels and parent back-pointers for ancestor walks.
//
// Grounded on Theros/src/utilities/Trie.h: TrieNode/TrieNodeEdge/Trie supply
// the node/edge shape (parent back-pointer, sorted edge list, value-bearing
// nodes) this package carries over from C++ templates to Go generics. The
// edge-selection algorithm itself is a generalization of that source's
// find_lmp_edges/insert pairing: a direct translation handles splits only
// when the inserted key is fully consumed by the shared prefix, but
// silently skips splitting when BOTH the matching edge and the inserted
// key have residual bytes beyond their shared prefix ("happy" then
// "happening" must later split cleanly under "happ"). This file's insert
// handles that case too, by dispatching edges on their first byte (valid
// once a node's outgoing edges are known to have pairwise-distinct first
// bytes) rather than scanning for a longest-common-prefix range.
package radix

import "sort"

// Edge is one outgoing edge of a Node: a non-empty label and the child it
// leads to. order records the edge's creation sequence in the owning Trie,
// preserved across splits, and used to break ties between same-rank
// placeholder edges (see Trie.FindPattern).
type Edge[T any] struct {
	Label string
	Child *Node[T]
	order uint64
}

// Node is one trie node. HasValue distinguishes a node that carries a
// registered value from a pure branch point introduced by a split (e.g. the
// "happ" node factored out of "happy"/"happening" before any route is
// registered at "/happ" itself); Parent is nil only for the root, which
// never carries a value.
type Node[T any] struct {
	Parent   *Node[T]
	Value    T
	HasValue bool
	Edges    []Edge[T]
}

// Ancestors returns the chain of nodes from n up to and including the root,
// in leaf-to-root order — the mirror image of what a caller wants for
// dispatch, so callers typically reverse it.
func (n *Node[T]) Ancestors() []*Node[T] {
	var chain []*Node[T]
	for cur := n; cur != nil; cur = cur.Parent {
		chain = append(chain, cur)
	}
	return chain
}

func (n *Node[T]) insertEdgeSorted(e Edge[T]) {
	idx := sort.Search(len(n.Edges), func(i int) bool { return n.Edges[i].Label >= e.Label })
	n.Edges = append(n.Edges, Edge[T]{})
	copy(n.Edges[idx+1:], n.Edges[idx:])
	n.Edges[idx] = e
}

// edgeByFirstByte returns the index of the edge whose label starts with
// query's first byte, or -1 if none exists. Edges are sorted
// lexicographically, and by the time any edge set is searched its members
// have pairwise-distinct first bytes, so a binary search on that byte
// alone is sound.
func edgeByFirstByte[T any](edges []Edge[T], query string) int {
	if query == "" {
		return -1
	}
	b := query[0]
	lo, hi := 0, len(edges)
	for lo < hi {
		mid := (lo + hi) / 2
		if edges[mid].Label[0] < b {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(edges) && edges[lo].Label[0] == b {
		return lo
	}
	return -1
}

func commonPrefixLen(x, y string) int {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	i := 0
	for i < n && x[i] == y[i] {
		i++
	}
	return i
}

// Trie is a radix trie keyed by string, mapping to values of type T. The
// zero value is not usable; construct with New.
type Trie[T any] struct {
	root *Node[T]
	size int
	seq  uint64
}

// New returns an empty Trie.
func New[T any]() *Trie[T] {
	return &Trie[T]{root: &Node[T]{}}
}

// Root returns the trie's root node. The root never carries a value.
func (t *Trie[T]) Root() *Node[T] { return t.root }

// Len returns the number of values stored in the trie.
func (t *Trie[T]) Len() int { return t.size }

// Insert adds key with value under the trie, maintaining the invariant
// that a node's outgoing edges have pairwise-distinct first bytes, no edge
// label is empty, and sibling edges share no common prefix once sorted.
// It returns the node holding value and true, or (nil, false) if key is
// already present with a value (duplicate keys are rejected; the existing
// value is left untouched).
func (t *Trie[T]) Insert(key string, value T) (*Node[T], bool) {
	cur := t.root
	remaining := key

	for {
		if remaining == "" {
			if cur.HasValue {
				return nil, false
			}
			cur.Value = value
			cur.HasValue = true
			t.size++
			return cur, true
		}

		idx := edgeByFirstByte(cur.Edges, remaining)
		if idx == -1 {
			child := &Node[T]{Parent: cur, Value: value, HasValue: true}
			cur.insertEdgeSorted(Edge[T]{Label: remaining, Child: child, order: t.seq})
			t.seq++
			t.size++
			return child, true
		}

		edge := &cur.Edges[idx]
		matchLen := commonPrefixLen(edge.Label, remaining)

		if matchLen == len(edge.Label) {
			// Prefix exhausted: descend with the residual key.
			remaining = remaining[matchLen:]
			cur = edge.Child
			continue
		}

		// edge.Label has residual beyond matchLen: split. Factor the shared
		// prefix into a new intermediate node; the old edge's subtree hangs
		// off it under its shortened label. If the inserted key is also
		// exhausted at matchLen, the intermediate node itself carries the
		// new value; otherwise the key's own residual becomes a second
		// child of the intermediate.
		oldLabel, oldChild, oldOrder := edge.Label, edge.Child, edge.order
		mid := &Node[T]{Parent: cur}
		oldChild.Parent = mid
		mid.insertEdgeSorted(Edge[T]{Label: oldLabel[matchLen:], Child: oldChild, order: oldOrder})

		var result *Node[T]
		if matchLen == len(remaining) {
			mid.Value = value
			mid.HasValue = true
			result = mid
		} else {
			leaf := &Node[T]{Parent: mid, Value: value, HasValue: true}
			mid.insertEdgeSorted(Edge[T]{Label: remaining[matchLen:], Child: leaf, order: t.seq})
			t.seq++
			result = leaf
		}

		cur.Edges[idx] = Edge[T]{Label: remaining[:matchLen], Child: mid, order: oldOrder}
		t.size++
		return result, true
	}
}

// Find performs an exact lookup: it descends the trie consuming key one
// edge at a time and succeeds only if key is fully consumed exactly at a
// value-bearing node. No placeholder interpretation is applied — '<' is
// just another byte.
func (t *Trie[T]) Find(key string) (*Node[T], bool) {
	cur := t.root
	remaining := key

	for {
		if remaining == "" {
			if cur.HasValue {
				return cur, true
			}
			return nil, false
		}
		idx := edgeByFirstByte(cur.Edges, remaining)
		if idx == -1 {
			return nil, false
		}
		edge := &cur.Edges[idx]
		matchLen := commonPrefixLen(edge.Label, remaining)
		if matchLen != len(edge.Label) {
			return nil, false
		}
		remaining = remaining[matchLen:]
		cur = edge.Child
	}
}
