// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package taxonomy implements taxonomic trees
// limited to a rank,
// and resolvers that build them
// from a set of taxonomic IDs.
package taxonomy

import "errors"

// A Node is a taxon in a taxonomic tree.
type Node struct {
	TaxID string
	Rank  Rank
	Name  string

	parent   *Node
	children []*Node
}

// Parent returns the parent of the node.
// The root returns nil.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the descendants of the node.
func (n *Node) Children() []*Node {
	return n.children
}

// IsLeaf returns true if the node
// does not have descendants.
func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// A Tree is a rooted taxonomic tree.
type Tree struct {
	root  *Node
	nodes map[string]*Node
}

// Root returns the root of the tree.
func (t *Tree) Root() *Node {
	return t.root
}

// Node returns the node with the given taxonomic ID.
func (t *Tree) Node(id string) *Node {
	return t.nodes[id]
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Nodes returns the nodes of the tree
// in pre-order.
func (t *Tree) Nodes() []*Node {
	ns := make([]*Node, 0, len(t.nodes))
	t.walk(t.root, func(n *Node) {
		ns = append(ns, n)
	})
	return ns
}

// Leaves returns the terminal nodes of the tree
// in traversal order.
func (t *Tree) Leaves() []*Node {
	var ls []*Node
	t.walk(t.root, func(n *Node) {
		if n.IsLeaf() {
			ls = append(ls, n)
		}
	})
	return ls
}

// Depth returns the number of edges
// from the root to the deepest leaf.
func (t *Tree) Depth() int {
	return depth(t.root)
}

// DepthOf returns the number of edges
// from the root to a node.
func (t *Tree) DepthOf(n *Node) int {
	d := 0
	for n.parent != nil {
		n = n.parent
		d++
	}
	return d
}

func (t *Tree) walk(n *Node, fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		t.walk(c, fn)
	}
}

func depth(n *Node) int {
	md := 0
	for _, c := range n.children {
		if d := depth(c) + 1; d > md {
			md = d
		}
	}
	return md
}

// ErrNoTaxa is returned when a tree
// is requested from an empty set of IDs.
var ErrNoTaxa = errors.New("no taxa to build a tree")

// RootID is the taxonomic ID
// used by the root of a taxonomy.
const RootID = "1"

// build builds a tree from a set of lineages.
// Each lineage is a list of nodes from the root
// to a requested taxon.
// Lineages are truncated at the rank limit,
// and non-requested nodes with a single descendant
// are collapsed.
func build(lineages [][]Node, requested map[string]bool, limit Rank) (*Tree, error) {
	if len(lineages) == 0 {
		return nil, ErrNoTaxa
	}

	t := &Tree{
		root: &Node{
			TaxID: RootID,
			Rank:  Unranked,
			Name:  "root",
		},
		nodes: make(map[string]*Node),
	}
	t.nodes[RootID] = t.root

	keep := make(map[string]bool, len(requested))
	for id := range requested {
		keep[id] = true
	}
	for _, ln := range lineages {
		ln = truncate(ln, limit)
		if len(ln) > 0 {
			// the truncated terminal
			// stands for the requested taxon
			keep[ln[len(ln)-1].TaxID] = true
		}

		anc := t.root
		for _, v := range ln {
			if v.TaxID == RootID {
				continue
			}
			n, ok := t.nodes[v.TaxID]
			if !ok {
				n = &Node{
					TaxID:  v.TaxID,
					Rank:   v.Rank,
					Name:   v.Name,
					parent: anc,
				}
				anc.children = append(anc.children, n)
				t.nodes[v.TaxID] = n
			}
			// on inconsistent lineages
			// the first parent is kept
			anc = n
		}
	}

	t.collapse(t.root, keep)
	if len(t.root.children) == 1 {
		delete(t.nodes, t.root.TaxID)
		t.root = t.root.children[0]
		t.root.parent = nil
	}
	return t, nil
}

// truncate returns a lineage
// truncated at the given rank.
func truncate(ln []Node, limit Rank) []Node {
	for i, n := range ln {
		if n.Rank == limit {
			return ln[:i+1]
		}
	}

	for i, n := range ln {
		if !n.Rank.Finer(limit) {
			continue
		}
		// remove unranked nodes
		// that are below the last ranked node
		j := i
		for j > 0 && !ln[j-1].Rank.IsRanked() {
			j--
		}
		return ln[:j]
	}
	return ln
}

// collapse removes descendants of n
// with a single child,
// that are not in the keep set.
func (t *Tree) collapse(n *Node, keep map[string]bool) {
	for i, c := range n.children {
		for len(c.children) == 1 && !keep[c.TaxID] {
			gc := c.children[0]
			gc.parent = n
			delete(t.nodes, c.TaxID)
			c = gc
		}
		n.children[i] = c
		t.collapse(c, keep)
	}
}
