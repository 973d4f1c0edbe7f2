/*
GameScout
Copyright (c) 2026 The GameScout Contributors.
SPDX-License-Identifier: GPL-3.0-or-later

This file is part of GameScout.

GameScout is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

GameScout is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with GameScout.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package keyvalues parses Valve's KeyValues text format, the nested
// quoted key/value serialization used by Steam for app manifests and
// library configuration files (.acf, .vdf).
//
// A document is a sequence of key/value pairs. Keys are double-quoted
// strings; values are either double-quoted strings or brace-delimited
// blocks of nested pairs. Line comments start with //. The format does
// not enforce key uniqueness: a block keeps every entry in document
// order, and Get resolves duplicates last-wins.
package keyvalues

// Node is a single value in a parsed KeyValues tree: either a string
// scalar or a block of ordered key/value entries.
type Node struct {
	value   string
	entries []Entry
	block   bool
}

// Entry is one key/value pair inside a block.
type Entry struct {
	Node *Node
	Key  string
}

// String returns a new scalar node.
func String(value string) *Node {
	return &Node{value: value}
}

// Block returns a new empty block node.
func Block() *Node {
	return &Node{block: true}
}

// IsBlock reports whether the node is a block rather than a string.
func (n *Node) IsBlock() bool {
	return n.block
}

// Value returns the node's string value. Blocks return "".
func (n *Node) Value() string {
	return n.value
}

// Entries returns the block's entries in document order. The returned
// slice must not be modified.
func (n *Node) Entries() []Entry {
	return n.entries
}

// Len returns the number of entries in a block, 0 for scalars.
func (n *Node) Len() int {
	return len(n.entries)
}

// Add appends a key/value pair to a block. It is a no-op on scalars.
func (n *Node) Add(key string, child *Node) *Node {
	if n.block {
		n.entries = append(n.entries, Entry{Key: key, Node: child})
	}
	return n
}

// Get returns the value for key. When the key repeats at this level the
// last occurrence wins, matching how Steam itself resolves duplicates.
func (n *Node) Get(key string) (*Node, bool) {
	for i := len(n.entries) - 1; i >= 0; i-- {
		if n.entries[i].Key == key {
			return n.entries[i].Node, true
		}
	}
	return nil, false
}

// GetString returns the scalar value for key. It reports false if the
// key is absent or maps to a block.
func (n *Node) GetString(key string) (string, bool) {
	child, ok := n.Get(key)
	if !ok || child.block {
		return "", false
	}
	return child.value, true
}

// GetBlock returns the block value for key. It reports false if the key
// is absent or maps to a scalar.
func (n *Node) GetBlock(key string) (*Node, bool) {
	child, ok := n.Get(key)
	if !ok || !child.block {
		return nil, false
	}
	return child, true
}

// All returns every value for key at this level, in document order.
func (n *Node) All(key string) []*Node {
	var nodes []*Node
	for _, e := range n.entries {
		if e.Key == key {
			nodes = append(nodes, e.Node)
		}
	}
	return nodes
}

// Equal reports structural equality: same kind, same scalar value or
// the same entries (keys and values) in the same order.
func (n *Node) Equal(other *Node) bool {
	if n.block != other.block {
		return false
	}
	if !n.block {
		return n.value == other.value
	}
	if len(n.entries) != len(other.entries) {
		return false
	}
	for i, e := range n.entries {
		o := other.entries[i]
		if e.Key != o.Key || !e.Node.Equal(o.Node) {
			return false
		}
	}
	return true
}
