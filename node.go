// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package polydd

import "unsafe"

// pointerOf returns the address of n as a plain pointer value, used
// throughout the unique tables and apply cache to hash and compare nodes by
// identity rather than by structural value.
func pointerOf(n *Node) unsafe.Pointer {
	return unsafe.Pointer(n)
}

// Node is a vertex in a diagram owned by a Manager. Terminal nodes have
// sons == nil and index == terminalIndex; their value is the constant the
// node represents. Internal nodes test the variable with the given index and
// have one son per value in that variable's domain.
//
// A node records the index of the variable it tests, never its level: the
// level is a property of the Manager's current order (see Manager.Level) and
// changes under reordering, while the index names the variable for good.
//
// Node values are only ever allocated by a Manager's pool (see pool.go) and
// must never be copied or compared with anything other than ==; identity is
// the address of the struct itself, which the apply cache (cache.go) and
// unique tables (unique.go) both rely on directly.
type Node struct {
	index int32
	value Value // meaningful only for terminal nodes
	sons  []*Node

	next   *Node // intrusive chaining link for the owning unique table
	refcou int32 // references from Handles and parent nodes, see handle.go
	mark   bool  // traversal mark bit, see traverse.go
	used   bool  // pool liveness bit, see pool.go

	// data is a single float64 slot reserved for external collaborators
	// such as the reliability subpackage to attach per-node state, for
	// instance a component's failure probability. The core package never
	// reads or writes it.
	data float64

	manager *Manager
}

const terminalIndex int32 = -1

func (n *Node) isTerminal() bool {
	return n.index == terminalIndex
}

// IsTerminal reports whether n is a terminal (constant) node.
func (n *Node) IsTerminal() bool { return n.isTerminal() }

// Data returns the user-data slot attached to n. It is reserved for external
// collaborators such as the reliability subpackage.
func (n *Node) Data() float64 { return n.data }

// SetData sets the user-data slot attached to n.
func (n *Node) SetData(v float64) { n.data = v }

// Index returns the index of the variable n tests, or -1 if n is terminal.
func (n *Node) Index() int {
	return int(n.index)
}

// Level returns the level n occupies under its Manager's current variable
// order. Terminals sit below every internal node and report the sentinel
// leaf level Varnum.
func (n *Node) Level() int {
	return n.manager.levelOf(n)
}

// Sons returns the sons of n, one per value in the domain of n's variable.
// It returns nil for a terminal node.
func (n *Node) Sons() []*Node {
	return n.sons
}

// Value returns the constant value of a terminal node. It panics if n is not
// terminal.
func (n *Node) Value() Value {
	if !n.isTerminal() {
		panic("polydd: Value called on a non-terminal node")
	}
	return n.value
}
