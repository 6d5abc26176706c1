// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package polydd

import "runtime"

// Handle is an external, garbage-collected reference to a Node. Operations
// on a Manager return raw *Node values for internal use (e.g. as operands to
// further Apply calls within the same expression), but a caller that wants
// to hold on to a diagram across calls without leaking it should wrap it in
// a Handle with Ref; when the Handle becomes unreachable, the Go runtime's
// finalizer releases the Manager's reference automatically, without the
// caller ever calling a "deref" method by hand.
type Handle struct {
	node    *Node
	manager *Manager
}

// Ref wraps n in a Handle, incrementing its reference count, and arranges
// for that reference to be released automatically once the Handle is
// garbage collected.
func (m *Manager) Ref(n *Node) *Handle {
	m.checkOwn(n)
	if n.refcou != _MAXREFCOUNT {
		n.refcou++
	}
	h := &Handle{node: n, manager: m}
	runtime.SetFinalizer(h, (*Handle).release)
	return h
}

func (h *Handle) release() {
	if h.node == nil {
		return
	}
	h.manager.decref(h.node)
	h.node = nil
}

// Release drops the Handle's reference immediately instead of waiting for
// the finalizer, for callers that want deterministic reclamation. The
// Handle is dead afterwards; calling Release again is a no-op.
func (h *Handle) Release() {
	runtime.SetFinalizer(h, nil)
	h.release()
}

// Node returns the node this Handle refers to.
func (h *Handle) Node() *Node {
	return h.node
}

// Clone returns a new Handle to the same node with its own independent
// reference, so that dropping one Handle does not release the other's
// reference.
func (h *Handle) Clone() *Handle {
	return h.manager.Ref(h.node)
}
