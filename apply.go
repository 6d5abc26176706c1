// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package polydd

// Apply combines two diagrams with a binary operator, returning the node
// representing the pointwise application of op to the functions a and b
// represent. Both nodes must belong to m; mixing nodes from different
// managers is a precondition violation and panics.
//
// The result is not referenced: wrap it with Ref if it must survive a later
// garbage collection.
func (m *Manager) Apply(op Operator, a, b *Node) *Node {
	m.checkOwn(a)
	m.checkOwn(b)
	if op.IsCommutative() && uintptr(pointerOf(a)) > uintptr(pointerOf(b)) {
		a, b = b, a
	}
	res := m.applyStep(op, a, b)
	m.protecting(res, m.adjustSizes)
	return res
}

func (m *Manager) applyStep(op Operator, a, b *Node) *Node {
	cache := m.getCache(op)
	if res, ok := cache.find(a, b); ok {
		m.cacheHit++
		return res
	}
	m.cacheMiss++

	// An operand that is still internal enters the operator as
	// Nondetermined; when the operator resolves regardless (an absorbing
	// operand, or both operands terminal) the recursion stops here.
	av, bv := Nondetermined, Nondetermined
	if a.isTerminal() {
		av = a.value
	}
	if b.isTerminal() {
		bv = b.value
	}
	if ov := op.evalTerminal(av, bv, m.maxDom); ov != Nondetermined {
		res := m.Constant(ov)
		cache.put(a, b, res)
		return res
	}

	idx, aSons, bSons := m.cofactors(a, b)
	sons := make([]*Node, len(aSons))
	for i := range sons {
		sons[i] = m.applyStep(op, aSons[i], bSons[i])
	}
	res := m.internalNode(idx, sons)
	cache.put(a, b, res)
	return res
}

// cofactors picks the topmost of the two operands under the current order
// and returns its variable's index together with, for each value k in that
// variable's domain, the k-th cofactor of a and of b: the son itself when
// the operand tests that variable, or the whole node unchanged (implicit
// identity cofactor) when it is terminal or tests a deeper level, following
// the Shannon-cofactor recursion for ordered diagrams.
func (m *Manager) cofactors(a, b *Node) (int32, []*Node, []*Node) {
	la, lb := m.levelOf(a), m.levelOf(b)
	top := la
	if lb < top {
		top = lb
	}
	idx := m.levelToIndex[top]
	d := int(m.dom[idx])
	aSons := make([]*Node, d)
	bSons := make([]*Node, d)
	for k := 0; k < d; k++ {
		if la == top {
			aSons[k] = a.sons[k]
		} else {
			aSons[k] = a
		}
		if lb == top {
			bSons[k] = b.sons[k]
		} else {
			bSons[k] = b
		}
	}
	return idx, aSons, bSons
}
