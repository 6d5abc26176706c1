// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package polydd

import "math/big"

// Restrict returns the diagram obtained from n by fixing variable i to
// value, leaving every other variable free. Because the ordering invariant
// guarantees a variable appears at most once on any root-to-leaf path, the
// recursion never needs to look below the level variable i occupies.
//
// Like Apply, the result is unreferenced; wrap it with Ref if it must
// survive a later garbage collection.
func (m *Manager) Restrict(n *Node, i int, value Value) *Node {
	m.checkOwn(n)
	if uint32(value) >= uint32(m.dom[i]) {
		panic("polydd: Restrict value out of domain")
	}
	li := int(m.indexToLevel[i])
	memo := make(map[*Node]*Node)
	var rec func(*Node) *Node
	rec = func(cur *Node) *Node {
		if cur.isTerminal() || m.levelOf(cur) > li {
			return cur
		}
		if cur.index == int32(i) {
			return cur.sons[value]
		}
		if res, ok := memo[cur]; ok {
			return res
		}
		sons := make([]*Node, len(cur.sons))
		for k, s := range cur.sons {
			sons[k] = rec(s)
		}
		res := m.internalNode(cur.index, sons)
		memo[cur] = res
		return res
	}
	res := rec(n)
	m.protecting(res, m.adjustSizes)
	return res
}

// MoveVar moves variable i to level toLevel through a sequence of adjacent
// SwapVars transpositions, shifting the variables in between by one level
// each. Every diagram in the Manager keeps representing the same function;
// node addresses are preserved, so existing roots and Handles stay valid.
func (m *Manager) MoveVar(i, toLevel int) {
	if toLevel < 0 || toLevel >= len(m.dom) {
		panic("polydd: MoveVar target level out of range")
	}
	for int(m.indexToLevel[i]) < toLevel {
		m.SwapVars(int(m.indexToLevel[i]))
	}
	for int(m.indexToLevel[i]) > toLevel {
		m.SwapVars(int(m.indexToLevel[i]) - 1)
	}
}

// rangeProduct returns the product of the domain sizes of every level
// strictly between lo and hi (both exclusive), i.e. the number of distinct
// assignments to the variables a branch from a node at level lo to a node
// at level hi skips over.
func (m *Manager) rangeProduct(lo, hi int) *big.Int {
	res := big.NewInt(1)
	for l := lo + 1; l < hi; l++ {
		res.Mul(res, big.NewInt(int64(m.dom[m.levelToIndex[l]])))
	}
	return res
}

// CountSatisfying returns, as an arbitrary-precision integer, the number of
// full variable assignments for which n evaluates to a value accepted by
// ok. Generalizes rudd's Satcount (operations.go), which fixes ok to "is
// the true terminal" and weights each skipped level by a power of two, to
// arbitrary per-level domain sizes: each branch from a node to one of its
// sons is weighted by the product of the domain sizes of every variable the
// branch skips over, instead of rudd's 1 << (level(son)-level(n)-1).
func (m *Manager) CountSatisfying(n *Node, ok func(Value) bool) *big.Int {
	m.checkOwn(n)
	memo := make(map[*Node]*big.Int)
	var rec func(*Node) *big.Int
	rec = func(cur *Node) *big.Int {
		if cur.isTerminal() {
			if ok(cur.value) {
				return big.NewInt(1)
			}
			return big.NewInt(0)
		}
		if res, ok := memo[cur]; ok {
			return res
		}
		total := big.NewInt(0)
		for _, son := range cur.sons {
			weight := m.rangeProduct(m.levelOf(cur), m.levelOf(son))
			sub := new(big.Int).Mul(weight, rec(son))
			total.Add(total, sub)
		}
		memo[cur] = total
		return total
	}
	return new(big.Int).Mul(m.rangeProduct(-1, m.levelOf(n)), rec(n))
}

// FromVector builds the diagram of the function whose full truth vector is
// values, listed with the variable at level 0 as the most significant
// position and the variable at the deepest level varying fastest. The
// vector's length must equal the product of every variable's domain size.
// Hash-consing and the reduction rule make the result canonical as it is
// built, so no separate reduce pass runs afterwards.
func (m *Manager) FromVector(values []Value) *Node {
	expect := 1
	for _, d := range m.dom {
		expect *= int(d)
	}
	if len(values) != expect {
		panic("polydd: truth vector length does not match the domain product")
	}
	var build func(lvl int, vals []Value) *Node
	build = func(lvl int, vals []Value) *Node {
		if lvl == len(m.dom) {
			return m.Constant(vals[0])
		}
		idx := m.levelToIndex[lvl]
		d := int(m.dom[idx])
		stride := len(vals) / d
		sons := make([]*Node, d)
		for k := 0; k < d; k++ {
			sons[k] = build(lvl+1, vals[k*stride:(k+1)*stride])
		}
		return m.internalNode(idx, sons)
	}
	res := build(0, values)
	m.protecting(res, m.adjustSizes)
	return res
}
