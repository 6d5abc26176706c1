// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package polydd

// SwapVars exchanges the variables at levels lvl and lvl+1, leaving every
// diagram representing the same function of its variables under the new
// order. Calling it twice with the same argument restores the original
// order.
//
// Every affected node is mutated in place rather than replaced: ancestors
// hold sons by address, the apply cache keys by address, and a Handle pins
// an address, so a swapped node must keep the address it had.
func (m *Manager) SwapVars(lvl int) {
	if lvl < 0 || lvl+1 >= len(m.dom) {
		panic("polydd: SwapVars requires two adjacent, in-range levels")
	}
	i := m.levelToIndex[lvl]   // moving down
	j := m.levelToIndex[lvl+1] // moving up
	ti := m.tables[i]

	// Only nodes testing i that have a son testing j actually change
	// shape. The rest keep their index and sons; their level changes
	// implicitly when the order flips below.
	var affected []*Node
	for _, head := range ti.buckets {
		for n := head; n != nil; n = n.next {
			for _, s := range n.sons {
				if s.index == j {
					affected = append(affected, n)
					break
				}
			}
		}
	}

	// Unlink affected nodes first: erase hashes the sons as they stand,
	// so it must run before any sons field is overwritten. It also keeps
	// the i-table free of nodes about to change key, so the cofactor
	// lookups below can only ever share with nodes that keep testing i.
	for _, n := range affected {
		ti.erase(n)
	}

	di, dj := int(m.dom[i]), int(m.dom[j])
	for _, n := range affected {
		oldSons := n.sons
		// cof[a][b] is the son reached from n with first i=a then j=b:
		// the son's own b-th son when it tests j, or the son itself
		// (identity cofactor) when it lies deeper.
		cof := make([][]*Node, di)
		for a := 0; a < di; a++ {
			cof[a] = make([]*Node, dj)
			son := oldSons[a]
			for b := 0; b < dj; b++ {
				if son.index == j {
					cof[a][b] = son.sons[b]
				} else {
					cof[a][b] = son
				}
			}
		}
		newSons := make([]*Node, dj)
		for b := 0; b < dj; b++ {
			column := make([]*Node, di)
			for a := 0; a < di; a++ {
				column[a] = cof[a][b]
			}
			newSons[b] = m.internalNode(i, column)
		}
		n.index = j
		n.sons = newSons
		for _, s := range newSons {
			m.incref(s)
		}
		m.tables[j].insert(n)
		for _, s := range oldSons {
			m.decRefTryGC(s)
		}
	}

	m.levelToIndex[lvl], m.levelToIndex[lvl+1] = j, i
	m.indexToLevel[i]++
	m.indexToLevel[j]--
	m.reorderOps++

	// Cached apply entries stay semantically valid (a node still denotes
	// the same function), but the eager cascade above may have recycled
	// nodes a cache slot still points at, and a recycled slot reused for
	// a fresh node would then hit on a stale key.
	for _, c := range m.caches {
		c.clear()
	}
	ti.adjustCapacity()
	m.tables[j].adjustCapacity()
}

// SiftVars runs a greedy sifting pass over the whole Manager: every
// variable, visited in descending order of the number of nodes testing it,
// is swapped down to the bottom of the order and then back up to the top,
// and finally parked at the level where the Manager's total node count was
// smallest (the earliest such level when tied). Node counts after each
// single swap are best-effort: a swap can transiently grow the diagram
// before a later one shrinks it back.
func (m *Manager) SiftVars() {
	varnum := len(m.dom)
	if varnum < 2 {
		return
	}

	order := make([]int, varnum)
	for i := range order {
		order[i] = i
	}
	for i := 0; i < varnum; i++ {
		for j := i + 1; j < varnum; j++ {
			if m.tables[order[j]].size > m.tables[order[i]].size {
				order[i], order[j] = order[j], order[i]
			}
		}
	}

	for _, v := range order {
		best := int(m.indexToLevel[v])
		bestCount := m.nodeCount

		for int(m.indexToLevel[v]) < varnum-1 {
			m.SwapVars(int(m.indexToLevel[v]))
			if m.nodeCount < bestCount {
				bestCount = m.nodeCount
				best = int(m.indexToLevel[v])
			}
		}
		for m.indexToLevel[v] > 0 {
			m.SwapVars(int(m.indexToLevel[v]) - 1)
			if m.nodeCount < bestCount {
				bestCount = m.nodeCount
				best = int(m.indexToLevel[v])
			} else if m.nodeCount == bestCount && int(m.indexToLevel[v]) < best {
				// Prefer the earliest level reaching the minimum.
				best = int(m.indexToLevel[v])
			}
		}
		for int(m.indexToLevel[v]) != best {
			m.SwapVars(int(m.indexToLevel[v]))
		}
	}
}
