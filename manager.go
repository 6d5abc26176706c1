// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package polydd

import (
	"fmt"

	"github.com/polydd/polydd/internal/diagnostics"
)

// Manager owns every node, unique table and apply cache for one family of
// diagrams over a fixed set of variables. Managers are not safe for
// concurrent use: every method here assumes single-threaded, cooperative
// access.
type Manager struct {
	dom    []int32        // domain size, per variable index
	tables []*uniqueTable // one per variable index

	// The variable order is a bijection between indices (a variable's
	// name, fixed for the Manager's lifetime) and levels (its current
	// depth in every diagram). The two coincide until a reordering call
	// changes them.
	levelToIndex []int32
	indexToLevel []int32

	pool      *nodePool
	terminals map[Value]*Node
	caches    map[Operator]*applyCache

	cfg    *configs
	maxDom int32

	// needsGC is set when allocation pressure is detected mid-operation or
	// when a reference count drops to zero; the sweep itself is deferred to adjustSizes so that nodes built by
	// an in-flight Apply recursion, which carry no reference until their
	// parent links them, are never reclaimed under our feet.
	needsGC bool

	nodeCount  int
	gcCount    int
	cacheHit   int64
	cacheMiss  int64
	reorderOps int64

	log diagnostics.Logger
}

// New creates a Manager for variables with the given domain sizes;
// domains[i] is the number of values variable i can take (2 for an ordinary
// Boolean variable). The initial order places variable i at level i. Options
// configure initial table and cache sizes and resize behaviour, following
// the functional options pattern.
func New(domains []int, opts ...Option) *Manager {
	if len(domains) == 0 {
		panic("polydd: New requires at least one variable")
	}
	cfg := makeConfigs(len(domains))
	for _, o := range opts {
		o(cfg)
	}
	dom := make([]int32, len(domains))
	var maxDom int32
	for i, d := range domains {
		if d < 2 {
			panic(fmt.Sprintf("polydd: variable %d has invalid domain %d", i, d))
		}
		dom[i] = int32(d)
		if int32(d) > maxDom {
			maxDom = int32(d)
		}
	}
	m := &Manager{
		dom:          dom,
		tables:       make([]*uniqueTable, len(dom)),
		levelToIndex: make([]int32, len(dom)),
		indexToLevel: make([]int32, len(dom)),
		pool:         newNodePool(cfg.nodesize),
		terminals:    make(map[Value]*Node),
		caches:       make(map[Operator]*applyCache),
		cfg:          cfg,
		maxDom:       maxDom,
		log:          diagnostics.Default(),
	}
	for i := range m.tables {
		m.tables[i] = newUniqueTable()
		m.levelToIndex[i] = int32(i)
		m.indexToLevel[i] = int32(i)
	}
	return m
}

// Varnum returns the number of variables this Manager was created with.
func (m *Manager) Varnum() int {
	return len(m.dom)
}

// Domain returns the domain size of variable i.
func (m *Manager) Domain(i int) int {
	return int(m.dom[i])
}

// Level returns the level variable i currently occupies.
func (m *Manager) Level(i int) int {
	return int(m.indexToLevel[i])
}

// IndexAtLevel returns the index of the variable currently at level lvl.
func (m *Manager) IndexAtLevel(lvl int) int {
	return int(m.levelToIndex[lvl])
}

// levelOf returns n's depth under the current order; terminals report the
// sentinel leaf level just past the last variable.
func (m *Manager) levelOf(n *Node) int {
	if n.isTerminal() {
		return len(m.dom)
	}
	return int(m.indexToLevel[n.index])
}

func (m *Manager) checkOwn(n *Node) {
	if n != nil && n.manager != m {
		panic("polydd: node does not belong to this manager")
	}
}

// Constant returns the terminal node representing the constant value v,
// creating and hash-consing it on first use. Terminals are sticky: they are
// never garbage collected.
func (m *Manager) Constant(v Value) *Node {
	if n, ok := m.terminals[v]; ok {
		return n
	}
	n := m.pool.allocate()
	n.index = terminalIndex
	n.value = v
	n.manager = m
	n.refcou = _MAXREFCOUNT
	m.terminals[v] = n
	m.nodeCount++
	return n
}

// Variable returns the node for the projection of variable i: a node that
// tests i and whose son for value k is the terminal k, for every k in the
// domain of i. This generalizes rudd's Ithvar to non-Boolean domains: for a
// Boolean variable the node's sons are exactly [False, True].
func (m *Manager) Variable(i int) *Node {
	d := int(m.dom[i])
	sons := make([]*Node, d)
	for k := 0; k < d; k++ {
		sons[k] = m.Constant(Value(k))
	}
	return m.internalNode(int32(i), sons)
}

// internalNode returns the (hash-consed) node testing variable idx with the
// given sons, applying the reduction rule: if every son is the same node,
// that node is returned directly instead of a new redundant internal node.
func (m *Manager) internalNode(idx int32, sons []*Node) *Node {
	if len(sons) != int(m.dom[idx]) {
		panic("polydd: sons array does not match the variable's domain")
	}
	redundant := true
	for i := 1; i < len(sons); i++ {
		if sons[i] != sons[0] {
			redundant = false
			break
		}
	}
	if redundant {
		return sons[0]
	}
	t := m.tables[idx]
	if n, ok := t.find(sons); ok {
		return n
	}
	return m.newNode(idx, sons)
}

func (m *Manager) newNode(idx int32, sons []*Node) *Node {
	if m.pool.free == nil {
		m.needsGC = true
	}
	if m.cfg.maxnodesize > 0 && m.nodeCount >= m.cfg.maxnodesize {
		m.needsGC = true
	}
	n := m.pool.allocate()
	n.index = idx
	n.sons = append([]*Node(nil), sons...)
	n.manager = m
	m.tables[idx].insert(n)
	m.nodeCount++
	for _, s := range sons {
		m.incref(s)
	}
	return n
}

func (m *Manager) incref(n *Node) {
	if n.refcou != _MAXREFCOUNT {
		n.refcou++
	}
}

// decref releases one reference to n without reclaiming anything: a node
// whose count reaches zero stays in its unique table until the next
// adjustSizes, so that pointers held elsewhere (an apply-cache entry, a raw
// root a caller has not wrapped in a Handle yet) keep pointing at intact
// memory until a sweep explicitly invalidates the caches too.
func (m *Manager) decref(n *Node) {
	if n.refcou == _MAXREFCOUNT {
		return
	}
	if n.refcou == 0 {
		panic("polydd: reference count decremented below zero")
	}
	n.refcou--
	if n.refcou == 0 {
		m.needsGC = true
	}
}

// decRefTryGC releases one reference to n and reclaims it eagerly, together
// with any of its descendants that die in cascade, when the count reaches
// zero. Only the reordering code uses this: it already has every affected
// table in hand and clears the apply caches itself once the swap is done.
func (m *Manager) decRefTryGC(n *Node) {
	if n.refcou == _MAXREFCOUNT {
		return
	}
	n.refcou--
	if n.refcou > 0 {
		return
	}
	for _, s := range n.sons {
		m.decRefTryGC(s)
	}
	m.tables[n.index].erase(n)
	m.pool.release(n)
	m.nodeCount--
}

// getCache returns (creating if necessary) the apply cache for op.
func (m *Manager) getCache(op Operator) *applyCache {
	c, ok := m.caches[op]
	if !ok {
		c = newApplyCache(m.cfg.cachesize)
		m.caches[op] = c
	}
	return c
}

// adjustSizes runs at the end of every top-level operation: it sweeps dead
// nodes if allocation pressure was detected, or a reference count dropped to
// zero, since the last call, then lets
// every unique table and apply cache grow towards its preferred load.
func (m *Manager) adjustSizes() {
	if m.needsGC {
		m.collectGarbage()
		if m.cfg.autoreorder {
			m.SiftVars()
		}
	}
	for _, t := range m.tables {
		t.adjustCapacity()
	}
	if m.cfg.cacheratio > 0 {
		want := gteCapacity(m.nodeCount * m.cfg.cacheratio / 100)
		for _, c := range m.caches {
			if want > len(c.entries) {
				c.resize(want)
			}
		}
	}
}

// protecting temporarily pins n with an extra reference while fn runs, so a
// garbage collection triggered inside fn cannot reclaim a result that no
// handle refers to yet.
func (m *Manager) protecting(n *Node, fn func()) {
	m.incref(n)
	fn()
	if n.refcou != _MAXREFCOUNT {
		n.refcou--
	}
}

// CollectGarbage sweeps every node whose reference count has reached zero,
// cascading through son links, and drops every apply-cache entry whose
// operands or result were reclaimed; entries over surviving nodes are kept.
// Raw *Node roots not
// wrapped in a Handle do not survive this; see Ref.
func (m *Manager) CollectGarbage() {
	m.collectGarbage()
}

func (m *Manager) collectGarbage() {
	m.needsGC = false
	before := m.nodeCount
	// Sweep by level, parents first: a node erased here releases its son
	// references, and since sons live at strictly greater levels their
	// tables have not been visited yet, so the cascade is caught by the
	// same pass.
	for lvl := 0; lvl < len(m.dom); lvl++ {
		t := m.tables[m.levelToIndex[lvl]]
		var dead []*Node
		for _, head := range t.buckets {
			for n := head; n != nil; n = n.next {
				if n.refcou == 0 {
					dead = append(dead, n)
				}
			}
		}
		for _, n := range dead {
			t.erase(n)
			for _, s := range n.sons {
				if s.refcou != _MAXREFCOUNT {
					s.refcou--
				}
			}
			m.pool.release(n)
			m.nodeCount--
		}
	}
	// Entries whose operands and result all survived the sweep stay
	// valid; only entries referencing a reclaimed slot must go, and they
	// must go now, before the slot can be handed out again.
	alive := func(n *Node) bool { return n.used }
	for _, c := range m.caches {
		c.rmUnused(alive)
	}
	m.gcCount++
	reclaimed := before - m.nodeCount
	freeRatio := 0.0
	if m.pool.cap > 0 {
		freeRatio = float64(m.pool.cap-m.pool.count) / float64(m.pool.cap)
	}
	m.log.Debugw("collected garbage", "reclaimed", reclaimed, "free_ratio", freeRatio)
	if freeRatio*100 < float64(m.cfg.minfreenodes) {
		m.pool.growTo(m.pool.cap + m.growthIncrement())
	}
}

func (m *Manager) growthIncrement() int {
	inc := m.pool.cap
	if m.cfg.maxnodeincrease > 0 && inc > m.cfg.maxnodeincrease {
		inc = m.cfg.maxnodeincrease
	}
	if inc <= 0 {
		inc = _ARENASIZE
	}
	return inc
}

// Stats is a snapshot of Manager bookkeeping counters, exposed for
// observability wiring such as the MetricsCollector in metrics.go.
type Stats struct {
	NodeCount  int
	GCCount    int
	CacheHit   int64
	CacheMiss  int64
	ReorderOps int64
}

func (m *Manager) Stats() Stats {
	return Stats{
		NodeCount:  m.nodeCount,
		GCCount:    m.gcCount,
		CacheHit:   m.cacheHit,
		CacheMiss:  m.cacheMiss,
		ReorderOps: m.reorderOps,
	}
}
