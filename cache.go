// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package polydd

import "unsafe"

// cacheEntry is one slot of an applyCache. It is valid only when key1 is
// non-nil; a zero-value entry is always a miss.
type cacheEntry struct {
	key1, key2 *Node // the two operands apply was called with
	result     *Node
}

// applyCache memoizes the result of applying a single operator to pairs of
// operand nodes. It is open-addressed with a single probe: a lookup either
// hits on the first (and only) slot the key hashes to, or misses outright.
// Two distinct key pairs hashing to the same slot silently evict one
// another; a hit is only trusted when the stored keys match the operands
// being applied, so a collision only ever costs a recomputation, never a
// wrong answer.
type applyCache struct {
	entries []cacheEntry
}

func newApplyCache(size int) *applyCache {
	if size <= 0 {
		size = 1
	}
	return &applyCache{entries: make([]cacheEntry, size)}
}

func hashPair(a, b *Node) uint64 {
	ha := uint64(uintptr(unsafe.Pointer(a)))
	hb := uint64(uintptr(unsafe.Pointer(b)))
	h := ha*2654435761 + hb
	return h
}

// find probes the cache for the pair (a, b). It returns the cached result
// and true only when the stored keys match exactly; any other outcome,
// including an occupied slot with different keys, is reported as a miss.
func (c *applyCache) find(a, b *Node) (*Node, bool) {
	idx := hashPair(a, b) % uint64(len(c.entries))
	e := &c.entries[idx]
	if e.key1 == a && e.key2 == b {
		return e.result, true
	}
	return nil, false
}

// put stores the result of applying the operator to (a, b), unconditionally
// overwriting whatever was in that slot.
func (c *applyCache) put(a, b, result *Node) {
	idx := hashPair(a, b) % uint64(len(c.entries))
	c.entries[idx] = cacheEntry{key1: a, key2: b, result: result}
}

// clear drops every cached entry, used after a variable swap since its eager
// reclamation may have recycled nodes that cached results still reference.
func (c *applyCache) clear() {
	for i := range c.entries {
		c.entries[i] = cacheEntry{}
	}
}

// rmUnused drops any entry referencing a node for which alive returns
// false, without discarding the whole cache; used when sweeping after a GC
// pass is cheap enough not to warrant a full clear.
func (c *applyCache) rmUnused(alive func(*Node) bool) {
	for i := range c.entries {
		e := &c.entries[i]
		if e.key1 == nil {
			continue
		}
		if !alive(e.key1) || !alive(e.key2) || !alive(e.result) {
			*e = cacheEntry{}
		}
	}
}

func (c *applyCache) resize(newSize int) {
	if newSize <= 0 || newSize == len(c.entries) {
		return
	}
	c.entries = make([]cacheEntry, newSize)
}
