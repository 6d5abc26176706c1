// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package polydd

// _ARENASIZE is the number of nodes held by one arena block. Arenas never
// reallocate their backing array once created, so a *Node handed out by the
// pool stays valid (and its address stable) for as long as the Manager
// lives, which is what lets the apply cache key entries by pointer identity
// instead of by an index that could move on resize.
const _ARENASIZE = 1 << 12

// nodePool hands out *Node values from a growable list of fixed-size,
// non-reallocating arenas. Free nodes reclaimed by the garbage collector are
// kept on a singly-linked free list threaded through Node.next.
type nodePool struct {
	arenas [][]Node
	free   *Node
	count  int // live (used) nodes across all arenas
	cap    int // total node slots currently allocated
}

func newNodePool(initial int) *nodePool {
	p := &nodePool{}
	p.growTo(initial)
	return p
}

func (p *nodePool) growTo(n int) {
	for p.cap < n {
		blockSize := _ARENASIZE
		if remaining := n - p.cap; remaining < blockSize {
			blockSize = remaining
		}
		if blockSize <= 0 {
			blockSize = _ARENASIZE
		}
		block := make([]Node, blockSize)
		p.arenas = append(p.arenas, block)
		for i := range block {
			block[i].next = p.free
			p.free = &block[i]
		}
		p.cap += blockSize
	}
}

// allocate removes a node from the free list, growing the pool with a fresh
// overflow arena if none is available, and returns it zeroed except for its
// intrusive next pointer (cleared).
func (p *nodePool) allocate() *Node {
	if p.free == nil {
		p.growTo(p.cap + _ARENASIZE)
	}
	n := p.free
	p.free = n.next
	*n = Node{}
	n.used = true
	p.count++
	return n
}

// release returns n to the free list. The caller must have already removed
// n from any unique table chain it belonged to.
func (p *nodePool) release(n *Node) {
	if !n.used {
		panic("polydd: double release of node")
	}
	*n = Node{next: p.free}
	p.free = n
	p.count--
}
