// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package polydd

import "testing"

func TestGteCapacity(t *testing.T) {
	if got := gteCapacity(0); got != 7 {
		t.Errorf("gteCapacity(0) = %d, want 7", got)
	}
	if got := gteCapacity(8); got != 17 {
		t.Errorf("gteCapacity(8) = %d, want 17", got)
	}
	huge := tableCapacities[len(tableCapacities)-1]
	if got := gteCapacity(huge + 1); got != huge {
		t.Errorf("gteCapacity past the schedule should clamp to %d, got %d", huge, got)
	}
}

func TestUniqueTableGrowKeepsNodes(t *testing.T) {
	pool := newNodePool(256)
	anchors := make([]*Node, 16)
	for i := range anchors {
		anchors[i] = pool.allocate()
	}
	tbl := newUniqueTable()
	var nodes []*Node
	// 64 distinct son pairs, enough inserts to force several rehashes.
	for i := 0; i < 64; i++ {
		n := pool.allocate()
		n.index = 0
		n.sons = []*Node{anchors[i%16], anchors[(i/16+i%16+1)%16]}
		tbl.insert(n)
		nodes = append(nodes, n)
	}
	if len(tbl.buckets) <= tableCapacities[0] {
		t.Fatalf("table should have grown past %d buckets, has %d", tableCapacities[0], len(tbl.buckets))
	}
	for _, n := range nodes {
		got, ok := tbl.find(n.sons)
		if !ok || got != n {
			t.Fatalf("node lost after rehash")
		}
	}
	tbl.erase(nodes[10])
	if _, ok := tbl.find(nodes[10].sons); ok {
		t.Fatalf("erased node still found")
	}
	if tbl.size != 63 {
		t.Fatalf("size = %d, want 63", tbl.size)
	}
}

func TestPoolRecyclesSlots(t *testing.T) {
	p := newNodePool(8)
	a := p.allocate()
	p.release(a)
	b := p.allocate()
	if a != b {
		t.Fatalf("expected the freed slot to be reused first")
	}
	// Exhaust the primary arena; overflow must keep allocating.
	var all []*Node
	for i := 0; i < 100; i++ {
		all = append(all, p.allocate())
	}
	seen := make(map[*Node]bool)
	for _, n := range all {
		if seen[n] {
			t.Fatalf("pool handed out the same live slot twice")
		}
		seen[n] = true
	}
}
