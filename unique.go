// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package polydd

// tableCapacities is the fixed schedule of unique-table bucket counts a
// table grows through, each roughly double the previous and adjusted to a
// nearby prime to spread hash values evenly. Mirrors the fixed capacity
// schedule of the TeDDy library rather than a
// geometric-with-runtime-primality-check growth scheme.
var tableCapacities = [24]int{
	7, 17, 37, 79, 163, 331, 673, 1361,
	2729, 5471, 10949, 21911, 43853, 87719, 175447, 350899,
	701819, 1403641, 2807303, 5614657, 11229331, 22458671, 44917381, 89834777,
}

func gteCapacity(n int) int {
	for _, c := range tableCapacities {
		if c >= n {
			return c
		}
	}
	return tableCapacities[len(tableCapacities)-1]
}

// uniqueTable is the per-variable hash-consing table: a bucket array of
// chained Node lists (chained through Node.next), holding every live
// internal node that tests this table's variable.
type uniqueTable struct {
	buckets    []*Node
	size       int // number of live nodes currently stored
	loadFactor float64
}

const defaultLoadThreshold = 0.75

func newUniqueTable() *uniqueTable {
	return &uniqueTable{
		buckets:    make([]*Node, tableCapacities[0]),
		loadFactor: defaultLoadThreshold,
	}
}

func hashSons(sons []*Node) uint64 {
	var h uint64 = 14695981039346656037 // FNV offset basis
	for _, s := range sons {
		h ^= uint64(uintptr(pointerOf(s)))
		h *= 1099511628211 // FNV prime
	}
	return h
}

func sameSons(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// find looks up an internal node with the given sons, returning it and true
// on a hit, or nil and false on a miss.
func (t *uniqueTable) find(sons []*Node) (*Node, bool) {
	idx := hashSons(sons) % uint64(len(t.buckets))
	for n := t.buckets[idx]; n != nil; n = n.next {
		if sameSons(n.sons, sons) {
			return n, true
		}
	}
	return nil, false
}

// insert adds n (already populated with index and sons) to the table,
// growing it first if the load factor would be exceeded.
func (t *uniqueTable) insert(n *Node) {
	if float64(t.size+1) > t.loadFactor*float64(len(t.buckets)) {
		t.grow()
	}
	idx := hashSons(n.sons) % uint64(len(t.buckets))
	n.next = t.buckets[idx]
	t.buckets[idx] = n
	t.size++
}

// erase removes n from the table. It panics if n is not present, which
// would indicate a bookkeeping bug in the garbage collector.
func (t *uniqueTable) erase(n *Node) {
	idx := hashSons(n.sons) % uint64(len(t.buckets))
	cur := t.buckets[idx]
	if cur == n {
		t.buckets[idx] = n.next
		n.next = nil
		t.size--
		return
	}
	for cur != nil {
		if cur.next == n {
			cur.next = n.next
			n.next = nil
			t.size--
			return
		}
		cur = cur.next
	}
	panic("polydd: erase of node not present in its unique table")
}

func (t *uniqueTable) grow() {
	next := gteCapacity(2 * len(t.buckets))
	if next > len(t.buckets) {
		t.rehash(next)
	}
}

// adjustCapacity grows the table to the first scheduled capacity that keeps
// the load below 3/4, if it is not already there. It never shrinks.
func (t *uniqueTable) adjustCapacity() {
	want := gteCapacity(1 + 4*t.size/3)
	if want > len(t.buckets) {
		t.rehash(want)
	}
}

// rehash re-threads every chained node into a fresh bucket array of the
// given capacity. Nodes themselves are not reallocated.
func (t *uniqueTable) rehash(newCap int) {
	old := t.buckets
	t.buckets = make([]*Node, newCap)
	for _, head := range old {
		for n := head; n != nil; {
			next := n.next
			idx := hashSons(n.sons) % uint64(newCap)
			n.next = t.buckets[idx]
			t.buckets[idx] = n
			n = next
		}
	}
}
