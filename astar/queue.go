package astar

// openItem is one entry of the open set: an arena index keyed by priority.
type openItem struct {
	idx  int32  // arena index of the node
	prio int    // cost + estimate
	seq  uint64 // insertion order, breaks priority ties FIFO
}

// openPQ is a min-heap of openItem ordered by (prio, seq).
// Stale entries stay in the heap and are discarded by the closed-set check
// when popped (lazy decrease-key).
type openPQ []openItem

// Len returns the number of items in the heap.
func (pq openPQ) Len() int { return len(pq) }

// Less orders by priority, then by insertion sequence.
func (pq openPQ) Less(i, j int) bool {
	if pq[i].prio != pq[j].prio {
		return pq[i].prio < pq[j].prio
	}
	return pq[i].seq < pq[j].seq
}

// Swap swaps two elements in the heap.
func (pq openPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap; x must be an openItem.
func (pq *openPQ) Push(x interface{}) { *pq = append(*pq, x.(openItem)) }

// Pop removes and returns the last element after heap reordering.
func (pq *openPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
