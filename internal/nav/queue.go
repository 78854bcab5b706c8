package nav

import "container/heap"

// tileKey uniquely identifies a grid-local coordinate. The discovery
// and closed maps key on it instead of node identity.
type tileKey struct {
	x, y int32
}

// pathNode is one discovered tile in an A* search.
type pathNode struct {
	x, y   int32
	parent *pathNode
	g      float64 // accumulated cost from start
	f      float64 // g + heuristic
	index  int     // position in the open heap, -1 once popped
	seq    uint64  // insertion order, breaks f ties deterministically
}

// openList is the A* open set: a min-heap of discovered nodes ordered
// by f. Nodes track their heap index so a relaxation re-floats in
// O(log n) via heap.Fix instead of a linear locate.
type openList struct {
	nodes []*pathNode
	seq   uint64
}

func newOpenList() *openList {
	return &openList{nodes: make([]*pathNode, 0, 64)}
}

func (o *openList) Len() int { return len(o.nodes) }

func (o *openList) Less(i, j int) bool {
	a, b := o.nodes[i], o.nodes[j]
	if a.f != b.f {
		return a.f < b.f
	}
	return a.seq < b.seq
}

func (o *openList) Swap(i, j int) {
	o.nodes[i], o.nodes[j] = o.nodes[j], o.nodes[i]
	o.nodes[i].index = i
	o.nodes[j].index = j
}

func (o *openList) Push(x any) {
	n := x.(*pathNode)
	n.index = len(o.nodes)
	o.nodes = append(o.nodes, n)
}

func (o *openList) Pop() any {
	old := o.nodes
	last := len(old) - 1
	n := old[last]
	old[last] = nil // GC
	n.index = -1
	o.nodes = old[:last]
	return n
}

// push inserts a newly discovered node.
func (o *openList) push(n *pathNode) {
	o.seq++
	n.seq = o.seq
	heap.Push(o, n)
}

// pop removes and returns the minimum-f node, nil when empty.
func (o *openList) pop() *pathNode {
	if len(o.nodes) == 0 {
		return nil
	}
	return heap.Pop(o).(*pathNode)
}

// peek returns the minimum-f node without removing it, nil when empty.
func (o *openList) peek() *pathNode {
	if len(o.nodes) == 0 {
		return nil
	}
	return o.nodes[0]
}

// contains reports whether the node is currently queued.
func (o *openList) contains(n *pathNode) bool {
	return n.index >= 0
}

// decreaseKey re-floats a queued node after its g/f were lowered.
// No-op for nodes that already left the heap.
func (o *openList) decreaseKey(n *pathNode) {
	if n.index >= 0 {
		heap.Fix(o, n.index)
	}
}
