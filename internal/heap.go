package internal

import "iter"

// PriorityHeap orders dirty computations by height so that a node only runs
// after every dirty node it may depend on.
type PriorityHeap struct {
	min int
	max int

	buckets [][]*Computed // [height]nodes
}

func NewHeap() *PriorityHeap {
	return &PriorityHeap{
		buckets: make([][]*Computed, 16),
	}
}

func (h *PriorityHeap) Insert(node *Computed) {
	if node.HasFlag(FlagInHeap) || node.HasFlag(FlagDisposed) {
		return
	}
	node.AddFlag(FlagInHeap)

	height := node.GetHeight()
	for height >= len(h.buckets) {
		h.buckets = append(h.buckets, nil)
	}

	h.buckets[height] = append(h.buckets[height], node)

	if height > h.max {
		h.max = height
	}
	if height < h.min {
		h.min = height
	}
}

func (h *PriorityHeap) InsertAll(nodes iter.Seq[*Computed]) {
	for node := range nodes {
		h.Insert(node)
	}
}

// Remove drops the node lazily, Drain skips entries without the flag.
func (h *PriorityHeap) Remove(node *Computed) {
	node.RemoveFlag(FlagInHeap)
}

// Drain processes each entry in topological order with the `process` function leaving the heap empty.
// Nodes inserted while draining are processed in the same call.
func (h *PriorityHeap) Drain(process func(*Computed)) {
	for h.min = 0; h.min <= h.max; h.min++ {
		for len(h.buckets[h.min]) > 0 {
			bucket := h.buckets[h.min]
			node := bucket[0]
			h.buckets[h.min] = bucket[1:]

			if !node.HasFlag(FlagInHeap) {
				continue
			}
			node.RemoveFlag(FlagInHeap)

			process(node)
		}
	}

	h.min = 0
	h.max = 0
}
