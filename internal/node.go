package internal

import "iter"

type NodeFlags int

const (
	FlagNone NodeFlags = 0

	// the node is waiting in the recompute heap
	FlagInHeap NodeFlags = 1 << iota

	// the node was disposed and must never run again
	FlagDisposed
)

type ReactiveNode struct {
	// the current height of the node in the dependency graph, cells are always 0
	height int

	// the node's state
	flags NodeFlags

	subsHead *DependencyLink
}

func (n *ReactiveNode) GetHeight() int { return n.height }

func (n *ReactiveNode) HasFlag(f NodeFlags) bool { return n.flags&f != 0 }

func (n *ReactiveNode) AddFlag(f NodeFlags) { n.flags |= f }

func (n *ReactiveNode) RemoveFlag(f NodeFlags) { n.flags &^= f }

// Subs returns an iterator over the computations depending on this node
func (n *ReactiveNode) Subs() iter.Seq[*Computed] {
	return func(yield func(*Computed) bool) {
		for link := n.subsHead; link != nil; link = link.nextSub {
			if !yield(link.sub) {
				return
			}
		}
	}
}

func (n *ReactiveNode) addSubLink(link *DependencyLink) {
	if n.subsHead == nil {
		n.subsHead = link
		link.prevSub = link // loop to self
		link.nextSub = nil
		return
	}

	tail := n.subsHead.prevSub
	tail.nextSub = link
	link.prevSub = tail
	link.nextSub = nil
	n.subsHead.prevSub = link
}

func (n *ReactiveNode) removeSubLink(link *DependencyLink) {
	if n.subsHead == link {
		n.subsHead = link.nextSub
		if n.subsHead != nil {
			n.subsHead.prevSub = link.prevSub
		}
	} else {
		link.prevSub.nextSub = link.nextSub
		if link.nextSub != nil {
			link.nextSub.prevSub = link.prevSub
		} else {
			n.subsHead.prevSub = link.prevSub
		}
	}

	link.prevSub = nil
	link.nextSub = nil
}

// DependencyLink ties a cell (dependency) to a computation reading it (subscriber).
// Each link sits in two lists at once: the subscriber's deps and the dependency's subs.
type DependencyLink struct {
	dep *Cell
	sub *Computed

	prevDep *DependencyLink
	nextDep *DependencyLink

	prevSub *DependencyLink
	nextSub *DependencyLink
}
