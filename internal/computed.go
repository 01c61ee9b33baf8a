package internal

import "iter"

type Computed struct {
	*Owner
	*Cell

	initialized bool

	// called whenever the node is pulled out of the heap
	fn func()

	depsHead *DependencyLink

	compute func() any
}

func (r *Runtime) NewComputed(compute func() any) *Computed {
	c := r.newComputed(compute)
	c.fn = func() { r.recompute(c) }

	r.recompute(c)

	return c
}

func (r *Runtime) newComputed(compute func() any) *Computed {
	c := &Computed{
		Owner: r.NewOwner(),
		Cell:  r.NewCell(nil, IsEqual),

		compute: compute,
	}

	c.OnDispose(func() {
		c.AddFlag(FlagDisposed)
		r.heap.Remove(c)
		c.ClearDeps()
	})

	return c
}

func (c *Computed) run() {
	c.value = c.compute()
}

// Link creates a bidirectional dependency link between this computation (subscriber) and the given cell (dependency).
func (c *Computed) Link(dep *Cell) {
	// dont link if already present as the most recent dependency
	if c.depsHead != nil && c.depsHead.prevDep.dep == dep {
		return
	}

	link := &DependencyLink{dep: dep, sub: c}

	c.addDepLink(link)
	dep.addSubLink(link)

	if dep.height >= c.height {
		c.height = dep.height + 1
	}
}

// Deps returns an iterator over all dependencies
func (c *Computed) Deps() iter.Seq[*Cell] {
	return func(yield func(*Cell) bool) {
		for link := c.depsHead; link != nil; link = link.nextDep {
			if !yield(link.dep) {
				return
			}
		}
	}
}

// ClearDeps removes all dependencies
func (c *Computed) ClearDeps() {
	for link := c.depsHead; link != nil; {
		next := link.nextDep
		link.dep.removeSubLink(link)
		link = next
	}

	c.depsHead = nil
}

func (c *Computed) addDepLink(link *DependencyLink) {
	if c.depsHead == nil {
		c.depsHead = link
		link.prevDep = link // loop to self
		link.nextDep = nil
		return
	}

	tail := c.depsHead.prevDep
	tail.nextDep = link
	link.prevDep = tail
	link.nextDep = nil
	c.depsHead.prevDep = link
}
