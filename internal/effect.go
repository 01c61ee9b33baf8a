package internal

type EffectType int

const (
	// render effects run first in a flush pass, subscriptions live here
	EffectRender EffectType = iota
	EffectUser
)

type Effect struct {
	*Computed

	typ EffectType
}

// NewEffect runs effect right away, then again in the typ phase of every flush pass
// in which one of the cells it read changed.
func (r *Runtime) NewEffect(typ EffectType, effect func()) *Effect {
	e := &Effect{
		Computed: r.newComputed(func() any {
			effect()
			return nil
		}),
		typ: typ,
	}

	e.fn = func() {
		r.effectQueue.Enqueue(typ, func() { r.recompute(e.Computed) })
	}

	r.recompute(e.Computed)

	return e
}
