package internal

type EffectQueue struct {
	effects map[EffectType][]func()
}

func NewEffectQueue() *EffectQueue {
	return &EffectQueue{
		effects: map[EffectType][]func(){
			EffectRender: nil,
			EffectUser:   nil,
		},
	}
}

func (q *EffectQueue) Enqueue(typ EffectType, fn func()) {
	q.effects[typ] = append(q.effects[typ], fn)
}

// RunEffects runs the queued effects of one phase. Effects queued meanwhile wait for the next call.
func (q *EffectQueue) RunEffects(typ EffectType) {
	effects := q.effects[typ]
	q.effects[typ] = nil

	for _, effect := range effects {
		effect()
	}
}

func (q *EffectQueue) Len() int {
	n := 0
	for _, effects := range q.effects {
		n += len(effects)
	}
	return n
}

type NodeQueue struct {
	cells []*Cell
}

func NewNodeQueue() *NodeQueue {
	return &NodeQueue{}
}

func (q *NodeQueue) Enqueue(cell *Cell) {
	q.cells = append(q.cells, cell)
}

// Commit applies every pending value and returns the cells whose value changed.
func (q *NodeQueue) Commit() []*Cell {
	cells := q.cells
	q.cells = nil

	changed := cells[:0]
	for _, cell := range cells {
		if cell.Commit() {
			changed = append(changed, cell)
		}
	}

	return changed
}

type SettledQueue struct {
	callbacks []func()
}

func NewSettledQueue() *SettledQueue {
	return &SettledQueue{}
}

func (q *SettledQueue) Enqueue(fn func()) {
	q.callbacks = append(q.callbacks, fn)
}

func (q *SettledQueue) Run() {
	callbacks := q.callbacks
	q.callbacks = nil

	for _, cb := range callbacks {
		cb()
	}
}
