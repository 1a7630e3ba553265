package core

// Input is a base, mutable collection acting as ground truth at the
// root of a dataflow graph. It holds each distinct value at most once,
// in insertion order; re-inserting a present value is a no-op at the
// membership level but still emits a duplicate Insert delta.
//
// All mutation methods route their emission through the scheduler, so
// they either deliver their deltas to all current subscribers before
// returning or, inside a Tx, enqueue them for the end of the
// transaction.
type Input[T comparable] struct {
	sched   *Scheduler
	order   []T
	present map[T]struct{}
	subs    []*inputSub[T]
	nextID  int
}

type inputSub[T comparable] struct {
	id      int
	handler Handler[T]
}

// InputOption configures a new Input.
type InputOption func(*inputConfig)

type inputConfig struct {
	sched *Scheduler
}

// WithScheduler routes the input's emissions through the given
// scheduler instead of DefaultScheduler. Inputs sharing a scheduler
// share transaction scope.
func WithScheduler(s *Scheduler) InputOption {
	return func(c *inputConfig) {
		c.sched = s
	}
}

// NewInput creates an empty mutable collection.
func NewInput[T comparable](opts ...InputOption) *Input[T] {
	cfg := inputConfig{sched: DefaultScheduler}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Input[T]{
		sched:   cfg.sched,
		present: make(map[T]struct{}),
	}
}

// NewInputOf creates an Input seeded with the given values.
func NewInputOf[T comparable](items []T, opts ...InputOption) *Input[T] {
	in := NewInput[T](opts...)
	for _, v := range items {
		if _, ok := in.present[v]; ok {
			continue
		}
		in.present[v] = struct{}{}
		in.order = append(in.order, v)
	}
	return in
}

// Subscribe replays the current snapshot as a burst of Insert changes,
// one per member in insertion order, then registers the handler for
// live delivery.
//
// Replay bypasses the scheduler: a handler registered inside an open Tx
// sees membership already mutated by the transaction in its replay and
// then receives the transaction's queued deltas again at flush.
// Subscribe outside transactions to avoid the double delivery.
func (in *Input[T]) Subscribe(h Handler[T]) UnsubscribeFunc {
	for _, v := range in.order {
		h(Inserted(v))
	}
	sub := &inputSub[T]{id: in.nextID, handler: h}
	in.nextID++
	in.subs = append(in.subs, sub)
	return func() {
		for i, s := range in.subs {
			if s.id == sub.id {
				in.subs = append(in.subs[:i], in.subs[i+1:]...)
				return
			}
		}
	}
}

func (in *Input[T]) emit(ch Change[T]) {
	in.sched.Schedule(func() {
		// Deliver against a copy: a handler may unsubscribe mid-emit.
		subs := make([]*inputSub[T], len(in.subs))
		copy(subs, in.subs)
		for _, s := range subs {
			s.handler(ch)
		}
	})
}

// Insert adds v to the membership if absent and emits an Insert delta.
// The delta is emitted even when v was already present; deduplication
// happens at the membership layer only.
func (in *Input[T]) Insert(v T) {
	if _, ok := in.present[v]; !ok {
		in.present[v] = struct{}{}
		in.order = append(in.order, v)
	}
	in.emit(Inserted(v))
}

// Retract removes v from the membership and emits a Retract delta.
// Retracting an absent value is a no-op: no delta is emitted, so
// subscribers never fold a multiplicity below zero.
func (in *Input[T]) Retract(v T) {
	if _, ok := in.present[v]; !ok {
		return
	}
	delete(in.present, v)
	removeFirst(&in.order, v)
	in.emit(Retracted(v))
}

// Set retracts every currently held value, then inserts v.
func (in *Input[T]) Set(v T) {
	current := make([]T, len(in.order))
	copy(current, in.order)
	for _, old := range current {
		in.Retract(old)
	}
	in.Insert(v)
}

// Update reads the single current value, retracts it, and inserts
// f(current). It is a no-op on an empty input.
func (in *Input[T]) Update(f func(T) T) {
	current, ok := in.Get()
	if !ok {
		return
	}
	in.Retract(current)
	in.Insert(f(current))
}

// Replace retracts old and inserts new. Used for object-field updates,
// since values are otherwise treated as identity-immutable.
func (in *Input[T]) Replace(old, new T) {
	in.Retract(old)
	in.Insert(new)
}

// Get returns the first held value in insertion order.
func (in *Input[T]) Get() (T, bool) {
	if len(in.order) == 0 {
		var zero T
		return zero, false
	}
	return in.order[0], true
}

// GetAll returns the current membership in insertion order.
func (in *Input[T]) GetAll() []T {
	all := make([]T, len(in.order))
	copy(all, in.order)
	return all
}

// Find returns the first held value matching the predicate.
func (in *Input[T]) Find(predicate func(T) bool) (T, bool) {
	for _, v := range in.order {
		if predicate(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Len returns the current membership size.
func (in *Input[T]) Len() int { return len(in.order) }
