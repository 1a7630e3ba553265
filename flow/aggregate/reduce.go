// Package aggregate provides incremental aggregation over collections.
package aggregate

import (
	"github.com/zhy0216/dd-flow/flow/core"
)

// Folder combines the current aggregate state with one upstream change.
type Folder[S, T comparable] func(state S, item T, delta core.Delta) S

// Reduce maintains a single incremental aggregate over the upstream
// collection. The result behaves as a collection holding at most one
// logical row, the current answer: on each upstream change the old
// answer (if one was ever emitted) is retracted and the new answer
// inserted. The seed only starts the fold; it is never surfaced as a
// row, so nothing is emitted before the first upstream delta.
//
// Reduce is a multicast node: one shared upstream subscription feeds an
// aggregate that is independent of the subscriber count, and a late
// subscriber receives exactly Insert(currentState) as its replay. The
// upstream subscription starts with the first subscriber and is torn
// down, with the aggregate reset, when the last one unsubscribes.
func Reduce[T, S comparable](c core.Collection[T], seed S, fold Folder[S, T]) core.Collection[S] {
	return &reduceNode[T, S]{
		upstream: c,
		seed:     seed,
		fold:     fold,
		state:    seed,
	}
}

type reduceNode[T, S comparable] struct {
	upstream core.Collection[T]
	seed     S
	fold     Folder[S, T]

	state          S
	emitted        bool
	subs           []*reduceSub[S]
	nextID         int
	cancelUpstream core.UnsubscribeFunc
}

type reduceSub[S comparable] struct {
	id      int
	handler core.Handler[S]
}

// Subscribe implements core.Collection.
func (n *reduceNode[T, S]) Subscribe(h core.Handler[S]) core.UnsubscribeFunc {
	if n.emitted {
		h(core.Inserted(n.state))
	}
	sub := &reduceSub[S]{id: n.nextID, handler: h}
	n.nextID++
	n.subs = append(n.subs, sub)
	if n.cancelUpstream == nil {
		// The first subscriber is already registered, so it sees the
		// answers produced while the upstream snapshot replays.
		n.cancelUpstream = n.upstream.Subscribe(n.apply)
	}
	return func() {
		for i, s := range n.subs {
			if s.id == sub.id {
				n.subs = append(n.subs[:i], n.subs[i+1:]...)
				break
			}
		}
		if len(n.subs) == 0 && n.cancelUpstream != nil {
			n.cancelUpstream()
			n.cancelUpstream = nil
			n.state = n.seed
			n.emitted = false
		}
	}
}

func (n *reduceNode[T, S]) apply(ch core.Change[T]) {
	next := n.fold(n.state, ch.Value, ch.Delta)
	if n.emitted {
		n.broadcast(core.Retracted(n.state))
	}
	n.state = next
	n.emitted = true
	n.broadcast(core.Inserted(n.state))
}

func (n *reduceNode[T, S]) broadcast(ch core.Change[S]) {
	subs := make([]*reduceSub[S], len(n.subs))
	copy(subs, n.subs)
	for _, s := range subs {
		s.handler(ch)
	}
}
