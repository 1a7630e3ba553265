// Package core defines the primitives of the incremental computation
// engine: signed unit changes, the collection abstraction and its
// subscription protocol, the basic operators, the mutable Input root,
// and transactional emission scheduling. Higher-level operators build
// on these in the combine, aggregate, and flowctx packages.
//
// The engine is synchronous, single-goroutine, and push-only: every
// mutation delivers its deltas to all current subscribers before
// returning (or, inside a transaction, at the end of the transaction,
// still on the calling goroutine).
//
// NOTE: this package should have no dependencies outside the standard
// library, including other flow packages.
package core

// Handler receives one change from a collection.
type Handler[T any] func(Change[T])

// UnsubscribeFunc removes a subscription and tears down every upstream
// subscription and per-item state the operator was holding.
type UnsubscribeFunc func()

// Collection is a node in the dataflow graph denoting a multiset of T
// as it evolves over time, observed only through its stream of changes.
//
// Subscribing to a base collection immediately replays its current
// snapshot as a burst of Insert changes, one per member in snapshot
// order, before any live change is delivered. For any subscriber,
// folding the received changes always yields the collection's true
// current membership.
//
// Element types are constrained comparable: membership and per-item
// bookkeeping are indexed by value identity. Use pointer types for
// compound values to get reference identity.
type Collection[T comparable] interface {
	Subscribe(Handler[T]) UnsubscribeFunc
}

// SubscribeFunc adapts a plain function to the Collection interface.
type SubscribeFunc[T comparable] func(Handler[T]) UnsubscribeFunc

// Subscribe implements Collection.
func (f SubscribeFunc[T]) Subscribe(h Handler[T]) UnsubscribeFunc { return f(h) }

// Derive builds a derived collection from a subscribe function. Derived
// collections hold no independent snapshot: they re-derive their output
// by re-running their upstream subscriptions for every new subscriber,
// so each subscription carries independent operator state.
func Derive[T comparable](subscribe func(Handler[T]) UnsubscribeFunc) Collection[T] {
	return SubscribeFunc[T](subscribe)
}

// From builds a base collection over a fixed snapshot. Every subscriber
// receives one Insert per item, in slice order. The collection has no
// mutation API; use Input for ground-truth collections that change.
func From[T comparable](items []T) Collection[T] {
	snapshot := make([]T, len(items))
	copy(snapshot, items)
	return Derive(func(h Handler[T]) UnsubscribeFunc {
		for _, v := range snapshot {
			h(Inserted(v))
		}
		return func() {}
	})
}

// Concat builds a derived collection whose output is the union of all
// changes from all sources, with no deduplication: a value inserted by
// two sources is delivered twice.
func Concat[T comparable](collections ...Collection[T]) Collection[T] {
	return Derive(func(h Handler[T]) UnsubscribeFunc {
		cancels := make([]UnsubscribeFunc, 0, len(collections))
		for _, c := range collections {
			cancels = append(cancels, c.Subscribe(h))
		}
		return func() {
			for _, cancel := range cancels {
				cancel()
			}
		}
	})
}

// removeFirst removes the first occurrence of v from list, if present.
func removeFirst[T comparable](list *[]T, v T) {
	for i, x := range *list {
		if x == v {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return
		}
	}
}
