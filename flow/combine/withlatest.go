// Package combine provides operators that pair or gate one collection
// against the current value of another: latest-value pairing, context
// gating, and the incremental equi-join.
package combine

import (
	"github.com/zhy0216/dd-flow/flow/core"
)

// Pair is an ordered tuple of values from two collections.
type Pair[A, B comparable] struct {
	First  A
	Second B
}

// WithLatest pairs every upstream item with the latest value seen from
// other. Only the most recent Insert from other counts; its retracts do
// not update the latest. While no value has arrived from other, nothing
// is emitted (upstream items are still tracked as current). Whenever
// the latest value changes, every currently tracked item is retracted
// with its old tuple and re-inserted with the new one, a re-emission
// proportional to the number of tracked items.
func WithLatest[T, U comparable](c core.Collection[T], other core.Collection[U]) core.Collection[Pair[T, U]] {
	return core.Derive(func(h core.Handler[Pair[T, U]]) core.UnsubscribeFunc {
		var latest U
		hasLatest := false
		var items []T
		emitted := make(map[T]Pair[T, U])

		cancelOther := other.Subscribe(func(ch core.Change[U]) {
			if ch.Delta != core.Insert {
				return
			}
			first := !hasLatest
			latest = ch.Value
			hasLatest = true
			if first {
				for _, item := range items {
					p := Pair[T, U]{First: item, Second: latest}
					emitted[item] = p
					h(core.Inserted(p))
				}
				return
			}
			// Retract every old tuple before re-inserting any new one.
			for _, item := range items {
				h(core.Retracted(emitted[item]))
			}
			for _, item := range items {
				p := Pair[T, U]{First: item, Second: latest}
				emitted[item] = p
				h(core.Inserted(p))
			}
		})

		cancelUpstream := c.Subscribe(func(ch core.Change[T]) {
			switch ch.Delta {
			case core.Insert:
				if contains(items, ch.Value) {
					// Duplicate delta for an identity already tracked.
					return
				}
				items = append(items, ch.Value)
				if hasLatest {
					p := Pair[T, U]{First: ch.Value, Second: latest}
					emitted[ch.Value] = p
					h(core.Inserted(p))
				}
			case core.Retract:
				removeFirst(&items, ch.Value)
				if p, ok := emitted[ch.Value]; ok {
					delete(emitted, ch.Value)
					h(core.Retracted(p))
				}
			}
		})

		return func() {
			cancelUpstream()
			cancelOther()
		}
	})
}

// contains reports whether v occurs in list.
func contains[T comparable](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
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
