package combine

import (
	"github.com/zhy0216/dd-flow/flow/core"
)

// Join builds the incremental equi-join of two collections. It keeps a
// hash index per side, keyed by the respective key function and mapping
// each key to the rows currently present on that side. An insert on one
// side emits an Insert pair for every matching row on the opposite side
// (in that side's insertion order); a retract removes the row from its
// index (first match) and emits a Retract pair for every row still
// matching. Duplicate Insert deltas for an already indexed row and
// retracts of absent rows are ignored, mirroring Input's set-backed
// membership. The cost of a single-row change is proportional to the
// number of matching opposite rows, not to the full join size.
func Join[A, B, K comparable](left core.Collection[A], right core.Collection[B], leftKey func(A) K, rightKey func(B) K) core.Collection[Pair[A, B]] {
	return core.Derive(func(h core.Handler[Pair[A, B]]) core.UnsubscribeFunc {
		leftIndex := make(map[K][]A)
		rightIndex := make(map[K][]B)

		cancelLeft := left.Subscribe(func(ch core.Change[A]) {
			k := leftKey(ch.Value)
			switch ch.Delta {
			case core.Insert:
				if contains(leftIndex[k], ch.Value) {
					// Duplicate delta for a row already indexed.
					return
				}
				leftIndex[k] = append(leftIndex[k], ch.Value)
				for _, b := range rightIndex[k] {
					h(core.Inserted(Pair[A, B]{First: ch.Value, Second: b}))
				}
			case core.Retract:
				rows := leftIndex[k]
				if !contains(rows, ch.Value) {
					return
				}
				removeFirst(&rows, ch.Value)
				leftIndex[k] = rows
				for _, b := range rightIndex[k] {
					h(core.Retracted(Pair[A, B]{First: ch.Value, Second: b}))
				}
			}
		})

		cancelRight := right.Subscribe(func(ch core.Change[B]) {
			k := rightKey(ch.Value)
			switch ch.Delta {
			case core.Insert:
				if contains(rightIndex[k], ch.Value) {
					return
				}
				rightIndex[k] = append(rightIndex[k], ch.Value)
				for _, a := range leftIndex[k] {
					h(core.Inserted(Pair[A, B]{First: a, Second: ch.Value}))
				}
			case core.Retract:
				rows := rightIndex[k]
				if !contains(rows, ch.Value) {
					return
				}
				removeFirst(&rows, ch.Value)
				rightIndex[k] = rows
				for _, a := range leftIndex[k] {
					h(core.Retracted(Pair[A, B]{First: a, Second: ch.Value}))
				}
			}
		})

		return func() {
			cancelLeft()
			cancelRight()
		}
	})
}
