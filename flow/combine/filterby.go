package combine

import (
	"github.com/zhy0216/dd-flow/flow/core"
)

// FilterBy gates upstream changes on the latest value seen from
// context. Unlike WithLatest it never re-evaluates already-passed items
// when the context changes: only new upstream deltas are tested against
// the current snapshot, making it a narrower, cheaper primitive than
// WithLatest plus Filter. Deltas arriving before any context value are
// dropped.
func FilterBy[T, C comparable](c core.Collection[T], context core.Collection[C], predicate func(item T, current C) bool) core.Collection[T] {
	return core.Derive(func(h core.Handler[T]) core.UnsubscribeFunc {
		var latest C
		hasLatest := false

		cancelContext := context.Subscribe(func(ch core.Change[C]) {
			if ch.Delta == core.Insert {
				latest = ch.Value
				hasLatest = true
			}
		})

		cancelUpstream := c.Subscribe(func(ch core.Change[T]) {
			if !hasLatest {
				return
			}
			if predicate(ch.Value, latest) {
				h(ch)
			}
		})

		return func() {
			cancelUpstream()
			cancelContext()
		}
	})
}
