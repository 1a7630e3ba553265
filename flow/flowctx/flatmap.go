package flowctx

import (
	"github.com/zhy0216/dd-flow/flow/core"
)

// FlatMap is the context-aware flat-map. It captures the registry's
// contexts at call time; with none registered it degrades to
// core.FlatMap. Otherwise the stage subscribes to the merged context
// collections in addition to upstream: upstream membership arriving
// before the first context value is queued unprocessed; the first
// context value processes the whole queue; and every subsequent context
// change retracts and reprocesses (re-invoking f) every currently live
// upstream item, so each item's inner collection is rebuilt against the
// new context values. A context change therefore costs O(current item
// count).
func FlatMap[T, U comparable](reg *Registry, c core.Collection[T], f func(T) core.Collection[U]) core.Collection[U] {
	captured := reg.Contexts()
	if len(captured) == 0 {
		return core.FlatMap(c, f)
	}
	merged := make([]core.Collection[*Record], len(captured))
	for i, ctx := range captured {
		merged[i] = ctx.Collection()
	}
	contextChanges := core.Concat(merged...)

	return core.Derive(func(h core.Handler[U]) core.UnsubscribeFunc {
		type itemState struct {
			cancel core.UnsubscribeFunc
			live   []U
		}
		ready := false
		var order []T
		states := make(map[T]*itemState)

		start := func(item T) {
			if _, ok := states[item]; ok {
				return
			}
			st := &itemState{}
			states[item] = st
			st.cancel = f(item).Subscribe(func(inner core.Change[U]) {
				if inner.Delta == core.Insert {
					st.live = append(st.live, inner.Value)
				} else {
					removeFirst(&st.live, inner.Value)
				}
				h(inner)
			})
		}
		stop := func(item T) {
			st, ok := states[item]
			if !ok {
				return
			}
			delete(states, item)
			st.cancel()
			for _, v := range st.live {
				h(core.Retracted(v))
			}
			st.live = nil
		}

		cancelContext := contextChanges.Subscribe(func(ch core.Change[*Record]) {
			if ch.Delta != core.Insert {
				return
			}
			if !ready {
				ready = true
				for _, item := range order {
					start(item)
				}
				return
			}
			for _, item := range order {
				stop(item)
				start(item)
			}
		})

		cancelUpstream := c.Subscribe(func(ch core.Change[T]) {
			switch ch.Delta {
			case core.Insert:
				if containsItem(order, ch.Value) {
					// Duplicate delta for an identity already tracked,
					// queued or live.
					return
				}
				order = append(order, ch.Value)
				if ready {
					start(ch.Value)
				}
			case core.Retract:
				removeFirst(&order, ch.Value)
				stop(ch.Value)
			}
		})

		return func() {
			cancelUpstream()
			cancelContext()
			for _, st := range states {
				st.cancel()
			}
			clear(states)
		}
	})
}

func containsItem[T comparable](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func removeFirst[T comparable](list *[]T, v T) {
	for i, x := range *list {
		if x == v {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return
		}
	}
}
