package core

// Map builds a derived collection that emits (f(v), d) for each
// upstream change (v, d). Pure and stateless: f runs once per delta,
// not once per distinct value, so it is expected to be referentially
// transparent.
func Map[T, U comparable](c Collection[T], f func(T) U) Collection[U] {
	return Derive(func(h Handler[U]) UnsubscribeFunc {
		return c.Subscribe(func(ch Change[T]) {
			h(Change[U]{Value: f(ch.Value), Delta: ch.Delta})
		})
	})
}

// Filter builds a derived collection that passes a change through only
// if the predicate holds at the time of the change. The predicate is
// evaluated per delta rather than maintained as state: it must be
// stable for a given value's lifetime, or the insert and its later
// retract may be filtered inconsistently.
func Filter[T comparable](c Collection[T], predicate func(T) bool) Collection[T] {
	return Derive(func(h Handler[T]) UnsubscribeFunc {
		return c.Subscribe(func(ch Change[T]) {
			if predicate(ch.Value) {
				h(ch)
			}
		})
	})
}

// flatMapItem tracks one upstream item's inner subscription and the
// inner values currently live for it.
type flatMapItem[U comparable] struct {
	cancel UnsubscribeFunc
	live   []U
}

// FlatMap builds a derived collection that invokes f once per currently
// present upstream item and forwards every change from the returned
// inner collection downstream.
//
// On upstream insert, the inner collection is subscribed and its live
// values tracked per item. On upstream retract, the inner subscription
// is cancelled and a synthetic Retract is emitted for every inner value
// still live for that item, so the consumer never keeps a stale row
// after its owning outer item disappears, whether or not the inner
// collection ever retracted those values itself.
//
// For auto-injection of reactive contexts, use flowctx.FlatMap.
func FlatMap[T, U comparable](c Collection[T], f func(T) Collection[U]) Collection[U] {
	return Derive(func(h Handler[U]) UnsubscribeFunc {
		items := make(map[T]*flatMapItem[U])
		cancelUpstream := c.Subscribe(func(ch Change[T]) {
			switch ch.Delta {
			case Insert:
				if _, ok := items[ch.Value]; ok {
					// Duplicate delta for an identity already tracked.
					return
				}
				item := &flatMapItem[U]{}
				items[ch.Value] = item
				item.cancel = f(ch.Value).Subscribe(func(inner Change[U]) {
					if inner.Delta == Insert {
						item.live = append(item.live, inner.Value)
					} else {
						removeFirst(&item.live, inner.Value)
					}
					h(inner)
				})
			case Retract:
				item, ok := items[ch.Value]
				if !ok {
					return
				}
				delete(items, ch.Value)
				item.cancel()
				for _, v := range item.live {
					h(Retracted(v))
				}
				item.live = nil
			}
		})
		return func() {
			cancelUpstream()
			for _, item := range items {
				item.cancel()
			}
			clear(items)
		}
	})
}
