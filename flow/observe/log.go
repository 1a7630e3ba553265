package observe

import (
	"github.com/go-logr/logr"

	"github.com/zhy0216/dd-flow/flow/core"
)

// Logged returns a collection that traces every change through the
// given logger at verbosity 1, keyed by the collection name. The core
// engine itself never logs; attach this stage where delta traffic needs
// to be visible.
func Logged[T comparable](c core.Collection[T], log logr.Logger, name string) core.Collection[T] {
	return Tap(c, func(ch core.Change[T]) {
		log.V(1).Info("change",
			"collection", name,
			"delta", ch.Delta.String(),
			"value", ch.Value,
		)
	})
}
