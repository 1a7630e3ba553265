// Package flow provides an incremental computation engine: a graph of
// composable operators over collections whose contents are communicated
// as a stream of signed unit changes rather than snapshots. Consumers
// subscribe to a collection and receive only the deltas needed to keep
// derived state correct, doing work proportional to the size of a
// change rather than the size of the data.
//
// This package is the primary user-facing API. The flow/core subpackage
// holds the low-level primitives; pairing and relational operators live
// in flow/combine, incremental aggregation in flow/aggregate, and
// reactive context bundles in flow/flowctx.
package flow

import (
	"github.com/zhy0216/dd-flow/flow/core"
)

// Type aliases for core abstractions. These allow users to work with
// the engine without importing core directly.
type (
	// Delta is a signed unit change, Insert or Retract.
	Delta = core.Delta

	// Change is a (value, delta) pair, the atomic unit of communication
	// between dataflow nodes.
	Change[T any] = core.Change[T]

	// Collection is a dataflow node representing a multiset observed
	// only via its change stream.
	Collection[T comparable] = core.Collection[T]

	// Handler receives one change from a collection.
	Handler[T any] = core.Handler[T]

	// UnsubscribeFunc tears down a subscription and its upstream state.
	UnsubscribeFunc = core.UnsubscribeFunc

	// Input is the mutable root collection type.
	Input[T comparable] = core.Input[T]

	// Scheduler batches emissions into transactions.
	Scheduler = core.Scheduler
)

// Delta directions.
const (
	Insert  = core.Insert
	Retract = core.Retract
)

// Construction primitives.

// From builds a base collection from an initial slice.
func From[T comparable](items []T) Collection[T] {
	return core.From(items)
}

// Concat builds the union of all changes from all sources, with no
// deduplication.
func Concat[T comparable](collections ...Collection[T]) Collection[T] {
	return core.Concat(collections...)
}

// Derive builds a derived collection from a subscribe function.
func Derive[T comparable](subscribe func(Handler[T]) UnsubscribeFunc) Collection[T] {
	return core.Derive(subscribe)
}

// NewInput creates an empty mutable collection.
func NewInput[T comparable](opts ...core.InputOption) *Input[T] {
	return core.NewInput[T](opts...)
}

// NewInputOf creates an Input seeded with the given values.
func NewInputOf[T comparable](items []T, opts ...core.InputOption) *Input[T] {
	return core.NewInputOf(items, opts...)
}

// WithScheduler routes an input's emissions through the given scheduler.
func WithScheduler(s *Scheduler) core.InputOption {
	return core.WithScheduler(s)
}

// Tx runs fn as a transaction on the default scheduler: emissions
// scheduled during fn are queued and delivered together when the
// outermost Tx returns.
func Tx(fn func()) { core.Tx(fn) }

// Core operators.

// Map emits (f(v), d) for each upstream change (v, d).
func Map[T, U comparable](c Collection[T], f func(T) U) Collection[U] {
	return core.Map(c, f)
}

// Filter passes a change through only if the predicate holds at the
// time of the change.
func Filter[T comparable](c Collection[T], predicate func(T) bool) Collection[T] {
	return core.Filter(c, predicate)
}

// FlatMap invokes f once per currently present upstream item and
// forwards every change from the returned inner collection downstream.
func FlatMap[T, U comparable](c Collection[T], f func(T) Collection[U]) Collection[U] {
	return core.FlatMap(c, f)
}
