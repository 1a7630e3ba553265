package flow

import (
	"github.com/zhy0216/dd-flow/flow/core"
)

// Operator transforms one collection into another. Operators can be
// composed to build pipelines without naming every intermediate
// collection.
type Operator[IN, OUT comparable] func(Collection[IN]) Collection[OUT]

// Through chains two operators together, creating a new operator that
// first applies op1 and then op2 to the collection.
func Through[IN, MID, OUT comparable](op1 Operator[IN, MID], op2 Operator[MID, OUT]) Operator[IN, OUT] {
	return func(c Collection[IN]) Collection[OUT] {
		return op2(op1(c))
	}
}

// Chain composes multiple operators of the same type into a single
// operator, applied in order from left to right. With no operators it
// returns the identity.
func Chain[T comparable](ops ...Operator[T, T]) Operator[T, T] {
	return func(c Collection[T]) Collection[T] {
		for _, op := range ops {
			c = op(c)
		}
		return c
	}
}

// Pipe applies a series of operators to a collection, returning the
// final collection.
func Pipe[T comparable](c Collection[T], ops ...Operator[T, T]) Collection[T] {
	for _, op := range ops {
		c = op(c)
	}
	return c
}

// Mapped lifts a map function into an Operator.
func Mapped[IN, OUT comparable](f func(IN) OUT) Operator[IN, OUT] {
	return func(c Collection[IN]) Collection[OUT] {
		return core.Map(c, f)
	}
}

// Filtered lifts a predicate into an Operator.
func Filtered[T comparable](predicate func(T) bool) Operator[T, T] {
	return func(c Collection[T]) Collection[T] {
		return core.Filter(c, predicate)
	}
}

// FlatMapped lifts an item function into an Operator.
func FlatMapped[IN, OUT comparable](f func(IN) Collection[OUT]) Operator[IN, OUT] {
	return func(c Collection[IN]) Collection[OUT] {
		return core.FlatMap(c, f)
	}
}
