package core

// Delta is a signed unit change: one value's membership count moved by
// one in this direction. It carries no magnitude beyond unit.
type Delta int

const (
	// Insert indicates a value's multiplicity increased by one.
	Insert Delta = 1
	// Retract indicates a value's multiplicity decreased by one.
	Retract Delta = -1
)

// String returns a human-readable name for the delta.
func (d Delta) String() string {
	switch d {
	case Insert:
		return "insert"
	case Retract:
		return "retract"
	default:
		return "unknown"
	}
}

// Change is the atomic unit of communication between dataflow nodes:
// a value paired with the direction its membership moved.
type Change[T any] struct {
	Value T
	Delta Delta
}

// Inserted is shorthand for an Insert change.
func Inserted[T any](value T) Change[T] {
	return Change[T]{Value: value, Delta: Insert}
}

// Retracted is shorthand for a Retract change.
func Retracted[T any](value T) Change[T] {
	return Change[T]{Value: value, Delta: Retract}
}
