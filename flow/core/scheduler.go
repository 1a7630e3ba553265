package core

// Scheduler is the single choke point every Input mutation routes its
// emission through. Outside a transaction, emissions run immediately;
// inside one, they are queued and flushed in scheduling order when the
// outermost transaction exits.
//
// Transactions nest: the scheduler keeps a re-entrant depth counter
// rather than a single batching flag, so an inner Tx exiting does not
// release the outer transaction's queue early. The queue is flushed
// even when the transaction body panics, as part of the unwind.
//
// A Scheduler is not safe for concurrent use; the engine is a
// single-goroutine design.
type Scheduler struct {
	depth   int
	pending []func()
}

// Schedule runs emit immediately, or queues it when a transaction is
// active on this scheduler.
func (s *Scheduler) Schedule(emit func()) {
	if s.depth > 0 {
		s.pending = append(s.pending, emit)
		return
	}
	emit()
}

// Tx runs fn as a transaction: every emission scheduled during fn is
// queued and delivered, in scheduling order, when the outermost Tx
// returns. Mutations inside fn still update membership immediately;
// only delivery to subscribers is deferred, so the deltas of a
// transaction reach each subscriber back to back.
func (s *Scheduler) Tx(fn func()) {
	s.depth++
	defer func() {
		s.depth--
		if s.depth == 0 {
			s.flush()
		}
	}()
	fn()
}

func (s *Scheduler) flush() {
	// Emissions may schedule further emissions while flushing.
	for len(s.pending) > 0 {
		queue := s.pending
		s.pending = nil
		for _, emit := range queue {
			emit()
		}
	}
}

// DefaultScheduler is the process-wide scheduler used by NewInput
// unless overridden with WithScheduler.
var DefaultScheduler = &Scheduler{}

// Tx runs fn as a transaction on the DefaultScheduler.
func Tx(fn func()) { DefaultScheduler.Tx(fn) }
