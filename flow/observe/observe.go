// Package observe provides observability helpers for collections:
// change taps for side effects, atomic insert/retract counters, and
// per-subscription metrics. The helpers are pass-through derived
// collections; wiring their callbacks to a metrics backend (for
// example OpenTelemetry instruments) is up to the caller.
package observe

import (
	"sync/atomic"
	"time"

	"github.com/zhy0216/dd-flow/flow/core"
)

// Tap returns a collection that hands every change to fn before
// delivering it downstream. fn runs for side effects only.
func Tap[T comparable](c core.Collection[T], fn func(core.Change[T])) core.Collection[T] {
	return core.Derive(func(h core.Handler[T]) core.UnsubscribeFunc {
		return c.Subscribe(func(ch core.Change[T]) {
			fn(ch)
			h(ch)
		})
	})
}

// Counter counts inserts and retracts across all subscriptions of a
// counted collection. Safe for concurrent reads.
type Counter struct {
	inserts  atomic.Int64
	retracts atomic.Int64
}

// Inserts returns the number of Insert changes observed.
func (c *Counter) Inserts() int64 { return c.inserts.Load() }

// Retracts returns the number of Retract changes observed.
func (c *Counter) Retracts() int64 { return c.retracts.Load() }

// Net returns inserts minus retracts, the implied current size.
func (c *Counter) Net() int64 { return c.inserts.Load() - c.retracts.Load() }

// Count wraps a collection with a counting tap and returns the counter
// for querying.
func Count[T comparable](c core.Collection[T]) (core.Collection[T], *Counter) {
	counter := &Counter{}
	counted := Tap(c, func(ch core.Change[T]) {
		if ch.Delta == core.Insert {
			counter.inserts.Add(1)
		} else {
			counter.retracts.Add(1)
		}
	})
	return counted, counter
}

// CollectionMetrics holds statistics about one subscription's lifetime.
type CollectionMetrics struct {
	// Counts
	TotalChanges int64
	InsertCount  int64
	RetractCount int64

	// Timing
	StartTime       time.Time
	EndTime         time.Time
	FirstChangeTime time.Time
	LastChangeTime  time.Time

	// Throughput
	ChangesPerSecond float64
}

// Meter returns a collection that records metrics per subscription and
// hands the final metrics to onComplete when the subscription is torn
// down.
func Meter[T comparable](c core.Collection[T], onComplete func(CollectionMetrics)) core.Collection[T] {
	return core.Derive(func(h core.Handler[T]) core.UnsubscribeFunc {
		metrics := CollectionMetrics{StartTime: time.Now()}
		cancel := c.Subscribe(func(ch core.Change[T]) {
			now := time.Now()
			metrics.TotalChanges++
			if ch.Delta == core.Insert {
				metrics.InsertCount++
			} else {
				metrics.RetractCount++
			}
			if metrics.TotalChanges == 1 {
				metrics.FirstChangeTime = now
			}
			metrics.LastChangeTime = now
			h(ch)
		})
		return func() {
			cancel()
			metrics.EndTime = time.Now()
			if metrics.TotalChanges > 0 {
				duration := metrics.EndTime.Sub(metrics.StartTime).Seconds()
				if duration > 0 {
					metrics.ChangesPerSecond = float64(metrics.TotalChanges) / duration
				}
			}
			if onComplete != nil {
				onComplete(metrics)
			}
		}
	})
}
