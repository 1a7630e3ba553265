package observe_test

import (
	"testing"

	"github.com/zhy0216/dd-flow/flow/core"
	"github.com/zhy0216/dd-flow/flow/observe"
)

func TestTapSeesChangesBeforeDownstream(t *testing.T) {
	in := core.NewInput[int]()
	var tapped []core.Change[int]
	c := observe.Tap[int](in, func(ch core.Change[int]) {
		tapped = append(tapped, ch)
	})

	var downstream []core.Change[int]
	cancel := c.Subscribe(func(ch core.Change[int]) {
		if len(tapped) != len(downstream)+1 {
			t.Errorf("tap ran after downstream delivery")
		}
		downstream = append(downstream, ch)
	})
	defer cancel()

	in.Insert(1)
	in.Retract(1)
	if len(tapped) != 2 || len(downstream) != 2 {
		t.Fatalf("tapped %d, downstream %d, want 2/2", len(tapped), len(downstream))
	}
}

func TestCount(t *testing.T) {
	in := core.NewInput[int]()
	counted, counter := observe.Count[int](in)

	cancel := counted.Subscribe(func(core.Change[int]) {})
	defer cancel()

	in.Insert(1)
	in.Insert(2)
	in.Retract(1)

	if counter.Inserts() != 2 {
		t.Errorf("Inserts() = %d, want 2", counter.Inserts())
	}
	if counter.Retracts() != 1 {
		t.Errorf("Retracts() = %d, want 1", counter.Retracts())
	}
	if counter.Net() != 1 {
		t.Errorf("Net() = %d, want 1", counter.Net())
	}
}

func TestMeterReportsOnTeardown(t *testing.T) {
	in := core.NewInputOf([]int{1, 2, 3})

	var got observe.CollectionMetrics
	done := false
	metered := observe.Meter[int](in, func(m observe.CollectionMetrics) {
		got = m
		done = true
	})

	cancel := metered.Subscribe(func(core.Change[int]) {})
	in.Insert(4)
	in.Retract(1)
	if done {
		t.Fatal("metrics delivered before teardown")
	}

	cancel()
	if !done {
		t.Fatal("metrics not delivered on teardown")
	}
	if got.TotalChanges != 5 {
		t.Errorf("TotalChanges = %d, want 5 (3 replay + 2 live)", got.TotalChanges)
	}
	if got.InsertCount != 4 || got.RetractCount != 1 {
		t.Errorf("counts = %d/%d, want 4/1", got.InsertCount, got.RetractCount)
	}
	if got.EndTime.Before(got.StartTime) {
		t.Error("EndTime before StartTime")
	}
	if got.FirstChangeTime.IsZero() || got.LastChangeTime.IsZero() {
		t.Error("change times not recorded")
	}
}

func TestMeterEmptySubscription(t *testing.T) {
	in := core.NewInput[int]()
	var got observe.CollectionMetrics
	metered := observe.Meter[int](in, func(m observe.CollectionMetrics) { got = m })

	cancel := metered.Subscribe(func(core.Change[int]) {})
	cancel()

	if got.TotalChanges != 0 || got.ChangesPerSecond != 0 {
		t.Fatalf("metrics for empty subscription: %+v", got)
	}
}
