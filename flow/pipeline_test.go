package flow_test

import (
	"testing"

	"github.com/zhy0216/dd-flow/flow"
	"github.com/zhy0216/dd-flow/flow/aggregate"
	"github.com/zhy0216/dd-flow/flow/combine"
	"github.com/zhy0216/dd-flow/flow/core"
)

type author struct {
	id   int
	name string
}

type article struct {
	authorID int
	words    int
}

// End-to-end: a join feeding an incremental aggregate, driven through
// transactions, with the implied state checked against a direct
// computation after every mutation batch.
func TestJoinReducePipeline(t *testing.T) {
	sched := &core.Scheduler{}
	authors := flow.NewInput[*author](flow.WithScheduler(sched))
	articles := flow.NewInput[*article](flow.WithScheduler(sched))

	joined := combine.Join(authors, articles,
		func(a *author) int { return a.id },
		func(ar *article) int { return ar.authorID },
	)
	words := flow.Map(joined, func(p combine.Pair[*author, *article]) int {
		return p.Second.words
	})
	total := aggregate.Reduce(words, 0, func(state, item int, delta flow.Delta) int {
		if delta == flow.Insert {
			return state + item
		}
		return state - item
	})

	current := 0
	seen := false
	cancel := total.Subscribe(func(ch flow.Change[int]) {
		if ch.Delta == flow.Insert {
			current = ch.Value
			seen = true
		}
	})
	defer cancel()

	expected := func() int {
		n := 0
		for _, a := range authors.GetAll() {
			for _, ar := range articles.GetAll() {
				if ar.authorID == a.id {
					n += ar.words
				}
			}
		}
		return n
	}

	alice := &author{id: 1, name: "alice"}
	bob := &author{id: 2, name: "bob"}

	sched.Tx(func() {
		authors.Insert(alice)
		authors.Insert(bob)
		articles.Insert(&article{authorID: 1, words: 100})
		articles.Insert(&article{authorID: 1, words: 50})
		articles.Insert(&article{authorID: 2, words: 30})
	})
	if !seen || current != expected() {
		t.Fatalf("after first batch: total = %d, want %d", current, expected())
	}

	sched.Tx(func() {
		authors.Retract(alice)
		articles.Insert(&article{authorID: 2, words: 20})
	})
	if current != expected() {
		t.Fatalf("after second batch: total = %d, want %d", current, expected())
	}
	if current != 50 {
		t.Fatalf("total = %d, want 50 (bob's articles only)", current)
	}
}

// A torn-down subscription stops all delivery, including from inner
// flat-map subscriptions and joined sides.
func TestTeardownStopsPipeline(t *testing.T) {
	outer := flow.NewInput[int]()
	inner := flow.NewInput[int]()

	flat := flow.FlatMap(outer, func(int) flow.Collection[int] { return inner })

	delivered := 0
	cancel := flat.Subscribe(func(flow.Change[int]) { delivered++ })

	outer.Insert(1)
	inner.Insert(10)
	if delivered != 1 {
		t.Fatalf("delivered = %d, want 1", delivered)
	}

	cancel()
	inner.Insert(20)
	outer.Insert(2)
	inner.Insert(30)
	if delivered != 1 {
		t.Fatalf("delivery after teardown: %d changes", delivered)
	}
}
