package flowctx

import (
	"sort"

	"github.com/zhy0216/dd-flow/flow/core"
)

// Record is one merged observation of every named member of a context.
// Records are immutable after emission and tracked by pointer identity
// in downstream collections.
type Record struct {
	fields map[string]any
}

// Get returns the record's value for name, or nil. Safe on a nil
// record, so readers need not guard against "no value yet".
func (r *Record) Get(name string) any {
	if r == nil {
		return nil
	}
	return r.fields[name]
}

// Names returns the record's member names, sorted.
func (r *Record) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.fields))
	for name := range r.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Member is a named, type-erased collection feeding a context.
type Member struct {
	name      string
	subscribe func(func(value any, delta core.Delta)) core.UnsubscribeFunc
}

// Value names a typed collection as a context member. Any collection
// works; Inputs are the usual members.
func Value[T comparable](name string, c core.Collection[T]) Member {
	return Member{
		name: name,
		subscribe: func(h func(any, core.Delta)) core.UnsubscribeFunc {
			return c.Subscribe(func(ch core.Change[T]) {
				h(ch.Value, ch.Delta)
			})
		},
	}
}

// Context merges named members into a single Collection[*Record] and
// keeps a synchronously readable current value. The combined collection
// waits until every member has produced a value, then maintains one
// current record, retracting the old and inserting the new whenever any
// member changes. This matches chaining each member in with
// latest-value pairing: the first member seeds the record, each
// subsequent member is paired in via its latest value.
type Context struct {
	reg      *Registry
	members  []Member
	combined core.Collection[*Record]
	current  *Record
	cancel   core.UnsubscribeFunc
	disposed bool
}

// New builds a context over the given members and registers it for
// auto-injection. Contexts are disposed explicitly with Dispose.
func New(reg *Registry, members ...Member) *Context {
	c := &Context{reg: reg, members: members}
	c.combined = core.Derive(c.subscribeCombined)
	// Internal subscription backing the synchronous reads.
	c.cancel = c.combined.Subscribe(func(ch core.Change[*Record]) {
		if ch.Delta == core.Insert {
			c.current = ch.Value
		}
	})
	reg.add(c)
	return c
}

func (c *Context) subscribeCombined(h core.Handler[*Record]) core.UnsubscribeFunc {
	latest := make(map[string]any, len(c.members))
	var current *Record
	cancels := make([]core.UnsubscribeFunc, 0, len(c.members))
	for _, member := range c.members {
		name := member.name
		cancels = append(cancels, member.subscribe(func(v any, d core.Delta) {
			if d != core.Insert {
				// Member retracts do not update the latest value.
				return
			}
			latest[name] = v
			if len(latest) < len(c.members) {
				return
			}
			if current != nil {
				h(core.Retracted(current))
			}
			fields := make(map[string]any, len(latest))
			for k, value := range latest {
				fields[k] = value
			}
			current = &Record{fields: fields}
			h(core.Inserted(current))
		}))
	}
	return func() {
		for _, cancel := range cancels {
			cancel()
		}
	}
}

// Collection returns the merged record collection.
func (c *Context) Collection() core.Collection[*Record] { return c.combined }

// Get synchronously reads the current value of the named member,
// outside of any delta callback. It returns nil until every member has
// produced a value.
func (c *Context) Get(name string) any { return c.current.Get(name) }

// Dispose removes the context's registration and stops its internal
// subscription. Pipelines built with FlatMap after disposal no longer
// auto-detect this context; pipelines built before retain the combined
// collection they already captured.
func (c *Context) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.cancel()
	c.reg.remove(c)
}
