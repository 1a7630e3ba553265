// Package flowctx implements reactive context bundles: named inputs
// merged into one combined record collection with synchronous current
// value reads, plus the registry that makes contexts auto-injectable
// into flat-map pipelines.
package flowctx

// Registry holds the contexts eligible for auto-injection. It is an
// explicit value threaded into FlatMap calls rather than ambient
// process state, keeping construction order and disposal deterministic
// and testable in isolation. Default serves programs that want the
// conventional process-wide behavior.
type Registry struct {
	contexts []*Context
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry { return &Registry{} }

// Default is the conventional process-wide registry.
var Default = NewRegistry()

// Contexts returns a snapshot of the currently registered contexts, in
// registration order.
func (r *Registry) Contexts() []*Context {
	return append([]*Context(nil), r.contexts...)
}

// Len returns the number of registered contexts.
func (r *Registry) Len() int { return len(r.contexts) }

func (r *Registry) add(c *Context) {
	r.contexts = append(r.contexts, c)
}

func (r *Registry) remove(c *Context) {
	for i, x := range r.contexts {
		if x == c {
			r.contexts = append(r.contexts[:i], r.contexts[i+1:]...)
			return
		}
	}
}
