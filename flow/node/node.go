// Package node defines the display-node record the rendering
// collaborator consumes. The engine itself is generic and agnostic to
// this shape; the renderer expects exactly these fields when it
// subscribes to a Collection[*Node] and turns Insert changes into added
// or patched visual elements and Retract changes into removals.
package node

import (
	"github.com/oklog/ulid/v2"

	"github.com/zhy0216/dd-flow/flow/core"
)

// ID is a stable node identifier. ULIDs from the same source are
// ordered by creation time, which keeps sibling allocation cheap.
type ID string

// NewID returns a fresh identifier.
func NewID() ID { return ID(ulid.Make().String()) }

// Producer yields a node's nested children as a collection.
type Producer func() core.Collection[*Node]

// Node is one display node. Nodes are tracked by pointer identity in
// collections and treated as immutable once inserted; field updates go
// through Input.Replace with a fresh node.
type Node struct {
	// ID is the node's stable identity.
	ID ID
	// Parent references the owning node's identity; empty for roots.
	Parent ID
	// Order is the node's sibling order index.
	Order int
	// Tag is the primitive element name. Empty when Producer is set.
	Tag string
	// Producer yields nested children instead of a primitive element.
	Producer Producer
	// Attrs is the attribute and handler bag.
	Attrs map[string]any
	// Text is the optional text content.
	Text string
}

// Element reports whether the node is a primitive element rather than a
// nested producer.
func (n *Node) Element() bool { return n.Producer == nil }

// El constructs a primitive element node with a fresh identity.
func El(tag string, order int, attrs map[string]any, text string) *Node {
	return &Node{
		ID:    NewID(),
		Order: order,
		Tag:   tag,
		Attrs: attrs,
		Text:  text,
	}
}

// Nested constructs a producer node with a fresh identity.
func Nested(order int, producer Producer) *Node {
	return &Node{
		ID:       NewID(),
		Order:    order,
		Producer: producer,
	}
}

// Under returns the node reparented beneath parent. It mutates and
// returns n for construction-time chaining.
func (n *Node) Under(parent ID) *Node {
	n.Parent = parent
	return n
}
