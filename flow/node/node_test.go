package node_test

import (
	"testing"

	"github.com/zhy0216/dd-flow/flow/core"
	"github.com/zhy0216/dd-flow/flow/node"
)

func TestNewIDUnique(t *testing.T) {
	seen := make(map[node.ID]struct{})
	for i := 0; i < 1000; i++ {
		id := node.NewID()
		if id == "" {
			t.Fatal("empty id")
		}
		if _, ok := seen[id]; ok {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = struct{}{}
	}
}

func TestEl(t *testing.T) {
	n := node.El("div", 2, map[string]any{"class": "row"}, "hello")
	if !n.Element() {
		t.Error("El() produced a non-element node")
	}
	if n.Tag != "div" || n.Order != 2 || n.Text != "hello" {
		t.Errorf("unexpected fields: %+v", n)
	}
	if n.Attrs["class"] != "row" {
		t.Errorf("Attrs = %v", n.Attrs)
	}
	if n.ID == "" {
		t.Error("missing identity")
	}
}

func TestNestedAndUnder(t *testing.T) {
	parent := node.El("ul", 0, nil, "")
	n := node.Nested(1, func() core.Collection[*node.Node] {
		return core.From([]*node.Node{node.El("li", 0, nil, "item")})
	}).Under(parent.ID)

	if n.Element() {
		t.Error("Nested() produced an element node")
	}
	if n.Parent != parent.ID {
		t.Errorf("Parent = %s, want %s", n.Parent, parent.ID)
	}

	var children []*node.Node
	cancel := n.Producer().Subscribe(func(ch core.Change[*node.Node]) {
		children = append(children, ch.Value)
	})
	defer cancel()
	if len(children) != 1 || children[0].Tag != "li" {
		t.Fatalf("producer yielded %v", children)
	}
}

func TestNodesInCollections(t *testing.T) {
	// Nodes participate in collections by pointer identity.
	in := core.NewInput[*node.Node]()
	a := node.El("span", 0, nil, "a")
	b := node.El("span", 0, nil, "a") // same shape, distinct identity

	in.Insert(a)
	in.Insert(b)
	if in.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 distinct identities", in.Len())
	}

	in.Retract(a)
	if got, _ := in.Get(); got != b {
		t.Fatalf("Get() = %v, want b", got)
	}
}
