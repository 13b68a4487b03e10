package dag

import (
	"errors"
	"slices"
	"testing"
)

func build(t *testing.T, ids []string, edges [][2]string) *DAG {
	t.Helper()
	g := New()
	for _, id := range ids {
		if err := g.AddNode(Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(Edge{From: e[0], To: e[1]}); err != nil {
			t.Fatalf("AddEdge(%s, %s): %v", e[0], e[1], err)
		}
	}
	return g
}

func TestAddNode_Errors(t *testing.T) {
	g := New()
	if err := g.AddNode(Node{}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddNode(empty) = %v, want %v", err, ErrInvalidNodeID)
	}
	_ = g.AddNode(Node{ID: "a"})
	if err := g.AddNode(Node{ID: "a"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("AddNode(dup) = %v, want %v", err, ErrDuplicateNodeID)
	}
	if err := g.EnsureNode("a"); err != nil {
		t.Errorf("EnsureNode(existing) = %v", err)
	}
	if n, _ := g.Node("a"); n.Meta == nil {
		t.Error("Meta should be initialized")
	}
}

func TestAddEdge_Errors(t *testing.T) {
	g := build(t, []string{"a"}, nil)
	if err := g.AddEdge(Edge{From: "x", To: "a"}); !errors.Is(err, ErrUnknownSourceNode) {
		t.Errorf("AddEdge() = %v, want %v", err, ErrUnknownSourceNode)
	}
	if err := g.AddEdge(Edge{From: "a", To: "x"}); !errors.Is(err, ErrUnknownTargetNode) {
		t.Errorf("AddEdge() = %v, want %v", err, ErrUnknownTargetNode)
	}
}

func TestFindCycle(t *testing.T) {
	tests := []struct {
		name  string
		ids   []string
		edges [][2]string
		want  []string
	}{
		{"empty", nil, nil, nil},
		{"chain", []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}}, nil},
		{"diamond", []string{"d", "b", "c", "a"}, [][2]string{{"d", "b"}, {"d", "c"}, {"b", "a"}, {"c", "a"}}, nil},
		{"two cycle", []string{"X", "Y"}, [][2]string{{"X", "Y"}, {"Y", "X"}}, []string{"X", "Y"}},
		{"self loop", []string{"a"}, [][2]string{{"a", "a"}}, []string{"a"}},
		{"cycle off a tail", []string{"t", "a", "b"}, [][2]string{{"t", "a"}, {"a", "b"}, {"b", "a"}}, []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(t, tt.ids, tt.edges)
			if got := g.FindCycle(); !slices.Equal(got, tt.want) {
				t.Errorf("FindCycle() = %v, want %v", got, tt.want)
			}
			err := g.Validate()
			if (tt.want != nil) != errors.Is(err, ErrGraphHasCycle) {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}

func TestTopologicalSort(t *testing.T) {
	g := build(t, []string{"c", "b", "a"}, [][2]string{{"a", "b"}, {"b", "c"}})
	got, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("TopologicalSort() error: %v", err)
	}
	if want := []string{"a", "b", "c"}; !slices.Equal(got, want) {
		t.Errorf("TopologicalSort() = %v, want %v", got, want)
	}

	cyclic := build(t, []string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}})
	if _, err := cyclic.TopologicalSort(); !errors.Is(err, ErrGraphHasCycle) {
		t.Errorf("TopologicalSort(cyclic) = %v, want %v", err, ErrGraphHasCycle)
	}
}

func TestRemoveEdge(t *testing.T) {
	g := build(t, []string{"a", "b"}, [][2]string{{"a", "b"}, {"a", "b"}})
	g.RemoveEdge("a", "b")
	if g.EdgeCount() != 1 || !g.HasEdge("a", "b") {
		t.Errorf("RemoveEdge() should remove a single parallel edge, have %d", g.EdgeCount())
	}
	g.RemoveEdge("a", "b")
	if g.HasEdge("a", "b") || len(g.Parents("b")) != 0 {
		t.Error("RemoveEdge() left adjacency behind")
	}
	g.RemoveEdge("b", "a")
}

func TestSourcesSinksReachable(t *testing.T) {
	g := build(t, []string{"a", "b", "c", "d"}, [][2]string{{"a", "b"}, {"b", "c"}})

	var sources, sinks []string
	for _, n := range g.Sources() {
		sources = append(sources, n.ID)
	}
	for _, n := range g.Sinks() {
		sinks = append(sinks, n.ID)
	}
	if want := []string{"a", "d"}; !slices.Equal(sources, want) {
		t.Errorf("Sources() = %v, want %v", sources, want)
	}
	if want := []string{"c", "d"}; !slices.Equal(sinks, want) {
		t.Errorf("Sinks() = %v, want %v", sinks, want)
	}
	if !g.Reachable("a", "c") || g.Reachable("c", "a") || g.Reachable("a", "a") {
		t.Error("Reachable() returned wrong answer")
	}
}
