package model

import (
	"fmt"
	"slices"

	"github.com/matzehuels/relviz/pkg/attr"
	"github.com/matzehuels/relviz/pkg/errors"
	"github.com/matzehuels/relviz/pkg/types"
)

// Vertex is a resolved object.
type Vertex struct {
	Name     string
	Type     string     // canonical type name; empty for implicit vertices
	Kind     types.Kind // KindNode for implicit vertices
	Label    *string    // nil when no label applies
	Attrs    attr.Block // effective attributes, without the label
	Implicit bool       // created because a relation mentioned the name
	Pos      errors.Pos // declaring fact or first mention
}

// IsCluster reports whether the vertex can contain other vertices.
func (v *Vertex) IsCluster() bool { return v.Kind == types.KindCluster }

// Edge is one resolved relation between two vertices. Parallel edges
// between the same pair are told apart by Ordinal.
type Edge struct {
	Ordinal   int        // unique, in fact order
	From      string     // lhs vertex
	To        string     // rhs vertex
	Relation  string     // relation name as written in the fact
	Type      string     // canonical type name of the relation
	Kind      types.Kind // KindEdge or KindContainment
	Label     *string
	TailLabel *string // lhs-end label
	HeadLabel *string // rhs-end label
	Attrs     attr.Block
	Visible   bool // false for structural-only containment
	Pos       errors.Pos
}

// Graph is the resolved multigraph handed to renderers.
//
// Vertices keep first-appearance order and edges keep ordinal order, so
// output derived from a Graph is deterministic. The cluster structure is a
// forest: every vertex has at most one direct container.
type Graph struct {
	vertices []*Vertex
	byName   map[string]*Vertex
	edges    []*Edge
	parent   map[string]string
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		byName: make(map[string]*Vertex),
		parent: make(map[string]string),
	}
}

// AddVertex adds v. Vertex names are unique.
func (g *Graph) AddVertex(v *Vertex) error {
	if v.Name == "" {
		return errors.New(errors.ErrCodeInvalidInput, "vertex without a name")
	}
	if _, ok := g.byName[v.Name]; ok {
		return errors.New(errors.ErrCodeDuplicateObject, "duplicate vertex %q", v.Name).For(v.Name)
	}
	g.vertices = append(g.vertices, v)
	g.byName[v.Name] = v
	return nil
}

// AddEdge adds e. Both endpoints must exist.
func (g *Graph) AddEdge(e *Edge) error {
	for _, end := range []string{e.From, e.To} {
		if _, ok := g.byName[end]; !ok {
			return errors.New(errors.ErrCodeUnresolvedReference, "edge %d references unknown vertex %q", e.Ordinal, end).For(end)
		}
	}
	g.edges = append(g.edges, e)
	return nil
}

// SetParent records that cluster directly contains name.
func (g *Graph) SetParent(name, cluster string) error {
	c, ok := g.byName[cluster]
	if !ok || !c.IsCluster() {
		return errors.New(errors.ErrCodeInvalidContainment, "%q is not a cluster", cluster).For(cluster)
	}
	if _, ok := g.byName[name]; !ok {
		return errors.New(errors.ErrCodeUnresolvedReference, "unknown vertex %q", name).For(name)
	}
	if name == cluster || slices.Contains(g.Containers(cluster), name) {
		return errors.New(errors.ErrCodeCircularContainment, "%q cannot be inside %q", name, cluster).For(name)
	}
	g.parent[name] = cluster
	return nil
}

// Vertices returns all vertices in first-appearance order.
func (g *Graph) Vertices() []*Vertex { return slices.Clone(g.vertices) }

// Vertex returns the vertex with the given name.
func (g *Graph) Vertex(name string) (*Vertex, bool) {
	v, ok := g.byName[name]
	return v, ok
}

// Edges returns all edges in ordinal order.
func (g *Graph) Edges() []*Edge { return slices.Clone(g.edges) }

// Parent returns the cluster that directly contains name.
func (g *Graph) Parent(name string) (string, bool) {
	p, ok := g.parent[name]
	return p, ok
}

// Containers returns the clusters enclosing name, innermost first.
func (g *Graph) Containers(name string) []string {
	var chain []string
	for p, ok := g.parent[name]; ok; p, ok = g.parent[p] {
		chain = append(chain, p)
	}
	return chain
}

// Members returns the vertices directly inside cluster, in vertex order.
func (g *Graph) Members(cluster string) []string {
	var out []string
	for _, v := range g.vertices {
		if g.parent[v.Name] == cluster {
			out = append(out, v.Name)
		}
	}
	return out
}

// Roots returns the vertices not contained in any cluster, in vertex order.
func (g *Graph) Roots() []string {
	var out []string
	for _, v := range g.vertices {
		if _, ok := g.parent[v.Name]; !ok {
			out = append(out, v.Name)
		}
	}
	return out
}

// CommonContainer returns the innermost cluster enclosing both a and b,
// not counting a and b themselves.
func (g *Graph) CommonContainer(a, b string) (string, bool) {
	outer := g.Containers(b)
	for _, c := range g.Containers(a) {
		if slices.Contains(outer, c) {
			return c, true
		}
	}
	return "", false
}

// Stats summarises a graph for logs and the check command.
type Stats struct {
	Vertices int
	Implicit int
	Clusters int
	Edges    int
	Hidden   int
}

func (s Stats) String() string {
	return fmt.Sprintf("%d vertices (%d implicit, %d clusters), %d edges (%d structural)",
		s.Vertices, s.Implicit, s.Clusters, s.Edges, s.Hidden)
}

// Stats counts the graph's elements.
func (g *Graph) Stats() Stats {
	s := Stats{Vertices: len(g.vertices), Edges: len(g.edges)}
	for _, v := range g.vertices {
		if v.Implicit {
			s.Implicit++
		}
		if v.IsCluster() {
			s.Clusters++
		}
	}
	for _, e := range g.edges {
		if !e.Visible {
			s.Hidden++
		}
	}
	return s
}
