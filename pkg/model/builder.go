package model

import (
	"strings"

	"github.com/matzehuels/relviz/pkg/attr"
	"github.com/matzehuels/relviz/pkg/dag"
	"github.com/matzehuels/relviz/pkg/dag/transform"
	"github.com/matzehuels/relviz/pkg/errors"
	"github.com/matzehuels/relviz/pkg/factparser"
	"github.com/matzehuels/relviz/pkg/types"
)

// Options control how strictly facts are resolved.
type Options struct {
	// Strict rejects relation endpoints that no object fact declares,
	// with UNRESOLVED_REFERENCE, instead of creating implicit vertices.
	Strict bool
}

// Builder turns facts into a Graph using a closed type registry.
// A Builder may be reused; each Build starts from an empty graph.
type Builder struct {
	res  *types.Resolver
	opts Options
}

// NewBuilder creates a builder over res.
func NewBuilder(res *types.Resolver, opts Options) *Builder {
	return &Builder{res: res, opts: opts}
}

// Classify sorts raw facts into object and relation facts by the shape of
// their headers:
//
//	TYPE NAMES [(label)]                                  object
//	LHS [(label)] RELATION [(label)] RHS                  relation
//	TYPE NAMES [(label)] RELATION [(label)] RHS           objects plus relation
//
// The last form declares the objects with the attribute block and relates
// every name to every RHS name without attributes.
func (b *Builder) Classify(raws []*factparser.RawFact) ([]ObjectFact, []RelationFact, error) {
	var objects []ObjectFact
	var relations []RelationFact

	for _, raw := range raws {
		h := splitHeader(raw)
		if h.leading {
			return nil, nil, syntaxError(raw.Pos, "fact cannot start with a label")
		}

		switch len(h.groups) {
		case 2:
			typ, err := h.typeName(raw, 0)
			if err != nil {
				return nil, nil, err
			}
			if i, ok := h.labelsOnly(1); !ok {
				return nil, nil, syntaxError(raw.Pos, "object fact allows a label only after its names, found one after %q", h.groups[i][0])
			}
			objects = append(objects, ObjectFact{
				Type:  typ,
				Names: h.groups[1],
				Label: h.labels[1],
				Attrs: raw.Attrs,
				Pos:   raw.Pos,
			})

		case 3:
			rel, err := b.relationName(raw, h, 1)
			if err != nil {
				return nil, nil, err
			}
			if _, ok := h.labelsOnly(0, 1); !ok {
				return nil, nil, syntaxError(raw.Pos, "relation fact allows labels only around the relation name")
			}
			relations = append(relations, RelationFact{
				LHS:      h.groups[0],
				LHSLabel: h.labels[0],
				Relation: rel,
				RHSLabel: h.labels[1],
				RHS:      h.groups[2],
				Attrs:    raw.Attrs,
				Pos:      raw.Pos,
			})

		case 4:
			typ, err := h.typeName(raw, 0)
			if err != nil {
				return nil, nil, err
			}
			rel, err := b.relationName(raw, h, 2)
			if err != nil {
				return nil, nil, err
			}
			if _, ok := h.labelsOnly(1, 2); !ok {
				return nil, nil, syntaxError(raw.Pos, "relation fact allows labels only around the relation name")
			}
			objects = append(objects, ObjectFact{
				Type:  typ,
				Names: h.groups[1],
				Attrs: raw.Attrs,
				Pos:   raw.Pos,
			})
			relations = append(relations, RelationFact{
				LHS:      h.groups[1],
				LHSLabel: h.labels[1],
				Relation: rel,
				RHSLabel: h.labels[2],
				RHS:      h.groups[3],
				Pos:      raw.Pos,
			})

		case 1:
			return nil, nil, syntaxError(raw.Pos, "fact %q needs a type and a name, or a relation", strings.Join(h.groups[0], ", "))
		default:
			return nil, nil, syntaxError(raw.Pos, "fact header has %d name groups, at most 4 are allowed", len(h.groups))
		}
	}
	return objects, relations, nil
}

func (h header) typeName(raw *factparser.RawFact, i int) (string, error) {
	name, ok := h.single(i)
	if !ok {
		return "", syntaxError(raw.Pos, "expected a single type name, found %q", strings.Join(h.groups[i], ", "))
	}
	return name, nil
}

// relationName returns the single name of group i. When that name is not
// a relation type but the header opens with an object type, the line is
// most likely an object fact with a stray name, and the error says so.
func (b *Builder) relationName(raw *factparser.RawFact, h header, i int) (string, error) {
	rel, ok := h.single(i)
	if !ok {
		return "", syntaxError(raw.Pos, "expected a single relation name, found %q", strings.Join(h.groups[i], ", "))
	}
	reg := b.res.Registry()
	if d, err := reg.Resolve(rel); err == nil && d.Kind.IsRelation() {
		return rel, nil
	}
	if first, ok := h.single(0); ok {
		if d, err := reg.Resolve(first); err == nil && d.Kind.IsObject() && len(h.groups) == 3 {
			return "", syntaxError(raw.Pos, "object fact of type %q takes one name list, found %d groups", first, len(h.groups)-1)
		}
	}
	return rel, nil
}

func syntaxError(pos errors.Pos, format string, args ...any) *errors.Error {
	return errors.New(errors.ErrCodeSyntax, format, args...).At(pos)
}

// Build resolves facts into a Graph. Object facts are applied before
// relation facts, so a relation may mention an object declared later in
// the source. Any error rejects the whole input.
func (b *Builder) Build(objects []ObjectFact, relations []RelationFact) (*Graph, error) {
	bs := &buildState{
		Builder:   b,
		g:         NewGraph(),
		templates: make(map[any]string),
	}
	for i := range objects {
		if err := bs.addObjects(&objects[i]); err != nil {
			return nil, err
		}
	}
	for i := range relations {
		if err := bs.addRelations(&relations[i]); err != nil {
			return nil, err
		}
	}
	if err := bs.nest(); err != nil {
		return nil, err
	}
	bs.expandLabels()
	return bs.g, nil
}

type nesting struct {
	inner, outer string
	edge         *Edge
	pos          errors.Pos
}

type buildState struct {
	*Builder
	g         *Graph
	ordinal   int
	nestings  []nesting
	templates map[any]string // *Vertex or *Edge -> label template to expand
}

// resolve looks up a type and its effective attributes overlaid with the
// fact's own, splitting off the label attribute.
func (bs *buildState) resolve(typeName string, own attr.Block, pos errors.Pos) (*types.TypeDef, attr.Block, *string, error) {
	def, err := bs.res.Registry().Resolve(typeName)
	if err != nil {
		return nil, attr.Block{}, nil, errors.New(errors.ErrCodeUnknownType, "unknown type %q", typeName).At(pos).For(typeName)
	}
	eff, err := bs.res.Attrs(typeName)
	if err != nil {
		return nil, attr.Block{}, nil, err
	}
	eff.Merge(own)

	var label *string
	if v, ok := eff.Get(attr.LabelKey); ok {
		label = &v
		eff.Delete(attr.LabelKey)
	}
	return def, eff, label, nil
}

func (bs *buildState) template(typeName string) (string, bool) {
	tmpl, ok, err := bs.res.Label(typeName)
	return tmpl, ok && err == nil
}

func (bs *buildState) addObjects(of *ObjectFact) error {
	def, attrs, label, err := bs.resolve(of.Type, of.Attrs, of.Pos)
	if err != nil {
		return err
	}
	if !def.Kind.IsObject() {
		return errors.New(errors.ErrCodeKindMismatch,
			"%s type %q cannot declare objects", def.Kind, of.Type).At(of.Pos).For(of.Type)
	}
	if of.Label != nil {
		label = of.Label
	}

	for _, name := range of.Names {
		v := &Vertex{
			Name:  name,
			Type:  def.Name(),
			Kind:  def.Kind,
			Label: label,
			Attrs: attrs.Clone(),
			Pos:   of.Pos,
		}
		if prev, ok := bs.g.Vertex(name); ok {
			if !sameObject(prev, v) {
				return errors.New(errors.ErrCodeDuplicateObject,
					"object %q redeclared differently (first declared at %s)", name, prev.Pos).At(of.Pos).For(name)
			}
			continue
		}
		if err := bs.g.AddVertex(v); err != nil {
			return err
		}
		if label == nil {
			if tmpl, ok := bs.template(of.Type); ok {
				bs.templates[v] = tmpl
			}
		}
	}
	return nil
}

func sameObject(a, b *Vertex) bool {
	if a.Type != b.Type || !a.Attrs.Equal(b.Attrs) {
		return false
	}
	if a.Label == nil || b.Label == nil {
		return a.Label == nil && b.Label == nil
	}
	return *a.Label == *b.Label
}

func (bs *buildState) addRelations(rf *RelationFact) error {
	def, attrs, label, err := bs.resolve(rf.Relation, rf.Attrs, rf.Pos)
	if err != nil {
		return err
	}
	if !def.Kind.IsRelation() {
		return errors.New(errors.ErrCodeKindMismatch,
			"%s type %q cannot relate objects", def.Kind, rf.Relation).At(rf.Pos).For(rf.Relation)
	}

	visible := def.Kind == types.KindEdge || drawsEdge(attrs)
	tmpl, hasTmpl := "", false
	if label == nil {
		tmpl, hasTmpl = bs.template(rf.Relation)
	}

	for _, lhs := range rf.LHS {
		for _, rhs := range rf.RHS {
			if err := bs.ensureVertex(lhs, rf.Pos); err != nil {
				return err
			}
			if err := bs.ensureVertex(rhs, rf.Pos); err != nil {
				return err
			}
			e := &Edge{
				Ordinal:   bs.ordinal,
				From:      lhs,
				To:        rhs,
				Relation:  rf.Relation,
				Type:      def.Name(),
				Kind:      def.Kind,
				Label:     label,
				TailLabel: rf.LHSLabel,
				HeadLabel: rf.RHSLabel,
				Attrs:     attrs.Clone(),
				Visible:   visible,
				Pos:       rf.Pos,
			}
			bs.ordinal++
			if err := bs.g.AddEdge(e); err != nil {
				return err
			}
			if hasTmpl {
				bs.templates[e] = tmpl
			}
			if def.Kind == types.KindContainment {
				bs.nestings = append(bs.nestings, nesting{inner: lhs, outer: rhs, edge: e, pos: rf.Pos})
			}
		}
	}
	return nil
}

// drawsEdge reports whether containment attributes ask for a visible edge.
func drawsEdge(attrs attr.Block) bool {
	for _, key := range []string{"style", "arrowhead"} {
		if v, ok := attrs.Get(key); ok && v != "" {
			return true
		}
	}
	return false
}

// ensureVertex creates an implicit vertex for an undeclared endpoint, or
// fails in strict mode.
func (bs *buildState) ensureVertex(name string, pos errors.Pos) error {
	if _, ok := bs.g.Vertex(name); ok {
		return nil
	}
	if bs.opts.Strict {
		return errors.New(errors.ErrCodeUnresolvedReference,
			"%q is used in a relation but never declared", name).At(pos).For(name)
	}
	return bs.g.AddVertex(&Vertex{Name: name, Kind: types.KindNode, Implicit: true, Pos: pos})
}

// nest builds the cluster structure from containment edges. The nesting
// relation must be acyclic; it is transitively reduced, after which every
// vertex may have one direct container at most. A containment whose
// container is a plain node is drawn as an edge instead.
func (bs *buildState) nest() error {
	d := dag.New()
	for _, n := range bs.nestings {
		outer, _ := bs.g.Vertex(n.outer)
		if !outer.IsCluster() {
			n.edge.Visible = true
			continue
		}
		_ = d.EnsureNode(n.inner)
		_ = d.EnsureNode(n.outer)
		if !d.HasEdge(n.inner, n.outer) {
			_ = d.AddEdge(dag.Edge{From: n.inner, To: n.outer, Meta: dag.Metadata{"pos": n.pos}})
		}
	}

	if cycle := d.FindCycle(); cycle != nil {
		path := append(cycle, cycle[0])
		return errors.New(errors.ErrCodeCircularContainment,
			"circular containment: %s", strings.Join(path, " in ")).At(edgePos(d, cycle)).For(cycle[0])
	}

	transform.TransitiveReduction(d)

	for _, id := range d.NodeIDs() {
		outers := d.Children(id)
		switch len(outers) {
		case 0:
			continue
		case 1:
			if err := bs.g.SetParent(id, outers[0]); err != nil {
				return err
			}
		default:
			return errors.New(errors.ErrCodeMultipleContainers,
				"%q is directly inside more than one cluster: %s", id, strings.Join(outers, ", ")).
				At(edgePos(d, []string{id, outers[1]})).For(id)
		}
	}
	return nil
}

// edgePos returns the position of the fact behind the edge path[0]→path[1].
func edgePos(d *dag.DAG, path []string) errors.Pos {
	to := path[0]
	if len(path) > 1 {
		to = path[1]
	}
	for _, e := range d.Edges() {
		if e.From == path[0] && e.To == to {
			if pos, ok := e.Meta["pos"].(errors.Pos); ok {
				return pos
			}
		}
	}
	return errors.Pos{}
}

func (bs *buildState) expandLabels() {
	for _, v := range bs.g.vertices {
		if tmpl, ok := bs.templates[v]; ok {
			label := expand(tmpl, vertexVars(bs.g, v))
			v.Label = &label
		}
	}
	for _, e := range bs.g.edges {
		if tmpl, ok := bs.templates[e]; ok {
			label := expand(tmpl, edgeVars(bs.g, e))
			e.Label = &label
		}
	}
}
