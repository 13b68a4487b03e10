package types

import (
	"slices"
	"strings"

	"github.com/matzehuels/relviz/pkg/attr"
	"github.com/matzehuels/relviz/pkg/dag"
	"github.com/matzehuels/relviz/pkg/errors"
	"github.com/matzehuels/relviz/pkg/factparser"
)

// TypeDef is one node of the type graph. All of its Names are synonyms.
type TypeDef struct {
	Names   []string   // synonyms; Names[0] is the canonical name
	Kind    Kind       // fact category the type serves
	Parents []string   // parent type names in declared order
	Attrs   attr.Block // attributes declared on this type only
	Label   *string    // label template; nil when not declared
	Pos     errors.Pos // first declaration
}

// Name returns the canonical name, the first one declared.
func (d *TypeDef) Name() string { return d.Names[0] }

// sameAs reports whether o declares exactly what d declares.
func (d *TypeDef) sameAs(o *TypeDef) bool {
	if d.Kind != o.Kind || !slices.Equal(d.Parents, o.Parents) || !d.Attrs.Equal(o.Attrs) {
		return false
	}
	if d.Label == nil || o.Label == nil {
		return d.Label == nil && o.Label == nil
	}
	return *d.Label == *o.Label
}

// FromFact converts a parsed type declaration.
func FromFact(tf *factparser.TypeFact) (TypeDef, error) {
	kind, ok := KindOf(tf.Keyword)
	if !ok {
		return TypeDef{}, errors.New(errors.ErrCodeInternal, "unknown type keyword %q", tf.Keyword).At(tf.Pos)
	}
	return TypeDef{
		Names:   slices.Clone(tf.Names),
		Kind:    kind,
		Parents: slices.Clone(tf.Parents),
		Attrs:   tf.Attrs.Clone(),
		Label:   tf.Label,
		Pos:     tf.Pos,
	}, nil
}

// Registry collects type definitions and validates the type graph.
//
// Registration happens in any order; parents may be registered after
// their children. [Registry.Close] ends registration and checks the graph
// once. Lookups of ancestors are only valid on a closed registry.
//
// Registry is not safe for concurrent use.
type Registry struct {
	defs      []*TypeDef
	byName    map[string]*TypeDef
	closed    bool
	ancestors map[*TypeDef][]*TypeDef
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:    make(map[string]*TypeDef),
		ancestors: make(map[*TypeDef][]*TypeDef),
	}
}

// Register adds a definition. Declaring a known name again is accepted only
// when the declaration is identical, in which case any new names become
// synonyms of the existing type. Anything else fails with
// CONFLICTING_TYPE_DEFINITION.
func (r *Registry) Register(def TypeDef) error {
	if r.closed {
		return errors.New(errors.ErrCodeInternal, "type registry is closed").At(def.Pos)
	}
	if len(def.Names) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "type definition without a name").At(def.Pos)
	}

	var existing []*TypeDef
	for _, name := range def.Names {
		if d, ok := r.byName[name]; ok && !slices.Contains(existing, d) {
			existing = append(existing, d)
		}
	}
	for _, d := range existing {
		if !d.sameAs(&def) {
			name := sharedName(d, def.Names)
			return errors.New(errors.ErrCodeConflictingTypeDef,
				"type %q redeclared with a different definition (first declared at %s)", name, d.Pos).
				At(def.Pos).For(name)
		}
	}

	names := def.Names
	target := &def
	if len(existing) > 0 {
		target = existing[0]
		for _, other := range existing[1:] {
			r.absorb(target, other)
		}
	} else {
		target.Names = nil
		r.defs = append(r.defs, target)
	}
	for _, name := range names {
		if _, ok := r.byName[name]; !ok {
			target.Names = append(target.Names, name)
			r.byName[name] = target
		}
	}
	return nil
}

// absorb merges the synonyms of other into target and drops other.
func (r *Registry) absorb(target, other *TypeDef) {
	for _, name := range other.Names {
		target.Names = append(target.Names, name)
		r.byName[name] = target
	}
	r.defs = slices.DeleteFunc(r.defs, func(d *TypeDef) bool { return d == other })
}

func sharedName(d *TypeDef, names []string) string {
	for _, n := range names {
		if slices.Contains(d.Names, n) {
			return n
		}
	}
	return d.Name()
}

// Close ends registration and validates the type graph: every parent must
// be declared (UNKNOWN_PARENT_TYPE) and the graph must be acyclic
// (CYCLIC_TYPE_HIERARCHY). Closing twice is a no-op.
func (r *Registry) Close() error {
	if r.closed {
		return nil
	}

	g := dag.New()
	for _, d := range r.defs {
		_ = g.AddNode(dag.Node{ID: d.Name(), Meta: dag.Metadata{"def": d}})
	}
	for _, d := range r.defs {
		for _, p := range d.Parents {
			parent, ok := r.byName[p]
			if !ok {
				return errors.New(errors.ErrCodeUnknownParentType,
					"type %q has undeclared parent %q", d.Name(), p).At(d.Pos).For(p)
			}
			if !g.HasEdge(d.Name(), parent.Name()) {
				_ = g.AddEdge(dag.Edge{From: d.Name(), To: parent.Name()})
			}
		}
	}

	if cycle := g.FindCycle(); cycle != nil {
		first := r.byName[cycle[0]]
		path := append(slices.Clone(cycle), cycle[0])
		return errors.New(errors.ErrCodeCyclicTypeHierarchy,
			"cyclic type hierarchy: %s", strings.Join(path, " → ")).At(first.Pos).For(cycle[0])
	}

	r.closed = true
	return nil
}

// Closed reports whether Close has succeeded.
func (r *Registry) Closed() bool { return r.closed }

// Resolve returns the definition a name refers to, or UNKNOWN_TYPE.
func (r *Registry) Resolve(name string) (*TypeDef, error) {
	d, ok := r.byName[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownType, "unknown type %q", name).For(name)
	}
	return d, nil
}

// Defs returns the definitions in order of first declaration.
func (r *Registry) Defs() []*TypeDef { return slices.Clone(r.defs) }

// Ancestors returns the merge order of a type: the type itself first, then
// its ancestors, each exactly once. Every type precedes all of its own
// ancestors, and parents keep their declared order wherever the hierarchy
// allows it. For D is-a B, C with B and C both is-a A the order is
// D, B, C, A.
//
// The order equals a depth-first walk that visits parents in declared
// order and keeps only the last visit of a shared ancestor. It is computed
// as the reverse post-order of a walk over the parents in reverse, which
// visits each type once.
func (r *Registry) Ancestors(name string) ([]*TypeDef, error) {
	if !r.closed {
		return nil, errors.New(errors.ErrCodeInternal, "type registry is not closed")
	}
	d, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	if cached, ok := r.ancestors[d]; ok {
		return slices.Clone(cached), nil
	}

	visited := make(map[*TypeDef]bool)
	var post []*TypeDef
	var visit func(t *TypeDef)
	visit = func(t *TypeDef) {
		visited[t] = true
		for i := len(t.Parents) - 1; i >= 0; i-- {
			if p := r.byName[t.Parents[i]]; !visited[p] {
				visit(p)
			}
		}
		post = append(post, t)
	}
	visit(d)
	slices.Reverse(post)

	r.ancestors[d] = post
	return slices.Clone(post), nil
}
