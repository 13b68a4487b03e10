package types

import (
	"github.com/matzehuels/relviz/pkg/attr"
)

// Resolver computes effective attributes and label templates over a closed
// registry. Results are memoised per type.
type Resolver struct {
	reg   *Registry
	attrs map[*TypeDef]attr.Block
}

// NewResolver creates a resolver for reg. reg must be closed before the
// first lookup.
func NewResolver(reg *Registry) *Resolver {
	return &Resolver{reg: reg, attrs: make(map[*TypeDef]attr.Block)}
}

// Registry returns the underlying registry.
func (r *Resolver) Registry() *Registry { return r.reg }

// Attrs returns the effective attributes of a type: the declared blocks of
// its ancestors layered from the most distant one to the type itself, so
// the most derived value wins for every key. The returned block is a copy.
func (r *Resolver) Attrs(name string) (attr.Block, error) {
	anc, err := r.reg.Ancestors(name)
	if err != nil {
		return attr.Block{}, err
	}
	if cached, ok := r.attrs[anc[0]]; ok {
		return cached.Clone(), nil
	}

	blocks := make([]attr.Block, len(anc))
	for i, d := range anc {
		blocks[len(anc)-1-i] = d.Attrs
	}
	eff := attr.Layer(blocks...)
	r.attrs[anc[0]] = eff
	return eff.Clone(), nil
}

// Label returns the label template of a type: the template of the first
// type in merge order that declares one. ok is false when none does. An
// explicitly empty template is returned as ("", true) and hides any
// template further up the hierarchy.
func (r *Resolver) Label(name string) (template string, ok bool, err error) {
	anc, err := r.reg.Ancestors(name)
	if err != nil {
		return "", false, err
	}
	for _, d := range anc {
		if d.Label != nil {
			return *d.Label, true, nil
		}
	}
	return "", false, nil
}
