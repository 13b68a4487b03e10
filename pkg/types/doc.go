// Package types holds the type hierarchy of relviz: the [Registry] of type
// definitions and the [Resolver] that computes inherited attributes.
//
// # Type Graph
//
// Every type has a [Kind] and any number of parents. Several names may
// denote one type; such synonyms are declared either together
// ("node-type class, klass") or by repeating an identical declaration.
// Types are registered in any order and validated once, by
// [Registry.Close], which rejects undeclared parents and cycles.
//
// # Merge Order
//
// [Registry.Ancestors] linearises a type's ancestry. The type comes first
// and every type precedes its own ancestors, so layering the declared
// attribute blocks in reverse lets a descendant override any ancestor:
//
//	node-type A          # color: black, shape: box
//	node-type B is-a A   # color: blue
//	node-type C is-a A   # color: red, style: bold
//	node-type D is-a B, C
//
// D merges as D, B, C, A and resolves to color: blue, style: bold,
// shape: box. B wins over C because it is listed first.
//
// # Labels
//
// Label templates are inherited too, but not merged: the nearest template
// wins, and an empty template means "no text". Placeholders in templates
// are left untouched here; the model builder substitutes them per
// instance.
package types
