// Package model builds the resolved multigraph from classified facts.
//
// # Pipeline
//
// [Builder.Classify] sorts raw fact headers into [ObjectFact] and
// [RelationFact] records, and [Builder.Build] resolves them against a
// closed type registry:
//
//   - Objects become vertices. Attributes are the type's effective
//     attributes overlaid by the fact's own block. The label is the header
//     label, else the fact's label attribute, else the type's label
//     template.
//   - Relations become one edge per (lhs, rhs) pair with a unique ordinal,
//     so repeated facts give parallel edges.
//   - Names mentioned only by relations become implicit vertices, unless
//     [Options.Strict] is set.
//   - Containment relations nest their lhs in the cluster on their rhs.
//     They are drawn only when their attributes set a style or arrowhead.
//
// # Clusters
//
// Nesting must form a forest. Cycles fail with CIRCULAR_CONTAINMENT.
// Redundant nesting facts (A in B, B in C, A in C) are dropped by
// transitive reduction, and a vertex still inside two clusters fails with
// MULTIPLE_CONTAINERS.
//
// # Label Templates
//
// Templates are expanded once the cluster structure is known:
//
//	\N  vertex name, or the relation name of an edge
//	\G  enclosing cluster; for an edge the innermost cluster holding both ends
//	\T  tail vertex (edges)
//	\H  head vertex (edges)
//
// Any other backslash sequence, such as \n or \l, is left for the renderer.
package model
