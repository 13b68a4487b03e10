// Package transform provides graph transformations over [dag.DAG].
//
// # Transitive Reduction
//
// [TransitiveReduction] removes edges that are implied by longer paths. The
// model builder applies it to the cluster nesting graph: containment facts
// may state both "a is inside b" and "a is inside c" when b is itself inside
// c, and only the direct parent should survive. A cluster that still has
// more than one parent afterwards is a genuine conflict.
package transform
