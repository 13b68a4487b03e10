// Package dag provides the small directed graph used for the structural
// checks of relviz: the type hierarchy and the cluster nesting relation.
//
// # Overview
//
// Both relations must be acyclic, but their facts arrive in any order, so
// the graph accepts arbitrary edges and is checked once it is complete.
// [DAG.FindCycle] reports the participants of one cycle, which the type
// registry and the model builder turn into CYCLIC_TYPE_HIERARCHY and
// CIRCULAR_CONTAINMENT errors.
//
// # Basic Usage
//
//	g := dag.New()
//	g.AddNode(dag.Node{ID: "class"})
//	g.AddNode(dag.Node{ID: "element"})
//	g.AddEdge(dag.Edge{From: "class", To: "element"})
//	if cycle := g.FindCycle(); cycle != nil {
//	    // report cycle
//	}
//
// Nodes, edges, [DAG.Sources] and [DAG.TopologicalSort] all follow
// insertion order, so results never depend on map iteration.
//
// # Metadata
//
// Nodes and edges carry [Metadata] maps for callers that need to attach
// positions or labels. Metadata maps are never nil after insertion.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use.
//
// # Related Packages
//
// The [transform] subpackage provides transitive reduction, used to turn
// containment facts into a nesting tree.
//
// [transform]: github.com/matzehuels/relviz/pkg/dag/transform
package dag
