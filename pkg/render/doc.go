// Package render hands a resolved graph to Graphviz.
//
// # DOT
//
// [ToDOT] writes a model.Graph as a digraph. Each vertex becomes a node
// statement carrying its effective attributes and label. Clusters become
// subgraphs whose IDs start with [ClusterPrefix], nested as the
// containment forest nests them. Edge end labels are written as taillabel
// and headlabel.
//
// Graphviz cannot end an edge on a subgraph, so each cluster that a drawn
// edge touches gets an invisible anchor node named [AnchorPrefix] plus the
// cluster name. The edge attaches to the anchor and is clipped at the
// frame with ltail or lhead, which needs compound=true on the graph.
//
// Structural-only containment edges are not written.
//
// # SVG
//
// [RenderSVG] lays out the DOT source with the in-process Graphviz engine
// from github.com/goccy/go-graphviz. Layout is entirely Graphviz's:
//
//	dot := render.ToDOT(g, render.Options{})
//	svg, err := render.RenderSVG(ctx, dot)
package render
