// Package io provides JSON export and import for resolved graphs.
//
// The JSON form is the hand-off format for tools that want the graph
// without going through Graphviz, and the form the pipeline caches.
//
// # JSON Format
//
//	{
//	  "vertices": [
//	    {"name": "pkg", "type": "package", "kind": "cluster", "label": "pkg"},
//	    {"name": "Foo", "type": "class", "kind": "node",
//	     "attrs": [{"key": "shape", "value": "record"}]},
//	    {"name": "Bar", "kind": "node", "implicit": true}
//	  ],
//	  "edges": [
//	    {"ordinal": 1, "from": "Foo", "to": "Bar", "relation": "has",
//	     "type": "association", "kind": "edge", "head_label": "*"},
//	    {"ordinal": 2, "from": "Foo", "to": "pkg", "relation": "in",
//	     "type": "in", "kind": "containment", "hidden": true}
//	  ],
//	  "clusters": [
//	    {"name": "pkg", "members": ["Foo"]}
//	  ]
//	}
//
// Attributes are a list of key/value pairs so that their order survives a
// round trip. Labels are absent when none applies, and "source" and "line"
// record the declaring fact when known.
//
// # Import
//
// [ReadJSON] and [ImportJSON] rebuild a model.Graph and reject documents
// that no build could have produced: duplicate vertices, dangling edges,
// unknown kinds, or a cluster structure that is not a forest.
package io
