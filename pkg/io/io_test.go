package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/relviz/pkg/attr"
	"github.com/matzehuels/relviz/pkg/errors"
	"github.com/matzehuels/relviz/pkg/model"
	"github.com/matzehuels/relviz/pkg/render"
	"github.com/matzehuels/relviz/pkg/types"
)

func ptr(s string) *string { return &s }

func sampleGraph(t *testing.T) *model.Graph {
	t.Helper()
	g := model.NewGraph()
	for _, v := range []*model.Vertex{
		{Name: "outer", Type: "package", Kind: types.KindCluster, Label: ptr("outer")},
		{Name: "inner", Type: "package", Kind: types.KindCluster},
		{Name: "Foo", Type: "class", Kind: types.KindNode, Label: ptr(`<<class>>\nFoo`),
			Attrs: attr.FromPairs(attr.Pair{Key: "shape", Value: "record"}, attr.Pair{Key: "color", Value: "red"}),
			Pos:   errors.Pos{Source: "facts", Line: 3}},
		{Name: "Bar", Kind: types.KindNode, Implicit: true},
	} {
		if err := g.AddVertex(v); err != nil {
			t.Fatalf("AddVertex(%s) error: %v", v.Name, err)
		}
	}
	for _, e := range []*model.Edge{
		{Ordinal: 1, From: "Foo", To: "Bar", Relation: "has", Type: "association", Kind: types.KindEdge,
			HeadLabel: ptr("*"), Visible: true},
		{Ordinal: 2, From: "Foo", To: "Bar", Relation: "has", Type: "association", Kind: types.KindEdge,
			Label: ptr("again"), Visible: true},
		{Ordinal: 3, From: "Foo", To: "inner", Relation: "in", Type: "in", Kind: types.KindContainment},
		{Ordinal: 4, From: "inner", To: "outer", Relation: "in", Type: "in", Kind: types.KindContainment},
	} {
		if err := g.AddEdge(e); err != nil {
			t.Fatalf("AddEdge(%d) error: %v", e.Ordinal, err)
		}
	}
	if err := g.SetParent("Foo", "inner"); err != nil {
		t.Fatal(err)
	}
	if err := g.SetParent("inner", "outer"); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestRoundTrip(t *testing.T) {
	g := sampleGraph(t)

	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}

	if got.Stats() != g.Stats() {
		t.Errorf("Stats() = %v, want %v", got.Stats(), g.Stats())
	}
	if a, b := render.ToDOT(got, render.Options{}), render.ToDOT(g, render.Options{}); a != b {
		t.Errorf("DOT differs after round trip:\n%s\nwant:\n%s", a, b)
	}

	foo, _ := got.Vertex("Foo")
	if foo.Pos != (errors.Pos{Source: "facts", Line: 3}) {
		t.Errorf("Foo.Pos = %v, want facts:3", foo.Pos)
	}
	if keys := foo.Attrs.Keys(); strings.Join(keys, ",") != "shape,color" {
		t.Errorf("Foo attrs order = %v, want [shape color]", keys)
	}
	if p, _ := got.Parent("inner"); p != "outer" {
		t.Errorf("Parent(inner) = %q, want outer", p)
	}
	bar, _ := got.Vertex("Bar")
	if !bar.Implicit || bar.Label != nil {
		t.Errorf("Bar = %+v, want implicit without label", bar)
	}
	edges := got.Edges()
	if edges[2].Visible {
		t.Error("containment edge became visible after round trip")
	}
}

func TestWriteJSON_Format(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(sampleGraph(t), &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		`"vertices": [`,
		`"kind": "cluster"`,
		`"implicit": true`,
		`"head_label": "*"`,
		`"hidden": true`,
		`"members": [`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("WriteJSON() output lacks %s", want)
		}
	}
	if strings.Contains(out, `"tail_label"`) {
		t.Error("WriteJSON() wrote an absent tail label")
	}
}

func TestReadJSON_Errors(t *testing.T) {
	tests := []struct {
		name string
		json string
		code errors.Code
	}{
		{"malformed", `{"vertices": [`, errors.ErrCodeInvalidFormat},
		{"unknown field", `{"vertices": [], "edges": [], "nodes": []}`, errors.ErrCodeInvalidFormat},
		{"bad vertex kind", `{"vertices": [{"name": "a", "kind": "edge"}], "edges": []}`, errors.ErrCodeInvalidFormat},
		{"bad edge kind", `{"vertices": [{"name": "a", "kind": "node"}],
			"edges": [{"ordinal": 1, "from": "a", "to": "a", "relation": "r", "kind": "node"}]}`, errors.ErrCodeInvalidFormat},
		{"duplicate", `{"vertices": [{"name": "a", "kind": "node"}, {"name": "a", "kind": "node"}], "edges": []}`,
			errors.ErrCodeDuplicateObject},
		{"dangling edge", `{"vertices": [{"name": "a", "kind": "node"}],
			"edges": [{"ordinal": 1, "from": "a", "to": "b", "relation": "r", "kind": "edge"}]}`,
			errors.ErrCodeUnresolvedReference},
		{"member of a node", `{"vertices": [{"name": "a", "kind": "node"}, {"name": "b", "kind": "node"}],
			"edges": [], "clusters": [{"name": "a", "members": ["b"]}]}`, errors.ErrCodeInvalidContainment},
		{"two containers", `{"vertices": [{"name": "a", "kind": "cluster"}, {"name": "b", "kind": "cluster"},
			{"name": "c", "kind": "node"}], "edges": [],
			"clusters": [{"name": "a", "members": ["c"]}, {"name": "b", "members": ["c"]}]}`,
			errors.ErrCodeMultipleContainers},
		{"cycle", `{"vertices": [{"name": "a", "kind": "cluster"}, {"name": "b", "kind": "cluster"}], "edges": [],
			"clusters": [{"name": "a", "members": ["b"]}, {"name": "b", "members": ["a"]}]}`,
			errors.ErrCodeCircularContainment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.json))
			if err == nil {
				t.Fatal("ReadJSON() expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("GetCode() = %s, want %s (%v)", got, tt.code, err)
			}
		})
	}
}

func TestExportImportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := ExportJSON(sampleGraph(t), path); err != nil {
		t.Fatalf("ExportJSON() error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("exported file missing: %v", err)
	}
	g, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}
	if n := len(g.Vertices()); n != 4 {
		t.Errorf("ImportJSON() vertices = %d, want 4", n)
	}

	_, err = ImportJSON(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportJSON(missing) = %v, want FILE_NOT_FOUND", err)
	}
}
