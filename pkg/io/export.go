package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/relviz/pkg/attr"
	"github.com/matzehuels/relviz/pkg/model"
)

type graph struct {
	Vertices []vertex  `json:"vertices"`
	Edges    []edge    `json:"edges"`
	Clusters []cluster `json:"clusters,omitempty"`
}

type vertex struct {
	Name     string      `json:"name"`
	Type     string      `json:"type,omitempty"`
	Kind     string      `json:"kind"`
	Label    *string     `json:"label,omitempty"`
	Attrs    []attr.Pair `json:"attrs,omitempty"`
	Implicit bool        `json:"implicit,omitempty"`
	Source   string      `json:"source,omitempty"`
	Line     int         `json:"line,omitempty"`
}

type edge struct {
	Ordinal   int         `json:"ordinal"`
	From      string      `json:"from"`
	To        string      `json:"to"`
	Relation  string      `json:"relation"`
	Type      string      `json:"type,omitempty"`
	Kind      string      `json:"kind"`
	Label     *string     `json:"label,omitempty"`
	TailLabel *string     `json:"tail_label,omitempty"`
	HeadLabel *string     `json:"head_label,omitempty"`
	Attrs     []attr.Pair `json:"attrs,omitempty"`
	Hidden    bool        `json:"hidden,omitempty"`
	Source    string      `json:"source,omitempty"`
	Line      int         `json:"line,omitempty"`
}

type cluster struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// WriteJSON encodes a resolved graph as JSON and writes it to w.
// The output can be read back with [ReadJSON].
func WriteJSON(g *model.Graph, w io.Writer) error {
	vertices := g.Vertices()
	edges := g.Edges()
	out := graph{
		Vertices: make([]vertex, len(vertices)),
		Edges:    make([]edge, len(edges)),
	}

	for i, v := range vertices {
		out.Vertices[i] = vertex{
			Name:     v.Name,
			Type:     v.Type,
			Kind:     string(v.Kind),
			Label:    v.Label,
			Attrs:    v.Attrs.Pairs(),
			Implicit: v.Implicit,
			Source:   v.Pos.Source,
			Line:     v.Pos.Line,
		}
		if v.IsCluster() {
			if members := g.Members(v.Name); len(members) > 0 {
				out.Clusters = append(out.Clusters, cluster{Name: v.Name, Members: members})
			}
		}
	}
	for i, e := range edges {
		out.Edges[i] = edge{
			Ordinal:   e.Ordinal,
			From:      e.From,
			To:        e.To,
			Relation:  e.Relation,
			Type:      e.Type,
			Kind:      string(e.Kind),
			Label:     e.Label,
			TailLabel: e.TailLabel,
			HeadLabel: e.HeadLabel,
			Attrs:     e.Attrs.Pairs(),
			Hidden:    !e.Visible,
			Source:    e.Pos.Source,
			Line:      e.Pos.Line,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a resolved graph to a JSON file at path.
func ExportJSON(g *model.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(g, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
