package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/relviz/pkg/attr"
	"github.com/matzehuels/relviz/pkg/errors"
	"github.com/matzehuels/relviz/pkg/model"
	"github.com/matzehuels/relviz/pkg/types"
)

// ReadJSON decodes a graph written by [WriteJSON].
//
// The decoded graph goes through the same checks as a built one: vertex
// names are unique, edges reference existing vertices, and the cluster
// structure is a forest of cluster vertices. Unknown kinds are rejected
// with INVALID_FORMAT. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*model.Graph, error) {
	var data graph
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode graph")
	}

	g := model.NewGraph()
	for _, v := range data.Vertices {
		kind, err := parseKind(v.Kind, types.Kind.IsObject)
		if err != nil {
			return nil, fmt.Errorf("vertex %s: %w", v.Name, err)
		}
		vx := &model.Vertex{
			Name:     v.Name,
			Type:     v.Type,
			Kind:     kind,
			Label:    v.Label,
			Attrs:    attr.FromPairs(v.Attrs...),
			Implicit: v.Implicit,
			Pos:      errors.Pos{Source: v.Source, Line: v.Line},
		}
		if err := g.AddVertex(vx); err != nil {
			return nil, fmt.Errorf("vertex %s: %w", v.Name, err)
		}
	}
	for _, e := range data.Edges {
		kind, err := parseKind(e.Kind, types.Kind.IsRelation)
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", e.Ordinal, err)
		}
		ed := &model.Edge{
			Ordinal:   e.Ordinal,
			From:      e.From,
			To:        e.To,
			Relation:  e.Relation,
			Type:      e.Type,
			Kind:      kind,
			Label:     e.Label,
			TailLabel: e.TailLabel,
			HeadLabel: e.HeadLabel,
			Attrs:     attr.FromPairs(e.Attrs...),
			Visible:   !e.Hidden,
			Pos:       errors.Pos{Source: e.Source, Line: e.Line},
		}
		if err := g.AddEdge(ed); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
	}
	for _, c := range data.Clusters {
		for _, m := range c.Members {
			if p, ok := g.Parent(m); ok && p != c.Name {
				return nil, errors.New(errors.ErrCodeMultipleContainers,
					"%q is listed in clusters %q and %q", m, p, c.Name).For(m)
			}
			if err := g.SetParent(m, c.Name); err != nil {
				return nil, fmt.Errorf("cluster %s: %w", c.Name, err)
			}
		}
	}

	return g, nil
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
func ImportJSON(path string) (*model.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}

func parseKind(s string, valid func(types.Kind) bool) (types.Kind, error) {
	k := types.Kind(s)
	if !valid(k) {
		return "", errors.New(errors.ErrCodeInvalidFormat, "invalid kind %q", s)
	}
	return k, nil
}
