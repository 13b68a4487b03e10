package model

import (
	"slices"

	"github.com/matzehuels/relviz/pkg/attr"
	"github.com/matzehuels/relviz/pkg/errors"
	"github.com/matzehuels/relviz/pkg/factparser"
)

// ObjectFact declares that Names are objects of Type.
type ObjectFact struct {
	Type  string
	Names []string
	Label *string // header label; overrides any label attribute or template
	Attrs attr.Block
	Pos   errors.Pos
}

// RelationFact relates every LHS name to every RHS name.
type RelationFact struct {
	LHS      []string
	LHSLabel *string
	Relation string
	RHSLabel *string
	RHS      []string
	Attrs    attr.Block
	Pos      errors.Pos
}

// header is a raw fact header split into name groups, with the label that
// follows each group, if any.
type header struct {
	groups  [][]string
	labels  []*string // labels[i] follows groups[i]
	leading bool      // a label before the first group
}

func splitHeader(raw *factparser.RawFact) header {
	var h header
	for _, s := range raw.Segments {
		if s.IsLabel() {
			if len(h.labels) == 0 {
				h.leading = true
				continue
			}
			h.labels[len(h.labels)-1] = s.Label
			continue
		}
		h.groups = append(h.groups, s.Names)
		h.labels = append(h.labels, nil)
	}
	return h
}

// labelsOnly reports whether labels appear only after the allowed groups.
func (h header) labelsOnly(allowed ...int) (int, bool) {
	for i, l := range h.labels {
		if l == nil {
			continue
		}
		if !slices.Contains(allowed, i) {
			return i, false
		}
	}
	return 0, true
}

// single returns the only name of group i.
func (h header) single(i int) (string, bool) {
	if len(h.groups[i]) != 1 {
		return "", false
	}
	return h.groups[i][0], true
}
