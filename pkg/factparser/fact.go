package factparser

import (
	"github.com/matzehuels/relviz/pkg/attr"
	"github.com/matzehuels/relviz/pkg/errors"
)

// Type declaration keywords.
const (
	KeywordElementType = "element-type"
	KeywordNodeType    = "node-type"
	KeywordEdgeType    = "edge-type"
	KeywordClusterType = "cluster-type"
	KeywordContainment = "containment"
)

var typeKeywords = map[string]bool{
	KeywordElementType: true,
	KeywordNodeType:    true,
	KeywordEdgeType:    true,
	KeywordClusterType: true,
	KeywordContainment: true,
}

// connectives separate a type's names from its parents. They carry no
// meaning beyond that.
var connectives = map[string]bool{
	"is-a":  true,
	"is-an": true,
	"are":   true,
}

// IsTypeKeyword reports whether word opens a type declaration.
func IsTypeKeyword(word string) bool { return typeKeywords[word] }

// File is the parsed content of one source.
type File struct {
	Source string
	Types  []*TypeFact // type declarations in source order
	Raw    []*RawFact  // object and relation facts in source order
}

// TypeFact declares a type with its synonyms, parents and defaults.
type TypeFact struct {
	Keyword string     // one of the Keyword* constants
	Names   []string   // synonyms, at least one
	Parents []string   // declared parent order; empty for a root type
	Attrs   attr.Block // without the label key
	Label   *string    // label template; nil when the block has no label key
	Pos     errors.Pos
}

// Segment is one part of a fact header: either a comma-separated name
// list or a parenthesised label.
type Segment struct {
	Names []string // nil for a label
	Label *string  // nil for a name list
}

// IsLabel reports whether the segment is a parenthesised label.
func (s Segment) IsLabel() bool { return s.Label != nil }

// RawFact is an object or relation fact whose category is not yet known.
// Telling the two apart needs the complete type registry, so it is left
// to the model builder.
type RawFact struct {
	Segments []Segment
	Attrs    attr.Block
	Pos      errors.Pos
}

// NameGroups returns the name-list segments, skipping labels.
func (f *RawFact) NameGroups() [][]string {
	var groups [][]string
	for _, s := range f.Segments {
		if !s.IsLabel() {
			groups = append(groups, s.Names)
		}
	}
	return groups
}
