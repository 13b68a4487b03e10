package types

import "github.com/matzehuels/relviz/pkg/factparser"

// Kind says which fact category may use a type.
type Kind string

const (
	KindElement     Kind = "element"     // any object
	KindNode        Kind = "node"        // drawable vertex
	KindEdge        Kind = "edge"        // drawable relation
	KindCluster     Kind = "cluster"     // vertex that can contain others
	KindContainment Kind = "containment" // nesting relation
)

var keywordKinds = map[string]Kind{
	factparser.KeywordElementType: KindElement,
	factparser.KeywordNodeType:    KindNode,
	factparser.KeywordEdgeType:    KindEdge,
	factparser.KeywordClusterType: KindCluster,
	factparser.KeywordContainment: KindContainment,
}

// KindOf maps a declaration keyword to its kind.
func KindOf(keyword string) (Kind, bool) {
	k, ok := keywordKinds[keyword]
	return k, ok
}

// IsObject reports whether the kind is used by object facts.
func (k Kind) IsObject() bool {
	return k == KindElement || k == KindNode || k == KindCluster
}

// IsRelation reports whether the kind is used by relation facts.
func (k Kind) IsRelation() bool {
	return k == KindEdge || k == KindContainment
}
