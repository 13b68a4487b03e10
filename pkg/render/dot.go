package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/matzehuels/relviz/pkg/attr"
	"github.com/matzehuels/relviz/pkg/model"
)

// AnchorPrefix names the invisible node placed inside a cluster so that
// edges can end on the cluster itself.
const AnchorPrefix = "__anchor_"

// ClusterPrefix is prepended to a cluster name to form its subgraph ID.
// Graphviz only draws a frame around subgraphs whose ID starts with it.
const ClusterPrefix = "cluster"

// Options configures DOT generation.
type Options struct {
	// Name is the graph ID. Defaults to "relviz".
	Name string
	// GraphAttrs are emitted as graph attributes before any statement.
	GraphAttrs attr.Block
}

// ToDOT converts a resolved graph to Graphviz DOT source.
//
// Clusters become subgraphs nested the way the containment forest nests
// them. Structural-only edges are not drawn. An edge with a cluster at
// either end is attached to the cluster's anchor node and clipped at the
// cluster frame with ltail or lhead.
func ToDOT(g *model.Graph, opts Options) string {
	name := opts.Name
	if name == "" {
		name = "relviz"
	}
	anchors := anchoredClusters(g)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %s {\n", quoteID(name))
	if len(anchors) > 0 {
		buf.WriteString("  compound=true;\n")
	}
	for _, p := range opts.GraphAttrs.Pairs() {
		fmt.Fprintf(&buf, "  %s=%s;\n", quoteID(p.Key), quoteValue(p.Value))
	}

	w := &dotWriter{buf: &buf, g: g, anchors: anchors}
	for _, root := range g.Roots() {
		w.vertex(root, 1)
	}

	for _, e := range g.Edges() {
		if !e.Visible {
			continue
		}
		w.edge(e)
	}

	buf.WriteString("}\n")
	return buf.String()
}

type dotWriter struct {
	buf     *bytes.Buffer
	g       *model.Graph
	anchors map[string]bool
}

func (w *dotWriter) vertex(name string, depth int) {
	v, ok := w.g.Vertex(name)
	if !ok {
		return
	}
	indent := strings.Repeat("  ", depth)
	if !v.IsCluster() {
		fmt.Fprintf(w.buf, "%s%s%s;\n", indent, quoteID(v.Name), fmtAttrs(v.Label, nil, nil, v.Attrs))
		return
	}

	fmt.Fprintf(w.buf, "%ssubgraph %s {\n", indent, quoteID(ClusterPrefix+v.Name))
	inner := indent + "  "
	label := v.Name
	if v.Label != nil {
		label = *v.Label
	}
	fmt.Fprintf(w.buf, "%slabel=%s;\n", inner, quoteValue(label))
	for _, p := range v.Attrs.Pairs() {
		fmt.Fprintf(w.buf, "%s%s=%s;\n", inner, quoteID(p.Key), quoteValue(p.Value))
	}
	if w.anchors[v.Name] {
		fmt.Fprintf(w.buf, "%s%s [shape=point, style=invis, width=0, height=0, label=\"\"];\n",
			inner, quoteID(AnchorPrefix+v.Name))
	}
	for _, m := range w.g.Members(v.Name) {
		w.vertex(m, depth+1)
	}
	fmt.Fprintf(w.buf, "%s}\n", indent)
}

func (w *dotWriter) edge(e *model.Edge) {
	from, to := e.From, e.To
	var ends attr.Block
	if w.isCluster(from) {
		ends.Set("ltail", ClusterPrefix+from)
		from = AnchorPrefix + from
	}
	if w.isCluster(to) {
		ends.Set("lhead", ClusterPrefix+to)
		to = AnchorPrefix + to
	}
	ends.Merge(e.Attrs)
	fmt.Fprintf(w.buf, "  %s -> %s%s;\n", quoteID(from), quoteID(to),
		fmtAttrs(e.Label, e.TailLabel, e.HeadLabel, ends))
}

func (w *dotWriter) isCluster(name string) bool {
	v, ok := w.g.Vertex(name)
	return ok && v.IsCluster()
}

// anchoredClusters returns the clusters that a drawn edge ends on.
func anchoredClusters(g *model.Graph) map[string]bool {
	out := make(map[string]bool)
	for _, e := range g.Edges() {
		if !e.Visible {
			continue
		}
		for _, end := range []string{e.From, e.To} {
			if v, ok := g.Vertex(end); ok && v.IsCluster() {
				out[end] = true
			}
		}
	}
	return out
}

func fmtAttrs(label, tail, head *string, attrs attr.Block) string {
	var parts []string
	if label != nil {
		parts = append(parts, "label="+quoteValue(*label))
	}
	if tail != nil {
		parts = append(parts, "taillabel="+quoteValue(*tail))
	}
	if head != nil {
		parts = append(parts, "headlabel="+quoteValue(*head))
	}
	for _, p := range attrs.Pairs() {
		parts = append(parts, quoteID(p.Key)+"="+quoteValue(p.Value))
	}
	if len(parts) == 0 {
		return ""
	}
	return " [" + strings.Join(parts, ", ") + "]"
}

var plainID = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// dotKeywords are reserved in DOT regardless of case.
var dotKeywords = map[string]bool{
	"node": true, "edge": true, "graph": true,
	"digraph": true, "subgraph": true, "strict": true,
}

// quoteID returns s as a DOT identifier, quoting it unless it is a plain
// alphanumeric ID that is not a keyword.
func quoteID(s string) string {
	if plainID.MatchString(s) && !dotKeywords[strings.ToLower(s)] {
		return s
	}
	return quote(s)
}

// quoteValue returns an attribute value. Values of the form <...> are
// HTML-like labels and pass through unquoted.
func quoteValue(s string) string {
	if len(s) >= 2 && s[0] == '<' && s[len(s)-1] == '>' {
		return s
	}
	return quote(s)
}

// quote wraps s in double quotes. Backslash sequences are kept for
// Graphviz to interpret (\n, \l, \N); only quotes, line breaks and a
// dangling final backslash are escaped.
func quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
		case '\\':
			if i+1 == len(s) || s[i+1] == '\n' || s[i+1] == '\r' {
				sb.WriteString(`\\`)
				continue
			}
			sb.WriteByte(c)
			sb.WriteByte(s[i+1])
			i++
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
