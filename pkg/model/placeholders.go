package model

import "strings"

// Placeholders recognised in label templates. A template is expanded per
// vertex or edge once the cluster structure is known.
const (
	PlaceholderName    = 'N' // vertex name, or the relation name of an edge
	PlaceholderCluster = 'G' // enclosing cluster; for an edge the innermost one enclosing both ends
	PlaceholderTail    = 'T' // tail vertex of an edge
	PlaceholderHead    = 'H' // head vertex of an edge
)

// expand replaces \N, \G, \T and \H with the values in vars. Other
// backslash sequences, including \\, are copied unchanged for the renderer.
func expand(tmpl string, vars map[byte]string) string {
	if !strings.ContainsRune(tmpl, '\\') {
		return tmpl
	}

	var sb strings.Builder
	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		if c != '\\' || i+1 == len(tmpl) {
			sb.WriteByte(c)
			continue
		}
		i++
		if v, ok := vars[tmpl[i]]; ok {
			sb.WriteString(v)
			continue
		}
		sb.WriteByte(c)
		sb.WriteByte(tmpl[i])
	}
	return sb.String()
}

func vertexVars(g *Graph, v *Vertex) map[byte]string {
	parent, _ := g.Parent(v.Name)
	return map[byte]string{
		PlaceholderName:    v.Name,
		PlaceholderCluster: parent,
	}
}

func edgeVars(g *Graph, e *Edge) map[byte]string {
	common, _ := g.CommonContainer(e.From, e.To)
	return map[byte]string{
		PlaceholderName:    e.Relation,
		PlaceholderCluster: common,
		PlaceholderTail:    e.From,
		PlaceholderHead:    e.To,
	}
}
