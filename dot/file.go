package dot

import (
	"fmt"
	"io"
	"strings"
)

// Dotfile is a directed graph in the Graphviz dot language. Nodes, edges
// and subgraphs are written in the order they were added
type Dotfile struct {
	SubGraph
}

// New returns an empty graph
func New() *Dotfile {
	return &Dotfile{}
}

type Edge struct {
	From string
	To   []string
}

// SubGraph is drawn as a labelled cluster around its nodes
type SubGraph struct {
	label     string
	nodes     []Node
	index     map[string]int
	subgraphs []*SubGraph
}

type Node struct {
	id    string
	label string
	edges []string
}

// Subgraph adds a new cluster with the given label
func (g *SubGraph) Subgraph(label string) *SubGraph {
	sub := &SubGraph{label: label}
	g.subgraphs = append(g.subgraphs, sub)
	return sub
}

// AddNode adds a node, or relabels it if the id is already in the graph
func (g *SubGraph) AddNode(id, label string, edges ...string) {
	if g.index == nil {
		g.index = make(map[string]int)
	}
	if i, in := g.index[id]; in {
		g.nodes[i].label = label
		g.nodes[i].edges = append(g.nodes[i].edges, edges...)
		return
	}
	g.index[id] = len(g.nodes)
	g.nodes = append(g.nodes, Node{id: id, label: label, edges: edges})
}

func (g *SubGraph) HasNode(id string) bool {
	_, in := g.index[id]
	return in
}

// AddEdge connects two nodes of this graph, creating the first one if needed
func (g *SubGraph) AddEdge(from, to string) {
	if !g.HasNode(from) {
		g.AddNode(from, "")
	}
	node := &g.nodes[g.index[from]]
	node.edges = append(node.edges, to)
}

func (g *SubGraph) HasEdge(from, to string) bool {
	if !g.HasNode(from) {
		return false
	}
	for _, e := range g.nodes[g.index[from]].edges {
		if e == to {
			return true
		}
	}
	return false
}

// asDot renders the nodes of the graph and its subgraphs. Edges are returned
// separately, so that they can be written after every cluster is closed
func (g *SubGraph) asDot(builder *strings.Builder, indent string, clusters *int) []Edge {
	var edges []Edge
	for _, node := range g.nodes {
		if node.label != "" {
			fmt.Fprintf(builder, "%s%s [label=%s]\n", indent, quote(node.id), quote(node.label))
		} else {
			fmt.Fprintf(builder, "%s%s\n", indent, quote(node.id))
		}
		if len(node.edges) > 0 {
			edges = append(edges, Edge{From: node.id, To: node.edges})
		}
	}
	for _, sub := range g.subgraphs {
		fmt.Fprintf(builder, "%ssubgraph cluster_%d {\n", indent, *clusters)
		*clusters++
		fmt.Fprintf(builder, "%s  label=%s\n", indent, quote(sub.label))
		edges = append(edges, sub.asDot(builder, indent+"  ", clusters)...)
		fmt.Fprintf(builder, "%s}\n", indent)
	}
	return edges
}

func quote(s string) string {
	return "\"" + strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`).Replace(s) + "\""
}

func commaSeparatedString(list []string) string {
	var total strings.Builder
	for ind, item := range list {
		total.WriteString(quote(item))
		if ind < len(list)-1 {
			total.WriteString(", ")
		}
	}
	return total.String()
}

// String renders the whole graph
func (d *Dotfile) String() string {
	var builder strings.Builder
	builder.WriteString("digraph {\n")

	clusters := 0
	edges := d.asDot(&builder, "  ", &clusters)

	for _, edge := range edges {
		fmt.Fprintf(&builder, "  %s -> {%s}\n", quote(edge.From), commaSeparatedString(edge.To))
	}
	builder.WriteString("}\n")
	return builder.String()
}

func (d *Dotfile) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.String())
	return int64(n), err
}
