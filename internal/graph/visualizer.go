package graph

import (
	"fmt"
	"io"
	"strings"
)

// Labeler is implemented by providers that want extra text in node labels.
type Labeler interface {
	Label() string
}

// Visualizer provides methods to visualize the dependency graph
type Visualizer struct {
	graph *DependencyGraph
}

// NewVisualizer creates a new graph visualizer
func NewVisualizer(graph *DependencyGraph) *Visualizer {
	return &Visualizer{graph: graph}
}

// WriteDOT writes the graph in Graphviz DOT format
func (v *Visualizer) WriteDOT(w io.Writer) error {
	v.graph.mu.RLock()
	defer v.graph.mu.RUnlock()

	var b strings.Builder
	b.WriteString("digraph dependencies {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box];\n")

	nodeIDs := make(map[NodeKey]string, len(v.graph.nodes))
	for i, key := range v.graph.order {
		node := v.graph.nodes[key]
		nodeID := fmt.Sprintf("n%d", i)
		nodeIDs[key] = nodeID

		fmt.Fprintf(&b, "  %s [label=%q, fillcolor=%q, style=filled];\n",
			nodeID, formatNodeLabel(node), nodeColor(node))
	}

	for _, from := range v.graph.order {
		for _, to := range v.graph.edges[from] {
			fmt.Fprintf(&b, "  %s -> %s;\n", nodeIDs[from], nodeIDs[to])
		}
	}

	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteAdjacencyList writes the graph as an adjacency list
func (v *Visualizer) WriteAdjacencyList(w io.Writer) error {
	v.graph.mu.RLock()
	defer v.graph.mu.RUnlock()

	var b strings.Builder
	for _, from := range v.graph.order {
		tos := v.graph.edges[from]
		names := make([]string, len(tos))
		for i, to := range tos {
			names[i] = to.String()
		}
		fmt.Fprintf(&b, "%s -> [%s]\n", from.String(), strings.Join(names, ", "))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// formatNodeLabel creates a label for a node
func formatNodeLabel(node *Node) string {
	label := node.Key.String()
	if l, ok := node.Provider.(Labeler); ok {
		label += "\n" + l.Label()
	}
	return label
}

// nodeColor determines the color for a node based on its properties
func nodeColor(node *Node) string {
	if node.Provider == nil {
		return "lightgray" // missing provider
	}
	return "lightblue"
}
