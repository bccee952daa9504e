package graph

import (
	"fmt"
	"reflect"
	"sync"
)

// Provider defines the interface for bindings that can be added to the graph.
type Provider interface {
	// GetType returns the type this provider produces
	GetType() reflect.Type

	// GetDependencies returns the types needed to construct it
	GetDependencies() []reflect.Type
}

// DependencyGraph manages the dependency relationships between bindings.
// It provides cycle detection and topological sorting.
type DependencyGraph struct {
	mu    sync.RWMutex
	nodes map[NodeKey]*Node
	edges map[NodeKey][]NodeKey // adjacency list representation
	order []NodeKey             // insertion order, for deterministic traversal

	sortedNodes      []*Node
	sortedNodesDirty bool
}

// NodeKey uniquely identifies a node in the graph
type NodeKey struct {
	Type reflect.Type
}

// Node represents a binding in the dependency graph
type Node struct {
	Key      NodeKey
	Provider Provider // nil for types that are referenced but not provided
}

// NewDependencyGraph creates a new dependency graph
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		nodes:            make(map[NodeKey]*Node),
		edges:            make(map[NodeKey][]NodeKey),
		sortedNodesDirty: true,
	}
}

// AddProvider adds a provider to the graph. If the provider closes a cycle
// it is removed again and a CircularDependencyError is returned.
func (g *DependencyGraph) AddProvider(provider Provider) error {
	if provider == nil {
		return fmt.Errorf("provider cannot be nil")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	key := NodeKey{Type: provider.GetType()}
	node := g.ensureNode(key)
	previous := node.Provider
	node.Provider = provider

	deps := provider.GetDependencies()
	dependencies := make([]NodeKey, 0, len(deps))
	for _, dep := range deps {
		depKey := NodeKey{Type: dep}
		dependencies = append(dependencies, depKey)
		g.ensureNode(depKey)
	}

	oldEdges, hadEdges := g.edges[key]
	g.edges[key] = dependencies
	g.sortedNodesDirty = true

	if err := g.detectCyclesFrom(key); err != nil {
		node.Provider = previous
		if hadEdges {
			g.edges[key] = oldEdges
		} else {
			delete(g.edges, key)
		}
		return err
	}

	return nil
}

func (g *DependencyGraph) ensureNode(key NodeKey) *Node {
	node, ok := g.nodes[key]
	if !ok {
		node = &Node{Key: key}
		g.nodes[key] = node
		g.order = append(g.order, key)
	}
	return node
}

// TopologicalSort returns nodes in dependency order (dependencies first).
// Ties are broken by insertion order.
func (g *DependencyGraph) TopologicalSort() ([]*Node, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.sortedNodesDirty && g.sortedNodes != nil {
		return append([]*Node(nil), g.sortedNodes...), nil
	}

	if err := g.detectCycles(); err != nil {
		return nil, err
	}

	result := make([]*Node, 0, len(g.nodes))
	visited := make(map[NodeKey]bool, len(g.nodes))

	var visit func(key NodeKey)
	visit = func(key NodeKey) {
		if visited[key] {
			return
		}
		visited[key] = true

		for _, dep := range g.edges[key] {
			visit(dep)
		}

		result = append(result, g.nodes[key])
	}

	for _, key := range g.order {
		visit(key)
	}

	g.sortedNodes = result
	g.sortedNodesDirty = false

	return append([]*Node(nil), result...), nil
}

func (g *DependencyGraph) detectCycles() error {
	visited := make(map[NodeKey]bool, len(g.nodes))
	for _, key := range g.order {
		if visited[key] {
			continue
		}
		if err := g.walk(key, visited); err != nil {
			return err
		}
	}
	return nil
}

// detectCyclesFrom performs DFS cycle detection from a specific node
func (g *DependencyGraph) detectCyclesFrom(start NodeKey) error {
	return g.walk(start, make(map[NodeKey]bool))
}

// walk runs an iterative DFS from start. visited collects fully explored
// nodes so that repeated walks share work.
func (g *DependencyGraph) walk(start NodeKey, visited map[NodeKey]bool) error {
	type frame struct {
		key  NodeKey
		next int
	}

	onPath := map[NodeKey]int{start: 0}
	path := []NodeKey{start}
	stack := []frame{{key: start}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		edges := g.edges[top.key]

		if top.next >= len(edges) {
			visited[top.key] = true
			delete(onPath, top.key)
			path = path[:len(path)-1]
			stack = stack[:len(stack)-1]
			continue
		}

		dep := edges[top.next]
		top.next++

		if idx, ok := onPath[dep]; ok {
			cycle := append([]NodeKey(nil), path[idx:]...)
			return CircularDependencyError{Node: dep, Path: cycle}
		}

		if visited[dep] {
			continue
		}

		onPath[dep] = len(path)
		path = append(path, dep)
		stack = append(stack, frame{key: dep})
	}

	return nil
}

// String returns a string representation of the node key
func (k NodeKey) String() string {
	if k.Type == nil {
		return "<nil>"
	}
	return k.Type.String()
}
