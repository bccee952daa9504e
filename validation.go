package injector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/junioryono/injector/internal/graph"
)

// node adapts a bean to graph.Provider.
type node struct {
	bean *bean
	deps []reflect.Type
}

func (n node) GetType() reflect.Type           { return n.bean.typ }
func (n node) GetDependencies() []reflect.Type { return n.deps }
func (n node) Label() string                   { return n.bean.describe() }

// dependencyGraph builds the graph of installed bindings. Auto-wired
// bindings depend on the parameters of the constructor that would be
// selected now, or of their largest candidate when none can be selected.
// Factories and instances have no known dependencies.
func (c *Container) dependencyGraph() (*graph.DependencyGraph, error) {
	g := graph.NewDependencyGraph()
	var errs []error

	for _, b := range c.beansInOrder() {
		deps, err := c.dependencies(b)
		if err != nil {
			errs = append(errs, err)
		}

		if err := g.AddProvider(node{bean: b, deps: deps}); err != nil {
			errs = append(errs, err)
		}
	}

	return g, errors.Join(errs...)
}

func (c *Container) dependencies(b *bean) ([]reflect.Type, error) {
	if b.kind != kindAutowired {
		return nil, nil
	}

	cands, err := c.candidates(b.impl)
	if err != nil {
		return nil, err
	}

	k, err := c.selectCandidate(b.impl, cands)
	if err != nil {
		return c.largestCandidate(cands).dependencies(), err
	}

	return k.dependencies(), nil
}

// largestCandidate returns the candidate with the most parameters within
// the maximum arity, or the zero candidate.
func (c *Container) largestCandidate(cands []candidate) candidate {
	var best candidate
	bestArity := -1
	for _, k := range cands {
		if n := len(k.params()); n <= c.maxArity && n > bestArity {
			best, bestArity = k, n
		}
	}
	return best
}

func (k candidate) dependencies() []reflect.Type {
	var deps []reflect.Type
	for _, p := range k.params() {
		if p != injectorType {
			deps = append(deps, p)
		}
	}
	return deps
}

// Validate checks every auto-wired binding for a satisfiable constructor
// and the whole graph for circular dependencies. All problems found are
// returned joined.
func (c *Container) Validate() error {
	if c.closed.Load() {
		return ErrContainerClosed
	}

	_, err := c.dependencyGraph()
	return err
}

// Preload validates the container and then creates every singleton,
// dependencies first. It stops at the first failure or when ctx is done.
func (c *Container) Preload(ctx context.Context) error {
	if c.closed.Load() {
		return ErrContainerClosed
	}

	g, err := c.dependencyGraph()
	if err != nil {
		return err
	}

	sorted, err := g.TopologicalSort()
	if err != nil {
		return err
	}

	for _, n := range sorted {
		provider, ok := n.Provider.(node)
		if !ok || provider.bean.lifetime != Singleton || provider.bean.ready.Load() {
			continue
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := c.GetType(provider.bean.typ); err != nil {
			return fmt.Errorf("preload %s: %w", formatType(provider.bean.typ), err)
		}
	}

	c.logger.Debug("preloaded singletons", "count", len(sorted))

	return nil
}

// WriteDOT writes the dependency graph of the installed bindings in
// Graphviz DOT format. Dependencies that are not installed are drawn in
// gray.
func (c *Container) WriteDOT(w io.Writer) error {
	g, _ := c.dependencyGraph()
	return graph.NewVisualizer(g).WriteDOT(w)
}

// WriteDependencies writes one line per type in the dependency graph,
// listing its direct dependencies:
//
//	*app.Service -> [*app.Logger, *app.Database]
func (c *Container) WriteDependencies(w io.Writer) error {
	g, _ := c.dependencyGraph()
	return graph.NewVisualizer(g).WriteAdjacencyList(w)
}
