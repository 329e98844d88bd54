// Package featgraph models the "enables" relation between feature flags as
// a directed graph, so the resolver can walk activation closures and reject
// cyclic feature definitions.
package featgraph

import (
	"fmt"
	"sort"
	"sync"
)

// node is one feature flag and its outgoing "enables" edges.
type node struct {
	name    string
	enables map[string]*node
}

// Graph is the feature-activation graph. Edges point from a feature to the
// features it enables.
type Graph struct {
	mutex sync.RWMutex
	nodes map[string]*node
}

// New creates an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// AddFeature adds a feature node to the graph. Adding an existing feature
// is a no-op.
func (g *Graph) AddFeature(name string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.nodes[name]; ok {
		return
	}
	g.nodes[name] = &node{
		name:    name,
		enables: make(map[string]*node),
	}
}

// AddEnables records that activating `from` also activates `to`. Both
// features must already exist; a self-edge is rejected.
func (g *Graph) AddEnables(from, to string) error {
	if from == to {
		return fmt.Errorf("feature '%s' cannot enable itself", from)
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	fromNode, ok := g.nodes[from]
	if !ok {
		return fmt.Errorf("feature not found: %s", from)
	}
	toNode, ok := g.nodes[to]
	if !ok {
		return fmt.Errorf("feature not found: %s", to)
	}

	fromNode.enables[to] = toNode
	return nil
}

// DetectCycles returns a non-nil error if the enables relation contains a
// cycle, naming the first feature found inside one.
func (g *Graph) DetectCycles() error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	// Classic DFS with a permanent set (fully explored, known safe) and a
	// temporary set (the current recursion stack).
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var visit func(n *node) error
	visit = func(n *node) error {
		if permanent[n.name] {
			return nil
		}
		if temporary[n.name] {
			return fmt.Errorf("feature cycle detected involving '%s'", n.name)
		}

		temporary[n.name] = true
		for _, next := range n.enables {
			if err := visit(next); err != nil {
				return err
			}
		}
		delete(temporary, n.name)
		permanent[n.name] = true
		return nil
	}

	for _, n := range g.nodes {
		if !permanent[n.name] {
			if err := visit(n); err != nil {
				return err
			}
		}
	}
	return nil
}

// Closure returns every feature reachable from the given roots, including
// the roots themselves, in sorted order. Unknown roots are an error.
func (g *Graph) Closure(roots []string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	seen := make(map[string]bool)
	var visit func(n *node)
	visit = func(n *node) {
		if seen[n.name] {
			return
		}
		seen[n.name] = true
		for _, next := range n.enables {
			visit(next)
		}
	}

	for _, root := range roots {
		n, ok := g.nodes[root]
		if !ok {
			return nil, fmt.Errorf("feature not found: %s", root)
		}
		visit(n)
	}

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}
