package dag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vk/filedag/internal/summary"
)

// PlanNoUpdate is the plan-field marker meaning the producing rule will not
// rerun. Nodes whose merged plan lacks this marker are pending a rebuild.
const PlanNoUpdate = "no update"

// Graph is an immutable file dependency graph. All lookup tables are owned
// by the instance; there is no package-level mutable state.
type Graph struct {
	edges       []Edge
	nodes       []string
	descriptors map[string]summary.Descriptor
	asSource    map[string]bool
	asTarget    map[string]bool
}

// Build constructs the graph from normalized pairs. Edges are deduplicated
// preserving first-seen order, the node set is the union of all endpoints,
// and descriptors are merged with target occurrences taking precedence over
// blank source occurrences. A pair with an empty node key violates the
// normalizer contract and fails the whole build.
func Build(pairs []summary.Pair) (*Graph, error) {
	g := &Graph{
		descriptors: make(map[string]summary.Descriptor),
		asSource:    make(map[string]bool),
		asTarget:    make(map[string]bool),
	}

	seen := make(map[Edge]bool)
	for i, p := range pairs {
		if p.Source.Node == "" || p.Target.Node == "" {
			return nil, fmt.Errorf("pair %d has an empty node key (source=%q, target=%q)", i, p.Source.Node, p.Target.Node)
		}

		e := Edge{Source: p.Source.Node, Target: p.Target.Node}
		if !seen[e] {
			seen[e] = true
			g.edges = append(g.edges, e)
		}

		g.asSource[p.Source.Node] = true
		g.asTarget[p.Target.Node] = true

		if _, ok := g.descriptors[p.Source.Node]; !ok {
			g.descriptors[p.Source.Node] = p.Source
		}
	}

	// The record that produced a file describes it authoritatively: target
	// descriptors overwrite the blank source seeds in a second pass so the
	// merge does not depend on row order.
	for _, p := range pairs {
		g.descriptors[p.Target.Node] = p.Target
	}

	for node := range g.descriptors {
		g.nodes = append(g.nodes, node)
	}
	sort.Strings(g.nodes)

	return g, nil
}

// Nodes returns all node keys in lexicographic order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Edges returns the deduplicated edges in first-seen order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Role classifies a node by its edge membership. The second return value is
// false for keys not present in the graph.
func (g *Graph) Role(node string) (Role, bool) {
	src := g.asSource[node]
	tgt := g.asTarget[node]
	switch {
	case src && tgt:
		return RoleHub, true
	case src:
		return RoleSource, true
	case tgt:
		return RoleTarget, true
	default:
		return RoleSource, false
	}
}

// SourceNodes returns the keys of all source-role nodes in lexicographic order.
func (g *Graph) SourceNodes() []string {
	var out []string
	for _, n := range g.nodes {
		if role, ok := g.Role(n); ok && role == RoleSource {
			out = append(out, n)
		}
	}
	return out
}

// Descriptor returns the merged descriptor for a node.
func (g *Graph) Descriptor(node string) (summary.Descriptor, bool) {
	d, ok := g.descriptors[node]
	return d, ok
}

// PendingUpdate reports whether the node's producing plan indicates it will
// be rebuilt. Pure sources have no producing rule and are never pending;
// the same goes for keys not present in the graph.
func (g *Graph) PendingUpdate(node string) bool {
	role, ok := g.Role(node)
	if !ok || role == RoleSource {
		return false
	}
	d := g.descriptors[node]
	return !strings.Contains(d.Plan, PlanNoUpdate)
}

// PathAttrs splits a node key on its path separator into layout attributes.
func (g *Graph) PathAttrs(node string) PathAttrs {
	parts := strings.Split(node, "/")
	return PathAttrs{
		Basedir: parts[0],
		Stem:    parts[len(parts)-1],
	}
}

// Basedirs returns the distinct top-level directories in lexicographic order.
func (g *Graph) Basedirs() []string {
	set := make(map[string]bool)
	for _, n := range g.nodes {
		set[g.PathAttrs(n).Basedir] = true
	}
	out := make([]string, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
