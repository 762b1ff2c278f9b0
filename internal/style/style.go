// Package style deterministically assigns visual encodings: one provenance
// tint per source node, evenly spaced around the hue wheel, and a line style
// per structural role. Identical graph and theme inputs always produce
// identical assignments.
package style

import (
	"fmt"
	"math"
	"strings"

	"github.com/vk/filedag/internal/dag"
	"github.com/vk/filedag/internal/theme"
)

// roleStyles are the fixed graphviz style lists per role. The dashed token
// marks nodes the plan says will be rebuilt; it is swapped for solid on
// up-to-date nodes.
var roleStyles = map[dag.Role]string{
	dag.RoleSource: "solid,rounded",
	dag.RoleHub:    "dashed,rounded",
	dag.RoleTarget: "dashed,bold",
}

// Assigner owns the color and style lookup tables for one graph. It is
// constructed per invocation; there are no process-wide tables.
type Assigner struct {
	graph   *dag.Graph
	palette theme.Palette
	tints   map[string]string
}

// NewAssigner computes the tint table for g. Hues are evenly spaced points
// on the wheel, handed out in reverse sorted order: the lexicographically
// last source gets hue 0. The reversal is a compatibility contract with the
// tool's prior output, not an artifact of iteration order.
func NewAssigner(g *dag.Graph, th *theme.Theme) *Assigner {
	a := &Assigner{
		graph:   g,
		palette: th.Palette,
		tints:   make(map[string]string),
	}

	sources := g.SourceNodes()
	n := len(sources)
	for i, node := range sources {
		hue := round3(float64(n-1-i) / float64(n))
		a.tints[node] = fmt.Sprintf("%.3f %.3f %.3f %g",
			hue, a.palette.Saturation, a.palette.Value, a.palette.Alpha)
	}

	return a
}

// NodeColor returns the node's provenance tint, or the neutral palette
// color for targets and hubs.
func (a *Assigner) NodeColor(node string) string {
	if c, ok := a.tints[node]; ok {
		return c
	}
	return a.palette.Neutral
}

// EdgeColor tints an edge by its source endpoint, so everything derived
// from one input can be traced by color.
func (a *Assigner) EdgeColor(e dag.Edge) string {
	return a.NodeColor(e.Source)
}

// NodeStyle returns the role's line style. Nodes that are not pending an
// update render solid instead of dashed.
func (a *Assigner) NodeStyle(node string) string {
	role, ok := a.graph.Role(node)
	if !ok {
		return roleStyles[dag.RoleSource]
	}
	s := roleStyles[role]
	if !a.graph.PendingUpdate(node) {
		s = strings.ReplaceAll(s, "dashed", "solid")
	}
	return s
}

// round3 rounds to three decimals, matching the hue precision the renderer
// has always been fed.
func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
