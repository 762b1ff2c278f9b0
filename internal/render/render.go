package render

import "context"

// NodeSpec describes one drawable node.
type NodeSpec struct {
	ID        string
	Label     string
	Style     string
	Color     string
	FillColor string
	FontColor string
	// Group hints the layout engine to align nodes sharing a top-level
	// directory on the same rank track.
	Group string
}

// EdgeSpec describes one drawable edge.
type EdgeSpec struct {
	Source string
	Target string
	Color  string
}

// Doc is the full render request: nodes and edges in their final,
// deterministic order plus the layout parameters from the theme.
type Doc struct {
	Name    string
	RankDir string
	RankSep float64
	NodeSep float64
	Start   int
	Nodes   []NodeSpec
	Edges   []EdgeSpec
}

// Renderer turns a Doc into an SVG document. Implementations must emit,
// for every edge, an adjacent comment line identifying its source→target
// pair; the annotation pass depends on that marker-then-element contract.
type Renderer interface {
	Render(ctx context.Context, doc *Doc) ([]byte, error)
}
