package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/vk/filedag/internal/ctxlog"
)

// DotRenderer renders a Doc by invoking the graphviz dot binary.
type DotRenderer struct {
	// Binary is the dot executable name or path.
	Binary string
}

// NewDotRenderer returns a renderer using the given dot executable.
func NewDotRenderer(binary string) *DotRenderer {
	return &DotRenderer{Binary: binary}
}

// DotSource serializes the Doc into the dot language. Node and edge order
// follow the Doc exactly; the caller is responsible for determinism.
func DotSource(doc *Doc) string {
	var b strings.Builder

	fmt.Fprintf(&b, "digraph %s {\n", quote(doc.Name))
	fmt.Fprintf(&b, "\tstart=%d;\n", doc.Start)
	fmt.Fprintf(&b, "\trankdir=%s;\n", quote(doc.RankDir))
	fmt.Fprintf(&b, "\tranksep=%g;\n", doc.RankSep)
	fmt.Fprintf(&b, "\tnodesep=%g;\n", doc.NodeSep)

	for _, n := range doc.Nodes {
		fmt.Fprintf(&b, "\t%s [label=%s, shape=box, group=%s, style=%s, fontname=%s, fontsize=10, penwidth=2, color=%s, fillcolor=%s, fontcolor=%s];\n",
			quote(n.ID), quote(n.Label), quote(n.Group), quote(n.Style),
			quote("mono"), quote(n.Color), quote(n.FillColor), quote(n.FontColor))
	}

	for _, e := range doc.Edges {
		fmt.Fprintf(&b, "\t%s -> %s [arrowhead=normal, penwidth=1, color=%s];\n",
			quote(e.Source), quote(e.Target), quote(e.Color))
	}

	b.WriteString("}\n")
	return b.String()
}

// Render runs dot synchronously, writing the SVG through a transient file
// that is removed on every exit path, including renderer failure.
func (r *DotRenderer) Render(ctx context.Context, doc *Doc) ([]byte, error) {
	logger := ctxlog.FromContext(ctx)

	tmp, err := os.CreateTemp("", "filedag-*.svg")
	if err != nil {
		return nil, fmt.Errorf("failed to create transient render file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	src := DotSource(doc)
	logger.Debug("Invoking renderer.", "binary", r.Binary, "nodes", len(doc.Nodes), "edges", len(doc.Edges))

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Binary, "-Tsvg", "-o", tmpPath)
	cmd.Stdin = strings.NewReader(src)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("renderer %q failed: %w: %s", r.Binary, err, strings.TrimSpace(stderr.String()))
	}

	svg, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read renderer output: %w", err)
	}

	logger.Debug("Renderer finished.", "bytes", len(svg))
	return svg, nil
}

// quote wraps a value in double quotes with dot-language escaping.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
