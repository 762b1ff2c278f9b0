package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vk/filedag/internal/annotate"
	"github.com/vk/filedag/internal/ctxlog"
	"github.com/vk/filedag/internal/dag"
	"github.com/vk/filedag/internal/render"
	"github.com/vk/filedag/internal/style"
	"github.com/vk/filedag/internal/summary"
)

// Run executes the full pipeline: parse summary, build graph, assign
// styles, render, annotate, write. Nothing is written to the output on any
// fatal path; only a complete, annotated document ever reaches outW.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	pairs, err := a.readSummary()
	if err != nil {
		return err
	}
	a.logger.Debug("Summary normalized.", "pair_count", len(pairs))

	graph, err := dag.Build(pairs)
	if err != nil {
		return fmt.Errorf("failed to build dependency graph: %w", err)
	}
	a.logger.Info("Dependency graph built.",
		"nodes", len(graph.Nodes()), "edges", len(graph.Edges()), "basedirs", len(graph.Basedirs()))

	assigner := style.NewAssigner(graph, a.theme)
	doc := a.composeDoc(graph, assigner)

	svg, err := a.renderer.Render(ctx, doc)
	if err != nil {
		return fmt.Errorf("rendering failed: %w", err)
	}
	a.logger.Debug("Renderer produced document.", "bytes", len(svg))

	annotated := annotate.Rewrite(ctx, svg, a.theme.Hover.StrokeWidth)

	if err := a.writeDocument(annotated); err != nil {
		return err
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// readSummary opens the configured summary source and normalizes it. The
// input is fully buffered; graph construction needs the whole record set
// before role classification means anything.
func (a *App) readSummary() ([]summary.Pair, error) {
	var in io.Reader = a.inR
	if a.config.SummaryPath != "" {
		f, err := os.Open(a.config.SummaryPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open summary file: %w", err)
		}
		defer f.Close()
		in = f
	}

	pairs, err := summary.Parse(in)
	if err != nil {
		return nil, fmt.Errorf("failed to parse detailed summary: %w", err)
	}
	return pairs, nil
}

// composeDoc assembles the render request. Nodes go in sorted key order and
// edges in first-seen order so the renderer sees a reproducible document.
func (a *App) composeDoc(graph *dag.Graph, assigner *style.Assigner) *render.Doc {
	doc := &render.Doc{
		Name:    "fileDAG",
		RankDir: a.theme.Graph.RankDir,
		RankSep: a.theme.Graph.RankSep,
		NodeSep: a.theme.Graph.NodeSep,
		Start:   a.theme.Graph.Start,
	}

	for _, node := range graph.Nodes() {
		doc.Nodes = append(doc.Nodes, render.NodeSpec{
			ID:        node,
			Label:     node,
			Style:     assigner.NodeStyle(node),
			Color:     assigner.NodeColor(node),
			FillColor: "white",
			FontColor: "black",
			Group:     graph.PathAttrs(node).Basedir,
		})
	}

	for _, e := range graph.Edges() {
		doc.Edges = append(doc.Edges, render.EdgeSpec{
			Source: e.Source,
			Target: e.Target,
			Color:  assigner.EdgeColor(e),
		})
	}

	return doc
}

// writeDocument delivers the final document to the configured destination.
func (a *App) writeDocument(doc []byte) error {
	out := a.outW
	if a.config.OutputPath != "" {
		f, err := os.Create(a.config.OutputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if _, err := out.Write(doc); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}
