// Package testutil provides the shared harness for pipeline-level tests:
// a thread-safe log buffer, a deterministic in-memory renderer, and a
// helper that runs the whole application against an inline summary.
package testutil

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/filedag/internal/app"
	"github.com/vk/filedag/internal/render"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// FakeRenderer emits a deterministic SVG skeleton honoring the
// marker-then-element contract real graphviz output follows, and records
// the Doc it was handed for assertions.
type FakeRenderer struct {
	LastDoc *render.Doc
	Err     error
}

// Render implements render.Renderer.
func (f *FakeRenderer) Render(_ context.Context, doc *render.Doc) ([]byte, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.LastDoc = doc

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="no"?>` + "\n")
	b.WriteString("<!-- Generated by fake renderer -->\n")
	b.WriteString(`<svg width="100pt" height="100pt">` + "\n")
	b.WriteString(`<g class="graph">` + "\n")
	for i, n := range doc.Nodes {
		b.WriteString("<!-- " + n.ID + " -->\n")
		b.WriteString(`<g id="node` + strconv.Itoa(i+1) + `" class="node">` + "\n")
		b.WriteString("<title>" + n.ID + "</title>\n")
		b.WriteString("</g>\n")
	}
	for i, e := range doc.Edges {
		b.WriteString("<!-- " + e.Source + "&#45;&gt;" + e.Target + " -->\n")
		b.WriteString(`<g id="edge` + strconv.Itoa(i+1) + `" class="edge">` + "\n")
		b.WriteString("</g>\n")
	}
	b.WriteString("</g>\n")
	b.WriteString("</svg>\n")
	return []byte(b.String()), nil
}

// PipelineResult holds the outcomes of a pipeline test run.
type PipelineResult struct {
	Document  string
	LogOutput string
	Err       error
	Renderer  *FakeRenderer
}

// RunPipelineTest runs the full application over the given summary text
// using the fake renderer, returning the produced document, logs and error.
func RunPipelineTest(t *testing.T, summaryText string) *PipelineResult {
	t.Helper()
	return RunPipelineTestWithConfig(t, summaryText, app.Config{
		DotBinary: "dot",
		LogFormat: "text",
		LogLevel:  "debug",
	})
}

// RunPipelineTestWithConfig is RunPipelineTest with a caller-provided
// config (theme path, log settings).
func RunPipelineTestWithConfig(t *testing.T, summaryText string, cfg app.Config) *PipelineResult {
	t.Helper()

	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	logs := &SafeBuffer{}
	renderer := &FakeRenderer{}

	a, err := app.NewApp(out, logs, strings.NewReader(summaryText), appConfig, renderer)
	require.NoError(t, err)

	runErr := a.Run(context.Background())
	return &PipelineResult{
		Document:  out.String(),
		LogOutput: logs.String(),
		Err:       runErr,
		Renderer:  renderer,
	}
}
