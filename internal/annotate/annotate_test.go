package annotate

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rewrite(t *testing.T, svg string) string {
	t.Helper()
	return string(Rewrite(context.Background(), []byte(svg), 5))
}

func TestClassToken(t *testing.T) {
	assert.Equal(t, "data-raw-a-txt", ClassToken("data/raw/a.txt"))
	assert.Equal(t, "Snakefile", ClassToken("Snakefile"))
}

func TestRewrite(t *testing.T) {
	t.Run("edge marker injects source class into the next line", func(t *testing.T) {
		svg := strings.Join([]string{
			`<svg>`,
			`<!-- a/x&#45;&gt;b/y -->`,
			`<g id="edge1" class="edge">`,
			`</g>`,
			`</svg>`,
		}, "\n")

		out := rewrite(t, svg)
		assert.Contains(t, out, `class="edge a-x">`)
	})

	t.Run("node marker annotates the node element", func(t *testing.T) {
		svg := strings.Join([]string{
			`<svg>`,
			`<!-- a/x -->`,
			`<g id="node1" class="node">`,
			`</g>`,
			`</svg>`,
		}, "\n")

		out := rewrite(t, svg)
		assert.Contains(t, out, `class="node a-x">`)
	})

	t.Run("renderer class is kept, not clobbered", func(t *testing.T) {
		svg := strings.Join([]string{
			`<svg>`,
			`<!-- a/x&#45;&gt;b/y -->`,
			`<g id="edge1" class="edge">`,
			`</svg>`,
		}, "\n")

		out := rewrite(t, svg)
		assert.Contains(t, out, `class="edge a-x">`)
		assert.NotContains(t, out, `class="a-x">`)
	})

	t.Run("stylesheet is appended before the closing svg tag", func(t *testing.T) {
		svg := strings.Join([]string{
			`<svg>`,
			`<!-- a/x&#45;&gt;b/y -->`,
			`<g id="edge1" class="edge">`,
			`</svg>`,
		}, "\n")

		out := rewrite(t, svg)
		assert.Contains(t, out, "g.edge:hover * {stroke-width: 5;}")
		assert.Contains(t, out, ".node.a-x:hover ~ .a-x{stroke-width: 5;}")
		assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "</style></svg>"))
	})

	t.Run("stylesheet rules are sorted by class token", func(t *testing.T) {
		svg := strings.Join([]string{
			`<svg>`,
			`<!-- z/late&#45;&gt;t/out -->`,
			`<g class="edge">`,
			`<!-- a/early&#45;&gt;t/out -->`,
			`<g class="edge">`,
			`</svg>`,
		}, "\n")

		out := rewrite(t, svg)
		assert.Less(t, strings.Index(out, ".node.a-early"), strings.Index(out, ".node.z-late"))
	})

	t.Run("preamble comments without drawable elements are skipped", func(t *testing.T) {
		svg := strings.Join([]string{
			`<!-- Generated by graphviz version 2.43.0 -->`,
			`<!-- Title: fileDAG Pages: 1 -->`,
			`<svg>`,
			`<!-- a/x&#45;&gt;b/y -->`,
			`<g class="edge">`,
			`</svg>`,
		}, "\n")

		out := rewrite(t, svg)
		assert.NotContains(t, out, "Generated-by-graphviz", "banner must not become a class")
		assert.NotContains(t, out, ".node.Title", "title comment must not become a rule")
		assert.Contains(t, out, `class="edge a-x">`)
	})

	t.Run("marker on the final line does not panic", func(t *testing.T) {
		svg := "<svg>\n</svg>\n<!-- a/x&#45;&gt;b/y -->"
		out := rewrite(t, svg)
		assert.Contains(t, out, "</svg>")
	})

	t.Run("document without closing tag gets classes but no stylesheet", func(t *testing.T) {
		svg := strings.Join([]string{
			`<!-- a/x&#45;&gt;b/y -->`,
			`<g class="edge">`,
		}, "\n")

		out := rewrite(t, svg)
		assert.Contains(t, out, `class="edge a-x">`)
		assert.NotContains(t, out, "<style>")
	})

	t.Run("pass is idempotent on already annotated elements", func(t *testing.T) {
		svg := strings.Join([]string{
			`<svg>`,
			`<!-- a/x&#45;&gt;b/y -->`,
			`<g class="edge a-x">`,
			`</svg>`,
		}, "\n")

		out := rewrite(t, svg)
		// the class attribute no longer matches the bare pattern, so the
		// line is left alone rather than double-annotated
		require.Equal(t, 1, strings.Count(out, "a-x\">"))
	})

	t.Run("empty document still yields output", func(t *testing.T) {
		out := rewrite(t, "<svg>\n</svg>")
		assert.Contains(t, out, "<style>")
	})
}
