// Package annotate layers hover interactivity onto the renderer's SVG
// output. SVG has no native hover-highlight semantics, so the pass injects
// a CSS class derived from each edge's source node and appends a stylesheet
// keyed on those classes.
//
// The rewrite is a single forward pass with one-line lookahead. The
// renderer emits a comment marker naming an edge's source→target pair on
// the line immediately before the edge's drawable element; when a marker
// line is recognized, the next line is rewritten in place. Malformed or
// unmatched markers are skipped, never fatal: a partially annotated
// document beats no document.
package annotate

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/vk/filedag/internal/ctxlog"
)

const (
	markerPrefix = "<!-- "
	markerSuffix = " -->"
	// arrowEntity is how graphviz encodes "->" inside SVG comments.
	arrowEntity = "&#45;&gt;"
)

// elementClass matches the class attribute graphviz assigns to drawable
// groups. The capture keeps the original class; the injected token is
// appended, never replacing it.
var elementClass = regexp.MustCompile(`class="(edge|node)">`)

// classReplacer maps path separators and dots to a delimiter that is valid
// in a CSS class name.
var classReplacer = strings.NewReplacer("/", "-", ".", "-")

// ClassToken derives the CSS class token for a node key.
func ClassToken(node string) string {
	return classReplacer.Replace(node)
}

// Rewrite annotates the SVG and appends the hover stylesheet before the
// closing root tag. hoverStrokeWidth is the stroke width applied to
// highlighted elements.
func Rewrite(ctx context.Context, svg []byte, hoverStrokeWidth int) []byte {
	logger := ctxlog.FromContext(ctx)

	lines := strings.Split(string(svg), "\n")
	classes := make(map[string]bool)

	for i := 0; i < len(lines)-1; i++ {
		line := lines[i]
		if !strings.HasPrefix(line, markerPrefix) || !strings.HasSuffix(strings.TrimRight(line, "\r"), markerSuffix) {
			continue
		}

		body := strings.TrimRight(line, "\r")
		body = strings.TrimPrefix(body, markerPrefix)
		body = strings.TrimSuffix(body, markerSuffix)
		source := strings.TrimSpace(strings.SplitN(body, arrowEntity, 2)[0])
		token := ClassToken(source)
		if token == "" {
			logger.Debug("Skipping marker with empty source key.", "line", i+1)
			continue
		}

		next := lines[i+1]
		rewritten := elementClass.ReplaceAllString(next, `class="$1 `+token+`">`)
		if rewritten == next {
			// Preamble comments (generator banner, title) have no drawable
			// element behind them; nothing to annotate.
			logger.Debug("Marker not followed by a drawable element, skipping.", "line", i+1)
			continue
		}
		lines[i+1] = rewritten
		classes[token] = true
	}

	out := strings.Join(lines, "\n")
	if !strings.Contains(out, "</svg>") {
		logger.Warn("Renderer output has no closing svg tag; stylesheet not appended.")
		return []byte(out)
	}

	return []byte(replaceLast(out, "</svg>", stylesheet(classes, hoverStrokeWidth)+"</svg>"))
}

// stylesheet builds the embedded style element: a universal edge-hover rule
// plus one downstream-highlight rule per annotated source class, in sorted
// order for reproducible output.
func stylesheet(classes map[string]bool, strokeWidth int) string {
	tokens := make([]string, 0, len(classes))
	for t := range classes {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)

	var b strings.Builder
	b.WriteString("<style>")
	fmt.Fprintf(&b, "g.edge:hover * {stroke-width: %d;}\n", strokeWidth)
	for _, t := range tokens {
		fmt.Fprintf(&b, ".node.%s:hover ~ .%s{stroke-width: %d;}\n", t, t, strokeWidth)
	}
	b.WriteString("</style>")
	return b.String()
}

// replaceLast replaces the final occurrence of old in s.
func replaceLast(s, old, new string) string {
	i := strings.LastIndex(s, old)
	if i < 0 {
		return s
	}
	return s[:i] + new + s[i+len(old):]
}
