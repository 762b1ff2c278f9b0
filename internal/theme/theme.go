package theme

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/filedag/internal/fsutil"
)

// Theme holds every appearance knob the pipeline consumes.
type Theme struct {
	Graph   Graph
	Palette Palette
	Hover   Hover
}

// Graph carries the graphviz layout parameters.
type Graph struct {
	RankDir string
	RankSep float64
	NodeSep float64
	Start   int
}

// Palette controls the provenance tint wheel and the neutral fallback.
type Palette struct {
	Saturation float64
	Value      float64
	Alpha      float64
	Neutral    string
}

// Hover is the interactivity styling injected into the final document.
type Hover struct {
	StrokeWidth int
}

// Default returns the built-in theme, matching the appearance the tool has
// always produced when run without configuration.
func Default() *Theme {
	return &Theme{
		Graph: Graph{
			RankDir: "LR",
			RankSep: 2,
			NodeSep: 0.5,
			Start:   3,
		},
		Palette: Palette{
			Saturation: 1.0,
			Value:      0.9,
			Alpha:      1.0,
			Neutral:    "grey",
		},
		Hover: Hover{
			StrokeWidth: 5,
		},
	}
}

// themeSchema is the HCL shape of a theme file. Every block and attribute
// is optional; absent values keep whatever the merge has so far.
type themeSchema struct {
	Graph   *graphSchema   `hcl:"graph,block"`
	Palette *paletteSchema `hcl:"palette,block"`
	Hover   *hoverSchema   `hcl:"hover,block"`
}

type graphSchema struct {
	RankDir *string  `hcl:"rankdir,optional"`
	RankSep *float64 `hcl:"ranksep,optional"`
	NodeSep *float64 `hcl:"nodesep,optional"`
	Start   *int     `hcl:"start,optional"`
}

type paletteSchema struct {
	Saturation *float64 `hcl:"saturation,optional"`
	Value      *float64 `hcl:"value,optional"`
	Alpha      *float64 `hcl:"alpha,optional"`
	Neutral    *string  `hcl:"neutral,optional"`
}

type hoverSchema struct {
	StrokeWidth *int `hcl:"stroke_width,optional"`
}

// evalContext exposes the built-in color names to theme expressions, so a
// file can say `neutral = colors.grey` instead of repeating string literals.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"colors": cty.ObjectVal(map[string]cty.Value{
				"grey":  cty.StringVal("grey"),
				"black": cty.StringVal("black"),
				"white": cty.StringVal("white"),
			}),
		},
	}
}

// Load reads the theme at path. An empty path returns the defaults. A
// directory is loaded as every .hcl file beneath it, in sorted order.
func Load(path string) (*Theme, error) {
	th := Default()
	if path == "" {
		return th, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat theme path: %w", err)
	}

	files := []string{path}
	if info.IsDir() {
		files, err = fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to scan theme directory: %w", err)
		}
	}

	parser := hclparse.NewParser()
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read theme file: %w", err)
		}
		hclFile, diags := parser.ParseHCL(src, file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse theme file %s: %w", file, diags)
		}

		var schema themeSchema
		if diags := gohcl.DecodeBody(hclFile.Body, evalContext(), &schema); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode theme file %s: %w", file, diags)
		}
		applySchema(th, &schema)
	}

	return th, nil
}

// applySchema overlays one decoded file onto the theme accumulated so far.
func applySchema(th *Theme, s *themeSchema) {
	if g := s.Graph; g != nil {
		if g.RankDir != nil {
			th.Graph.RankDir = *g.RankDir
		}
		if g.RankSep != nil {
			th.Graph.RankSep = *g.RankSep
		}
		if g.NodeSep != nil {
			th.Graph.NodeSep = *g.NodeSep
		}
		if g.Start != nil {
			th.Graph.Start = *g.Start
		}
	}
	if p := s.Palette; p != nil {
		if p.Saturation != nil {
			th.Palette.Saturation = *p.Saturation
		}
		if p.Value != nil {
			th.Palette.Value = *p.Value
		}
		if p.Alpha != nil {
			th.Palette.Alpha = *p.Alpha
		}
		if p.Neutral != nil {
			th.Palette.Neutral = *p.Neutral
		}
	}
	if h := s.Hover; h != nil {
		if h.StrokeWidth != nil {
			th.Hover.StrokeWidth = *h.StrokeWidth
		}
	}
}
