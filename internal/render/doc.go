// Package render is the boundary to the layout engine. The core hands a
// Doc of node and edge specs to a Renderer and gets back an SVG byte
// stream; everything about spatial layout is the renderer's business. The
// shipped implementation shells out to the graphviz dot binary, which also
// emits the machine-readable comment markers the annotation pass consumes.
package render
