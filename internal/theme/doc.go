// Package theme loads the optional HCL appearance configuration: graphviz
// layout parameters, the palette used for provenance tints, and the hover
// stroke width baked into the output stylesheet. A missing theme path
// yields the built-in defaults; a directory is merged file by file in
// sorted order, later files overriding earlier ones block by block.
package theme
