// Package render turns charts into images.
//
// Rendering happens in two stages. [ToDOT] lays the chart out as a
// Graphviz DOT document with every element pinned to its computed
// position, and [RenderSVG] or [RenderPNG] rasterize that document with
// the neato engine, which honors pinned positions instead of computing
// its own layout.
//
// The intermediate DOT string is a supported output format of its own:
// it is plain text, diffs well, and renders with any Graphviz
// installation.
package render
