// Package pipeline implements the per-page rendering pipeline.
//
// A page goes through these stages:
//   - Markdown preprocessing (line endings, fence highlight ranges)
//   - Markdown to HTML conversion via Goldmark, with the optional
//     syntax-highlight extension (goldmark-highlighting + chroma)
//   - HTML post-processing (code line wrappers, links to other Markdown pages)
//   - Layout rendering with html/template, following layout chains
//
// Discovery, output paths and passthrough copies are handled by the root
// md2site package. This package only turns one document into HTML.
package pipeline
