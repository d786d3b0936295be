// Package md2site builds a static blog from Markdown articles.
//
// # Quick Start
//
// Register the site's rules, then build:
//
//	reg := md2site.NewRegistry()
//	cfg := md2site.Configure(reg)
//
//	b, err := md2site.NewBuilder(cfg, reg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := b.Build(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(result.Pages), "pages")
//
// Configure copies ./css verbatim, turns on the syntax-highlight plugin with
// every code line wrapped, and builds from "." into "public".
//
// # Build Pipeline
//
// For every Markdown file under the input directory:
//
//  1. Front matter parsing (layout, title, date, tags, permalink, draft)
//  2. Markdown preprocessing (line endings, fence highlight ranges)
//  3. Markdown to HTML conversion via Goldmark (GFM, syntax highlighting)
//  4. HTML post-processing (code line wrappers, links to other pages)
//  5. Layout rendering with html/template
//
// Passthrough paths are copied byte for byte. When syntax-highlight is
// registered, the chroma stylesheet is written to css/highlight.css unless
// a passthrough copy already provides it.
//
// # Pages and URLs
//
// Pages get pretty URLs: posts/hello.md renders to posts/hello/index.html
// and is served as /posts/hello/. A "permalink" front matter key overrides
// the output path; "permalink: false" skips the page.
//
// # Layouts
//
// Layouts are html/template files in the includes directory (_includes by
// default), named by the "layout" front matter key. A layout may itself
// declare a layout in its front matter to chain into. Built-in layouts
// named "base-layout" and "post" are used when the site does not define them.
//
// Layouts see .Title, .Description, .Date, .HasDate, .Tags, .URL, .Content,
// .Page (all front matter), .Site, .Collections (pages by tag, plus "all")
// and .Stylesheets, with the functions formatDate, isoDate, absURL, join,
// reverse and limit.
package md2site
