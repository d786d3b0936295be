// Package assets provides the HTML layouts pages are wrapped in.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	LayoutLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in layouts)
//	    ├── FilesystemLoader  - loads from the site's includes directory
//	    └── LayoutResolver    - combines both with site-first fallback
//
// LayoutResolver is the loader used by the builder. A site can override any
// built-in layout by placing a file with the same name in its includes
// directory (default "_includes"), and can add layouts of its own.
//
// # Directory Structure
//
//	{input}/
//	└── _includes/
//	    ├── base-layout.html
//	    └── post.tmpl
//
// Extensions are tried in order: .html, .tmpl, .gohtml.
//
// # Security
//
// Layout names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
