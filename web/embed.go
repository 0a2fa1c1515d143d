// Package web holds the embedded templates and static assets served by the
// form binary. In release mode everything below templates/ and static/ is
// compiled into the binary; in debug mode the same directory is read from
// disk so edits show up without a rebuild.
package web

import "embed"

//go:embed templates static
var EmbeddedFS embed.FS
