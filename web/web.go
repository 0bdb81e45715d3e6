// Package web embeds the page templates and the static assets served next to them.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS

//go:embed static
var Static embed.FS
