// Package web holds the server-rendered page templates and the static
// client assets (validation/DOM layer) embedded into the binary.
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates contains every page template, parsed once at startup.
var Templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Static is the embedded static asset tree (css/, js/), rooted so that
// "/css/styles.css" resolves directly.
var Static fs.FS

func init() {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	Static = sub
}
