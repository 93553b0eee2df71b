// Package views renders the HTML pages of the bucket browser.
package views

import (
	"embed"
	"net/http"
)

//go:embed static
var staticFS embed.FS

// Views holds the handlers for static assets.
type Views struct {
	staticHandler http.Handler
}

// NewViews creates the views.
func NewViews() *Views {
	return &Views{
		staticHandler: http.FileServer(http.FS(staticFS)),
	}
}

// GetStaticHandler returns the static handler (for CSS)
func (v *Views) GetStaticHandler() http.Handler {
	return v.staticHandler
}
