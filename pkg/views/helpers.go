package views

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Paths deeper than maxBreadcrumbParts segments are collapsed in the middle.
const maxBreadcrumbParts = 5

// Crumb is one element of the breadcrumb trail. An empty URL renders as
// plain text (the collapse ellipsis).
type Crumb struct {
	Name string
	URL  string
}

// Breadcrumbs builds the navigation trail for a folder prefix. Deep paths
// keep the first two and last two segments with an ellipsis in between.
func Breadcrumbs(prefix string) []Crumb {
	crumbs := []Crumb{{Name: "Home", URL: "/browse/"}}
	if prefix == "" {
		return crumbs
	}

	parts := strings.Split(strings.Trim(prefix, "/"), "/")
	if len(parts) <= maxBreadcrumbParts {
		accum := ""
		for _, part := range parts {
			accum += part + "/"
			crumbs = append(crumbs, Crumb{Name: part, URL: "/browse/" + accum})
		}
		return crumbs
	}

	first := parts[:2]
	last := parts[len(parts)-2:]

	accum := ""
	for _, part := range first {
		accum += part + "/"
		crumbs = append(crumbs, Crumb{Name: part, URL: "/browse/" + accum})
	}
	crumbs = append(crumbs, Crumb{Name: "…"})

	accum = strings.Join(parts[:len(parts)-2], "/") + "/"
	for _, part := range last {
		crumbs = append(crumbs, Crumb{Name: part, URL: "/browse/" + accum + part + "/"})
		accum += part + "/"
	}
	return crumbs
}

// FormatSize returns a human-readable byte size.
func FormatSize(size int64) string {
	if size < 0 {
		return "-"
	}
	return humanize.IBytes(uint64(size))
}

// FormatTime returns the timestamp in a compact readable form.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

// DisplayName strips the parent prefix from a key for listing rows.
func DisplayName(key, prefix string) string {
	return strings.TrimPrefix(key, prefix)
}
