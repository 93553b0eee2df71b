package views

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"github.com/mfco/spacewatch/pkg/changelog"
	"github.com/mfco/spacewatch/pkg/dto"
	"github.com/mfco/spacewatch/pkg/monitor"
)

// FileRow is one file line of the browse table.
type FileRow struct {
	Object      dto.S3Object
	DisplayName string
	PermanentID string
}

// BrowseData is the data rendered by BrowsePage.
type BrowseData struct {
	Bucket  string
	Prefix  string
	Crumbs  []Crumb
	Folders []dto.Folder
	Files   []FileRow
}

// ChangesData is the data rendered by ChangesPage.
type ChangesData struct {
	Records    []changelog.Record
	Pagination dto.PaginationInfo
}

// BrowsePage renders the bucket listing for one folder.
func BrowsePage(data BrowseData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		pageHeader(&b, data.Bucket)

		b.WriteString(`<nav class="breadcrumbs">`)
		for i, c := range data.Crumbs {
			if i > 0 {
				b.WriteString(` / `)
			}
			if c.URL == "" {
				b.WriteString(templ.EscapeString(c.Name))
				continue
			}
			fmt.Fprintf(&b, `<a href="%s">%s</a>`, templ.EscapeString(c.URL), templ.EscapeString(c.Name))
		}
		b.WriteString(`</nav>`)

		b.WriteString(`<table><thead><tr><th>Name</th><th>Size</th><th>Last modified</th><th></th></tr></thead><tbody>`)
		for _, f := range data.Folders {
			fmt.Fprintf(&b, `<tr class="folder"><td><a href="/browse/%s">%s/</a></td><td>-</td><td>-</td><td></td></tr>`,
				templ.EscapeString(f.Prefix), templ.EscapeString(f.Name))
		}
		for _, f := range data.Files {
			fmt.Fprintf(&b, `<tr><td>%s</td><td>%s</td><td>%s</td><td><a href="/download?key=%s">download</a>`,
				templ.EscapeString(f.DisplayName),
				FormatSize(f.Object.Size),
				FormatTime(f.Object.LastModified),
				url.QueryEscape(f.Object.Key))
			if f.PermanentID != "" {
				fmt.Fprintf(&b, ` <a href="/file/%s">permalink</a>`, templ.EscapeString(f.PermanentID))
			}
			b.WriteString(`</td></tr>`)
		}
		b.WriteString(`</tbody></table>`)

		pageFooter(&b)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// ChangesPage renders one page of the changelog, newest first.
func ChangesPage(data ChangesData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		pageHeader(&b, "Changelog")

		b.WriteString(`<table><thead><tr><th>Time</th><th>Action</th><th>Key</th><th>Details</th></tr></thead><tbody>`)
		for _, r := range data.Records {
			fmt.Fprintf(&b, `<tr class="%s"><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
				templ.EscapeString(string(r.Action)),
				FormatTime(r.Time),
				templ.EscapeString(string(r.Action)),
				templ.EscapeString(r.Key),
				templ.EscapeString(changeDetails(r)))
		}
		b.WriteString(`</tbody></table>`)

		p := data.Pagination
		b.WriteString(`<nav class="pagination">`)
		if p.HasPrevious {
			fmt.Fprintf(&b, `<a href="/changes?page=%d">previous</a> `, p.CurrentPage-1)
		}
		fmt.Fprintf(&b, `page %d of %d`, p.CurrentPage, p.TotalPages)
		if p.HasNext {
			fmt.Fprintf(&b, ` <a href="/changes?page=%d">next</a>`, p.CurrentPage+1)
		}
		b.WriteString(`</nav>`)

		pageFooter(&b)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// StatusPage renders the monitor status.
func StatusPage(info monitor.Info) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		pageHeader(&b, "Monitor status")

		b.WriteString(`<dl>`)
		fmt.Fprintf(&b, `<dt>Last run</dt><dd>%s</dd>`, FormatTime(info.LastRun))
		fmt.Fprintf(&b, `<dt>Last success</dt><dd>%s</dd>`, FormatTime(info.LastSuccess))
		if info.LastError != "" {
			fmt.Fprintf(&b, `<dt>Last error</dt><dd>%s</dd>`, templ.EscapeString(info.LastError))
		}
		fmt.Fprintf(&b, `<dt>Consecutive failures</dt><dd>%d</dd>`, info.ConsecutiveFailures)
		fmt.Fprintf(&b, `<dt>Cycles completed</dt><dd>%d</dd>`, info.CyclesCompleted)
		fmt.Fprintf(&b, `<dt>Objects tracked</dt><dd>%d</dd>`, info.ObjectsTracked)
		fmt.Fprintf(&b, `<dt>Last cycle changes</dt><dd>%d added, %d modified, %d removed</dd>`,
			info.LastAdded, info.LastModified, info.LastRemoved)
		b.WriteString(`</dl>`)

		pageFooter(&b)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// ErrorPage renders the error page.
func ErrorPage(msg string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		pageHeader(&b, "Error")
		fmt.Fprintf(&b, `<p class="error">%s</p>`, templ.EscapeString(msg))
		pageFooter(&b)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func changeDetails(r changelog.Record) string {
	if r.Action != changelog.ActionModified || r.PrevSize == nil || r.NewSize == nil {
		return ""
	}
	return fmt.Sprintf("%s → %s", FormatSize(*r.PrevSize), FormatSize(*r.NewSize))
}

func pageHeader(b *strings.Builder, title string) {
	fmt.Fprintf(b, `<!DOCTYPE html><html><head><meta charset="utf-8"><title>%s</title><link rel="stylesheet" href="/static/app.css"></head><body>`,
		templ.EscapeString(title))
	fmt.Fprintf(b, `<header><h1>%s</h1><nav><a href="/browse/">Browse</a> <a href="/changes">Changes</a> <a href="/status">Status</a></nav></header><main>`,
		templ.EscapeString(title))
}

func pageFooter(b *strings.Builder) {
	b.WriteString(`</main></body></html>`)
}
