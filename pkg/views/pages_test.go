package views_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfco/spacewatch/pkg/changelog"
	"github.com/mfco/spacewatch/pkg/dto"
	"github.com/mfco/spacewatch/pkg/views"
)

func TestBrowsePage_RendersFoldersAndFiles(t *testing.T) {
	page := views.BrowsePage(views.BrowseData{
		Bucket: "my-bucket",
		Prefix: "docs/",
		Crumbs: views.Breadcrumbs("docs/"),
		Folders: []dto.Folder{
			{Name: "guides", Prefix: "docs/guides/"},
		},
		Files: []views.FileRow{
			{
				Object:      dto.S3Object{Key: "docs/readme.md", Size: 2048, LastModified: time.Now()},
				DisplayName: "readme.md",
				PermanentID: "abc-123",
			},
		},
	})

	var sb strings.Builder
	require.NoError(t, page.Render(context.Background(), &sb))
	html := sb.String()

	assert.Contains(t, html, `<a href="/browse/docs/guides/">guides/</a>`)
	assert.Contains(t, html, "readme.md")
	assert.Contains(t, html, "2.0 KiB")
	assert.Contains(t, html, `/download?key=docs%2Freadme.md`)
	assert.Contains(t, html, `/file/abc-123`)
}

func TestBrowsePage_EscapesKeys(t *testing.T) {
	page := views.BrowsePage(views.BrowseData{
		Files: []views.FileRow{
			{
				Object:      dto.S3Object{Key: "x", Size: 1},
				DisplayName: `<script>alert(1)</script>`,
			},
		},
	})

	var sb strings.Builder
	require.NoError(t, page.Render(context.Background(), &sb))

	assert.NotContains(t, sb.String(), "<script>alert(1)</script>")
}

func TestChangesPage_RendersRecordsAndPagination(t *testing.T) {
	prevSize, newSize := int64(10), int64(20)
	page := views.ChangesPage(views.ChangesData{
		Records: []changelog.Record{
			{Action: changelog.ActionAdded, Key: "new.txt", Time: time.Now()},
			{Action: changelog.ActionModified, Key: "doc.md", Time: time.Now(), PrevSize: &prevSize, NewSize: &newSize},
		},
		Pagination: dto.NewPaginationInfo(120, 50, 2),
	})

	var sb strings.Builder
	require.NoError(t, page.Render(context.Background(), &sb))
	html := sb.String()

	assert.Contains(t, html, "new.txt")
	assert.Contains(t, html, "doc.md")
	assert.Contains(t, html, "page 2 of 3")
	assert.Contains(t, html, `/changes?page=1`)
	assert.Contains(t, html, `/changes?page=3`)
}

func TestErrorPage(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, views.ErrorPage("it broke").Render(context.Background(), &sb))
	assert.Contains(t, sb.String(), "it broke")
}
