package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/mfco/spacewatch/pkg/changelog"
	"github.com/mfco/spacewatch/pkg/dto"
	"github.com/mfco/spacewatch/pkg/views"
)

// Package-level error definitions.
var (
	// ErrMissingKeyParam is returned when the required key URL parameter is missing.
	ErrMissingKeyParam = errors.New("URL parameter 'key' is missing")
	// ErrInvalidKey is returned when a key does not match the configured prefix.
	ErrInvalidKey = errors.New("invalid key prefix")
	// ErrUnknownFileID is returned when a permanent URI id is not in the map.
	ErrUnknownFileID = errors.New("unknown file id")
)

const changesPageSize = 50

// BrowseHandler renders the folder listing for the requested prefix.
func (s *App) BrowseHandler(w http.ResponseWriter, r *http.Request) {
	prefix := mux.Vars(r)["prefix"]
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	// A configured prefix restricts browsing to that subtree.
	if s.cfg.Prefix != "" && !strings.HasPrefix(prefix, s.cfg.Prefix) {
		prefix = s.cfg.Prefix
	}

	folders, files, err := s.s3svc.GetObjects(r.Context(), prefix)
	if err != nil {
		s.log.Error("browse: listing failed",
			slog.String("prefix", prefix),
			slog.String("error", err.Error()))
		s.renderError(w, "Unable to list the bucket, please retry later.")
		return
	}

	rows := make([]views.FileRow, 0, len(files))
	for _, f := range files {
		if f.IsDirectoryMarker() {
			continue
		}
		row := views.FileRow{
			Object:      f,
			DisplayName: views.DisplayName(f.Key, prefix),
		}
		id, err := s.urimap.GetOrCreate(f.Key)
		if err != nil {
			// The page still renders, just without a permalink.
			s.log.Error("browse: permanent uri", slog.String("key", f.Key), slog.String("error", err.Error()))
		} else {
			row.PermanentID = id
		}
		rows = append(rows, row)
	}

	page := views.BrowsePage(views.BrowseData{
		Bucket:  s.cfg.Bucket,
		Prefix:  prefix,
		Crumbs:  views.Breadcrumbs(prefix),
		Folders: folders,
		Files:   rows,
	})
	if err := page.Render(r.Context(), w); err != nil {
		s.log.Error("browse: render failed", slog.String("error", err.Error()))
	}
}

// DownloadHandler redirects to a presigned URL for the requested key.
func (s *App) DownloadHandler(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		s.log.Warn("download: missing key parameter")
		http.Error(w, ErrMissingKeyParam.Error(), http.StatusBadRequest)
		return
	}
	if s.cfg.Prefix != "" && !strings.HasPrefix(key, s.cfg.Prefix) {
		s.log.Warn("download: key outside configured prefix", slog.String("key", key))
		http.Error(w, ErrInvalidKey.Error(), http.StatusForbidden)
		return
	}
	s.redirectToPresigned(w, r, key)
}

// FileHandler resolves a permanent URI and redirects to a fresh presigned URL.
func (s *App) FileHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	key, ok := s.urimap.Lookup(id)
	if !ok {
		s.log.Warn("file: unknown id", slog.String("id", id))
		http.Error(w, ErrUnknownFileID.Error(), http.StatusNotFound)
		return
	}
	s.redirectToPresigned(w, r, key)
}

func (s *App) redirectToPresigned(w http.ResponseWriter, r *http.Request, key string) {
	expiry := time.Duration(s.cfg.URLExpiry) * time.Second
	url, err := s.s3svc.GetPresignedURL(r.Context(), key, expiry)
	if err != nil {
		s.log.Error("failed generating presigned URL",
			slog.String("key", key),
			slog.String("error", err.Error()))
		http.Error(w, "failed to generate presigned URL", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// ChangesHandler renders one page of the changelog, newest first.
func (s *App) ChangesHandler(w http.ResponseWriter, r *http.Request) {
	page, err := ParsePaginationParams(r)
	if err != nil {
		s.log.Warn("changes: invalid page parameter", slog.String("error", err.Error()))
		http.Redirect(w, r, "/changes?page=1", http.StatusSeeOther)
		return
	}

	records, err := changelog.Tail(s.clogPath, 0)
	if err != nil {
		s.log.Error("changes: reading changelog", slog.String("error", err.Error()))
		s.renderError(w, "Unable to read the changelog.")
		return
	}

	pagination := dto.NewPaginationInfo(int64(len(records)), changesPageSize, page)
	pageRecords := records[pagination.StartIndex:pagination.EndIndex]

	component := views.ChangesPage(views.ChangesData{
		Records:    pageRecords,
		Pagination: pagination,
	})
	if err := component.Render(r.Context(), w); err != nil {
		s.log.Error("changes: render failed", slog.String("error", err.Error()))
	}
}

// StatusHandler renders the monitor status page.
func (s *App) StatusHandler(w http.ResponseWriter, r *http.Request) {
	if err := views.StatusPage(s.monitor.Status()).Render(r.Context(), w); err != nil {
		s.log.Error("status: render failed", slog.String("error", err.Error()))
	}
}

func (s *App) renderError(w http.ResponseWriter, msg string) {
	w.WriteHeader(http.StatusInternalServerError)
	if err := views.ErrorPage(msg).Render(context.Background(), w); err != nil {
		s.log.Error("error page render failed", slog.String("error", err.Error()))
	}
}
