// Package app wires the services together and serves the HTTP interface.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gorilla/mux"

	"github.com/mfco/spacewatch/pkg/changelog"
	"github.com/mfco/spacewatch/pkg/config"
	"github.com/mfco/spacewatch/pkg/monitor"
	"github.com/mfco/spacewatch/pkg/s3svc"
	"github.com/mfco/spacewatch/pkg/scheduler"
	"github.com/mfco/spacewatch/pkg/snapshot"
	"github.com/mfco/spacewatch/pkg/urimap"
	"github.com/mfco/spacewatch/pkg/views"
)

// Persisted file names inside the configured data directory.
const (
	snapshotFileName  = "snapshot.json"
	changelogFileName = "changelog.jsonl"
	uriMapFileName    = "permanent_uri_map.json"
)

// App is the application.
type App struct {
	cfg         config.Config
	awsS3Client *s3.Client
	s3svc       *s3svc.Service
	monitor     *monitor.Service
	scheduler   *scheduler.Scheduler
	urimap      *urimap.Service
	clogPath    string
	router      *mux.Router
	views       *views.Views
	srv         *http.Server
	log         *slog.Logger
}

// NewApp creates the app and starts the web server in the background.
// The bucket monitor is started separately with StartMonitor.
func NewApp(cfg config.Config) (*App, error) {
	s := &App{
		cfg:      cfg,
		router:   mux.NewRouter().StrictSlash(true),
		views:    views.NewViews(),
		clogPath: filepath.Join(cfg.DataDir, changelogFileName),
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		srv:      &http.Server{ReadHeaderTimeout: 10 * time.Second},
	}
	if err := s.initS3Client(); err != nil {
		return s, err
	}
	s.s3svc = s3svc.NewS3Svc(cfg, s.awsS3Client)

	store := snapshot.NewStore(filepath.Join(cfg.DataDir, snapshotFileName))
	writer := changelog.NewWriter(s.clogPath)
	s.monitor = monitor.NewService(s.s3svc, store, writer)
	s.scheduler = scheduler.NewScheduler(s.monitor, cfg.Interval)

	s.urimap = urimap.NewService(filepath.Join(cfg.DataDir, uriMapFileName))
	if err := s.urimap.Load(); err != nil {
		return s, fmt.Errorf("loading permanent uri map: %w", err)
	}

	s.initRouter()
	go s.startWebServer()

	return s, nil
}

// SetLogger sets the logger on the app and all its services.
func (s *App) SetLogger(log *slog.Logger) {
	s.log = log
	s.s3svc.SetLogger(log)
	s.monitor.SetLogger(log)
	s.scheduler.SetLogger(log)
	s.urimap.SetLogger(log)
}

// StartMonitor loads the persisted snapshot and starts the polling schedule.
func (s *App) StartMonitor(ctx context.Context) error {
	if err := s.monitor.Init(); err != nil {
		return err
	}
	s.scheduler.Start(ctx)
	return nil
}

func (s *App) startWebServer() {
	s.srv.Addr = s.cfg.ListenAddr
	s.log.Info("listening", slog.String("addr", s.cfg.ListenAddr))
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.log.Error("web server stopped", slog.String("error", err.Error()))
	}
}

// StopServer stops the scheduler and shuts the web server down.
func (s *App) StopServer() {
	s.scheduler.Stop()
	if err := s.srv.Shutdown(context.Background()); err != nil {
		s.log.Error("error shutting down the server", slog.String("error", err.Error()))
	}
}

func (s *App) initS3Client() error {
	cfg, err := s.GetAwsConfig()
	if err != nil {
		return err
	}
	s.awsS3Client = s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s.cfg.S3endpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.S3endpoint)
			o.UsePathStyle = true
		}
	})
	return nil
}

// Router returns the HTTP handler, exposed for tests.
func (s *App) Router() http.Handler {
	return s.router
}
