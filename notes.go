// Package notes prerenders the Mark Hazleton notes site into a fully static
// multi-page tree.
//
// A build reads the local data files and the remote repository statistics,
// enumerates every route, renders each through the views page tree with a
// per-render head.Manager, injects the collected head and the hydration
// bootstrap into the base template, and writes one index.html per route.
// The preview server and watcher in this package serve and rebuild the
// result during development.
package notes

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/markhazleton/mark-hazleton-s-notes/head"
	"github.com/markhazleton/mark-hazleton-s-notes/metrics"
	"github.com/markhazleton/mark-hazleton-s-notes/views"
)

// Site is the central build application. It wires together the content
// cache, remote fetch, renderer, ledger and metrics.
type Site struct {
	Config SiteConfig
	Cache  *ContentCache

	logger   *slog.Logger
	client   *http.Client
	recorder metrics.Recorder
	textfile *metrics.PrometheusRecorder
	now      func() time.Time

	mu     sync.Mutex // serialises builds
	ledger *Ledger
}

// New creates a Site with the given configuration.
func New(cfg SiteConfig, opts ...Option) *Site {
	cfg.setDefaults()

	s := &Site{
		Config:   cfg,
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = &http.Client{Timeout: cfg.Remote.Timeout}
	}
	if cfg.Metrics.Textfile != "" {
		if _, ok := s.recorder.(metrics.NoopRecorder); ok {
			s.textfile = metrics.NewPrometheusRecorder(nil)
			s.recorder = s.textfile
		}
	}
	s.Cache = NewContentCache(cfg.Content, cfg.BasePath, s.logger)
	return s
}

// Head returns the site-wide SEO defaults.
func (s *Site) Head() head.Site {
	return head.Site{
		Name:               s.Config.Name,
		URL:                s.Config.URL,
		BasePath:           s.Config.BasePath,
		DefaultTitle:       s.Config.Title,
		DefaultDescription: s.Config.Description,
		DefaultKeywords:    s.Config.Keywords,
		DefaultImage:       s.Config.Image,
	}
}

func (s *Site) author() views.Person {
	a := s.Config.Author
	return views.Person{
		Name:        a.Name,
		JobTitle:    a.JobTitle,
		Description: a.Description,
		SameAs:      a.SameAs,
	}
}

// Close releases the ledger. Call this when the site is no longer needed.
func (s *Site) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ledger != nil {
		err := s.ledger.Close()
		s.ledger = nil
		return err
	}
	return nil
}
