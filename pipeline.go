package notes

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/markhazleton/mark-hazleton-s-notes/content"
	"github.com/markhazleton/mark-hazleton-s-notes/logfields"
	"github.com/markhazleton/mark-hazleton-s-notes/metrics"
	"github.com/markhazleton/mark-hazleton-s-notes/views"
)

// Build stages, in the order they run.
const (
	stageLoadContent     = "load_content"
	stageFetchRemote     = "fetch_remote"
	stageEnumerateRoutes = "enumerate_routes"
	stageResolveTemplate = "resolve_template"
	stagePrerender       = "prerender"
	stageNotFound        = "not_found"
	stageSEOAssets       = "seo_assets"
	stageImages          = "images"
	stageRecord          = "record"
)

// notFoundLocation is rendered for 404.html. It matches no route.
const notFoundLocation = "/404"

// Result describes a successful build.
type Result struct {
	BuildID         string
	Version         int
	Routes          []string
	Written         int
	// Changed lists routes whose output differs from the previous recorded
	// build. It is nil when no ledger is configured.
	Changed         []string
	RemoteAvailable bool
	Duration        time.Duration
}

// BuildInfo is written to <out>/build-info.json.
type BuildInfo struct {
	Version   int    `json:"version"`
	BuildTime string `json:"buildTime"`
}

// build carries the state of one Build call between stages.
type build struct {
	id      string
	started time.Time
	logger  *slog.Logger

	content *Content
	stats   *content.RepositoryStats
	routes  []string
	tpl     *Template
	script  string
	pages   []PageRecord
	version int
	changed []string
}

// Build runs every stage and writes the static site to Config.OutDir. A
// failed remote fetch degrades the build; any other failure aborts it and is
// returned as a *BuildError.
func (s *Site) Build(ctx context.Context) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := &build{id: uuid.NewString(), started: s.now()}
	b.logger = s.logger.With(logfields.BuildID(b.id))
	b.logger.Info("Build started", logfields.Path(s.Config.OutDir))

	err := s.runStages(ctx, b)
	duration := s.now().Sub(b.started)
	outcome := "success"
	if err != nil {
		outcome = "failed"
	}
	s.recorder.ObserveBuild(outcome, duration)
	s.writeMetrics(b.logger)
	if err != nil {
		b.logger.Error("Build failed", logfields.Duration(duration), logfields.Error(err))
		return Result{}, err
	}

	b.logger.Info("Build finished", logfields.Count(len(b.routes)), logfields.Duration(duration))
	return Result{
		BuildID:         b.id,
		Version:         b.version,
		Routes:          b.routes,
		Written:         len(b.pages),
		Changed:         b.changed,
		RemoteAvailable: b.stats != nil,
		Duration:        duration,
	}, nil
}

func (s *Site) runStages(ctx context.Context, b *build) error {
	stages := []struct {
		name string
		skip bool
		fn   func(context.Context, *build) error
	}{
		{stageLoadContent, false, s.loadContent},
		{stageFetchRemote, false, s.fetchRemote},
		{stageEnumerateRoutes, false, s.enumerateRoutes},
		{stageResolveTemplate, false, s.resolveTemplate},
		{stagePrerender, false, s.prerender},
		{stageNotFound, s.Config.SkipNotFound, s.notFound},
		{stageSEOAssets, s.Config.SkipSEOAssets, s.seoAssets},
		{stageImages, s.Config.Images.Dir == "", s.images},
		{stageRecord, false, s.record},
	}
	for _, st := range stages {
		if st.skip {
			b.logger.Debug("Stage skipped", logfields.Stage(st.name))
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		t0 := s.now()
		err := st.fn(ctx, b)
		d := s.now().Sub(t0)
		s.recorder.ObserveStage(st.name, d)
		if err != nil {
			return err
		}
		b.logger.Debug("Stage finished", logfields.Stage(st.name), logfields.Duration(d))
	}
	return nil
}

func (s *Site) loadContent(_ context.Context, b *build) error {
	c, err := s.Cache.Load()
	if err != nil {
		return structural(stageLoadContent, "", err)
	}
	b.content = c
	b.logger.Info("Content loaded",
		slog.Int("articles", len(c.Posts)),
		slog.Int("projects", len(c.Projects)),
		slog.Int("videos", len(c.Videos.Videos)))
	return nil
}

func (s *Site) fetchRemote(ctx context.Context, b *build) error {
	if s.Config.Remote.Disabled {
		b.logger.Info("Remote fetch disabled")
		s.recorder.SetRemoteAvailable(false)
		return nil
	}
	b.stats = content.FetchRepositoryStats(ctx, s.client, s.Config.Remote.URL, b.logger)
	s.recorder.SetRemoteAvailable(b.stats != nil)
	if b.stats != nil {
		b.logger.Info("Repository statistics fetched", logfields.Count(len(b.stats.Repositories)))
	}
	return nil
}

func (s *Site) enumerateRoutes(_ context.Context, b *build) error {
	var repos []content.Repository
	if b.stats != nil {
		repos = b.stats.Repositories
	}
	b.routes = EnumerateRoutes(RouteSources{
		Static:           s.Config.Routes.Static,
		Articles:         b.content.Articles,
		Projects:         b.content.Sources,
		Repositories:     repos,
		RepositoryPrefix: s.Config.Routes.RepositoryPrefix,
	})
	s.recorder.SetRoutes(len(b.routes))
	b.logger.Info("Routes enumerated", logfields.Count(len(b.routes)))
	return nil
}

func (s *Site) resolveTemplate(_ context.Context, b *build) error {
	out := s.Config.OutDir
	candidates := []string{
		s.Config.Template,
		filepath.Join(out, "index.html"),
		filepath.Join(out, "client", "index.html"),
		s.Config.TemplateCache,
	}
	name, text, err := ResolveTemplate(candidates, []string{out, filepath.Join(out, "client"), "."})
	if err != nil {
		return structural(stageResolveTemplate, "", err)
	}
	tpl, err := ParseTemplate(text)
	if err != nil {
		return structural(stageResolveTemplate, "", err)
	}
	if name != s.Config.TemplateCache {
		if err := cacheTemplate(s.Config.TemplateCache, text); err != nil {
			return writeErr(stageResolveTemplate, "", err)
		}
	}
	script, err := BootstrapScript(b.stats)
	if err != nil {
		return structural(stageResolveTemplate, "", err)
	}
	b.tpl = tpl
	b.script = script
	b.logger.Info("Template resolved", logfields.Path(name))
	return nil
}

func (s *Site) renderer(b *build) *Renderer {
	site := s.Head()
	data := views.Data{
		Site:     site,
		Author:   s.author(),
		Posts:    b.content.Posts,
		Projects: b.content.Projects,
		Videos:   b.content.Videos,
	}
	return &Renderer{
		Site:      site,
		Router:    views.NewRouter(s.Config.BasePath, s.Config.Routes.RepositoryPrefix, data),
		Bootstrap: b.stats,
	}
}

// prerender renders every route on a bounded pool. Tasks share only the
// renderer, template and bootstrap script, all read-only. The first failure
// cancels the remaining tasks.
func (s *Site) prerender(ctx context.Context, b *build) error {
	r := s.renderer(b)
	pages := make([]PageRecord, len(b.routes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Config.Concurrency)
	for i, route := range b.routes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t0 := time.Now()
			rec, err := s.emitRoute(gctx, r, b, route)
			if err != nil {
				s.recorder.ObserveRoute(metrics.ResultFailed, time.Since(t0))
				return err
			}
			s.recorder.ObserveRoute(metrics.ResultSuccess, time.Since(t0))
			pages[i] = rec
			b.logger.Debug("Route written", logfields.Route(route), logfields.Path(rec.File))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	b.pages = pages
	b.logger.Info("Routes prerendered", logfields.Count(len(pages)))
	return nil
}

func (s *Site) emitRoute(ctx context.Context, r *Renderer, b *build, route string) (PageRecord, error) {
	name, err := OutputPath(s.Config.OutDir, route)
	if err != nil {
		return PageRecord{}, structural(stagePrerender, route, err)
	}
	page, err := r.Render(ctx, route)
	if err != nil {
		return PageRecord{}, structural(stagePrerender, route, err)
	}
	html := b.tpl.Execute(page, b.script)
	if !s.Config.SkipVerify {
		report, err := InspectPage(html)
		if err == nil {
			err = report.Validate()
		}
		if err != nil {
			return PageRecord{}, structural(stagePrerender, route, err)
		}
	}
	if err := WriteFile(name, []byte(html)); err != nil {
		return PageRecord{}, writeErr(stagePrerender, route, err)
	}
	sum := sha256.Sum256([]byte(html))
	rel, err := filepath.Rel(s.Config.OutDir, name)
	if err != nil {
		rel = name
	}
	return PageRecord{
		Route:  route,
		File:   filepath.ToSlash(rel),
		Bytes:  len(html),
		SHA256: hex.EncodeToString(sum[:]),
	}, nil
}

func (s *Site) notFound(ctx context.Context, b *build) error {
	page, err := s.renderer(b).Render(ctx, notFoundLocation)
	if err != nil {
		return structural(stageNotFound, notFoundLocation, err)
	}
	name := filepath.Join(s.Config.OutDir, "404.html")
	if err := WriteFile(name, []byte(b.tpl.Execute(page, b.script))); err != nil {
		return writeErr(stageNotFound, "", err)
	}
	return nil
}

func (s *Site) seoAssets(_ context.Context, b *build) error {
	site := s.Head()
	sitemap, err := Sitemap(SitemapInput{
		Site:             site,
		Routes:           b.routes,
		Posts:            b.content.Posts,
		Stats:            b.stats,
		RepositoryPrefix: views.NormalizePrefix(s.Config.Routes.RepositoryPrefix),
		BuildTime:        b.started,
	})
	if err != nil {
		return structural(stageSEOAssets, "", err)
	}
	feed, err := Feed(site, b.content.Posts, b.started)
	if err != nil {
		return structural(stageSEOAssets, "", err)
	}
	files := map[string][]byte{
		"sitemap.xml": sitemap,
		"feed.xml":    feed,
		"robots.txt":  Robots(site),
	}
	for name, data := range files {
		if err := WriteFile(filepath.Join(s.Config.OutDir, name), data); err != nil {
			return writeErr(stageSEOAssets, "", err)
		}
	}
	return nil
}

func (s *Site) images(ctx context.Context, b *build) error {
	stats, err := ProcessImages(ctx, s.Config.Images, s.Config.OutDir)
	if err != nil {
		return writeErr(stageImages, "", err)
	}
	b.logger.Info("Images processed", slog.Int("resized", stats.Resized), slog.Int("copied", stats.Copied))
	return nil
}

// record writes build-info.json and, when a ledger is configured, stores the
// build and its pages.
func (s *Site) record(_ context.Context, b *build) error {
	infoPath := filepath.Join(s.Config.OutDir, "build-info.json")
	var ledger *Ledger
	if s.Config.Ledger.Path != "" {
		var err error
		if ledger, err = s.openLedger(); err != nil {
			return writeErr(stageRecord, "", err)
		}
		if b.version, err = ledger.NextVersion(); err != nil {
			return writeErr(stageRecord, "", err)
		}
	} else {
		b.version = readBuildInfo(infoPath).Version + 1
	}

	info, err := json.MarshalIndent(BuildInfo{
		Version:   b.version,
		BuildTime: b.started.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}, "", "  ")
	if err != nil {
		return structural(stageRecord, "", err)
	}
	if err := WriteFile(infoPath, info); err != nil {
		return writeErr(stageRecord, "", err)
	}

	if ledger != nil {
		return s.recordLedger(ledger, b)
	}
	b.logger.Info("Build recorded", slog.Int("version", b.version))
	return nil
}

// recordLedger stores the build and logs how it differs from the build
// before it.
func (s *Site) recordLedger(ledger *Ledger, b *build) error {
	prev, err := ledger.LastBuild()
	if err != nil && !IsNotFound(err) {
		return writeErr(stageRecord, "", err)
	}
	err = ledger.RecordBuild(BuildRecord{
		ID:         b.id,
		Version:    b.version,
		StartedAt:  b.started,
		FinishedAt: s.now(),
		Routes:     len(b.routes),
		Remote:     b.stats != nil,
	}, b.pages)
	if err != nil {
		return writeErr(stageRecord, "", err)
	}
	changed, err := ledger.ChangedRoutes(b.id)
	if err != nil {
		return writeErr(stageRecord, "", err)
	}
	b.changed = append([]string{}, changed...)
	b.logger.Info("Build recorded",
		slog.Int("version", b.version),
		slog.Int("previous_version", prev.Version),
		slog.Int("previous_routes", prev.Routes),
		slog.Int("changed", len(changed)))
	return nil
}

func (s *Site) openLedger() (*Ledger, error) {
	if s.ledger != nil {
		return s.ledger, nil
	}
	l, err := OpenLedger(s.Config.Ledger.Path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	s.ledger = l
	return l, nil
}

// readBuildInfo returns the previous build info, or the zero value when the
// file is missing or unreadable.
func readBuildInfo(path string) BuildInfo {
	var info BuildInfo
	data, err := os.ReadFile(path)
	if err != nil {
		return info
	}
	if err := json.Unmarshal(data, &info); err != nil {
		return BuildInfo{}
	}
	return info
}

func (s *Site) writeMetrics(logger *slog.Logger) {
	if s.textfile == nil {
		return
	}
	if err := s.textfile.WriteTextfile(s.Config.Metrics.Textfile); err != nil {
		logger.Warn("Metrics not written", logfields.Path(s.Config.Metrics.Textfile), logfields.Error(err))
	}
}
