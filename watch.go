package notes

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/markhazleton/mark-hazleton-s-notes/logfields"
)

// Watcher rebuilds the site when a data file, an article body or the
// explicit base template changes. Bursts of events are debounced into one
// rebuild.
type Watcher struct {
	site     *Site
	debounce time.Duration
	logger   *slog.Logger

	files map[string]struct{}
	dirs  []string

	// OnBuild, when set, is called after every rebuild.
	OnBuild func(Result, error)
}

// NewWatcher creates a Watcher for the site's inputs.
func NewWatcher(site *Site) *Watcher {
	cfg := site.Config
	w := &Watcher{
		site:     site,
		debounce: cfg.Preview.Debounce,
		logger:   site.logger,
		files:    make(map[string]struct{}),
	}
	for _, f := range []string{cfg.Content.Articles, cfg.Content.Projects, cfg.Content.Videos, cfg.Template} {
		if f == "" {
			continue
		}
		if abs, err := filepath.Abs(f); err == nil {
			w.files[abs] = struct{}{}
		}
	}
	if abs, err := filepath.Abs(cfg.Content.Dir); err == nil {
		w.dirs = append(w.dirs, abs)
	}
	return w
}

// relevant reports whether a change to name should trigger a rebuild.
func (w *Watcher) relevant(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	if _, ok := w.files[abs]; ok {
		return true
	}
	for _, dir := range w.dirs {
		if strings.HasPrefix(abs, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// watchDirs returns the directories to register. Parent directories are
// watched rather than the files themselves so atomic replaces are seen.
func (w *Watcher) watchDirs() []string {
	seen := make(map[string]struct{})
	var dirs []string
	add := func(d string) {
		if _, ok := seen[d]; !ok {
			seen[d] = struct{}{}
			dirs = append(dirs, d)
		}
	}
	for f := range w.files {
		add(filepath.Dir(f))
	}
	for _, d := range w.dirs {
		add(d)
	}
	return dirs
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = fw.Close() }()

	for _, dir := range w.watchDirs() {
		if err := fw.Add(dir); err != nil {
			w.logger.Warn("Cannot watch directory", logfields.Path(dir), logfields.Error(err))
		}
	}

	rebuildReq, trigger := w.debouncer()
	defer trigger(false)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 || !w.relevant(ev.Name) {
				continue
			}
			w.logger.Debug("Change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
			trigger(true)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", logfields.Error(err))
		case <-rebuildReq:
			w.rebuild(ctx)
		}
	}
}

// debouncer returns the rebuild channel and a trigger that restarts the
// debounce timer. trigger(false) stops any pending timer.
func (w *Watcher) debouncer() (chan struct{}, func(bool)) {
	var mu sync.Mutex
	var timer *time.Timer
	rebuildReq := make(chan struct{}, 1)

	trigger := func(arm bool) {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		if !arm {
			return
		}
		timer = time.AfterFunc(w.debounce, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}
	return rebuildReq, trigger
}

func (w *Watcher) rebuild(ctx context.Context) {
	w.site.Cache.Invalidate()
	res, err := w.site.Build(ctx)
	if err != nil {
		w.logger.Error("Rebuild failed", logfields.Error(err))
	} else {
		w.logger.Info("Rebuilt", logfields.Count(len(res.Routes)), logfields.Duration(res.Duration))
	}
	if w.OnBuild != nil {
		w.OnBuild(res, err)
	}
}
