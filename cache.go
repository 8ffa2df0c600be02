package notes

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/markhazleton/mark-hazleton-s-notes/content"
	"github.com/markhazleton/mark-hazleton-s-notes/logfields"
)

// Content is everything read from the local data files.
type Content struct {
	Articles []content.ArticleEntry
	Sources  []content.ProjectSource
	Posts    []content.Post
	Projects []content.Project
	Videos   content.VideosPayload
}

// ContentCache holds the decoded data files between builds. The preview
// watcher invalidates it when a data file changes.
type ContentCache struct {
	mu       sync.RWMutex
	cfg      ContentConfig
	basePath string
	logger   *slog.Logger
	loaded   *Content
}

// NewContentCache creates a ContentCache reading the files named by cfg.
func NewContentCache(cfg ContentConfig, basePath string, logger *slog.Logger) *ContentCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContentCache{cfg: cfg, basePath: basePath, logger: logger}
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *ContentCache) Invalidate() {
	c.mu.Lock()
	c.loaded = nil
	c.mu.Unlock()
}

// Load returns the cached content, reading the data files on first use.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *ContentCache) Load() (*Content, error) {
	c.mu.RLock()
	if c.loaded != nil {
		loaded := c.loaded
		c.mu.RUnlock()
		return loaded, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded != nil {
		return c.loaded, nil
	}
	loaded, err := c.read()
	if err != nil {
		return nil, err
	}
	c.loaded = loaded
	return loaded, nil
}

func (c *ContentCache) read() (*Content, error) {
	articles, err := content.ReadArticles(c.cfg.Articles)
	if err != nil {
		return nil, fmt.Errorf("read articles: %w", err)
	}
	sources, err := content.ReadProjects(c.cfg.Projects)
	if err != nil {
		return nil, fmt.Errorf("read projects: %w", err)
	}
	videos, err := content.ReadVideos(c.cfg.Videos)
	if err != nil {
		return nil, fmt.Errorf("read videos: %w", err)
	}

	posts := content.Posts(articles, c.basePath)
	for i := range posts {
		body, err := content.ReadBody(c.cfg.Dir, posts[i])
		if errors.Is(err, fs.ErrNotExist) {
			c.logger.Warn("Article body missing", logfields.Path(posts[i].ContentFile))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read article body %s: %w", posts[i].ContentFile, err)
		}
		posts[i].Body = body
	}

	return &Content{
		Articles: articles,
		Sources:  sources,
		Posts:    posts,
		Projects: content.Projects(sources, c.basePath),
		Videos:   videos,
	}, nil
}
