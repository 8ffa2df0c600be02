package content

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/markhazleton/mark-hazleton-s-notes/markdown"
)

// LegacyIndexFile is the content file of the old articles index page. It is
// not an article and never becomes a route.
const LegacyIndexFile = "articles.md"

const fallbackDate = "1970-01-01"

var (
	reMarkdownExt = regexp.MustCompile(`(?i)\.md$`)
	reHTMLExt     = regexp.MustCompile(`(?i)\.html$`)
)

// ReadArticles decodes an articles.json file.
func ReadArticles(path string) ([]ArticleEntry, error) {
	var entries []ArticleEntry
	if err := readJSON(path, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// BuildSlug derives the URL slug of an article. Records written by the
// current content build name a Markdown file; older records only carry the
// legacy "articles/<name>.html" slug.
func BuildSlug(e ArticleEntry) string {
	if e.ContentFile != "" {
		return reMarkdownExt.ReplaceAllString(e.ContentFile, "")
	}
	return reHTMLExt.ReplaceAllString(strings.TrimPrefix(e.Slug, "articles/"), "")
}

// IsPublishable reports whether e is a real article: it yields a slug, is
// not the legacy index page and is not a draft. Legacy records without a
// content file are publishable through their slug field.
func IsPublishable(e ArticleEntry) bool {
	return e.ContentFile != LegacyIndexFile &&
		!strings.HasPrefix(e.ContentFile, "_") &&
		BuildSlug(e) != ""
}

// ToPost maps a raw article record into a Post. basePath is the deployment
// sub-path applied to site-relative image references.
func ToPost(e ArticleEntry, basePath string) Post {
	minutes := readingMinutes(e.EstimatedReadTime)
	excerpt := strings.TrimSpace(e.Summary)
	if excerpt == "" {
		excerpt = strings.TrimSpace(e.Description)
	}
	date := e.PublishedDate
	if date == "" {
		date = e.LastMod
	}
	p := Post{
		Slug:        BuildSlug(e),
		Title:       e.Name,
		Excerpt:     markdown.Strip(excerpt),
		Date:        NormalizeDate(date),
		ReadingTime: fmt.Sprintf("%d min", minutes),
		Minutes:     minutes,
		ContentFile: e.ContentFile,
		Source:      e.Source,
		Section:     e.Section,
		Keywords:    e.Keywords,
		Author:      e.Author,
		LastMod:     e.LastMod,
	}
	if e.Section != "" {
		p.Tags = []string{e.Section}
	}
	if e.ImgSrc != nil {
		p.Image = WithBasePath(basePath, *e.ImgSrc)
	}
	return p
}

// Posts maps every publishable entry into a Post, newest first.
func Posts(entries []ArticleEntry, basePath string) []Post {
	posts := make([]Post, 0, len(entries))
	for _, e := range entries {
		if !IsPublishable(e) {
			continue
		}
		posts = append(posts, ToPost(e, basePath))
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date > posts[j].Date
	})
	return posts
}

// ReadBody returns the Markdown source of a post from contentDir.
func ReadBody(contentDir string, p Post) (string, error) {
	if p.ContentFile == "" {
		return "", nil
	}
	name := filepath.Base(p.ContentFile)
	data, err := os.ReadFile(filepath.Join(contentDir, name))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Tags returns the sorted, unique tags across posts.
func Tags(posts []Post) []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, p := range posts {
		for _, t := range p.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	sort.Strings(tags)
	return tags
}

// NormalizeDate renders value as YYYY-MM-DD, falling back to the Unix epoch
// for empty or unparseable input.
func NormalizeDate(value string) string {
	t, ok := ParseDate(value)
	if !ok {
		return fallbackDate
	}
	return t.Format("2006-01-02")
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"01/02/2006",
}

// ParseDate parses the date formats found in the data files, in UTC.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func readingMinutes(v float64) int {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 5
	}
	return max(1, int(math.Round(v)))
}

// WithBasePath prefixes a site-relative value with the deployment sub-path.
// Absolute URLs and empty values are returned unchanged.
func WithBasePath(basePath, value string) string {
	if value == "" || strings.HasPrefix(value, "http") {
		return value
	}
	base := basePath
	if base == "" {
		base = "/"
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + strings.TrimPrefix(value, "/")
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
