package notes

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/markhazleton/mark-hazleton-s-notes/content"
	"github.com/markhazleton/mark-hazleton-s-notes/metrics"
)

// DefaultStaticRoutes are prerendered on every build.
var DefaultStaticRoutes = []string{"/", "/blog", "/about", "/projects", "/contact", "/now"}

// SiteConfig holds all configuration for a build.
type SiteConfig struct {
	Name        string       `yaml:"name"`        // Site name (default "Mark Hazleton")
	URL         string       `yaml:"url"`         // Canonical origin (default "https://markhazleton.com")
	BasePath    string       `yaml:"base_path"`   // Deployment sub-path (default "/")
	Title       string       `yaml:"title"`       // Default page title
	Description string       `yaml:"description"` // Default meta description
	Keywords    string       `yaml:"keywords"`    // Default meta keywords
	Image       string       `yaml:"image"`       // Default social image (default <url>/placeholder.svg)
	Author      AuthorConfig `yaml:"author"`

	Content ContentConfig `yaml:"content"`
	Remote  RemoteConfig  `yaml:"remote"`
	Routes  RoutesConfig  `yaml:"routes"`

	OutDir        string `yaml:"out"`            // Output directory (default "dist")
	Template      string `yaml:"template"`       // Explicit base template; searched for when empty
	TemplateCache string `yaml:"template_cache"` // Pristine template copy (default ".cache/prerender/index.template.html")
	Concurrency   int    `yaml:"concurrency"`    // Route pool size (default runtime.NumCPU())

	SkipNotFound  bool `yaml:"skip_not_found"`  // Do not emit 404.html
	SkipSEOAssets bool `yaml:"skip_seo_assets"` // Do not emit sitemap.xml, feed.xml, robots.txt
	SkipVerify    bool `yaml:"skip_verify"`     // Do not re-parse emitted pages

	Images  ImagesConfig  `yaml:"images"`
	Ledger  LedgerConfig  `yaml:"ledger"`
	Metrics MetricsConfig `yaml:"metrics"`
	Preview PreviewConfig `yaml:"preview"`
}

// AuthorConfig describes the site owner for structured data.
type AuthorConfig struct {
	Name        string   `yaml:"name"`
	JobTitle    string   `yaml:"job_title"`
	Description string   `yaml:"description"`
	SameAs      []string `yaml:"same_as"`
}

// ContentConfig locates the local data files.
type ContentConfig struct {
	Articles string `yaml:"articles"` // default "src/data/articles.json"
	Projects string `yaml:"projects"` // default "src/data/projects.json"
	Videos   string `yaml:"videos"`   // default "src/data/youtube-videos.json"; optional
	Dir      string `yaml:"dir"`      // Markdown bodies (default "src/content")
}

// RemoteConfig controls the repository statistics fetch.
type RemoteConfig struct {
	URL      string        `yaml:"url"`
	Timeout  time.Duration `yaml:"timeout"` // default 10s
	Disabled bool          `yaml:"disabled"`
}

// RoutesConfig controls route enumeration.
type RoutesConfig struct {
	Static           []string `yaml:"static"`
	RepositoryPrefix string   `yaml:"repository_prefix"` // default "/now/repositories/"
}

// ImagesConfig enables the image downscaling stage when Dir is set.
type ImagesConfig struct {
	Dir      string `yaml:"dir"`
	Prefix   string `yaml:"prefix"`    // default "img"
	MaxWidth int    `yaml:"max_width"` // default 1200
	Quality  int    `yaml:"quality"`   // default 82
}

// LedgerConfig enables the sqlite build ledger when Path is set.
type LedgerConfig struct {
	Path string `yaml:"path"`
}

// MetricsConfig enables writing build metrics when Textfile is set.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// PreviewConfig controls the preview server.
type PreviewConfig struct {
	Addr     string        `yaml:"addr"`     // default ":4173"
	Debounce time.Duration `yaml:"debounce"` // default 500ms
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Mark Hazleton"
	}
	if c.URL == "" {
		c.URL = "https://markhazleton.com"
	}
	c.URL = strings.TrimRight(c.URL, "/")
	if c.BasePath == "" {
		c.BasePath = "/"
	}
	if c.Title == "" {
		c.Title = c.Name + " | Technical Solutions Architect"
	}
	if c.Description == "" {
		c.Description = "Technical Solutions Architect designing resilient .NET and Azure systems for healthcare and enterprise."
	}
	if c.Keywords == "" {
		c.Keywords = c.Name + ", technical solutions architect, cloud architecture, Azure, .NET, integration patterns"
	}
	if c.Image == "" {
		c.Image = c.URL + "/placeholder.svg"
	}
	if c.Author.Name == "" {
		c.Author.Name = c.Name
	}
	if c.Author.JobTitle == "" {
		c.Author.JobTitle = "Technical Solutions Architect"
	}
	if c.Author.Description == "" {
		c.Author.Description = c.Description
	}
	if c.Content.Articles == "" {
		c.Content.Articles = "src/data/articles.json"
	}
	if c.Content.Projects == "" {
		c.Content.Projects = "src/data/projects.json"
	}
	if c.Content.Videos == "" {
		c.Content.Videos = "src/data/youtube-videos.json"
	}
	if c.Content.Dir == "" {
		c.Content.Dir = "src/content"
	}
	if c.Remote.URL == "" {
		c.Remote.URL = content.DefaultRepositoryStatsURL
	}
	if c.Remote.Timeout == 0 {
		c.Remote.Timeout = 10 * time.Second
	}
	if len(c.Routes.Static) == 0 {
		c.Routes.Static = append([]string(nil), DefaultStaticRoutes...)
	}
	if c.OutDir == "" {
		c.OutDir = "dist"
	}
	if c.TemplateCache == "" {
		c.TemplateCache = ".cache/prerender/index.template.html"
	}
	if c.Concurrency <= 0 {
		c.Concurrency = runtime.NumCPU()
	}
	if c.Images.Prefix == "" {
		c.Images.Prefix = "img"
	}
	if c.Images.MaxWidth == 0 {
		c.Images.MaxWidth = 1200
	}
	if c.Images.Quality == 0 {
		c.Images.Quality = 82
	}
	if c.Preview.Addr == "" {
		c.Preview.Addr = ":4173"
	}
	if c.Preview.Debounce == 0 {
		c.Preview.Debounce = 500 * time.Millisecond
	}
}

// ConfigError reports an unusable configuration.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return "config: " + e.Err.Error()
	}
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// LoadConfig reads .env files, then the YAML file at path with environment
// variables expanded, then applies the SITE_URL and BASE_PATH overrides.
// An empty path yields the defaults. Defaults are applied by New.
func LoadConfig(path string) (SiteConfig, error) {
	var cfg SiteConfig
	if err := loadEnvFiles(".env", ".env.local"); err != nil {
		return cfg, &ConfigError{Err: err}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, &ConfigError{Path: path, Err: err}
		}
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
			return cfg, &ConfigError{Path: path, Err: err}
		}
	}
	cfg.URL = EnvOr("SITE_URL", EnvOr("VITE_SITE_URL", cfg.URL))
	cfg.BasePath = EnvOr("BASE_PATH", cfg.BasePath)
	return cfg, nil
}

// loadEnvFiles loads each file that exists. Variables already set in the
// process environment win.
func loadEnvFiles(names ...string) error {
	for _, name := range names {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Option configures additional Site behavior.
type Option func(*Site)

// WithLogger sets the logger used by the build.
func WithLogger(l *slog.Logger) Option {
	return func(s *Site) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithHTTPClient sets the client used for the remote fetch.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Site) {
		s.client = c
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Site) {
		if r != nil {
			s.recorder = r
		}
	}
}
