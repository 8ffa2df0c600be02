package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/markhazleton/mark-hazleton-s-notes/logfields"
)

// DefaultRepositoryStatsURL is the published repository statistics payload.
const DefaultRepositoryStatsURL = "https://raw.githubusercontent.com/markhazleton/github-stats-spark/refs/heads/main/data/repositories.json"

const maxPayloadBytes = 32 << 20

var (
	errNotObject            = errors.New("payload is not a JSON object")
	errRepositoriesNotArray = errors.New("payload repositories field is not an array")
)

// RepositoryStats is the remote repository statistics payload. It keeps the
// bytes it was decoded from so the page bootstrap can re-emit them verbatim.
type RepositoryStats struct {
	Repositories []Repository   `json:"repositories"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	Profile      map[string]any `json:"profile,omitempty"`

	raw json.RawMessage
}

// Raw returns the payload exactly as received.
func (s *RepositoryStats) Raw() json.RawMessage {
	if s == nil {
		return nil
	}
	return s.raw
}

// GeneratedAt returns metadata.generated_at when present.
func (s *RepositoryStats) GeneratedAt() string {
	if s == nil {
		return ""
	}
	v, _ := s.Metadata["generated_at"].(string)
	return v
}

// Find returns the repository with the given name.
func (s *RepositoryStats) Find(name string) (Repository, bool) {
	if s == nil {
		return Repository{}, false
	}
	for _, r := range s.Repositories {
		if r.Name == name {
			return r, true
		}
	}
	return Repository{}, false
}

// ParseRepositoryStats decodes a payload. A payload without a repositories
// field (or with a null one) is accepted with no repositories and is still
// used as the page bootstrap. A repositories field that is not an array is
// an error.
func ParseRepositoryStats(data []byte) (*RepositoryStats, error) {
	if !strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		return nil, errNotObject
	}
	var shape struct {
		Repositories json.RawMessage `json:"repositories"`
	}
	if err := json.Unmarshal(data, &shape); err != nil {
		return nil, err
	}
	switch trimmed := strings.TrimSpace(string(shape.Repositories)); {
	case trimmed == "" || trimmed == "null":
	case !strings.HasPrefix(trimmed, "["):
		return nil, errRepositoriesNotArray
	}
	var stats RepositoryStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	stats.raw = append(json.RawMessage(nil), data...)
	return &stats, nil
}

// FetchRepositoryStats downloads the repository statistics payload. Any
// failure (transport, non-2xx status, malformed body) is logged and reported
// as nil: the build carries on without repository routes or bootstrap data.
func FetchRepositoryStats(ctx context.Context, client *http.Client, url string, logger *slog.Logger) *RepositoryStats {
	if logger == nil {
		logger = slog.Default()
	}
	if client == nil {
		client = http.DefaultClient
	}
	stats, err := fetchRepositoryStats(ctx, client, url)
	if err != nil {
		logger.Warn("Repository statistics unavailable; continuing without them",
			logfields.URL(url), logfields.Error(err))
		return nil
	}
	logger.Debug("Fetched repository statistics", logfields.URL(url), logfields.Count(len(stats.Repositories)))
	return stats
}

func fetchRepositoryStats(ctx context.Context, client *http.Client, url string) (*RepositoryStats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, err
	}
	return ParseRepositoryStats(data)
}

type bootstrapKey struct{}

// WithBootstrap returns a context carrying the build-time repository
// statistics for pages rendered under it. stats may be nil.
func WithBootstrap(ctx context.Context, stats *RepositoryStats) context.Context {
	return context.WithValue(ctx, bootstrapKey{}, stats)
}

// BootstrapFrom returns the repository statistics available to the current
// render, or nil.
func BootstrapFrom(ctx context.Context) *RepositoryStats {
	stats, _ := ctx.Value(bootstrapKey{}).(*RepositoryStats)
	return stats
}
