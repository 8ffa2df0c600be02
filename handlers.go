package notes

import (
	"errors"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
)

// handleStatic resolves a request path to a file in the output directory.
// Routes built from percent-encoded names live in directories named with
// the encoded form, so the escaped path is tried before the decoded one.
func (p *PreviewServer) handleStatic(c echo.Context) error {
	u := c.Request().URL
	for _, candidate := range []string{u.EscapedPath(), u.Path} {
		if name, ok := p.resolve(candidate); ok {
			return c.File(name)
		}
	}
	return echo.ErrNotFound
}

// resolve maps a URL path to an existing file. Directories and extensionless
// paths map to their index.html.
func (p *PreviewServer) resolve(urlPath string) (string, bool) {
	if base := strings.TrimRight(p.basePath, "/"); base != "" {
		if urlPath == base {
			urlPath = "/"
		} else if rest, ok := strings.CutPrefix(urlPath, base+"/"); ok {
			urlPath = "/" + rest
		}
	}
	clean := path.Clean("/" + urlPath)
	name := filepath.Join(p.dir, filepath.FromSlash(clean))

	info, err := os.Stat(name)
	switch {
	case err == nil && !info.IsDir():
		return name, true
	case err == nil && info.IsDir():
		name = filepath.Join(name, "index.html")
	case path.Ext(clean) == "":
		name = filepath.Join(name, "index.html")
	default:
		return "", false
	}
	if _, err := os.Stat(name); err != nil {
		return "", false
	}
	return name, true
}

func (p *PreviewServer) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code == http.StatusNotFound {
		notFound := filepath.Join(p.dir, "404.html")
		if data, readErr := os.ReadFile(notFound); readErr == nil {
			_ = c.HTMLBlob(http.StatusNotFound, data)
			return
		}
	}
	if he == nil || he.Code >= 500 {
		p.logger.Error("Preview server error", "error", err)
	}
	p.Echo.DefaultHTTPErrorHandler(err, c)
}
