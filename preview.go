package notes

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// PreviewServer serves a built output directory the way static hosting
// would: extensionless routes resolve to <route>/index.html and unknown
// paths get 404.html.
type PreviewServer struct {
	Echo *echo.Echo

	dir      string
	basePath string
	addr     string
	logger   *slog.Logger
}

// NewPreviewServer creates a preview server for the site's output directory.
func NewPreviewServer(cfg SiteConfig, logger *slog.Logger) *PreviewServer {
	cfg.setDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	p := &PreviewServer{
		Echo:     echo.New(),
		dir:      cfg.OutDir,
		basePath: cfg.BasePath,
		addr:     cfg.Preview.Addr,
		logger:   logger,
	}
	p.Echo.HideBanner = true
	p.Echo.HidePort = true
	p.setupMiddleware()
	p.setupRoutes()
	return p
}

func (p *PreviewServer) setupRoutes() {
	p.Echo.GET("/*", p.handleStatic)
	p.Echo.HEAD("/*", p.handleStatic)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (p *PreviewServer) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		p.logger.Info("Preview server listening", "addr", p.addr, "dir", p.dir)
		errCh <- p.Echo.Start(p.addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return p.Echo.Shutdown(shutdownCtx)
	}
}
