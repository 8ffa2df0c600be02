package notes

import (
	"path"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/markhazleton/mark-hazleton-s-notes/logfields"
)

func (p *PreviewServer) setupMiddleware() {
	e := p.Echo

	e.HTTPErrorHandler = p.httpErrorHandler

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			p.logger.Info("Request",
				"method", v.Method,
				logfields.URL(v.URI),
				logfields.Status(v.Status),
				logfields.Duration(v.Latency))
			return nil
		},
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			switch path.Ext(c.Request().URL.Path) {
			case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".woff2":
				return true
			}
			return false
		},
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	e.Use(cacheControlMiddleware)
}

// cacheControlMiddleware mirrors typical static hosting: hashed assets are
// immutable, feeds are cached for a day, and pages are always revalidated.
func cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		p := c.Request().URL.Path
		switch {
		case strings.Contains(p, "/assets/"):
			c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		case strings.HasSuffix(p, "/sitemap.xml") || strings.HasSuffix(p, "/feed.xml") || strings.HasSuffix(p, "/robots.txt"):
			c.Response().Header().Set("Cache-Control", "public, max-age=86400")
		default:
			c.Response().Header().Set("Cache-Control", "public, max-age=0, must-revalidate")
		}
		return next(c)
	}
}
