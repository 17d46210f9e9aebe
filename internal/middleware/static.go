package middleware

import (
	"strings"

	"github.com/deppfellow/fellows-tracker/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// apiPrefix marks requests that belong to the JSON API and must never be
// answered with the browser client.
const apiPrefix = "/api"

// StaticMiddleware serves the single-page client from Config.Server.StaticDir.
type StaticMiddleware struct {
	server *server.Server
}

func NewStaticMiddleware(s *server.Server) *StaticMiddleware {
	return &StaticMiddleware{server: s}
}

// SPA serves files from the static directory and falls back to index.html
// for unknown paths so client-side routes survive a reload. /api paths are
// skipped and reach the router.
func (sm *StaticMiddleware) SPA() echo.MiddlewareFunc {
	return middleware.StaticWithConfig(middleware.StaticConfig{
		Root:  sm.server.Config.Server.StaticDir,
		Index: "index.html",
		HTML5: true,
		Skipper: func(c echo.Context) bool {
			return isAPIPath(c.Request().URL.Path)
		},
	})
}

func isAPIPath(path string) bool {
	return path == apiPrefix || strings.HasPrefix(path, apiPrefix+"/")
}
