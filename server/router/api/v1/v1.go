// Package v1 exposes the read-only HTTP API over the workspace.
package v1

import (
	"github.com/labstack/echo/v4"

	"github.com/hrygo/filemap/internal/profile"
	"github.com/hrygo/filemap/plugin/graph"
	"github.com/hrygo/filemap/server/middleware"
	"github.com/hrygo/filemap/store"
)

type APIV1Service struct {
	Profile *profile.Profile
	Store   *store.Store
	Builder *graph.Builder

	rateLimiter *middleware.RateLimiter
}

func NewAPIV1Service(profile *profile.Profile, store *store.Store) *APIV1Service {
	return &APIV1Service{
		Profile:     profile,
		Store:       store,
		Builder:     graph.NewBuilder(store),
		rateLimiter: middleware.NewRateLimiter(),
	}
}

// Register wires the API routes into the given Echo instance.
func (s *APIV1Service) Register(echoServer *echo.Echo) {
	apiV1 := echoServer.Group("/api/v1", s.rateLimiter.Middleware())
	apiV1.GET("/graph", s.GetGraph)
	apiV1.GET("/graph/stats", s.GetGraphStats)
	apiV1.GET("/files", s.ListFiles)
	apiV1.GET("/tags", s.ListTags)
	apiV1.GET("/search", s.SearchFiles)
}
