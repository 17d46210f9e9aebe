package handler

import (
	"github.com/deppfellow/fellows-tracker/internal/server"
	"github.com/deppfellow/fellows-tracker/internal/service"
)

// Handlers groups all HTTP handlers so router setup passes one value
// around instead of many.
type Handlers struct {
	Health *HealthHandler
	Fellow *FellowHandler
	Post   *PostHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(s),
		Fellow: NewFellowHandler(s, services.Fellows),
		Post:   NewPostHandler(s, services.Posts),
	}
}
