package service

import (
	"github.com/deppfellow/fellows-tracker/internal/repository"
)

// Services groups every service so the router wiring passes one value around.
type Services struct {
	Fellows *FellowService
	Posts   *PostService
}

func NewServices(repos *repository.Repositories) *Services {
	return &Services{
		Fellows: NewFellowService(repos.Fellows),
		Posts:   NewPostService(repos.Posts, repos.Fellows),
	}
}
