package repository

import (
	"github.com/deppfellow/fellows-tracker/internal/database"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Fellows *FellowRepository
	Posts   *PostRepository
}

// NewRepositories builds every repository on top of store, normally the
// server's *pgxpool.Pool.
func NewRepositories(store database.Store) *Repositories {
	posts := NewPostRepository(store)

	return &Repositories{
		Fellows: NewFellowRepository(store, posts),
		Posts:   posts,
	}
}
