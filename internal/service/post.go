package service

import (
	"context"

	"github.com/deppfellow/fellows-tracker/internal/model"
)

type PostService struct {
	posts   PostRepository
	fellows FellowRepository
}

func NewPostService(posts PostRepository, fellows FellowRepository) *PostService {
	return &PostService{posts: posts, fellows: fellows}
}

// Create stores a post. An unknown fellowID surfaces as the foreign key
// violation from the store.
func (s *PostService) Create(ctx context.Context, content string, fellowID int64) (*model.Post, error) {
	return s.posts.Create(ctx, content, fellowID)
}

func (s *PostService) List(ctx context.Context) ([]model.Post, error) {
	return s.posts.List(ctx)
}

func (s *PostService) Get(ctx context.Context, id int64) (*model.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if isNotFound(err) {
		return nil, noEntityWithID("post", id).AsText()
	}
	return post, err
}

// ListByFellow returns the fellow's posts, possibly none. Only a fellow
// that does not exist is a 404.
func (s *PostService) ListByFellow(ctx context.Context, fellowID int64) ([]model.PostSummary, error) {
	if _, err := s.fellows.FindByID(ctx, fellowID); err != nil {
		if isNotFound(err) {
			return nil, noEntityWithID("fellow", fellowID).AsText()
		}
		return nil, err
	}

	return s.posts.FindPostsByFellowID(ctx, fellowID)
}

// Delete returns the removed post. A miss is a bare 404.
func (s *PostService) Delete(ctx context.Context, id int64) (*model.Post, error) {
	post, err := s.posts.Delete(ctx, id)
	if isNotFound(err) {
		return nil, noEntityWithID("post", id).WithoutBody()
	}
	return post, err
}
