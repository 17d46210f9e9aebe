package handler

import (
	"github.com/deppfellow/fellows-tracker/internal/model"
	"github.com/deppfellow/fellows-tracker/internal/server"
	"github.com/deppfellow/fellows-tracker/internal/service"
	"github.com/deppfellow/fellows-tracker/internal/validation"
	"github.com/labstack/echo/v4"
)

type PostHandler struct {
	Handler
	posts *service.PostService
}

func NewPostHandler(s *server.Server, posts *service.PostService) *PostHandler {
	return &PostHandler{
		Handler: NewHandler(s),
		posts:   posts,
	}
}

type PostIDRequest struct {
	ID int64 `param:"id" json:"-"`
}

func (r *PostIDRequest) Validate() error {
	return validation.Struct(r)
}

// ListPostsRequest has nothing to bind; it only exists to run GET /api/posts
// through the common pipeline.
type ListPostsRequest struct{}

func (r *ListPostsRequest) Validate() error {
	return nil
}

type CreatePostRequest struct {
	PostContent string `json:"postContent" validate:"required"`
	FellowID    int64  `json:"fellowId" validate:"required,min=1,max=2147483647"`
}

func (r *CreatePostRequest) Validate() error {
	return validation.Struct(r)
}

func (h *PostHandler) ListPosts(c echo.Context, _ *ListPostsRequest) ([]model.Post, error) {
	return h.posts.List(c.Request().Context())
}

func (h *PostHandler) GetPost(c echo.Context, req *PostIDRequest) (*model.Post, error) {
	return h.posts.Get(c.Request().Context(), req.ID)
}

// CreatePost stores a post. An unknown fellowId comes back from the store
// as a foreign key violation and is rendered as a 400.
func (h *PostHandler) CreatePost(c echo.Context, req *CreatePostRequest) (*model.Post, error) {
	return h.posts.Create(c.Request().Context(), req.PostContent, req.FellowID)
}

// ListFellowPosts answers GET /api/fellows/:id/posts.
func (h *PostHandler) ListFellowPosts(c echo.Context, req *FellowIDRequest) ([]model.PostSummary, error) {
	return h.posts.ListByFellow(c.Request().Context(), req.ID)
}

// DeletePost returns the deleted record on success.
func (h *PostHandler) DeletePost(c echo.Context, req *PostIDRequest) (*model.Post, error) {
	return h.posts.Delete(c.Request().Context(), req.ID)
}
