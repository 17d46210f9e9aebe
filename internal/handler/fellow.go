package handler

import (
	"github.com/deppfellow/fellows-tracker/internal/model"
	"github.com/deppfellow/fellows-tracker/internal/server"
	"github.com/deppfellow/fellows-tracker/internal/service"
	"github.com/deppfellow/fellows-tracker/internal/validation"
	"github.com/labstack/echo/v4"
)

type FellowHandler struct {
	Handler
	fellows *service.FellowService
}

func NewFellowHandler(s *server.Server, fellows *service.FellowService) *FellowHandler {
	return &FellowHandler{
		Handler: NewHandler(s),
		fellows: fellows,
	}
}

// FellowIDRequest addresses a single fellow through the :id path param.
type FellowIDRequest struct {
	ID int64 `param:"id" json:"-"`
}

func (r *FellowIDRequest) Validate() error {
	return validation.Struct(r)
}

// ListFellowsRequest carries the optional ?name= filter.
type ListFellowsRequest struct {
	Name string `query:"name"`
}

func (r *ListFellowsRequest) Validate() error {
	return nil
}

type CreateFellowRequest struct {
	FellowName string `json:"fellowName" validate:"required"`
}

func (r *CreateFellowRequest) Validate() error {
	return validation.Struct(r)
}

type RenameFellowRequest struct {
	ID         int64  `param:"id" json:"-"`
	FellowName string `json:"fellowName" validate:"required"`
}

func (r *RenameFellowRequest) Validate() error {
	return validation.Struct(r)
}

// ListFellows answers GET /api/fellows. With ?name= it returns the first
// fellow of that name, or an empty list.
func (h *FellowHandler) ListFellows(c echo.Context, req *ListFellowsRequest) ([]model.Fellow, error) {
	if req.Name != "" {
		return h.fellows.FindByName(c.Request().Context(), req.Name)
	}
	return h.fellows.List(c.Request().Context())
}

func (h *FellowHandler) GetFellow(c echo.Context, req *FellowIDRequest) (*model.Fellow, error) {
	return h.fellows.Get(c.Request().Context(), req.ID)
}

func (h *FellowHandler) CreateFellow(c echo.Context, req *CreateFellowRequest) (*model.Fellow, error) {
	return h.fellows.Create(c.Request().Context(), req.FellowName)
}

func (h *FellowHandler) RenameFellow(c echo.Context, req *RenameFellowRequest) (*model.Fellow, error) {
	return h.fellows.Rename(c.Request().Context(), req.ID, req.FellowName)
}

// DeleteFellow removes the fellow together with all of its posts.
func (h *FellowHandler) DeleteFellow(c echo.Context, req *FellowIDRequest) error {
	return h.fellows.Delete(c.Request().Context(), req.ID)
}
