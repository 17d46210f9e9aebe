package router

import (
	"net/http"

	"github.com/deppfellow/fellows-tracker/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerAPIRoutes(api *echo.Group, h *handler.Handlers) {
	fellows := api.Group("/fellows")
	fellows.GET("", handler.Handle(h.Fellow.Handler, h.Fellow.ListFellows, http.StatusOK))
	fellows.POST("", handler.Handle(h.Fellow.Handler, h.Fellow.CreateFellow, http.StatusOK))
	fellows.GET("/:id", handler.Handle(h.Fellow.Handler, h.Fellow.GetFellow, http.StatusOK))
	fellows.PATCH("/:id", handler.Handle(h.Fellow.Handler, h.Fellow.RenameFellow, http.StatusOK))
	fellows.DELETE("/:id", handler.HandleNoContent(h.Fellow.Handler, h.Fellow.DeleteFellow, http.StatusNoContent))
	fellows.GET("/:id/posts", handler.Handle(h.Post.Handler, h.Post.ListFellowPosts, http.StatusOK))

	posts := api.Group("/posts")
	posts.GET("", handler.Handle(h.Post.Handler, h.Post.ListPosts, http.StatusOK))
	posts.POST("", handler.Handle(h.Post.Handler, h.Post.CreatePost, http.StatusOK))
	posts.GET("/:id", handler.Handle(h.Post.Handler, h.Post.GetPost, http.StatusOK))
	posts.DELETE("/:id", handler.Handle(h.Post.Handler, h.Post.DeletePost, http.StatusOK))
}
