// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives
// validated input from the handlers, calls the repositories, and turns
// "row not found" into the HTTP error the route promises.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/fellows-tracker/internal/errs"
	"github.com/deppfellow/fellows-tracker/internal/model"
	"github.com/deppfellow/fellows-tracker/internal/repository"
)

// FellowRepository is the storage the fellow and post services need for fellows.
type FellowRepository interface {
	Create(ctx context.Context, name string) (*model.Fellow, error)
	List(ctx context.Context) ([]model.Fellow, error)
	FindByID(ctx context.Context, id int64) (*model.Fellow, error)
	FindByName(ctx context.Context, name string) (*model.Fellow, error)
	EditName(ctx context.Context, id int64, newName string) (*model.Fellow, error)
	Delete(ctx context.Context, id int64) (*model.Fellow, error)
}

// PostRepository is the storage the post service needs for posts.
type PostRepository interface {
	Create(ctx context.Context, content string, fellowID int64) (*model.Post, error)
	List(ctx context.Context) ([]model.Post, error)
	FindByID(ctx context.Context, id int64) (*model.Post, error)
	FindPostsByFellowID(ctx context.Context, fellowID int64) ([]model.PostSummary, error)
	Delete(ctx context.Context, id int64) (*model.Post, error)
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}

// noEntityWithID is the 404 clients get for a missing id, with the
// message "No fellow with the id 7".
func noEntityWithID(entity string, id int64) *errs.HTTPError {
	return errs.NewNotFoundError(fmt.Sprintf("No %s with the id %d", entity, id), false, nil)
}
