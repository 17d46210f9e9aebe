package repository

import (
	"context"

	"github.com/deppfellow/fellows-tracker/internal/database"
	"github.com/deppfellow/fellows-tracker/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const (
	createFellowQuery = `
		INSERT INTO fellows (name)
		VALUES ($1)
		RETURNING id, name`

	listFellowsQuery = `
		SELECT id, name
		FROM fellows
		ORDER BY id`

	findFellowByIDQuery = `
		SELECT id, name
		FROM fellows
		WHERE id = $1`

	findFellowByNameQuery = `
		SELECT id, name
		FROM fellows
		WHERE name = $1
		ORDER BY id
		LIMIT 1`

	editFellowNameQuery = `
		UPDATE fellows
		SET name = $1
		WHERE id = $2
		RETURNING id, name`

	deleteFellowQuery = `
		DELETE FROM fellows
		WHERE id = $1
		RETURNING id, name`
)

// FellowRepository runs the fellows statements.
//
// Delete needs to open a transaction, so it keeps the Store and not just
// a Querier.
type FellowRepository struct {
	store database.Store
	posts *PostRepository
}

func NewFellowRepository(store database.Store, posts *PostRepository) *FellowRepository {
	return &FellowRepository{store: store, posts: posts}
}

func scanFellow(row pgx.CollectableRow) (model.Fellow, error) {
	var f model.Fellow
	err := row.Scan(&f.ID, &f.Name)
	return f, err
}

func queryOneFellow(ctx context.Context, q database.Querier, sql string, args ...any) (*model.Fellow, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	fellow, err := pgx.CollectOneRow(rows, scanFellow)
	if err != nil {
		return nil, notFound(err)
	}
	return &fellow, nil
}

// Create inserts a fellow and returns it with its generated id.
func (r *FellowRepository) Create(ctx context.Context, name string) (*model.Fellow, error) {
	fellow, err := queryOneFellow(ctx, r.store, createFellowQuery, name)
	if err != nil {
		return nil, errors.Wrap(err, "create fellow")
	}
	return fellow, nil
}

// List returns every fellow in id order.
func (r *FellowRepository) List(ctx context.Context) ([]model.Fellow, error) {
	rows, err := r.store.Query(ctx, listFellowsQuery)
	if err != nil {
		return nil, errors.Wrap(err, "list fellows")
	}

	fellows, err := pgx.CollectRows(rows, scanFellow)
	if err != nil {
		return nil, errors.Wrap(err, "list fellows")
	}
	if fellows == nil {
		fellows = []model.Fellow{}
	}
	return fellows, nil
}

// FindByID returns the fellow with id or ErrNotFound.
func (r *FellowRepository) FindByID(ctx context.Context, id int64) (*model.Fellow, error) {
	if !inSerialRange(id) {
		return nil, errors.Wrapf(ErrNotFound, "find fellow %d", id)
	}

	fellow, err := queryOneFellow(ctx, r.store, findFellowByIDQuery, id)
	if err != nil {
		return nil, errors.Wrapf(err, "find fellow %d", id)
	}
	return fellow, nil
}

// FindByName returns the lowest-id fellow called name, or ErrNotFound.
func (r *FellowRepository) FindByName(ctx context.Context, name string) (*model.Fellow, error) {
	fellow, err := queryOneFellow(ctx, r.store, findFellowByNameQuery, name)
	if err != nil {
		return nil, errors.Wrapf(err, "find fellow %q", name)
	}
	return fellow, nil
}

// EditName renames the fellow with id and returns the updated row, or
// ErrNotFound without inserting anything.
func (r *FellowRepository) EditName(ctx context.Context, id int64, newName string) (*model.Fellow, error) {
	if !inSerialRange(id) {
		return nil, errors.Wrapf(ErrNotFound, "rename fellow %d", id)
	}

	fellow, err := queryOneFellow(ctx, r.store, editFellowNameQuery, newName, id)
	if err != nil {
		return nil, errors.Wrapf(err, "rename fellow %d", id)
	}
	return fellow, nil
}

// Delete removes the fellow with id together with all of its posts.
//
// Posts go first, then the fellow, in one transaction: either both are
// gone or neither is. A missing fellow returns ErrNotFound and changes
// nothing.
func (r *FellowRepository) Delete(ctx context.Context, id int64) (*model.Fellow, error) {
	if !inSerialRange(id) {
		return nil, errors.Wrapf(ErrNotFound, "delete fellow %d", id)
	}

	var deleted *model.Fellow

	err := database.WithTx(ctx, r.store, func(tx pgx.Tx) error {
		if _, err := r.posts.WithQuerier(tx).DeleteAllPostsForFellow(ctx, id); err != nil {
			return err
		}

		fellow, err := queryOneFellow(ctx, tx, deleteFellowQuery, id)
		if err != nil {
			return err
		}
		deleted = fellow
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "delete fellow %d", id)
	}

	return deleted, nil
}
