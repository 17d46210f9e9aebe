package repository

import (
	"context"

	"github.com/deppfellow/fellows-tracker/internal/database"
	"github.com/deppfellow/fellows-tracker/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const (
	createPostQuery = `
		INSERT INTO posts (post_content, fellow_id)
		VALUES ($1, $2)
		RETURNING id, post_content, fellow_id`

	listPostsQuery = `
		SELECT id, post_content, fellow_id
		FROM posts
		ORDER BY id`

	findPostByIDQuery = `
		SELECT id, post_content, fellow_id
		FROM posts
		WHERE id = $1`

	findPostsByFellowIDQuery = `
		SELECT posts.id, posts.post_content
		FROM posts
		JOIN fellows
			ON posts.fellow_id = fellows.id
		WHERE fellows.id = $1
		ORDER BY posts.id`

	deletePostQuery = `
		DELETE FROM posts
		WHERE id = $1
		RETURNING id, post_content, fellow_id`

	deleteAllPostsForFellowQuery = `
		DELETE FROM posts
		WHERE fellow_id = $1`
)

// PostRepository runs the posts statements.
type PostRepository struct {
	db database.Querier
}

func NewPostRepository(db database.Querier) *PostRepository {
	return &PostRepository{db: db}
}

// WithQuerier returns a PostRepository that runs on q, typically a pgx.Tx.
func (r *PostRepository) WithQuerier(q database.Querier) *PostRepository {
	return &PostRepository{db: q}
}

func scanPost(row pgx.CollectableRow) (model.Post, error) {
	var p model.Post
	err := row.Scan(&p.ID, &p.PostContent, &p.FellowID)
	return p, err
}

func scanPostSummary(row pgx.CollectableRow) (model.PostSummary, error) {
	var p model.PostSummary
	err := row.Scan(&p.ID, &p.PostContent)
	return p, err
}

func (r *PostRepository) queryOne(ctx context.Context, sql string, args ...any) (*model.Post, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	post, err := pgx.CollectOneRow(rows, scanPost)
	if err != nil {
		return nil, notFound(err)
	}
	return &post, nil
}

// Create inserts a post for fellowID. A fellowID with no fellow behind it
// fails on the foreign key.
func (r *PostRepository) Create(ctx context.Context, content string, fellowID int64) (*model.Post, error) {
	post, err := r.queryOne(ctx, createPostQuery, content, fellowID)
	if err != nil {
		return nil, errors.Wrap(err, "create post")
	}
	return post, nil
}

// List returns every post in id order.
func (r *PostRepository) List(ctx context.Context) ([]model.Post, error) {
	rows, err := r.db.Query(ctx, listPostsQuery)
	if err != nil {
		return nil, errors.Wrap(err, "list posts")
	}

	posts, err := pgx.CollectRows(rows, scanPost)
	if err != nil {
		return nil, errors.Wrap(err, "list posts")
	}
	if posts == nil {
		posts = []model.Post{}
	}
	return posts, nil
}

// FindByID returns the post with id or ErrNotFound.
func (r *PostRepository) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	if !inSerialRange(id) {
		return nil, errors.Wrapf(ErrNotFound, "find post %d", id)
	}

	post, err := r.queryOne(ctx, findPostByIDQuery, id)
	if err != nil {
		return nil, errors.Wrapf(err, "find post %d", id)
	}
	return post, nil
}

// FindPostsByFellowID returns the id and content of every post owned by
// fellowID. A fellow without posts, or no fellow at all, yields an empty slice.
func (r *PostRepository) FindPostsByFellowID(ctx context.Context, fellowID int64) ([]model.PostSummary, error) {
	if !inSerialRange(fellowID) {
		return []model.PostSummary{}, nil
	}

	rows, err := r.db.Query(ctx, findPostsByFellowIDQuery, fellowID)
	if err != nil {
		return nil, errors.Wrapf(err, "find posts by fellow %d", fellowID)
	}

	posts, err := pgx.CollectRows(rows, scanPostSummary)
	if err != nil {
		return nil, errors.Wrapf(err, "find posts by fellow %d", fellowID)
	}
	if posts == nil {
		posts = []model.PostSummary{}
	}
	return posts, nil
}

// Delete removes the post with id and returns it, or ErrNotFound.
func (r *PostRepository) Delete(ctx context.Context, id int64) (*model.Post, error) {
	if !inSerialRange(id) {
		return nil, errors.Wrapf(ErrNotFound, "delete post %d", id)
	}

	post, err := r.queryOne(ctx, deletePostQuery, id)
	if err != nil {
		return nil, errors.Wrapf(err, "delete post %d", id)
	}
	return post, nil
}

// DeleteAllPostsForFellow removes every post owned by fellowID and reports
// how many rows went away.
func (r *PostRepository) DeleteAllPostsForFellow(ctx context.Context, fellowID int64) (int64, error) {
	if !inSerialRange(fellowID) {
		return 0, nil
	}

	tag, err := r.db.Exec(ctx, deleteAllPostsForFellowQuery, fellowID)
	if err != nil {
		return 0, errors.Wrapf(err, "delete posts of fellow %d", fellowID)
	}
	return tag.RowsAffected(), nil
}
