package repository

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/deppfellow/fellows-tracker/internal/model"
	"github.com/pashagolub/pgxmock/v4"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "post_content", "fellow_id"})
}

func TestPostRepositoryCreate(t *testing.T) {
	mock, repos := newMockRepositories(t)

	mock.ExpectQuery(`INSERT INTO posts`).
		WithArgs("hello world i am maya", int64(1)).
		WillReturnRows(postRows().AddRow(int64(10), "hello world i am maya", int64(1)))

	post, err := repos.Posts.Create(context.Background(), "hello world i am maya", 1)
	require.NoError(t, err)
	assert.Equal(t, &model.Post{ID: 10, PostContent: "hello world i am maya", FellowID: 1}, post)
}

func TestPostRepositoryCreatePropagatesStoreErrors(t *testing.T) {
	mock, repos := newMockRepositories(t)
	storeErr := errors.New("violates foreign key constraint")

	mock.ExpectQuery(`INSERT INTO posts`).
		WithArgs("orphan", int64(404)).
		WillReturnError(storeErr)

	_, err := repos.Posts.Create(context.Background(), "orphan", 404)
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestPostRepositoryList(t *testing.T) {
	mock, repos := newMockRepositories(t)

	mock.ExpectQuery(`FROM posts\s+ORDER BY id`).
		WillReturnRows(postRows().
			AddRow(int64(1), "first", int64(1)).
			AddRow(int64(2), "second", int64(2)))

	posts, err := repos.Posts.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, "second", posts[1].PostContent)
}

func TestPostRepositoryFindByID(t *testing.T) {
	mock, repos := newMockRepositories(t)

	mock.ExpectQuery(`FROM posts\s+WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(postRows().AddRow(int64(1), "first", int64(1)))
	mock.ExpectQuery(`FROM posts\s+WHERE id = \$1`).
		WithArgs(int64(2)).
		WillReturnRows(postRows())

	post, err := repos.Posts.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), post.FellowID)

	_, err = repos.Posts.FindByID(context.Background(), 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostRepositoryFindPostsByFellowID(t *testing.T) {
	t.Run("projection of owned posts", func(t *testing.T) {
		mock, repos := newMockRepositories(t)
		mock.ExpectQuery(`SELECT posts.id, posts.post_content\s+FROM posts\s+JOIN fellows`).
			WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows([]string{"id", "post_content"}).
				AddRow(int64(1), "hello world i am maya"))

		posts, err := repos.Posts.FindPostsByFellowID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, []model.PostSummary{{ID: 1, PostContent: "hello world i am maya"}}, posts)
	})

	t.Run("no posts is an empty sequence", func(t *testing.T) {
		mock, repos := newMockRepositories(t)
		mock.ExpectQuery(`JOIN fellows`).
			WithArgs(int64(6)).
			WillReturnRows(pgxmock.NewRows([]string{"id", "post_content"}))

		posts, err := repos.Posts.FindPostsByFellowID(context.Background(), 6)
		require.NoError(t, err)
		assert.NotNil(t, posts)
		assert.Empty(t, posts)
	})
}

func TestPostRepositoryDelete(t *testing.T) {
	mock, repos := newMockRepositories(t)

	mock.ExpectQuery(`DELETE FROM posts\s+WHERE id = \$1\s+RETURNING`).
		WithArgs(int64(3)).
		WillReturnRows(postRows().AddRow(int64(3), "bye", int64(2)))
	mock.ExpectQuery(`DELETE FROM posts\s+WHERE id = \$1\s+RETURNING`).
		WithArgs(int64(3)).
		WillReturnRows(postRows())

	post, err := repos.Posts.Delete(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "bye", post.PostContent)

	_, err = repos.Posts.Delete(context.Background(), 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostRepositoryDeleteAllPostsForFellow(t *testing.T) {
	mock, repos := newMockRepositories(t)

	mock.ExpectExec(`DELETE FROM posts\s+WHERE fellow_id = \$1`).
		WithArgs(int64(2)).
		WillReturnResult(pgxmock.NewResult("DELETE", 4))

	n, err := repos.Posts.DeleteAllPostsForFellow(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestPostRepositoryIDsBeyondSerialRangeSkipTheStore(t *testing.T) {
	_, repos := newMockRepositories(t)
	ctx := context.Background()
	const id = math.MaxInt32 + 1

	_, err := repos.Posts.FindByID(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repos.Posts.Delete(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	owned, err := repos.Posts.FindPostsByFellowID(ctx, id)
	require.NoError(t, err)
	assert.NotNil(t, owned)
	assert.Empty(t, owned)

	n, err := repos.Posts.DeleteAllPostsForFellow(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPostRepositoryErrorsCarryAStackTrace(t *testing.T) {
	mock, repos := newMockRepositories(t)
	storeErr := errors.New("conn closed")

	mock.ExpectQuery(`DELETE FROM posts`).
		WithArgs(int64(3)).
		WillReturnError(storeErr)

	_, err := repos.Posts.Delete(context.Background(), 3)

	var traced interface{ StackTrace() pkgerrors.StackTrace }
	require.True(t, errors.As(err, &traced))
	assert.NotEmpty(t, traced.StackTrace())
	assert.ErrorIs(t, err, storeErr)
	assert.EqualError(t, err, "delete post 3: conn closed")
}
