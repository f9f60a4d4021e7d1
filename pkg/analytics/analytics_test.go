package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/dashstate/pkg/analytics"
	"github.com/aretw0/dashstate/pkg/remote"
)

var (
	users = []remote.User{
		{ID: 1, Username: "Bret"},
		{ID: 2, Username: "Antonette"},
		{ID: 3, Username: "Samantha"},
	}
	posts = []remote.Post{
		{UserID: 1, ID: 1}, {UserID: 1, ID: 2},
		{UserID: 2, ID: 3}, {UserID: 2, ID: 4},
		{UserID: 3, ID: 5},
		{UserID: 9, ID: 6},
	}
	todos = []remote.Todo{
		{UserID: 1, ID: 1, Completed: true},
		{UserID: 2, ID: 2, Completed: true},
		{UserID: 2, ID: 3, Completed: true},
		{UserID: 3, ID: 4, Completed: false},
	}
)

func TestCompute(t *testing.T) {
	s := analytics.Compute(users, posts, todos)

	assert.Equal(t, 3, s.TotalUsers)
	assert.Equal(t, []analytics.UserStats{
		{ID: 1, Username: "Bret", Posts: 2, CompletedTodos: 1},
		{ID: 2, Username: "Antonette", Posts: 2, CompletedTodos: 2},
		{ID: 3, Username: "Samantha", Posts: 1, CompletedTodos: 0},
	}, s.Users)

	assert.Equal(t, "Bret", s.MostPosts.Username, "first user wins a tie")
	assert.Equal(t, "Samantha", s.FewestPosts.Username)
	assert.Equal(t, "Antonette", s.MostCompleted.Username)
	assert.Equal(t, "Samantha", s.FewestCompleted.Username)
}

func TestCompute_NoUsers(t *testing.T) {
	s := analytics.Compute(nil, posts, todos)

	assert.Zero(t, s.TotalUsers)
	assert.NotNil(t, s.Users)
	assert.Nil(t, s.MostPosts)
	assert.Nil(t, s.FewestCompleted)
}

type fakeSource struct {
	err error
}

func (f fakeSource) FetchUsers(ctx context.Context) ([]remote.User, error) { return users, nil }
func (f fakeSource) FetchPosts(ctx context.Context) ([]remote.Post, error) { return posts, nil }
func (f fakeSource) FetchTodos(ctx context.Context) ([]remote.Todo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return todos, nil
}

func TestLoad(t *testing.T) {
	s, err := analytics.Load(context.Background(), fakeSource{})
	require.NoError(t, err)
	assert.Equal(t, analytics.Compute(users, posts, todos), s)
}

func TestLoad_Error(t *testing.T) {
	boom := errors.New("connection reset")

	_, err := analytics.Load(context.Background(), fakeSource{err: boom})
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "failed to load todos")
}
