// Package analytics derives per-user activity figures from remote records.
package analytics

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/aretw0/dashstate/pkg/remote"
)

// UserStats is the activity of one user.
type UserStats struct {
	ID             int    `json:"id"`
	Username       string `json:"username"`
	Posts          int    `json:"posts"`
	CompletedTodos int    `json:"completedTodos"`
}

// Summary aggregates the activity of every user. The extremes are nil when
// there are no users.
type Summary struct {
	TotalUsers      int         `json:"totalUsers"`
	Users           []UserStats `json:"users"`
	MostPosts       *UserStats  `json:"mostPosts,omitempty"`
	FewestPosts     *UserStats  `json:"fewestPosts,omitempty"`
	MostCompleted   *UserStats  `json:"mostCompleted,omitempty"`
	FewestCompleted *UserStats  `json:"fewestCompleted,omitempty"`
}

// Compute counts posts and completed todos per user, in user order.
// On ties the earliest user wins.
func Compute(users []remote.User, posts []remote.Post, todos []remote.Todo) Summary {
	postsByUser := make(map[int]int)
	for _, p := range posts {
		postsByUser[p.UserID]++
	}
	completedByUser := make(map[int]int)
	for _, t := range todos {
		if t.Completed {
			completedByUser[t.UserID]++
		}
	}

	s := Summary{
		TotalUsers: len(users),
		Users:      make([]UserStats, 0, len(users)),
	}
	for _, u := range users {
		s.Users = append(s.Users, UserStats{
			ID:             u.ID,
			Username:       u.Username,
			Posts:          postsByUser[u.ID],
			CompletedTodos: completedByUser[u.ID],
		})
	}
	if len(s.Users) == 0 {
		return s
	}

	s.MostPosts = pick(s.Users, func(a, b UserStats) bool { return b.Posts > a.Posts })
	s.FewestPosts = pick(s.Users, func(a, b UserStats) bool { return b.Posts < a.Posts })
	s.MostCompleted = pick(s.Users, func(a, b UserStats) bool { return b.CompletedTodos > a.CompletedTodos })
	s.FewestCompleted = pick(s.Users, func(a, b UserStats) bool { return b.CompletedTodos < a.CompletedTodos })
	return s
}

// pick folds stats left to right, replacing the current best only when
// better reports a strict improvement.
func pick(stats []UserStats, better func(best, candidate UserStats) bool) *UserStats {
	best := stats[0]
	for _, c := range stats[1:] {
		if better(best, c) {
			best = c
		}
	}
	return &best
}

// Source is the subset of the remote client analytics reads from.
type Source interface {
	FetchUsers(ctx context.Context) ([]remote.User, error)
	FetchPosts(ctx context.Context) ([]remote.Post, error)
	FetchTodos(ctx context.Context) ([]remote.Todo, error)
}

// Load fetches users, posts and todos concurrently and computes the summary.
// The first fetch error cancels the others.
func Load(ctx context.Context, src Source) (Summary, error) {
	var (
		users []remote.User
		posts []remote.Post
		todos []remote.Todo
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = src.FetchUsers(ctx)
		return wrap("users", err)
	})
	g.Go(func() (err error) {
		posts, err = src.FetchPosts(ctx)
		return wrap("posts", err)
	})
	g.Go(func() (err error) {
		todos, err = src.FetchTodos(ctx)
		return wrap("todos", err)
	})
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	return Compute(users, posts, todos), nil
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", what, err)
	}
	return nil
}
