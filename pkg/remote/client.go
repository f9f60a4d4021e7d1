package remote

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the JSONPlaceholder API the dashboard reads from.
const DefaultBaseURL = "https://jsonplaceholder.typicode.com"

// Client reads users, posts and todos from a JSONPlaceholder-compatible API.
type Client struct {
	fetcher
}

// Option configures a Client or a WeatherClient.
type Option func(*fetcher)

// WithBaseURL overrides the API root.
func WithBaseURL(baseURL string) Option {
	return func(f *fetcher) {
		if baseURL != "" {
			f.baseURL = baseURL
		}
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(c *http.Client) Option {
	return func(f *fetcher) {
		f.http = c
	}
}

// WithRate paces outgoing requests. rps <= 0 disables pacing.
func WithRate(rps float64, burst int) Option {
	return func(f *fetcher) {
		if rps <= 0 {
			f.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst < 1 {
			burst = 1
		}
		f.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogger sets the logger for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(f *fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewClient creates a records client.
func NewClient(opts ...Option) *Client {
	c := &Client{fetcher: newFetcher(DefaultBaseURL)}
	for _, opt := range opts {
		opt(&c.fetcher)
	}
	return c
}

// FetchUsers lists every user.
func (c *Client) FetchUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.getJSON(ctx, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FetchUser retrieves a single user.
func (c *Client) FetchUser(ctx context.Context, id int) (User, error) {
	var user User
	if err := c.getJSON(ctx, fmt.Sprintf("/users/%d", id), nil, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// FetchPostsByUser lists the posts written by a user.
func (c *Client) FetchPostsByUser(ctx context.Context, id int) ([]Post, error) {
	var posts []Post
	if err := c.getJSON(ctx, "/posts", byUser(id), &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// FetchTodosByUser lists the todos assigned to a user.
func (c *Client) FetchTodosByUser(ctx context.Context, id int) ([]Todo, error) {
	var todos []Todo
	if err := c.getJSON(ctx, "/todos", byUser(id), &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// FetchPosts lists every post.
func (c *Client) FetchPosts(ctx context.Context) ([]Post, error) {
	var posts []Post
	if err := c.getJSON(ctx, "/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// FetchTodos lists every todo.
func (c *Client) FetchTodos(ctx context.Context) ([]Todo, error) {
	var todos []Todo
	if err := c.getJSON(ctx, "/todos", nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

func byUser(id int) url.Values {
	return url.Values{"userId": []string{strconv.Itoa(id)}}
}
