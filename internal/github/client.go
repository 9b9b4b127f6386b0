// Package github загружает коммиты репозитория с решениями через GitHub REST API.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v68/github"

	"github.com/VertexToEdge/ana-cnu.github.io/internal/domain"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/metrics"
)

const (
	defaultPerPage     = 100
	defaultMaxRequests = 20
)

// Options параметры клиента.
type Options struct {
	BaseURL     string
	Token       string
	Owner       string
	Repo        string
	PerPage     int
	MaxRequests int
	HTTPClient  *http.Client
}

// Client постранично читает коммиты одного репозитория.
type Client struct {
	gh          *gh.Client
	owner       string
	repo        string
	perPage     int
	maxRequests int
}

func New(opts Options) (*Client, error) {
	client := gh.NewClient(opts.HTTPClient)
	if opts.Token != "" {
		client = client.WithAuthToken(opts.Token)
	}
	if opts.BaseURL != "" {
		base := opts.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("parse github base url: %w", err)
		}
		client.BaseURL = u
	}
	c := &Client{
		gh:          client,
		owner:       opts.Owner,
		repo:        opts.Repo,
		perPage:     opts.PerPage,
		maxRequests: opts.MaxRequests,
	}
	if c.perPage <= 0 || c.perPage > defaultPerPage {
		c.perPage = defaultPerPage
	}
	if c.maxRequests <= 0 {
		c.maxRequests = defaultMaxRequests
	}
	return c, nil
}

// Repository возвращает owner/repo.
func (c *Client) Repository() string {
	return c.owner + "/" + c.repo
}

// CommitsSince загружает все коммиты начиная с since, делая не больше maxRequests запросов.
// Загрузка прекращается, когда страница содержит меньше perPage коммитов.
func (c *Client) CommitsSince(ctx context.Context, since time.Time) (domain.CommitPage, error) {
	page := domain.CommitPage{RateLimitRemaining: -1}
	opts := &gh.CommitsListOptions{
		Since:       since.UTC(),
		ListOptions: gh.ListOptions{Page: 1, PerPage: c.perPage},
	}
	for page.Requests < c.maxRequests {
		batch, resp, err := c.gh.Repositories.ListCommits(ctx, c.owner, c.repo, opts)
		page.Requests++
		if resp != nil {
			metrics.IncGitHubRequests(resp.StatusCode)
			page.RateLimitRemaining = resp.Rate.Remaining
			metrics.SetRateLimitRemaining(resp.Rate.Remaining)
		}
		if err != nil {
			slog.ErrorContext(ctx, "failed to list commits", "repository", c.Repository(), "page", opts.Page, "error", err)
			return domain.CommitPage{}, fmt.Errorf("%w: %v", domain.ErrFetchCommits, err)
		}
		for _, rc := range batch {
			page.Commits = append(page.Commits, toDomainCommit(rc))
		}
		if len(batch) < c.perPage {
			break
		}
		opts.Page++
	}
	metrics.AddCommitsFetched(len(page.Commits))
	slog.DebugContext(ctx, "commits fetched",
		"repository", c.Repository(),
		"commits", len(page.Commits),
		"requests", page.Requests,
		"rate_limit_remaining", page.RateLimitRemaining,
	)
	return page, nil
}

func toDomainCommit(rc *gh.RepositoryCommit) domain.Commit {
	author := rc.GetCommit().GetAuthor()
	return domain.Commit{
		SHA:        rc.GetSHA(),
		AuthorName: author.GetName(),
		AuthoredAt: author.GetDate().Time,
	}
}
