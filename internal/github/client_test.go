package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/VertexToEdge/ana-cnu.github.io/internal/domain"
)

type fakeCommit struct {
	SHA    string `json:"sha"`
	Commit struct {
		Author struct {
			Name string `json:"name"`
			Date string `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

func makeCommits(prefix string, n int, at time.Time) []fakeCommit {
	out := make([]fakeCommit, n)
	for i := range out {
		out[i].SHA = fmt.Sprintf("%s-%d", prefix, i)
		out[i].Commit.Author.Name = prefix
		out[i].Commit.Author.Date = at.Format(time.RFC3339)
	}
	return out
}

func newFakeGitHub(t *testing.T, pages map[int][]fakeCommit, hits *int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/ANA-CNU/ANA-Daily-Algorithm/commits", func(w http.ResponseWriter, r *http.Request) {
		*hits++
		require.Equal(t, "2024-05-01T00:00:00Z", r.URL.Query().Get("since"))
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(60-*hits))
		body := pages[page]
		if body == nil {
			body = []fakeCommit{}
		}
		_ = json.NewEncoder(w).Encode(body)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, baseURL string, perPage, maxRequests int) *Client {
	t.Helper()
	c, err := New(Options{
		BaseURL:     baseURL,
		Owner:       "ANA-CNU",
		Repo:        "ANA-Daily-Algorithm",
		PerPage:     perPage,
		MaxRequests: maxRequests,
	})
	require.NoError(t, err)
	return c
}

func TestCommitsSincePaginatesUntilShortPage(t *testing.T) {
	at := time.Date(2024, 5, 3, 10, 0, 0, 0, time.UTC)
	hits := 0
	srv := newFakeGitHub(t, map[int][]fakeCommit{
		1: makeCommits("kim", 2, at),
		2: makeCommits("lee", 2, at),
		3: makeCommits("park", 1, at),
	}, &hits)

	client := newTestClient(t, srv.URL, 2, 20)
	since := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	page, err := client.CommitsSince(context.Background(), since)
	require.NoError(t, err)
	require.Equal(t, 3, hits)
	require.Equal(t, 3, page.Requests)
	require.Len(t, page.Commits, 5)
	require.Equal(t, 57, page.RateLimitRemaining)
	require.Equal(t, domain.Commit{SHA: "kim-0", AuthorName: "kim", AuthoredAt: at}, page.Commits[0])
	require.Equal(t, "park", page.Commits[4].AuthorName)
}

func TestCommitsSinceStopsAtRequestLimit(t *testing.T) {
	at := time.Date(2024, 5, 3, 10, 0, 0, 0, time.UTC)
	hits := 0
	srv := newFakeGitHub(t, map[int][]fakeCommit{
		1: makeCommits("a", 1, at),
		2: makeCommits("b", 1, at),
		3: makeCommits("c", 1, at),
	}, &hits)

	client := newTestClient(t, srv.URL, 1, 2)
	page, err := client.CommitsSince(context.Background(), time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, 2, hits)
	require.Len(t, page.Commits, 2)
}

func TestCommitsSinceWrapsUpstreamErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"boom"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, 100, 20)
	_, err := client.CommitsSince(context.Background(), time.Now())
	require.ErrorIs(t, err, domain.ErrFetchCommits)
}

func TestNewAppliesDefaults(t *testing.T) {
	c, err := New(Options{Owner: "o", Repo: "r"})
	require.NoError(t, err)
	require.Equal(t, defaultPerPage, c.perPage)
	require.Equal(t, defaultMaxRequests, c.maxRequests)
	require.Equal(t, "o/r", c.Repository())
}
