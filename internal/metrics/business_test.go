package metrics

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestBusinessCounters(t *testing.T) {
	beforeBoards := testutil.ToFloat64(boardsBuilt)
	IncBoardsBuilt()
	require.Equal(t, beforeBoards+1, testutil.ToFloat64(boardsBuilt))

	beforeArchived := testutil.ToFloat64(boardsArchived)
	IncBoardsArchived()
	require.Equal(t, beforeArchived+1, testutil.ToFloat64(boardsArchived))

	status := http.StatusText(http.StatusOK)
	beforeRequests := testutil.ToFloat64(githubRequests.WithLabelValues(status))
	IncGitHubRequests(http.StatusOK)
	require.Equal(t, beforeRequests+1, testutil.ToFloat64(githubRequests.WithLabelValues(status)))
}

func TestAddCommitsFetchedIgnoresNonPositive(t *testing.T) {
	before := testutil.ToFloat64(commitsFetched)
	AddCommitsFetched(0)
	require.Equal(t, before, testutil.ToFloat64(commitsFetched))
	AddCommitsFetched(3)
	require.Equal(t, before+3, testutil.ToFloat64(commitsFetched))
}

func TestGauges(t *testing.T) {
	SetRateLimitRemaining(42)
	require.Equal(t, 42.0, testutil.ToFloat64(rateLimitRemaining))
	SetPrizeEntrants(7)
	require.Equal(t, 7.0, testutil.ToFloat64(prizeEntrants))
}
