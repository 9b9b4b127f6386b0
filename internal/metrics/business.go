package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	boardsBuilt = promauto.NewCounter(
		prometheusCounterOpts("boards_built_total", "Total number of boards built from repository commits"),
	)
	commitsFetched = promauto.NewCounter(
		prometheusCounterOpts("github_commits_fetched_total", "Total number of commits fetched from GitHub"),
	)
	boardsArchived = promauto.NewCounter(
		prometheusCounterOpts("boards_archived_total", "Total number of boards saved to the archive"),
	)
	githubRequests = promauto.NewCounterVec(
		prometheusCounterOpts("github_requests_total", "GitHub API requests by response status"),
		[]string{"status"},
	)
	rateLimitRemaining = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "github_rate_limit_remaining",
		Help: "Remaining GitHub API requests reported by the last response",
	})
	prizeEntrants = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "prize_entrants",
		Help: "Number of distinct authors in the latest prize draw",
	})
)

// IncBoardsBuilt увеличивает счётчик построенных досок.
func IncBoardsBuilt() {
	boardsBuilt.Inc()
}

// AddCommitsFetched увеличивает счётчик загруженных коммитов.
func AddCommitsFetched(delta int) {
	if delta <= 0 {
		return
	}
	commitsFetched.Add(float64(delta))
}

// IncBoardsArchived увеличивает счётчик сохранённых в архив досок.
func IncBoardsArchived() {
	boardsArchived.Inc()
}

// IncGitHubRequests учитывает запрос к GitHub с его статусом.
func IncGitHubRequests(status int) {
	githubRequests.WithLabelValues(http.StatusText(status)).Inc()
}

// SetRateLimitRemaining фиксирует остаток лимита GitHub.
func SetRateLimitRemaining(remaining int) {
	rateLimitRemaining.Set(float64(remaining))
}

// SetPrizeEntrants фиксирует количество участников последнего розыгрыша.
func SetPrizeEntrants(n int) {
	prizeEntrants.Set(float64(n))
}

func prometheusCounterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Name: name,
		Help: help,
	}
}
