package service

import (
	"time"

	"github.com/VertexToEdge/ana-cnu.github.io/internal/domain"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/lottery"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/solves"
)

// BuildOptions параметры сборки доски.
type BuildOptions struct {
	Repository  string
	Month       string
	Since       time.Time
	GeneratedAt time.Time
	Location    *time.Location
	Blacklist   []string
	SeedFormat  string
	// RecentLimit ограничивает список последних решений; 0 означает без ограничения.
	RecentLimit int
}

// BuildBoard собирает доску из коммитов месяца: фильтр, подсчёт, рейтинг и розыгрыш.
func BuildBoard(page domain.CommitPage, opts BuildOptions) domain.Board {
	submissions := solves.FirstDailySubmissions(
		solves.ExcludeAuthors(page.Commits, opts.Blacklist),
		opts.Location,
	)
	counts := solves.CountByAuthor(submissions)

	weighted := lottery.WeightedList(counts)
	seed := lottery.Seed(opts.SeedFormat, len(weighted))
	solved := solves.Lookup(counts)

	rank := lottery.PrizeRank(weighted, seed)
	prizes := make([]domain.SolveCount, 0, len(rank))
	for _, author := range rank {
		prizes = append(prizes, domain.SolveCount{Author: author, Solved: solved[author]})
	}

	recent := solves.Recent(submissions)
	if opts.RecentLimit > 0 && len(recent) > opts.RecentLimit {
		recent = recent[:opts.RecentLimit]
	}

	return domain.Board{
		Repository:         opts.Repository,
		Month:              opts.Month,
		Since:              opts.Since,
		GeneratedAt:        opts.GeneratedAt,
		Seed:               seed,
		TotalSolves:        len(weighted),
		RateLimitRemaining: page.RateLimitRemaining,
		Standings:          solves.Standings(counts),
		PrizeRank:          prizes,
		Recent:             recent,
	}
}
