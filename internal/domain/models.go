package domain

import "time"

// MonthLayout формат месяца в API и архиве.
const MonthLayout = "2006-01"

// Commit описывает один коммит репозитория с решениями.
type Commit struct {
	SHA        string    `json:"sha"`
	AuthorName string    `json:"author_name"`
	AuthoredAt time.Time `json:"authored_at"`
}

// CommitPage результат постраничной загрузки коммитов.
type CommitPage struct {
	Commits            []Commit
	Requests           int
	RateLimitRemaining int
}

// SolveCount количество решённых задач автора.
type SolveCount struct {
	Author string `json:"author"`
	Solved int    `json:"solved"`
}

// RecentSolve последняя засчитанная посылка автора за день.
type RecentSolve struct {
	Author   string    `json:"author"`
	SolvedAt time.Time `json:"solved_at"`
}

// Board итоговая доска за месяц: рейтинг по решениям, призовой розыгрыш и последние посылки.
type Board struct {
	Repository         string        `json:"repository"`
	Month              string        `json:"month"`
	Since              time.Time     `json:"since"`
	GeneratedAt        time.Time     `json:"generated_at"`
	Seed               string        `json:"seed"`
	TotalSolves        int           `json:"total_solves"`
	RateLimitRemaining int           `json:"rate_limit_remaining"`
	Standings          []SolveCount  `json:"standings"`
	PrizeRank          []SolveCount  `json:"prize_rank"`
	Recent             []RecentSolve `json:"recent,omitempty"`
}

// LotteryDraw результат розыгрыша на произвольном взвешенном списке.
type LotteryDraw struct {
	Seed      string   `json:"seed"`
	Shuffled  []string `json:"shuffled"`
	PrizeRank []string `json:"prize_rank"`
}
