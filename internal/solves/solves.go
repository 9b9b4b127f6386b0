// Package solves превращает коммиты репозитория в засчитанные решения:
// фильтрует авторов, оставляет одну посылку в день и считает рейтинг.
package solves

import (
	"slices"
	"time"

	"github.com/VertexToEdge/ana-cnu.github.io/internal/domain"
)

// DefaultBlacklist авторы, чьи коммиты не считаются решениями (администраторы репозитория).
var DefaultBlacklist = []string{"sion-k", "Sion Kim", "Seongbin Hong"}

// ExcludeAuthors убирает коммиты авторов из blacklist, сохраняя порядок.
func ExcludeAuthors(commits []domain.Commit, blacklist []string) []domain.Commit {
	blocked := make(map[string]struct{}, len(blacklist))
	for _, name := range blacklist {
		blocked[name] = struct{}{}
	}
	result := make([]domain.Commit, 0, len(commits))
	for _, c := range commits {
		if _, ok := blocked[c.AuthorName]; ok {
			continue
		}
		result = append(result, c)
	}
	return result
}

// FirstDailySubmissions оставляет первый встреченный коммит автора за каждый календарный день в loc.
func FirstDailySubmissions(commits []domain.Commit, loc *time.Location) []domain.Commit {
	if loc == nil {
		loc = time.UTC
	}
	type dayKey struct {
		author string
		day    string
	}
	seen := make(map[dayKey]struct{}, len(commits))
	result := make([]domain.Commit, 0, len(commits))
	for _, c := range commits {
		k := dayKey{author: c.AuthorName, day: c.AuthoredAt.In(loc).Format(time.DateOnly)}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		result = append(result, c)
	}
	return result
}

// CountByAuthor считает решения в порядке первого появления автора.
func CountByAuthor(submissions []domain.Commit) []domain.SolveCount {
	index := make(map[string]int)
	var counts []domain.SolveCount
	for _, c := range submissions {
		i, ok := index[c.AuthorName]
		if !ok {
			i = len(counts)
			index[c.AuthorName] = i
			counts = append(counts, domain.SolveCount{Author: c.AuthorName})
		}
		counts[i].Solved++
	}
	if counts == nil {
		counts = []domain.SolveCount{}
	}
	return counts
}

// Standings сортирует по убыванию количества решений.
// Сортировка стабильная: при равенстве сохраняется порядок первого появления.
func Standings(counts []domain.SolveCount) []domain.SolveCount {
	sorted := slices.Clone(counts)
	if sorted == nil {
		sorted = []domain.SolveCount{}
	}
	slices.SortStableFunc(sorted, func(a, b domain.SolveCount) int {
		return b.Solved - a.Solved
	})
	return sorted
}

// Recent переводит засчитанные посылки в список последних решений.
func Recent(submissions []domain.Commit) []domain.RecentSolve {
	result := make([]domain.RecentSolve, 0, len(submissions))
	for _, c := range submissions {
		result = append(result, domain.RecentSolve{Author: c.AuthorName, SolvedAt: c.AuthoredAt})
	}
	return result
}

// Lookup строит индекс автор -> количество решений.
func Lookup(counts []domain.SolveCount) map[string]int {
	m := make(map[string]int, len(counts))
	for _, c := range counts {
		m[c.Author] = c.Solved
	}
	return m
}
