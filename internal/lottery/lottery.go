// Package lottery реализует детерминированный розыгрыш призовых мест
// по взвешенному списку участников.
package lottery

import (
	"fmt"

	"github.com/VertexToEdge/ana-cnu.github.io/internal/domain"
	"github.com/VertexToEdge/ana-cnu.github.io/internal/infrastructure/randomizer"
)

// DefaultSeedFormat формат seed по умолчанию. Закрывающая скобка входит в seed и меняет розыгрыш.
const DefaultSeedFormat = "ANA-%d}"

// Shuffle детерминированно переставляет weightedList, используя генератор, созданный из seed.
// На каждом шаге из пула оставшихся индексов равномерно выбирается позиция,
// индекс удаляется из пула с сохранением порядка остальных, а значение попадает в результат.
// Входной срез не изменяется.
func Shuffle(weightedList []string, seed string) []string {
	return shuffleWith(weightedList, randomizer.New(seed))
}

func shuffleWith(weightedList []string, rnd randomizer.Randomizer) []string {
	result := make([]string, 0, len(weightedList))
	pool := make([]int, len(weightedList))
	for i := range pool {
		pool[i] = i
	}
	for len(pool) > 0 {
		r := rnd.Intn(len(pool))
		label := pool[r]
		pool = append(pool[:r], pool[r+1:]...)
		result = append(result, weightedList[label])
	}
	return result
}

// PrizeRank перемешивает список и оставляет только первое вхождение каждого участника.
// Чем больше вес участника, тем выше вероятность раннего (лучшего) места.
func PrizeRank(weightedList []string, seed string) []string {
	return Unique(Shuffle(weightedList, seed))
}

// Unique оставляет первые вхождения, сохраняя порядок.
func Unique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

// WeightedList повторяет каждого автора столько раз, сколько у него решений.
// Авторы с нулевым количеством в список не попадают.
func WeightedList(counts []domain.SolveCount) []string {
	total := 0
	for _, c := range counts {
		if c.Solved > 0 {
			total += c.Solved
		}
	}
	list := make([]string, 0, total)
	for _, c := range counts {
		for i := 0; i < c.Solved; i++ {
			list = append(list, c.Author)
		}
	}
	return list
}

// Seed строит seed только из длины взвешенного списка.
// Разные распределения с одинаковой суммой дают одинаковый seed.
func Seed(format string, total int) string {
	if format == "" {
		format = DefaultSeedFormat
	}
	return fmt.Sprintf(format, total)
}

// Draw выполняет полный розыгрыш: seed из длины списка, перестановка и призовой порядок.
// Пустой seedOverride означает seed по формату.
func Draw(weightedList []string, format, seedOverride string) domain.LotteryDraw {
	seed := seedOverride
	if seed == "" {
		seed = Seed(format, len(weightedList))
	}
	shuffled := Shuffle(weightedList, seed)
	return domain.LotteryDraw{
		Seed:      seed,
		Shuffled:  shuffled,
		PrizeRank: Unique(shuffled),
	}
}
