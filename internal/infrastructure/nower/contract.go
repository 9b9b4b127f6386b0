package nower

import "time"

// Nower абстракция текущего времени, чтобы в тестах можно было зафиксировать месяц.
type Nower interface {
	Now() time.Time
}
