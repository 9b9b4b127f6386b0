package nower

import "time"

type nowerImpl struct{}

// New создаёт реализацию на базе системных часов.
func New() Nower {
	return &nowerImpl{}
}

// Now возвращает текущее системное время.
func (n *nowerImpl) Now() time.Time {
	return time.Now()
}

// Fixed возвращает Nower, который всегда отдаёт t.
func Fixed(t time.Time) Nower {
	return fixedNower{t: t}
}

type fixedNower struct {
	t time.Time
}

func (f fixedNower) Now() time.Time {
	return f.t
}

// MonthStart возвращает полночь первого числа месяца, в котором находится now, по часовому поясу loc.
func MonthStart(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
}

// Month форматирует месяц момента t в часовом поясе loc как YYYY-MM.
func Month(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("2006-01")
}
