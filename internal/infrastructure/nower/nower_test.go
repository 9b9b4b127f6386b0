package nower

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNowReturnsRecentTime(t *testing.T) {
	n := New()
	now := n.Now()
	require.WithinDuration(t, time.Now(), now, 50*time.Millisecond)
}

func TestFixedAlwaysReturnsSameInstant(t *testing.T) {
	at := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	n := Fixed(at)
	require.Equal(t, at, n.Now())
	require.Equal(t, at, n.Now())
}

func TestMonthStartUsesLocationCalendar(t *testing.T) {
	seoul := time.FixedZone("KST", 9*60*60)

	// 31 марта 20:00 UTC это уже 1 апреля в Сеуле.
	now := time.Date(2024, 3, 31, 20, 0, 0, 0, time.UTC)
	start := MonthStart(now, seoul)

	require.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, seoul), start)
	require.Equal(t, time.Date(2024, 3, 31, 15, 0, 0, 0, time.UTC), start.UTC())
	require.Equal(t, "2024-04", Month(now, seoul))
}

func TestMonthStartDefaultsToUTC(t *testing.T) {
	now := time.Date(2024, 2, 29, 23, 59, 0, 0, time.UTC)
	require.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), MonthStart(now, nil))
	require.Equal(t, "2024-02", Month(now, nil))
}
