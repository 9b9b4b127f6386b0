package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/VertexToEdge/ana-cnu.github.io/internal/domain"
)

const (
	// MaxPreviewEntries предел длины взвешенного списка для предпросмотра розыгрыша.
	MaxPreviewEntries = 10000
	maxEntryLength    = 100
	maxSeedLength     = 200
)

// ValidateMonth проверяет месяц в формате YYYY-MM и возвращает его каноническую запись.
func ValidateMonth(month string) (string, error) {
	month = strings.TrimSpace(month)
	t, err := time.Parse(domain.MonthLayout, month)
	if err != nil {
		return "", domain.ErrInvalidMonth
	}
	return t.Format(domain.MonthLayout), nil
}

// ValidateEntries проверяет взвешенный список для предпросмотра.
func ValidateEntries(entries []string) error {
	if len(entries) > MaxPreviewEntries {
		return fmt.Errorf("%w: too many entries (max %d)", domain.ErrInvalidInput, MaxPreviewEntries)
	}
	for _, e := range entries {
		if strings.TrimSpace(e) == "" {
			return fmt.Errorf("%w: entry cannot be empty", domain.ErrInvalidInput)
		}
		if len(e) > maxEntryLength {
			return fmt.Errorf("%w: entry too long (max %d characters)", domain.ErrInvalidInput, maxEntryLength)
		}
	}
	return nil
}

// ValidateSeed проверяет явно заданный seed.
func ValidateSeed(seed string) error {
	if len(seed) > maxSeedLength {
		return fmt.Errorf("%w: seed too long (max %d characters)", domain.ErrInvalidInput, maxSeedLength)
	}
	return nil
}
