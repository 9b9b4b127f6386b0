package domain

import "errors"

// Доменные ошибки. Преобразуются в HTTP-ответы в слое обработчиков.
var (
	ErrFetchCommits    = errors.New("failed to fetch commits")         // GitHub вернул ошибку или недоступен.
	ErrBoardNotFound   = errors.New("board not found")                 // В архиве нет доски за указанный месяц.
	ErrInvalidMonth    = errors.New("invalid month, expected YYYY-MM") // Месяц передан в неверном формате.
	ErrArchiveDisabled = errors.New("board archive is not configured") // Сервис запущен без базы данных.
	ErrInvalidInput    = errors.New("invalid input")                   // Ошибка валидации входных данных.
)
