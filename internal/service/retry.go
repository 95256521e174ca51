package service

import (
	"github.com/tutorschool/msms/internal/repository/base"
)

// retryOnCollision перезапускает fn, пока та завершается нарушением
// уникального индекса: сгенерированный номер успел занять параллельный
// запрос, и его нужно сгенерировать заново. Любая другая ошибка
// возвращается сразу. Когда попытки исчерпаны - ErrConcurrency.
func retryOnCollision[T any](attempts int, fn func(attempt int) (T, error)) (T, error) {
	var zero T
	for attempt := 0; attempt < attempts; attempt++ {
		result, err := fn(attempt)
		if err == nil {
			return result, nil
		}
		if !base.IsUniqueViolation(err) {
			return zero, err
		}
	}
	return zero, ErrConcurrency
}
