package service

import (
	"errors"
	"fmt"
	"time"
)

// Ошибки-отказы, возвращаемые сервисами вызывающему слою.
// Любой отказ терминален для своей операции и не меняет состояние БД.

var (
	// ErrNoTerms семестров ещё не заведено, бронировать некуда
	ErrNoTerms = errors.New("no terms exist")

	// ErrAllTermsOutdated все семестры уже закончились
	ErrAllTermsOutdated = errors.New("all terms are outdated")

	// ErrDateOrder дата конца не позже даты начала
	ErrDateOrder = errors.New("end date must be after start date")

	// ErrFutureDate дата получения перевода в будущем
	ErrFutureDate = errors.New("date received cannot be in the future")

	// ErrInvalidAmount сумма перевода отсутствует или не положительна
	ErrInvalidAmount = errors.New("amount received must be positive")

	// ErrInvoiceHasTransfers счёт с полученными переводами аннулировать нельзя
	ErrInvoiceHasTransfers = errors.New("invoice has recorded transfers")

	// ErrConcurrency не удалось получить свободный номер за отведённые попытки
	ErrConcurrency = errors.New("could not allocate a free number, concurrent writes")
)

// ValidationError ошибка валидации отдельного поля
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// OverlapError границы семестра пересекаются с существующим
type OverlapError struct {
	With string // имя семестра, с которым пересеклись
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("term overlaps with %q", e.With)
}

// UnknownTermError семестр с таким именем не найден
type UnknownTermError struct {
	Name       string
	Suggestion string // имя текущего или ближайшего семестра, если есть
}

func (e *UnknownTermError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown term %q, did you mean %q", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unknown term %q", e.Name)
}

// OutOfTermError даты бронирования выходят за границы выбранного семестра
type OutOfTermError struct {
	Term  string
	Start time.Time
	End   time.Time
}

func (e *OutOfTermError) Error() string {
	return fmt.Sprintf("dates must fall inside term %q (%s - %s)",
		e.Term, e.Start.Format("2006-01-02"), e.End.Format("2006-01-02"))
}

// CapacityError запрошенное количество занятий не умещается до конца периода
type CapacityError struct {
	Requested  int
	MaxFitting int // сколько занятий реально умещается
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%d lessons do not fit, at most %d would", e.Requested, e.MaxFitting)
}

// NotFoundError запрошенная запись не существует
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}
