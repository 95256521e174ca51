package model

import "time"

// Term представляет семестр - именованный промежуток дат,
// внутри которого разрешено планировать занятия.
// Семестры не пересекаются между собой.
type Term struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"` // UTC
	EndDate   time.Time `json:"end_date"`   // UTC
	CreatedAt time.Time `json:"created_at"`
}

// Contains проверяет попадает ли дата в семестр (границы включительно)
func (t *Term) Contains(date time.Time) bool {
	return !date.Before(t.StartDate) && !date.After(t.EndDate)
}

// Outdated проверяет закончился ли семестр к моменту now
func (t *Term) Outdated(now time.Time) bool {
	return !t.EndDate.After(now)
}

// Overlaps проверяет пересекаются ли границы двух семестров.
// Проверка в обе стороны, чтобы поймать и полное вложение.
func (t *Term) Overlaps(other *Term) bool {
	return other.Contains(t.StartDate) || other.Contains(t.EndDate) ||
		t.Contains(other.StartDate) || t.Contains(other.EndDate)
}
