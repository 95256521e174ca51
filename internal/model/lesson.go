package model

import (
	"time"

	"github.com/google/uuid"
)

// PricePerMinute стоимость минуты занятия в условных единицах
const PricePerMinute = 1

// Lesson представляет одно конкретное занятие.
// Занятие принадлежит своему счёту и удаляется вместе с ним.
type Lesson struct {
	ID        int64     `json:"id"`
	StudentID int64     `json:"student_id"`
	InvoiceID int64     `json:"invoice_id"`
	SeriesID  uuid.UUID `json:"series_id"` // идентификатор серии занятий одного бронирования
	Date      time.Time `json:"date"`      // UTC
	Duration  int       `json:"duration"`  // в минутах, от 30 до 120
	Topic     string    `json:"topic"`
	Teacher   string    `json:"teacher"`
	CreatedAt time.Time `json:"created_at"`
}

// Price возвращает стоимость занятия
func (l *Lesson) Price() int {
	return l.Duration * PricePerMinute
}
