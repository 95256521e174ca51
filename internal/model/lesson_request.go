package model

import "time"

// LessonRequest представляет невыполненную заявку студента на серию занятий.
// После бронирования заявка удаляется - это и есть признак выполнения.
type LessonRequest struct {
	ID            int64     `json:"id"`
	StudentID     int64     `json:"student_id"`
	Availability  string    `json:"availability"` // свободный текст о доступности студента
	LessonCount   int       `json:"lesson_count"`
	IntervalWeeks int       `json:"interval_weeks"`
	Duration      int       `json:"duration"` // в минутах
	Topic         string    `json:"topic"`
	Teacher       string    `json:"teacher"` // пожелание по преподавателю, может быть пустым
	CreatedAt     time.Time `json:"created_at"`

	// Дополнительные поля для удобства (не из БД)
	Student *Student `json:"student,omitempty"`
}
