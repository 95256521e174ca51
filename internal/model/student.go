package model

import "time"

type Student struct {
	ID            int64     `json:"id"`
	StudentNumber int       `json:"student_number"` // уникальный номер студента в школе
	Username      string    `json:"username"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	CreatedAt     time.Time `json:"created_at"`
}

// FullName возвращает полное имя студента
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
