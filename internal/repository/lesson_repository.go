package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tutorschool/msms/internal/model"
	"github.com/tutorschool/msms/internal/repository/base"
)

type LessonRepository struct {
	db base.Querier
}

func NewLessonRepository(pool *pgxpool.Pool) *LessonRepository {
	return &LessonRepository{db: pool}
}

// WithTx возвращает копию репозитория, работающую внутри транзакции
func (r *LessonRepository) WithTx(tx pgx.Tx) *LessonRepository {
	return &LessonRepository{db: tx}
}

// Create создаёт новое занятие
func (r *LessonRepository) Create(ctx context.Context, lesson *model.Lesson) error {
	query := `
		INSERT INTO lessons (student_id, invoice_id, series_id, date, duration_minutes, topic, teacher)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		lesson.StudentID,
		lesson.InvoiceID,
		lesson.SeriesID,
		lesson.Date,
		lesson.Duration,
		lesson.Topic,
		lesson.Teacher,
	).Scan(&lesson.ID, &lesson.CreatedAt)

	if err != nil {
		return fmt.Errorf("create lesson: %w", err)
	}

	return nil
}

// GetByID получает занятие по ID
func (r *LessonRepository) GetByID(ctx context.Context, id int64) (*model.Lesson, error) {
	query := `
		SELECT id, student_id, invoice_id, series_id, date, duration_minutes, topic, teacher, created_at
		FROM lessons
		WHERE id = $1
	`

	var lesson model.Lesson
	err := r.db.QueryRow(ctx, query, id).Scan(
		&lesson.ID,
		&lesson.StudentID,
		&lesson.InvoiceID,
		&lesson.SeriesID,
		&lesson.Date,
		&lesson.Duration,
		&lesson.Topic,
		&lesson.Teacher,
		&lesson.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lesson by id: %w", err)
	}

	return &lesson, nil
}

// GetByInvoiceID получает все занятия счёта
func (r *LessonRepository) GetByInvoiceID(ctx context.Context, invoiceID int64) ([]*model.Lesson, error) {
	query := `
		SELECT id, student_id, invoice_id, series_id, date, duration_minutes, topic, teacher, created_at
		FROM lessons
		WHERE invoice_id = $1
		ORDER BY date ASC
	`

	rows, err := r.db.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get lessons by invoice: %w", err)
	}
	defer rows.Close()

	return scanLessons(rows)
}

// GetByStudentID получает расписание студента по возрастанию даты
func (r *LessonRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*model.Lesson, error) {
	query := `
		SELECT id, student_id, invoice_id, series_id, date, duration_minutes, topic, teacher, created_at
		FROM lessons
		WHERE student_id = $1
		ORDER BY date ASC
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("get lessons by student: %w", err)
	}
	defer rows.Close()

	return scanLessons(rows)
}

// Update обновляет отдельное занятие
func (r *LessonRepository) Update(ctx context.Context, lesson *model.Lesson) error {
	query := `
		UPDATE lessons
		SET date = $1, duration_minutes = $2, topic = $3, teacher = $4
		WHERE id = $5
	`

	result, err := r.db.Exec(
		ctx, query,
		lesson.Date,
		lesson.Duration,
		lesson.Topic,
		lesson.Teacher,
		lesson.ID,
	)
	if err != nil {
		return fmt.Errorf("update lesson: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("lesson not found")
	}

	return nil
}

// Delete удаляет отдельное занятие
func (r *LessonRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM lessons WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("lesson not found")
	}

	return nil
}

func scanLessons(rows pgx.Rows) ([]*model.Lesson, error) {
	var lessons []*model.Lesson
	for rows.Next() {
		var lesson model.Lesson
		err := rows.Scan(
			&lesson.ID,
			&lesson.StudentID,
			&lesson.InvoiceID,
			&lesson.SeriesID,
			&lesson.Date,
			&lesson.Duration,
			&lesson.Topic,
			&lesson.Teacher,
			&lesson.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		lessons = append(lessons, &lesson)
	}

	return lessons, nil
}
