package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tutorschool/msms/internal/model"
	"github.com/tutorschool/msms/internal/repository/base"
)

type LessonRequestRepository struct {
	db base.Querier
}

func NewLessonRequestRepository(pool *pgxpool.Pool) *LessonRequestRepository {
	return &LessonRequestRepository{db: pool}
}

// WithTx возвращает копию репозитория, работающую внутри транзакции
func (r *LessonRequestRepository) WithTx(tx pgx.Tx) *LessonRequestRepository {
	return &LessonRequestRepository{db: tx}
}

// Create создаёт новую заявку на занятия
func (r *LessonRequestRepository) Create(ctx context.Context, request *model.LessonRequest) error {
	query := `
		INSERT INTO lesson_requests (student_id, availability, lesson_count, interval_weeks, duration_minutes, topic, teacher)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		request.StudentID,
		request.Availability,
		request.LessonCount,
		request.IntervalWeeks,
		request.Duration,
		request.Topic,
		request.Teacher,
	).Scan(&request.ID, &request.CreatedAt)

	if err != nil {
		return fmt.Errorf("create lesson request: %w", err)
	}

	return nil
}

// GetByID получает заявку по ID
func (r *LessonRequestRepository) GetByID(ctx context.Context, id int64) (*model.LessonRequest, error) {
	query := `
		SELECT id, student_id, availability, lesson_count, interval_weeks, duration_minutes, topic, teacher, created_at
		FROM lesson_requests
		WHERE id = $1
	`

	var request model.LessonRequest
	err := r.db.QueryRow(ctx, query, id).Scan(
		&request.ID,
		&request.StudentID,
		&request.Availability,
		&request.LessonCount,
		&request.IntervalWeeks,
		&request.Duration,
		&request.Topic,
		&request.Teacher,
		&request.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lesson request by id: %w", err)
	}

	return &request, nil
}

// GetByStudentID получает все заявки студента
func (r *LessonRequestRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*model.LessonRequest, error) {
	query := `
		SELECT id, student_id, availability, lesson_count, interval_weeks, duration_minutes, topic, teacher, created_at
		FROM lesson_requests
		WHERE student_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("get lesson requests by student: %w", err)
	}
	defer rows.Close()

	return scanLessonRequests(rows)
}

// GetAll получает все невыполненные заявки
func (r *LessonRequestRepository) GetAll(ctx context.Context) ([]*model.LessonRequest, error) {
	query := `
		SELECT id, student_id, availability, lesson_count, interval_weeks, duration_minutes, topic, teacher, created_at
		FROM lesson_requests
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all lesson requests: %w", err)
	}
	defer rows.Close()

	return scanLessonRequests(rows)
}

// Update обновляет заявку
func (r *LessonRequestRepository) Update(ctx context.Context, request *model.LessonRequest) error {
	query := `
		UPDATE lesson_requests
		SET availability = $1, lesson_count = $2, interval_weeks = $3, duration_minutes = $4, topic = $5, teacher = $6
		WHERE id = $7
	`

	result, err := r.db.Exec(
		ctx, query,
		request.Availability,
		request.LessonCount,
		request.IntervalWeeks,
		request.Duration,
		request.Topic,
		request.Teacher,
		request.ID,
	)
	if err != nil {
		return fmt.Errorf("update lesson request: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("lesson request not found")
	}

	return nil
}

// Delete удаляет заявку
func (r *LessonRequestRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM lesson_requests WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete lesson request: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("lesson request not found")
	}

	return nil
}

func scanLessonRequests(rows pgx.Rows) ([]*model.LessonRequest, error) {
	var requests []*model.LessonRequest
	for rows.Next() {
		var request model.LessonRequest
		err := rows.Scan(
			&request.ID,
			&request.StudentID,
			&request.Availability,
			&request.LessonCount,
			&request.IntervalWeeks,
			&request.Duration,
			&request.Topic,
			&request.Teacher,
			&request.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan lesson request: %w", err)
		}
		requests = append(requests, &request)
	}

	return requests, nil
}
