package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tutorschool/msms/internal/model"
	"github.com/tutorschool/msms/internal/repository/base"
)

type StudentRepository struct {
	db base.Querier
}

func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: pool}
}

// Create создаёт нового студента
func (r *StudentRepository) Create(ctx context.Context, student *model.Student) error {
	query := `
		INSERT INTO students (student_number, username, first_name, last_name, email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		student.StudentNumber,
		student.Username,
		student.FirstName,
		student.LastName,
		student.Email,
	).Scan(&student.ID, &student.CreatedAt)

	if err != nil {
		return fmt.Errorf("create student: %w", err)
	}

	return nil
}

// GetByID получает студента по ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	query := `
		SELECT id, student_number, username, first_name, last_name, email, created_at
		FROM students
		WHERE id = $1
	`

	var student model.Student
	err := r.db.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.StudentNumber,
		&student.Username,
		&student.FirstName,
		&student.LastName,
		&student.Email,
		&student.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get student by id: %w", err)
	}

	return &student, nil
}

// GetByEmail получает студента по email
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	query := `
		SELECT id, student_number, username, first_name, last_name, email, created_at
		FROM students
		WHERE email = $1
	`

	var student model.Student
	err := r.db.QueryRow(ctx, query, email).Scan(
		&student.ID,
		&student.StudentNumber,
		&student.Username,
		&student.FirstName,
		&student.LastName,
		&student.Email,
		&student.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get student by email: %w", err)
	}

	return &student, nil
}

// GetAll получает всех студентов по возрастанию номера
func (r *StudentRepository) GetAll(ctx context.Context) ([]*model.Student, error) {
	query := `
		SELECT id, student_number, username, first_name, last_name, email, created_at
		FROM students
		ORDER BY student_number ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all students: %w", err)
	}
	defer rows.Close()

	var students []*model.Student
	for rows.Next() {
		var student model.Student
		err := rows.Scan(
			&student.ID,
			&student.StudentNumber,
			&student.Username,
			&student.FirstName,
			&student.LastName,
			&student.Email,
			&student.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, &student)
	}

	return students, nil
}

// NextStudentNumber возвращает следующий свободный номер студента.
// Гонка за номер ловится уникальным индексом при вставке.
func (r *StudentRepository) NextStudentNumber(ctx context.Context) (int, error) {
	query := `SELECT COALESCE(MAX(student_number), 0) + 1 FROM students`

	var number int
	err := r.db.QueryRow(ctx, query).Scan(&number)
	if err != nil {
		return 0, fmt.Errorf("next student number: %w", err)
	}

	return number, nil
}
