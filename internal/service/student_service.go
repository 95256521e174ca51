package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tutorschool/msms/internal/model"
	"github.com/tutorschool/msms/internal/repository"
	"github.com/tutorschool/msms/internal/repository/base"
)

const maxNameLength = 50

type StudentService struct {
	studentRepo *repository.StudentRepository
	logger      *zap.Logger
}

func NewStudentService(studentRepo *repository.StudentRepository, logger *zap.Logger) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// Register регистрирует нового студента со следующим свободным номером
func (s *StudentService) Register(ctx context.Context, firstName, lastName, email string) (*model.Student, error) {
	if err := validateStudentFields(firstName, lastName, email); err != nil {
		return nil, err
	}

	existing, err := s.studentRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get student by email: %w", err)
	}

	if existing != nil {
		return nil, &ValidationError{Field: "email", Reason: "already registered"}
	}

	// Ретраим при гонке за номер студента
	student, err := retryOnCollision(maxCounterRetries, func(attempt int) (*model.Student, error) {
		number, err := s.studentRepo.NextStudentNumber(ctx)
		if err != nil {
			return nil, fmt.Errorf("next student number: %w", err)
		}

		student := &model.Student{
			StudentNumber: number,
			Username:      fmt.Sprintf("%s%s%d", firstName, lastName, number),
			FirstName:     firstName,
			LastName:      lastName,
			Email:         email,
		}

		err = s.studentRepo.Create(ctx, student)
		if err != nil {
			if base.IsUniqueViolation(err) {
				s.logger.Warn("Student number collision, retrying",
					zap.Int("student_number", number),
					zap.Int("attempt", attempt+1))
				return nil, err
			}
			return nil, fmt.Errorf("create student: %w", err)
		}

		return student, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Student registered",
		zap.Int64("student_id", student.ID),
		zap.Int("student_number", student.StudentNumber),
		zap.String("email", student.Email),
	)

	return student, nil
}

// GetByID получает студента по ID
func (s *StudentService) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// List получает всех студентов
func (s *StudentService) List(ctx context.Context) ([]*model.Student, error) {
	return s.studentRepo.GetAll(ctx)
}

func validateStudentFields(firstName, lastName, email string) error {
	if strings.TrimSpace(firstName) == "" {
		return &ValidationError{Field: "first_name", Reason: "must not be blank"}
	}
	if len(firstName) > maxNameLength {
		return &ValidationError{Field: "first_name", Reason: fmt.Sprintf("must be at most %d characters", maxNameLength)}
	}
	if strings.TrimSpace(lastName) == "" {
		return &ValidationError{Field: "last_name", Reason: "must not be blank"}
	}
	if len(lastName) > maxNameLength {
		return &ValidationError{Field: "last_name", Reason: fmt.Sprintf("must be at most %d characters", maxNameLength)}
	}
	if strings.TrimSpace(email) == "" || !strings.Contains(email, "@") {
		return &ValidationError{Field: "email", Reason: "must be a valid email"}
	}
	return nil
}
