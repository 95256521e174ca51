package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tutorschool/msms/internal/model"
	"github.com/tutorschool/msms/internal/repository"
)

const (
	minLessonDuration = 30
	maxLessonDuration = 120
	maxTopicLength    = 50
	maxTeacherLength  = 50
)

type RequestService struct {
	requestRepo *repository.LessonRequestRepository
	studentRepo *repository.StudentRepository
	logger      *zap.Logger
}

func NewRequestService(
	requestRepo *repository.LessonRequestRepository,
	studentRepo *repository.StudentRepository,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		requestRepo: requestRepo,
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// Create создаёт заявку студента на серию занятий
func (s *RequestService) Create(ctx context.Context, request *model.LessonRequest) (*model.LessonRequest, error) {
	// Преподаватель в заявке - пожелание, может быть не указан
	if err := validateLessonFields(request.Duration, request.LessonCount, request.IntervalWeeks, request.Topic, request.Teacher, false); err != nil {
		return nil, err
	}

	student, err := s.studentRepo.GetByID(ctx, request.StudentID)
	if err != nil {
		return nil, fmt.Errorf("get student: %w", err)
	}

	if student == nil {
		return nil, &NotFoundError{Entity: "student"}
	}

	err = s.requestRepo.Create(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("create lesson request: %w", err)
	}

	s.logger.Info("Lesson request created",
		zap.Int64("request_id", request.ID),
		zap.Int64("student_id", request.StudentID),
		zap.String("topic", request.Topic),
		zap.Int("lesson_count", request.LessonCount),
	)

	return request, nil
}

// Update обновляет ещё не выполненную заявку
func (s *RequestService) Update(ctx context.Context, request *model.LessonRequest) error {
	if err := validateLessonFields(request.Duration, request.LessonCount, request.IntervalWeeks, request.Topic, request.Teacher, false); err != nil {
		return err
	}

	existing, err := s.requestRepo.GetByID(ctx, request.ID)
	if err != nil {
		return fmt.Errorf("get lesson request: %w", err)
	}

	if existing == nil {
		return &NotFoundError{Entity: "lesson request"}
	}

	err = s.requestRepo.Update(ctx, request)
	if err != nil {
		return fmt.Errorf("update lesson request: %w", err)
	}

	s.logger.Info("Lesson request updated",
		zap.Int64("request_id", request.ID),
	)

	return nil
}

// Delete удаляет заявку
func (s *RequestService) Delete(ctx context.Context, id int64) error {
	err := s.requestRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete lesson request: %w", err)
	}

	s.logger.Info("Lesson request deleted",
		zap.Int64("request_id", id),
	)

	return nil
}

// GetByID получает заявку по ID
func (s *RequestService) GetByID(ctx context.Context, id int64) (*model.LessonRequest, error) {
	return s.requestRepo.GetByID(ctx, id)
}

// ListByStudent получает все заявки студента
func (s *RequestService) ListByStudent(ctx context.Context, studentID int64) ([]*model.LessonRequest, error) {
	return s.requestRepo.GetByStudentID(ctx, studentID)
}

// ListAll получает все невыполненные заявки
func (s *RequestService) ListAll(ctx context.Context) ([]*model.LessonRequest, error) {
	return s.requestRepo.GetAll(ctx)
}

// validateLessonFields повторяет проверки формы на случай, если
// вызывающий слой их пропустил. При teacherRequired=false пустой
// преподаватель допустим.
func validateLessonFields(duration, count, interval int, topic, teacher string, teacherRequired bool) error {
	if duration < minLessonDuration || duration > maxLessonDuration {
		return &ValidationError{
			Field:  "duration",
			Reason: fmt.Sprintf("must be between %d and %d minutes", minLessonDuration, maxLessonDuration),
		}
	}
	if count < 1 {
		return &ValidationError{Field: "lesson_count", Reason: "must be at least 1"}
	}
	if interval < 1 {
		return &ValidationError{Field: "interval_weeks", Reason: "must be at least 1"}
	}
	if strings.TrimSpace(topic) == "" {
		return &ValidationError{Field: "topic", Reason: "must not be blank"}
	}
	if len(topic) > maxTopicLength {
		return &ValidationError{Field: "topic", Reason: fmt.Sprintf("must be at most %d characters", maxTopicLength)}
	}
	if teacherRequired && strings.TrimSpace(teacher) == "" {
		return &ValidationError{Field: "teacher", Reason: "must not be blank"}
	}
	if len(teacher) > maxTeacherLength {
		return &ValidationError{Field: "teacher", Reason: fmt.Sprintf("must be at most %d characters", maxTeacherLength)}
	}
	return nil
}
