package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/tutorschool/msms/internal/model"
	"github.com/tutorschool/msms/internal/repository"
	"github.com/tutorschool/msms/internal/repository/base"
	"github.com/tutorschool/msms/internal/schedule"
)

// maxCounterRetries сколько раз перегенерировать номер при гонке за счётчик
const maxCounterRetries = 3

// BookParams параметры бронирования, заданные администратором
type BookParams struct {
	TermName      string
	StartDate     time.Time // полночь UTC
	EndDate       time.Time // полночь UTC
	Weekday       time.Weekday
	StartHour     int // 0-23
	StartMinute   int // 0-59
	IntervalWeeks int
	LessonCount   int
	Duration      int // в минутах
	Topic         string
	Teacher       string
}

type BookingService struct {
	pool        *pgxpool.Pool
	termRepo    *repository.TermRepository
	requestRepo *repository.LessonRequestRepository
	invoiceRepo *repository.InvoiceRepository
	lessonRepo  *repository.LessonRepository
	logger      *zap.Logger
}

func NewBookingService(
	pool *pgxpool.Pool,
	termRepo *repository.TermRepository,
	requestRepo *repository.LessonRequestRepository,
	invoiceRepo *repository.InvoiceRepository,
	lessonRepo *repository.LessonRepository,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		pool:        pool,
		termRepo:    termRepo,
		requestRepo: requestRepo,
		invoiceRepo: invoiceRepo,
		lessonRepo:  lessonRepo,
		logger:      logger,
	}
}

// Book превращает заявку в серию занятий и один счёт.
// Либо создаётся всё (счёт, занятия, удаление заявки), либо ничего.
func (s *BookingService) Book(ctx context.Context, requestID int64, params BookParams) ([]*model.Lesson, error) {
	// Форма уже проверила поля, но перепроверяем инварианты
	if err := validateLessonFields(params.Duration, params.LessonCount, params.IntervalWeeks, params.Topic, params.Teacher, true); err != nil {
		return nil, err
	}

	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("get lesson request: %w", err)
	}

	if request == nil {
		return nil, &NotFoundError{Entity: "lesson request"}
	}

	terms, err := s.termRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all terms: %w", err)
	}

	dates, err := planBooking(time.Now().UTC(), terms, params)
	if err != nil {
		return nil, err
	}

	// Ретраим всю транзакцию при гонке за номер счёта
	lessons, err := retryOnCollision(maxCounterRetries, func(attempt int) ([]*model.Lesson, error) {
		created, err := s.commit(ctx, request, params, dates)
		if base.IsUniqueViolation(err) {
			s.logger.Warn("Invoice number collision, retrying",
				zap.Int64("request_id", requestID),
				zap.Int("attempt", attempt+1))
		}
		return created, err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Lesson series booked",
		zap.Int64("request_id", requestID),
		zap.Int64("student_id", request.StudentID),
		zap.Int64("invoice_id", lessons[0].InvoiceID),
		zap.String("series_id", lessons[0].SeriesID.String()),
		zap.Int("lesson_count", len(lessons)),
	)

	return lessons, nil
}

// commit выполняет все записи бронирования одной транзакцией.
// Порядок важен: сначала счёт, потом занятия со ссылкой на него,
// заявка удаляется последней, когда все занятия уже созданы.
func (s *BookingService) commit(ctx context.Context, request *model.LessonRequest, params BookParams, dates []time.Time) ([]*model.Lesson, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	invoices := s.invoiceRepo.WithTx(tx)
	lessons := s.lessonRepo.WithTx(tx)
	requests := s.requestRepo.WithTx(tx)

	number, err := invoices.NextInvoiceNumber(ctx, request.StudentID)
	if err != nil {
		return nil, fmt.Errorf("next invoice number: %w", err)
	}

	invoice := &model.Invoice{
		StudentID:     request.StudentID,
		Date:          time.Now().UTC(),
		InvoiceNumber: number,
	}

	err = invoices.Create(ctx, invoice)
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	seriesID := uuid.New()
	created := make([]*model.Lesson, 0, len(dates))
	for _, date := range dates {
		lesson := &model.Lesson{
			StudentID: request.StudentID,
			InvoiceID: invoice.ID,
			SeriesID:  seriesID,
			Date: time.Date(date.Year(), date.Month(), date.Day(),
				params.StartHour, params.StartMinute, 0, 0, time.UTC),
			Duration: params.Duration,
			Topic:    params.Topic,
			Teacher:  params.Teacher,
		}

		err = lessons.Create(ctx, lesson)
		if err != nil {
			return nil, fmt.Errorf("create lesson: %w", err)
		}

		created = append(created, lesson)
	}

	// Удаление заявки и есть признак её выполнения
	err = requests.Delete(ctx, request.ID)
	if err != nil {
		return nil, fmt.Errorf("delete lesson request: %w", err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return created, nil
}

// planBooking проверяет бронирование по списку семестров и возвращает
// даты занятий (без времени суток) либо первый отказ. Функция чистая,
// порядок проверок фиксирован.
func planBooking(now time.Time, terms []*model.Term, params BookParams) ([]time.Time, error) {
	if len(terms) == 0 {
		return nil, ErrNoTerms
	}

	if allOutdated(now, terms) {
		return nil, ErrAllTermsOutdated
	}

	var term *model.Term
	for _, t := range terms {
		if t.Name == params.TermName {
			term = t
			break
		}
	}

	if term == nil {
		rejection := &UnknownTermError{Name: params.TermName}
		if suggestion := nextOrCurrent(now, terms); suggestion != nil {
			rejection.Suggestion = suggestion.Name
		}
		return nil, rejection
	}

	if !term.Contains(params.StartDate) || !term.Contains(params.EndDate) {
		return nil, &OutOfTermError{
			Term:  term.Name,
			Start: term.StartDate,
			End:   term.EndDate,
		}
	}

	if !params.EndDate.After(params.StartDate) {
		return nil, ErrDateOrder
	}

	if !schedule.Fits(params.StartDate, params.EndDate, params.LessonCount, params.IntervalWeeks, params.Weekday) {
		return nil, &CapacityError{
			Requested:  params.LessonCount,
			MaxFitting: schedule.MaxFitting(params.StartDate, params.EndDate, params.LessonCount, params.IntervalWeeks, params.Weekday),
		}
	}

	return schedule.Series(params.StartDate, params.Weekday, params.IntervalWeeks, params.LessonCount), nil
}

// Schedule возвращает занятия студента по возрастанию даты
func (s *BookingService) Schedule(ctx context.Context, studentID int64) ([]*model.Lesson, error) {
	return s.lessonRepo.GetByStudentID(ctx, studentID)
}

// GetLesson получает занятие по ID
func (s *BookingService) GetLesson(ctx context.Context, lessonID int64) (*model.Lesson, error) {
	return s.lessonRepo.GetByID(ctx, lessonID)
}

// UpdateLesson редактирует отдельное занятие уже созданной серии
func (s *BookingService) UpdateLesson(ctx context.Context, lessonID int64, date time.Time, duration int, topic, teacher string) (*model.Lesson, error) {
	if err := validateLessonFields(duration, 1, 1, topic, teacher, true); err != nil {
		return nil, err
	}

	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("get lesson: %w", err)
	}

	if lesson == nil {
		return nil, &NotFoundError{Entity: "lesson"}
	}

	lesson.Date = date.UTC()
	lesson.Duration = duration
	lesson.Topic = topic
	lesson.Teacher = teacher

	err = s.lessonRepo.Update(ctx, lesson)
	if err != nil {
		return nil, fmt.Errorf("update lesson: %w", err)
	}

	s.logger.Info("Lesson updated",
		zap.Int64("lesson_id", lesson.ID),
		zap.Time("date", lesson.Date),
	)

	return lesson, nil
}

// DeleteLesson удаляет отдельное занятие уже созданной серии
func (s *BookingService) DeleteLesson(ctx context.Context, lessonID int64) error {
	err := s.lessonRepo.Delete(ctx, lessonID)
	if err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}

	s.logger.Info("Lesson deleted",
		zap.Int64("lesson_id", lessonID),
	)

	return nil
}
