package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tutorschool/msms/internal/model"
	"github.com/tutorschool/msms/internal/repository"
)

const maxTermNameLength = 50

type TermService struct {
	termRepo *repository.TermRepository
	logger   *zap.Logger
}

func NewTermService(termRepo *repository.TermRepository, logger *zap.Logger) *TermService {
	return &TermService{
		termRepo: termRepo,
		logger:   logger,
	}
}

// Create создаёт новый семестр, проверив порядок дат
// и отсутствие пересечений с существующими семестрами
func (s *TermService) Create(ctx context.Context, name string, start, end time.Time) (*model.Term, error) {
	if err := validateTermName(name); err != nil {
		return nil, err
	}

	if !end.After(start) {
		return nil, ErrDateOrder
	}

	terms, err := s.termRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all terms: %w", err)
	}

	if overlapping := findOverlap(terms, start, end, 0); overlapping != nil {
		return nil, &OverlapError{With: overlapping.Name}
	}

	term := &model.Term{
		Name:      name,
		StartDate: start.UTC(),
		EndDate:   end.UTC(),
	}

	err = s.termRepo.Create(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("create term: %w", err)
	}

	s.logger.Info("Term created",
		zap.Int64("term_id", term.ID),
		zap.String("name", term.Name),
		zap.Time("start_date", term.StartDate),
		zap.Time("end_date", term.EndDate),
	)

	return term, nil
}

// Update обновляет семестр, при проверке пересечений сам семестр исключается
func (s *TermService) Update(ctx context.Context, id int64, name string, start, end time.Time) (*model.Term, error) {
	if err := validateTermName(name); err != nil {
		return nil, err
	}

	if !end.After(start) {
		return nil, ErrDateOrder
	}

	term, err := s.termRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get term: %w", err)
	}

	if term == nil {
		return nil, &NotFoundError{Entity: "term"}
	}

	terms, err := s.termRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all terms: %w", err)
	}

	if overlapping := findOverlap(terms, start, end, id); overlapping != nil {
		return nil, &OverlapError{With: overlapping.Name}
	}

	term.Name = name
	term.StartDate = start.UTC()
	term.EndDate = end.UTC()

	err = s.termRepo.Update(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("update term: %w", err)
	}

	s.logger.Info("Term updated",
		zap.Int64("term_id", term.ID),
		zap.String("name", term.Name),
	)

	return term, nil
}

// Delete удаляет семестр. Занятия не трогаются: семестр -
// ограничение планирования, а не владелец занятий.
func (s *TermService) Delete(ctx context.Context, id int64) error {
	err := s.termRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete term: %w", err)
	}

	s.logger.Info("Term deleted",
		zap.Int64("term_id", id),
	)

	return nil
}

// List возвращает все семестры по возрастанию даты начала
func (s *TermService) List(ctx context.Context) ([]*model.Term, error) {
	return s.termRepo.GetAll(ctx)
}

// GetByName получает семестр по имени
func (s *TermService) GetByName(ctx context.Context, name string) (*model.Term, error) {
	return s.termRepo.GetByName(ctx, name)
}

// NextOrCurrent возвращает текущий семестр, а если сейчас каникулы -
// ближайший будущий. Если семестров нет или все прошли, возвращает nil.
func (s *TermService) NextOrCurrent(ctx context.Context, now time.Time) (*model.Term, error) {
	terms, err := s.termRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all terms: %w", err)
	}

	return nextOrCurrent(now, terms), nil
}

// FallsInAny проверяет попадает ли дата хоть в один семестр
func (s *TermService) FallsInAny(ctx context.Context, date time.Time) (bool, error) {
	terms, err := s.termRepo.GetAll(ctx)
	if err != nil {
		return false, fmt.Errorf("get all terms: %w", err)
	}

	for _, term := range terms {
		if term.Contains(date) {
			return true, nil
		}
	}

	return false, nil
}

// AllOutdated проверяет закончились ли все семестры.
// Наличие семестров вызывающий проверяет отдельно.
func (s *TermService) AllOutdated(ctx context.Context, now time.Time) (bool, error) {
	terms, err := s.termRepo.GetAll(ctx)
	if err != nil {
		return false, fmt.Errorf("get all terms: %w", err)
	}

	return allOutdated(now, terms), nil
}

func validateTermName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be blank"}
	}
	if len(name) > maxTermNameLength {
		return &ValidationError{Field: "name", Reason: fmt.Sprintf("must be at most %d characters", maxTermNameLength)}
	}
	return nil
}

// findOverlap возвращает первый семестр, пересекающийся с [start, end],
// либо nil. Семестр с excludeID пропускается, чтобы при обновлении
// семестр не пересекался сам с собой.
func findOverlap(terms []*model.Term, start, end time.Time, excludeID int64) *model.Term {
	probe := &model.Term{StartDate: start, EndDate: end}
	for _, term := range terms {
		if excludeID != 0 && term.ID == excludeID {
			continue
		}
		if term.Overlaps(probe) {
			return term
		}
	}
	return nil
}

func nextOrCurrent(now time.Time, terms []*model.Term) *model.Term {
	var next *model.Term
	for _, term := range terms {
		if term.Contains(now) {
			return term
		}
		if term.StartDate.After(now) {
			if next == nil || term.StartDate.Before(next.StartDate) {
				next = term
			}
		}
	}
	return next
}

func allOutdated(now time.Time, terms []*model.Term) bool {
	for _, term := range terms {
		if !term.Outdated(now) {
			return false
		}
	}
	return true
}
