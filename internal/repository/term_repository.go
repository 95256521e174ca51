package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tutorschool/msms/internal/model"
	"github.com/tutorschool/msms/internal/repository/base"
)

type TermRepository struct {
	db base.Querier
}

func NewTermRepository(pool *pgxpool.Pool) *TermRepository {
	return &TermRepository{db: pool}
}

// Create создаёт новый семестр
func (r *TermRepository) Create(ctx context.Context, term *model.Term) error {
	query := `
		INSERT INTO terms (name, start_date, end_date)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		term.Name,
		term.StartDate,
		term.EndDate,
	).Scan(&term.ID, &term.CreatedAt)

	if err != nil {
		return fmt.Errorf("create term: %w", err)
	}

	return nil
}

// GetByID получает семестр по ID
func (r *TermRepository) GetByID(ctx context.Context, id int64) (*model.Term, error) {
	query := `
		SELECT id, name, start_date, end_date, created_at
		FROM terms
		WHERE id = $1
	`

	var term model.Term
	err := r.db.QueryRow(ctx, query, id).Scan(
		&term.ID,
		&term.Name,
		&term.StartDate,
		&term.EndDate,
		&term.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get term by id: %w", err)
	}

	return &term, nil
}

// GetByName получает семестр по имени
func (r *TermRepository) GetByName(ctx context.Context, name string) (*model.Term, error) {
	query := `
		SELECT id, name, start_date, end_date, created_at
		FROM terms
		WHERE name = $1
	`

	var term model.Term
	err := r.db.QueryRow(ctx, query, name).Scan(
		&term.ID,
		&term.Name,
		&term.StartDate,
		&term.EndDate,
		&term.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get term by name: %w", err)
	}

	return &term, nil
}

// GetAll получает все семестры по возрастанию даты начала
func (r *TermRepository) GetAll(ctx context.Context) ([]*model.Term, error) {
	query := `
		SELECT id, name, start_date, end_date, created_at
		FROM terms
		ORDER BY start_date ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all terms: %w", err)
	}
	defer rows.Close()

	var terms []*model.Term
	for rows.Next() {
		var term model.Term
		err := rows.Scan(
			&term.ID,
			&term.Name,
			&term.StartDate,
			&term.EndDate,
			&term.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan term: %w", err)
		}
		terms = append(terms, &term)
	}

	return terms, nil
}

// Update обновляет семестр
func (r *TermRepository) Update(ctx context.Context, term *model.Term) error {
	query := `
		UPDATE terms
		SET name = $1, start_date = $2, end_date = $3
		WHERE id = $4
	`

	result, err := r.db.Exec(ctx, query, term.Name, term.StartDate, term.EndDate, term.ID)
	if err != nil {
		return fmt.Errorf("update term: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("term not found")
	}

	return nil
}

// Delete удаляет семестр. Занятия при этом не трогаются:
// семестр - инструмент планирования, а не владелец занятий.
func (r *TermRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM terms WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete term: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("term not found")
	}

	return nil
}
