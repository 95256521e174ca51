package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tutorschool/msms/internal/model"
	"github.com/tutorschool/msms/internal/repository/base"
)

type InvoiceRepository struct {
	db base.Querier
}

func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{db: pool}
}

// WithTx возвращает копию репозитория, работающую внутри транзакции
func (r *InvoiceRepository) WithTx(tx pgx.Tx) *InvoiceRepository {
	return &InvoiceRepository{db: tx}
}

// Create создаёт новый счёт
func (r *InvoiceRepository) Create(ctx context.Context, invoice *model.Invoice) error {
	query := `
		INSERT INTO invoices (student_id, date, invoice_number)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		invoice.StudentID,
		invoice.Date,
		invoice.InvoiceNumber,
	).Scan(&invoice.ID, &invoice.CreatedAt)

	if err != nil {
		return fmt.Errorf("create invoice: %w", err)
	}

	return nil
}

// GetByID получает счёт по ID
func (r *InvoiceRepository) GetByID(ctx context.Context, id int64) (*model.Invoice, error) {
	query := `
		SELECT id, student_id, date, invoice_number, created_at
		FROM invoices
		WHERE id = $1
	`

	var invoice model.Invoice
	err := r.db.QueryRow(ctx, query, id).Scan(
		&invoice.ID,
		&invoice.StudentID,
		&invoice.Date,
		&invoice.InvoiceNumber,
		&invoice.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice by id: %w", err)
	}

	return &invoice, nil
}

// GetByStudentAndNumber получает счёт по студенту и номеру счёта
func (r *InvoiceRepository) GetByStudentAndNumber(ctx context.Context, studentID int64, invoiceNumber int) (*model.Invoice, error) {
	query := `
		SELECT id, student_id, date, invoice_number, created_at
		FROM invoices
		WHERE student_id = $1 AND invoice_number = $2
	`

	var invoice model.Invoice
	err := r.db.QueryRow(ctx, query, studentID, invoiceNumber).Scan(
		&invoice.ID,
		&invoice.StudentID,
		&invoice.Date,
		&invoice.InvoiceNumber,
		&invoice.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice by student and number: %w", err)
	}

	return &invoice, nil
}

// GetByStudentID получает все счета студента
func (r *InvoiceRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*model.Invoice, error) {
	query := `
		SELECT id, student_id, date, invoice_number, created_at
		FROM invoices
		WHERE student_id = $1
		ORDER BY invoice_number ASC
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("get invoices by student: %w", err)
	}
	defer rows.Close()

	return scanInvoices(rows)
}

// NextInvoiceNumber возвращает следующий свободный номер счёта студента.
// Номер уникален только в пределах студента, гонка ловится
// уникальным индексом (student_id, invoice_number) при вставке.
func (r *InvoiceRepository) NextInvoiceNumber(ctx context.Context, studentID int64) (int, error) {
	query := `SELECT COALESCE(MAX(invoice_number), 0) + 1 FROM invoices WHERE student_id = $1`

	var number int
	err := r.db.QueryRow(ctx, query, studentID).Scan(&number)
	if err != nil {
		return 0, fmt.Errorf("next invoice number: %w", err)
	}

	return number, nil
}

// Delete удаляет счёт, занятия удаляются каскадом
func (r *InvoiceRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM invoices WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("invoice not found")
	}

	return nil
}

func scanInvoices(rows pgx.Rows) ([]*model.Invoice, error) {
	var invoices []*model.Invoice
	for rows.Next() {
		var invoice model.Invoice
		err := rows.Scan(
			&invoice.ID,
			&invoice.StudentID,
			&invoice.Date,
			&invoice.InvoiceNumber,
			&invoice.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, &invoice)
	}

	return invoices, nil
}
