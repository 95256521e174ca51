package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tutorschool/msms/internal/model"
	"github.com/tutorschool/msms/internal/repository/base"
)

type TransferRepository struct {
	db base.Querier
}

func NewTransferRepository(pool *pgxpool.Pool) *TransferRepository {
	return &TransferRepository{db: pool}
}

// WithTx возвращает копию репозитория, работающую внутри транзакции
func (r *TransferRepository) WithTx(tx pgx.Tx) *TransferRepository {
	return &TransferRepository{db: tx}
}

// Create создаёт запись о переводе. Переводы никогда не
// обновляются и не удаляются, только создаются и читаются.
func (r *TransferRepository) Create(ctx context.Context, transfer *model.Transfer) error {
	query := `
		INSERT INTO transfers (transfer_id, invoice_id, verifier_id, date_received, amount_received)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		transfer.TransferID,
		transfer.InvoiceID,
		transfer.VerifierID,
		transfer.DateReceived,
		transfer.AmountReceived,
	).Scan(&transfer.ID, &transfer.CreatedAt)

	if err != nil {
		return fmt.Errorf("create transfer: %w", err)
	}

	return nil
}

// GetByInvoiceID получает все переводы по счёту
func (r *TransferRepository) GetByInvoiceID(ctx context.Context, invoiceID int64) ([]*model.Transfer, error) {
	query := `
		SELECT id, transfer_id, invoice_id, verifier_id, date_received, amount_received, created_at
		FROM transfers
		WHERE invoice_id = $1
		ORDER BY transfer_id ASC
	`

	rows, err := r.db.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get transfers by invoice: %w", err)
	}
	defer rows.Close()

	var transfers []*model.Transfer
	for rows.Next() {
		var transfer model.Transfer
		err := rows.Scan(
			&transfer.ID,
			&transfer.TransferID,
			&transfer.InvoiceID,
			&transfer.VerifierID,
			&transfer.DateReceived,
			&transfer.AmountReceived,
			&transfer.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		transfers = append(transfers, &transfer)
	}

	return transfers, nil
}

// NextTransferID возвращает следующий глобальный номер перевода.
// Гонка за номер ловится уникальным индексом при вставке.
func (r *TransferRepository) NextTransferID(ctx context.Context) (int64, error) {
	query := `SELECT COALESCE(MAX(transfer_id), 0) + 1 FROM transfers`

	var id int64
	err := r.db.QueryRow(ctx, query).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("next transfer id: %w", err)
	}

	return id, nil
}
