package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/tutorschool/msms/internal/model"
	"github.com/tutorschool/msms/internal/repository"
	"github.com/tutorschool/msms/internal/repository/base"
)

// StudentBalance задолженность одного студента
type StudentBalance struct {
	Student *model.Student `json:"student"`
	Owed    int            `json:"owed"`
}

type LedgerService struct {
	pool         *pgxpool.Pool
	studentRepo  *repository.StudentRepository
	invoiceRepo  *repository.InvoiceRepository
	lessonRepo   *repository.LessonRepository
	transferRepo *repository.TransferRepository
	logger       *zap.Logger
}

func NewLedgerService(
	pool *pgxpool.Pool,
	studentRepo *repository.StudentRepository,
	invoiceRepo *repository.InvoiceRepository,
	lessonRepo *repository.LessonRepository,
	transferRepo *repository.TransferRepository,
	logger *zap.Logger,
) *LedgerService {
	return &LedgerService{
		pool:         pool,
		studentRepo:  studentRepo,
		invoiceRepo:  invoiceRepo,
		lessonRepo:   lessonRepo,
		transferRepo: transferRepo,
		logger:       logger,
	}
}

// RecordTransfer регистрирует подтверждённый перевод по счёту студента.
// Переводы накапливаются: частичные оплаты остаются отдельными записями.
func (s *LedgerService) RecordTransfer(ctx context.Context, studentID int64, invoiceNumber, amount int, verifierID int64, dateReceived time.Time) (*model.Transfer, error) {
	if err := validateTransfer(time.Now().UTC(), dateReceived, amount); err != nil {
		return nil, err
	}

	invoice, err := s.invoiceRepo.GetByStudentAndNumber(ctx, studentID, invoiceNumber)
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}

	if invoice == nil {
		return nil, &NotFoundError{Entity: "invoice"}
	}

	// Ретраим всю транзакцию при гонке за номер перевода
	transfer, err := retryOnCollision(maxCounterRetries, func(attempt int) (*model.Transfer, error) {
		created, err := s.commitTransfer(ctx, invoice.ID, amount, verifierID, dateReceived)
		if base.IsUniqueViolation(err) {
			s.logger.Warn("Transfer id collision, retrying",
				zap.Int64("invoice_id", invoice.ID),
				zap.Int("attempt", attempt+1))
		}
		return created, err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Transfer recorded",
		zap.Int64("transfer_id", transfer.TransferID),
		zap.Int64("invoice_id", invoice.ID),
		zap.Int64("student_id", studentID),
		zap.Int("amount_received", amount),
	)

	return transfer, nil
}

func (s *LedgerService) commitTransfer(ctx context.Context, invoiceID int64, amount int, verifierID int64, dateReceived time.Time) (*model.Transfer, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	transfers := s.transferRepo.WithTx(tx)

	id, err := transfers.NextTransferID(ctx)
	if err != nil {
		return nil, fmt.Errorf("next transfer id: %w", err)
	}

	transfer := &model.Transfer{
		TransferID:     id,
		InvoiceID:      invoiceID,
		VerifierID:     verifierID,
		DateReceived:   dateReceived.UTC(),
		AmountReceived: amount,
	}

	err = transfers.Create(ctx, transfer)
	if err != nil {
		return nil, fmt.Errorf("create transfer: %w", err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return transfer, nil
}

// VoidInvoice аннулирует ошибочно выставленный счёт, занятия удаляются
// каскадом. Счёт с уже полученными переводами аннулировать нельзя;
// от гонки с параллельным переводом страхует ограничение в БД.
func (s *LedgerService) VoidInvoice(ctx context.Context, studentID int64, invoiceNumber int) error {
	invoice, err := s.invoiceRepo.GetByStudentAndNumber(ctx, studentID, invoiceNumber)
	if err != nil {
		return fmt.Errorf("get invoice: %w", err)
	}

	if invoice == nil {
		return &NotFoundError{Entity: "invoice"}
	}

	invoice.Transfers, err = s.transferRepo.GetByInvoiceID(ctx, invoice.ID)
	if err != nil {
		return fmt.Errorf("get transfers by invoice: %w", err)
	}

	if invoice.AtLeastPartiallyPaid() {
		return ErrInvoiceHasTransfers
	}

	err = s.invoiceRepo.Delete(ctx, invoice.ID)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}

	s.logger.Info("Invoice voided",
		zap.Int64("invoice_id", invoice.ID),
		zap.Int64("student_id", studentID),
		zap.Int("invoice_number", invoiceNumber),
	)

	return nil
}

// InvoiceDetails возвращает счёт с занятиями и переводами
func (s *LedgerService) InvoiceDetails(ctx context.Context, studentID int64, invoiceNumber int) (*model.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByStudentAndNumber(ctx, studentID, invoiceNumber)
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}

	if invoice == nil {
		return nil, &NotFoundError{Entity: "invoice"}
	}

	err = s.loadInvoice(ctx, invoice)
	if err != nil {
		return nil, err
	}

	return invoice, nil
}

// StudentInvoices возвращает все счета студента с занятиями и переводами
func (s *LedgerService) StudentInvoices(ctx context.Context, studentID int64) ([]*model.Invoice, error) {
	invoices, err := s.invoiceRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("get invoices by student: %w", err)
	}

	for _, invoice := range invoices {
		if err := s.loadInvoice(ctx, invoice); err != nil {
			return nil, err
		}
	}

	return invoices, nil
}

// Balance возвращает сколько студент должен по всем своим счетам.
// Неоплаченный счёт идёт полной ценой, частично оплаченный - остатком,
// оплаченный и переплаченный не дают ничего.
func (s *LedgerService) Balance(ctx context.Context, studentID int64) (int, error) {
	invoices, err := s.StudentInvoices(ctx, studentID)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, invoice := range invoices {
		total += invoice.Outstanding()
	}

	return total, nil
}

// AllBalances возвращает задолженность каждого студента, у которого она есть
func (s *LedgerService) AllBalances(ctx context.Context) ([]*StudentBalance, error) {
	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all students: %w", err)
	}

	var balances []*StudentBalance
	for _, student := range students {
		owed, err := s.Balance(ctx, student.ID)
		if err != nil {
			return nil, err
		}

		if owed > 0 {
			balances = append(balances, &StudentBalance{Student: student, Owed: owed})
		}
	}

	return balances, nil
}

// loadInvoice подтягивает занятия и переводы счёта для производных полей
func (s *LedgerService) loadInvoice(ctx context.Context, invoice *model.Invoice) error {
	lessons, err := s.lessonRepo.GetByInvoiceID(ctx, invoice.ID)
	if err != nil {
		return fmt.Errorf("get lessons by invoice: %w", err)
	}

	transfers, err := s.transferRepo.GetByInvoiceID(ctx, invoice.ID)
	if err != nil {
		return fmt.Errorf("get transfers by invoice: %w", err)
	}

	invoice.Lessons = lessons
	invoice.Transfers = transfers
	return nil
}

// validateTransfer проверяет дату и сумму перевода
func validateTransfer(now, received time.Time, amount int) error {
	if received.After(now) {
		return ErrFutureDate
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
