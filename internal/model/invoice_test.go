package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tutorschool/msms/internal/model"
)

func TestInvoice_ReferenceNumber(t *testing.T) {
	invoice := &model.Invoice{StudentID: 7, InvoiceNumber: 3}

	assert.Equal(t, "7-3", invoice.ReferenceNumber())
}

func TestInvoice_Price(t *testing.T) {
	invoice := &model.Invoice{
		Lessons: []*model.Lesson{
			{Duration: 60},
			{Duration: 45},
		},
	}

	assert.Equal(t, 105*model.PricePerMinute, invoice.Price())
}

func TestInvoice_PaymentLifecycle(t *testing.T) {
	// Счёт на одно занятие в 60 минут, цена 60
	invoice := &model.Invoice{
		StudentID:     1,
		InvoiceNumber: 1,
		Lessons:       []*model.Lesson{{Duration: 60}},
	}

	assert.Equal(t, model.InvoiceStateUnpaid, invoice.State())
	assert.False(t, invoice.AtLeastPartiallyPaid())
	assert.Equal(t, 60, invoice.Outstanding())

	// Первый перевод на 40 - счёт оплачен частично, остаток 20
	invoice.Transfers = append(invoice.Transfers, &model.Transfer{TransferID: 1, AmountReceived: 40})

	assert.Equal(t, model.InvoiceStateUnderpaid, invoice.State())
	assert.True(t, invoice.AtLeastPartiallyPaid())
	assert.Equal(t, 40, invoice.AmountPaid())
	assert.Equal(t, 20, invoice.Outstanding())

	// Второй перевод на 20 - счёт оплачен полностью
	invoice.Transfers = append(invoice.Transfers, &model.Transfer{TransferID: 2, AmountReceived: 20})

	assert.Equal(t, model.InvoiceStatePaid, invoice.State())
	assert.Equal(t, 0, invoice.Outstanding())
}

func TestInvoice_OverpaidFoldsIntoPaid(t *testing.T) {
	// Переплата не создаёт кредита
	invoice := &model.Invoice{
		Lessons:   []*model.Lesson{{Duration: 30}},
		Transfers: []*model.Transfer{{TransferID: 1, AmountReceived: 100}},
	}

	assert.Equal(t, model.InvoiceStatePaid, invoice.State())
	assert.Equal(t, 0, invoice.Outstanding())
}

func TestLesson_Price(t *testing.T) {
	lesson := &model.Lesson{Duration: 90, Date: time.Date(2023, time.January, 4, 12, 0, 0, 0, time.UTC)}

	assert.Equal(t, 90*model.PricePerMinute, lesson.Price())
}
