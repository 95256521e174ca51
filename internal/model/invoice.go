package model

import (
	"fmt"
	"time"
)

type InvoiceState string

const (
	InvoiceStateUnpaid    InvoiceState = "unpaid"    // Переводов не было
	InvoiceStateUnderpaid InvoiceState = "underpaid" // Оплачен частично
	InvoiceStatePaid      InvoiceState = "paid"      // Оплачен полностью, переплата сюда же
)

// Invoice представляет счёт за одну серию занятий.
// Счёт выставляется один на бронирование, а не на каждое занятие.
type Invoice struct {
	ID            int64     `json:"id"`
	StudentID     int64     `json:"student_id"`
	Date          time.Time `json:"date"`           // дата выставления, UTC
	InvoiceNumber int       `json:"invoice_number"` // уникален в пределах студента
	CreatedAt     time.Time `json:"created_at"`

	// Дополнительные поля для удобства (не из БД)
	Lessons   []*Lesson   `json:"lessons,omitempty"`
	Transfers []*Transfer `json:"transfers,omitempty"`
}

// ReferenceNumber возвращает уникальный номер счёта вида "<студент>-<номер>"
func (i *Invoice) ReferenceNumber() string {
	return fmt.Sprintf("%d-%d", i.StudentID, i.InvoiceNumber)
}

// Price возвращает сумму стоимости всех занятий счёта
func (i *Invoice) Price() int {
	total := 0
	for _, lesson := range i.Lessons {
		total += lesson.Price()
	}
	return total
}

// AmountPaid возвращает сумму всех полученных переводов по счёту
func (i *Invoice) AmountPaid() int {
	total := 0
	for _, transfer := range i.Transfers {
		total += transfer.AmountReceived
	}
	return total
}

// AtLeastPartiallyPaid проверяет был ли по счёту хоть один перевод
func (i *Invoice) AtLeastPartiallyPaid() bool {
	return len(i.Transfers) > 0
}

// State возвращает состояние оплаты счёта
func (i *Invoice) State() InvoiceState {
	if len(i.Transfers) == 0 {
		return InvoiceStateUnpaid
	}
	if i.AmountPaid() < i.Price() {
		return InvoiceStateUnderpaid
	}
	return InvoiceStatePaid
}

// Outstanding возвращает сколько осталось должен студент по счёту.
// Переплата не создаёт кредита, меньше нуля не бывает.
func (i *Invoice) Outstanding() int {
	owed := i.Price() - i.AmountPaid()
	if owed < 0 {
		return 0
	}
	return owed
}
