package model

import "time"

// Transfer представляет подтверждённый администратором банковский перевод.
// Запись создаётся один раз и больше никогда не меняется.
type Transfer struct {
	ID             int64     `json:"id"`
	TransferID     int64     `json:"transfer_id"` // глобально уникальный монотонный номер
	InvoiceID      int64     `json:"invoice_id"`
	VerifierID     int64     `json:"verifier_id"` // администратор, подтвердивший перевод
	DateReceived   time.Time `json:"date_received"`
	AmountReceived int       `json:"amount_received"`
	CreatedAt      time.Time `json:"created_at"`
}
