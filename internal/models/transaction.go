package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatusCompleted is the default status for recorded payments.
const TransactionStatusCompleted = "completed"

// Transaction is an incoming payment recorded against a QR code. Rows are
// immutable once created; there are no update or delete operations.
type Transaction struct {
	ID         uint            `gorm:"primarykey" json:"id"`
	QrCodeID   uint            `gorm:"not null;index" json:"qrCodeId"`
	Amount     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	PayerName  string          `json:"payerName,omitempty"`
	PayerUpiID string          `json:"payerUpiId,omitempty"`
	Timestamp  time.Time       `gorm:"not null;index" json:"timestamp"`
	Status     string          `gorm:"not null;default:'completed'" json:"status"`
	Reference  string          `gorm:"uniqueIndex" json:"reference"`
	Metadata   JSON            `gorm:"type:jsonb" json:"metadata"`
}
