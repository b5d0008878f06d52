package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stats is the cached per-user rollup. It is derived data: every field is
// recomputable from the user's QR codes and transactions, and a stored row
// is disposable.
type Stats struct {
	ID                uint            `gorm:"primarykey" json:"id"`
	UserID            uint            `gorm:"uniqueIndex;not null" json:"userId"`
	TotalPayments     decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"totalPayments"`
	ActiveQrCodes     int             `gorm:"not null;default:0" json:"activeQrCodes"`
	TotalTransactions int             `gorm:"not null;default:0" json:"totalTransactions"`
	UniquePayers      int             `gorm:"not null;default:0" json:"uniquePayers"`
	LastUpdated       time.Time       `gorm:"not null" json:"lastUpdated"`
}
