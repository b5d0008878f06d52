package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// QR size presets, resolved to pixel widths by the QR service.
const (
	QRSizeSmall  = "small"
	QRSizeMedium = "medium"
	QRSizeLarge  = "large"
)

// QR border style presets.
const (
	QRBorderNone    = "none"
	QRBorderSimple  = "simple"
	QRBorderRounded = "rounded"
	QRBorderFancy   = "fancy"
)

// QrCode is a stored payment QR code bound to a UPI handle. Deleting a
// QrCode cascades to its transactions.
type QrCode struct {
	ID          uint             `gorm:"primarykey" json:"id"`
	UserID      uint             `gorm:"not null;index" json:"userId"`
	UpiID       string           `gorm:"not null" json:"upiId"`
	Name        string           `gorm:"not null" json:"name"`
	Amount      *decimal.Decimal `gorm:"type:numeric(10,2)" json:"amount"`
	Description string           `json:"description,omitempty"`
	Size        string           `gorm:"not null;default:'medium'" json:"size"`
	BorderStyle string           `gorm:"not null;default:'simple'" json:"borderStyle"`
	CreatedAt   time.Time        `gorm:"not null" json:"createdAt"`
	QrData      string           `gorm:"not null" json:"qrData"`
}
