// Package repositories provides the data access layer. One Repository
// contract, two interchangeable backends: a durable GORM/Postgres store and
// a volatile in-memory store for development and tests. Calling code never
// branches on which one it holds.
package repositories

import (
	"errors"

	"upitrack/internal/models"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrUsernameTaken = errors.New("username already taken")
)

// Repository defines persistence for users, QR codes, transactions and the
// cached per-user stats rollup. Both implementations must produce identical
// derived stats given identical operation sequences.
type Repository interface {
	// CreateUser assigns an id, persists the user and creates the initial
	// all-zero stats row. Fails with ErrUsernameTaken on a duplicate username.
	CreateUser(user *models.User) (*models.User, error)
	GetUser(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	// UpdateUser applies a partial update; nil fields stay unchanged.
	UpdateUser(id uint, update *models.UserUpdate) (*models.User, error)

	// CreateQrCode assigns id and createdAt, persists, and refreshes the
	// owner's activeQrCodes count.
	CreateQrCode(qr *models.QrCode) (*models.QrCode, error)
	GetQrCode(id uint) (*models.QrCode, error)
	// GetQrCodesByUserID lists the user's QR codes newest-first.
	GetQrCodesByUserID(userID uint) ([]models.QrCode, error)
	// DeleteQrCode removes the QR code and all transactions referencing it,
	// then refreshes the owner's stats. Reports whether a row existed.
	DeleteQrCode(id uint) (bool, error)

	// CreateTransaction assigns id and timestamp, persists, then refreshes
	// the owning user's stats. The stats write is not transactional with the
	// insert: if it fails the transaction stands and stats are recovered by
	// the next full recompute.
	CreateTransaction(tx *models.Transaction) (*models.Transaction, error)
	GetTransaction(id uint) (*models.Transaction, error)
	GetTransactionsByQrCodeID(qrCodeID uint) ([]models.Transaction, error)
	// GetTransactionsByUserID fans out across all of the user's QR codes and
	// merges newest-first.
	GetTransactionsByUserID(userID uint) ([]models.Transaction, error)

	// GetStats returns the cached rollup, lazily running a full recompute
	// when no row exists yet. ErrNotFound only when the user itself is gone.
	GetStats(userID uint) (*models.Stats, error)
	CreateOrUpdateStats(stats *models.Stats) (*models.Stats, error)
}
