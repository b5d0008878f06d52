// Package stats keeps each user's cached rollup consistent with the primary
// QR-code and transaction records. ComputeRollup is the single source of
// truth; a stored Stats row is an optimization that can always be rebuilt.
package stats

import (
	"time"

	"github.com/shopspring/decimal"

	"upitrack/internal/models"
)

// Rollup holds the four derived quantities for one user.
type Rollup struct {
	TotalPayments     decimal.Decimal
	ActiveQrCodes     int
	TotalTransactions int
	UniquePayers      int
}

// ComputeRollup derives a user's rollup from primary records. Transactions
// with an empty payerUpiId do not count toward UniquePayers. Sums are exact
// decimal arithmetic, never floats.
func ComputeRollup(qrCodes []models.QrCode, transactions []models.Transaction) Rollup {
	total := decimal.Zero
	payers := make(map[string]struct{})
	for _, tx := range transactions {
		total = total.Add(tx.Amount)
		if tx.PayerUpiID != "" {
			payers[tx.PayerUpiID] = struct{}{}
		}
	}
	return Rollup{
		TotalPayments:     total,
		ActiveQrCodes:     len(qrCodes),
		TotalTransactions: len(transactions),
		UniquePayers:      len(payers),
	}
}

// Stats materializes the rollup as a Stats row for the given user, stamped
// with the current time.
func (r Rollup) Stats(userID uint) models.Stats {
	return models.Stats{
		UserID:            userID,
		TotalPayments:     r.TotalPayments,
		ActiveQrCodes:     r.ActiveQrCodes,
		TotalTransactions: r.TotalTransactions,
		UniquePayers:      r.UniquePayers,
		LastUpdated:       time.Now(),
	}
}

// Source is the slice of the repository the engine needs. Both repository
// implementations satisfy it.
type Source interface {
	GetQrCodesByUserID(userID uint) ([]models.QrCode, error)
	GetTransactionsByUserID(userID uint) ([]models.Transaction, error)
	CreateOrUpdateStats(stats *models.Stats) (*models.Stats, error)
}

// Engine recomputes and upserts per-user rollups against a Source.
type Engine struct {
	src Source
}

func NewEngine(src Source) *Engine {
	return &Engine{src: src}
}

// Recompute loads all of the user's QR codes and transactions, derives the
// rollup from scratch and upserts the Stats row. Used when no row exists yet
// and as the recovery path after a failed incremental update.
func (e *Engine) Recompute(userID uint) (*models.Stats, error) {
	qrCodes, err := e.src.GetQrCodesByUserID(userID)
	if err != nil {
		return nil, err
	}
	transactions, err := e.src.GetTransactionsByUserID(userID)
	if err != nil {
		return nil, err
	}
	rollup := ComputeRollup(qrCodes, transactions).Stats(userID)
	return e.src.CreateOrUpdateStats(&rollup)
}

// OnTransactionCreated refreshes the user's rollup after a new transaction.
// It recomputes from primary data, which is guaranteed to agree with any
// delta-based adjustment of the prior cached values.
func (e *Engine) OnTransactionCreated(userID uint) (*models.Stats, error) {
	return e.Recompute(userID)
}
