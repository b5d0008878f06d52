package repositories

import (
	"sort"
	"time"

	"upitrack/internal/models"
	"upitrack/internal/stats"
)

// memoryRepository keeps everything in maps with monotonically increasing id
// counters. It has no locking and does not survive a restart; it exists for
// development and tests only.
type memoryRepository struct {
	users        map[uint]*models.User
	qrCodes      map[uint]*models.QrCode
	transactions map[uint]*models.Transaction
	stats        map[uint]*models.Stats // keyed by stats id

	userIDCounter        uint
	qrCodeIDCounter      uint
	transactionIDCounter uint
	statsIDCounter       uint

	engine *stats.Engine
}

// NewMemoryRepository creates the in-memory backend.
func NewMemoryRepository() Repository {
	r := &memoryRepository{
		users:        make(map[uint]*models.User),
		qrCodes:      make(map[uint]*models.QrCode),
		transactions: make(map[uint]*models.Transaction),
		stats:        make(map[uint]*models.Stats),
	}
	r.engine = stats.NewEngine(r)
	return r
}

func (r *memoryRepository) CreateUser(user *models.User) (*models.User, error) {
	if _, err := r.GetUserByUsername(user.Username); err == nil {
		return nil, ErrUsernameTaken
	}
	r.userIDCounter++
	stored := *user
	stored.ID = r.userIDCounter
	r.users[stored.ID] = &stored

	if _, err := r.engine.Recompute(stored.ID); err != nil {
		return nil, err
	}
	out := stored
	return &out, nil
}

func (r *memoryRepository) GetUser(id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *user
	return &out, nil
}

func (r *memoryRepository) GetUserByUsername(username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			out := *user
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryRepository) UpdateUser(id uint, update *models.UserUpdate) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if update.UpiID != nil {
		user.UpiID = *update.UpiID
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.FullName != nil {
		user.FullName = *update.FullName
	}
	out := *user
	return &out, nil
}

func (r *memoryRepository) CreateQrCode(qr *models.QrCode) (*models.QrCode, error) {
	if _, ok := r.users[qr.UserID]; !ok {
		return nil, ErrNotFound
	}
	r.qrCodeIDCounter++
	stored := *qr
	stored.ID = r.qrCodeIDCounter
	stored.CreatedAt = time.Now()
	r.qrCodes[stored.ID] = &stored

	if _, err := r.engine.Recompute(stored.UserID); err != nil {
		return nil, err
	}
	out := stored
	return &out, nil
}

func (r *memoryRepository) GetQrCode(id uint) (*models.QrCode, error) {
	qr, ok := r.qrCodes[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *qr
	return &out, nil
}

func (r *memoryRepository) GetQrCodesByUserID(userID uint) ([]models.QrCode, error) {
	result := make([]models.QrCode, 0)
	for _, qr := range r.qrCodes {
		if qr.UserID == userID {
			result = append(result, *qr)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *memoryRepository) DeleteQrCode(id uint) (bool, error) {
	qr, ok := r.qrCodes[id]
	if !ok {
		return false, nil
	}
	for txID, tx := range r.transactions {
		if tx.QrCodeID == id {
			delete(r.transactions, txID)
		}
	}
	delete(r.qrCodes, id)

	if _, err := r.engine.Recompute(qr.UserID); err != nil {
		return true, err
	}
	return true, nil
}

func (r *memoryRepository) CreateTransaction(tx *models.Transaction) (*models.Transaction, error) {
	qr, ok := r.qrCodes[tx.QrCodeID]
	if !ok {
		return nil, ErrNotFound
	}
	r.transactionIDCounter++
	stored := *tx
	stored.ID = r.transactionIDCounter
	stored.Timestamp = time.Now()
	if stored.Status == "" {
		stored.Status = models.TransactionStatusCompleted
	}
	r.transactions[stored.ID] = &stored

	if _, err := r.engine.OnTransactionCreated(qr.UserID); err != nil {
		return nil, err
	}
	out := stored
	return &out, nil
}

func (r *memoryRepository) GetTransaction(id uint) (*models.Transaction, error) {
	tx, ok := r.transactions[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *tx
	return &out, nil
}

func (r *memoryRepository) GetTransactionsByQrCodeID(qrCodeID uint) ([]models.Transaction, error) {
	result := make([]models.Transaction, 0)
	for _, tx := range r.transactions {
		if tx.QrCodeID == qrCodeID {
			result = append(result, *tx)
		}
	}
	sortTransactionsNewestFirst(result)
	return result, nil
}

func (r *memoryRepository) GetTransactionsByUserID(userID uint) ([]models.Transaction, error) {
	owned := make(map[uint]struct{})
	for _, qr := range r.qrCodes {
		if qr.UserID == userID {
			owned[qr.ID] = struct{}{}
		}
	}
	result := make([]models.Transaction, 0)
	for _, tx := range r.transactions {
		if _, ok := owned[tx.QrCodeID]; ok {
			result = append(result, *tx)
		}
	}
	sortTransactionsNewestFirst(result)
	return result, nil
}

func (r *memoryRepository) GetStats(userID uint) (*models.Stats, error) {
	for _, st := range r.stats {
		if st.UserID == userID {
			out := *st
			return &out, nil
		}
	}
	if _, ok := r.users[userID]; !ok {
		return nil, ErrNotFound
	}
	return r.engine.Recompute(userID)
}

func (r *memoryRepository) CreateOrUpdateStats(st *models.Stats) (*models.Stats, error) {
	for id, existing := range r.stats {
		if existing.UserID == st.UserID {
			updated := *st
			updated.ID = id
			updated.LastUpdated = time.Now()
			r.stats[id] = &updated
			out := updated
			return &out, nil
		}
	}
	r.statsIDCounter++
	stored := *st
	stored.ID = r.statsIDCounter
	stored.LastUpdated = time.Now()
	r.stats[stored.ID] = &stored
	out := stored
	return &out, nil
}

func sortTransactionsNewestFirst(txs []models.Transaction) {
	sort.Slice(txs, func(i, j int) bool {
		if txs[i].Timestamp.Equal(txs[j].Timestamp) {
			return txs[i].ID > txs[j].ID
		}
		return txs[i].Timestamp.After(txs[j].Timestamp)
	})
}
