package repositories

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"upitrack/internal/models"
	"upitrack/internal/repositories/cache"
	"upitrack/internal/stats"
)

// gormRepository is the durable backend. Concurrent callers are serialized
// by the database's own transaction and row-locking guarantees; there are no
// application-level locks.
type gormRepository struct {
	db     *gorm.DB
	cache  *cache.CacheService
	engine *stats.Engine
}

// NewGormRepository creates the Postgres-backed repository. The cache is
// optional; pass nil to run without redis.
func NewGormRepository(db *gorm.DB, cacheSvc *cache.CacheService) Repository {
	r := &gormRepository{
		db:    db,
		cache: cacheSvc,
	}
	r.engine = stats.NewEngine(r)
	return r
}

func (r *gormRepository) CreateUser(user *models.User) (*models.User, error) {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	if _, err := r.engine.Recompute(user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *gormRepository) GetUser(id uint) (*models.User, error) {
	if r.cache != nil {
		if user, ok := r.cache.GetUserByID(context.Background(), id); ok {
			return user, nil
		}
	}
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if r.cache != nil {
		if err := r.cache.CacheUser(context.Background(), &user); err != nil {
			log.Printf("failed to cache user %d: %v", user.ID, err)
		}
	}
	return &user, nil
}

func (r *gormRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *gormRepository) UpdateUser(id uint, update *models.UserUpdate) (*models.User, error) {
	user, err := r.GetUser(id)
	if err != nil {
		return nil, err
	}
	fields := map[string]interface{}{}
	if update.UpiID != nil {
		fields["upi_id"] = *update.UpiID
	}
	if update.Email != nil {
		fields["email"] = *update.Email
	}
	if update.FullName != nil {
		fields["full_name"] = *update.FullName
	}
	if len(fields) > 0 {
		if err := r.db.Model(&models.User{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	if r.cache != nil {
		if err := r.cache.InvalidateUser(context.Background(), user); err != nil {
			log.Printf("failed to invalidate user %d: %v", id, err)
		}
	}
	return r.GetUser(id)
}

func (r *gormRepository) CreateQrCode(qr *models.QrCode) (*models.QrCode, error) {
	if _, err := r.GetUser(qr.UserID); err != nil {
		return nil, err
	}
	qr.CreatedAt = time.Now()
	if err := r.db.Create(qr).Error; err != nil {
		return nil, err
	}
	if _, err := r.engine.Recompute(qr.UserID); err != nil {
		return nil, err
	}
	return qr, nil
}

func (r *gormRepository) GetQrCode(id uint) (*models.QrCode, error) {
	var qr models.QrCode
	if err := r.db.First(&qr, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &qr, nil
}

func (r *gormRepository) GetQrCodesByUserID(userID uint) ([]models.QrCode, error) {
	qrCodes := make([]models.QrCode, 0)
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&qrCodes).Error
	if err != nil {
		return nil, err
	}
	return qrCodes, nil
}

func (r *gormRepository) DeleteQrCode(id uint) (bool, error) {
	qr, err := r.GetQrCode(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	// Transactions first, then the QR code itself.
	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("qr_code_id = ?", id).Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.QrCode{}, id).Error
	})
	if err != nil {
		return false, err
	}

	if _, err := r.engine.Recompute(qr.UserID); err != nil {
		log.Printf("stats refresh after qr delete failed for user %d: %v", qr.UserID, err)
		r.invalidateStats(qr.UserID)
	}
	return true, nil
}

func (r *gormRepository) CreateTransaction(tx *models.Transaction) (*models.Transaction, error) {
	qr, err := r.GetQrCode(tx.QrCodeID)
	if err != nil {
		return nil, err
	}
	tx.Timestamp = time.Now()
	if tx.Status == "" {
		tx.Status = models.TransactionStatusCompleted
	}
	if err := r.db.Create(tx).Error; err != nil {
		return nil, err
	}

	// The insert stands even if the rollup write fails; GetStats recomputes
	// from primary data on the next miss.
	if _, err := r.engine.OnTransactionCreated(qr.UserID); err != nil {
		log.Printf("stats refresh after transaction %d failed for user %d: %v", tx.ID, qr.UserID, err)
		r.invalidateStats(qr.UserID)
	}
	return tx, nil
}

func (r *gormRepository) GetTransaction(id uint) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.First(&tx, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}

func (r *gormRepository) GetTransactionsByQrCodeID(qrCodeID uint) ([]models.Transaction, error) {
	txs := make([]models.Transaction, 0)
	err := r.db.Where("qr_code_id = ?", qrCodeID).
		Order("timestamp DESC, id DESC").
		Find(&txs).Error
	if err != nil {
		return nil, err
	}
	return txs, nil
}

func (r *gormRepository) GetTransactionsByUserID(userID uint) ([]models.Transaction, error) {
	txs := make([]models.Transaction, 0)
	err := r.db.
		Joins("JOIN qr_codes ON qr_codes.id = transactions.qr_code_id").
		Where("qr_codes.user_id = ?", userID).
		Order("transactions.timestamp DESC, transactions.id DESC").
		Find(&txs).Error
	if err != nil {
		return nil, err
	}
	return txs, nil
}

func (r *gormRepository) GetStats(userID uint) (*models.Stats, error) {
	if r.cache != nil {
		if cached, ok := r.cache.GetStats(context.Background(), userID); ok {
			return cached, nil
		}
	}
	var st models.Stats
	err := r.db.Where("user_id = ?", userID).First(&st).Error
	if err == nil {
		r.cacheStats(&st)
		return &st, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// No row yet: recompute lazily, but never invent stats for a user that
	// does not exist.
	if _, err := r.GetUser(userID); err != nil {
		return nil, err
	}
	recomputed, err := r.engine.Recompute(userID)
	if err != nil {
		return nil, err
	}
	return recomputed, nil
}

func (r *gormRepository) CreateOrUpdateStats(st *models.Stats) (*models.Stats, error) {
	var existing models.Stats
	err := r.db.Where("user_id = ?", st.UserID).First(&existing).Error
	switch {
	case err == nil:
		st.ID = existing.ID
	case errors.Is(err, gorm.ErrRecordNotFound):
		st.ID = 0
	default:
		return nil, err
	}
	st.LastUpdated = time.Now()
	if err := r.db.Save(st).Error; err != nil {
		return nil, err
	}
	r.cacheStats(st)
	return st, nil
}

func (r *gormRepository) cacheStats(st *models.Stats) {
	if r.cache == nil {
		return
	}
	if err := r.cache.CacheStats(context.Background(), st); err != nil {
		log.Printf("failed to cache stats for user %d: %v", st.UserID, err)
	}
}

// invalidateStats drops the cached rollup after a failed refresh so a stale
// copy is never served ahead of the lazy recompute.
func (r *gormRepository) invalidateStats(userID uint) {
	if r.cache == nil {
		return
	}
	if err := r.cache.InvalidateStats(context.Background(), userID); err != nil {
		log.Printf("failed to invalidate stats for user %d: %v", userID, err)
	}
}
