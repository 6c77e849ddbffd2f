package repository

import (
	"time"

	"github.com/keylounge/keylounge-backend/internal/common"
	"github.com/keylounge/keylounge-backend/internal/domain"
	"gorm.io/gorm"
)

// PenaltyRepository handles penalty data access
type PenaltyRepository interface {
	Create(penalty *domain.Penalty) error
	FindByID(id uint64) (*domain.Penalty, error)
	FindByUserID(userID uint64, page, limit int) ([]*domain.Penalty, int64, error)
	FindAll(page, limit int) ([]*domain.Penalty, int64, error)
	UpdateStatus(id uint64, status string) error
	// CountEffective counts penalties sanctioning the user at the given
	// instant: stored status active AND window includes now. The stored
	// status of an expired penalty is deliberately left untouched.
	CountEffective(userID uint64, now time.Time) (int64, error)
	WithTx(tx *gorm.DB) PenaltyRepository
}

type penaltyRepository struct {
	db *gorm.DB
}

// NewPenaltyRepository creates a new PenaltyRepository
func NewPenaltyRepository(db *gorm.DB) PenaltyRepository {
	return &penaltyRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *penaltyRepository) WithTx(tx *gorm.DB) PenaltyRepository {
	return &penaltyRepository{db: tx}
}

func (r *penaltyRepository) Create(penalty *domain.Penalty) error {
	if err := r.db.Create(penalty).Error; err != nil {
		return common.NewStorageError("penalty.create", err)
	}
	return nil
}

func (r *penaltyRepository) FindByID(id uint64) (*domain.Penalty, error) {
	var penalty domain.Penalty
	if err := r.db.Where("id = ?", id).First(&penalty).Error; err != nil {
		return nil, translateFind(err, "penalty.find_by_id")
	}
	return &penalty, nil
}

func (r *penaltyRepository) FindByUserID(userID uint64, page, limit int) ([]*domain.Penalty, int64, error) {
	return r.list(r.db.Model(&domain.Penalty{}).Where("user_id = ?", userID), page, limit)
}

func (r *penaltyRepository) FindAll(page, limit int) ([]*domain.Penalty, int64, error) {
	return r.list(r.db.Model(&domain.Penalty{}), page, limit)
}

func (r *penaltyRepository) list(query *gorm.DB, page, limit int) ([]*domain.Penalty, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, common.NewStorageError("penalty.list", err)
	}

	var penalties []*domain.Penalty
	offset := (page - 1) * limit
	if err := query.Order("start_date DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&penalties).Error; err != nil {
		return nil, 0, common.NewStorageError("penalty.list", err)
	}
	return penalties, total, nil
}

func (r *penaltyRepository) UpdateStatus(id uint64, status string) error {
	res := r.db.Model(&domain.Penalty{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return common.NewStorageError("penalty.update_status", res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *penaltyRepository) CountEffective(userID uint64, now time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Penalty{}).
		Where("user_id = ? AND status = ?", userID, domain.PenaltyStatusActive).
		Where("end_date IS NULL OR end_date >= ?", now).
		Count(&count).Error
	if err != nil {
		return 0, common.NewStorageError("penalty.count_effective", err)
	}
	return count, nil
}
