package repository

import (
	"time"

	"github.com/keylounge/keylounge-backend/internal/common"
	"github.com/keylounge/keylounge-backend/internal/domain"
	"gorm.io/gorm"
)

// ReportRepository handles report data access. Reports are never
// deleted; status transitions are guarded conditional updates so that
// concurrent administrators cannot move a report backward or process
// it twice.
type ReportRepository interface {
	Create(report *domain.Report) error
	FindByID(id uint64) (*domain.Report, error)
	FindAll(status, targetType string, page, limit int) ([]*domain.Report, int64, error)
	// MarkReviewed moves pending -> reviewed. Returns ErrInvalidTransition
	// when the report is not currently pending.
	MarkReviewed(id uint64) error
	// ClaimActioned moves a not-yet-actioned report to actioned and stamps
	// the processing admin. Returns ErrInvalidTransition when the report
	// was already actioned (the loser of a processing race).
	ClaimActioned(id uint64, adminID uint64, at time.Time) error
	WithTx(tx *gorm.DB) ReportRepository
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *reportRepository) WithTx(tx *gorm.DB) ReportRepository {
	return &reportRepository{db: tx}
}

func (r *reportRepository) Create(report *domain.Report) error {
	if err := r.db.Create(report).Error; err != nil {
		return common.NewStorageError("report.create", err)
	}
	return nil
}

func (r *reportRepository) FindByID(id uint64) (*domain.Report, error) {
	var report domain.Report
	if err := r.db.Where("id = ?", id).First(&report).Error; err != nil {
		return nil, translateFind(err, "report.find_by_id")
	}
	return &report, nil
}

func (r *reportRepository) FindAll(status, targetType string, page, limit int) ([]*domain.Report, int64, error) {
	query := r.db.Model(&domain.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if targetType != "" {
		query = query.Where("target_type = ?", targetType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, common.NewStorageError("report.find_all", err)
	}

	var reports []*domain.Report
	offset := (page - 1) * limit
	if err := query.Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&reports).Error; err != nil {
		return nil, 0, common.NewStorageError("report.find_all", err)
	}

	return reports, total, nil
}

func (r *reportRepository) MarkReviewed(id uint64) error {
	res := r.db.Model(&domain.Report{}).
		Where("id = ? AND status = ?", id, domain.ReportStatusPending).
		Update("status", domain.ReportStatusReviewed)
	if res.Error != nil {
		return common.NewStorageError("report.mark_reviewed", res.Error)
	}
	if res.RowsAffected == 0 {
		// Either missing or not pending; distinguish for the caller
		if _, err := r.FindByID(id); err != nil {
			return err
		}
		return common.ErrInvalidTransition
	}
	return nil
}

func (r *reportRepository) ClaimActioned(id uint64, adminID uint64, at time.Time) error {
	res := r.db.Model(&domain.Report{}).
		Where("id = ? AND status <> ?", id, domain.ReportStatusActioned).
		Updates(map[string]interface{}{
			"status":       domain.ReportStatusActioned,
			"processed_at": at,
			"processed_by": adminID,
		})
	if res.Error != nil {
		return common.NewStorageError("report.claim_actioned", res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindByID(id); err != nil {
			return err
		}
		return common.ErrInvalidTransition
	}
	return nil
}
