package repository

import (
	"github.com/keylounge/keylounge-backend/internal/common"
	"github.com/keylounge/keylounge-backend/internal/domain"
	"gorm.io/gorm"
)

// DeletionLogRepository appends and searches the soft-delete audit trail.
// Entries are append-only: there is no update or delete path.
type DeletionLogRepository interface {
	Create(entry *domain.DeletionLog) error
	FindLatestByRef(ref domain.ContentRef) (*domain.DeletionLog, error)
	Search(boardType, keyword string, page, limit int) ([]domain.DeletionLogEntry, int64, error)
	WithTx(tx *gorm.DB) DeletionLogRepository
}

type deletionLogRepository struct {
	db *gorm.DB
}

// NewDeletionLogRepository creates a new DeletionLogRepository
func NewDeletionLogRepository(db *gorm.DB) DeletionLogRepository {
	return &deletionLogRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *deletionLogRepository) WithTx(tx *gorm.DB) DeletionLogRepository {
	return &deletionLogRepository{db: tx}
}

// Create appends one log entry
func (r *deletionLogRepository) Create(entry *domain.DeletionLog) error {
	if err := r.db.Create(entry).Error; err != nil {
		return common.NewStorageError("deletion_log.create", err)
	}
	return nil
}

// FindLatestByRef returns the most recent entry for a content reference.
// A recovered-then-redeleted item has several entries; the latest one
// is the record of the current deleted state.
func (r *deletionLogRepository) FindLatestByRef(ref domain.ContentRef) (*domain.DeletionLog, error) {
	var entry domain.DeletionLog
	err := r.db.
		Where("board_type = ? AND content_kind = ? AND content_id = ?",
			string(ref.BoardType), string(ref.ContentKind), ref.ContentID).
		Order("deleted_at DESC, id DESC").
		First(&entry).Error
	if err != nil {
		return nil, translateFind(err, "deletion_log.find_latest")
	}
	return &entry, nil
}

// Search returns log entries joined with the nicknames of the deleting
// administrator and the original author. The keyword matches either
// nickname; nicknames are never stored redundantly on the log.
func (r *deletionLogRepository) Search(boardType, keyword string, page, limit int) ([]domain.DeletionLogEntry, int64, error) {
	query := r.db.Table("deletion_logs AS dl").
		Joins("LEFT JOIN members AS deleter ON deleter.id = dl.deleted_by").
		Joins("LEFT JOIN members AS author ON author.id = dl.author_id")

	if boardType != "" {
		query = query.Where("dl.board_type = ?", boardType)
	}
	if keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("deleter.nickname LIKE ? OR author.nickname LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, common.NewStorageError("deletion_log.search", err)
	}

	var entries []domain.DeletionLogEntry
	offset := (page - 1) * limit
	err := query.
		Select(`dl.id, dl.board_type, dl.content_kind, dl.content_id, dl.item_type,
			dl.author_id, author.nickname AS author_nickname,
			dl.deleted_by, deleter.nickname AS deleter_nickname, dl.deleted_at`).
		Order("dl.deleted_at DESC, dl.id DESC").
		Offset(offset).Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, 0, common.NewStorageError("deletion_log.search", err)
	}

	return entries, total, nil
}
