package service

import (
	"fmt"
	"time"

	"github.com/keylounge/keylounge-backend/internal/common"
	"github.com/keylounge/keylounge-backend/internal/domain"
	"github.com/keylounge/keylounge-backend/internal/repository"
	"github.com/keylounge/keylounge-backend/pkg/logger"
	"gorm.io/gorm"
)

// ContentService owns the soft-delete lifecycle:
// visible -> hidden -> deleted -> visible (recovered).
// hidden is reversible without a log entry; deleted always writes
// exactly one DeletionLog entry and is the only state recover acts on.
type ContentService struct {
	db       *gorm.DB
	registry repository.ContentRegistry
	logRepo  repository.DeletionLogRepository
}

// NewContentService creates a new ContentService
func NewContentService(db *gorm.DB, registry repository.ContentRegistry, logRepo repository.DeletionLogRepository) *ContentService {
	return &ContentService{db: db, registry: registry, logRepo: logRepo}
}

// Hide temporarily hides content pending review. Idempotent when the
// item is already hidden; rejected when the item is deleted.
func (s *ContentService) Hide(ref domain.ContentRef, reason string) error {
	if err := ref.Validate(); err != nil {
		return common.ErrInvalidTarget
	}

	item, err := s.registry.Find(ref)
	if err != nil {
		return err
	}

	switch item.Visibility {
	case domain.VisibilityHidden:
		return nil
	case domain.VisibilityDeleted:
		return common.ErrInvalidTransition
	}

	return s.registry.MarkHidden(ref, reason)
}

// Delete soft-deletes content and appends one deletion log entry.
// Both writes commit together so the item's state and the ledger
// always agree. Deleting an already-deleted item is an error; the
// precondition read here is only a fast path, the registry re-checks
// it inside the transaction so racing admins append at most one entry.
func (s *ContentService) Delete(ref domain.ContentRef, deletedBy uint64) error {
	if err := ref.Validate(); err != nil {
		return common.ErrInvalidTarget
	}

	item, err := s.registry.Find(ref)
	if err != nil {
		return err
	}
	if item.Visibility == domain.VisibilityDeleted {
		return common.ErrAlreadyDeleted
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.registry.WithTx(tx).MarkDeleted(ref, deletedBy, now); err != nil {
			return err
		}
		entry := &domain.DeletionLog{
			BoardType:   string(ref.BoardType),
			ContentKind: string(ref.ContentKind),
			ContentID:   ref.ContentID,
			ItemType:    fmt.Sprintf("%s %s", ref.BoardType, ref.ContentKind),
			AuthorID:    item.AuthorID,
			DeletedBy:   deletedBy,
			DeletedAt:   now,
		}
		return s.logRepo.WithTx(tx).Create(entry)
	})
	if err != nil {
		return err
	}

	logger.GetLogger().Info().
		Str("ref", ref.String()).
		Uint64("deleted_by", deletedBy).
		Msg("content soft-deleted")
	return nil
}

// Recover restores a deleted item to visible. The deletion log entry is
// retained as history: recovery is recorded as the absence of current
// deleted state, not erasure of the audit trail.
func (s *ContentService) Recover(ref domain.ContentRef) error {
	if err := ref.Validate(); err != nil {
		return common.ErrInvalidTarget
	}

	item, err := s.registry.Find(ref)
	if err != nil {
		return err
	}
	if item.Visibility != domain.VisibilityDeleted {
		return common.ErrInvalidTransition
	}

	if _, err := s.logRepo.FindLatestByRef(ref); err != nil {
		// A deleted item without a ledger entry breaks the soft-delete
		// invariant; surface it rather than recover blindly.
		logger.GetLogger().Warn().
			Str("ref", ref.String()).
			Msg("deleted content has no deletion log entry")
		return common.ErrInvalidTransition
	}

	if err := s.registry.MarkVisible(ref); err != nil {
		return err
	}

	logger.GetLogger().Info().
		Str("ref", ref.String()).
		Msg("content recovered")
	return nil
}

// SearchDeletionLog searches the ledger by board type and/or keyword.
// The keyword matches the deleting administrator's or the original
// author's display name.
func (s *ContentService) SearchDeletionLog(boardType, keyword string, page, limit int) ([]domain.DeletionLogEntry, *common.Meta, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if boardType != "" && !domain.BoardType(boardType).Valid() {
		return nil, nil, common.ErrInvalidInput
	}

	entries, total, err := s.logRepo.Search(boardType, keyword, page, limit)
	if err != nil {
		return nil, nil, err
	}

	meta := &common.Meta{Page: page, Limit: limit, Total: total}
	return entries, meta, nil
}
