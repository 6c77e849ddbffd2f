package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/keylounge/keylounge-backend/internal/common"
	"github.com/keylounge/keylounge-backend/internal/domain"
	"gorm.io/gorm"
)

// WriteTableName generates the dynamic table name for a board.
// Every board stores its posts and comments in its own write_<board>
// table; attachments live in the shared board_files table.
func WriteTableName(boardType domain.BoardType) string {
	return fmt.Sprintf("write_%s", boardType)
}

// ContentRegistry is the uniform data-access surface over the
// heterogeneous per-board content tables. Moderation logic is written
// once against ContentRef instead of once per board table.
type ContentRegistry interface {
	Find(ref domain.ContentRef) (*domain.ContentItem, error)
	MarkHidden(ref domain.ContentRef, reason string) error
	// MarkDeleted is conditional on the item not already being deleted.
	// Returns ErrAlreadyDeleted when another admin got there first.
	MarkDeleted(ref domain.ContentRef, deletedBy uint64, at time.Time) error
	MarkVisible(ref domain.ContentRef) error
	WithTx(tx *gorm.DB) ContentRegistry
}

type contentRegistry struct {
	db *gorm.DB
}

// NewContentRegistry creates a new ContentRegistry
func NewContentRegistry(db *gorm.DB) ContentRegistry {
	return &contentRegistry{db: db}
}

// WithTx returns a registry bound to the given transaction
func (r *contentRegistry) WithTx(tx *gorm.DB) ContentRegistry {
	return &contentRegistry{db: tx}
}

// Find resolves a content reference to its uniform item view
func (r *contentRegistry) Find(ref domain.ContentRef) (*domain.ContentItem, error) {
	if err := ref.Validate(); err != nil {
		return nil, common.ErrNotFound
	}

	if ref.ContentKind == domain.KindAttachment {
		var file domain.BoardFile
		err := r.db.Where("id = ? AND board_type = ?", ref.ContentID, string(ref.BoardType)).
			First(&file).Error
		if err != nil {
			return nil, translateFind(err, "content_registry.find")
		}
		return &domain.ContentItem{
			Ref:        ref,
			AuthorID:   file.AuthorID,
			Title:      file.OriginalName,
			Visibility: file.Visibility,
			HideReason: file.HideReason,
			DeletedAt:  file.DeletedAt,
			DeletedBy:  file.DeletedBy,
			CreatedAt:  file.CreatedAt,
		}, nil
	}

	var row domain.WriteRow
	err := r.db.Table(WriteTableName(ref.BoardType)).
		Where("id = ? AND is_comment = ?", ref.ContentID, ref.ContentKind == domain.KindComment).
		First(&row).Error
	if err != nil {
		return nil, translateFind(err, "content_registry.find")
	}
	return &domain.ContentItem{
		Ref:        ref,
		AuthorID:   row.AuthorID,
		Title:      row.Title,
		Visibility: row.Visibility,
		HideReason: row.HideReason,
		DeletedAt:  row.DeletedAt,
		DeletedBy:  row.DeletedBy,
		CreatedAt:  row.CreatedAt,
	}, nil
}

// MarkHidden transitions the item to hidden, storing the reason on the row
func (r *contentRegistry) MarkHidden(ref domain.ContentRef, reason string) error {
	return r.updateVisibility(ref, map[string]interface{}{
		"visibility":  domain.VisibilityHidden,
		"hide_reason": reason,
	})
}

// MarkDeleted transitions the item to deleted, recording who and when.
// The update is conditional on the item not already being deleted, so
// two administrators racing on the same item cannot both delete it:
// the loser gets ErrAlreadyDeleted and writes nothing.
func (r *contentRegistry) MarkDeleted(ref domain.ContentRef, deletedBy uint64, at time.Time) error {
	res := r.visibilityQuery(ref).
		Where("visibility <> ?", domain.VisibilityDeleted).
		Updates(map[string]interface{}{
			"visibility": domain.VisibilityDeleted,
			"deleted_at": at,
			"deleted_by": deletedBy,
		})
	if res.Error != nil {
		return common.NewStorageError("content_registry.mark_deleted", res.Error)
	}
	if res.RowsAffected == 0 {
		// Either missing or already deleted; distinguish for the caller
		if _, err := r.Find(ref); err != nil {
			return err
		}
		return common.ErrAlreadyDeleted
	}
	return nil
}

// MarkVisible transitions the item back to visible. The deletion audit
// trail lives in deletion_logs, so the row's deleted_at/deleted_by are
// cleared to reflect current state only.
func (r *contentRegistry) MarkVisible(ref domain.ContentRef) error {
	return r.updateVisibility(ref, map[string]interface{}{
		"visibility":  domain.VisibilityVisible,
		"hide_reason": "",
		"deleted_at":  nil,
		"deleted_by":  nil,
	})
}

func (r *contentRegistry) updateVisibility(ref domain.ContentRef, fields map[string]interface{}) error {
	res := r.visibilityQuery(ref).Updates(fields)
	if res.Error != nil {
		return common.NewStorageError("content_registry.update_visibility", res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// visibilityQuery builds the update query addressing the row behind ref
func (r *contentRegistry) visibilityQuery(ref domain.ContentRef) *gorm.DB {
	if ref.ContentKind == domain.KindAttachment {
		return r.db.Model(&domain.BoardFile{}).
			Where("id = ? AND board_type = ?", ref.ContentID, string(ref.BoardType))
	}
	return r.db.Table(WriteTableName(ref.BoardType)).
		Where("id = ? AND is_comment = ?", ref.ContentID, ref.ContentKind == domain.KindComment)
}

// translateFind maps gorm lookup errors onto the core taxonomy
func translateFind(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.ErrNotFound
	}
	return common.NewStorageError(op, err)
}
