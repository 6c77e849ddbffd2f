package domain

import "time"

// DeletionLog is the append-only audit record of a soft delete.
// Exactly one entry is written per transition into the deleted state.
// Recovery never removes the entry; a recovered item is simply visible
// again while its history stays in this table.
type DeletionLog struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	BoardType   string    `gorm:"column:board_type;size:20;index" json:"board_type"`
	ContentKind string    `gorm:"column:content_kind;size:20" json:"content_kind"`
	ContentID   uint64    `gorm:"column:content_id;index" json:"content_id"`
	ItemType    string    `gorm:"column:item_type;size:40" json:"item_type"`
	AuthorID    uint64    `gorm:"column:author_id;index" json:"author_id"`
	DeletedBy   uint64    `gorm:"column:deleted_by;index" json:"deleted_by"`
	DeletedAt   time.Time `gorm:"column:deleted_at;autoCreateTime" json:"deleted_at"`
}

// TableName returns the table name
func (DeletionLog) TableName() string { return "deletion_logs" }

// Ref reconstructs the content reference of the deleted item
func (d *DeletionLog) Ref() ContentRef {
	return ContentRef{
		BoardType:   BoardType(d.BoardType),
		ContentKind: ContentKind(d.ContentKind),
		ContentID:   d.ContentID,
	}
}

// DeletionLogEntry is a log row joined with the display names of the
// deleting administrator and the original author. Nicknames are joined
// at query time, never stored on the log.
type DeletionLogEntry struct {
	ID              uint64    `json:"id"`
	BoardType       string    `json:"board_type"`
	ContentKind     string    `json:"content_kind"`
	ContentID       uint64    `json:"content_id"`
	ItemType        string    `json:"item_type"`
	AuthorID        uint64    `json:"author_id"`
	AuthorNickname  string    `json:"author_nickname"`
	DeletedBy       uint64    `json:"deleted_by"`
	DeleterNickname string    `json:"deleter_nickname"`
	DeletedAt       time.Time `json:"deleted_at"`
}
