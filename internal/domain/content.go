package domain

import (
	"fmt"
	"time"
)

// BoardType identifies which community board a piece of content belongs to.
// Each board stores its posts and comments in its own write_<board> table.
type BoardType string

// Board types
const (
	BoardFreeboard BoardType = "freeboard"
	BoardNews      BoardType = "news"
	BoardNotice    BoardType = "notice"
	BoardInquiry   BoardType = "inquiry"
	BoardChatboard BoardType = "chatboard"
)

// AllBoardTypes lists every board with its own write table
var AllBoardTypes = []BoardType{
	BoardFreeboard, BoardNews, BoardNotice, BoardInquiry, BoardChatboard,
}

// Valid reports whether b is a known board type
func (b BoardType) Valid() bool {
	for _, t := range AllBoardTypes {
		if b == t {
			return true
		}
	}
	return false
}

// ContentKind discriminates what kind of item a ContentRef points at
type ContentKind string

// Content kinds
const (
	KindPost       ContentKind = "post"
	KindComment    ContentKind = "comment"
	KindAttachment ContentKind = "attachment"
)

// Valid reports whether k is a known content kind
func (k ContentKind) Valid() bool {
	return k == KindPost || k == KindComment || k == KindAttachment
}

// Visibility states for content. Deletion is always soft: rows are never
// physically removed by moderation.
const (
	VisibilityVisible = "visible"
	VisibilityHidden  = "hidden"
	VisibilityDeleted = "deleted"
)

// ContentRef identifies one piece of content regardless of which board
// table physically stores it.
type ContentRef struct {
	BoardType   BoardType   `json:"board_type" binding:"required"`
	ContentKind ContentKind `json:"content_kind" binding:"required"`
	ContentID   uint64      `json:"content_id" binding:"required"`
}

// Validate checks that the reference is well-formed
func (r ContentRef) Validate() error {
	if !r.BoardType.Valid() || !r.ContentKind.Valid() || r.ContentID == 0 {
		return fmt.Errorf("malformed content ref %s/%s/%d", r.BoardType, r.ContentKind, r.ContentID)
	}
	return nil
}

func (r ContentRef) String() string {
	return fmt.Sprintf("%s/%s/%d", r.BoardType, r.ContentKind, r.ContentID)
}

// WriteRow is one row of a write_<board> table. Posts and comments share
// the table; IsComment discriminates, comments carry ParentID.
type WriteRow struct {
	ID         uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	IsComment  bool       `gorm:"column:is_comment;index" json:"is_comment"`
	ParentID   uint64     `gorm:"column:parent_id;index" json:"parent_id"`
	AuthorID   uint64     `gorm:"column:author_id;index" json:"author_id"`
	Title      string     `gorm:"column:title;size:255" json:"title"`
	Content    string     `gorm:"column:content;type:mediumtext" json:"content"`
	Visibility string     `gorm:"column:visibility;size:10;default:visible;index" json:"visibility"`
	HideReason string     `gorm:"column:hide_reason;size:255" json:"hide_reason,omitempty"`
	DeletedAt  *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
	DeletedBy  *uint64    `gorm:"column:deleted_by" json:"deleted_by,omitempty"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// BoardFile is an uploaded attachment. All boards share one table,
// keyed back to the owning post by (board_type, post_id).
type BoardFile struct {
	ID           uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	BoardType    string     `gorm:"column:board_type;size:20;index:idx_board_post" json:"board_type"`
	PostID       uint64     `gorm:"column:post_id;index:idx_board_post" json:"post_id"`
	AuthorID     uint64     `gorm:"column:author_id" json:"author_id"`
	Path         string     `gorm:"column:path;size:500" json:"path"`
	OriginalName string     `gorm:"column:original_name;size:255" json:"original_name"`
	Visibility   string     `gorm:"column:visibility;size:10;default:visible;index" json:"visibility"`
	HideReason   string     `gorm:"column:hide_reason;size:255" json:"hide_reason,omitempty"`
	DeletedAt    *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
	DeletedBy    *uint64    `gorm:"column:deleted_by" json:"deleted_by,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName returns the table name
func (BoardFile) TableName() string { return "board_files" }

// ContentItem is the registry's uniform view of a post, comment or
// attachment, independent of the table it came from.
type ContentItem struct {
	Ref        ContentRef `json:"ref"`
	AuthorID   uint64     `json:"author_id"`
	Title      string     `json:"title,omitempty"`
	Visibility string     `json:"visibility"`
	HideReason string     `json:"hide_reason,omitempty"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
	DeletedBy  *uint64    `json:"deleted_by,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
