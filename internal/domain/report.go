package domain

import "time"

// Report statuses. Transitions only move forward:
// pending -> reviewed -> actioned, or pending -> actioned directly.
const (
	ReportStatusPending  = "pending"
	ReportStatusReviewed = "reviewed"
	ReportStatusActioned = "actioned"
)

// Report target types
const (
	TargetTypeContent = "content"
	TargetTypeUser    = "user"
)

// Report categories. Unrecognized values are coerced to
// CategoryDefault at intake instead of being rejected; the legacy
// site behaved this way and clients depend on it.
const (
	CategorySpamAd    = "spam_ad"
	CategoryProfanity = "profanity_hate_speech"
	CategoryAdult     = "adult_content"
	CategoryFraud     = "impersonation_fraud"
	CategoryCopyright = "copyright_infringement"
	CategoryDefault   = CategorySpamAd
)

// ReportCategories is the fixed enumerated category set
var ReportCategories = []string{
	CategorySpamAd, CategoryProfanity, CategoryAdult, CategoryFraud, CategoryCopyright,
}

// ValidCategory reports whether c is one of the enumerated categories
func ValidCategory(c string) bool {
	for _, v := range ReportCategories {
		if c == v {
			return true
		}
	}
	return false
}

// Report is a complaint filed against a content item or a user.
// Reports are never deleted; only their status moves forward.
type Report struct {
	ID           uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ReporterID   uint64     `gorm:"column:reporter_id;index" json:"reporter_id"`
	TargetType   string     `gorm:"column:target_type;size:10" json:"target_type"`
	BoardType    string     `gorm:"column:board_type;size:20" json:"board_type,omitempty"`
	ContentKind  string     `gorm:"column:content_kind;size:20" json:"content_kind,omitempty"`
	ContentID    uint64     `gorm:"column:content_id" json:"content_id,omitempty"`
	TargetUserID uint64     `gorm:"column:target_user_id;index" json:"target_user_id"`
	Reason       string     `gorm:"column:reason;type:text" json:"reason"`
	Category     string     `gorm:"column:category;size:30" json:"category"`
	Status       string     `gorm:"column:status;size:10;default:pending;index" json:"status"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	ProcessedAt  *time.Time `gorm:"column:processed_at" json:"processed_at,omitempty"`
	ProcessedBy  *uint64    `gorm:"column:processed_by" json:"processed_by,omitempty"`
}

// TableName returns the table name
func (Report) TableName() string { return "reports" }

// ContentRef returns the content reference for content-targeted reports
func (r *Report) ContentRef() ContentRef {
	return ContentRef{
		BoardType:   BoardType(r.BoardType),
		ContentKind: ContentKind(r.ContentKind),
		ContentID:   r.ContentID,
	}
}

// SubmitReportRequest is the intake payload
type SubmitReportRequest struct {
	TargetType   string      `json:"target_type" binding:"required,oneof=content user"`
	Ref          *ContentRef `json:"ref,omitempty"`
	TargetUserID uint64      `json:"target_user_id,omitempty"`
	Reason       string      `json:"reason" binding:"required"`
	Category     string      `json:"category" binding:"required"`
}

// ReportResponse is the admin-facing list/detail shape
type ReportResponse struct {
	ID           uint64  `json:"id"`
	ReporterID   uint64  `json:"reporter_id"`
	TargetType   string  `json:"target_type"`
	BoardType    string  `json:"board_type,omitempty"`
	ContentKind  string  `json:"content_kind,omitempty"`
	ContentID    uint64  `json:"content_id,omitempty"`
	TargetUserID uint64  `json:"target_user_id"`
	Reason       string  `json:"reason"`
	Category     string  `json:"category"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
	ProcessedAt  *string `json:"processed_at,omitempty"`
	ProcessedBy  *uint64 `json:"processed_by,omitempty"`
}

// ToResponse converts a Report to its response shape
func (r *Report) ToResponse() ReportResponse {
	resp := ReportResponse{
		ID:           r.ID,
		ReporterID:   r.ReporterID,
		TargetType:   r.TargetType,
		BoardType:    r.BoardType,
		ContentKind:  r.ContentKind,
		ContentID:    r.ContentID,
		TargetUserID: r.TargetUserID,
		Reason:       r.Reason,
		Category:     r.Category,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt.Format("2006-01-02 15:04:05"),
		ProcessedBy:  r.ProcessedBy,
	}
	if r.ProcessedAt != nil {
		at := r.ProcessedAt.Format("2006-01-02 15:04:05")
		resp.ProcessedAt = &at
	}
	return resp
}
