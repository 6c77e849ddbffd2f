package domain

import "time"

// Penalty duration codes. DurationPermanent yields a NULL end date and
// means "never expires", not a very long finite window.
// DurationCustom is accepted only by the moderation workflow together
// with an explicit admin-supplied end date.
const (
	Duration1Day      = "1d"
	Duration3Days     = "3d"
	Duration7Days     = "7d"
	Duration30Days    = "30d"
	DurationPermanent = "permanent"
	DurationCustom    = "custom"
)

// DurationDays maps finite duration codes to day counts
var DurationDays = map[string]int{
	Duration1Day:   1,
	Duration3Days:  3,
	Duration7Days:  7,
	Duration30Days: 30,
}

// Penalty statuses. Expiry is not swept into the stored status; the
// "currently sanctioned" predicate is derived from (status, end_date)
// at read time.
const (
	PenaltyStatusActive   = "active"
	PenaltyStatusInactive = "inactive"
)

// Penalty is a time-bounded sanction against a user. A user may hold
// several overlapping penalties; history is retained, never overwritten.
type Penalty struct {
	ID           uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID       uint64     `gorm:"column:user_id;index" json:"user_id"`
	Reason       string     `gorm:"column:reason;type:text" json:"reason"`
	Category     string     `gorm:"column:category;size:30" json:"category"`
	DurationCode string     `gorm:"column:duration_code;size:10" json:"duration_code"`
	StartDate    time.Time  `gorm:"column:start_date" json:"start_date"`
	EndDate      *time.Time `gorm:"column:end_date" json:"end_date,omitempty"`
	Status       string     `gorm:"column:status;size:10;default:active;index" json:"status"`
	IssuedBy     uint64     `gorm:"column:issued_by" json:"issued_by"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName returns the table name
func (Penalty) TableName() string { return "penalties" }

// EffectiveAt reports whether the penalty sanctions the user at the
// given instant: status must still be active and the window must
// include now (NULL end date never expires).
func (p *Penalty) EffectiveAt(now time.Time) bool {
	if p.Status != PenaltyStatusActive {
		return false
	}
	if p.EndDate == nil {
		return true
	}
	return !p.EndDate.Before(now)
}

// PenaltyWindow is a computed effective time window
type PenaltyWindow struct {
	StartDate time.Time
	EndDate   *time.Time
}

// IssuePenaltyRequest is the admin payload for issuing a penalty
// outside the report flow
type IssuePenaltyRequest struct {
	UserID       uint64 `json:"user_id" binding:"required"`
	Reason       string `json:"reason" binding:"required"`
	Category     string `json:"category" binding:"required"`
	DurationCode string `json:"duration_code" binding:"required"`
}

// PenaltyResponse exposes the stored fields plus the derived effective
// flag so admin dashboards can show both.
type PenaltyResponse struct {
	ID           uint64  `json:"id"`
	UserID       uint64  `json:"user_id"`
	Reason       string  `json:"reason"`
	Category     string  `json:"category"`
	DurationCode string  `json:"duration_code"`
	StartDate    string  `json:"start_date"`
	EndDate      *string `json:"end_date,omitempty"`
	Status       string  `json:"status"`
	Effective    bool    `json:"effective"`
	IssuedBy     uint64  `json:"issued_by"`
}

// ToResponse converts a Penalty to its response shape, deriving the
// effective flag at now.
func (p *Penalty) ToResponse(now time.Time) PenaltyResponse {
	resp := PenaltyResponse{
		ID:           p.ID,
		UserID:       p.UserID,
		Reason:       p.Reason,
		Category:     p.Category,
		DurationCode: p.DurationCode,
		StartDate:    p.StartDate.Format("2006-01-02 15:04:05"),
		Status:       p.Status,
		Effective:    p.EffectiveAt(now),
		IssuedBy:     p.IssuedBy,
	}
	if p.EndDate != nil {
		end := p.EndDate.Format("2006-01-02 15:04:05")
		resp.EndDate = &end
	}
	return resp
}
