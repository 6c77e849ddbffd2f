package domain

import "time"

// Admin level threshold. Members at or above this level may use the
// moderation back office.
const AdminLevel = 10

// Member is a registered user account
type Member struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"column:username;size:50;uniqueIndex" json:"username"`
	Nickname  string    `gorm:"column:nickname;size:100" json:"nickname"`
	Password  string    `gorm:"column:password;size:255" json:"-"`
	Level     int       `gorm:"column:level;default:1" json:"level"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName returns the table name
func (Member) TableName() string { return "members" }

// IsAdmin reports whether the member may use the back office
func (m *Member) IsAdmin() bool {
	return m.Level >= AdminLevel
}

// LoginRequest login payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse login result with the issued token
type LoginResponse struct {
	Token    string `json:"token"`
	UserID   uint64 `json:"user_id"`
	Nickname string `json:"nickname"`
	Level    int    `json:"level"`
}
