package repository

import (
	"testing"
	"time"

	"github.com/keylounge/keylounge-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func createPenalty(t *testing.T, db *gorm.DB, userID uint64, status string, endDate *time.Time) *domain.Penalty {
	t.Helper()
	penalty := &domain.Penalty{
		UserID:       userID,
		Reason:       "spam",
		Category:     "spam_ad",
		DurationCode: domain.Duration7Days,
		StartDate:    time.Now().AddDate(0, 0, -1),
		EndDate:      endDate,
		Status:       status,
		IssuedBy:     7,
	}
	if err := db.Create(penalty).Error; err != nil {
		t.Fatalf("failed to create penalty: %v", err)
	}
	return penalty
}

func TestCountEffective(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPenaltyRepository(db)
	now := time.Now()

	future := now.AddDate(0, 0, 6)
	past := now.AddDate(0, 0, -1)

	createPenalty(t, db, 100, domain.PenaltyStatusActive, &future) // counts
	createPenalty(t, db, 100, domain.PenaltyStatusActive, nil)     // permanent, counts
	createPenalty(t, db, 100, domain.PenaltyStatusActive, &past)   // lapsed window
	createPenalty(t, db, 100, domain.PenaltyStatusInactive, &future)
	createPenalty(t, db, 200, domain.PenaltyStatusActive, &future) // other user

	count, err := repo.CountEffective(100, now)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountEffective(300, now)
	assert.NoError(t, err)
	assert.Zero(t, count)
}

func TestCountEffectiveAtWindowBoundary(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPenaltyRepository(db)
	now := time.Now().Truncate(time.Second)

	// end_date equal to now is still inside the window
	createPenalty(t, db, 100, domain.PenaltyStatusActive, &now)

	count, err := repo.CountEffective(100, now)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = repo.CountEffective(100, now.Add(time.Second))
	assert.NoError(t, err)
	assert.Zero(t, count)
}

func TestFindByUserIDOrdersNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPenaltyRepository(db)

	old := &domain.Penalty{
		UserID: 100, Reason: "old", Category: "spam_ad", DurationCode: domain.Duration1Day,
		StartDate: time.Now().AddDate(0, 0, -10), Status: domain.PenaltyStatusInactive, IssuedBy: 7,
	}
	assert.NoError(t, db.Create(old).Error)
	recent := &domain.Penalty{
		UserID: 100, Reason: "recent", Category: "profanity", DurationCode: domain.Duration7Days,
		StartDate: time.Now(), Status: domain.PenaltyStatusActive, IssuedBy: 7,
	}
	assert.NoError(t, db.Create(recent).Error)

	penalties, total, err := repo.FindByUserID(100, 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	if assert.Len(t, penalties, 2) {
		assert.Equal(t, "recent", penalties[0].Reason)
		assert.Equal(t, "old", penalties[1].Reason)
	}
}
