package service

import (
	"context"
	"testing"
	"time"

	"github.com/keylounge/keylounge-backend/internal/common"
	"github.com/keylounge/keylounge-backend/internal/domain"
	"github.com/keylounge/keylounge-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newPenaltyService(db *gorm.DB) *PenaltyService {
	return NewPenaltyService(repository.NewPenaltyRepository(db))
}

func TestComputeWindow(t *testing.T) {
	svc := NewPenaltyService(nil)
	reference := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		code     string
		wantDays int
	}{
		{domain.Duration1Day, 1},
		{domain.Duration3Days, 3},
		{domain.Duration7Days, 7},
		{domain.Duration30Days, 30},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			window, err := svc.ComputeWindow(tt.code, reference)
			assert.NoError(t, err)
			assert.Equal(t, reference, window.StartDate)
			if assert.NotNil(t, window.EndDate) {
				assert.Equal(t, reference.AddDate(0, 0, tt.wantDays), *window.EndDate)
			}
		})
	}
}

func TestComputeWindowPermanent(t *testing.T) {
	svc := NewPenaltyService(nil)

	window, err := svc.ComputeWindow(domain.DurationPermanent, time.Now())
	assert.NoError(t, err)
	assert.Nil(t, window.EndDate)
}

func TestComputeWindowUnknownCode(t *testing.T) {
	svc := NewPenaltyService(nil)

	_, err := svc.ComputeWindow("14d", time.Now())
	assert.ErrorIs(t, err, common.ErrInvalidStatus)

	// custom has no fixed day count and needs an explicit end date,
	// which ComputeWindow cannot supply
	_, err = svc.ComputeWindow(domain.DurationCustom, time.Now())
	assert.ErrorIs(t, err, common.ErrInvalidStatus)
}

func TestIssuePenalty(t *testing.T) {
	db := setupTestDB(t)
	svc := newPenaltyService(db)

	id, err := svc.Issue(100, "repeated spam", "spam_ad", domain.Duration7Days, 7)
	assert.NoError(t, err)
	assert.NotZero(t, id)

	var penalty domain.Penalty
	assert.NoError(t, db.First(&penalty, id).Error)
	assert.Equal(t, uint64(100), penalty.UserID)
	assert.Equal(t, domain.PenaltyStatusActive, penalty.Status)
	assert.Equal(t, uint64(7), penalty.IssuedBy)
	if assert.NotNil(t, penalty.EndDate) {
		assert.WithinDuration(t, time.Now().AddDate(0, 0, 7), *penalty.EndDate, 5*time.Second)
	}
}

func TestExpiredPenaltyIsNotSanctioning(t *testing.T) {
	db := setupTestDB(t)
	svc := newPenaltyService(db)

	end := time.Now().AddDate(0, 0, -1)
	expired := &domain.Penalty{
		UserID:       100,
		Reason:       "old offense",
		Category:     "profanity",
		DurationCode: domain.Duration3Days,
		StartDate:    end.AddDate(0, 0, -3),
		EndDate:      &end,
		Status:       domain.PenaltyStatusActive,
		IssuedBy:     7,
	}
	assert.NoError(t, db.Create(expired).Error)

	// Stored status stays active; only the read-time verdict changes
	sanctioned, err := svc.IsCurrentlySanctioned(context.Background(), 100)
	assert.NoError(t, err)
	assert.False(t, sanctioned)

	var penalty domain.Penalty
	assert.NoError(t, db.First(&penalty, expired.ID).Error)
	assert.Equal(t, domain.PenaltyStatusActive, penalty.Status)
}

func TestPermanentPenaltySanctionsForever(t *testing.T) {
	db := setupTestDB(t)
	svc := newPenaltyService(db)

	_, err := svc.Issue(100, "ban evasion", "fraud", domain.DurationPermanent, 7)
	assert.NoError(t, err)

	sanctioned, err := svc.IsCurrentlySanctioned(context.Background(), 100)
	assert.NoError(t, err)
	assert.True(t, sanctioned)
}

func TestSetStatusLiftsSanction(t *testing.T) {
	db := setupTestDB(t)
	svc := newPenaltyService(db)

	id, err := svc.Issue(100, "spam", "spam_ad", domain.Duration30Days, 7)
	assert.NoError(t, err)

	sanctioned, err := svc.IsCurrentlySanctioned(context.Background(), 100)
	assert.NoError(t, err)
	assert.True(t, sanctioned)

	assert.NoError(t, svc.SetStatus(id, domain.PenaltyStatusInactive))

	sanctioned, err = svc.IsCurrentlySanctioned(context.Background(), 100)
	assert.NoError(t, err)
	assert.False(t, sanctioned)
}

func TestSetStatusRejectsUnknownValue(t *testing.T) {
	db := setupTestDB(t)
	svc := newPenaltyService(db)

	id, err := svc.Issue(100, "spam", "spam_ad", domain.Duration7Days, 7)
	assert.NoError(t, err)

	err = svc.SetStatus(id, "expired")
	assert.ErrorIs(t, err, common.ErrInvalidStatus)

	err = svc.SetStatus(999, domain.PenaltyStatusInactive)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestListByUser(t *testing.T) {
	db := setupTestDB(t)
	svc := newPenaltyService(db)

	_, err := svc.Issue(100, "spam", "spam_ad", domain.Duration7Days, 7)
	assert.NoError(t, err)
	_, err = svc.Issue(200, "profanity", "profanity", domain.Duration1Day, 7)
	assert.NoError(t, err)

	end := time.Now().AddDate(0, 0, -1)
	assert.NoError(t, db.Create(&domain.Penalty{
		UserID:       100,
		Reason:       "old offense",
		Category:     "profanity",
		DurationCode: domain.Duration3Days,
		StartDate:    end.AddDate(0, 0, -3),
		EndDate:      &end,
		Status:       domain.PenaltyStatusActive,
		IssuedBy:     7,
	}).Error)

	responses, meta, err := svc.ListByUser(100, 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), meta.Total)

	effective := 0
	for _, r := range responses {
		assert.Equal(t, uint64(100), r.UserID)
		if r.Effective {
			effective++
		}
	}
	// The lapsed penalty stays in history but is no longer effective
	assert.Equal(t, 1, effective)

	// userID 0 lists across all users
	_, meta, err = svc.ListByUser(0, 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), meta.Total)
}
