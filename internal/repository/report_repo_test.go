package repository

import (
	"testing"
	"time"

	"github.com/keylounge/keylounge-backend/internal/common"
	"github.com/keylounge/keylounge-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func createReport(t *testing.T, db *gorm.DB, status string) *domain.Report {
	t.Helper()
	report := &domain.Report{
		ReporterID:   20,
		TargetType:   domain.TargetTypeUser,
		TargetUserID: 100,
		Reason:       "spam",
		Category:     "spam_ad",
		Status:       status,
	}
	if err := db.Create(report).Error; err != nil {
		t.Fatalf("failed to create report: %v", err)
	}
	return report
}

func TestMarkReviewedTransitions(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)

	pending := createReport(t, db, domain.ReportStatusPending)
	assert.NoError(t, repo.MarkReviewed(pending.ID))

	got, err := repo.FindByID(pending.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.ReportStatusReviewed, got.Status)

	// reviewed -> reviewed is not a transition
	assert.ErrorIs(t, repo.MarkReviewed(pending.ID), common.ErrInvalidTransition)

	actioned := createReport(t, db, domain.ReportStatusActioned)
	assert.ErrorIs(t, repo.MarkReviewed(actioned.ID), common.ErrInvalidTransition)

	assert.ErrorIs(t, repo.MarkReviewed(999), common.ErrNotFound)
}

func TestClaimActioned(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)

	now := time.Now()
	pending := createReport(t, db, domain.ReportStatusPending)
	assert.NoError(t, repo.ClaimActioned(pending.ID, 7, now))

	got, err := repo.FindByID(pending.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.ReportStatusActioned, got.Status)
	assert.NotNil(t, got.ProcessedAt)
	if assert.NotNil(t, got.ProcessedBy) {
		assert.Equal(t, uint64(7), *got.ProcessedBy)
	}

	// The second claimant loses
	assert.ErrorIs(t, repo.ClaimActioned(pending.ID, 8, now), common.ErrInvalidTransition)

	// A reviewed report can be claimed directly
	reviewed := createReport(t, db, domain.ReportStatusReviewed)
	assert.NoError(t, repo.ClaimActioned(reviewed.ID, 7, now))

	assert.ErrorIs(t, repo.ClaimActioned(999, 7, now), common.ErrNotFound)
}

func TestFindAllFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)

	createReport(t, db, domain.ReportStatusPending)
	createReport(t, db, domain.ReportStatusPending)
	createReport(t, db, domain.ReportStatusActioned)

	reports, total, err := repo.FindAll(domain.ReportStatusPending, "", 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, reports, 2)

	reports, total, err = repo.FindAll("", domain.TargetTypeUser, 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, reports, 3)

	reports, total, err = repo.FindAll("", domain.TargetTypeContent, 1, 20)
	assert.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, reports)
}
