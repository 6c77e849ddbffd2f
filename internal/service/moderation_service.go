package service

import (
	"time"

	"github.com/keylounge/keylounge-backend/internal/common"
	"github.com/keylounge/keylounge-backend/internal/domain"
	"github.com/keylounge/keylounge-backend/internal/repository"
	"github.com/keylounge/keylounge-backend/pkg/logger"
	"gorm.io/gorm"
)

// ModerationService is the administrative workflow that turns a triaged
// report into a committed penalty and report resolution in one atomic
// step. Content takedown is deliberately not part of this flow: a
// report may target the user generally, so takedown stays a separate
// explicit action on the content service.
type ModerationService struct {
	db          *gorm.DB
	reportRepo  repository.ReportRepository
	penaltyRepo repository.PenaltyRepository
	penaltySvc  *PenaltyService
}

// NewModerationService creates a new ModerationService
func NewModerationService(
	db *gorm.DB,
	reportRepo repository.ReportRepository,
	penaltyRepo repository.PenaltyRepository,
	penaltySvc *PenaltyService,
) *ModerationService {
	return &ModerationService{
		db:          db,
		reportRepo:  reportRepo,
		penaltyRepo: penaltyRepo,
		penaltySvc:  penaltySvc,
	}
}

// ProcessRequest carries the administrator's sanction decision
type ProcessRequest struct {
	TargetUserID    uint64     `json:"target_user_id" binding:"required"`
	PenaltyReason   string     `json:"penalty_reason" binding:"required"`
	Category        string     `json:"category" binding:"required"`
	DurationCode    string     `json:"duration_code" binding:"required"`
	EndDateOverride *time.Time `json:"end_date_override,omitempty"`
}

// ProcessReportAndApplyPenalty resolves a report: claims it (must not
// already be actioned), issues a penalty for the computed or
// admin-overridden window, and marks the report actioned, all inside
// one transaction, so concurrent readers never observe an actioned
// report without its penalty or vice versa. Two administrators racing
// on the same report are serialized by the guarded status update; the
// loser gets ErrInvalidTransition.
func (s *ModerationService) ProcessReportAndApplyPenalty(reportID uint64, req *ProcessRequest, adminID uint64) error {
	report, err := s.reportRepo.FindByID(reportID)
	if err != nil {
		return err
	}
	if report.Status == domain.ReportStatusActioned {
		return common.ErrInvalidTransition
	}

	now := time.Now()
	window, err := s.resolveWindow(req, now)
	if err != nil {
		return err
	}

	var penaltyID uint64
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Claim first: the conditional update is the exclusion mechanism,
		// so the penalty insert never happens for a lost race.
		if err := s.reportRepo.WithTx(tx).ClaimActioned(reportID, adminID, now); err != nil {
			return err
		}

		penalty := &domain.Penalty{
			UserID:       req.TargetUserID,
			Reason:       req.PenaltyReason,
			Category:     req.Category,
			DurationCode: req.DurationCode,
			StartDate:    window.StartDate,
			EndDate:      window.EndDate,
			Status:       domain.PenaltyStatusActive,
			IssuedBy:     adminID,
		}
		if err := s.penaltyRepo.WithTx(tx).Create(penalty); err != nil {
			return err
		}
		penaltyID = penalty.ID
		return nil
	})
	if err != nil {
		return err
	}

	s.penaltySvc.invalidateSanctionCache(req.TargetUserID)
	logger.GetLogger().Info().
		Uint64("report_id", reportID).
		Uint64("penalty_id", penaltyID).
		Uint64("target_user_id", req.TargetUserID).
		Uint64("admin_id", adminID).
		Msg("report actioned with penalty")
	return nil
}

// resolveWindow computes the penalty window. durationCode "custom"
// requires an explicit admin-supplied end date; for finite codes an
// override, when present, replaces the computed end date (administrators
// may pick an arbitrary date). Permanent windows cannot be overridden.
func (s *ModerationService) resolveWindow(req *ProcessRequest, now time.Time) (domain.PenaltyWindow, error) {
	if req.DurationCode == domain.DurationCustom {
		if req.EndDateOverride == nil {
			return domain.PenaltyWindow{}, common.ErrInvalidInput
		}
		return domain.PenaltyWindow{StartDate: now, EndDate: req.EndDateOverride}, nil
	}

	window, err := s.penaltySvc.ComputeWindow(req.DurationCode, now)
	if err != nil {
		return domain.PenaltyWindow{}, err
	}
	if req.EndDateOverride != nil && req.DurationCode != domain.DurationPermanent {
		window.EndDate = req.EndDateOverride
	}
	return window, nil
}
