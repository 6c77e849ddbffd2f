package service

import (
	"github.com/keylounge/keylounge-backend/internal/common"
	"github.com/keylounge/keylounge-backend/internal/domain"
	"github.com/keylounge/keylounge-backend/internal/repository"
	"github.com/keylounge/keylounge-backend/pkg/logger"
)

// ReportService records and triages complaints against content or users
type ReportService struct {
	repo     repository.ReportRepository
	registry repository.ContentRegistry
}

// NewReportService creates a new ReportService
func NewReportService(repo repository.ReportRepository, registry repository.ContentRegistry) *ReportService {
	return &ReportService{repo: repo, registry: registry}
}

// Submit files a report. Self-targeting is rejected; unrecognized
// categories are coerced to the default category instead of being
// rejected (legacy-compatible intake behavior).
func (s *ReportService) Submit(reporterID uint64, req *domain.SubmitReportRequest) (*domain.Report, error) {
	report := &domain.Report{
		ReporterID: reporterID,
		TargetType: req.TargetType,
		Reason:     req.Reason,
		Category:   req.Category,
		Status:     domain.ReportStatusPending,
	}

	switch req.TargetType {
	case domain.TargetTypeUser:
		if req.TargetUserID == 0 {
			return nil, common.ErrInvalidTarget
		}
		if req.TargetUserID == reporterID {
			return nil, common.ErrInvalidTarget
		}
		report.TargetUserID = req.TargetUserID

	case domain.TargetTypeContent:
		if req.Ref == nil || req.Ref.Validate() != nil {
			return nil, common.ErrInvalidTarget
		}
		item, err := s.registry.Find(*req.Ref)
		if err != nil {
			return nil, err
		}
		if item.AuthorID == reporterID {
			return nil, common.ErrInvalidTarget
		}
		report.BoardType = string(req.Ref.BoardType)
		report.ContentKind = string(req.Ref.ContentKind)
		report.ContentID = req.Ref.ContentID
		report.TargetUserID = item.AuthorID

	default:
		return nil, common.ErrInvalidTarget
	}

	if !domain.ValidCategory(report.Category) {
		logger.GetLogger().Warn().
			Str("category", report.Category).
			Uint64("reporter_id", reporterID).
			Msg("unrecognized report category coerced to default")
		report.Category = domain.CategoryDefault
	}

	if err := s.repo.Create(report); err != nil {
		return nil, err
	}
	return report, nil
}

// List returns reports filtered by status and/or target type,
// newest first. Pure read, no side effects.
func (s *ReportService) List(status, targetType string, page, limit int) ([]domain.ReportResponse, *common.Meta, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if status != "" && status != domain.ReportStatusPending &&
		status != domain.ReportStatusReviewed && status != domain.ReportStatusActioned {
		return nil, nil, common.ErrInvalidStatus
	}
	if targetType != "" && targetType != domain.TargetTypeContent && targetType != domain.TargetTypeUser {
		return nil, nil, common.ErrInvalidInput
	}

	reports, total, err := s.repo.FindAll(status, targetType, page, limit)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]domain.ReportResponse, len(reports))
	for i, r := range reports {
		responses[i] = r.ToResponse()
	}

	meta := &common.Meta{Page: page, Limit: limit, Total: total}
	return responses, meta, nil
}

// MarkReviewed moves a pending report to reviewed
func (s *ReportService) MarkReviewed(id uint64) error {
	return s.repo.MarkReviewed(id)
}
