package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/keylounge/keylounge-backend/internal/common"
	"github.com/keylounge/keylounge-backend/internal/domain"
	"github.com/keylounge/keylounge-backend/internal/middleware"
	"github.com/keylounge/keylounge-backend/internal/service"
)

// ReportHandler handles report intake and the admin report workflow
type ReportHandler struct {
	service    *service.ReportService
	moderation *service.ModerationService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *service.ReportService, moderation *service.ModerationService) *ReportHandler {
	return &ReportHandler{service: service, moderation: moderation}
}

// Submit handles POST /api/v1/reports
func (h *ReportHandler) Submit(c *gin.Context) {
	var req domain.SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid report payload", err)
		return
	}

	reporterID := middleware.GetUserID(c)
	report, err := h.service.Submit(reporterID, &req)
	if err != nil {
		if errors.Is(err, common.ErrInvalidTarget) {
			// End users get a generic denial
			common.ErrorResponse(c, http.StatusBadRequest, "you cannot report this target", nil)
			return
		}
		common.ErrorResponseFromErr(c, "failed to submit report", err)
		return
	}

	common.CreatedResponse(c, gin.H{"report_id": report.ID})
}

// List handles GET /api/v1/admin/reports
func (h *ReportHandler) List(c *gin.Context) {
	status := c.Query("status")
	targetType := c.Query("target_type")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	reports, meta, err := h.service.List(status, targetType, page, limit)
	if err != nil {
		common.ErrorResponseFromErr(c, "failed to list reports", err)
		return
	}

	common.SuccessResponse(c, reports, meta)
}

// MarkReviewed handles POST /api/v1/admin/reports/:id/review
func (h *ReportHandler) MarkReviewed(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid report id", err)
		return
	}

	if err := h.service.MarkReviewed(id); err != nil {
		common.ErrorResponseFromErr(c, "failed to mark report reviewed", err)
		return
	}

	common.SuccessResponse(c, gin.H{"report_id": id, "status": domain.ReportStatusReviewed}, nil)
}

// Process handles POST /api/v1/admin/reports/:id/process
func (h *ReportHandler) Process(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid report id", err)
		return
	}

	var req service.ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid process payload", err)
		return
	}

	adminID := middleware.GetUserID(c)
	if err := h.moderation.ProcessReportAndApplyPenalty(id, &req, adminID); err != nil {
		common.ErrorResponseFromErr(c, "failed to process report", err)
		return
	}

	middleware.CountModerationAction("report_processed")
	common.SuccessResponse(c, gin.H{"report_id": id, "status": domain.ReportStatusActioned}, nil)
}
