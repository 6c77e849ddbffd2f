package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/keylounge/keylounge-backend/internal/common"
	"github.com/keylounge/keylounge-backend/internal/domain"
	"github.com/keylounge/keylounge-backend/internal/middleware"
	"github.com/keylounge/keylounge-backend/internal/service"
)

// PenaltyHandler handles the admin penalty surface and the public
// sanction check consulted by board services
type PenaltyHandler struct {
	service *service.PenaltyService
}

// NewPenaltyHandler creates a new PenaltyHandler
func NewPenaltyHandler(service *service.PenaltyService) *PenaltyHandler {
	return &PenaltyHandler{service: service}
}

// Issue handles POST /api/v1/admin/penalties
func (h *PenaltyHandler) Issue(c *gin.Context) {
	var req domain.IssuePenaltyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid penalty payload", err)
		return
	}

	adminID := middleware.GetUserID(c)
	id, err := h.service.Issue(req.UserID, req.Reason, req.Category, req.DurationCode, adminID)
	if err != nil {
		common.ErrorResponseFromErr(c, "failed to issue penalty", err)
		return
	}

	middleware.CountModerationAction("penalty_issued")
	common.CreatedResponse(c, gin.H{"penalty_id": id})
}

// List handles GET /api/v1/admin/penalties?user_id=
func (h *PenaltyHandler) List(c *gin.Context) {
	userID, _ := strconv.ParseUint(c.Query("user_id"), 10, 64)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	penalties, meta, err := h.service.ListByUser(userID, page, limit)
	if err != nil {
		common.ErrorResponseFromErr(c, "failed to list penalties", err)
		return
	}

	common.SuccessResponse(c, penalties, meta)
}

// SetStatus handles PUT /api/v1/admin/penalties/:id/status
func (h *PenaltyHandler) SetStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid penalty id", err)
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid status payload", err)
		return
	}

	if err := h.service.SetStatus(id, req.Status); err != nil {
		common.ErrorResponseFromErr(c, "failed to update penalty status", err)
		return
	}

	common.SuccessResponse(c, gin.H{"penalty_id": id, "status": req.Status}, nil)
}

// CheckSanction handles GET /api/v1/users/:id/sanction.
// Board services consult this before allowing a user to post.
func (h *PenaltyHandler) CheckSanction(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid user id", err)
		return
	}

	sanctioned, err := h.service.IsCurrentlySanctioned(c.Request.Context(), userID)
	if err != nil {
		common.ErrorResponseFromErr(c, "failed to check sanction", err)
		return
	}

	common.SuccessResponse(c, gin.H{"user_id": userID, "sanctioned": sanctioned}, nil)
}
