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

// ContentHandler handles the admin content takedown/recovery surface
type ContentHandler struct {
	service *service.ContentService
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(service *service.ContentService) *ContentHandler {
	return &ContentHandler{service: service}
}

// hideRequest carries a content ref plus the hide reason
type hideRequest struct {
	domain.ContentRef
	Reason string `json:"reason" binding:"required"`
}

// Hide handles POST /api/v1/admin/contents/hide
func (h *ContentHandler) Hide(c *gin.Context) {
	var req hideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid hide payload", err)
		return
	}

	if err := h.service.Hide(req.ContentRef, req.Reason); err != nil {
		common.ErrorResponseFromErr(c, "failed to hide content", err)
		return
	}

	middleware.CountModerationAction("hide")
	common.SuccessResponse(c, gin.H{"ref": req.ContentRef, "visibility": domain.VisibilityHidden}, nil)
}

// Delete handles POST /api/v1/admin/contents/delete
func (h *ContentHandler) Delete(c *gin.Context) {
	var ref domain.ContentRef
	if err := c.ShouldBindJSON(&ref); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid content ref", err)
		return
	}

	adminID := middleware.GetUserID(c)
	if err := h.service.Delete(ref, adminID); err != nil {
		common.ErrorResponseFromErr(c, "failed to delete content", err)
		return
	}

	middleware.CountModerationAction("delete")
	common.SuccessResponse(c, gin.H{"ref": ref, "visibility": domain.VisibilityDeleted}, nil)
}

// Recover handles POST /api/v1/admin/contents/recover
func (h *ContentHandler) Recover(c *gin.Context) {
	var ref domain.ContentRef
	if err := c.ShouldBindJSON(&ref); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid content ref", err)
		return
	}

	if err := h.service.Recover(ref); err != nil {
		common.ErrorResponseFromErr(c, "failed to recover content", err)
		return
	}

	middleware.CountModerationAction("recover")
	common.SuccessResponse(c, gin.H{"ref": ref, "visibility": domain.VisibilityVisible}, nil)
}

// SearchDeletionLog handles GET /api/v1/admin/deletion-logs
func (h *ContentHandler) SearchDeletionLog(c *gin.Context) {
	boardType := c.Query("board_type")
	keyword := c.Query("keyword")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	entries, meta, err := h.service.SearchDeletionLog(boardType, keyword, page, limit)
	if err != nil {
		common.ErrorResponseFromErr(c, "failed to search deletion log", err)
		return
	}

	common.SuccessResponse(c, entries, meta)
}
