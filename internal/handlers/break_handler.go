package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendahub/scheduler/internal/apperr"
	"github.com/agendahub/scheduler/internal/httpresp"
	"github.com/agendahub/scheduler/internal/middleware"
	"github.com/agendahub/scheduler/internal/models"
	"github.com/agendahub/scheduler/internal/tenant"
)

type BreakHandler struct {
	scope *tenant.Scope
}

func NewBreakHandler(scope *tenant.Scope) *BreakHandler {
	return &BreakHandler{scope: scope}
}

type BreakRequest struct {
	ResourceID uint   `json:"resource_id" binding:"required"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
	Label      string `json:"label"`
}

func (h *BreakHandler) ListForResource(c *gin.Context) {
	resourceID, err := strconv.ParseUint(c.Query("resource_id"), 10, 64)
	if err != nil {
		apperr.BadRequest(c, "invalid_resource_id", "resource_id is invalid.")
		return
	}

	var breaks []models.BreakInterval
	err = h.scope.Transaction(c.Request.Context(), func(tx *gorm.DB) error {
		return tx.
			Where("resource_id = ?", uint(resourceID)).
			Order("start_time ASC").
			Find(&breaks).Error
	})
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	httpresp.List(c, breaks)
}

func (h *BreakHandler) Create(c *gin.Context) {
	var req BreakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, "invalid_request", "Request body is invalid.")
		return
	}

	if !validHM(req.StartTime) || !validHM(req.EndTime) || req.StartTime >= req.EndTime {
		apperr.BadRequest(c, "invalid_time_range", "Time range is malformed.")
		return
	}

	br := models.BreakInterval{
		TenantID:   c.MustGet(middleware.ContextTenantID).(uint),
		ResourceID: req.ResourceID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Label:      req.Label,
	}

	err := h.scope.Transaction(c.Request.Context(), func(tx *gorm.DB) error {
		return tx.Create(&br).Error
	})
	if err != nil {
		apperr.Respond(c, apperr.Internal("break_create_failed", err))
		return
	}

	httpresp.Created(c, br)
}

func (h *BreakHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	err := h.scope.Transaction(c.Request.Context(), func(tx *gorm.DB) error {
		res := tx.Delete(&models.BreakInterval{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err == gorm.ErrRecordNotFound {
		apperr.Respond(c, apperr.NotFound("break_not_found", "Break not found."))
		return
	}
	if err != nil {
		apperr.Respond(c, apperr.Internal("break_delete_failed", err))
		return
	}

	c.Status(204)
}
