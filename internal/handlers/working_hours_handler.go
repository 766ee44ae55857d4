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

type WorkingHoursHandler struct {
	scope *tenant.Scope
}

func NewWorkingHoursHandler(scope *tenant.Scope) *WorkingHoursHandler {
	return &WorkingHoursHandler{scope: scope}
}

type WorkingHoursRequest struct {
	ResourceID uint   `json:"resource_id" binding:"required"`
	Weekday    *int   `json:"weekday" binding:"required,min=0,max=6"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
	Active     *bool  `json:"active"`
}

func (h *WorkingHoursHandler) ListForResource(c *gin.Context) {
	resourceID, err := strconv.ParseUint(c.Query("resource_id"), 10, 64)
	if err != nil {
		apperr.BadRequest(c, "invalid_resource_id", "resource_id is invalid.")
		return
	}

	var rules []models.WorkingHoursRule
	err = h.scope.Transaction(c.Request.Context(), func(tx *gorm.DB) error {
		return tx.
			Where("resource_id = ?", uint(resourceID)).
			Order("weekday ASC").
			Find(&rules).Error
	})
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	httpresp.List(c, rules)
}

// Upsert replaces the rule for (resource, weekday): at most one rule per
// pair is ever consulted for slot generation.
func (h *WorkingHoursHandler) Upsert(c *gin.Context) {
	var req WorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, "invalid_request", "Request body is invalid.")
		return
	}

	if !validHM(req.StartTime) || !validHM(req.EndTime) || req.StartTime >= req.EndTime {
		apperr.BadRequest(c, "invalid_time_range", "Time range is malformed.")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	rule := models.WorkingHoursRule{
		TenantID:   c.MustGet(middleware.ContextTenantID).(uint),
		ResourceID: req.ResourceID,
		Weekday:    *req.Weekday,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Active:     active,
	}

	err := h.scope.Transaction(c.Request.Context(), func(tx *gorm.DB) error {
		var existing models.WorkingHoursRule
		err := tx.
			Where("resource_id = ? AND weekday = ?", req.ResourceID, *req.Weekday).
			First(&existing).Error
		if err == nil {
			rule.ID = existing.ID
			rule.CreatedAt = existing.CreatedAt
			return tx.Save(&rule).Error
		}
		if err == gorm.ErrRecordNotFound {
			return tx.Create(&rule).Error
		}
		return err
	})
	if err != nil {
		apperr.Respond(c, apperr.Internal("working_hours_save_failed", err))
		return
	}

	httpresp.OK(c, rule)
}

func validHM(hm string) bool {
	if len(hm) != 5 || hm[2] != ':' {
		return false
	}
	h, err1 := strconv.Atoi(hm[:2])
	m, err2 := strconv.Atoi(hm[3:])
	return err1 == nil && err2 == nil && h >= 0 && h < 24 && m >= 0 && m < 60
}
