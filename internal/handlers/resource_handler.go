package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendahub/scheduler/internal/apperr"
	"github.com/agendahub/scheduler/internal/httpresp"
	"github.com/agendahub/scheduler/internal/middleware"
	"github.com/agendahub/scheduler/internal/models"
	"github.com/agendahub/scheduler/internal/tenant"
)

// Thin CRUD over resources. These handlers are callers of the core, not
// part of it: they only read and write rows, always through the scope.

type ResourceHandler struct {
	scope *tenant.Scope
}

func NewResourceHandler(scope *tenant.Scope) *ResourceHandler {
	return &ResourceHandler{scope: scope}
}

type ResourceRequest struct {
	Name   string `json:"name" binding:"required"`
	Active *bool  `json:"active"`
}

func (h *ResourceHandler) List(c *gin.Context) {
	var resources []models.Resource
	err := h.scope.Transaction(c.Request.Context(), func(tx *gorm.DB) error {
		return tx.Order("name ASC").Find(&resources).Error
	})
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	httpresp.List(c, resources)
}

func (h *ResourceHandler) Create(c *gin.Context) {
	var req ResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, "invalid_request", "Request body is invalid.")
		return
	}

	resource := models.Resource{
		TenantID: c.MustGet(middleware.ContextTenantID).(uint),
		Name:     req.Name,
		Active:   true,
	}
	if req.Active != nil {
		resource.Active = *req.Active
	}

	err := h.scope.Transaction(c.Request.Context(), func(tx *gorm.DB) error {
		return tx.Create(&resource).Error
	})
	if err != nil {
		apperr.Respond(c, apperr.Internal("resource_create_failed", err))
		return
	}

	httpresp.Created(c, resource)
}

func (h *ResourceHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, "invalid_request", "Request body is invalid.")
		return
	}

	var resource models.Resource
	err := h.scope.Transaction(c.Request.Context(), func(tx *gorm.DB) error {
		if err := tx.First(&resource, id).Error; err != nil {
			return err
		}
		resource.Name = req.Name
		if req.Active != nil {
			resource.Active = *req.Active
		}
		return tx.Save(&resource).Error
	})
	if err == gorm.ErrRecordNotFound {
		apperr.Respond(c, apperr.NotFound("resource_not_found", "Resource not found."))
		return
	}
	if err != nil {
		apperr.Respond(c, apperr.Internal("resource_update_failed", err))
		return
	}

	httpresp.OK(c, resource)
}
