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

type ServiceHandler struct {
	scope *tenant.Scope
}

func NewServiceHandler(scope *tenant.Scope) *ServiceHandler {
	return &ServiceHandler{scope: scope}
}

type ServiceRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	DurationMin   int     `json:"duration_min" binding:"required,gt=0"`
	Price         float64 `json:"price"`
	DepositAmount float64 `json:"deposit_amount" binding:"gte=0"`
	Active        *bool   `json:"active"`
}

func (r ServiceRequest) validate(c *gin.Context) bool {
	if r.DepositAmount > r.Price {
		apperr.BadRequest(c, "invalid_deposit", "Deposit cannot exceed the price.")
		return false
	}
	return true
}

func (h *ServiceHandler) List(c *gin.Context) {
	var services []models.Service
	err := h.scope.Transaction(c.Request.Context(), func(tx *gorm.DB) error {
		return tx.Order("name ASC").Find(&services).Error
	})
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, "invalid_request", "Request body is invalid.")
		return
	}
	if !req.validate(c) {
		return
	}

	service := models.Service{
		TenantID:      c.MustGet(middleware.ContextTenantID).(uint),
		Name:          req.Name,
		Description:   req.Description,
		DurationMin:   req.DurationMin,
		Price:         req.Price,
		DepositAmount: req.DepositAmount,
		Active:        true,
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	err := h.scope.Transaction(c.Request.Context(), func(tx *gorm.DB) error {
		return tx.Create(&service).Error
	})
	if err != nil {
		apperr.Respond(c, apperr.Internal("service_create_failed", err))
		return
	}

	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, "invalid_request", "Request body is invalid.")
		return
	}
	if !req.validate(c) {
		return
	}

	var service models.Service
	err := h.scope.Transaction(c.Request.Context(), func(tx *gorm.DB) error {
		if err := tx.First(&service, id).Error; err != nil {
			return err
		}
		service.Name = req.Name
		service.Description = req.Description
		service.DurationMin = req.DurationMin
		service.Price = req.Price
		service.DepositAmount = req.DepositAmount
		if req.Active != nil {
			service.Active = *req.Active
		}
		return tx.Save(&service).Error
	})
	if err == gorm.ErrRecordNotFound {
		apperr.Respond(c, apperr.NotFound("service_not_found", "Service not found."))
		return
	}
	if err != nil {
		apperr.Respond(c, apperr.Internal("service_update_failed", err))
		return
	}

	httpresp.OK(c, service)
}
