package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agendahub/scheduler/internal/apperr"
	"github.com/agendahub/scheduler/internal/httpresp"
	"github.com/agendahub/scheduler/internal/middleware"
	"github.com/agendahub/scheduler/internal/models"
	"github.com/agendahub/scheduler/internal/tenant"
)

type CustomerHandler struct {
	scope *tenant.Scope
}

func NewCustomerHandler(scope *tenant.Scope) *CustomerHandler {
	return &CustomerHandler{scope: scope}
}

type GuestCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email"`
}

func (h *CustomerHandler) List(c *gin.Context) {
	var customers []models.Customer
	err := h.scope.Transaction(c.Request.Context(), func(tx *gorm.DB) error {
		return tx.Order("name ASC").Find(&customers).Error
	})
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	httpresp.List(c, customers)
}

// CreateGuest finds or creates a guest customer by phone, the walk-in flow:
// staff book on behalf of customers who have no account.
func (h *CustomerHandler) CreateGuest(c *gin.Context) {
	var req GuestCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, "invalid_request", "Request body is invalid.")
		return
	}

	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var customer models.Customer
	err := h.scope.Transaction(c.Request.Context(), func(tx *gorm.DB) error {
		err := tx.Where("phone = ?", req.Phone).First(&customer).Error
		if err == nil {
			return nil
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		customer = models.Customer{
			TenantID:  tenantID,
			Reference: uuid.NewString(),
			Name:      req.Name,
			Phone:     req.Phone,
			Email:     req.Email,
			Guest:     true,
		}
		return tx.Create(&customer).Error
	})
	if err != nil {
		apperr.Respond(c, apperr.Internal("customer_create_failed", err))
		return
	}

	httpresp.OK(c, customer)
}
