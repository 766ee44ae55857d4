package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/agendahub/scheduler/internal/apperr"
	"github.com/agendahub/scheduler/internal/config"
	"github.com/agendahub/scheduler/internal/httpresp"
	"github.com/agendahub/scheduler/internal/models"
	"github.com/agendahub/scheduler/internal/tenant"
	"github.com/agendahub/scheduler/internal/validators"
)

type AuthHandler struct {
	db    *gorm.DB
	scope *tenant.Scope
	cfg   *config.Config
}

func NewAuthHandler(db *gorm.DB, scope *tenant.Scope, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, scope: scope, cfg: cfg}
}

type LoginRequest struct {
	TenantSlug string `json:"tenant_slug" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	TenantSlug string `json:"tenant_slug" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Phone      string `json:"phone"`
	Password   string `json:"password" binding:"required,min=8"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, "invalid_request", "Request body is invalid.")
		return
	}

	tn, ok := h.tenantBySlug(c, req.TenantSlug)
	if !ok {
		return
	}

	ctx := tenant.WithTenant(c.Request.Context(), tn.ID)

	var customer models.Customer
	err := h.scope.Transaction(ctx, func(tx *gorm.DB) error {
		return tx.Where("email = ? AND guest = false", req.Email).First(&customer).Error
	})
	if err != nil {
		apperr.Unauthorized(c, "invalid_credentials", "Email or password is incorrect.")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(req.Password)) != nil {
		apperr.Unauthorized(c, "invalid_credentials", "Email or password is incorrect.")
		return
	}

	token, err := h.issueToken(customer.ID, tn.ID, "customer")
	if err != nil {
		apperr.Respond(c, apperr.Internal("token_issue_failed", err))
		return
	}

	c.JSON(200, gin.H{"token": token})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, "invalid_request", "Request body is invalid.")
		return
	}

	if !validators.IsEmailDomainValid(req.Email) {
		apperr.BadRequest(c, "invalid_email", "Email domain is invalid.")
		return
	}

	tn, ok := h.tenantBySlug(c, req.TenantSlug)
	if !ok {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		apperr.Respond(c, apperr.Internal("hash_failed", err))
		return
	}

	customer := models.Customer{
		TenantID:     tn.ID,
		Reference:    uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Guest:        false,
	}

	ctx := tenant.WithTenant(c.Request.Context(), tn.ID)
	err = h.scope.Transaction(ctx, func(tx *gorm.DB) error {
		return tx.Create(&customer).Error
	})
	if err != nil {
		apperr.Respond(c, apperr.Internal("customer_create_failed", err))
		return
	}

	httpresp.Created(c, customer)
}

func (h *AuthHandler) tenantBySlug(c *gin.Context, slug string) (*models.Tenant, bool) {
	var tn models.Tenant
	if err := h.db.WithContext(c.Request.Context()).
		Where("slug = ?", slug).
		First(&tn).Error; err != nil {
		apperr.Respond(c, apperr.NotFound("tenant_not_found", "Tenant not found."))
		return nil, false
	}
	return &tn, true
}

func (h *AuthHandler) issueToken(customerID, tenantID uint, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":      float64(customerID),
		"tenantId": float64(tenantID),
		"role":     role,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}
