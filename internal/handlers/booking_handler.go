package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/agendahub/scheduler/internal/apperr"
	"github.com/agendahub/scheduler/internal/dto"
	"github.com/agendahub/scheduler/internal/httpresp"
	"github.com/agendahub/scheduler/internal/middleware"
	ucBooking "github.com/agendahub/scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	createUC   *ucBooking.CreateBooking
	cancelUC   *ucBooking.CancelBooking
	completeUC *ucBooking.CompleteBooking
	noShowUC   *ucBooking.MarkNoShow
	lookupUC   *ucBooking.LookupBookingByReference
	listUC     *ucBooking.ListBookingsByDate
}

func NewBookingHandler(
	createUC *ucBooking.CreateBooking,
	cancelUC *ucBooking.CancelBooking,
	completeUC *ucBooking.CompleteBooking,
	noShowUC *ucBooking.MarkNoShow,
	lookupUC *ucBooking.LookupBookingByReference,
	listUC *ucBooking.ListBookingsByDate,
) *BookingHandler {
	return &BookingHandler{
		createUC:   createUC,
		cancelUC:   cancelUC,
		completeUC: completeUC,
		noShowUC:   noShowUC,
		lookupUC:   lookupUC,
		listUC:     listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	CustomerID    uint   `json:"customer_id"`
	ResourceID    uint   `json:"resource_id" binding:"required"`
	ServiceID     uint   `json:"service_id" binding:"required"`
	Date          string `json:"date" binding:"required"`
	Time          string `json:"time" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required"`
	Notes         string `json:"notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, "invalid_request", "Request body is invalid.")
		return
	}

	customerID := req.CustomerID
	if customerID == 0 {
		// Authenticated customers book for themselves.
		if id, ok := c.Get(middleware.ContextCustomerID); ok {
			customerID, _ = id.(uint)
		}
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		CustomerID:    customerID,
		ResourceID:    req.ResourceID,
		ServiceID:     req.ServiceID,
		Date:          req.Date,
		Time:          req.Time,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	})
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	httpresp.Created(c, b)
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	b, err := h.cancelUC.Execute(c.Request.Context(), id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	httpresp.OK(c, b)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	b, err := h.completeUC.Execute(c.Request.Context(), id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	httpresp.OK(c, b)
}

func (h *BookingHandler) NoShow(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	b, err := h.noShowUC.Execute(c.Request.Context(), id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	httpresp.OK(c, b)
}

// ======================================================
// LOOKUP / LIST
// ======================================================

func (h *BookingHandler) LookupByReference(c *gin.Context) {
	b, err := h.lookupUC.Execute(c.Request.Context(), c.Param("reference"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	httpresp.OK(c, b)
}

func (h *BookingHandler) ListByDate(c *gin.Context) {
	resourceID, err := strconv.ParseUint(c.Query("resource_id"), 10, 64)
	if err != nil {
		apperr.BadRequest(c, "invalid_resource_id", "resource_id is invalid.")
		return
	}

	bookings, err := h.listUC.Execute(c.Request.Context(), uint(resourceID), c.Query("date"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, dto.BookingListDTO{
			ID:            b.ID,
			Reference:     b.Reference,
			StartTime:     b.StartTime,
			EndTime:       b.EndTime,
			Status:        b.Status,
			PaymentStatus: b.PaymentStatus,
			CustomerID:    b.CustomerID,
			ServiceID:     b.ServiceID,
		})
	}

	httpresp.List(c, out)
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperr.BadRequest(c, "invalid_id", "Identifier is invalid.")
		return 0, false
	}
	return uint(id), true
}
