package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/agendahub/scheduler/internal/apperr"
	"github.com/agendahub/scheduler/internal/httpresp"
	ucBooking "github.com/agendahub/scheduler/internal/usecase/booking"
)

type AvailabilityHandler struct {
	availabilityUC *ucBooking.GetAvailability
}

func NewAvailabilityHandler(availabilityUC *ucBooking.GetAvailability) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityUC: availabilityUC}
}

// GetSlots serves both the authenticated and the public (slug-resolved)
// routes: by the time it runs, the tenant is already on the request context.
func (h *AvailabilityHandler) GetSlots(c *gin.Context) {
	resourceID, err := strconv.ParseUint(c.Query("resource_id"), 10, 64)
	if err != nil {
		apperr.BadRequest(c, "invalid_resource_id", "resource_id is invalid.")
		return
	}

	serviceID, err := strconv.ParseUint(c.Query("service_id"), 10, 64)
	if err != nil {
		apperr.BadRequest(c, "invalid_service_id", "service_id is invalid.")
		return
	}

	slots, err := h.availabilityUC.Execute(c.Request.Context(), ucBooking.GetAvailabilityInput{
		ResourceID: uint(resourceID),
		ServiceID:  uint(serviceID),
		Date:       c.Query("date"),
	})
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	httpresp.List(c, slots)
}
