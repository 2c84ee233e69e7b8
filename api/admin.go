package api

import (
	"net/http"

	"github.com/Domenick1991/airbooking-admin/internal/service/admin"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	service admin.AdminUseCase
}

func NewAdminHandler(service admin.AdminUseCase) *AdminHandler {
	return &AdminHandler{service: service}
}

func (h *AdminHandler) Register(router *gin.RouterGroup) {
	router.GET("/bookings", h.getBooking)
	router.GET("/seats", h.getSeats)
	router.GET("/seats/availability", h.getCabinAvailability)
	router.POST("/payments", h.processPayment)
	router.POST("/bookings/delete", h.deleteBookings)
}

// Every action responds 200 with the uniform result envelope; failures are
// data, not transport errors. Authorization failures never reach here, the
// gate redirects first.

func (h *AdminHandler) getBooking(c *gin.Context) {
	reference := c.Query("reference")
	res := h.service.GetBooking(c.Request.Context(), reference)
	c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) getSeats(c *gin.Context) {
	flightID := c.Query("flight_id")
	cabinClass := c.Query("cabin_class")
	res := h.service.GetSeats(c.Request.Context(), flightID, cabinClass)
	c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) getCabinAvailability(c *gin.Context) {
	flightID := c.Query("flight_id")
	cabinClass := c.Query("cabin_class")
	res := h.service.GetCabinAvailability(c.Request.Context(), flightID, cabinClass)
	c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) processPayment(c *gin.Context) {
	bookingID := c.PostForm("booking_id")
	method := c.PostForm("payment_method")
	res := h.service.ProcessPayment(c.Request.Context(), bookingID, method)
	c.JSON(http.StatusOK, res)
}

// deleteBookings takes the ID set as a JSON-encoded array inside a single
// form field; the service owns the parse-then-validate split.
func (h *AdminHandler) deleteBookings(c *gin.Context) {
	raw := c.PostForm("booking_ids")
	res := h.service.DeleteBookings(c.Request.Context(), raw)
	c.JSON(http.StatusOK, res)
}
