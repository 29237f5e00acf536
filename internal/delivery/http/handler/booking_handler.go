package handler

import (
	"fmt"
	"net/http"

	"turf-booking/internal/usecase/booking"
	"turf-booking/pkg/utils"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service *booking.Service
}

func NewBookingHandler(service *booking.Service) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) RegisterRoutes(router *gin.RouterGroup) {
	bookings := router.Group("/bookings")
	{
		bookings.POST("/create", h.Create)
		bookings.GET("/user", h.ListMine)
		bookings.GET("/all", h.ListAll)
		bookings.PUT("/status/:id", h.UpdateStatus)
		bookings.PUT("/cancel/:id", h.Cancel)
	}
}

func (h *BookingHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req booking.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Booking request submitted successfully!", gin.H{"booking": created})
}

func (h *BookingHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	bookings, err := h.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"bookings": bookings})
}

// ListAll accepts optional status and turfId query filters.
func (h *BookingHandler) ListAll(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}

	filter := booking.ListFilter{
		Status: c.Query("status"),
		TurfID: c.Query("turfId"),
	}

	bookings, err := h.service.ListAll(c.Request.Context(), callerID, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"bookings": bookings})
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	bookingID, ok := pathID(c, "id", "booking")
	if !ok {
		return
	}

	var req booking.UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.service.UpdateStatus(c.Request.Context(), callerID, bookingID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	message := fmt.Sprintf("Booking %s successfully!", updated.Status)
	utils.SuccessResponse(c, http.StatusOK, message, gin.H{"booking": updated})
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	bookingID, ok := pathID(c, "id", "booking")
	if !ok {
		return
	}

	cancelled, err := h.service.Cancel(c.Request.Context(), userID, bookingID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Booking cancelled successfully!", gin.H{"booking": cancelled})
}
