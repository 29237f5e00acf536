package handler

import (
	"net/http"

	"turf-booking/internal/usecase/payment"
	"turf-booking/pkg/utils"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	service *payment.Service
}

func NewPaymentHandler(service *payment.Service) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) RegisterRoutes(router *gin.RouterGroup) {
	payments := router.Group("/payments")
	{
		payments.POST("/process", h.Process)
		payments.GET("/status/:bookingId", h.Status)
	}
}

func (h *PaymentHandler) Process(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req payment.ProcessPaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	paid, err := h.service.Process(c.Request.Context(), userID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Payment processed successfully! Receipt sent to your email.", gin.H{"booking": paid})
}

func (h *PaymentHandler) Status(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	bookingID, ok := pathID(c, "bookingId", "booking")
	if !ok {
		return
	}

	status, err := h.service.GetStatus(c.Request.Context(), userID, bookingID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}
