package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"turf-booking/internal/usecase/turf"
	"turf-booking/pkg/utils"

	"github.com/gin-gonic/gin"
)

type TurfHandler struct {
	service *turf.Service
}

func NewTurfHandler(service *turf.Service) *TurfHandler {
	return &TurfHandler{service: service}
}

func (h *TurfHandler) RegisterRoutes(router *gin.RouterGroup) {
	turfs := router.Group("/turfs")
	{
		turfs.GET("", h.List)
		turfs.GET("/:id", h.Get)
	}
}

func (h *TurfHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	turfs := router.Group("/turfs")
	{
		turfs.POST("", h.Create)
		turfs.PUT("/:id", h.Update)
		turfs.DELETE("/:id", h.Delete)
	}
}

func (h *TurfHandler) List(c *gin.Context) {
	turfs, err := h.service.List(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"turfs": turfs})
}

func (h *TurfHandler) Get(c *gin.Context) {
	turfID, ok := pathID(c, "id", "turf")
	if !ok {
		return
	}

	t, err := h.service.Get(c.Request.Context(), turfID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"turf": t})
}

func (h *TurfHandler) Create(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req turf.CreateTurfRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	image, ok := optionalImage(c)
	if !ok {
		return
	}

	created, err := h.service.Create(c.Request.Context(), callerID, &req, image)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Turf created successfully", gin.H{"turf": created})
}

func (h *TurfHandler) Update(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	turfID, ok := pathID(c, "id", "turf")
	if !ok {
		return
	}

	var req turf.UpdateTurfRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	image, ok := optionalImage(c)
	if !ok {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), callerID, turfID, &req, image)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Turf updated successfully", gin.H{"turf": updated})
}

func (h *TurfHandler) Delete(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	turfID, ok := pathID(c, "id", "turf")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), callerID, turfID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Turf deleted successfully", nil)
}

// optionalImage returns the "image" form file, or nil when the request has
// none (including plain JSON bodies).
func optionalImage(c *gin.Context) (*multipart.FileHeader, bool) {
	image, err := c.FormFile("image")
	switch {
	case err == nil:
		return image, true
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return nil, true
	default:
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid image upload")
		return nil, false
	}
}
