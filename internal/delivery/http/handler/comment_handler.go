package handler

import (
	"net/http"

	"turf-booking/internal/usecase/comment"
	"turf-booking/pkg/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	service *comment.Service
}

func NewCommentHandler(service *comment.Service) *CommentHandler {
	return &CommentHandler{service: service}
}

func (h *CommentHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/comments/:id", h.ListVisible)
}

func (h *CommentHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	comments := router.Group("/comments")
	{
		comments.GET("/:id/all", h.ListAll)
		comments.POST("", h.Create)
		comments.PUT("/:id", h.Update)
		comments.DELETE("/:id", h.Delete)
		comments.PUT("/:id/moderate", h.Moderate)
		comments.DELETE("/:id/admin", h.AdminDelete)
	}
}

func (h *CommentHandler) ListVisible(c *gin.Context) {
	turfID, ok := pathID(c, "id", "turf")
	if !ok {
		return
	}

	comments, err := h.service.ListVisible(c.Request.Context(), turfID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"comments": comments})
}

func (h *CommentHandler) ListAll(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	turfID, ok := pathID(c, "id", "turf")
	if !ok {
		return
	}

	comments, err := h.service.ListAll(c.Request.Context(), callerID, turfID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"comments": comments})
}

func (h *CommentHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req comment.CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Comment added successfully", gin.H{"comment": created})
}

// Update is restricted to the author; admins moderate instead.
func (h *CommentHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "id", "comment")
	if !ok {
		return
	}

	var req comment.UpdateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), userID, commentID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Comment updated successfully", gin.H{"comment": updated})
}

func (h *CommentHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "id", "comment")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, commentID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Comment deleted successfully", nil)
}

func (h *CommentHandler) Moderate(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "id", "comment")
	if !ok {
		return
	}

	var req comment.ModerateRequest
	if !bindJSON(c, &req) {
		return
	}

	moderated, err := h.service.Moderate(c.Request.Context(), callerID, commentID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Comment moderated successfully", gin.H{"comment": moderated})
}

func (h *CommentHandler) AdminDelete(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "id", "comment")
	if !ok {
		return
	}

	if err := h.service.AdminDelete(c.Request.Context(), callerID, commentID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Comment deleted by admin successfully", nil)
}
