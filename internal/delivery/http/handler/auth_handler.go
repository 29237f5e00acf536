package handler

import (
	"net/http"

	"turf-booking/internal/usecase/user"
	"turf-booking/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service *user.Service
}

func NewAuthHandler(service *user.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)
	}
}

func (h *AuthHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.GET("/profile", h.GetProfile)
		auth.PUT("/profile", h.UpdateProfile)

		auth.GET("/favorites", h.ListFavorites)
		auth.POST("/favorites/:turfId", h.AddFavorite)
		auth.DELETE("/favorites/:turfId", h.RemoveFavorite)

		auth.GET("/users", h.ListUsers)
		auth.PUT("/users/:id/status", h.UpdateUserStatus)
		auth.DELETE("/users/:id", h.DeleteUser)
	}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req user.SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, err := h.service.Signup(c.Request.Context(), &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "User registered successfully", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", gin.H{
		"token":     resp.Token,
		"expiresAt": resp.ExpiresAt,
		"user":      resp.User,
	})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req user.ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Reset email sent", nil)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req user.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Password reset successful", nil)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"user": profile})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req user.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile updated successfully", gin.H{"user": profile})
}

func (h *AuthHandler) ListFavorites(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	favorites, err := h.service.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"favorites": favorites})
}

func (h *AuthHandler) AddFavorite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	turfID, ok := pathID(c, "turfId", "turf")
	if !ok {
		return
	}

	favorites, err := h.service.AddFavorite(c.Request.Context(), userID, turfID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Turf added to favorites", gin.H{"favorites": favorites})
}

func (h *AuthHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	turfID, ok := pathID(c, "turfId", "turf")
	if !ok {
		return
	}

	favorites, err := h.service.RemoveFavorite(c.Request.Context(), userID, turfID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Turf removed from favorites", gin.H{"favorites": favorites})
}

func (h *AuthHandler) ListUsers(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}

	users, err := h.service.ListUsers(c.Request.Context(), callerID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"users": users})
}

func (h *AuthHandler) UpdateUserStatus(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	targetID, ok := pathID(c, "id", "user")
	if !ok {
		return
	}

	var req user.UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.service.UpdateUserStatus(c.Request.Context(), callerID, targetID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User status updated successfully", gin.H{"user": updated})
}

func (h *AuthHandler) DeleteUser(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	targetID, ok := pathID(c, "id", "user")
	if !ok {
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), callerID, targetID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User deleted successfully", nil)
}
