package handler

import (
	"net/http"
	"strconv"

	"github.com/farefinder/service-fares/internal/application"
	"github.com/farefinder/service-fares/internal/auth"
	"github.com/farefinder/service-fares/internal/middleware"
	"github.com/farefinder/service-fares/internal/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProfileHandler handles HTTP requests for profile data, preferences, saved
// addresses and search history.
type ProfileHandler struct {
	service *application.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(service *application.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// RegisterRoutes registers all profile routes on the given router group.
func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	profile := r.Group("/api/v1/profile")
	profile.Use(middleware.AuthMiddleware(jwtManager))
	{
		profile.GET("", h.GetInfo)
		profile.PUT("", h.UpdateInfo)
		profile.GET("/preferences", h.GetPreferences)
		profile.PUT("/preferences", h.UpdatePreferences)
		profile.GET("/addresses", h.ListAddresses)
		profile.POST("/addresses", h.AddAddress)
		profile.DELETE("/addresses/:id", h.DeleteAddress)
		profile.GET("/history", h.GetHistory)
	}
}

// GetInfo handles GET /api/v1/profile.
func (h *ProfileHandler) GetInfo(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	info, err := h.service.GetInfo(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, info)
}

// UpdateInfo handles PUT /api/v1/profile.
func (h *ProfileHandler) UpdateInfo(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.UpdateInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	info, err := h.service.UpdateInfo(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, info)
}

// GetPreferences handles GET /api/v1/profile/preferences.
func (h *ProfileHandler) GetPreferences(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	prefs, err := h.service.GetPreferences(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, prefs)
}

// UpdatePreferences handles PUT /api/v1/profile/preferences.
func (h *ProfileHandler) UpdatePreferences(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	prefs, err := h.service.UpdatePreferences(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, prefs)
}

// ListAddresses handles GET /api/v1/profile/addresses.
func (h *ProfileHandler) ListAddresses(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	addresses, err := h.service.ListSavedAddresses(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, addresses)
}

// AddAddress handles POST /api/v1/profile/addresses.
func (h *ProfileHandler) AddAddress(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.AddAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	addr, err := h.service.AddSavedAddress(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, addr)
}

// DeleteAddress handles DELETE /api/v1/profile/addresses/:id.
func (h *ProfileHandler) DeleteAddress(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid address ID")
		return
	}

	if err := h.service.DeleteSavedAddress(c.Request.Context(), userID, addressID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "address deleted"})
}

// GetHistory handles GET /api/v1/profile/history.
func (h *ProfileHandler) GetHistory(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}

	history, err := h.service.GetHistory(c.Request.Context(), userID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, history)
}
