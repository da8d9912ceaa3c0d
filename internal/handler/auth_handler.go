package handler

import (
	"net/http"

	"github.com/farefinder/service-fares/internal/application"
	"github.com/farefinder/service-fares/internal/auth"
	"github.com/farefinder/service-fares/internal/middleware"
	"github.com/farefinder/service-fares/internal/response"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles HTTP requests for registration, login and sessions.
type AuthHandler struct {
	service    *application.AccountService
	jwtManager *auth.JWTManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service *application.AccountService, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{service: service, jwtManager: jwtManager}
}

// RegisterRoutes registers all auth routes on the given router group.
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	accounts := r.Group("/api/v1/auth")
	{
		accounts.POST("/register", h.Register)
		accounts.POST("/login", h.Login)
		accounts.POST("/logout", h.Logout)
		accounts.GET("/me", authMW, h.Me)
		accounts.POST("/password", authMW, h.ChangePassword)
	}
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req application.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSessionCookie(c, session.Token)
	response.Created(c, session)
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req application.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSessionCookie(c, session.Token)
	response.Success(c, session)
}

// Logout handles POST /api/v1/auth/logout. It clears the session cookie; the
// token itself simply expires.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(auth.SessionCookieName, "", -1, "/", "", false, true)
	response.Success(c, gin.H{"message": "logged out"})
}

// Me handles GET /api/v1/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	usr, err := h.service.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, usr)
}

// ChangePassword handles POST /api/v1/auth/password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), userID, req); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "password changed"})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	maxAge := int(h.jwtManager.SessionTTL().Seconds())
	c.SetCookie(auth.SessionCookieName, token, maxAge, "/", "", false, true)
}
