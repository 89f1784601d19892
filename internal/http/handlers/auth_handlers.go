package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/visitorsvc/domain"
)

// AuthHandlers handles operator authentication HTTP requests
type AuthHandlers struct {
	authSvc domain.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

// LoginRequest represents login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Remember bool   `json:"remember"`
	DeviceID string `json:"device_id"`
}

// Login handles operator login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Username, req.Password, req.Remember, req.DeviceID)
	if err != nil {
		if ue, ok := domain.AsUpstreamError(err); ok {
			msg := ue.Message
			if msg == "" {
				msg = "Invalid credentials"
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}
		if err == domain.ErrInvalidCredentials {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"access_token": result.AccessToken,
			"token_type":   "Bearer",
			"expires_in":   result.ExpiresIn,
			"user": gin.H{
				"id":   result.User.UserID,
				"name": result.User.UserName,
				"role": result.User.UserRole,
			},
		},
	})
}

// Logout handles operator logout (requires authentication)
func (h *AuthHandlers) Logout(c *gin.Context) {
	sessionID, exists := c.Get("session_id")
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session ID not found"})
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), sessionID.(string)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "Logged out successfully",
		},
	})
}

// Me returns the authenticated operator (requires authentication)
func (h *AuthHandlers) Me(c *gin.Context) {
	actor := Actor(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"id":   actor.UserID,
			"role": actor.UserRole,
		},
	})
}

// RememberedUsername returns the stored login name for a device, if any
func (h *AuthHandlers) RememberedUsername(c *gin.Context) {
	deviceID := c.Query("device_id")
	if deviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "device_id is required"})
		return
	}

	username, err := h.authSvc.RememberedUsername(c.Request.Context(), deviceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read remembered username"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"username": username,
		},
	})
}
