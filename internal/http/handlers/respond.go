package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/visitorsvc/domain"
)

// Actor reconstructs the authenticated operator from the context values set
// by the auth middleware. Returns nil when the request is unauthenticated.
func Actor(c *gin.Context) *domain.User {
	userID, ok := c.Get("user_id")
	if !ok {
		return nil
	}
	role, ok := c.Get("user_role")
	if !ok {
		return nil
	}
	return &domain.User{UserID: userID.(int), UserRole: role.(string)}
}

// fail maps domain errors onto HTTP statuses. Validation errors carry their
// field map so the client can mark the offending inputs.
func fail(c *gin.Context, err error) {
	if ve, ok := err.(*domain.ValidationError); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "Validation failed",
			"step":   ve.Step.String(),
			"fields": ve.Fields,
		})
		return
	}
	if ue, ok := domain.AsUpstreamError(err); ok {
		msg := ue.Message
		if msg == "" {
			msg = "Upstream request failed"
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": msg})
		return
	}

	switch err {
	case domain.ErrWizardNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Registration session not found"})
	case domain.ErrWizardFinished:
		c.JSON(http.StatusConflict, gin.H{"error": "Registration already completed"})
	case domain.ErrGatePassNotIssued:
		c.JSON(http.StatusConflict, gin.H{"error": "Gate pass not issued yet"})
	case domain.ErrEmployeeNotInHost:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Selected employee does not belong to the chosen branch"})
	case domain.ErrVisitorNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Visitor not found"})
	case domain.ErrInsufficientRole:
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
