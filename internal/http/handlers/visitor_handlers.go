package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/you/visitorsvc/domain"
)

// VisitorHandlers handles the dashboard, gate and approval HTTP requests
type VisitorHandlers struct {
	visitorSvc domain.VisitorService
}

// NewVisitorHandlers creates new visitor handlers
func NewVisitorHandlers(visitorSvc domain.VisitorService) *VisitorHandlers {
	return &VisitorHandlers{visitorSvc: visitorSvc}
}

// SecurityUpdateRequest carries the gate security fields
type SecurityUpdateRequest struct {
	VehicleType   string `json:"vehicle_type"`
	VehicleNumber string `json:"vehicle_number"`
	Material      string `json:"material"`
}

// VisitorPhotoRequest carries a replacement photo
type VisitorPhotoRequest struct {
	ImageString string `json:"image_string" binding:"required"`
}

func visitorID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid visitor id"})
		return 0, false
	}
	return id, true
}

// List returns visitors within a date range. Defaults to today when the
// range is omitted.
func (h *VisitorHandlers) List(c *gin.Context) {
	actor := Actor(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	now := time.Now()
	from, to := now, now
	var err error
	if v := c.Query("from"); v != "" {
		if from, err = time.Parse("2006-01-02", v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date, expected YYYY-MM-DD"})
			return
		}
	}
	if v := c.Query("to"); v != "" {
		if to, err = time.Parse("2006-01-02", v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date, expected YYYY-MM-DD"})
			return
		}
	}

	items, err := h.visitorSvc.List(c.Request.Context(), actor, from, to)
	if err != nil {
		fail(c, err)
		return
	}
	// Contact numbers are masked for display; the full number never leaves
	// the backend through this screen.
	for i := range items {
		items[i].ContactNumber = domain.MaskContact(items[i].ContactNumber)
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

// Details returns a single visitor by pass id, with the display projection
// the detail screen needs: masked ID number and whether the pass is inside
// its validity window right now.
func (h *VisitorHandlers) Details(c *gin.Context) {
	visitor, err := h.visitorSvc.Details(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	visitor.IDProofNumber = domain.MaskIDNumber(visitor.IDProofNumber)
	c.JSON(http.StatusOK, gin.H{
		"data":            visitor,
		"within_validity": domain.WithinValidity(visitor.FromDate, visitor.ToDate, time.Now()),
	})
}

func (h *VisitorHandlers) outcome(c *gin.Context, o *domain.ActionOutcome, err error) {
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"confirmed": o.Confirmed,
			"message":   o.Message,
		},
	})
}

// CheckIn records a gate entry for a scanned pass
func (h *VisitorHandlers) CheckIn(c *gin.Context) {
	actor := Actor(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	o, err := h.visitorSvc.CheckIn(c.Request.Context(), actor, c.Param("id"))
	h.outcome(c, o, err)
}

// CheckOut records a gate exit for a scanned pass
func (h *VisitorHandlers) CheckOut(c *gin.Context) {
	actor := Actor(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	o, err := h.visitorSvc.CheckOut(c.Request.Context(), actor, c.Param("id"))
	h.outcome(c, o, err)
}

// Approve confirms a pending visit
func (h *VisitorHandlers) Approve(c *gin.Context) {
	actor := Actor(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	id, ok := visitorID(c)
	if !ok {
		return
	}
	o, err := h.visitorSvc.Approve(c.Request.Context(), actor, id)
	h.outcome(c, o, err)
}

// Reject declines a pending visit
func (h *VisitorHandlers) Reject(c *gin.Context) {
	actor := Actor(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	id, ok := visitorID(c)
	if !ok {
		return
	}
	o, err := h.visitorSvc.Reject(c.Request.Context(), actor, id)
	h.outcome(c, o, err)
}

// SecurityUpdate records vehicle and material details at the gate
func (h *VisitorHandlers) SecurityUpdate(c *gin.Context) {
	actor := Actor(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	id, ok := visitorID(c)
	if !ok {
		return
	}
	var req SecurityUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	o, err := h.visitorSvc.UpdateBySecurity(c.Request.Context(), actor, id, req.VehicleType, req.VehicleNumber, req.Material)
	h.outcome(c, o, err)
}

// Photo uploads a replacement visitor photo
func (h *VisitorHandlers) Photo(c *gin.Context) {
	id, ok := visitorID(c)
	if !ok {
		return
	}
	var req VisitorPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	o, err := h.visitorSvc.AddPhoto(c.Request.Context(), id, req.ImageString)
	h.outcome(c, o, err)
}
