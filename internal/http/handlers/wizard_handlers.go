package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/visitorsvc/domain"
)

// WizardHandlers handles the registration wizard HTTP requests. Each step
// endpoint returns the full form state so the client never diverges from the
// server-side record.
type WizardHandlers struct {
	wizardSvc domain.WizardService
}

// NewWizardHandlers creates new wizard handlers
func NewWizardHandlers(wizardSvc domain.WizardService) *WizardHandlers {
	return &WizardHandlers{wizardSvc: wizardSvc}
}

// IdentifyRequest carries the mobile number for the first step
type IdentifyRequest struct {
	Mobile string `json:"mobile"`
}

// PhotoRequest carries the captured photo reference. An empty ref is valid
// when the lookup already supplied a profile photo; the capture-step
// validator decides.
type PhotoRequest struct {
	PhotoRef string `json:"photo_ref"`
}

// ProfileRequest carries the editable profile and ID proof fields
type ProfileRequest struct {
	Name             string  `json:"name"`
	Company          string  `json:"company"`
	Address          string  `json:"address"`
	IDProofID        string  `json:"id_proof_id"`
	IDProofType      string  `json:"id_proof_type"`
	IDProofNumber    string  `json:"id_proof_number"`
	IDProofImage     *string `json:"id_proof_image"`
	IDProofBackImage *string `json:"id_proof_back_image"`
}

// PurposeRequest carries the visit purpose selection
type PurposeRequest struct {
	Purpose string `json:"purpose"`
}

// BranchRequest carries the branch selection; empty clears it
type BranchRequest struct {
	BranchID string `json:"branch_id"`
}

// DepartmentRequest carries the department selection; empty clears it
type DepartmentRequest struct {
	DepartmentID string `json:"department_id"`
}

// SubmitRequest carries the host employee selection for the final step
type SubmitRequest struct {
	EmployeeID string `json:"employee_id"`
}

// Start opens a new registration session
func (h *WizardHandlers) Start(c *gin.Context) {
	form, err := h.wizardSvc.Start(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": form})
}

// Get returns the current form state
func (h *WizardHandlers) Get(c *gin.Context) {
	form, err := h.wizardSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": form})
}

// Identify validates the mobile number and runs the returning-visitor lookup
func (h *WizardHandlers) Identify(c *gin.Context) {
	var req IdentifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form, outcome, err := h.wizardSvc.SubmitIdentify(c.Request.Context(), c.Param("id"), req.Mobile)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"form":   form,
			"lookup": string(outcome),
		},
	})
}

// Photo attaches the captured visitor photo
func (h *WizardHandlers) Photo(c *gin.Context) {
	var req PhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form, err := h.wizardSvc.AttachPhoto(c.Request.Context(), c.Param("id"), req.PhotoRef)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": form})
}

// Profile submits the profile and ID proof step
func (h *WizardHandlers) Profile(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form, err := h.wizardSvc.SubmitProfile(c.Request.Context(), c.Param("id"), domain.ProfileInput{
		Name:             req.Name,
		Company:          req.Company,
		Address:          req.Address,
		IDProofID:        req.IDProofID,
		IDProofType:      req.IDProofType,
		IDProofNumber:    req.IDProofNumber,
		IDProofImage:     req.IDProofImage,
		IDProofBackImage: req.IDProofBackImage,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": form})
}

// Purpose submits the visit purpose step
func (h *WizardHandlers) Purpose(c *gin.Context) {
	var req PurposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form, err := h.wizardSvc.SubmitPurpose(c.Request.Context(), c.Param("id"), req.Purpose)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": form})
}

// Branch selects a branch and returns the refreshed dependent lists
func (h *WizardHandlers) Branch(c *gin.Context) {
	var req BranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form, cascade, err := h.wizardSvc.SelectBranch(c.Request.Context(), c.Param("id"), req.BranchID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"form":        form,
			"departments": cascade.Departments,
			"employees":   cascade.Employees,
		},
	})
}

// Department selects a department and returns the refreshed employee list
func (h *WizardHandlers) Department(c *gin.Context) {
	var req DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form, cascade, err := h.wizardSvc.SelectDepartment(c.Request.Context(), c.Param("id"), req.DepartmentID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"form":      form,
			"employees": cascade.Employees,
		},
	})
}

// Submit sets the host employee and sends the registration upstream
func (h *WizardHandlers) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := Actor(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	form, err := h.wizardSvc.SubmitHost(c.Request.Context(), c.Param("id"), req.EmployeeID, actor.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": form})
}

// GatePass returns the issued pass for a completed registration
func (h *WizardHandlers) GatePass(c *gin.Context) {
	pass, err := h.wizardSvc.GatePass(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": pass})
}

// Cancel discards the registration session
func (h *WizardHandlers) Cancel(c *gin.Context) {
	if err := h.wizardSvc.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "Registration cancelled",
		},
	})
}
