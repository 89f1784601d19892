package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/visitorsvc/domain"
)

// CatalogHandlers serves the dropdown catalogs. Responses are always 200
// with a list; upstream outages degrade to empty lists.
type CatalogHandlers struct {
	catalogSvc domain.CatalogService
}

// NewCatalogHandlers creates new catalog handlers
func NewCatalogHandlers(catalogSvc domain.CatalogService) *CatalogHandlers {
	return &CatalogHandlers{catalogSvc: catalogSvc}
}

func list(c *gin.Context, opts []domain.Option) {
	c.JSON(http.StatusOK, gin.H{"data": opts})
}

// Purposes returns the visit purpose catalog
func (h *CatalogHandlers) Purposes(c *gin.Context) {
	list(c, h.catalogSvc.Purposes(c.Request.Context()))
}

// IDProofTypes returns the ID proof type catalog
func (h *CatalogHandlers) IDProofTypes(c *gin.Context) {
	list(c, h.catalogSvc.IDProofTypes(c.Request.Context()))
}

// VisitorTypes returns the visitor type catalog
func (h *CatalogHandlers) VisitorTypes(c *gin.Context) {
	list(c, h.catalogSvc.VisitorTypes(c.Request.Context()))
}

// VehicleTypes returns the vehicle type catalog
func (h *CatalogHandlers) VehicleTypes(c *gin.Context) {
	list(c, h.catalogSvc.VehicleTypes(c.Request.Context()))
}

// Branches returns the branch catalog
func (h *CatalogHandlers) Branches(c *gin.Context) {
	list(c, h.catalogSvc.Branches(c.Request.Context()))
}

// Departments returns departments for the branch in the query string
func (h *CatalogHandlers) Departments(c *gin.Context) {
	branchID := c.Query("branchId")
	if branchID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "branchId is required"})
		return
	}
	list(c, h.catalogSvc.Departments(c.Request.Context(), branchID))
}

// Employees returns employees for the branch and optional department
func (h *CatalogHandlers) Employees(c *gin.Context) {
	branchID := c.Query("branchId")
	if branchID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "branchId is required"})
		return
	}
	list(c, h.catalogSvc.Employees(c.Request.Context(), branchID, c.Query("departmentId")))
}
