package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/you/visitorsvc/internal/http/handlers"
	"github.com/you/visitorsvc/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, wh *handlers.WizardHandlers, vh *handlers.VisitorHandlers, ch *handlers.CatalogHandlers, jwtmw *middleware.AuthMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/login", ah.Login)
	auth.GET("/remembered-username", ah.RememberedUsername)

	authed := r.Group("/", jwtmw.WithJWT())

	authed.GET("/auth/me", ah.Me)
	authed.POST("/auth/logout", ah.Logout)

	wiz := authed.Group("/wizard")
	wiz.POST("", wh.Start)
	wiz.GET("/:id", wh.Get)
	wiz.POST("/:id/identify", wh.Identify)
	wiz.POST("/:id/photo", wh.Photo)
	wiz.POST("/:id/profile", wh.Profile)
	wiz.POST("/:id/purpose", wh.Purpose)
	wiz.POST("/:id/branch", wh.Branch)
	wiz.POST("/:id/department", wh.Department)
	wiz.POST("/:id/submit", wh.Submit)
	wiz.GET("/:id/gatepass", wh.GatePass)
	wiz.POST("/:id/cancel", wh.Cancel)

	cat := authed.Group("/catalog")
	cat.GET("/purposes", ch.Purposes)
	cat.GET("/id-proof-types", ch.IDProofTypes)
	cat.GET("/visitor-types", ch.VisitorTypes)
	cat.GET("/vehicle-types", ch.VehicleTypes)
	cat.GET("/branches", ch.Branches)
	cat.GET("/departments", ch.Departments)
	cat.GET("/employees", ch.Employees)

	vis := authed.Group("/visitors")
	vis.GET("", vh.List)
	vis.GET("/:id", vh.Details)
	vis.POST("/:id/checkin", vh.CheckIn)
	vis.POST("/:id/checkout", vh.CheckOut)
	vis.POST("/:id/approve", vh.Approve)
	vis.POST("/:id/reject", vh.Reject)
	vis.POST("/:id/security-update", vh.SecurityUpdate)
	vis.POST("/:id/photo", vh.Photo)

	return r
}
