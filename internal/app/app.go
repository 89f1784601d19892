package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/you/visitorsvc/internal/config"
	httpx "github.com/you/visitorsvc/internal/http"
	"github.com/you/visitorsvc/internal/http/handlers"
	"github.com/you/visitorsvc/internal/http/middleware"
)

// Default role policies, seeded when the policy file ships empty. Authority
// approves, security works the gate, reception does both lists and scans.
var defaultPolicies = [][]string{
	{"role_Admin", "visitor", "(list|approve|reject|checkin|checkout|security_update)"},
	{"role_Authority", "visitor", "(list|approve|reject)"},
	{"role_Security", "visitor", "(list|checkin|checkout|security_update)"},
	{"role_Reception", "visitor", "(list|checkin|checkout)"},
	{"role_Employee", "visitor", "list"},
}

func Run(cfg *config.Config) error {
	gin.SetMode(cfg.GinMode)

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	policies, _ := c.Casbin.E.GetPolicy()
	if len(policies) == 0 {
		for _, p := range defaultPolicies {
			c.Casbin.E.AddPolicy(p[0], p[1], p[2])
		}
		_ = c.Casbin.E.SavePolicy()
		log.Info("casbin: seeded default policies")
	}

	authH := handlers.NewAuthHandlers(c.AuthSvc)
	wizardH := handlers.NewWizardHandlers(c.WizardSvc)
	visitorH := handlers.NewVisitorHandlers(c.VisitorSvc)
	catalogH := handlers.NewCatalogHandlers(c.CatalogSvc)

	jwtMW := middleware.NewAuthMW(c.TokenSvc, c.SessionRepo)

	r := httpx.BuildRouter(authH, wizardH, visitorH, catalogH, jwtMW)

	addr := ":" + cfg.Port
	log.WithField("addr", addr).Info("listening")
	return http.ListenAndServe(addr, r)
}
