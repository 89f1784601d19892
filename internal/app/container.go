package app

import (
	"github.com/redis/go-redis/v9"

	"github.com/you/visitorsvc/domain"
	"github.com/you/visitorsvc/internal/config"
	"github.com/you/visitorsvc/internal/infrastructure/auth"
	"github.com/you/visitorsvc/internal/infrastructure/repositories"
	"github.com/you/visitorsvc/internal/infrastructure/upstream"
	"github.com/you/visitorsvc/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	RedisClient *redis.Client
	Casbin      *auth.CasbinService
	Gateway     domain.UpstreamGateway

	// Repositories
	SessionRepo domain.SessionRepository
	WizardRepo  domain.WizardRepository
	CredStore   domain.CredentialStore

	// Services
	TokenSvc   domain.TokenService
	PolicySvc  domain.PolicyService
	AuthSvc    domain.AuthService
	WizardSvc  domain.WizardService
	VisitorSvc domain.VisitorService
	CatalogSvc domain.CatalogService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	cas, err := auth.NewCasbinService(cfg.CasbinModelPath, cfg.CasbinPolicyPath)
	if err != nil {
		return nil, err
	}
	c.Casbin = cas

	c.RedisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	c.Gateway = upstream.NewClient(cfg.UpstreamBaseURL, cfg.SelfRegisterURL, cfg.UpstreamTimeout)

	c.SessionRepo = repositories.NewSessionRepository(c.RedisClient, cfg.SessionTTL)
	c.WizardRepo = repositories.NewWizardRepository(c.RedisClient, cfg.WizardTTL)
	c.CredStore = repositories.NewCredentialStore(c.RedisClient)

	c.TokenSvc = auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL)
	c.PolicySvc = services.NewPolicyService(cas.E)
	c.AuthSvc = services.NewAuthService(c.Gateway, c.SessionRepo, c.TokenSvc, c.CredStore, cfg.SessionTTL, cfg.AccessTTL)
	c.WizardSvc = services.NewWizardService(c.WizardRepo, c.Gateway)
	c.VisitorSvc = services.NewVisitorService(c.Gateway, c.PolicySvc)
	c.CatalogSvc = services.NewCatalogService(c.Gateway)

	return c, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		return c.RedisClient.Close()
	}
	return nil
}
