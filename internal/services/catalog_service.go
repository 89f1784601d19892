package services

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/you/visitorsvc/domain"
)

// CatalogServiceImpl implements domain.CatalogService. Catalog fetches are
// read-through with no caching layer; a failed fetch is logged and comes
// back as an empty list so a dropdown outage never blocks a screen.
type CatalogServiceImpl struct {
	gateway domain.UpstreamGateway
}

// NewCatalogService creates a new catalog service
func NewCatalogService(gateway domain.UpstreamGateway) domain.CatalogService {
	return &CatalogServiceImpl{gateway: gateway}
}

func softList(name string, opts []domain.Option, err error) []domain.Option {
	if err != nil {
		log.WithError(err).WithField("catalog", name).Warn("catalog fetch failed, returning empty list")
		return []domain.Option{}
	}
	if opts == nil {
		return []domain.Option{}
	}
	return opts
}

// Purposes implements domain.CatalogService
func (s *CatalogServiceImpl) Purposes(ctx context.Context) []domain.Option {
	opts, err := s.gateway.PurposeList(ctx)
	return softList("purposes", opts, err)
}

// IDProofTypes implements domain.CatalogService
func (s *CatalogServiceImpl) IDProofTypes(ctx context.Context) []domain.Option {
	opts, err := s.gateway.IDProofTypeList(ctx)
	return softList("id_proof_types", opts, err)
}

// VisitorTypes implements domain.CatalogService
func (s *CatalogServiceImpl) VisitorTypes(ctx context.Context) []domain.Option {
	opts, err := s.gateway.VisitorTypeList(ctx)
	return softList("visitor_types", opts, err)
}

// VehicleTypes implements domain.CatalogService
func (s *CatalogServiceImpl) VehicleTypes(ctx context.Context) []domain.Option {
	opts, err := s.gateway.VehicleTypeList(ctx)
	return softList("vehicle_types", opts, err)
}

// Branches implements domain.CatalogService
func (s *CatalogServiceImpl) Branches(ctx context.Context) []domain.Option {
	opts, err := s.gateway.BranchList(ctx)
	return softList("branches", opts, err)
}

// Departments implements domain.CatalogService
func (s *CatalogServiceImpl) Departments(ctx context.Context, branchID string) []domain.Option {
	opts, err := s.gateway.DepartmentList(ctx, branchID)
	return softList("departments", opts, err)
}

// Employees implements domain.CatalogService
func (s *CatalogServiceImpl) Employees(ctx context.Context, branchID, departmentID string) []domain.Option {
	opts, err := s.gateway.EmployeeList(ctx, branchID, departmentID)
	return softList("employees", opts, err)
}

// Compile-time interface compliance verification
var _ domain.CatalogService = (*CatalogServiceImpl)(nil)
