package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/you/visitorsvc/domain"
	"github.com/you/visitorsvc/internal/mocks"
)

func TestCatalogFetchFailureYieldsEmptyList(t *testing.T) {
	gateway := mocks.NewMockUpstreamGateway()
	gateway.PurposeListFunc = func(ctx context.Context) ([]domain.Option, error) {
		return nil, errors.New("connection refused")
	}
	svc := NewCatalogService(gateway)

	opts := svc.Purposes(context.Background())
	assert.NotNil(t, opts)
	assert.Empty(t, opts)
}

func TestCatalogPassThrough(t *testing.T) {
	gateway := mocks.NewMockUpstreamGateway()
	gateway.BranchListFunc = func(ctx context.Context) ([]domain.Option, error) {
		return []domain.Option{{ID: "1", Name: "HQ"}, {ID: "2", Name: "Annex"}}, nil
	}
	svc := NewCatalogService(gateway)

	opts := svc.Branches(context.Background())
	assert.Len(t, opts, 2)
	assert.Equal(t, "HQ", opts[0].Name)
}

func TestCatalogEmployeesForwardsFilters(t *testing.T) {
	gateway := mocks.NewMockUpstreamGateway()
	var gotBranch, gotDept string
	gateway.EmployeeListFunc = func(ctx context.Context, branchID, departmentID string) ([]domain.Option, error) {
		gotBranch, gotDept = branchID, departmentID
		return []domain.Option{}, nil
	}
	svc := NewCatalogService(gateway)

	svc.Employees(context.Background(), "b1", "d2")
	assert.Equal(t, "b1", gotBranch)
	assert.Equal(t, "d2", gotDept)
}
