package mocks

import (
	"context"
	"time"

	"github.com/you/visitorsvc/domain"
)

// MockUpstreamGateway implements domain.UpstreamGateway interface for testing
type MockUpstreamGateway struct {
	LoginFunc                   func(ctx context.Context, username, password string) (*domain.User, error)
	VisitorByMobileFunc         func(ctx context.Context, mobile string) (*domain.VisitorProfile, error)
	PurposeListFunc             func(ctx context.Context) ([]domain.Option, error)
	IDProofTypeListFunc         func(ctx context.Context) ([]domain.Option, error)
	VisitorTypeListFunc         func(ctx context.Context) ([]domain.Option, error)
	VehicleTypeListFunc         func(ctx context.Context) ([]domain.Option, error)
	BranchListFunc              func(ctx context.Context) ([]domain.Option, error)
	DepartmentListFunc          func(ctx context.Context, branchID string) ([]domain.Option, error)
	EmployeeListFunc            func(ctx context.Context, branchID, departmentID string) ([]domain.Option, error)
	SaveSelfVisitorEntryFunc    func(ctx context.Context, payload *domain.RegistrationPayload) (*domain.GatePass, error)
	VisitorDetailsFunc          func(ctx context.Context, id string) (*domain.Visitor, error)
	VisitorCheckInFunc          func(ctx context.Context, qrCodeID string, userID int, userRole string) (string, error)
	VisitorCheckOutFunc         func(ctx context.Context, qrCodeID string, userID int, userRole string) (string, error)
	ApproveVisitorFunc          func(ctx context.Context, visitorID, loginUserID int) (*domain.ActionOutcome, error)
	RejectVisitorFunc           func(ctx context.Context, visitorID, loginUserID int) (*domain.ActionOutcome, error)
	VisitorListFunc             func(ctx context.Context, loginUserID int, from, to time.Time) ([]domain.VisitorListItem, error)
	UpdateVisitorBySecurityFunc func(ctx context.Context, visitorID int, vehicleType, vehicleNumber, material string) (string, error)
	AddVisitorPhotoFunc         func(ctx context.Context, visitorID int, imageString string) (string, error)
}

// NewMockUpstreamGateway creates a new MockUpstreamGateway with default behaviors
func NewMockUpstreamGateway() *MockUpstreamGateway {
	return &MockUpstreamGateway{}
}

// Login authenticates against the backend
func (m *MockUpstreamGateway) Login(ctx context.Context, username, password string) (*domain.User, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	// Default behavior: rejected
	return nil, domain.ErrInvalidCredentials
}

// VisitorByMobile looks up a returning visitor
func (m *MockUpstreamGateway) VisitorByMobile(ctx context.Context, mobile string) (*domain.VisitorProfile, error) {
	if m.VisitorByMobileFunc != nil {
		return m.VisitorByMobileFunc(ctx, mobile)
	}
	// Default behavior: unknown mobile
	return nil, domain.ErrVisitorNotFound
}

// PurposeList fetches the purpose catalog
func (m *MockUpstreamGateway) PurposeList(ctx context.Context) ([]domain.Option, error) {
	if m.PurposeListFunc != nil {
		return m.PurposeListFunc(ctx)
	}
	return []domain.Option{}, nil
}

// IDProofTypeList fetches the ID proof type catalog
func (m *MockUpstreamGateway) IDProofTypeList(ctx context.Context) ([]domain.Option, error) {
	if m.IDProofTypeListFunc != nil {
		return m.IDProofTypeListFunc(ctx)
	}
	return []domain.Option{}, nil
}

// VisitorTypeList fetches the visitor type catalog
func (m *MockUpstreamGateway) VisitorTypeList(ctx context.Context) ([]domain.Option, error) {
	if m.VisitorTypeListFunc != nil {
		return m.VisitorTypeListFunc(ctx)
	}
	return []domain.Option{}, nil
}

// VehicleTypeList fetches the vehicle type catalog
func (m *MockUpstreamGateway) VehicleTypeList(ctx context.Context) ([]domain.Option, error) {
	if m.VehicleTypeListFunc != nil {
		return m.VehicleTypeListFunc(ctx)
	}
	return []domain.Option{}, nil
}

// BranchList fetches the branch catalog
func (m *MockUpstreamGateway) BranchList(ctx context.Context) ([]domain.Option, error) {
	if m.BranchListFunc != nil {
		return m.BranchListFunc(ctx)
	}
	return []domain.Option{}, nil
}

// DepartmentList fetches departments for a branch
func (m *MockUpstreamGateway) DepartmentList(ctx context.Context, branchID string) ([]domain.Option, error) {
	if m.DepartmentListFunc != nil {
		return m.DepartmentListFunc(ctx, branchID)
	}
	return []domain.Option{}, nil
}

// EmployeeList fetches employees for a branch and optional department
func (m *MockUpstreamGateway) EmployeeList(ctx context.Context, branchID, departmentID string) ([]domain.Option, error) {
	if m.EmployeeListFunc != nil {
		return m.EmployeeListFunc(ctx, branchID, departmentID)
	}
	return []domain.Option{}, nil
}

// SaveSelfVisitorEntry submits the registration
func (m *MockUpstreamGateway) SaveSelfVisitorEntry(ctx context.Context, payload *domain.RegistrationPayload) (*domain.GatePass, error) {
	if m.SaveSelfVisitorEntryFunc != nil {
		return m.SaveSelfVisitorEntryFunc(ctx, payload)
	}
	return &domain.GatePass{}, nil
}

// VisitorDetails fetches a single visitor by pass id
func (m *MockUpstreamGateway) VisitorDetails(ctx context.Context, id string) (*domain.Visitor, error) {
	if m.VisitorDetailsFunc != nil {
		return m.VisitorDetailsFunc(ctx, id)
	}
	return nil, domain.ErrVisitorNotFound
}

// VisitorCheckIn records a gate entry
func (m *MockUpstreamGateway) VisitorCheckIn(ctx context.Context, qrCodeID string, userID int, userRole string) (string, error) {
	if m.VisitorCheckInFunc != nil {
		return m.VisitorCheckInFunc(ctx, qrCodeID, userID, userRole)
	}
	return "Checked in", nil
}

// VisitorCheckOut records a gate exit
func (m *MockUpstreamGateway) VisitorCheckOut(ctx context.Context, qrCodeID string, userID int, userRole string) (string, error) {
	if m.VisitorCheckOutFunc != nil {
		return m.VisitorCheckOutFunc(ctx, qrCodeID, userID, userRole)
	}
	return "Checked out", nil
}

// ApproveVisitor approves a pending visit
func (m *MockUpstreamGateway) ApproveVisitor(ctx context.Context, visitorID, loginUserID int) (*domain.ActionOutcome, error) {
	if m.ApproveVisitorFunc != nil {
		return m.ApproveVisitorFunc(ctx, visitorID, loginUserID)
	}
	return &domain.ActionOutcome{Confirmed: true, Message: "Approved"}, nil
}

// RejectVisitor rejects a pending visit
func (m *MockUpstreamGateway) RejectVisitor(ctx context.Context, visitorID, loginUserID int) (*domain.ActionOutcome, error) {
	if m.RejectVisitorFunc != nil {
		return m.RejectVisitorFunc(ctx, visitorID, loginUserID)
	}
	return &domain.ActionOutcome{Confirmed: true, Message: "Rejected"}, nil
}

// VisitorList fetches the date-ranged visitor list
func (m *MockUpstreamGateway) VisitorList(ctx context.Context, loginUserID int, from, to time.Time) ([]domain.VisitorListItem, error) {
	if m.VisitorListFunc != nil {
		return m.VisitorListFunc(ctx, loginUserID, from, to)
	}
	return []domain.VisitorListItem{}, nil
}

// UpdateVisitorBySecurity records vehicle and material details
func (m *MockUpstreamGateway) UpdateVisitorBySecurity(ctx context.Context, visitorID int, vehicleType, vehicleNumber, material string) (string, error) {
	if m.UpdateVisitorBySecurityFunc != nil {
		return m.UpdateVisitorBySecurityFunc(ctx, visitorID, vehicleType, vehicleNumber, material)
	}
	return "Updated", nil
}

// AddVisitorPhoto uploads a replacement photo
func (m *MockUpstreamGateway) AddVisitorPhoto(ctx context.Context, visitorID int, imageString string) (string, error) {
	if m.AddVisitorPhotoFunc != nil {
		return m.AddVisitorPhotoFunc(ctx, visitorID, imageString)
	}
	return "Photo saved", nil
}

// Compile-time interface compliance verification
var _ domain.UpstreamGateway = (*MockUpstreamGateway)(nil)
