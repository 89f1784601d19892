package domain

import (
	"context"
	"time"
)

// SessionRepository defines operator session storage. Expiry is the store's
// concern: lookups of an expired session fail with ErrSessionExpired.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// WizardRepository defines storage for in-progress registration wizards.
// Save must fail with ErrWizardNotFound when the session was cancelled in
// the meantime, so a late-arriving lookup result cannot resurrect it.
type WizardRepository interface {
	Create(ctx context.Context, form *FormState) error
	FindByID(ctx context.Context, id string) (*FormState, error)
	Save(ctx context.Context, form *FormState) error
	Delete(ctx context.Context, id string) error
}

// CredentialStore persists the remembered login name per device until the
// operator explicitly logs out or disables remembering.
type CredentialStore interface {
	Remember(ctx context.Context, deviceID, username string) error
	Remembered(ctx context.Context, deviceID string) (string, error)
	Forget(ctx context.Context, deviceID string) error
}

// UpstreamGateway is the full REST contract consumed from the VMS backend.
// All business logic and authorization decisions live behind it; this side
// only normalizes payload shape differences.
type UpstreamGateway interface {
	Login(ctx context.Context, username, password string) (*User, error)

	VisitorByMobile(ctx context.Context, mobile string) (*VisitorProfile, error)
	PurposeList(ctx context.Context) ([]Option, error)
	IDProofTypeList(ctx context.Context) ([]Option, error)
	VisitorTypeList(ctx context.Context) ([]Option, error)
	VehicleTypeList(ctx context.Context) ([]Option, error)
	BranchList(ctx context.Context) ([]Option, error)
	DepartmentList(ctx context.Context, branchID string) ([]Option, error)
	EmployeeList(ctx context.Context, branchID, departmentID string) ([]Option, error)
	SaveSelfVisitorEntry(ctx context.Context, payload *RegistrationPayload) (*GatePass, error)

	VisitorDetails(ctx context.Context, id string) (*Visitor, error)
	VisitorCheckIn(ctx context.Context, qrCodeID string, userID int, userRole string) (string, error)
	VisitorCheckOut(ctx context.Context, qrCodeID string, userID int, userRole string) (string, error)
	ApproveVisitor(ctx context.Context, visitorID, loginUserID int) (*ActionOutcome, error)
	RejectVisitor(ctx context.Context, visitorID, loginUserID int) (*ActionOutcome, error)
	VisitorList(ctx context.Context, loginUserID int, from, to time.Time) ([]VisitorListItem, error)
	UpdateVisitorBySecurity(ctx context.Context, visitorID int, vehicleType, vehicleNumber, material string) (string, error)
	AddVisitorPhoto(ctx context.Context, visitorID int, imageString string) (string, error)
}

// AuthService defines operator authentication business logic
type AuthService interface {
	Login(ctx context.Context, username, password string, remember bool, deviceID string) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	RememberedUsername(ctx context.Context, deviceID string) (string, error)
}

// CascadeResult carries the dependent dropdown lists refreshed after a
// branch or department change. Lists are never stale: every upstream change
// re-runs the fetch to completion before the result is returned.
type CascadeResult struct {
	Departments []Option
	Employees   []Option
}

// ProfileInput is the editable profile/ID step payload.
type ProfileInput struct {
	Name             string
	Company          string
	Address          string
	IDProofID        string
	IDProofType      string
	IDProofNumber    string
	IDProofImage     *string
	IDProofBackImage *string
}

// WizardService orchestrates the five-step registration wizard.
type WizardService interface {
	Start(ctx context.Context) (*FormState, error)
	Get(ctx context.Context, id string) (*FormState, error)
	SubmitIdentify(ctx context.Context, id, mobile string) (*FormState, LookupOutcome, error)
	AttachPhoto(ctx context.Context, id, photoRef string) (*FormState, error)
	SubmitProfile(ctx context.Context, id string, in ProfileInput) (*FormState, error)
	SubmitPurpose(ctx context.Context, id, purpose string) (*FormState, error)
	SelectBranch(ctx context.Context, id, branchID string) (*FormState, *CascadeResult, error)
	SelectDepartment(ctx context.Context, id, departmentID string) (*FormState, *CascadeResult, error)
	SubmitHost(ctx context.Context, id, employeeID string, actingUserID int) (*FormState, error)
	GatePass(ctx context.Context, id string) (*GatePass, error)
	Cancel(ctx context.Context, id string) error
}

// VisitorService defines the dashboard, scanner and gate actions.
type VisitorService interface {
	List(ctx context.Context, actor *User, from, to time.Time) ([]VisitorListItem, error)
	Details(ctx context.Context, id string) (*Visitor, error)
	CheckIn(ctx context.Context, actor *User, qrCodeID string) (*ActionOutcome, error)
	CheckOut(ctx context.Context, actor *User, qrCodeID string) (*ActionOutcome, error)
	Approve(ctx context.Context, actor *User, visitorID int) (*ActionOutcome, error)
	Reject(ctx context.Context, actor *User, visitorID int) (*ActionOutcome, error)
	UpdateBySecurity(ctx context.Context, actor *User, visitorID int, vehicleType, vehicleNumber, material string) (*ActionOutcome, error)
	AddPhoto(ctx context.Context, visitorID int, imageString string) (*ActionOutcome, error)
}

// CatalogService serves dropdown catalogs to the screens. Fetch failures are
// soft: logged and returned as empty lists, never as blocking errors.
type CatalogService interface {
	Purposes(ctx context.Context) []Option
	IDProofTypes(ctx context.Context) []Option
	VisitorTypes(ctx context.Context) []Option
	VehicleTypes(ctx context.Context) []Option
	Branches(ctx context.Context) []Option
	Departments(ctx context.Context, branchID string) []Option
	Employees(ctx context.Context, branchID, departmentID string) []Option
}

// TokenService defines token operations
type TokenService interface {
	GenerateAccessToken(userID int, role string, sessionID string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID    int    `json:"user_id"`
	Role      string `json:"role"`
	SessionID string `json:"session_id,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
