package services

import (
	"context"
	"time"

	"github.com/you/visitorsvc/domain"
)

// Actions checked against the role policy.
const (
	actionList           = "list"
	actionApprove        = "approve"
	actionReject         = "reject"
	actionCheckIn        = "checkin"
	actionCheckOut       = "checkout"
	actionSecurityUpdate = "security_update"
)

// VisitorServiceImpl implements domain.VisitorService. It decides which
// actions a role may invoke, but performs no local state-machine validation
// of Inside/Outside/Departed transitions; the backend owns those rules and
// its rejection messages are surfaced as-is.
type VisitorServiceImpl struct {
	gateway   domain.UpstreamGateway
	policySvc domain.PolicyService
}

// NewVisitorService creates a new visitor service
func NewVisitorService(gateway domain.UpstreamGateway, policySvc domain.PolicyService) domain.VisitorService {
	return &VisitorServiceImpl{gateway: gateway, policySvc: policySvc}
}

func (s *VisitorServiceImpl) allowed(actor *domain.User, action string) error {
	ok, err := s.policySvc.CheckPermission("role_"+actor.UserRole, "visitor", action)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInsufficientRole
	}
	return nil
}

// List implements domain.VisitorService
func (s *VisitorServiceImpl) List(ctx context.Context, actor *domain.User, from, to time.Time) ([]domain.VisitorListItem, error) {
	if err := s.allowed(actor, actionList); err != nil {
		return nil, err
	}
	return s.gateway.VisitorList(ctx, actor.UserID, from, to)
}

// Details implements domain.VisitorService
func (s *VisitorServiceImpl) Details(ctx context.Context, id string) (*domain.Visitor, error) {
	return s.gateway.VisitorDetails(ctx, id)
}

// outcomeFromErr converts an upstream rejection into a failed outcome with
// its message, so the operator sees the backend's own words. Transport
// errors stay errors.
func outcomeFromErr(err error) (*domain.ActionOutcome, error) {
	if ue, ok := domain.AsUpstreamError(err); ok {
		msg := ue.Message
		if msg == "" {
			msg = "Action failed. Please try again."
		}
		return &domain.ActionOutcome{Confirmed: false, Message: msg}, nil
	}
	return nil, err
}

// CheckIn implements domain.VisitorService
func (s *VisitorServiceImpl) CheckIn(ctx context.Context, actor *domain.User, qrCodeID string) (*domain.ActionOutcome, error) {
	if err := s.allowed(actor, actionCheckIn); err != nil {
		return nil, err
	}
	msg, err := s.gateway.VisitorCheckIn(ctx, qrCodeID, actor.UserID, actor.UserRole)
	if err != nil {
		emit(domain.NewFlowEvent(domain.VisitorCheckInEvent).WithUser(actor.UserID).WithError(err))
		return outcomeFromErr(err)
	}
	emit(domain.NewFlowEvent(domain.VisitorCheckInEvent).WithUser(actor.UserID))
	return &domain.ActionOutcome{Confirmed: true, Message: msg}, nil
}

// CheckOut implements domain.VisitorService
func (s *VisitorServiceImpl) CheckOut(ctx context.Context, actor *domain.User, qrCodeID string) (*domain.ActionOutcome, error) {
	if err := s.allowed(actor, actionCheckOut); err != nil {
		return nil, err
	}
	msg, err := s.gateway.VisitorCheckOut(ctx, qrCodeID, actor.UserID, actor.UserRole)
	if err != nil {
		emit(domain.NewFlowEvent(domain.VisitorCheckOutEvent).WithUser(actor.UserID).WithError(err))
		return outcomeFromErr(err)
	}
	emit(domain.NewFlowEvent(domain.VisitorCheckOutEvent).WithUser(actor.UserID))
	return &domain.ActionOutcome{Confirmed: true, Message: msg}, nil
}

// Approve implements domain.VisitorService. The approval contract carries an
// explicit Status flag; an unconfirmed outcome tells the caller to re-fetch
// the list instead of keeping its optimistic patch.
func (s *VisitorServiceImpl) Approve(ctx context.Context, actor *domain.User, visitorID int) (*domain.ActionOutcome, error) {
	if err := s.allowed(actor, actionApprove); err != nil {
		return nil, err
	}
	outcome, err := s.gateway.ApproveVisitor(ctx, visitorID, actor.UserID)
	if err != nil {
		emit(domain.NewFlowEvent(domain.VisitorApprovalEvent).WithUser(actor.UserID).WithError(err))
		return outcomeFromErr(err)
	}
	emit(domain.NewFlowEvent(domain.VisitorApprovalEvent).WithUser(actor.UserID).
		WithMetadata("confirmed", outcome.Confirmed))
	return outcome, nil
}

// Reject implements domain.VisitorService
func (s *VisitorServiceImpl) Reject(ctx context.Context, actor *domain.User, visitorID int) (*domain.ActionOutcome, error) {
	if err := s.allowed(actor, actionReject); err != nil {
		return nil, err
	}
	outcome, err := s.gateway.RejectVisitor(ctx, visitorID, actor.UserID)
	if err != nil {
		emit(domain.NewFlowEvent(domain.VisitorApprovalEvent).WithUser(actor.UserID).WithError(err))
		return outcomeFromErr(err)
	}
	return outcome, nil
}

// UpdateBySecurity implements domain.VisitorService
func (s *VisitorServiceImpl) UpdateBySecurity(ctx context.Context, actor *domain.User, visitorID int, vehicleType, vehicleNumber, material string) (*domain.ActionOutcome, error) {
	if err := s.allowed(actor, actionSecurityUpdate); err != nil {
		return nil, err
	}
	msg, err := s.gateway.UpdateVisitorBySecurity(ctx, visitorID, vehicleType, vehicleNumber, material)
	if err != nil {
		return outcomeFromErr(err)
	}
	return &domain.ActionOutcome{Confirmed: true, Message: msg}, nil
}

// AddPhoto implements domain.VisitorService
func (s *VisitorServiceImpl) AddPhoto(ctx context.Context, visitorID int, imageString string) (*domain.ActionOutcome, error) {
	msg, err := s.gateway.AddVisitorPhoto(ctx, visitorID, imageString)
	if err != nil {
		return outcomeFromErr(err)
	}
	return &domain.ActionOutcome{Confirmed: true, Message: msg}, nil
}

// Compile-time interface compliance verification
var _ domain.VisitorService = (*VisitorServiceImpl)(nil)
