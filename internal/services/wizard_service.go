package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"github.com/you/visitorsvc/domain"
)

// WizardServiceImpl implements domain.WizardService. It owns the five-step
// registration flow: each step writes into the session's FormState, the
// matching validator gates the advance, and the final step assembles and
// submits the registration. State never outlives the session: cancel and
// completion both delete it.
type WizardServiceImpl struct {
	repo    domain.WizardRepository
	gateway domain.UpstreamGateway
}

// NewWizardService creates a new wizard service
func NewWizardService(repo domain.WizardRepository, gateway domain.UpstreamGateway) domain.WizardService {
	return &WizardServiceImpl{repo: repo, gateway: gateway}
}

// Start implements domain.WizardService
func (s *WizardServiceImpl) Start(ctx context.Context) (*domain.FormState, error) {
	form := domain.NewFormState(uuid.NewString())
	if err := s.repo.Create(ctx, form); err != nil {
		return nil, err
	}
	emit(domain.NewFlowEvent(domain.WizardStartedEvent).WithWizard(form.ID))
	return form, nil
}

// Get implements domain.WizardService
func (s *WizardServiceImpl) Get(ctx context.Context, id string) (*domain.FormState, error) {
	return s.repo.FindByID(ctx, id)
}

// load fetches a live, unfinished wizard session.
func (s *WizardServiceImpl) load(ctx context.Context, id string) (*domain.FormState, error) {
	form, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if form.Finished() {
		return nil, domain.ErrWizardFinished
	}
	return form, nil
}

// SubmitIdentify validates the mobile number, runs the existing-visitor
// lookup, and advances to the capture step. Lookup failures are soft: the
// wizard continues as a new registration and the outage is only logged.
func (s *WizardServiceImpl) SubmitIdentify(ctx context.Context, id, mobile string) (*domain.FormState, domain.LookupOutcome, error) {
	form, err := s.load(ctx, id)
	if err != nil {
		return nil, "", err
	}

	form.Mobile = mobile
	if verr := ValidateStep(domain.StepIdentify, form); verr != nil {
		return nil, "", verr
	}

	outcome := domain.LookupNotFoundOrUnavailable
	profile, err := s.gateway.VisitorByMobile(ctx, mobile)
	switch {
	case err == nil:
		outcome = domain.LookupFound
		prefillProfile(form, profile)
	case errors.Is(err, domain.ErrVisitorNotFound):
		form.ClearVisitorData()
	default:
		log.WithError(err).WithField("wizard_id", id).
			Warn("visitor lookup unavailable, continuing as new registration")
		form.ClearVisitorData()
	}

	form.Step = domain.StepCapture
	if err := s.repo.Save(ctx, form); err != nil {
		// Session cancelled while the lookup was in flight; drop the result.
		return nil, "", err
	}

	emit(domain.NewFlowEvent(domain.WizardLookupEvent).WithWizard(id).
		WithMetadata("outcome", string(outcome)))
	return form, outcome, nil
}

// prefillProfile copies a matched profile into the form as editable
// defaults.
func prefillProfile(form *domain.FormState, p *domain.VisitorProfile) {
	visitorID := p.VisitorID
	form.VisitorID = &visitorID
	form.Name = p.Name
	form.Company = p.Company
	form.Address = p.Address
	form.IDProofType = p.IDProof
	form.IDProofNumber = p.IDProofNo
	form.IDProofID = p.IDProofID
	if p.ImageURL != "" {
		imageURL := p.ImageURL
		form.PhotoURL = &imageURL
	}
	if p.Purpose != "" {
		purpose := p.Purpose
		form.Purpose = &purpose
	}
}

// AttachPhoto implements domain.WizardService
func (s *WizardServiceImpl) AttachPhoto(ctx context.Context, id, photoRef string) (*domain.FormState, error) {
	form, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if photoRef != "" {
		form.PhotoLocal = &photoRef
	}
	if verr := ValidateStep(domain.StepCapture, form); verr != nil {
		return nil, verr
	}

	form.Step = domain.StepProfile
	if err := s.repo.Save(ctx, form); err != nil {
		return nil, err
	}
	emit(domain.NewFlowEvent(domain.WizardStepEvent).WithWizard(id).WithStep(domain.StepCapture))
	return form, nil
}

// SubmitProfile implements domain.WizardService
func (s *WizardServiceImpl) SubmitProfile(ctx context.Context, id string, in domain.ProfileInput) (*domain.FormState, error) {
	form, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	form.Name = in.Name
	form.Company = in.Company
	form.Address = in.Address
	form.IDProofID = in.IDProofID
	form.IDProofType = in.IDProofType
	form.IDProofNumber = in.IDProofNumber
	form.IDProofImage = in.IDProofImage
	form.IDProofBackImage = in.IDProofBackImage

	if verr := ValidateStep(domain.StepProfile, form); verr != nil {
		return nil, verr
	}

	form.Step = domain.StepPurpose
	if err := s.repo.Save(ctx, form); err != nil {
		return nil, err
	}
	emit(domain.NewFlowEvent(domain.WizardStepEvent).WithWizard(id).WithStep(domain.StepProfile))
	return form, nil
}

// SubmitPurpose implements domain.WizardService
func (s *WizardServiceImpl) SubmitPurpose(ctx context.Context, id, purpose string) (*domain.FormState, error) {
	form, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	form.Purpose = &purpose
	if verr := ValidateStep(domain.StepPurpose, form); verr != nil {
		return nil, verr
	}

	form.Step = domain.StepHost
	if err := s.repo.Save(ctx, form); err != nil {
		return nil, err
	}
	emit(domain.NewFlowEvent(domain.WizardStepEvent).WithWizard(id).WithStep(domain.StepPurpose))
	return form, nil
}

// SelectBranch sets the branch and invalidates every downstream selection,
// then refreshes the dependent lists. Departments and employees are fetched
// in parallel; they populate disjoint fields so no ordering between the two
// is needed. An empty branchID clears the whole cascade.
func (s *WizardServiceImpl) SelectBranch(ctx context.Context, id, branchID string) (*domain.FormState, *domain.CascadeResult, error) {
	form, err := s.load(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	form.DepartmentID = nil
	form.EmployeeID = nil
	if branchID == "" {
		form.BranchID = nil
		if err := s.repo.Save(ctx, form); err != nil {
			return nil, nil, err
		}
		return form, &domain.CascadeResult{}, nil
	}
	form.BranchID = &branchID

	cascade := &domain.CascadeResult{}
	var depErr, empErr error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		cascade.Departments, depErr = s.gateway.DepartmentList(ctx, branchID)
	}()
	go func() {
		defer wg.Done()
		cascade.Employees, empErr = s.gateway.EmployeeList(ctx, branchID, "")
	}()
	wg.Wait()

	if depErr != nil {
		log.WithError(depErr).WithField("branch_id", branchID).Warn("department list fetch failed")
		cascade.Departments = nil
	}
	if empErr != nil {
		log.WithError(empErr).WithField("branch_id", branchID).Warn("employee list fetch failed")
		cascade.Employees = nil
	}

	if err := s.repo.Save(ctx, form); err != nil {
		return nil, nil, err
	}
	return form, cascade, nil
}

// SelectDepartment narrows the employee list to one department, or falls
// back to the branch-wide list when departmentID is empty. Either way the
// employee selection is invalidated and the list re-fetched, so a stale
// employee can never survive the change.
func (s *WizardServiceImpl) SelectDepartment(ctx context.Context, id, departmentID string) (*domain.FormState, *domain.CascadeResult, error) {
	form, err := s.load(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if form.BranchID == nil {
		return nil, nil, &domain.ValidationError{Step: domain.StepHost, Fields: map[string]string{"branch": "Location required"}}
	}

	form.EmployeeID = nil
	if departmentID == "" {
		form.DepartmentID = nil
	} else {
		form.DepartmentID = &departmentID
	}

	cascade := &domain.CascadeResult{}
	cascade.Employees, err = s.gateway.EmployeeList(ctx, *form.BranchID, departmentID)
	if err != nil {
		log.WithError(err).WithField("branch_id", *form.BranchID).Warn("employee list fetch failed")
		cascade.Employees = nil
	}

	if err := s.repo.Save(ctx, form); err != nil {
		return nil, nil, err
	}
	return form, cascade, nil
}

// SubmitHost verifies the chosen host actually belongs to the selected
// branch and department, validates the completed form, and runs the
// submission pipeline. On upstream failure the form is left untouched so the
// operator can retry without re-entering anything; retry is always
// user-initiated.
func (s *WizardServiceImpl) SubmitHost(ctx context.Context, id, employeeID string, actingUserID int) (*domain.FormState, error) {
	form, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if employeeID != "" {
		form.EmployeeID = &employeeID
	}
	if verr := validateThrough(form, domain.StepHost); verr != nil {
		return nil, verr
	}

	departmentID := ""
	if form.DepartmentID != nil {
		departmentID = *form.DepartmentID
	}
	employees, err := s.gateway.EmployeeList(ctx, *form.BranchID, departmentID)
	if err != nil {
		return nil, err
	}
	if !lo.ContainsBy(employees, func(o domain.Option) bool { return o.ID == *form.EmployeeID }) {
		return nil, domain.ErrEmployeeNotInHost
	}

	pass, err := s.gateway.SaveSelfVisitorEntry(ctx, buildPayload(form, actingUserID))
	if err != nil {
		emit(domain.NewFlowEvent(domain.WizardSubmittedEvent).WithWizard(id).WithUser(actingUserID).WithError(err))
		return nil, err
	}

	form.GatePass = pass
	form.Step = domain.StepGatePass
	if err := s.repo.Save(ctx, form); err != nil {
		return nil, err
	}
	emit(domain.NewFlowEvent(domain.WizardSubmittedEvent).WithWizard(id).WithUser(actingUserID))
	return form, nil
}

// buildPayload remaps the internal form fields to the backend's names.
func buildPayload(form *domain.FormState, actingUserID int) *domain.RegistrationPayload {
	payload := &domain.RegistrationPayload{
		LoginUserID:   actingUserID,
		Contact:       form.Mobile,
		Name:          form.Name,
		Company:       form.Company,
		Address:       form.Address,
		Purpose:       *form.Purpose,
		ToMeet:        *form.EmployeeID,
		BranchID:      *form.BranchID,
		EmployeeID:    *form.EmployeeID,
		IDProof:       form.IDProofType,
		IDProofNumber: form.IDProofNumber,
	}
	if form.DepartmentID != nil {
		payload.DepartmentID = *form.DepartmentID
	}
	if form.PhotoLocal != nil {
		payload.Photo = *form.PhotoLocal
	} else if form.PhotoURL != nil {
		payload.Photo = *form.PhotoURL
	}
	if form.IDProofImage != nil {
		payload.DocumentImage = *form.IDProofImage
	}
	return payload
}

// GatePass implements domain.WizardService
func (s *WizardServiceImpl) GatePass(ctx context.Context, id string) (*domain.GatePass, error) {
	form, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if form.GatePass == nil {
		return nil, domain.ErrGatePassNotIssued
	}
	return form.GatePass, nil
}

// Cancel discards the session entirely. A cancelled or abandoned wizard
// leaves no trace.
func (s *WizardServiceImpl) Cancel(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	emit(domain.NewFlowEvent(domain.WizardCancelledEvent).WithWizard(id))
	return nil
}

// Compile-time interface compliance verification
var _ domain.WizardService = (*WizardServiceImpl)(nil)
