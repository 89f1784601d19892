package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/visitorsvc/domain"
	"github.com/you/visitorsvc/internal/mocks"
)

func newWizardFixture() (*mocks.MockWizardRepository, *mocks.MockUpstreamGateway, domain.WizardService) {
	repo := mocks.NewMockWizardRepository()
	gateway := mocks.NewMockUpstreamGateway()
	return repo, gateway, NewWizardService(repo, gateway)
}

// seed stores a form directly so a test can start mid-flow.
func seed(t *testing.T, repo *mocks.MockWizardRepository, form *domain.FormState) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), form))
}

func TestWizardStart(t *testing.T) {
	_, _, svc := newWizardFixture()

	form, err := svc.Start(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, form.ID)
	assert.Equal(t, domain.StepIdentify, form.Step)
	assert.Empty(t, form.Mobile)
}

func TestSubmitIdentifyRejectsBadMobile(t *testing.T) {
	repo, _, svc := newWizardFixture()
	seed(t, repo, domain.NewFormState("w1"))

	_, _, err := svc.SubmitIdentify(context.Background(), "w1", "12345")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "mobile")
}

func TestSubmitIdentifyPrefillsKnownVisitor(t *testing.T) {
	repo, gateway, svc := newWizardFixture()
	seed(t, repo, domain.NewFormState("w1"))

	gateway.VisitorByMobileFunc = func(ctx context.Context, mobile string) (*domain.VisitorProfile, error) {
		assert.Equal(t, "9876543210", mobile)
		return &domain.VisitorProfile{
			VisitorID: 42,
			Name:      "J Doe",
			Company:   "Acme",
			Address:   "12 North Road",
			ImageURL:  "https://vms.example/img/42.jpg",
			IDProof:   "Aadhar",
			IDProofNo: "1234 5678 9012",
			IDProofID: "2",
		}, nil
	}

	form, outcome, err := svc.SubmitIdentify(context.Background(), "w1", "9876543210")
	require.NoError(t, err)
	assert.Equal(t, domain.LookupFound, outcome)
	assert.Equal(t, domain.StepCapture, form.Step)
	assert.Equal(t, "J Doe", form.Name)
	assert.Equal(t, "Acme", form.Company)
	require.NotNil(t, form.VisitorID)
	assert.Equal(t, 42, *form.VisitorID)
	require.NotNil(t, form.PhotoURL)
	assert.Equal(t, "https://vms.example/img/42.jpg", *form.PhotoURL)
}

func TestSubmitIdentifyUnknownMobileStartsFresh(t *testing.T) {
	repo, _, svc := newWizardFixture()
	stale := domain.NewFormState("w1")
	stale.Name = "Left Over"
	seed(t, repo, stale)

	form, outcome, err := svc.SubmitIdentify(context.Background(), "w1", "9876543210")
	require.NoError(t, err)
	assert.Equal(t, domain.LookupNotFoundOrUnavailable, outcome)
	assert.Empty(t, form.Name)
	assert.Equal(t, "9876543210", form.Mobile)
}

func TestSubmitIdentifyLookupOutageIsSoft(t *testing.T) {
	repo, gateway, svc := newWizardFixture()
	seed(t, repo, domain.NewFormState("w1"))

	gateway.VisitorByMobileFunc = func(ctx context.Context, mobile string) (*domain.VisitorProfile, error) {
		return nil, errors.New("connection refused")
	}

	form, outcome, err := svc.SubmitIdentify(context.Background(), "w1", "9876543210")
	require.NoError(t, err)
	assert.Equal(t, domain.LookupNotFoundOrUnavailable, outcome)
	assert.Equal(t, domain.StepCapture, form.Step)
}

func TestSubmitIdentifyDropsResultAfterCancel(t *testing.T) {
	repo, _, svc := newWizardFixture()
	// The session exists when the step starts but is gone by save time.
	repo.FindByIDFunc = func(ctx context.Context, id string) (*domain.FormState, error) {
		return domain.NewFormState(id), nil
	}

	_, _, err := svc.SubmitIdentify(context.Background(), "w1", "9876543210")
	assert.ErrorIs(t, err, domain.ErrWizardNotFound)
}

func TestAttachPhotoEmptyRefUsesLookedUpPhoto(t *testing.T) {
	repo, _, svc := newWizardFixture()
	form := domain.NewFormState("w1")
	form.Mobile = "9876543210"
	form.PhotoURL = strPtr("https://vms.example/img/42.jpg")
	form.Step = domain.StepCapture
	seed(t, repo, form)

	got, err := svc.AttachPhoto(context.Background(), "w1", "")
	require.NoError(t, err)
	assert.Equal(t, domain.StepProfile, got.Step)
	assert.Nil(t, got.PhotoLocal)
}

func TestAttachPhotoRequiresSomePhoto(t *testing.T) {
	repo, _, svc := newWizardFixture()
	form := domain.NewFormState("w1")
	form.Mobile = "9876543210"
	form.Step = domain.StepCapture
	seed(t, repo, form)

	_, err := svc.AttachPhoto(context.Background(), "w1", "")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "photo")
}

func TestSelectBranchResetsDownstreamSelections(t *testing.T) {
	repo, gateway, svc := newWizardFixture()
	form := validForm()
	form.DepartmentID = strPtr("d2")
	seed(t, repo, form)

	gateway.DepartmentListFunc = func(ctx context.Context, branchID string) ([]domain.Option, error) {
		return []domain.Option{{ID: "d9", Name: "Ops"}}, nil
	}
	gateway.EmployeeListFunc = func(ctx context.Context, branchID, departmentID string) ([]domain.Option, error) {
		assert.Equal(t, "b2", branchID)
		assert.Empty(t, departmentID)
		return []domain.Option{{ID: "e1", Name: "A"}}, nil
	}

	got, cascade, err := svc.SelectBranch(context.Background(), form.ID, "b2")
	require.NoError(t, err)
	require.NotNil(t, got.BranchID)
	assert.Equal(t, "b2", *got.BranchID)
	assert.Nil(t, got.DepartmentID)
	assert.Nil(t, got.EmployeeID)
	assert.Len(t, cascade.Departments, 1)
	assert.Len(t, cascade.Employees, 1)
}

func TestSelectBranchEmptyClearsCascade(t *testing.T) {
	repo, _, svc := newWizardFixture()
	form := validForm()
	seed(t, repo, form)

	got, cascade, err := svc.SelectBranch(context.Background(), form.ID, "")
	require.NoError(t, err)
	assert.Nil(t, got.BranchID)
	assert.Nil(t, got.DepartmentID)
	assert.Nil(t, got.EmployeeID)
	assert.Empty(t, cascade.Departments)
	assert.Empty(t, cascade.Employees)
}

func TestSelectDepartmentRequiresBranch(t *testing.T) {
	repo, _, svc := newWizardFixture()
	form := validForm()
	form.BranchID = nil
	seed(t, repo, form)

	_, _, err := svc.SelectDepartment(context.Background(), form.ID, "d1")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "branch")
}

func TestSelectDepartmentRefetchesEmployees(t *testing.T) {
	repo, gateway, svc := newWizardFixture()
	form := validForm()
	seed(t, repo, form)

	gateway.EmployeeListFunc = func(ctx context.Context, branchID, departmentID string) ([]domain.Option, error) {
		assert.Equal(t, "b1", branchID)
		assert.Equal(t, "d3", departmentID)
		return []domain.Option{{ID: "e2", Name: "B"}}, nil
	}

	got, cascade, err := svc.SelectDepartment(context.Background(), form.ID, "d3")
	require.NoError(t, err)
	require.NotNil(t, got.DepartmentID)
	assert.Equal(t, "d3", *got.DepartmentID)
	assert.Nil(t, got.EmployeeID)
	assert.Len(t, cascade.Employees, 1)
}

func TestSelectDepartmentClearFallsBackToBranchList(t *testing.T) {
	repo, gateway, svc := newWizardFixture()
	form := validForm()
	form.DepartmentID = strPtr("d3")
	seed(t, repo, form)

	var gotDept string
	gateway.EmployeeListFunc = func(ctx context.Context, branchID, departmentID string) ([]domain.Option, error) {
		gotDept = departmentID
		return []domain.Option{}, nil
	}

	got, _, err := svc.SelectDepartment(context.Background(), form.ID, "")
	require.NoError(t, err)
	assert.Nil(t, got.DepartmentID)
	assert.Empty(t, gotDept)
}

func TestSubmitHostRequiresEmployee(t *testing.T) {
	repo, _, svc := newWizardFixture()
	form := validForm()
	form.EmployeeID = nil
	seed(t, repo, form)

	_, err := svc.SubmitHost(context.Background(), form.ID, "", 7)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "employee")
}

func TestSubmitHostRejectsEmployeeOutsideBranch(t *testing.T) {
	repo, gateway, svc := newWizardFixture()
	form := validForm()
	seed(t, repo, form)

	gateway.EmployeeListFunc = func(ctx context.Context, branchID, departmentID string) ([]domain.Option, error) {
		return []domain.Option{{ID: "e1", Name: "A"}}, nil
	}

	_, err := svc.SubmitHost(context.Background(), form.ID, "e7", 7)
	assert.ErrorIs(t, err, domain.ErrEmployeeNotInHost)
}

func TestSubmitHostIssuesGatePass(t *testing.T) {
	repo, gateway, svc := newWizardFixture()
	form := validForm()
	seed(t, repo, form)

	issued := &domain.GatePass{
		ID:         "981",
		VisitorID:  "42",
		Name:       "J Doe",
		CardNumber: 4017,
		QRPath:     "passes/981/qr.png",
	}
	gateway.EmployeeListFunc = func(ctx context.Context, branchID, departmentID string) ([]domain.Option, error) {
		return []domain.Option{{ID: "e7", Name: "Host"}}, nil
	}
	gateway.SaveSelfVisitorEntryFunc = func(ctx context.Context, payload *domain.RegistrationPayload) (*domain.GatePass, error) {
		assert.Equal(t, 7, payload.LoginUserID)
		assert.Equal(t, "9876543210", payload.Contact)
		assert.Equal(t, "e7", payload.ToMeet)
		return issued, nil
	}

	got, err := svc.SubmitHost(context.Background(), form.ID, "e7", 7)
	require.NoError(t, err)
	assert.Equal(t, domain.StepGatePass, got.Step)
	assert.Equal(t, issued, got.GatePass)

	// The stored pass comes back untouched
	pass, err := svc.GatePass(context.Background(), form.ID)
	require.NoError(t, err)
	assert.Equal(t, issued, pass)

	// No re-entry after completion
	_, err = svc.SubmitPurpose(context.Background(), form.ID, "Meeting")
	assert.ErrorIs(t, err, domain.ErrWizardFinished)
}

func TestSubmitHostFailureKeepsStateForRetry(t *testing.T) {
	repo, gateway, svc := newWizardFixture()
	form := validForm()
	seed(t, repo, form)

	gateway.EmployeeListFunc = func(ctx context.Context, branchID, departmentID string) ([]domain.Option, error) {
		return []domain.Option{{ID: "e7", Name: "Host"}}, nil
	}
	gateway.SaveSelfVisitorEntryFunc = func(ctx context.Context, payload *domain.RegistrationPayload) (*domain.GatePass, error) {
		return nil, &domain.UpstreamError{StatusCode: 500, Message: "server error"}
	}

	_, err := svc.SubmitHost(context.Background(), form.ID, "e7", 7)
	require.Error(t, err)

	// The session survives with everything the operator entered
	kept, err := svc.Get(context.Background(), form.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.GatePass)
	assert.Equal(t, "J Doe", kept.Name)
	require.NotNil(t, kept.EmployeeID)
	assert.Equal(t, "e7", *kept.EmployeeID)
}

func TestGatePassBeforeIssue(t *testing.T) {
	repo, _, svc := newWizardFixture()
	seed(t, repo, domain.NewFormState("w1"))

	_, err := svc.GatePass(context.Background(), "w1")
	assert.ErrorIs(t, err, domain.ErrGatePassNotIssued)
}

func TestCancelRemovesSession(t *testing.T) {
	repo, _, svc := newWizardFixture()
	seed(t, repo, domain.NewFormState("w1"))

	require.NoError(t, svc.Cancel(context.Background(), "w1"))
	_, err := svc.Get(context.Background(), "w1")
	assert.ErrorIs(t, err, domain.ErrWizardNotFound)
}
