package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/visitorsvc/domain"
	"github.com/you/visitorsvc/internal/http/handlers"
	"github.com/you/visitorsvc/internal/http/middleware"
	"github.com/you/visitorsvc/internal/mocks"
	"github.com/you/visitorsvc/internal/services"
)

type routerFixture struct {
	gateway *mocks.MockUpstreamGateway
	engine  *gin.Engine
}

func newRouterFixture() *routerFixture {
	gin.SetMode(gin.TestMode)

	gateway := mocks.NewMockUpstreamGateway()
	wizardRepo := mocks.NewMockWizardRepository()
	sessionRepo := mocks.NewMockSessionRepository()
	sessionRepo.FindByIDFunc = func(ctx context.Context, sessionID string) (*domain.Session, error) {
		return &domain.Session{ID: sessionID, UserID: 1, UserRole: "Admin", ExpiresAt: time.Now().Add(time.Hour)}, nil
	}
	tokenSvc := mocks.NewMockTokenService()
	credStore := mocks.NewMockCredentialStore()
	policySvc := mocks.NewMockPolicyService()

	authSvc := services.NewAuthService(gateway, sessionRepo, tokenSvc, credStore, time.Hour, 15*time.Minute)
	wizardSvc := services.NewWizardService(wizardRepo, gateway)
	visitorSvc := services.NewVisitorService(gateway, policySvc)
	catalogSvc := services.NewCatalogService(gateway)

	engine := BuildRouter(
		handlers.NewAuthHandlers(authSvc),
		handlers.NewWizardHandlers(wizardSvc),
		handlers.NewVisitorHandlers(visitorSvc),
		handlers.NewCatalogHandlers(catalogSvc),
		middleware.NewAuthMW(tokenSvc, sessionRepo),
	)
	return &routerFixture{gateway: gateway, engine: engine}
}

func (f *routerFixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer token")
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func TestWizardRequiresAuthentication(t *testing.T) {
	f := newRouterFixture()

	req := httptest.NewRequest(http.MethodPost, "/wizard", nil)
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginEndpoint(t *testing.T) {
	f := newRouterFixture()
	f.gateway.LoginFunc = func(ctx context.Context, username, password string) (*domain.User, error) {
		return &domain.User{UserID: 12, UserName: username, UserRole: "Reception"}, nil
	}

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		bytes.NewReader([]byte(`{"username":"reception1","password":"secret"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var res struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.NotEmpty(t, res.Data.AccessToken)
}

func TestWizardFlowOverHTTP(t *testing.T) {
	f := newRouterFixture()
	f.gateway.EmployeeListFunc = func(ctx context.Context, branchID, departmentID string) ([]domain.Option, error) {
		return []domain.Option{{ID: "e7", Name: "Host"}}, nil
	}
	f.gateway.SaveSelfVisitorEntryFunc = func(ctx context.Context, payload *domain.RegistrationPayload) (*domain.GatePass, error) {
		return &domain.GatePass{ID: "981", CardNumber: 4017}, nil
	}

	w := f.do(t, http.MethodPost, "/wizard", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var started struct {
		Data domain.FormState `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &started))
	id := started.Data.ID
	require.NotEmpty(t, id)

	w = f.do(t, http.MethodPost, "/wizard/"+id+"/identify", gin.H{"mobile": "9876543210"})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPost, "/wizard/"+id+"/photo", gin.H{"photo_ref": "file:///tmp/p.jpg"})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPost, "/wizard/"+id+"/profile", gin.H{
		"name": "J Doe", "company": "Acme", "address": "12 North Road",
		"id_proof_id": "2", "id_proof_type": "Aadhar", "id_proof_number": "1234 5678 9012",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPost, "/wizard/"+id+"/purpose", gin.H{"purpose": "Meeting"})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPost, "/wizard/"+id+"/branch", gin.H{"branch_id": "b1"})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPost, "/wizard/"+id+"/submit", gin.H{"employee_id": "e7"})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodGet, "/wizard/"+id+"/gatepass", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var pass struct {
		Data domain.GatePass `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pass))
	assert.Equal(t, 4017, pass.Data.CardNumber)
}

func TestWizardAcceptsLookedUpPhoto(t *testing.T) {
	f := newRouterFixture()
	f.gateway.VisitorByMobileFunc = func(ctx context.Context, mobile string) (*domain.VisitorProfile, error) {
		return &domain.VisitorProfile{
			VisitorID: 42,
			Name:      "J Doe",
			ImageURL:  "https://vms.example/img/42.jpg",
		}, nil
	}

	w := f.do(t, http.MethodPost, "/wizard", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var started struct {
		Data domain.FormState `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &started))
	id := started.Data.ID

	w = f.do(t, http.MethodPost, "/wizard/"+id+"/identify", gin.H{"mobile": "9876543210"})
	require.Equal(t, http.StatusOK, w.Code)

	// The profile photo from the lookup stands in for a fresh capture
	w = f.do(t, http.MethodPost, "/wizard/"+id+"/photo", gin.H{"photo_ref": ""})
	require.Equal(t, http.StatusOK, w.Code)
	var advanced struct {
		Data domain.FormState `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &advanced))
	assert.Equal(t, domain.StepProfile, advanced.Data.Step)
}

func TestWizardValidationErrorShape(t *testing.T) {
	f := newRouterFixture()

	w := f.do(t, http.MethodPost, "/wizard", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var started struct {
		Data domain.FormState `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &started))

	w = f.do(t, http.MethodPost, "/wizard/"+started.Data.ID+"/identify", gin.H{"mobile": "12345"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var res struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Contains(t, res.Fields, "mobile")
}

func TestWizardUnknownSession(t *testing.T) {
	f := newRouterFixture()

	w := f.do(t, http.MethodGet, "/wizard/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckInEndpoint(t *testing.T) {
	f := newRouterFixture()
	f.gateway.VisitorCheckInFunc = func(ctx context.Context, qrCodeID string, userID int, userRole string) (string, error) {
		assert.Equal(t, "GP-0981", qrCodeID)
		return "Visitor checked in", nil
	}

	w := f.do(t, http.MethodPost, "/visitors/GP-0981/checkin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var res struct {
		Data struct {
			Confirmed bool   `json:"confirmed"`
			Message   string `json:"message"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Data.Confirmed)
	assert.Equal(t, "Visitor checked in", res.Data.Message)
}

func TestVisitorDetailsMasksForDisplay(t *testing.T) {
	f := newRouterFixture()
	f.gateway.VisitorDetailsFunc = func(ctx context.Context, id string) (*domain.Visitor, error) {
		return &domain.Visitor{
			VisitorID:     42,
			VisitorName:   "J Doe",
			IDProofNumber: "ABCD1234XYZ",
			FromDate:      "2020-01-01",
			ToDate:        "2020-01-02",
		}, nil
	}

	w := f.do(t, http.MethodGet, "/visitors/981", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var res struct {
		Data           domain.Visitor `json:"data"`
		WithinValidity bool           `json:"within_validity"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.NotContains(t, res.Data.IDProofNumber, "ABCD1234")
	assert.False(t, res.WithinValidity)
}

func TestCatalogEndpointDegradesToEmptyList(t *testing.T) {
	f := newRouterFixture()
	f.gateway.PurposeListFunc = func(ctx context.Context) ([]domain.Option, error) {
		return nil, assert.AnError
	}

	w := f.do(t, http.MethodGet, "/catalog/purposes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var res struct {
		Data []domain.Option `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Empty(t, res.Data)
}
