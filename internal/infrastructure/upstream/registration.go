package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/you/visitorsvc/domain"
)

// VisitorByMobile looks up an existing visitor profile by phone number.
// Absence of data in the response means this is a new visitor.
func (c *Client) VisitorByMobile(ctx context.Context, mobile string) (*domain.VisitorProfile, error) {
	var res struct {
		Success bool                   `json:"success"`
		Data    *domain.VisitorProfile `json:"data"`
	}
	u := buildURL(c.selfRegisterURL, "/GetVisitorByMobile", map[string]string{"mobile": mobile})
	if err := c.get(ctx, u, &res); err != nil {
		return nil, err
	}
	if !res.Success || res.Data == nil {
		return nil, domain.ErrVisitorNotFound
	}
	return res.Data, nil
}

func (c *Client) options(ctx context.Context, rawURL string) ([]domain.Option, error) {
	var raw json.RawMessage
	if err := c.get(ctx, rawURL, &raw); err != nil {
		return nil, err
	}
	opts, err := decodeOptions(raw)
	if err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", rawURL, err)
	}
	return opts, nil
}

// PurposeList implements domain.UpstreamGateway
func (c *Client) PurposeList(ctx context.Context) ([]domain.Option, error) {
	return c.options(ctx, c.selfRegisterURL+"/GetVisitorPurposeList")
}

// IDProofTypeList implements domain.UpstreamGateway
func (c *Client) IDProofTypeList(ctx context.Context) ([]domain.Option, error) {
	return c.options(ctx, c.selfRegisterURL+"/GetIdProofTypeList")
}

// VisitorTypeList implements domain.UpstreamGateway
func (c *Client) VisitorTypeList(ctx context.Context) ([]domain.Option, error) {
	return c.options(ctx, c.baseURL+"/Visitor/GetVisitortypeList")
}

// VehicleTypeList implements domain.UpstreamGateway
func (c *Client) VehicleTypeList(ctx context.Context) ([]domain.Option, error) {
	return c.options(ctx, c.baseURL+"/Visitor/GetVehicletypeList")
}

// BranchList implements domain.UpstreamGateway
func (c *Client) BranchList(ctx context.Context) ([]domain.Option, error) {
	return c.options(ctx, c.selfRegisterURL+"/GetBranchList")
}

// DepartmentList implements domain.UpstreamGateway
func (c *Client) DepartmentList(ctx context.Context, branchID string) ([]domain.Option, error) {
	u := buildURL(c.selfRegisterURL, "/GetDepartmentList", map[string]string{"branchId": branchID})
	return c.options(ctx, u)
}

// EmployeeList implements domain.UpstreamGateway. An empty departmentID
// returns the branch-wide list.
func (c *Client) EmployeeList(ctx context.Context, branchID, departmentID string) ([]domain.Option, error) {
	params := map[string]string{"branchId": branchID}
	if departmentID != "" {
		params["departmentId"] = departmentID
	}
	u := buildURL(c.selfRegisterURL, "/GetEmployeeList", params)
	return c.options(ctx, u)
}

// SaveSelfVisitorEntry submits the completed registration as a multipart
// form in backend field names and returns the issued gate pass.
func (c *Client) SaveSelfVisitorEntry(ctx context.Context, payload *domain.RegistrationPayload) (*domain.GatePass, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	fields := map[string]string{
		"LoginUserId":   strconv.Itoa(payload.LoginUserID),
		"Contact":       payload.Contact,
		"Name":          payload.Name,
		"Company":       payload.Company,
		"Address":       payload.Address,
		"Purpose":       payload.Purpose,
		"toMeet":        payload.ToMeet,
		"BranchId":      payload.BranchID,
		"DepartmentId":  payload.DepartmentID,
		"EmployeeId":    payload.EmployeeID,
		"IdProof":       payload.IDProof,
		"IdProofNumber": payload.IDProofNumber,
		"Photo":         payload.Photo,
		"DocumentImage": payload.DocumentImage,
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("write form field %s: %w", k, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.selfRegisterURL+"/SaveSelfVisitorEntry", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var res struct {
		Data *domain.GatePass `json:"data"`
	}
	if err := c.do(req, &res); err != nil {
		return nil, err
	}
	if res.Data == nil {
		return nil, &domain.UpstreamError{StatusCode: http.StatusOK, Message: "registration accepted but no gate pass returned"}
	}
	return res.Data, nil
}
