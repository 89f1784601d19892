package upstream

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/you/visitorsvc/domain"
)

// formatListDate renders the US date form the visitor-list endpoint expects.
func formatListDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}

// VisitorDetails implements domain.UpstreamGateway
func (c *Client) VisitorDetails(ctx context.Context, id string) (*domain.Visitor, error) {
	var res struct {
		StatusCode int             `json:"StatusCode"`
		Message    string          `json:"Message"`
		Data       *domain.Visitor `json:"Data"`
	}
	if err := c.get(ctx, c.baseURL+"/Visitor/GetVisitorDetails/"+id, &res); err != nil {
		return nil, err
	}
	if res.StatusCode != 200 || res.Data == nil {
		return nil, &domain.UpstreamError{StatusCode: res.StatusCode, Message: res.Message}
	}
	return res.Data, nil
}

type checkRequest struct {
	QRCodeID string `json:"QRCodeId"`
	UserID   int    `json:"UserId"`
	UserRole string `json:"UserRole"`
}

// checkInOut performs a check-in or check-out call. The contract carries no
// explicit success flag; a 2xx response with a non-empty Message counts as
// success and the Message is returned for display.
func (c *Client) checkInOut(ctx context.Context, path, qrCodeID string, userID int, userRole string) (string, error) {
	var res struct {
		Message string `json:"Message"`
	}
	err := c.postJSON(ctx, c.baseURL+path, checkRequest{qrCodeID, userID, userRole}, &res)
	if err != nil {
		return "", err
	}
	if res.Message == "" {
		return "", &domain.UpstreamError{StatusCode: 200, Message: "empty response from gate endpoint"}
	}
	return res.Message, nil
}

// VisitorCheckIn implements domain.UpstreamGateway
func (c *Client) VisitorCheckIn(ctx context.Context, qrCodeID string, userID int, userRole string) (string, error) {
	return c.checkInOut(ctx, "/Visitor/VisitorCheckIn", qrCodeID, userID, userRole)
}

// VisitorCheckOut implements domain.UpstreamGateway
func (c *Client) VisitorCheckOut(ctx context.Context, qrCodeID string, userID int, userRole string) (string, error) {
	return c.checkInOut(ctx, "/Visitor/VisitorCheckOut", qrCodeID, userID, userRole)
}

// approval posts an approve/reject action. Unlike check-in/out, this
// contract has an explicit Status success flag, kept distinct here.
func (c *Client) approval(ctx context.Context, path string, visitorID, loginUserID int) (*domain.ActionOutcome, error) {
	u := buildURL(c.baseURL, path, map[string]string{
		"VisitorId":   strconv.Itoa(visitorID),
		"LoginUserId": strconv.Itoa(loginUserID),
	})
	var res struct {
		Status  interface{} `json:"Status"`
		Message string      `json:"Message"`
	}
	if err := c.postJSON(ctx, u, nil, &res); err != nil {
		return nil, err
	}
	return &domain.ActionOutcome{Confirmed: statusOK(res.Status), Message: res.Message}, nil
}

// ApproveVisitor implements domain.UpstreamGateway
func (c *Client) ApproveVisitor(ctx context.Context, visitorID, loginUserID int) (*domain.ActionOutcome, error) {
	return c.approval(ctx, "/Visitor/VisitorApproveByAdmin", visitorID, loginUserID)
}

// RejectVisitor implements domain.UpstreamGateway
func (c *Client) RejectVisitor(ctx context.Context, visitorID, loginUserID int) (*domain.ActionOutcome, error) {
	return c.approval(ctx, "/Visitor/VisitorRejectByAdmin", visitorID, loginUserID)
}

// VisitorList implements domain.UpstreamGateway
func (c *Client) VisitorList(ctx context.Context, loginUserID int, from, to time.Time) ([]domain.VisitorListItem, error) {
	req := struct {
		LoginUserID int    `json:"LoginUserId"`
		FromDate    string `json:"Fromdate"`
		ToDate      string `json:"Todate"`
	}{loginUserID, formatListDate(from), formatListDate(to)}

	var res struct {
		StatusCode int                      `json:"StatusCode"`
		Message    string                   `json:"Message"`
		Data       []domain.VisitorListItem `json:"Data"`
	}
	if err := c.postJSON(ctx, c.baseURL+"/Visitor/GetVisitorList", req, &res); err != nil {
		return nil, err
	}
	if res.StatusCode != 200 {
		return nil, &domain.UpstreamError{StatusCode: res.StatusCode, Message: res.Message}
	}
	return res.Data, nil
}

// UpdateVisitorBySecurity implements domain.UpstreamGateway
func (c *Client) UpdateVisitorBySecurity(ctx context.Context, visitorID int, vehicleType, vehicleNumber, material string) (string, error) {
	req := struct {
		VisitorID     int    `json:"VisitorId"`
		VehicleType   string `json:"VehicleType"`
		VehicleNumber string `json:"VehicleNumber"`
		Material      string `json:"Material"`
	}{visitorID, vehicleType, vehicleNumber, material}

	var res struct {
		Message string `json:"Message"`
	}
	if err := c.postJSON(ctx, c.baseURL+"/Visitor/UpdateVisitorEntryBySecurity", req, &res); err != nil {
		return "", err
	}
	return res.Message, nil
}

// AddVisitorPhoto implements domain.UpstreamGateway
func (c *Client) AddVisitorPhoto(ctx context.Context, visitorID int, imageString string) (string, error) {
	req := struct {
		VisitorID   int    `json:"VisitorId"`
		ImageString string `json:"ImageString"`
	}{visitorID, imageString}

	var res struct {
		StatusCode int    `json:"StatusCode"`
		Message    string `json:"Message"`
	}
	if err := c.postJSON(ctx, c.baseURL+"/Visitor/AddVisitorPhoto", req, &res); err != nil {
		return "", err
	}
	if res.StatusCode != 200 {
		return "", &domain.UpstreamError{StatusCode: res.StatusCode, Message: res.Message}
	}
	return res.Message, nil
}

// Compile-time interface compliance verification
var _ domain.UpstreamGateway = (*Client)(nil)
