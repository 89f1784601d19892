package upstream

import (
	"context"

	"github.com/you/visitorsvc/domain"
)

// Login authenticates an operator against the backend. A well-formed
// response with StatusCode != 200 is a rejection; its Message is surfaced
// verbatim.
func (c *Client) Login(ctx context.Context, username, password string) (*domain.User, error) {
	req := struct {
		Username string `json:"Username"`
		Password string `json:"Password"`
	}{username, password}

	var res struct {
		StatusCode int    `json:"StatusCode"`
		Message    string `json:"Message"`
		Data       *struct {
			UserID   int    `json:"UserId"`
			UserName string `json:"UserName"`
			UserRole string `json:"UserRole"`
		} `json:"Data"`
	}
	if err := c.postJSON(ctx, c.baseURL+"/Login/Login", req, &res); err != nil {
		return nil, err
	}

	if res.StatusCode != 200 || res.Data == nil {
		return nil, &domain.UpstreamError{StatusCode: res.StatusCode, Message: res.Message}
	}

	return &domain.User{
		UserID:   res.Data.UserID,
		UserName: res.Data.UserName,
		UserRole: res.Data.UserRole,
	}, nil
}
