// Package client is a typed client for the portal API. It is the only remote
// access path: every read and write goes through the server, so there is no
// second copy of the data to fall out of sync.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"zenweb/internal/models"
)

type Client struct {
	base  string
	hc    *http.Client
	token string
}

func New(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken sets the bearer token used for authenticated calls. Login and
// Impersonate call it automatically.
func (c *Client) SetToken(tok string) { c.token = tok }

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// do runs one request. There is no retry: a failed call surfaces immediately.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 300 {
		var env envelope
		if json.Unmarshal(raw, &env) == nil && env.Message != "" {
			return fmt.Errorf("%s %s: %s", method, path, env.Message)
		}
		return fmt.Errorf("%s %s: server returned %s", method, path, resp.Status)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return err
	}
	if !env.Success {
		if env.Message == "" {
			env.Message = "request failed"
		}
		return errors.New(env.Message)
	}
	if out != nil {
		return json.Unmarshal(raw, out)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Auth
// -----------------------------------------------------------------------------

type RegisterRequest struct {
	Email    string         `json:"email"`
	Name     string         `json:"name"`
	Password string         `json:"password"`
	Company  string         `json:"company,omitempty"`
	Phone    string         `json:"phone,omitempty"`
	Address  models.Address `json:"address"`
}

func (c *Client) Register(ctx context.Context, in RegisterRequest) (*models.UserAccount, error) {
	var out struct {
		User models.UserAccount `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", in, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*models.UserAccount, error) {
	in := map[string]string{"email": email, "password": password}
	var out struct {
		User  models.UserAccount `json:"user"`
		Token string             `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", in, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out.User, nil
}

func (c *Client) Me(ctx context.Context) (*models.UserAccount, error) {
	var out struct {
		User models.UserAccount `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// -----------------------------------------------------------------------------
// Tickets
// -----------------------------------------------------------------------------

type CreateTicketRequest struct {
	RequestType  string `json:"requestType"`
	IssueType    string `json:"issueType,omitempty"`
	ProjectType  string `json:"projectType,omitempty"`
	Priority     string `json:"priority,omitempty"`
	Description  string `json:"description"`
	ContactName  string `json:"contactName,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty"`
	ContactPhone string `json:"contactPhone,omitempty"`
	Company      string `json:"company,omitempty"`
}

type TicketPatchRequest struct {
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Category    *string `json:"category,omitempty"`
	Subject     *string `json:"subject,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (c *Client) CreateTicket(ctx context.Context, in CreateTicketRequest) (*models.Ticket, error) {
	var out struct {
		Ticket models.Ticket `json:"ticket"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/tickets", in, &out); err != nil {
		return nil, err
	}
	return &out.Ticket, nil
}

func (c *Client) Tickets(ctx context.Context) ([]models.Ticket, error) {
	var out struct {
		Tickets []models.Ticket `json:"tickets"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/tickets", nil, &out); err != nil {
		return nil, err
	}
	return out.Tickets, nil
}

func (c *Client) TicketsByUser(ctx context.Context, userID string) ([]models.Ticket, error) {
	var out struct {
		Tickets []models.Ticket `json:"tickets"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/tickets/user/"+userID, nil, &out); err != nil {
		return nil, err
	}
	return out.Tickets, nil
}

func (c *Client) Ticket(ctx context.Context, id string) (*models.Ticket, error) {
	var out struct {
		Ticket models.Ticket `json:"ticket"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/tickets/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out.Ticket, nil
}

func (c *Client) UpdateTicket(ctx context.Context, id string, in TicketPatchRequest) (*models.Ticket, error) {
	var out struct {
		Ticket models.Ticket `json:"ticket"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/tickets/"+id, in, &out); err != nil {
		return nil, err
	}
	return &out.Ticket, nil
}

func (c *Client) DeleteTicket(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tickets/"+id, nil, nil)
}

func (c *Client) AddTicketComment(ctx context.Context, id, body string) (*models.Ticket, error) {
	var out struct {
		Ticket models.Ticket `json:"ticket"`
	}
	in := map[string]string{"body": body}
	if err := c.do(ctx, http.MethodPost, "/api/tickets/"+id+"/comments", in, &out); err != nil {
		return nil, err
	}
	return &out.Ticket, nil
}

// -----------------------------------------------------------------------------
// Users + admin
// -----------------------------------------------------------------------------

func (c *Client) Users(ctx context.Context) ([]models.UserAccount, error) {
	var out struct {
		Users []models.UserAccount `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (c *Client) User(ctx context.Context, id string) (*models.UserAccount, error) {
	var out struct {
		User models.UserAccount `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/users/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Impersonate swaps the client's token for one belonging to the target user.
func (c *Client) Impersonate(ctx context.Context, id string) (*models.UserAccount, error) {
	var out struct {
		User  models.UserAccount `json:"user"`
		Token string             `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/admin/impersonate/"+id, nil, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out.User, nil
}

// ResetPassword returns the one-time temporary password.
func (c *Client) ResetPassword(ctx context.Context, id string) (string, error) {
	var out struct {
		TempPassword string `json:"tempPassword"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/admin/users/"+id+"/reset-password", nil, &out); err != nil {
		return "", err
	}
	return out.TempPassword, nil
}

// -----------------------------------------------------------------------------
// Settings + analytics
// -----------------------------------------------------------------------------

func (c *Client) Settings(ctx context.Context) (models.Settings, error) {
	var out struct {
		Settings models.Settings `json:"settings"`
	}
	err := c.do(ctx, http.MethodGet, "/api/settings", nil, &out)
	return out.Settings, err
}

func (c *Client) UpdateSettings(ctx context.Context, s models.Settings) (models.Settings, error) {
	var out struct {
		Settings models.Settings `json:"settings"`
	}
	err := c.do(ctx, http.MethodPut, "/api/settings", s, &out)
	return out.Settings, err
}

func (c *Client) TestSMS(ctx context.Context, to string) error {
	in := map[string]string{"to": to}
	return c.do(ctx, http.MethodPost, "/api/settings/test-sms", in, nil)
}

// RecordPageView reports a hit and returns the session id to echo next time.
func (c *Client) RecordPageView(ctx context.Context, sessionID, path, referrer string) (string, error) {
	in := map[string]string{"sessionId": sessionID, "path": path, "referrer": referrer}
	var out struct {
		SessionID string `json:"sessionId"`
		Excluded  bool   `json:"excluded"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/analytics/pageview", in, &out); err != nil {
		return "", err
	}
	if out.Excluded {
		return sessionID, nil
	}
	return out.SessionID, nil
}

func (c *Client) AnalyticsSummary(ctx context.Context, days int) (*models.AnalyticsSummary, error) {
	var out struct {
		Analytics models.AnalyticsSummary `json:"analytics"`
	}
	path := fmt.Sprintf("/api/analytics?days=%d", days)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out.Analytics, nil
}

func (c *Client) ExcludedIPs(ctx context.Context) ([]string, error) {
	var out struct {
		ExcludedIPs []string `json:"excludedIps"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/analytics/excluded-ips", nil, &out); err != nil {
		return nil, err
	}
	return out.ExcludedIPs, nil
}

func (c *Client) SetExcludedIPs(ctx context.Context, ips []string) ([]string, error) {
	in := map[string][]string{"excludedIps": ips}
	var out struct {
		ExcludedIPs []string `json:"excludedIps"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/analytics/excluded-ips", in, &out); err != nil {
		return nil, err
	}
	return out.ExcludedIPs, nil
}

func (c *Client) MyIP(ctx context.Context) (string, error) {
	var out struct {
		IP string `json:"ip"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/analytics/my-ip", nil, &out); err != nil {
		return "", err
	}
	return out.IP, nil
}
