package adminclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Hospital is the wire shape of a hospital record.
type Hospital struct {
	ID               string `json:"id,omitempty"`
	RegistrationID   string `json:"registration_id,omitempty"`
	Name             string `json:"name"`
	Speciality       string `json:"speciality"`
	AddressLine1     string `json:"address_line1"`
	AddressLine2     string `json:"address_line2"`
	City             string `json:"city"`
	State            string `json:"state"`
	PinCode          string `json:"pin_code"`
	Phone            string `json:"phone"`
	Mobile           string `json:"mobile"`
	Email            string `json:"email"`
	WorkingHoursFrom string `json:"working_hours_from"`
	WorkingHoursTo   string `json:"working_hours_to"`
}

// HospitalSummary is the joined hospital slice embedded in user records.
type HospitalSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

// HospitalUser is the wire shape of a hospital user record.
type HospitalUser struct {
	ID              string           `json:"id,omitempty"`
	FirstName       string           `json:"first_name"`
	LastName        string           `json:"last_name"`
	Email           string           `json:"email"`
	Phone           string           `json:"phone"`
	HospitalID      string           `json:"hospital_id"`
	Designation     string           `json:"designation"`
	StaffStatus     string           `json:"staff_status"`
	IsDoctor        bool             `json:"is_doctor"`
	SetAvailability bool             `json:"set_availability"`
	Color           string           `json:"color"`
	HospitalDetails *HospitalSummary `json:"hospital_details,omitempty"`
}

// Page is one page of a listing plus the totals needed to paginate.
type Page[T any] struct {
	Items      []T
	TotalCount int
	Page       int
}

// Query names a page of a listing. Filters are extra query parameters, e.g.
// hospital_id on user listings.
type Query struct {
	Search  string
	Filters map[string]string
	Page    int
	Limit   int
}

// Client is the typed gateway to the admin API. It is not safe for
// concurrent use while SetToken is being called.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken installs the bearer token sent with every subsequent request.
func (c *Client) SetToken(token string) {
	c.token = token
}

type SignInResult struct {
	Token   string `json:"token"`
	UserID  string `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
}

// SignIn exchanges credentials for a session token and installs it on the
// client.
func (c *Client) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	var res SignInResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/signin", body, &res); err != nil {
		return nil, err
	}
	c.token = res.Token
	return &res, nil
}

// ValidateSession asks the API whether the installed token still names an
// admin session. The router calls this before rendering any admin page.
func (c *Client) ValidateSession(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/auth/adminvalidate", nil, nil)
}

// AcceptInvitation sets the password for an invited user identified by the
// invite token.
func (c *Client) AcceptInvitation(ctx context.Context, token, password string) error {
	body := map[string]string{"token": token, "password": password}
	return c.do(ctx, http.MethodPost, "/auth/invitation/accept", body, nil)
}

func (c *Client) ListHospitals(ctx context.Context, q Query) (Page[Hospital], error) {
	return list[Hospital](ctx, c, "/hospital", q)
}

func (c *Client) GetHospital(ctx context.Context, id string) (*Hospital, error) {
	var h Hospital
	if err := c.do(ctx, http.MethodGet, "/hospital/"+id, nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (c *Client) CreateHospital(ctx context.Context, h *Hospital) (*Hospital, error) {
	var created Hospital
	if err := c.do(ctx, http.MethodPost, "/hospital", h, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateHospital sends the complete draft; the server overwrites every
// editable field.
func (c *Client) UpdateHospital(ctx context.Context, h *Hospital) (*Hospital, error) {
	var updated Hospital
	if err := c.do(ctx, http.MethodPut, "/hospital/"+h.ID, h, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteHospital(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/hospital/"+id, nil, nil)
}

func (c *Client) ListHospitalUsers(ctx context.Context, q Query) (Page[HospitalUser], error) {
	return list[HospitalUser](ctx, c, "/hospitaluser", q)
}

func (c *Client) GetHospitalUser(ctx context.Context, id string) (*HospitalUser, error) {
	var u HospitalUser
	if err := c.do(ctx, http.MethodGet, "/hospitaluser/"+id, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) CreateHospitalUser(ctx context.Context, u *HospitalUser) (*HospitalUser, error) {
	var created HospitalUser
	if err := c.do(ctx, http.MethodPost, "/hospitaluser", u, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateHospitalUser(ctx context.Context, u *HospitalUser) (*HospitalUser, error) {
	var updated HospitalUser
	if err := c.do(ctx, http.MethodPut, "/hospitaluser/"+u.ID, u, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteHospitalUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/hospitaluser/"+id, nil, nil)
}

// envelope matches the listing response shape {"data":{"items":...}}.
type envelope[T any] struct {
	Data struct {
		Items      []T `json:"items"`
		TotalCount int `json:"totalCount"`
		Page       int `json:"page"`
	} `json:"data"`
}

func list[T any](ctx context.Context, c *Client, path string, q Query) (Page[T], error) {
	params := url.Values{}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	for k, v := range q.Filters {
		if v != "" {
			params.Set(k, v)
		}
	}
	if enc := params.Encode(); enc != "" {
		path += "?" + enc
	}

	var env envelope[T]
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return Page[T]{}, err
	}
	return Page[T]{
		Items:      env.Data.Items,
		TotalCount: env.Data.TotalCount,
		Page:       env.Data.Page,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var payload struct {
		ErrorMessage string            `json:"errorMessage"`
		Message      string            `json:"message"`
		Errors       map[string]string `json:"errors"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&payload)

	msg := payload.ErrorMessage
	if msg == "" {
		msg = payload.Message
	}
	if msg == "" {
		msg = resp.Status
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    msg,
		Fields:     payload.Errors,
	}
}
