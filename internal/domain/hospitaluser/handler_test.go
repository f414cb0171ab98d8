package hospitaluser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *mockRepo, *echo.Echo) {
	svc, repo, _ := newTestService()
	return NewHandler(svc), repo, echo.New()
}

func TestHandler_Create(t *testing.T) {
	h, _, e := newTestHandler()

	body := fmt.Sprintf(
		`{"first_name":"Asha","last_name":"Kulkarni","email":"asha@citycare.org","hospital_id":"%s","staff_status":"Active"}`,
		uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/hospitaluser", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "password_hash") {
		t.Error("password hash must never appear in responses")
	}
}

func TestHandler_Create_ValidationErrors(t *testing.T) {
	h, _, e := newTestHandler()

	body := `{"first_name":"","email":"bad"}`
	req := httptest.NewRequest(http.MethodPost, "/hospitaluser", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	for _, field := range []string{"first_name", "last_name", "email", "hospital_id"} {
		if _, ok := resp.Errors[field]; !ok {
			t.Errorf("expected inline error for %s", field)
		}
	}
}

func TestHandler_List_FilterByHospital(t *testing.T) {
	h, repo, e := newTestHandler()

	hospitalID := uuid.New()
	for i := 0; i < 3; i++ {
		u := validUser()
		u.Email = fmt.Sprintf("user%d@citycare.org", i)
		if i < 2 {
			u.HospitalID = hospitalID
		}
		repo.Create(context.Background(), u)
	}

	req := httptest.NewRequest(http.MethodGet, "/hospitaluser?hospital_id="+hospitalID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp struct {
		Data struct {
			Items      []User `json:"items"`
			TotalCount int    `json:"totalCount"`
		} `json:"data"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Data.TotalCount != 2 {
		t.Errorf("expected totalCount 2, got %d", resp.Data.TotalCount)
	}
}

func TestHandler_List_InvalidHospitalFilter(t *testing.T) {
	h, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/hospitaluser?hospital_id=nope", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.List(c)
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_Get_NotFound(t *testing.T) {
	h, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	err := h.Get(c)
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_Get_RepoFailure(t *testing.T) {
	h, repo, e := newTestHandler()
	repo.getErr = errors.New("acquire connection: pool exhausted")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	// A repository failure is not a missing record.
	err := h.Get(c)
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %v", err)
	}
}

func TestHandler_Update_SendsFullDraft(t *testing.T) {
	h, repo, e := newTestHandler()

	u := validUser()
	repo.Create(context.Background(), u)

	body := fmt.Sprintf(
		`{"first_name":"Asha","last_name":"Deshpande","email":"asha.kulkarni@citycare.org","hospital_id":"%s","staff_status":"Inactive"}`,
		u.HospitalID)
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(u.ID.String())

	if err := h.Update(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	got, _ := repo.GetByID(context.Background(), u.ID)
	if got.LastName != "Deshpande" || got.StaffStatus != "Inactive" {
		t.Errorf("expected full draft persisted, got %+v", got)
	}
}

func TestHandler_Delete(t *testing.T) {
	h, repo, e := newTestHandler()

	u := validUser()
	repo.Create(context.Background(), u)

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(u.ID.String())

	if err := h.Delete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}
