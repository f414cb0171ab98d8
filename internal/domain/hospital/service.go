package hospital

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/caredesk/hospital-admin/pkg/validation"
)

// ValidationError carries the field-to-message map back to the handler, which
// renders it as a 422 so the dashboard can show inline errors.
type ValidationError struct {
	Fields validation.Result
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d invalid field(s)", len(e.Fields))
}

// ErrInUse is returned when deleting a hospital that users still reference.
var ErrInUse = fmt.Errorf("hospital has assigned users")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, h *Hospital) error {
	normalize(h)
	if res := validation.ValidateHospital(h.Fields()); !res.Valid() {
		return &ValidationError{Fields: res}
	}
	if h.RegistrationID == "" {
		h.RegistrationID = newRegistrationID()
	}
	if h.RegistrationDate.IsZero() {
		h.RegistrationDate = today()
	}
	return s.repo.Create(ctx, h)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Hospital, error) {
	return s.repo.GetByID(ctx, id)
}

// Update persists the full draft; unchanged fields are sent and written too.
func (s *Service) Update(ctx context.Context, h *Hospital) error {
	normalize(h)
	if res := validation.ValidateHospital(h.Fields()); !res.Valid() {
		return &ValidationError{Fields: res}
	}
	return s.repo.Update(ctx, h)
}

// Delete refuses to remove a hospital that still has users assigned, so the
// dashboard never leaves dangling hospital references behind.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	count, err := s.repo.ReferencingUsers(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrInUse
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]*Hospital, int, error) {
	return s.repo.List(ctx, q)
}

func normalize(h *Hospital) {
	h.Name = strings.TrimSpace(h.Name)
	h.Email = strings.TrimSpace(h.Email)
	h.City = strings.TrimSpace(h.City)
	h.AddressLine1 = strings.TrimSpace(h.AddressLine1)
}

func newRegistrationID() string {
	return "H-" + strings.ToUpper(uuid.New().String()[:8])
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
