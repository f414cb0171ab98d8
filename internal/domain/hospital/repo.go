package hospital

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no hospital matches the given id.
var ErrNotFound = errors.New("hospital not found")

// ListQuery narrows and pages a hospital listing. Search matches name,
// speciality, and city case-insensitively.
type ListQuery struct {
	Search string
	Limit  int
	Offset int
}

// Repository defines the persistence interface for hospitals.
type Repository interface {
	Create(ctx context.Context, h *Hospital) error
	GetByID(ctx context.Context, id uuid.UUID) (*Hospital, error)
	Update(ctx context.Context, h *Hospital) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, q ListQuery) ([]*Hospital, int, error)
	// ReferencingUsers counts hospital users still assigned to the hospital.
	ReferencingUsers(ctx context.Context, id uuid.UUID) (int, error)
}
