package hospitaluser

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("hospital user not found")

// ErrDuplicateEmail is returned when a create or update would reuse an email
// another user already holds.
var ErrDuplicateEmail = errors.New("email already in use")

type ListQuery struct {
	Search     string
	HospitalID uuid.UUID
	Limit      int
	Offset     int
}

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, q ListQuery) ([]*User, int, error)
	SetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}
