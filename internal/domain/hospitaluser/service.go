package hospitaluser

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

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

// InviteIssuer mints the single-use token mailed to a newly created user so
// they can set a password. Satisfied by the platform token issuer.
type InviteIssuer interface {
	IssueInvite(userID uuid.UUID) (string, error)
}

type Service struct {
	repo    Repository
	invites InviteIssuer
	log     zerolog.Logger
}

func NewService(repo Repository, invites InviteIssuer, log zerolog.Logger) *Service {
	return &Service{repo: repo, invites: invites, log: log}
}

// Create validates the draft, stores the user and issues an invitation token.
// There is no mail integration yet, so the token is logged for the operator
// to hand over out of band.
func (s *Service) Create(ctx context.Context, u *User) error {
	normalize(u)
	if u.StaffStatus == "" {
		u.StaffStatus = validation.StatusActive
	}
	if res := validation.ValidateHospitalUser(u.Fields()); !res.Valid() {
		return &ValidationError{Fields: res}
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return err
	}

	token, err := s.invites.IssueInvite(u.ID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", u.ID.String()).
			Msg("failed to issue invitation token")
		return nil
	}
	s.log.Info().Str("user_id", u.ID.String()).Str("email", u.Email).
		Str("invite_token", token).
		Msg("invitation issued")
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, email)
}

// Update persists the full draft; unchanged fields are sent and written too.
// The password hash and invite state are untouched by updates.
func (s *Service) Update(ctx context.Context, u *User) error {
	normalize(u)
	if res := validation.ValidateHospitalUser(u.Fields()); !res.Valid() {
		return &ValidationError{Fields: res}
	}
	return s.repo.Update(ctx, u)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]*User, int, error) {
	return s.repo.List(ctx, q)
}

// AcceptInvite stores the password hash a newly invited user picked. Used by
// the auth handler through the user-directory adapter.
func (s *Service) AcceptInvite(ctx context.Context, id uuid.UUID, passwordHash string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.SetPassword(ctx, id, passwordHash)
}

func normalize(u *User) {
	u.FirstName = strings.TrimSpace(u.FirstName)
	u.LastName = strings.TrimSpace(u.LastName)
	u.Email = strings.TrimSpace(u.Email)
}
