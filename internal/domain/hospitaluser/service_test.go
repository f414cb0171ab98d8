package hospitaluser

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/caredesk/hospital-admin/pkg/validation"
)

// -- Mock Repository --

type mockRepo struct {
	users  map[uuid.UUID]*User
	getErr error
}

func newMockRepo() *mockRepo {
	return &mockRepo{users: make(map[uuid.UUID]*User)}
}

func (m *mockRepo) Create(_ context.Context, u *User) error {
	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return ErrDuplicateEmail
		}
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
	m.users[u.ID] = u
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (m *mockRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) Update(_ context.Context, u *User) error {
	if _, ok := m.users[u.ID]; !ok {
		return ErrNotFound
	}
	m.users[u.ID] = u
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.users[id]; !ok {
		return ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, q ListQuery) ([]*User, int, error) {
	var result []*User
	for _, u := range m.users {
		if q.Search != "" {
			s := strings.ToLower(q.Search)
			if !strings.Contains(strings.ToLower(u.FirstName), s) &&
				!strings.Contains(strings.ToLower(u.LastName), s) &&
				!strings.Contains(strings.ToLower(u.Email), s) {
				continue
			}
		}
		if q.HospitalID != uuid.Nil && u.HospitalID != q.HospitalID {
			continue
		}
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FirstName < result[j].FirstName })
	total := len(result)
	if q.Offset >= len(result) {
		return nil, total, nil
	}
	end := q.Offset + q.Limit
	if end > len(result) {
		end = len(result)
	}
	return result[q.Offset:end], total, nil
}

func (m *mockRepo) SetPassword(_ context.Context, id uuid.UUID, hash string) error {
	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = hash
	now := time.Now()
	u.InviteAcceptedAt = &now
	return nil
}

type mockInviteIssuer struct {
	issued []uuid.UUID
	err    error
}

func (m *mockInviteIssuer) IssueInvite(userID uuid.UUID) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.issued = append(m.issued, userID)
	return "invite-" + userID.String(), nil
}

func newTestService() (*Service, *mockRepo, *mockInviteIssuer) {
	repo := newMockRepo()
	invites := &mockInviteIssuer{}
	return NewService(repo, invites, zerolog.Nop()), repo, invites
}

func validUser() *User {
	return &User{
		FirstName:   "Asha",
		LastName:    "Kulkarni",
		Email:       "asha.kulkarni@citycare.org",
		HospitalID:  uuid.New(),
		StaffStatus: validation.StatusActive,
	}
}

func TestService_Create_IssuesInvite(t *testing.T) {
	svc, _, invites := newTestService()

	u := validUser()
	if err := svc.Create(context.Background(), u); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID == uuid.Nil {
		t.Error("expected an id to be assigned")
	}
	if len(invites.issued) != 1 || invites.issued[0] != u.ID {
		t.Errorf("expected one invite for the new user, got %v", invites.issued)
	}
}

func TestService_Create_DefaultsStatusToActive(t *testing.T) {
	svc, _, _ := newTestService()

	u := validUser()
	u.StaffStatus = ""
	if err := svc.Create(context.Background(), u); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.StaffStatus != validation.StatusActive {
		t.Errorf("expected Active, got %q", u.StaffStatus)
	}
}

func TestService_Create_ValidationFailure(t *testing.T) {
	svc, _, invites := newTestService()

	u := validUser()
	u.FirstName = ""
	u.Email = "not-an-email"

	err := svc.Create(context.Background(), u)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := vErr.Fields[validation.FieldFirstName]; !ok {
		t.Error("expected error on first_name")
	}
	if _, ok := vErr.Fields[validation.FieldEmail]; !ok {
		t.Error("expected error on email")
	}
	if len(invites.issued) != 0 {
		t.Error("no invite may be issued for an invalid draft")
	}
}

func TestService_Create_RejectsBadStatus(t *testing.T) {
	svc, _, _ := newTestService()

	u := validUser()
	u.StaffStatus = "Suspended"

	err := svc.Create(context.Background(), u)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := vErr.Fields[validation.FieldStaffStatus]; !ok {
		t.Error("expected error on staff_status")
	}
}

func TestService_Create_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()

	if err := svc.Create(context.Background(), validUser()); err != nil {
		t.Fatal(err)
	}
	err := svc.Create(context.Background(), validUser())
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestService_Update_PreservesPasswordState(t *testing.T) {
	svc, repo, _ := newTestService()

	u := validUser()
	if err := svc.Create(context.Background(), u); err != nil {
		t.Fatal(err)
	}
	if err := repo.SetPassword(context.Background(), u.ID, "hash"); err != nil {
		t.Fatal(err)
	}

	stored, _ := repo.GetByID(context.Background(), u.ID)
	draft := *stored
	draft.LastName = "Deshpande"
	draft.PasswordHash = ""
	draft.InviteAcceptedAt = nil

	if err := svc.Update(context.Background(), &draft); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := repo.GetByID(context.Background(), u.ID)
	if got.LastName != "Deshpande" {
		t.Errorf("expected update persisted, got %s", got.LastName)
	}
}

func TestService_AcceptInvite(t *testing.T) {
	svc, repo, _ := newTestService()

	u := validUser()
	if err := svc.Create(context.Background(), u); err != nil {
		t.Fatal(err)
	}
	if err := svc.AcceptInvite(context.Background(), u.ID, "bcrypt-hash"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := repo.GetByID(context.Background(), u.ID)
	if got.PasswordHash != "bcrypt-hash" {
		t.Error("expected password hash to be stored")
	}
	if got.InviteAcceptedAt == nil {
		t.Error("expected invite accepted timestamp")
	}
}

func TestService_AcceptInvite_UnknownUser(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.AcceptInvite(context.Background(), uuid.New(), "hash")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestService_List_FilterByHospital(t *testing.T) {
	svc, _, _ := newTestService()

	hospitalID := uuid.New()
	for i, email := range []string{"a@x.org", "b@x.org", "c@x.org"} {
		u := validUser()
		u.Email = email
		if i < 2 {
			u.HospitalID = hospitalID
		}
		if err := svc.Create(context.Background(), u); err != nil {
			t.Fatal(err)
		}
	}

	got, total, err := svc.List(context.Background(), ListQuery{HospitalID: hospitalID, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(got) != 2 {
		t.Errorf("expected 2 users for hospital, got total=%d len=%d", total, len(got))
	}
}

func TestService_List_Search(t *testing.T) {
	svc, _, _ := newTestService()

	names := [][2]string{{"Asha", "Kulkarni"}, {"Ravi", "Mehta"}, {"Asmita", "Joshi"}}
	for _, n := range names {
		u := validUser()
		u.FirstName = n[0]
		u.LastName = n[1]
		u.Email = strings.ToLower(n[0]) + "@citycare.org"
		if err := svc.Create(context.Background(), u); err != nil {
			t.Fatal(err)
		}
	}

	got, total, err := svc.List(context.Background(), ListQuery{Search: "as", Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 {
		t.Errorf("expected 2 matches, got %d", total)
	}
	for _, u := range got {
		if !strings.HasPrefix(u.FirstName, "As") {
			t.Errorf("unexpected match %s", u.FirstName)
		}
	}
}
