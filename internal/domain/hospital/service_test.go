package hospital

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/caredesk/hospital-admin/pkg/validation"
)

// -- Mock Repository --

type mockRepo struct {
	hospitals map[uuid.UUID]*Hospital
	userCount map[uuid.UUID]int
	getErr    error
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		hospitals: make(map[uuid.UUID]*Hospital),
		userCount: make(map[uuid.UUID]int),
	}
}

func (m *mockRepo) Create(_ context.Context, h *Hospital) error {
	h.ID = uuid.New()
	h.CreatedAt = time.Now()
	h.UpdatedAt = time.Now()
	m.hospitals[h.ID] = h
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Hospital, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	h, ok := m.hospitals[id]
	if !ok {
		return nil, ErrNotFound
	}
	return h, nil
}

func (m *mockRepo) Update(_ context.Context, h *Hospital) error {
	if _, ok := m.hospitals[h.ID]; !ok {
		return ErrNotFound
	}
	m.hospitals[h.ID] = h
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.hospitals[id]; !ok {
		return ErrNotFound
	}
	delete(m.hospitals, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, q ListQuery) ([]*Hospital, int, error) {
	var result []*Hospital
	for _, h := range m.hospitals {
		if q.Search != "" && !strings.Contains(strings.ToLower(h.Name), strings.ToLower(q.Search)) {
			continue
		}
		result = append(result, h)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
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

func (m *mockRepo) ReferencingUsers(_ context.Context, id uuid.UUID) (int, error) {
	return m.userCount[id], nil
}

func validHospital() *Hospital {
	return &Hospital{
		Name:         "City Care Hospital",
		AddressLine1: "14 Station Road",
		City:         "Pune",
		PinCode:      "411001",
		Email:        "front-desk@citycare.org",
	}
}

func TestService_Create(t *testing.T) {
	svc := NewService(newMockRepo())

	h := validHospital()
	if err := svc.Create(context.Background(), h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.ID == uuid.Nil {
		t.Error("expected an id to be assigned")
	}
	if h.RegistrationID == "" {
		t.Error("expected a registration id to be generated")
	}
	if h.RegistrationDate.IsZero() {
		t.Error("expected registration date to default to today")
	}
}

func TestService_Create_ValidationFailure(t *testing.T) {
	svc := NewService(newMockRepo())

	h := validHospital()
	h.Email = "not-an-email"
	h.PinCode = "12345"

	err := svc.Create(context.Background(), h)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := vErr.Fields[validation.FieldEmail]; !ok {
		t.Error("expected error on email")
	}
	if _, ok := vErr.Fields[validation.FieldPinCode]; !ok {
		t.Error("expected error on pin_code")
	}
}

func TestService_Create_InvertedWorkingHours(t *testing.T) {
	svc := NewService(newMockRepo())

	h := validHospital()
	h.WorkingHoursFrom = "09:00"
	h.WorkingHoursTo = "08:00"

	err := svc.Create(context.Background(), h)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := vErr.Fields[validation.FieldWorkingHoursTo]; !ok {
		t.Error("expected error on working_hours_to")
	}
}

func TestService_Update_KeepsRegistrationID(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	h := validHospital()
	if err := svc.Create(context.Background(), h); err != nil {
		t.Fatal(err)
	}
	regID := h.RegistrationID

	h.Speciality = "Cardiology"
	if err := svc.Update(context.Background(), h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.RegistrationID != regID {
		t.Error("registration id must survive updates")
	}
	got, _ := repo.GetByID(context.Background(), h.ID)
	if got.Speciality != "Cardiology" {
		t.Errorf("expected update persisted, got %s", got.Speciality)
	}
}

func TestService_Delete_RefusedWhenReferenced(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	h := validHospital()
	if err := svc.Create(context.Background(), h); err != nil {
		t.Fatal(err)
	}
	repo.userCount[h.ID] = 3

	if err := svc.Delete(context.Background(), h.ID); !errors.Is(err, ErrInUse) {
		t.Errorf("expected ErrInUse, got %v", err)
	}
	if _, err := repo.GetByID(context.Background(), h.ID); err != nil {
		t.Error("hospital must still exist after refused delete")
	}
}

func TestService_Delete(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	h := validHospital()
	if err := svc.Create(context.Background(), h); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(context.Background(), h.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.GetByID(context.Background(), h.ID); !errors.Is(err, ErrNotFound) {
		t.Error("expected hospital to be gone")
	}
}

func TestService_List_SearchAndPaging(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	names := []string{"Apollo", "City Care", "City General", "Fortis"}
	for _, name := range names {
		h := validHospital()
		h.Name = name
		if err := svc.Create(context.Background(), h); err != nil {
			t.Fatal(err)
		}
	}

	got, total, err := svc.List(context.Background(), ListQuery{Search: "city", Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 {
		t.Errorf("expected total 2, got %d", total)
	}
	if len(got) != 1 || got[0].Name != "City General" {
		t.Errorf("expected second match only, got %+v", got)
	}
}
