package hospitaluser

import (
	"time"

	"github.com/google/uuid"

	"github.com/caredesk/hospital-admin/internal/domain/hospital"
	"github.com/caredesk/hospital-admin/pkg/validation"
)

// User maps to the hospital_user table. HospitalDetails is joined in on
// reads so list rows can show the hospital name without a second request.
type User struct {
	ID               uuid.UUID         `db:"id" json:"id"`
	FirstName        string            `db:"first_name" json:"first_name"`
	LastName         string            `db:"last_name" json:"last_name"`
	Email            string            `db:"email" json:"email"`
	Phone            string            `db:"phone" json:"phone"`
	HospitalID       uuid.UUID         `db:"hospital_id" json:"hospital_id"`
	Designation      string            `db:"designation" json:"designation"`
	StaffStatus      string            `db:"staff_status" json:"staff_status"`
	IsDoctor         bool              `db:"is_doctor" json:"is_doctor"`
	IsAdmin          bool              `db:"is_admin" json:"is_admin"`
	SetAvailability  bool              `db:"set_availability" json:"set_availability"`
	Color            string            `db:"color" json:"color"`
	PasswordHash     string            `db:"password_hash" json:"-"`
	InviteAcceptedAt *time.Time        `db:"invite_accepted_at" json:"invite_accepted_at,omitempty"`
	CreatedAt        time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time         `db:"updated_at" json:"updated_at"`
	HospitalDetails  *hospital.Summary `db:"-" json:"hospital_details,omitempty"`
}

// Active reports whether the user may sign in.
func (u *User) Active() bool {
	return u.StaffStatus == validation.StatusActive
}

// Fields projects the editable fields into the draft map the validation rule
// set operates on.
func (u *User) Fields() map[string]string {
	hospitalID := ""
	if u.HospitalID != uuid.Nil {
		hospitalID = u.HospitalID.String()
	}
	return map[string]string{
		validation.FieldFirstName:   u.FirstName,
		validation.FieldLastName:    u.LastName,
		validation.FieldEmail:       u.Email,
		validation.FieldPhone:       u.Phone,
		validation.FieldHospitalID:  hospitalID,
		validation.FieldStaffStatus: u.StaffStatus,
	}
}
