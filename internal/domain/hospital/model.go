package hospital

import (
	"time"

	"github.com/google/uuid"

	"github.com/caredesk/hospital-admin/pkg/validation"
)

// Hospital maps to the hospital table.
type Hospital struct {
	ID               uuid.UUID `db:"id" json:"id"`
	RegistrationID   string    `db:"registration_id" json:"registration_id"`
	Name             string    `db:"name" json:"name"`
	Speciality       string    `db:"speciality" json:"speciality"`
	AddressLine1     string    `db:"address_line1" json:"address_line1"`
	AddressLine2     string    `db:"address_line2" json:"address_line2"`
	City             string    `db:"city" json:"city"`
	State            string    `db:"state" json:"state"`
	PinCode          string    `db:"pin_code" json:"pin_code"`
	Phone            string    `db:"phone" json:"phone"`
	Mobile           string    `db:"mobile" json:"mobile"`
	Email            string    `db:"email" json:"email"`
	WorkingHoursFrom string    `db:"working_hours_from" json:"working_hours_from"`
	WorkingHoursTo   string    `db:"working_hours_to" json:"working_hours_to"`
	RegistrationDate time.Time `db:"registration_date" json:"registration_date"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// Fields projects the editable fields into the draft map the validation rule
// set operates on.
func (h *Hospital) Fields() map[string]string {
	return map[string]string{
		validation.FieldName:             h.Name,
		validation.FieldSpeciality:       h.Speciality,
		validation.FieldAddressLine1:     h.AddressLine1,
		validation.FieldCity:             h.City,
		validation.FieldPinCode:          h.PinCode,
		validation.FieldPhone:            h.Phone,
		validation.FieldMobile:           h.Mobile,
		validation.FieldEmail:            h.Email,
		validation.FieldWorkingHoursFrom: h.WorkingHoursFrom,
		validation.FieldWorkingHoursTo:   h.WorkingHoursTo,
	}
}

// Summary is the denormalized slice of a hospital embedded in other records
// for display.
type Summary struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
	City string    `db:"city" json:"city"`
}
