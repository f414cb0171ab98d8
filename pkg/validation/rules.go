package validation

// Per-resource rule sets. Drafts are field maps keyed by wire field name, the
// same shape the admin client's form controller edits, so both the server and
// the client run exactly these rules.

// Hospital field names.
const (
	FieldName             = "name"
	FieldSpeciality       = "speciality"
	FieldAddressLine1     = "address_line1"
	FieldCity             = "city"
	FieldPinCode          = "pin_code"
	FieldPhone            = "phone"
	FieldMobile           = "mobile"
	FieldEmail            = "email"
	FieldWorkingHoursFrom = "working_hours_from"
	FieldWorkingHoursTo   = "working_hours_to"
)

// HospitalUser field names.
const (
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldHospitalID  = "hospital_id"
	FieldStaffStatus = "staff_status"
)

// Staff status values.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// ValidateHospital runs the full hospital rule set over a draft field map.
func ValidateHospital(draft map[string]string) Result {
	res := Result{}
	res.Merge(Required(FieldName, draft[FieldName]))
	res.Merge(Required(FieldAddressLine1, draft[FieldAddressLine1]))
	res.Merge(Required(FieldCity, draft[FieldCity]))
	res.Merge(Required(FieldPinCode, draft[FieldPinCode]))
	res.Merge(Required(FieldEmail, draft[FieldEmail]))
	res.Merge(Email(FieldEmail, draft[FieldEmail]))
	res.Merge(Phone(FieldPhone, draft[FieldPhone]))
	res.Merge(Phone(FieldMobile, draft[FieldMobile]))
	res.Merge(PinCode(FieldPinCode, draft[FieldPinCode]))
	res.Merge(TimeRange(FieldWorkingHoursFrom, FieldWorkingHoursTo,
		draft[FieldWorkingHoursFrom], draft[FieldWorkingHoursTo]))
	return res
}

// ValidateHospitalUser runs the full hospital user rule set over a draft
// field map.
func ValidateHospitalUser(draft map[string]string) Result {
	res := Result{}
	res.Merge(Required(FieldFirstName, draft[FieldFirstName]))
	res.Merge(Required(FieldLastName, draft[FieldLastName]))
	res.Merge(Required(FieldEmail, draft[FieldEmail]))
	res.Merge(Required(FieldHospitalID, draft[FieldHospitalID]))
	res.Merge(Email(FieldEmail, draft[FieldEmail]))
	res.Merge(Phone(FieldPhone, draft[FieldPhone]))
	res.Merge(OneOf(FieldStaffStatus, draft[FieldStaffStatus], StatusActive, StatusInactive))
	return res
}
