package adminclient

import (
	"github.com/caredesk/hospital-admin/pkg/validation"
)

// Form holds an in-flight draft as a field map, the same shape the
// validation rule sets run on server-side. Editing a field clears only that
// field's error; the rest stay visible until the next full validation.
type Form struct {
	defaults map[string]string
	fields   map[string]string
	errors   validation.Result
	validate func(map[string]string) validation.Result
}

// NewForm builds a form over a rule set. defaults seed every Reset; pass the
// values a blank create dialog should open with.
func NewForm(validate func(map[string]string) validation.Result, defaults map[string]string) *Form {
	f := &Form{
		defaults: defaults,
		validate: validate,
	}
	f.Reset()
	return f
}

// NewHospitalForm is the hospital create/edit draft.
func NewHospitalForm() *Form {
	return NewForm(validation.ValidateHospital, nil)
}

// NewHospitalUserForm is the user create/edit draft. New users start Active.
func NewHospitalUserForm() *Form {
	return NewForm(validation.ValidateHospitalUser, map[string]string{
		validation.FieldStaffStatus: validation.StatusActive,
	})
}

// Reset discards the draft and reloads the defaults.
func (f *Form) Reset() {
	f.fields = make(map[string]string, len(f.defaults))
	for k, v := range f.defaults {
		f.fields[k] = v
	}
	f.errors = validation.Result{}
}

// Load replaces the draft with an existing record's fields, for edit dialogs.
func (f *Form) Load(fields map[string]string) {
	f.fields = make(map[string]string, len(fields))
	for k, v := range fields {
		f.fields[k] = v
	}
	f.errors = validation.Result{}
}

// SetField updates one field and clears its error, if any.
func (f *Form) SetField(name, value string) {
	f.fields[name] = value
	delete(f.errors, name)
}

func (f *Form) Field(name string) string {
	return f.fields[name]
}

// Fields returns the complete draft. Updates send this whole map, so
// untouched fields travel too.
func (f *Form) Fields() map[string]string {
	out := make(map[string]string, len(f.fields))
	for k, v := range f.fields {
		out[k] = v
	}
	return out
}

// Validate runs the rule set over the draft and records the outcome.
func (f *Form) Validate() bool {
	f.errors = f.validate(f.fields)
	return f.errors.Valid()
}

// FieldError returns the message for a field, empty when the field is fine.
func (f *Form) FieldError(name string) string {
	return f.errors[name]
}

// Errors returns the current field errors.
func (f *Form) Errors() validation.Result {
	return f.errors
}

// SetErrors installs server-reported field errors, e.g. from a 422.
func (f *Form) SetErrors(fields map[string]string) {
	f.errors = validation.Result{}
	for k, v := range fields {
		f.errors[k] = v
	}
}
