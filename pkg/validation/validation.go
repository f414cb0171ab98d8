// Package validation implements the field validation rules shared by the
// hospital-admin API and the admin client. All checks are pure functions so
// they can run on a draft before it ever reaches the network.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Result maps a field name to a human-readable error message. An empty map
// means the draft is fully valid; a non-empty map blocks submission.
type Result map[string]string

// Valid reports whether no field failed validation.
func (r Result) Valid() bool { return len(r) == 0 }

// Merge copies all entries from other into r, keeping existing entries.
func (r Result) Merge(other Result) {
	for field, msg := range other {
		if _, ok := r[field]; !ok {
			r[field] = msg
		}
	}
}

var (
	emailRe   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[a-zA-Z]{2,}$`)
	digitsRe  = regexp.MustCompile(`^[0-9]+$`)
	pinCodeRe = regexp.MustCompile(`^[0-9]{6}$`)
)

// phoneStripper removes the separator characters tolerated in phone input.
var phoneStripper = strings.NewReplacer("-", "", "(", "", ")", "", " ", "")

// Required returns an error message when value is empty or whitespace.
func Required(field, value string) Result {
	if strings.TrimSpace(value) == "" {
		return Result{field: fmt.Sprintf("%s is required", label(field))}
	}
	return Result{}
}

// Email checks a simple local@domain.tld shape. Empty values pass; pair with
// Required when the field is mandatory.
func Email(field, value string) Result {
	if value == "" {
		return Result{}
	}
	if !emailRe.MatchString(value) {
		return Result{field: "enter a valid email address"}
	}
	return Result{}
}

// Phone strips separators and requires 10 to 12 digits. Stripping is
// idempotent: validating an already-stripped number gives the same result.
func Phone(field, value string) Result {
	if value == "" {
		return Result{}
	}
	stripped := phoneStripper.Replace(value)
	if !digitsRe.MatchString(stripped) || len(stripped) < 10 || len(stripped) > 12 {
		return Result{field: "enter a valid phone number (10-12 digits)"}
	}
	return Result{}
}

// PinCode requires exactly 6 digits.
func PinCode(field, value string) Result {
	if value == "" {
		return Result{}
	}
	if !pinCodeRe.MatchString(value) {
		return Result{field: "pin code must be exactly 6 digits"}
	}
	return Result{}
}

// TimeRange checks that from is strictly earlier than to when both are
// present, compared as same-day HH:MM clock times. A violation is reported on
// the "to" field only.
func TimeRange(fromField, toField, from, to string) Result {
	if from == "" || to == "" {
		return Result{}
	}
	fromT, errFrom := parseClock(from)
	toT, errTo := parseClock(to)
	res := Result{}
	if errFrom != nil {
		res[fromField] = "enter a valid time (HH:MM)"
	}
	if errTo != nil {
		res[toField] = "enter a valid time (HH:MM)"
	}
	if len(res) > 0 {
		return res
	}
	if !fromT.Before(toT) {
		res[toField] = "closing time must be after opening time"
	}
	return res
}

// OneOf checks that value is one of the allowed options. Empty values pass.
func OneOf(field, value string, allowed ...string) Result {
	if value == "" {
		return Result{}
	}
	for _, a := range allowed {
		if value == a {
			return Result{}
		}
	}
	return Result{field: fmt.Sprintf("%s must be one of: %s", label(field), strings.Join(allowed, ", "))}
}

func parseClock(s string) (time.Time, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// label turns a snake_case field name into a readable label for messages.
func label(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}
