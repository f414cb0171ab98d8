package adminclient

import (
	"context"
	"errors"
	"fmt"
)

// Editor states. Exactly one dialog can be open at a time, and a dialog in
// flight cannot be reopened or resubmitted.
type EditorState int

const (
	StateIdle EditorState = iota
	StateEditing
	StateSubmitting
	StateConfirmingDelete
	StateDeleting
)

func (s EditorState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	case StateConfirmingDelete:
		return "confirming-delete"
	case StateDeleting:
		return "deleting"
	default:
		return "unknown"
	}
}

var ErrBusy = errors.New("editor is busy")

// SaveFunc persists the draft; it is the client's create call when the
// editor opened blank and the update call when it opened on a record.
type SaveFunc func(ctx context.Context, fields map[string]string) error

// DeleteFunc removes the record the delete dialog was opened on.
type DeleteFunc func(ctx context.Context, id string) error

// Editor orchestrates the create/edit dialog and the delete confirmation for
// one listing. onDone fires after any successful mutation so the listing can
// refetch.
type Editor struct {
	state    EditorState
	form     *Form
	recordID string
	err      error
	onDone   func()
}

func NewEditor(form *Form, onDone func()) *Editor {
	return &Editor{state: StateIdle, form: form, onDone: onDone}
}

func (e *Editor) State() EditorState { return e.state }
func (e *Editor) Form() *Form        { return e.form }

// RecordID is the id under edit or delete, empty for a create dialog.
func (e *Editor) RecordID() string { return e.recordID }

// Err is the last non-validation failure, cleared on the next transition.
func (e *Editor) Err() error { return e.err }

// OpenCreate opens a blank dialog seeded with the form defaults.
func (e *Editor) OpenCreate() error {
	if e.state != StateIdle {
		return ErrBusy
	}
	e.form.Reset()
	e.recordID = ""
	e.err = nil
	e.state = StateEditing
	return nil
}

// OpenEdit opens the dialog pre-filled with an existing record.
func (e *Editor) OpenEdit(id string, fields map[string]string) error {
	if e.state != StateIdle {
		return ErrBusy
	}
	e.form.Load(fields)
	e.recordID = id
	e.err = nil
	e.state = StateEditing
	return nil
}

// Cancel closes whichever dialog is open without saving. A submission in
// flight cannot be cancelled.
func (e *Editor) Cancel() error {
	switch e.state {
	case StateEditing, StateConfirmingDelete:
		e.form.Reset()
		e.recordID = ""
		e.err = nil
		e.state = StateIdle
		return nil
	case StateIdle:
		return nil
	default:
		return ErrBusy
	}
}

// Submit validates the draft and, if it passes, persists it. Validation
// failures keep the dialog open with inline errors; a 422 from the server is
// folded back into the form the same way.
func (e *Editor) Submit(ctx context.Context, save SaveFunc) error {
	if e.state != StateEditing {
		return ErrBusy
	}
	if !e.form.Validate() {
		return nil
	}

	e.state = StateSubmitting
	err := save(ctx, e.form.Fields())
	if err != nil {
		e.state = StateEditing
		if fields, ok := IsValidation(err); ok {
			e.form.SetErrors(fields)
			return nil
		}
		e.err = err
		return err
	}

	e.form.Reset()
	e.recordID = ""
	e.err = nil
	e.state = StateIdle
	if e.onDone != nil {
		e.onDone()
	}
	return nil
}

// RequestDelete opens the confirmation dialog for a record.
func (e *Editor) RequestDelete(id string) error {
	if e.state != StateIdle {
		return ErrBusy
	}
	if id == "" {
		return fmt.Errorf("delete: empty id")
	}
	e.recordID = id
	e.err = nil
	e.state = StateConfirmingDelete
	return nil
}

// ConfirmDelete runs the deletion the confirmation dialog was opened for.
func (e *Editor) ConfirmDelete(ctx context.Context, del DeleteFunc) error {
	if e.state != StateConfirmingDelete {
		return ErrBusy
	}

	e.state = StateDeleting
	err := del(ctx, e.recordID)
	if err != nil {
		e.state = StateConfirmingDelete
		e.err = err
		return err
	}

	e.recordID = ""
	e.err = nil
	e.state = StateIdle
	if e.onDone != nil {
		e.onDone()
	}
	return nil
}
