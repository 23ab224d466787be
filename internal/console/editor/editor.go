// Package editor implements the in-place record editing state machine. Each
// record is either Viewing (no draft, canonical record is read-only) or
// Editing (a draft copy exists and absorbs every field write). The canonical
// list is never touched by the editor; promotion of a draft into an update
// payload is the submission pipeline's job.
package editor

import (
	"errors"
	"fmt"
)

// ErrUnknownField reports a field key the draft type does not bind.
var ErrUnknownField = errors.New("editor: unknown field")

// ErrNotEditing reports an operation on a record that has no open draft.
var ErrNotEditing = errors.New("editor: record is not being edited")

// Validator checks a single raw field value and returns nil or the message
// to annotate the field with.
type Validator func(string) error

// Normalizer rewrites a raw field value before it is stored, e.g. the phone
// typing filter that strips non-digits and caps the length.
type Normalizer func(string) string

// SetFieldFunc writes one named field into a draft and reports whether the
// key is known.
type SetFieldFunc[D any] func(draft *D, key, value string) bool

// Config controls editor behavior.
type Config struct {
	// SingleRowEdit makes beginning a new edit implicitly cancel any other
	// open draft, so at most one record is in Editing state at a time.
	// This is the supported default; multi-row editing is permitted but the
	// console never exposes it.
	SingleRowEdit bool

	// Validators maps field keys to their inline validators. A field edit
	// re-runs only its own validator; empty values are left to the
	// submission pipeline's required-field check rather than flagged on
	// every keystroke.
	Validators map[string]Validator

	// Normalizers maps field keys to input rewrites applied before the
	// value is stored or validated.
	Normalizers map[string]Normalizer
}

// ErrorSet maps field keys to human-readable messages for one record.
type ErrorSet map[string]string

type entry[D any] struct {
	draft  D
	errors ErrorSet
}

// Editor tracks edit drafts per record id.
type Editor[D any] struct {
	cfg      Config
	setField SetFieldFunc[D]
	open     map[string]*entry[D]
}

// New builds an editor for one draft type.
func New[D any](cfg Config, setField SetFieldFunc[D]) *Editor[D] {
	return &Editor[D]{
		cfg:      cfg,
		setField: setField,
		open:     make(map[string]*entry[D]),
	}
}

// Begin moves a record from Viewing to Editing, seeding the draft from the
// caller's deep copy of the record's editable fields and clearing any prior
// error state. Under SingleRowEdit any other open draft is cancelled first.
func (e *Editor[D]) Begin(id string, seed D) {
	if e.cfg.SingleRowEdit {
		for openID := range e.open {
			if openID != id {
				delete(e.open, openID)
			}
		}
	}
	e.open[id] = &entry[D]{draft: seed, errors: make(ErrorSet)}
}

// Cancel discards the draft and error state for a record, returning it to
// Viewing. The canonical record is untouched. Reports whether a draft was
// actually open.
func (e *Editor[D]) Cancel(id string) bool {
	if _, ok := e.open[id]; !ok {
		return false
	}
	delete(e.open, id)
	return true
}

// Editing reports whether the record has an open draft.
func (e *Editor[D]) Editing(id string) bool {
	_, ok := e.open[id]
	return ok
}

// EditingID returns the id of the open draft, if any. Only meaningful under
// SingleRowEdit.
func (e *Editor[D]) EditingID() (string, bool) {
	for id := range e.open {
		return id, true
	}
	return "", false
}

// Draft returns a copy of the record's draft.
func (e *Editor[D]) Draft(id string) (D, bool) {
	ent, ok := e.open[id]
	if !ok {
		var zero D
		return zero, false
	}
	return ent.draft, true
}

// UpdateDraft applies fn to the live draft. It exists for structured edits
// that don't fit the string field model, such as role permission renames and
// flag flips.
func (e *Editor[D]) UpdateDraft(id string, fn func(*D) error) error {
	ent, ok := e.open[id]
	if !ok {
		return ErrNotEditing
	}
	return fn(&ent.draft)
}

// SetField writes one field into the draft, re-running only that field's
// validator and updating its entry in the error set: the entry is replaced
// on failure and removed once the value is valid again. Empty values clear
// the field's inline error; missing-required reporting happens at submit.
func (e *Editor[D]) SetField(id, key, value string) error {
	ent, ok := e.open[id]
	if !ok {
		return ErrNotEditing
	}

	if normalize, ok := e.cfg.Normalizers[key]; ok {
		value = normalize(value)
	}

	if !e.setField(&ent.draft, key, value) {
		return fmt.Errorf("%w: %q", ErrUnknownField, key)
	}

	if validate, ok := e.cfg.Validators[key]; ok {
		if value != "" {
			if err := validate(value); err != nil {
				ent.errors[key] = err.Error()
				return nil
			}
		}
		delete(ent.errors, key)
	}

	return nil
}

// Errors returns a copy of the record's field error set.
func (e *Editor[D]) Errors(id string) ErrorSet {
	ent, ok := e.open[id]
	if !ok {
		return ErrorSet{}
	}
	out := make(ErrorSet, len(ent.errors))
	for k, v := range ent.errors {
		out[k] = v
	}
	return out
}

// HasErrors reports whether the record's draft carries any inline errors.
func (e *Editor[D]) HasErrors(id string) bool {
	ent, ok := e.open[id]
	return ok && len(ent.errors) > 0
}
