// Package admin implements the content dashboard: one editor per
// collection and a full reload of every collection after each write.
package admin

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// Mode is the editor's screen.
type Mode int

const (
	ModeList Mode = iota
	ModeCreate
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "form-create"
	case ModeEdit:
		return "form-edit"
	default:
		return "list"
	}
}

// ErrNoDraft is returned when a draft operation runs on the list screen.
var ErrNoDraft = errors.New("no draft open")

// Alert is a store failure shown to the admin as a blocking message.
type Alert struct {
	Message string
	Err     error
}

func (a *Alert) Error() string {
	return fmt.Sprintf("%s: %v", a.Message, a.Err)
}

func (a *Alert) Unwrap() error { return a.Err }

// Repo is the store surface an editor writes through.
type Repo[T any] interface {
	Insert(ctx context.Context, row T) (T, error)
	Update(ctx context.Context, id string, row T) (T, error)
	Delete(ctx context.Context, id string) error
	// Blank is the empty draft for a new row.
	Blank() T
	// Noun names a row in alerts, e.g. "project".
	Noun() string
}

// Editor is the per-collection screen state. A draft exists only in the
// create and edit modes.
type Editor[T any] struct {
	repo   Repo[T]
	reload func(context.Context)
	mode   Mode
	draft  T
	editID string
}

// NewEditor returns an editor on the list screen. reload runs after every
// successful write.
func NewEditor[T any](repo Repo[T], reload func(context.Context)) *Editor[T] {
	return &Editor[T]{repo: repo, reload: reload}
}

func (e *Editor[T]) Mode() Mode { return e.mode }

// EditID is the id of the row being edited, empty outside edit mode.
func (e *Editor[T]) EditID() string { return e.editID }

// Draft returns the open draft; ok is false on the list screen.
func (e *Editor[T]) Draft() (T, bool) {
	if e.mode == ModeList {
		var zero T
		return zero, false
	}
	return e.draft, true
}

// New opens an empty draft.
func (e *Editor[T]) New() {
	e.mode = ModeCreate
	e.draft = e.repo.Blank()
	e.editID = ""
}

// Edit opens a draft holding row as-is.
func (e *Editor[T]) Edit(id string, row T) {
	e.mode = ModeEdit
	e.draft = row
	e.editID = id
}

// SetDraft replaces the open draft's fields.
func (e *Editor[T]) SetDraft(row T) error {
	if e.mode == ModeList {
		return ErrNoDraft
	}
	e.draft = row
	return nil
}

// Cancel drops the draft without touching the store.
func (e *Editor[T]) Cancel() {
	var zero T
	e.mode = ModeList
	e.draft = zero
	e.editID = ""
}

// Submit saves the draft: an update when editing an existing row, an
// insert otherwise. On success every collection is reloaded and the editor
// returns to the list. On failure the draft stays open and an *Alert is
// returned.
func (e *Editor[T]) Submit(ctx context.Context) error {
	if e.mode == ModeList {
		return ErrNoDraft
	}

	var err error
	if e.mode == ModeEdit && e.editID != "" {
		_, err = e.repo.Update(ctx, e.editID, e.draft)
	} else {
		_, err = e.repo.Insert(ctx, e.draft)
	}
	if err != nil {
		log.Printf("Error saving %s: %v", e.repo.Noun(), err)
		return &Alert{Message: "Failed to save " + e.repo.Noun(), Err: err}
	}

	e.reload(ctx)
	e.Cancel()
	return nil
}

// Delete removes the row with id once the admin has confirmed. Declining
// does nothing. The screen does not change either way.
func (e *Editor[T]) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return nil
	}
	if err := e.repo.Delete(ctx, id); err != nil {
		log.Printf("Error deleting %s: %v", e.repo.Noun(), err)
		return &Alert{Message: "Failed to delete " + e.repo.Noun(), Err: err}
	}
	e.reload(ctx)
	return nil
}
