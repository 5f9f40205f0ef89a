// Package form manages create/edit sessions for one entity type: draft
// copies bound to inputs, touched-gated validation, upload-then-save
// sequencing and the post-submit list refresh.
package form

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"

	"github.com/mssd/mssd-console/internal/api"
	"github.com/mssd/mssd-console/internal/model"
	"github.com/mssd/mssd-console/pkg/logger"
)

// Mode is the session state.
type Mode string

const (
	ModeIdle     Mode = "idle"
	ModeCreating Mode = "creating"
	ModeEditing  Mode = "editing"
)

var (
	// ErrBusy is returned while a previous submit or delete is in flight.
	ErrBusy = errors.New("operation already in progress")
	// ErrInvalid is returned when the draft fails client-side validation.
	ErrInvalid = errors.New("draft has invalid fields")
	// ErrIdle is returned when submitting without an open form.
	ErrIdle = errors.New("no form session open")
	// ErrCanceled is returned when the user declines the delete confirmation.
	ErrCanceled = errors.New("canceled by user")
)

// Field declares one validated draft field: a display name, a validator tag
// expression and a getter into the draft.
type Field[T any] struct {
	Name  string
	Rule  string
	Value func(T) any
}

// Hooks wires the session to its gateway and host screen.
type Hooks[T model.Entity] struct {
	Create  func(ctx context.Context, draft T) (*T, error)
	Update  func(ctx context.Context, id int64, draft T) (*T, error)
	Delete  func(ctx context.Context, id int64) error
	Upload  func(ctx context.Context, filename string, r io.Reader) (*api.UploadedAsset, error)
	Refresh func(ctx context.Context) error
}

// stagedFile is a file queued for the pre-save upload phase.
type stagedFile[T any] struct {
	name   string
	reader io.Reader
	apply  func(draft *T, asset *api.UploadedAsset)
}

// Session is the form controller for one entity type.
type Session[T model.Entity] struct {
	mode     Mode
	draft    T
	editID   int64
	fields   []Field[T]
	hooks    Hooks[T]
	validate *validator.Validate

	touched map[string]bool
	errs    map[string]string
	staged  *stagedFile[T]
	loading bool
}

// NewSession builds an idle session.
func NewSession[T model.Entity](fields []Field[T], hooks Hooks[T]) *Session[T] {
	return &Session[T]{
		mode:     ModeIdle,
		fields:   fields,
		hooks:    hooks,
		validate: validator.New(),
		touched:  make(map[string]bool),
		errs:     make(map[string]string),
	}
}

// Mode returns the current session state.
func (s *Session[T]) Mode() Mode { return s.mode }

// Loading reports whether a submit or delete is in flight.
func (s *Session[T]) Loading() bool { return s.loading }

// Draft returns the working copy bound to the form.
func (s *Session[T]) Draft() T { return s.draft }

// BeginCreate opens a create session from an empty template with defaults.
func (s *Session[T]) BeginCreate(template T) {
	s.reset()
	s.mode = ModeCreating
	s.draft = template
}

// BeginEdit opens an edit session. The draft is a copy of the target;
// mutating it never leaks into the displayed list before save succeeds.
func (s *Session[T]) BeginEdit(entity T) {
	s.reset()
	s.mode = ModeEditing
	s.draft = entity
	s.editID = entity.EntityID()
	s.revalidate()
}

// Cancel closes the form and discards the draft.
func (s *Session[T]) Cancel() {
	s.reset()
}

// SetField mutates the draft, marks the field touched and revalidates.
func (s *Session[T]) SetField(name string, mutate func(draft *T)) {
	if s.mode == ModeIdle {
		return
	}
	mutate(&s.draft)
	s.touched[name] = true
	s.revalidate()
}

// Touch marks a field as interacted with, revealing its error if any.
func (s *Session[T]) Touch(name string) {
	s.touched[name] = true
}

// FieldError returns the field's validation message, but only once the
// field has been touched or a submit was attempted.
func (s *Session[T]) FieldError(name string) string {
	if !s.touched[name] {
		return ""
	}
	return s.errs[name]
}

// Valid reports whether every declared field passes its rule.
func (s *Session[T]) Valid() bool {
	s.revalidate()
	return len(s.errs) == 0
}

// StageUpload queues a file to be uploaded before the save; apply writes
// the resulting server filename into the draft.
func (s *Session[T]) StageUpload(filename string, r io.Reader, apply func(draft *T, asset *api.UploadedAsset)) {
	s.staged = &stagedFile[T]{name: filename, reader: r, apply: apply}
}

// StagedFilename returns the staged file's name, empty when none is staged.
func (s *Session[T]) StagedFilename() string {
	if s.staged == nil {
		return ""
	}
	return s.staged.name
}

// Submit validates the draft, runs the staged upload when present, then
// issues the create or update. The sequence is strictly upload-then-save:
// a failed upload aborts the save and keeps both the draft and the staged
// file so the user can resubmit.
func (s *Session[T]) Submit(ctx context.Context) (*T, error) {
	if s.mode == ModeIdle {
		return nil, ErrIdle
	}
	if s.loading {
		return nil, ErrBusy
	}

	// Touch everything so previously hidden errors become visible.
	for _, f := range s.fields {
		s.touched[f.Name] = true
	}
	if !s.Valid() {
		return nil, ErrInvalid
	}

	s.loading = true
	defer func() { s.loading = false }()

	log := logger.FromContext(ctx)
	if s.staged != nil {
		asset, err := s.hooks.Upload(ctx, s.staged.name, s.staged.reader)
		if err != nil {
			return nil, fmt.Errorf("upload failed: %w", err)
		}
		if s.staged.apply != nil {
			s.staged.apply(&s.draft, asset)
		}
		log.Debug("upload completed", "filename", asset.Filename)
		s.staged = nil
	}

	var (
		saved *T
		err   error
	)
	if s.mode == ModeEditing {
		saved, err = s.hooks.Update(ctx, s.editID, s.draft)
	} else {
		saved, err = s.hooks.Create(ctx, s.draft)
	}
	if err != nil {
		return nil, err
	}

	// Refetch rather than patch the in-memory list: the displayed list must
	// match server state even when the server rewrote fields.
	if s.hooks.Refresh != nil {
		if err := s.hooks.Refresh(ctx); err != nil {
			log.Warn("list refresh after save failed", "error", err)
		}
	}
	s.reset()
	return saved, nil
}

// Delete removes an entity after the user confirms. The host screen splices
// the list (or refetches) via the Refresh hook and applies the page
// step-back rule.
func (s *Session[T]) Delete(ctx context.Context, entity T, confirm func(T) bool) error {
	if s.loading {
		return ErrBusy
	}
	if confirm != nil && !confirm(entity) {
		return ErrCanceled
	}

	s.loading = true
	defer func() { s.loading = false }()

	if err := s.hooks.Delete(ctx, entity.EntityID()); err != nil {
		return err
	}
	if s.hooks.Refresh != nil {
		if err := s.hooks.Refresh(ctx); err != nil {
			logger.FromContext(ctx).Warn("list refresh after delete failed", "error", err)
		}
	}
	return nil
}

func (s *Session[T]) reset() {
	var zero T
	s.mode = ModeIdle
	s.draft = zero
	s.editID = 0
	s.staged = nil
	s.touched = make(map[string]bool)
	s.errs = make(map[string]string)
}

func (s *Session[T]) revalidate() {
	s.errs = make(map[string]string)
	for _, f := range s.fields {
		if f.Rule == "" || f.Value == nil {
			continue
		}
		if err := s.validate.Var(f.Value(s.draft), f.Rule); err != nil {
			s.errs[f.Name] = ruleMessage(f.Name, err)
		}
	}
}

func ruleMessage(name string, err error) string {
	var verr validator.ValidationErrors
	if errors.As(err, &verr) && len(verr) > 0 {
		switch verr[0].Tag() {
		case "required":
			return fmt.Sprintf("%s is required", name)
		case "email":
			return fmt.Sprintf("%s must be a valid email address", name)
		case "min":
			return fmt.Sprintf("%s is too small (min %s)", name, verr[0].Param())
		case "max":
			return fmt.Sprintf("%s is too large (max %s)", name, verr[0].Param())
		case "url":
			return fmt.Sprintf("%s must be a valid URL", name)
		default:
			return fmt.Sprintf("%s is invalid", name)
		}
	}
	return fmt.Sprintf("%s is invalid", name)
}
