package state

import (
	"context"
	"errors"
	"sync"
)

// FormPhase is the lifecycle of a create/edit dialog.
type FormPhase string

const (
	FormIdle       FormPhase = "idle"
	FormLoading    FormPhase = "loading"
	FormReady      FormPhase = "ready"
	FormSubmitting FormPhase = "submitting"
	FormClosed     FormPhase = "closed"
)

// ErrValidation reports that a submit was stopped by client-side field
// validation before any request was dispatched.
var ErrValidation = errors.New("validation failed")

// ErrSubmitting reports a second submit while one is already in flight.
var ErrSubmitting = errors.New("submission already in progress")

// ErrNotReady reports a submit on a form that is not open.
var ErrNotReady = errors.New("form is not ready")

// FormConfig describes one form.
type FormConfig[T any] struct {
	// Defaults seeds the draft in create mode.
	Defaults T
	// Rules run on every Submit; any failure blocks the dispatch.
	Rules []Rule[T]
}

// FormController drives a create/edit dialog over one store. Create mode
// starts from Defaults; edit mode loads the item into the draft. A
// successful submit resets the store's current item and closes the form; a
// failed submit keeps the draft and phase so the user can retry.
type FormController[T any] struct {
	store *Store[T]
	cfg   FormConfig[T]

	mu          sync.Mutex
	phase       FormPhase
	id          string
	draft       T
	fieldErrors map[string]string
	submitErr   string
}

// NewFormController builds an idle form over store.
func NewFormController[T any](store *Store[T], cfg FormConfig[T]) *FormController[T] {
	return &FormController[T]{store: store, cfg: cfg, phase: FormIdle}
}

// Phase returns the current lifecycle phase.
func (f *FormController[T]) Phase() FormPhase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

// Draft returns the working copy being edited.
func (f *FormController[T]) Draft() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// UpdateDraft applies a field edit to the draft under the lock.
func (f *FormController[T]) UpdateDraft(mutate func(*T)) {
	f.mu.Lock()
	mutate(&f.draft)
	f.mu.Unlock()
}

// FieldErrors returns per-field messages from the last Submit, empty when
// validation passed.
func (f *FormController[T]) FieldErrors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.fieldErrors))
	for k, v := range f.fieldErrors {
		out[k] = v
	}
	return out
}

// SubmitError returns the server rejection reason from the last Submit,
// empty when it fulfilled.
func (f *FormController[T]) SubmitError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitErr
}

// EditMode reports whether the form targets an existing item.
func (f *FormController[T]) EditMode() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.id != ""
}

// OpenCreate starts create mode with the default draft. It settles
// immediately since no fetch is needed.
func (f *FormController[T]) OpenCreate() *Envelope {
	f.mu.Lock()
	f.id = ""
	f.draft = f.cfg.Defaults
	f.fieldErrors = nil
	f.submitErr = ""
	f.phase = FormReady
	f.mu.Unlock()
	return settled(StatusFulfilled, "")
}

// OpenEdit starts edit mode: the item is fetched into the draft, and while
// the fetch is in flight the form reports FormLoading so the dialog renders
// a spinner instead of stale fields. A failed fetch leaves the form ready
// with the default draft and the rejection reason in SubmitError.
func (f *FormController[T]) OpenEdit(ctx context.Context, id string) *Envelope {
	f.mu.Lock()
	f.id = id
	f.draft = f.cfg.Defaults
	f.fieldErrors = nil
	f.submitErr = ""
	f.phase = FormLoading
	f.mu.Unlock()

	env := f.store.FetchByID(ctx, id)
	go func() {
		ok := env.Wait()
		f.mu.Lock()
		if f.phase != FormLoading || f.id != id {
			f.mu.Unlock()
			return
		}
		if ok {
			if snap := f.store.Snapshot(); snap.Current != nil {
				f.draft = *snap.Current
			}
		} else {
			f.submitErr = env.Reason()
		}
		f.phase = FormReady
		f.mu.Unlock()
	}()
	return env
}

// Close abandons the form without submitting and clears the store's
// current item.
func (f *FormController[T]) Close() {
	f.mu.Lock()
	f.phase = FormClosed
	f.mu.Unlock()
	f.store.ResetCurrent()
}

// Submit validates the draft and dispatches a create or update. Validation
// failures return ErrValidation with no request made; the messages are in
// FieldErrors. On fulfillment the store's current item is reset and the
// form closes; on rejection the form returns to ready with the reason in
// SubmitError so the user can fix and retry.
func (f *FormController[T]) Submit(ctx context.Context) (*Envelope, error) {
	f.mu.Lock()
	switch f.phase {
	case FormSubmitting:
		f.mu.Unlock()
		return nil, ErrSubmitting
	case FormReady:
	default:
		f.mu.Unlock()
		return nil, ErrNotReady
	}
	draft := f.draft
	id := f.id

	if errs := Validate(draft, f.cfg.Rules); len(errs) > 0 {
		f.fieldErrors = errs
		f.mu.Unlock()
		return nil, ErrValidation
	}
	f.fieldErrors = nil
	f.submitErr = ""
	f.phase = FormSubmitting
	f.mu.Unlock()

	var env *Envelope
	if id == "" {
		env = f.store.Create(ctx, draft)
	} else {
		env = f.store.Update(ctx, id, draft)
	}

	go func() {
		ok := env.Wait()
		f.mu.Lock()
		if f.phase != FormSubmitting {
			f.mu.Unlock()
			return
		}
		if ok {
			f.phase = FormClosed
			f.mu.Unlock()
			f.store.ResetCurrent()
			return
		}
		f.submitErr = env.Reason()
		f.phase = FormReady
		f.mu.Unlock()
	}()
	return env, nil
}
