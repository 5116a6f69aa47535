package state

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workoutForm(backend Backend[workout]) (*Store[workout], *FormController[workout]) {
	s := workoutStore(backend)
	f := NewFormController(s, FormConfig[workout]{
		Defaults: workout{Title: ""},
		Rules: []Rule[workout]{
			Required("title", func(w workout) string { return w.Title }),
		},
	})
	return s, f
}

func TestFormCreateFlow(t *testing.T) {
	backend := &fakeBackend{
		create: func(_ context.Context, w workout) (workout, error) {
			w.ID = "1"
			return w, nil
		},
	}
	s, f := workoutForm(backend)

	assert.Equal(t, FormIdle, f.Phase())

	f.OpenCreate()
	assert.Equal(t, FormReady, f.Phase())
	assert.False(t, f.EditMode())

	f.UpdateDraft(func(w *workout) { w.Title = "Leg Day" })

	env, err := f.Submit(context.Background())
	require.NoError(t, err)
	require.True(t, env.Wait())

	assert.Eventually(t, func() bool {
		return f.Phase() == FormClosed
	}, time.Second, 5*time.Millisecond)

	snap := s.Snapshot()
	assert.Nil(t, snap.Current)
	assert.Equal(t, []workout{{ID: "1", Title: "Leg Day"}}, snap.Items)
}

func TestFormValidationBlocksDispatch(t *testing.T) {
	dispatched := false
	backend := &fakeBackend{
		create: func(_ context.Context, w workout) (workout, error) {
			dispatched = true
			return w, nil
		},
	}
	_, f := workoutForm(backend)

	f.OpenCreate()
	env, err := f.Submit(context.Background())

	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, env)
	assert.False(t, dispatched)
	assert.Equal(t, "title is required", f.FieldErrors()["title"])
	assert.Equal(t, FormReady, f.Phase())
}

func TestFormEditLoadsItemIntoDraft(t *testing.T) {
	backend := &fakeBackend{
		get: func(_ context.Context, id string) (workout, error) {
			return workout{ID: id, Title: "Bench"}, nil
		},
		update: func(_ context.Context, id string, w workout) (workout, error) {
			w.ID = id
			return w, nil
		},
	}
	s, f := workoutForm(backend)

	env := f.OpenEdit(context.Background(), "1")
	require.True(t, env.Wait())

	assert.Eventually(t, func() bool {
		return f.Phase() == FormReady && f.Draft().Title == "Bench"
	}, time.Second, 5*time.Millisecond)
	assert.True(t, f.EditMode())

	f.UpdateDraft(func(w *workout) { w.Title = "Incline Bench" })
	submit, err := f.Submit(context.Background())
	require.NoError(t, err)
	require.True(t, submit.Wait())

	assert.Eventually(t, func() bool {
		return f.Phase() == FormClosed
	}, time.Second, 5*time.Millisecond)
	assert.Nil(t, s.Snapshot().Current)
}

func TestFormEditLoadFailureStillOpens(t *testing.T) {
	backend := &fakeBackend{
		get: func(context.Context, string) (workout, error) {
			return workout{}, errors.New("workout not found")
		},
	}
	_, f := workoutForm(backend)

	env := f.OpenEdit(context.Background(), "missing")
	require.False(t, env.Wait())

	assert.Eventually(t, func() bool {
		return f.Phase() == FormReady
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "workout not found", f.SubmitError())
}

func TestFormSubmitFailureReturnsToReady(t *testing.T) {
	backend := &fakeBackend{
		create: func(context.Context, workout) (workout, error) {
			return workout{}, errors.New("a workout with this title already exists")
		},
	}
	_, f := workoutForm(backend)

	f.OpenCreate()
	f.UpdateDraft(func(w *workout) { w.Title = "Leg Day" })

	env, err := f.Submit(context.Background())
	require.NoError(t, err)
	require.False(t, env.Wait())

	assert.Eventually(t, func() bool {
		return f.Phase() == FormReady
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "a workout with this title already exists", f.SubmitError())
	// The draft survives so the user can fix and retry.
	assert.Equal(t, "Leg Day", f.Draft().Title)
}

func TestFormDoubleSubmitRejected(t *testing.T) {
	gate := make(chan struct{})
	backend := &fakeBackend{
		create: func(_ context.Context, w workout) (workout, error) {
			<-gate
			return w, nil
		},
	}
	_, f := workoutForm(backend)

	f.OpenCreate()
	f.UpdateDraft(func(w *workout) { w.Title = "Leg Day" })

	first, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, FormSubmitting, f.Phase())

	_, err = f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitting)

	close(gate)
	require.True(t, first.Wait())
}

func TestFormCloseResetsCurrent(t *testing.T) {
	backend := &fakeBackend{
		get: func(_ context.Context, id string) (workout, error) {
			return workout{ID: id, Title: "Bench"}, nil
		},
	}
	s, f := workoutForm(backend)

	require.True(t, f.OpenEdit(context.Background(), "1").Wait())
	require.NotNil(t, s.Snapshot().Current)

	f.Close()
	assert.Equal(t, FormClosed, f.Phase())
	assert.Nil(t, s.Snapshot().Current)
}
