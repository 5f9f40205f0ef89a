package form

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mssd/mssd-console/internal/api"
	"github.com/mssd/mssd-console/internal/model"
)

func blogFields() []Field[model.Blog] {
	return []Field[model.Blog]{
		{Name: "title", Rule: "required", Value: func(b model.Blog) any { return b.Title }},
		{Name: "content", Rule: "required", Value: func(b model.Blog) any { return b.Content }},
	}
}

type recorder struct {
	calls    []string
	created  *model.Blog
	failUp   bool
	failSave bool
}

func (r *recorder) hooks() Hooks[model.Blog] {
	return Hooks[model.Blog]{
		Create: func(_ context.Context, draft model.Blog) (*model.Blog, error) {
			r.calls = append(r.calls, "create")
			if r.failSave {
				return nil, errors.New("server rejected")
			}
			draft.ID = 100
			r.created = &draft
			return &draft, nil
		},
		Update: func(_ context.Context, id int64, draft model.Blog) (*model.Blog, error) {
			r.calls = append(r.calls, "update")
			draft.ID = id
			return &draft, nil
		},
		Delete: func(_ context.Context, id int64) error {
			r.calls = append(r.calls, "delete")
			return nil
		},
		Upload: func(_ context.Context, filename string, _ io.Reader) (*api.UploadedAsset, error) {
			r.calls = append(r.calls, "upload")
			if r.failUp {
				return nil, errors.New("disk full")
			}
			return &api.UploadedAsset{Filename: "stored-" + filename, Path: "uploads/stored-" + filename}, nil
		},
		Refresh: func(context.Context) error {
			r.calls = append(r.calls, "refresh")
			return nil
		},
	}
}

func TestSession_Validation(t *testing.T) {
	t.Run("Should hide errors until a field is touched", func(t *testing.T) {
		s := NewSession(blogFields(), Hooks[model.Blog]{})
		s.BeginCreate(model.Blog{Category: "General", Active: true})

		assert.Empty(t, s.FieldError("title"))
		s.Touch("title")
		assert.NotEmpty(t, s.FieldError("title"))
	})

	t.Run("Should reveal every error on submit attempt", func(t *testing.T) {
		s := NewSession(blogFields(), Hooks[model.Blog]{})
		s.BeginCreate(model.Blog{})
		_, err := s.Submit(context.Background())
		require.ErrorIs(t, err, ErrInvalid)
		assert.NotEmpty(t, s.FieldError("title"))
		assert.NotEmpty(t, s.FieldError("content"))
	})

	t.Run("Should clear a field error once fixed", func(t *testing.T) {
		s := NewSession(blogFields(), Hooks[model.Blog]{})
		s.BeginCreate(model.Blog{})
		s.SetField("title", func(d *model.Blog) { d.Title = "Cloud 101" })
		assert.Empty(t, s.FieldError("title"))
	})

	t.Run("Should reject submit when idle", func(t *testing.T) {
		s := NewSession(blogFields(), Hooks[model.Blog]{})
		_, err := s.Submit(context.Background())
		assert.ErrorIs(t, err, ErrIdle)
	})
}

func TestSession_DraftIsolation(t *testing.T) {
	t.Run("Should edit a copy, never the listed entity", func(t *testing.T) {
		listed := model.Blog{ID: 5, Title: "X", Content: "body"}
		s := NewSession(blogFields(), Hooks[model.Blog]{})
		s.BeginEdit(listed)

		s.SetField("title", func(d *model.Blog) { d.Title = "Y" })
		assert.Equal(t, "X", listed.Title, "listed entity must be untouched until save succeeds")
		assert.Equal(t, "Y", s.Draft().Title)
	})
}

func TestSession_Submit(t *testing.T) {
	t.Run("Should upload before saving and write the asset into the draft", func(t *testing.T) {
		rec := &recorder{}
		s := NewSession(blogFields(), rec.hooks())
		s.BeginCreate(model.Blog{Title: "With image", Content: "body"})
		s.StageUpload("cover.jpg", strings.NewReader("bytes"), func(d *model.Blog, a *api.UploadedAsset) {
			d.ImageURL = a.Path
		})

		saved, err := s.Submit(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"upload", "create", "refresh"}, rec.calls)
		assert.Equal(t, "uploads/stored-cover.jpg", saved.ImageURL)
		assert.Equal(t, ModeIdle, s.Mode())
	})

	t.Run("Should never save when the upload fails and keep the draft", func(t *testing.T) {
		rec := &recorder{failUp: true}
		s := NewSession(blogFields(), rec.hooks())
		s.BeginCreate(model.Blog{Title: "With image", Content: "body"})
		s.StageUpload("cover.jpg", strings.NewReader("bytes"), nil)

		_, err := s.Submit(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "upload failed")
		assert.Equal(t, []string{"upload"}, rec.calls, "entity create must not be issued")
		assert.Equal(t, ModeCreating, s.Mode(), "draft retained for resubmission")
		assert.Equal(t, "With image", s.Draft().Title)
		assert.Equal(t, "cover.jpg", s.StagedFilename())
	})

	t.Run("Should route edits through update with the original id", func(t *testing.T) {
		rec := &recorder{}
		s := NewSession(blogFields(), rec.hooks())
		s.BeginEdit(model.Blog{ID: 7, Title: "old", Content: "body"})
		s.SetField("title", func(d *model.Blog) { d.Title = "new" })

		saved, err := s.Submit(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(7), saved.ID)
		assert.Equal(t, []string{"update", "refresh"}, rec.calls)
	})

	t.Run("Should refetch instead of patching the list", func(t *testing.T) {
		rec := &recorder{}
		s := NewSession(blogFields(), rec.hooks())
		s.BeginCreate(model.Blog{Title: "t", Content: "c"})
		_, err := s.Submit(context.Background())
		require.NoError(t, err)
		assert.Contains(t, rec.calls, "refresh")
	})

	t.Run("Should reject a second submit while one is in flight", func(t *testing.T) {
		var s *Session[model.Blog]
		var reentrant error
		s = NewSession(blogFields(), Hooks[model.Blog]{
			Create: func(_ context.Context, draft model.Blog) (*model.Blog, error) {
				_, reentrant = s.Submit(context.Background())
				draft.ID = 1
				return &draft, nil
			},
		})
		s.BeginCreate(model.Blog{Title: "t", Content: "c"})

		_, err := s.Submit(context.Background())
		require.NoError(t, err)
		assert.ErrorIs(t, reentrant, ErrBusy)
		assert.False(t, s.Loading())
	})

	t.Run("Should keep the session open when the save fails", func(t *testing.T) {
		rec := &recorder{failSave: true}
		s := NewSession(blogFields(), rec.hooks())
		s.BeginCreate(model.Blog{Title: "t", Content: "c"})
		_, err := s.Submit(context.Background())
		require.Error(t, err)
		assert.Equal(t, ModeCreating, s.Mode())
	})
}

func TestSession_Delete(t *testing.T) {
	t.Run("Should not delete when the user declines", func(t *testing.T) {
		rec := &recorder{}
		s := NewSession(blogFields(), rec.hooks())
		err := s.Delete(context.Background(), model.Blog{ID: 3}, func(model.Blog) bool { return false })
		assert.ErrorIs(t, err, ErrCanceled)
		assert.Empty(t, rec.calls)
	})

	t.Run("Should delete then refresh when confirmed", func(t *testing.T) {
		rec := &recorder{}
		s := NewSession(blogFields(), rec.hooks())
		err := s.Delete(context.Background(), model.Blog{ID: 3}, func(model.Blog) bool { return true })
		require.NoError(t, err)
		assert.Equal(t, []string{"delete", "refresh"}, rec.calls)
	})

	t.Run("Should reject a second delete while one is in flight", func(t *testing.T) {
		var s *Session[model.Blog]
		var reentrant error
		s = NewSession(blogFields(), Hooks[model.Blog]{
			Delete: func(_ context.Context, _ int64) error {
				reentrant = s.Delete(context.Background(), model.Blog{ID: 4}, nil)
				return nil
			},
		})
		err := s.Delete(context.Background(), model.Blog{ID: 3}, nil)
		require.NoError(t, err)
		assert.ErrorIs(t, reentrant, ErrBusy)
		assert.False(t, s.Loading())
	})
}
