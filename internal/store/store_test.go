package store

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mssd/mssd-console/internal/model"
)

func TestValue(t *testing.T) {
	t.Run("Should notify subscribers on set", func(t *testing.T) {
		v := NewValue(1)
		var seen []int
		unsub := v.Subscribe(func(n int) { seen = append(seen, n) })
		defer unsub()

		v.Set(2)
		v.Set(3)
		assert.Equal(t, []int{2, 3}, seen)
		assert.Equal(t, 3, v.Get())
	})

	t.Run("Should stop notifying after unsubscribe", func(t *testing.T) {
		v := NewValue(0)
		var calls int
		unsub := v.Subscribe(func(int) { calls++ })
		v.Set(1)
		unsub()
		v.Set(2)
		assert.Equal(t, 1, calls)
	})
}

func TestSession(t *testing.T) {
	t.Run("Should start logged out", func(t *testing.T) {
		s := NewSession()
		assert.False(t, s.LoggedIn())
		assert.Nil(t, s.User())
	})

	t.Run("Should broadcast login and logout", func(t *testing.T) {
		s := NewSession()
		var events []*model.User
		unsub := s.Subscribe(func(u *model.User) { events = append(events, u) })
		defer unsub()

		s.Login(&model.User{ID: 1, Username: "admin"})
		assert.True(t, s.LoggedIn())
		s.Logout()
		assert.False(t, s.LoggedIn())
		require.Len(t, events, 2)
		assert.NotNil(t, events[0])
		assert.Nil(t, events[1])
	})
}

func TestToasts(t *testing.T) {
	t.Run("Should enqueue and dismiss by id", func(t *testing.T) {
		q := NewToasts()
		id := q.Success("Article créé avec succès!")
		q.Error("Erreur lors de la création de l'article.")
		require.Len(t, q.Active(), 2)

		q.Dismiss(id)
		remaining := q.Active()
		require.Len(t, remaining, 1)
		assert.Equal(t, ToastError, remaining[0].Kind)
	})

	t.Run("Should ignore dismissing unknown ids", func(t *testing.T) {
		q := NewToasts()
		q.Info("hello")
		q.Dismiss("does-not-exist")
		assert.Len(t, q.Active(), 1)
	})
}

func TestPrefs(t *testing.T) {
	t.Run("Should default to French when no state file exists", func(t *testing.T) {
		p, err := NewPrefs(afero.NewMemMapFs(), "/state/mssd.json")
		require.NoError(t, err)
		assert.Equal(t, LangFrench, p.Language())
		assert.False(t, p.SidebarCollapsed())
	})

	t.Run("Should persist language and sidebar across reloads", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		p, err := NewPrefs(fs, "/state/mssd.json")
		require.NoError(t, err)
		require.NoError(t, p.SetLanguage(LangEnglish))
		require.NoError(t, p.SetSidebarCollapsed(true))

		reloaded, err := NewPrefs(fs, "/state/mssd.json")
		require.NoError(t, err)
		assert.Equal(t, LangEnglish, reloaded.Language())
		assert.True(t, reloaded.SidebarCollapsed())
	})

	t.Run("Should toggle between the two languages", func(t *testing.T) {
		p, err := NewPrefs(afero.NewMemMapFs(), "/state/mssd.json")
		require.NoError(t, err)
		require.NoError(t, p.ToggleLanguage())
		assert.Equal(t, LangEnglish, p.Language())
		require.NoError(t, p.ToggleLanguage())
		assert.Equal(t, LangFrench, p.Language())
	})

	t.Run("Should reject unknown language codes", func(t *testing.T) {
		p, err := NewPrefs(afero.NewMemMapFs(), "/state/mssd.json")
		require.NoError(t, err)
		require.Error(t, p.SetLanguage("de"))
		assert.Equal(t, LangFrench, p.Language())
	})
}
