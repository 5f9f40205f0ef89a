package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBrowse(t *testing.T) *BrowseModel {
	t.Helper()
	columns := []Column{{Title: "Titre", Width: 20}}
	load := func(context.Context) ([]Row, error) {
		return []Row{{ID: 1, Cells: []string{"Cloud 101"}}}, nil
	}
	return NewBrowse(context.Background(), "Articles", columns, 9, load)
}

func TestBrowseModel_Close(t *testing.T) {
	t.Run("Should unblock the pending search listener on close", func(t *testing.T) {
		m := testBrowse(t)
		got := make(chan tea.Msg, 1)
		go func() { got <- m.awaitSearch()() }()

		m.Close()
		select {
		case msg := <-got:
			assert.Nil(t, msg)
		case <-time.After(time.Second):
			t.Fatal("search listener still blocked after close")
		}
	})

	t.Run("Should tolerate being closed twice", func(t *testing.T) {
		m := testBrowse(t)
		m.Close()
		m.Close()
	})

	t.Run("Should still deliver completions before close", func(t *testing.T) {
		m := testBrowse(t)
		defer m.Close()
		m.searchCh <- searchMsg{term: "cloud", gen: 1}

		msg := m.awaitSearch()()
		search, ok := msg.(searchMsg)
		require.True(t, ok)
		assert.Equal(t, "cloud", search.term)
	})
}
