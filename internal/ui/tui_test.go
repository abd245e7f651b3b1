package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todo/internal/action"
	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/store"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func typeText(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, runes(string(r)))
	}
	return msgs
}

func TestTUIAddToggleFilterRemove(t *testing.T) {
	st := store.New(nil)
	m := send(t, NewModel(st), tea.WindowSizeMsg{Width: 80, Height: 24})

	msgs := append([]tea.Msg{runes("a")}, typeText("buy milk")...)
	msgs = append(msgs, tea.KeyMsg{Type: tea.KeyEnter})
	m = send(t, m, msgs...)

	require.Len(t, st.State().Todos, 1)
	it := st.State().Todos[0]
	assert.Equal(t, "buy milk", it.Text)
	assert.False(t, m.adding)
	assert.Len(t, m.list.Items(), 1)

	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.True(t, st.State().Todos[0].Completed)

	m = send(t, m, runes("2"))
	assert.Equal(t, model.ShowActive, st.State().VisibilityFilter)
	assert.Empty(t, m.list.Items(), "completed item hidden by the active filter")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, model.ShowCompleted, st.State().VisibilityFilter)
	require.Len(t, m.list.Items(), 1)

	m = send(t, m, runes("d"))
	assert.Empty(t, st.State().Todos)
	assert.Empty(t, m.list.Items())
}

func TestTUIRejectsEmptyText(t *testing.T) {
	st := store.New(nil)
	m := send(t, NewModel(st), runes("a"), runes(" "), tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, m.adding)
	assert.NotEmpty(t, m.addErr)
	assert.Empty(t, st.State().Todos)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.adding)
}

func TestTUIReflectsExternalDispatch(t *testing.T) {
	st := store.New(nil)
	m := NewModel(st)
	assert.Empty(t, m.list.Items())

	st.Dispatch(action.NewAddTodo("from elsewhere"))
	m = send(t, m, runes("1"))
	assert.Len(t, m.list.Items(), 1)
}

func TestTUISkipsRebuildForSameSnapshot(t *testing.T) {
	st := store.New(&model.State{Todos: []*model.Item{{ID: "a", Text: "x"}}})
	m := NewModel(st)
	before := m.rendered

	m = send(t, m, runes("1"))
	assert.Same(t, before, m.rendered)
}

func TestTUIQuit(t *testing.T) {
	m := NewModel(store.New(nil))
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestTUIViewShowsHeader(t *testing.T) {
	SetTheme("mono")
	defer SetTheme("classic")

	st := store.New(&model.State{Todos: []*model.Item{{ID: "a", Text: "buy milk"}}})
	m := send(t, NewModel(st), tea.WindowSizeMsg{Width: 80, Height: 20})
	out := m.View()
	assert.Contains(t, out, "Todos")
	assert.Contains(t, out, "[all]")
	assert.Contains(t, out, "buy milk")
}
