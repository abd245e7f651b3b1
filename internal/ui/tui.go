package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todo/internal/action"
	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/reducer"
	"github.com/idilsaglam/todo/internal/store"
)

// listItem adapts a todo to bubbles/list.Item
type listItem struct {
	item *model.Item
}

func (i listItem) FilterValue() string { return i.item.Text }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	li, ok := item.(listItem)
	if !ok {
		return
	}
	t := Current()
	box, text := t.Muted.Render(t.BoxUnchecked), li.item.Text
	if li.item.Completed {
		box, text = t.Success.Render(t.BoxChecked), t.Done.Render(text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s", prefix, box, text)
}

type keyMap struct {
	Toggle, Remove, Add, NextFilter, All, Active, Completed, Quit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Toggle:     key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "toggle")),
		Remove:     key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "remove")),
		Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		NextFilter: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "filter")),
		All:        key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		Active:     key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "active")),
		Completed:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		Quit:       key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
	}
}

// Model is the interactive view. Every edit is dispatched to the store;
// the list is rebuilt only when the store hands back a different snapshot.
type Model struct {
	store    *store.Store
	rendered *model.State

	list list.Model
	keys keyMap

	// Inline add
	adding bool
	ti     textinput.Model
	addErr string

	width, height int
}

// NewModel builds the view for st.
func NewModel(st *store.Store) Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	t := Current()
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = t.Title
	l.Styles.HelpStyle = t.Help
	l.Styles.PaginationStyle = t.Help
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")

	keys := newKeyMap()
	extra := func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Remove, keys.Add, keys.NextFilter}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return append(extra(), keys.All, keys.Active, keys.Completed)
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Add a todo..."
	ti.CharLimit = 200

	m := Model{store: st, list: l, keys: keys, ti: ti, width: 80, height: 24}
	m.sync()
	return m
}

// Run starts the Bubble Tea program on the alternate screen.
func Run(st *store.Store) error {
	_, err := tea.NewProgram(NewModel(st), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}

	if m.adding {
		return m.updateAdding(msg)
	}

	// let the list own the keyboard while its fuzzy filter is being typed
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.keys.Quit):
			if m.list.FilterState() == list.FilterApplied && k.String() == "esc" {
				break
			}
			return m, tea.Quit
		case key.Matches(k, m.keys.Toggle):
			if it := m.selected(); it != nil {
				m.dispatch(action.NewToggleTodo(it.ID))
			}
			return m, nil
		case key.Matches(k, m.keys.Remove):
			if it := m.selected(); it != nil {
				m.dispatch(action.NewRemoveTodo(it.ID))
			}
			return m, nil
		case key.Matches(k, m.keys.Add):
			m.adding = true
			m.addErr = ""
			m.ti.SetValue("")
			m.resize()
			return m, m.ti.Focus()
		case key.Matches(k, m.keys.NextFilter):
			m.dispatch(action.NewSetVisibilityFilter(m.store.State().VisibilityFilter.Next()))
			return m, nil
		case key.Matches(k, m.keys.All):
			m.dispatch(action.NewSetVisibilityFilter(model.ShowAll))
			return m, nil
		case key.Matches(k, m.keys.Active):
			m.dispatch(action.NewSetVisibilityFilter(model.ShowActive))
			return m, nil
		case key.Matches(k, m.keys.Completed):
			m.dispatch(action.NewSetVisibilityFilter(model.ShowCompleted))
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			// empty todos are rejected here, at the form, not by the store
			text := strings.TrimSpace(m.ti.Value())
			if text == "" {
				m.addErr = "Text cannot be empty"
				return m, nil
			}
			m.dispatch(action.NewAddTodo(text))
			m.stopAdding()
			if n := len(m.list.Items()); n > 0 {
				m.list.Select(n - 1)
			}
			return m, nil
		case "esc":
			m.stopAdding()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *Model) stopAdding() {
	m.adding = false
	m.addErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

func (m *Model) dispatch(a action.Action) {
	m.store.Dispatch(a)
	m.sync()
}

// sync rebuilds the list from the store, skipping unchanged snapshots.
func (m *Model) sync() {
	st := m.store.State()
	if st == m.rendered {
		return
	}
	m.rendered = st

	visible := reducer.Visible(st)
	items := make([]list.Item, 0, len(visible))
	for _, it := range visible {
		items = append(items, listItem{item: it})
	}
	idx := m.list.Index()
	m.list.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
	m.list.Title = header(st)
}

func (m Model) selected() *model.Item {
	if li, ok := m.list.SelectedItem().(listItem); ok {
		return li.item
	}
	return nil
}

func (m *Model) resize() {
	h := m.height - 4
	if m.adding {
		h -= 4
	}
	if h < 1 {
		h = 1
	}
	w := m.width - 4
	if w < 10 {
		w = 10
	}
	m.list.SetSize(w, h)
}

func (m Model) View() string {
	content := m.list.View()
	if m.adding {
		t := Current()
		title := "Add new todo"
		if m.addErr != "" {
			title += " " + t.Error.Render(m.addErr)
		}
		content += "\n" + PanelString(title+"\n"+m.ti.View())
	}
	return PanelString(content)
}

// header shows live counts and the active filter tab.
func header(st *model.State) string {
	t := Current()
	active, completed := reducer.Counts(st.Todos)
	tabs := make([]string, 0, len(model.Filters))
	for _, f := range model.Filters {
		label := f.Label()
		if f == st.VisibilityFilter {
			tabs = append(tabs, t.Accent.Render("["+label+"]"))
		} else {
			tabs = append(tabs, t.Muted.Render(label))
		}
	}
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d   %s",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), completed,
		t.Pending.Render(t.SymPending), active,
		t.Accent.Render("Total"), len(st.Todos),
		strings.Join(tabs, " "),
	)
}
