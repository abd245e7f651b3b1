package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/todo/internal/action"
	"github.com/idilsaglam/todo/internal/app"
	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/reducer"
	"github.com/idilsaglam/todo/internal/ui"
)

const maxTextWidth = 80

func exactlyOne(usage string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != 1 {
			return usagef("usage: %s", usage)
		}
		return nil
	}
}

func newAddCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a new item (text can be multiple words)",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usagef("usage: todo add <text...>")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return usagef("add: empty text")
			}
			return rt.withApp(cmd.Context(), func(a *app.App) error {
				a.Store().Dispatch(action.NewAddTodo(text))
				ui.OK(cmd.OutOrStdout(), "added")
				return nil
			})
		},
	}
}

func newListCmd(rt *runtime) *cobra.Command {
	var (
		filter string
		group  bool
		showID bool
	)
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := model.ParseFilter(filter)
			if err != nil {
				return usagef("ls: %v", err)
			}
			if !cmd.Flags().Changed("group") {
				group = rt.cfg.UI.Group
			}
			return rt.withApp(cmd.Context(), func(a *app.App) error {
				st := a.Store().Dispatch(action.NewSetVisibilityFilter(f))
				renderList(cmd.OutOrStdout(), st, group, showID)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "show all, active or completed items")
	cmd.Flags().BoolVarP(&group, "group", "g", false, "group output by active/completed")
	cmd.Flags().BoolVar(&showID, "ids", false, "show item ids")
	return cmd
}

func newDoneCmd(rt *runtime) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:     "done <index|id>",
		Aliases: []string{"toggle"},
		Short:   "Toggle completion of an item (1-based index from `ls`, or id)",
		Args:    exactlyOne("todo done <index|id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withApp(cmd.Context(), func(a *app.App) error {
				it, err := resolve(a, filter, args[0])
				if err != nil {
					return err
				}
				st := a.Store().Dispatch(action.NewToggleTodo(it.ID))
				if i := st.Find(it.ID); i >= 0 && st.Todos[i].Completed {
					ui.OK(cmd.OutOrStdout(), "completed")
				} else {
					ui.OK(cmd.OutOrStdout(), "reopened")
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "filter the index refers to")
	return cmd
}

func newRemoveCmd(rt *runtime) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "rm <index|id>",
		Short: "Remove an item (1-based index from `ls`, or id)",
		Args:  exactlyOne("todo rm <index|id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withApp(cmd.Context(), func(a *app.App) error {
				it, err := resolve(a, filter, args[0])
				if err != nil {
					return err
				}
				a.Store().Dispatch(action.NewRemoveTodo(it.ID))
				ui.OK(cmd.OutOrStdout(), "removed")
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "filter the index refers to")
	return cmd
}

func newTUICmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse and edit the list interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.withApp(cmd.Context(), func(a *app.App) error {
				if err := ui.Run(a.Store()); err != nil {
					return fmt.Errorf("tui: %w", err)
				}
				return nil
			})
		},
	}
}

// resolve maps a 1-based index in the filtered list, a full id or a unique
// id prefix to an item.
func resolve(a *app.App, filter, ref string) (*model.Item, error) {
	f, err := model.ParseFilter(filter)
	if err != nil {
		return nil, usagef("%v", err)
	}
	st := a.Store().State()
	visible := reducer.VisibleTodos(st.Todos, f)

	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(visible) {
			return nil, usagef("index out of range: have %d, got %d (run `todo ls` to see valid indexes)", len(visible), n)
		}
		return visible[n-1], nil
	}

	var match *model.Item
	for _, it := range st.Todos {
		if it.ID == ref {
			return it, nil
		}
		if strings.HasPrefix(it.ID, ref) {
			if match != nil {
				return nil, usagef("ambiguous id prefix %q", ref)
			}
			match = it
		}
	}
	if match == nil {
		return nil, usagef("no item with id %q", ref)
	}
	return match, nil
}

// -------------- rendering helpers --------------

func renderList(w io.Writer, st *model.State, group, showID bool) {
	t := ui.Current()
	active, completed := reducer.Counts(st.Todos)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d  %s",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), completed,
		t.Pending.Render(t.SymPending), active,
		t.Accent.Render("Total"), len(st.Todos),
		t.Muted.Render("("+st.VisibilityFilter.Label()+")"),
	)

	lines := []string{header, t.Muted.Render(ui.ProgressBar(completed, len(st.Todos), 28)), ""}
	visible := reducer.Visible(st)
	if group && st.VisibilityFilter == model.ShowAll {
		lines = append(lines, groupLines(visible, showID)...)
	} else {
		lines = append(lines, flatLines(visible, 1, showID)...)
	}
	lines = append(lines, "", t.Muted.Render("Tip: add with `todo add \"Buy milk\"`"))
	ui.Panel(w, lines)
}

func flatLines(items []*model.Item, start int, showID bool) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{t.Muted.Render("no items")}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		idx := fmt.Sprintf("%2d.", start+i)
		box, style := t.BoxUnchecked, t.Muted
		if it.Completed {
			box, style = t.BoxChecked, t.Success
		}
		line := fmt.Sprintf("%s %s %s", t.Muted.Render(idx), style.Render(box), truncate(it.Text))
		if showID {
			line += " " + t.Muted.Render(shortID(it.ID))
		}
		out = append(out, line)
	}
	return out
}

// groupLines numbers items by their position in the full list so indexes
// stay valid for `done` and `rm`.
func groupLines(items []*model.Item, showID bool) []string {
	t := ui.Current()
	var pend, done []string
	for i, it := range items {
		line := flatLines([]*model.Item{it}, i+1, showID)[0]
		if it.Completed {
			done = append(done, line)
		} else {
			pend = append(pend, line)
		}
	}
	section := func(title string, lines []string) []string {
		out := []string{t.Accent.Render(title)}
		if len(lines) == 0 {
			return append(out, t.Muted.Render("(none)"))
		}
		return append(out, lines...)
	}
	lines := section("Active", pend)
	lines = append(lines, "")
	return append(lines, section("Completed", done)...)
}

// truncate cuts text to maxTextWidth terminal cells, never inside a rune.
func truncate(text string) string {
	return ansi.Truncate(text, maxTextWidth, "...")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
