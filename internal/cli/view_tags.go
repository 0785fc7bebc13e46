package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"zenban/internal/board"
	"zenban/internal/cli/formatter"
	"zenban/internal/domain"
)

// tagsLoadedMsg signals the reconciling tag load finished.
type tagsLoadedMsg struct{ err error }

// tagMutatedMsg signals an add/remove settled (rolled back on error).
type tagMutatedMsg struct {
	name string
	add  bool
	err  error
}

// tagsView manages the tags of one task through the optimistic TagFlow.
type tagsView struct {
	state *SharedState
	task  domain.Task
	flow  *board.TagFlow

	cursor  int // into the available list
	loading bool
	spin    spinner.Model
	err     error
}

func newTagsView(state *SharedState, task domain.Task) *tagsView {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	return &tagsView{
		state:   state,
		task:    task,
		flow:    board.NewTagFlow(state.App.Tags, state.ActiveBoardID, task.ID),
		loading: true,
		spin:    sp,
	}
}

func (v *tagsView) ID() ViewID    { return ViewTags }
func (v *tagsView) Title() string { return "Tags" }

func (v *tagsView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add tag")),
		key.NewBinding(key.WithKeys("1"), key.WithHelp("1-9", "remove tag")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	}
}

func (v *tagsView) Init() tea.Cmd {
	return tea.Batch(v.load(), v.spin.Tick)
}

func (v *tagsView) load() tea.Cmd {
	flow := v.flow
	return func() tea.Msg {
		return tagsLoadedMsg{err: flow.Load(context.Background())}
	}
}

func (v *tagsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tagsLoadedMsg:
		v.loading = false
		v.err = msg.err
		v.clampCursor()
		if msg.err != nil {
			return v, sessionExpiredCmd(msg.err, "Could not load tags.")
		}
		return v, nil

	case tagMutatedMsg:
		v.clampCursor()
		if msg.err != nil {
			verb := "add"
			if !msg.add {
				verb = "remove"
			}
			return v, notify(api403Notice(msg.err, fmt.Sprintf("Could not %s tag %q.", verb, msg.name)), true)
		}
		if msg.add {
			return v, notify(fmt.Sprintf("Added tag %q.", msg.name), false)
		}
		return v, notify(fmt.Sprintf("Removed tag %q.", msg.name), false)

	case spinner.TickMsg:
		if !v.flow.Pending() && !v.loading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *tagsView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.flow.Pending() {
		return v, nil
	}

	switch s := msg.String(); s {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.flow.Available())-1 {
			v.cursor++
		}
	case "enter":
		available := v.flow.Available()
		if v.cursor < len(available) {
			tag := available[v.cursor]
			return v, tea.Batch(v.addTag(tag), v.spin.Tick)
		}
	case "r":
		v.loading = true
		return v, tea.Batch(v.load(), v.spin.Tick)
	default:
		// Digits remove the n-th attached tag.
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			idx := int(s[0] - '1')
			attached := v.flow.TaskTags()
			if idx < len(attached) {
				return v, tea.Batch(v.removeTag(attached[idx]), v.spin.Tick)
			}
		}
	}
	return v, nil
}

// addTag runs the optimistic add. The flow mutates its lists before the
// server call and restores them on failure; the view just re-renders.
func (v *tagsView) addTag(tag domain.Tag) tea.Cmd {
	flow := v.flow
	return func() tea.Msg {
		err := flow.Add(context.Background(), tag.ID)
		return tagMutatedMsg{name: tag.Name, add: true, err: err}
	}
}

func (v *tagsView) removeTag(tag domain.Tag) tea.Cmd {
	flow := v.flow
	return func() tea.Msg {
		err := flow.Remove(context.Background(), tag.ID)
		return tagMutatedMsg{name: tag.Name, add: false, err: err}
	}
}

func (v *tagsView) clampCursor() {
	if n := len(v.flow.Available()); v.cursor >= n {
		v.cursor = maxInt(n-1, 0)
	}
}

func (v *tagsView) View() string {
	var b strings.Builder
	b.WriteString("\n  " + formatter.Bold(v.task.Title) + "\n\n")

	if v.loading {
		b.WriteString("  " + v.spin.View() + " " + formatter.Dim("Loading tags…") + "\n")
		return b.String()
	}
	if v.err != nil {
		b.WriteString("  " + formatter.StyleRed.Render("Could not load tags.") + "\n")
		b.WriteString("  " + formatter.Dim(v.err.Error()) + "\n")
		return b.String()
	}

	b.WriteString("  " + formatter.StyleHeader.Render("Attached") + "\n")
	attached := v.flow.TaskTags()
	if len(attached) == 0 {
		b.WriteString("  " + formatter.Dim("(none)") + "\n")
	}
	for i, tag := range attached {
		b.WriteString(fmt.Sprintf("  %s %s\n", formatter.Dim(fmt.Sprintf("%d", i+1)), formatter.TagChip(tag)))
	}

	b.WriteString("\n  " + formatter.StyleHeader.Render("Available") + "\n")
	available := v.flow.Available()
	if len(available) == 0 {
		b.WriteString("  " + formatter.Dim("(none)") + "\n")
	}
	for i, tag := range available {
		cursor := "  "
		if i == v.cursor {
			cursor = formatter.StyleHeader.Render("▸ ")
		}
		b.WriteString("  " + cursor + formatter.TagChip(tag) + "\n")
	}

	if v.flow.Pending() {
		b.WriteString("\n  " + v.spin.View() + " " + formatter.Dim("Saving…") + "\n")
	}
	return b.String()
}
