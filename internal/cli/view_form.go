package cli

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// submitFunc performs the server call behind a completed form.
type submitFunc func(ctx context.Context) error

// formView wraps a huh.Form as a stack view. On completion it runs the
// submit function asynchronously, pops itself, and broadcasts a refresh.
type formView struct {
	state  *SharedState
	title  string
	form   *huh.Form
	submit submitFunc
	done   bool
}

func newFormView(state *SharedState, title string, form *huh.Form, submit submitFunc) *formView {
	return &formView{state: state, title: title, form: form, submit: submit}
}

// newNameFormView builds a single-field form calling submit with the
// entered value. Reused for board/column creation, renames, and
// username entry.
func newNameFormView(state *SharedState, title, field string, submit func(ctx context.Context, value string) error) *formView {
	value := new(string)
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title(field).Value(value).Validate(requireNonEmpty),
		),
	).WithShowHelp(false)
	return newFormView(state, title, form, func(ctx context.Context) error {
		return submit(ctx, *value)
	})
}

// newTaskFormView builds the two-field task creation form.
func newTaskFormView(state *SharedState, columnID int) *formView {
	title := new(string)
	description := new(string)
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(title).Validate(requireNonEmpty),
			huh.NewText().Title("Description").Value(description),
		),
	).WithShowHelp(false)
	return newFormView(state, "New Task", form, func(ctx context.Context) error {
		_, err := state.App.Tasks.CreateTask(ctx, columnID, *title, *description)
		return err
	})
}

func (v *formView) ID() ViewID    { return ViewForm }
func (v *formView) Title() string { return v.title }

func (v *formView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (v *formView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *formView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return v, popView()
	}

	model, cmd := v.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted && !v.done {
		v.done = true
		submit := v.submit
		return v, tea.Batch(popView(), func() tea.Msg {
			if err := submit(context.Background()); err != nil {
				return noticeMsg{text: api403Notice(err, "Request failed."), isErr: true}
			}
			return refreshViewMsg{}
		})
	}
	return v, cmd
}

func (v *formView) View() string {
	return "\n" + v.form.View()
}

var errEmptyField = errors.New("value required")

func requireNonEmpty(s string) error {
	if len(s) == 0 {
		return errEmptyField
	}
	return nil
}
