package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/xiaomi388/templater/pkg/types"
)

type action int

const (
	actionCopy action = iota
	actionCreate
	actionEdit
	actionDelete
	actionSearch
	actionClearSearch
	actionHide
	actionQuit
)

var menu = []string{
	actionCopy:        "Copy template",
	actionCreate:      "Create template",
	actionEdit:        "Edit template",
	actionDelete:      "Delete template",
	actionSearch:      "Search templates",
	actionClearSearch: "Clear search",
	actionHide:        "Hide window",
	actionQuit:        "Quit",
}

// Console is the window: it lists templates and runs the user's actions
// against the loop.
type Console struct {
	loop     *Loop
	prompter Prompter
	out      io.Writer
	width    int
	actions  []action

	query string
}

type ConsoleOption func(*Console)

// WithoutHide drops "Hide window" from the menu, for platforms with no
// signal to show it again.
func WithoutHide() ConsoleOption {
	return func(c *Console) {
		var actions []action
		for _, a := range c.actions {
			if a != actionHide {
				actions = append(actions, a)
			}
		}
		c.actions = actions
	}
}

func NewConsole(loop *Loop, prompter Prompter, out io.Writer, width int, opts ...ConsoleOption) *Console {
	if width <= 0 {
		width = types.DefaultSummaryWidth
	}
	c := &Console{loop: loop, prompter: prompter, out: out, width: width}
	for a := range menu {
		c.actions = append(c.actions, action(a))
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run shows the window whenever it is visible until the user quits or the
// loop stops.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := c.loop.WaitVisible(ctx); err != nil {
			if errors.Is(err, ErrClosed) {
				return nil
			}
			return err
		}

		quit, err := c.step(ctx)
		if errors.Is(err, ErrClosed) {
			return nil
		}
		if err != nil {
			return err
		}
		if quit {
			c.loop.Post(IntentQuit)
			return nil
		}
	}
}

// step renders the list once and performs one menu action.
func (c *Console) step(ctx context.Context) (bool, error) {
	entries, err := c.loop.Search(ctx, c.query)
	if err != nil {
		return false, err
	}
	c.render(entries)

	options := make([]string, len(c.actions))
	for i, a := range c.actions {
		options[i] = menu[a]
	}

	choice, err := c.prompter.Select(ctx, SelectConfig{Message: "Templater", Options: options})
	if errors.Is(err, ErrCancelled) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	if choice < 0 || choice >= len(c.actions) {
		return false, nil
	}

	switch c.actions[choice] {
	case actionCopy:
		return false, c.copy(ctx, entries)
	case actionCreate:
		return false, c.create(ctx)
	case actionEdit:
		return false, c.edit(ctx, entries)
	case actionDelete:
		return false, c.remove(ctx, entries)
	case actionSearch:
		return false, c.search(ctx)
	case actionClearSearch:
		c.query = ""
	case actionHide:
		if err := c.loop.Hide(ctx); err != nil {
			return false, err
		}
		fmt.Fprintf(c.out, "Window hidden. Send SIGUSR1 to process %d to show it again.\n", os.Getpid())
	case actionQuit:
		return true, nil
	}
	return false, nil
}

func (c *Console) render(entries []Entry) {
	fmt.Fprintln(c.out)
	if c.query != "" {
		fmt.Fprintf(c.out, "Search: %q\n", c.query)
	}
	if len(entries) == 0 {
		fmt.Fprintln(c.out, "(no templates)")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(c.out, "%3d. %s\n", e.Index, e.Template.Summary(c.width))
	}
}

// pick asks the user for one of entries. ok is false when nothing was
// picked.
func (c *Console) pick(ctx context.Context, message string, entries []Entry) (Entry, bool, error) {
	if len(entries) == 0 {
		fmt.Fprintln(c.out, "No templates to choose from.")
		return Entry{}, false, nil
	}

	options := make([]string, len(entries))
	for i, e := range entries {
		options[i] = fmt.Sprintf("%d. %s", e.Index, e.Template.Summary(c.width))
	}

	i, err := c.prompter.Select(ctx, SelectConfig{Message: message, Options: options, PageSize: 15})
	if errors.Is(err, ErrCancelled) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	if i < 0 || i >= len(entries) {
		return Entry{}, false, nil
	}
	return entries[i], true, nil
}

func (c *Console) copy(ctx context.Context, entries []Entry) error {
	e, ok, err := c.pick(ctx, "Copy which template?", entries)
	if err != nil || !ok {
		return err
	}

	copied, err := c.loop.Copy(ctx, e)
	if err != nil {
		return c.report("copying", err)
	}
	if copied {
		fmt.Fprintln(c.out, "Template copied to clipboard!")
	}
	return nil
}

func (c *Console) create(ctx context.Context) error {
	text, err := c.prompter.TextArea(ctx, TextAreaConfig{Message: "Create Template"})
	if errors.Is(err, ErrCancelled) {
		return nil
	}
	if err != nil {
		return c.report("creating", err)
	}

	if _, err := c.loop.Add(ctx, text); err != nil {
		return c.report("creating", err)
	}
	return nil
}

func (c *Console) edit(ctx context.Context, entries []Entry) error {
	e, ok, err := c.pick(ctx, "Edit which template?", entries)
	if err != nil || !ok {
		return err
	}

	text, err := c.prompter.TextArea(ctx, TextAreaConfig{Message: "Edit Template", Default: e.Template.Description})
	if errors.Is(err, ErrCancelled) {
		return nil
	}
	if err != nil {
		return c.report("editing", err)
	}

	if _, err := c.loop.Update(ctx, e, text); err != nil {
		return c.report("editing", err)
	}
	return nil
}

func (c *Console) remove(ctx context.Context, entries []Entry) error {
	e, ok, err := c.pick(ctx, "Delete which template?", entries)
	if err != nil || !ok {
		return err
	}

	if _, err := c.loop.Remove(ctx, e); err != nil {
		return c.report("deleting", err)
	}
	return nil
}

func (c *Console) search(ctx context.Context) error {
	query, err := c.prompter.Input(ctx, InputConfig{Message: "Enter search query:", Default: c.query})
	if errors.Is(err, ErrCancelled) {
		return nil
	}
	if err != nil {
		return err
	}
	c.query = query
	return nil
}

// report shows an unexpected failure and keeps the window usable. Only a
// stopped loop or a cancelled context end the console.
func (c *Console) report(doing string, err error) error {
	if errors.Is(err, ErrClosed) || errors.Is(err, context.Canceled) {
		return err
	}
	fmt.Fprintf(c.out, "Error: an error occurred while %s the template: %v\n", doing, err)
	return nil
}
