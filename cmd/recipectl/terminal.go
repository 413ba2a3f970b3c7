package main

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/pageza/recipebox/frontend/internal/service"
	"github.com/pageza/recipebox/frontend/internal/types"
)

// terminalView prints the recipe container to stdout, or writes it to a
// file, and shows notifications on stderr.
type terminalView struct {
	out     io.Writer
	notices io.Writer
	path    string
	err     error
}

func newTerminalView(out, notices io.Writer, path string) *terminalView {
	return &terminalView{out: out, notices: notices, path: path}
}

func (v *terminalView) Replace(html template.HTML) {
	if v.path != "" {
		if err := os.WriteFile(v.path, []byte(html), 0o644); err != nil {
			v.err = fmt.Errorf("failed to write %s: %w", v.path, err)
			return
		}
		fmt.Fprintln(v.notices, mutedStyle.Render("Wrote "+v.path))
		return
	}
	if _, err := fmt.Fprintln(v.out, string(html)); err != nil {
		v.err = err
	}
}

func (v *terminalView) Notify(message string) {
	fmt.Fprintln(v.notices, failStyle.Render(message))
}

// ClearForm is a no-op: flags are not kept between runs.
func (v *terminalView) ClearForm() {}

// Err returns the first failure to write the container
func (v *terminalView) Err() error {
	return v.err
}

// formEditor prompts for the editable fields with a huh form. The text
// areas have no character limit so long current values are kept whole.
type formEditor struct {
	run func(ctx context.Context, form *huh.Form) error
}

func newFormEditor() *formEditor {
	return &formEditor{run: func(ctx context.Context, form *huh.Form) error { return form.RunWithContext(ctx) }}
}

func (e *formEditor) Prompt(ctx context.Context, current types.Recipe) (types.RecipeEdit, error) {
	edit := current.Edit()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&edit.Title),

			huh.NewText().
				Title("Ingredients").
				Value(&edit.Ingredients),

			huh.NewText().
				Title("Instructions").
				Value(&edit.Instructions),
		),
	).WithTheme(huh.ThemeDracula())

	if err := e.run(ctx, form); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return types.RecipeEdit{}, service.ErrUserCancelled
		}
		return types.RecipeEdit{}, fmt.Errorf("edit form: %w", err)
	}
	return edit, nil
}
