/*
Copyright © 2022 NAME HERE <EMAIL ADDRESS>
*/
package edit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xiaomi388/templater/pkg/app"
	"github.com/xiaomi388/templater/pkg/session"
)

// EditCmd represents the edit command
var EditCmd = &cobra.Command{
	Use:   "edit <index> [text...]",
	Short: "replace a template, in $EDITOR when no text is given",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index %q", args[0])
		}

		a, err := app.Open()
		if err != nil {
			return err
		}
		defer a.Close()

		current, ok := a.Store.Get(index)
		if !ok {
			return fmt.Errorf("no template at index %d", index)
		}

		text := strings.Join(args[1:], " ")
		if len(args) == 1 {
			text, err = session.SurveyPrompter{}.TextArea(cmd.Context(), session.TextAreaConfig{
				Message: "Edit Template",
				Default: current.Description,
			})
			if errors.Is(err, session.ErrCancelled) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to read template: %w", err)
			}
		}

		updated, err := a.Store.Update(index, text)
		if err != nil {
			return fmt.Errorf("an error occurred while editing the template: %w", err)
		}
		if !updated {
			fmt.Fprintln(cmd.OutOrStdout(), "Empty template ignored.")
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Edited template %d.\n", index)
		return nil
	},
}
