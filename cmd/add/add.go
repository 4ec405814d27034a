/*
Copyright © 2022 NAME HERE <EMAIL ADDRESS>
*/
package add

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xiaomi388/templater/pkg/app"
	"github.com/xiaomi388/templater/pkg/session"
)

// AddCmd represents the add command
var AddCmd = &cobra.Command{
	Use:   "add [text...]",
	Short: "create a template, in $EDITOR when no text is given",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.Open()
		if err != nil {
			return err
		}
		defer a.Close()

		text := strings.Join(args, " ")
		if len(args) == 0 {
			text, err = session.SurveyPrompter{}.TextArea(cmd.Context(), session.TextAreaConfig{Message: "Create Template"})
			if errors.Is(err, session.ErrCancelled) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to read template: %w", err)
			}
		}

		added, err := a.Store.Add(text)
		if err != nil {
			return fmt.Errorf("an error occurred while creating the template: %w", err)
		}
		if !added {
			fmt.Fprintln(cmd.OutOrStdout(), "Empty template ignored.")
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created template %d.\n", a.Store.Len()-1)
		return nil
	},
}
