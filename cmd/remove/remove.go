/*
Copyright © 2022 NAME HERE <EMAIL ADDRESS>
*/
package remove

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/xiaomi388/templater/pkg/app"
)

// RemoveCmd represents the rm command
var RemoveCmd = &cobra.Command{
	Use:     "rm <index>",
	Aliases: []string{"remove"},
	Short:   "delete a template",
	Args:    cobra.ExactArgs(1),
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

		removed, err := a.Store.Remove(index)
		if err != nil {
			return fmt.Errorf("an error occurred while deleting the template: %w", err)
		}
		if !removed {
			return fmt.Errorf("no template at index %d", index)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted template %d.\n", index)
		return nil
	},
}
