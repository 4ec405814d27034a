/*
Copyright © 2022 NAME HERE <EMAIL ADDRESS>
*/
package copy

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/xiaomi388/templater/pkg/app"
	"github.com/xiaomi388/templater/pkg/clipboard"
)

// Copier is swapped in tests.
var Copier clipboard.Copier = clipboard.System{}

// CopyCmd represents the copy command
var CopyCmd = &cobra.Command{
	Use:   "copy <index>",
	Short: "copy a template to the clipboard",
	Args:  cobra.ExactArgs(1),
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

		t, ok := a.Store.Get(index)
		if !ok {
			return fmt.Errorf("no template at index %d", index)
		}

		if err := Copier.WriteAll(t.Description); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Template copied to clipboard!")
		return nil
	},
}
