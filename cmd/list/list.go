/*
Copyright © 2022 NAME HERE <EMAIL ADDRESS>
*/
package list

import (
	"fmt"
	"io"
	"iter"

	"github.com/spf13/cobra"
	"github.com/xiaomi388/templater/pkg/app"
	"github.com/xiaomi388/templater/pkg/types"
)

var full bool

// ListCmd represents the list command
var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "list all templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.Open()
		if err != nil {
			return err
		}
		defer a.Close()

		Print(cmd.OutOrStdout(), a.Store.Search(""), a.Config.Display.Width, full)
		return nil
	},
}

func init() {
	ListCmd.Flags().BoolVar(&full, "full", false, "print whole descriptions instead of one-line summaries")
}

// Print writes one line per template, or the whole text when full is set.
func Print(w io.Writer, templates iter.Seq2[int, types.Template], width int, full bool) int {
	n := 0
	for i, t := range templates {
		if full {
			fmt.Fprintf(w, "[%d]\n%s\n\n", i, t.Description)
		} else {
			fmt.Fprintf(w, "%3d. %s\n", i, t.Summary(width))
		}
		n++
	}
	return n
}
