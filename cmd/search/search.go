/*
Copyright © 2022 NAME HERE <EMAIL ADDRESS>
*/
package search

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xiaomi388/templater/cmd/list"
	"github.com/xiaomi388/templater/pkg/app"
)

var full bool

// SearchCmd represents the search command
var SearchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "list templates containing the query, ignoring case",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.Open()
		if err != nil {
			return err
		}
		defer a.Close()

		query := strings.Join(args, " ")
		if n := list.Print(cmd.OutOrStdout(), a.Store.Search(query), a.Config.Display.Width, full); n == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No templates match %q.\n", query)
		}
		return nil
	},
}

func init() {
	SearchCmd.Flags().BoolVar(&full, "full", false, "print whole descriptions instead of one-line summaries")
}
