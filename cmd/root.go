/*
Copyright © 2022 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/xiaomi388/templater/cmd/add"
	"github.com/xiaomi388/templater/cmd/configcmd"
	"github.com/xiaomi388/templater/cmd/copy"
	"github.com/xiaomi388/templater/cmd/edit"
	"github.com/xiaomi388/templater/cmd/list"
	"github.com/xiaomi388/templater/cmd/migrate"
	"github.com/xiaomi388/templater/cmd/remove"
	"github.com/xiaomi388/templater/cmd/run"
	"github.com/xiaomi388/templater/cmd/search"
	"github.com/xiaomi388/templater/pkg/app"
	"github.com/xiaomi388/templater/pkg/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "templater",
	Short: "keep reusable text snippets one keystroke away",
	Long: `templater stores short reusable text snippets ("templates") and copies
them to the clipboard.

Use the subcommands from scripts, or "templater run" for the interactive
window that stays in the background until it is shown again.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&config.ConfigPath, "config", "", "config file (default is <user config dir>/Templater/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&app.StorePath, "store", "", "templates file, overrides storage.path")

	rootCmd.AddCommand(add.AddCmd)
	rootCmd.AddCommand(edit.EditCmd)
	rootCmd.AddCommand(list.ListCmd)
	rootCmd.AddCommand(search.SearchCmd)
	rootCmd.AddCommand(copy.CopyCmd)
	rootCmd.AddCommand(remove.RemoveCmd)
	rootCmd.AddCommand(migrate.MigrateCmd)
	rootCmd.AddCommand(configcmd.ConfigCmd)
	rootCmd.AddCommand(run.RunCmd)
}
