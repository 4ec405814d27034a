package configcmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/xiaomi388/templater/pkg/app"
	"github.com/xiaomi388/templater/pkg/config"
	"gopkg.in/yaml.v3"
)

var force bool

var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "inspect or create the config file",
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "write a config file with the default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := app.ResolveConfigPath()
		if err != nil {
			return err
		}

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to stat config file: %w", err)
		}

		if err := config.Dump(path, config.Default()); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "print the effective config",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := app.ResolveConfigPath()
		if err != nil {
			return err
		}

		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		if app.StorePath != "" {
			cfg.Storage.Path = app.StorePath
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", path, data)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	ConfigCmd.AddCommand(initCmd)
	ConfigCmd.AddCommand(showCmd)
}
