package migrate

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xiaomi388/templater/pkg/codec"
	"github.com/xiaomi388/templater/pkg/persistence"
)

var (
	fromBackend string
	toBackend   string
	sourcePath  string
	destPath    string
)

var MigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "migrate templates between storage backends",
	Long:  `Migrate templates from one storage backend to another (e.g. json to sqlite).`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := Migrate(fromBackend, sourcePath, toBackend, destPath)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Successfully migrated %d template(s) from %s to %s.\n", n, fromBackend, toBackend)
		fmt.Fprintln(out, "Update your config.yaml to use the new backend:")
		fmt.Fprintln(out, "  storage:")
		fmt.Fprintf(out, "    backend: %s\n", toBackend)
		return nil
	},
}

func init() {
	MigrateCmd.Flags().StringVar(&fromBackend, "from", "json", "source backend (json or sqlite)")
	MigrateCmd.Flags().StringVar(&toBackend, "to", "sqlite", "destination backend (json or sqlite)")
	MigrateCmd.Flags().StringVar(&sourcePath, "source", "", "source file path (defaults based on backend)")
	MigrateCmd.Flags().StringVar(&destPath, "dest", "", "destination file path (defaults based on backend)")
}

// Migrate copies every template from one backend to another. Unlike loading
// the store, a malformed source is an error here, so nothing is lost
// silently.
func Migrate(from, source, to, dest string) (int, error) {
	if from == to && source == dest {
		return 0, fmt.Errorf("source and destination are the same: %s", from)
	}

	src, err := persistence.NewBackendWithPath(from, source)
	if err != nil {
		return 0, fmt.Errorf("failed to open source store: %w", err)
	}
	defer src.Close()

	dst, err := persistence.NewBackendWithPath(to, dest)
	if err != nil {
		return 0, fmt.Errorf("failed to open destination store: %w", err)
	}
	defer dst.Close()

	raws, err := src.LoadRecords()
	if err != nil {
		return 0, fmt.Errorf("failed to load from source: %w", err)
	}

	templates, err := codec.DecodeAll(raws)
	if err != nil {
		return 0, fmt.Errorf("source has malformed templates: %w", err)
	}

	raws, err = codec.MarshalAll(templates)
	if err != nil {
		return 0, err
	}

	if err := dst.DumpRecords(raws); err != nil {
		return 0, fmt.Errorf("failed to write to destination: %w", err)
	}

	return len(templates), nil
}
