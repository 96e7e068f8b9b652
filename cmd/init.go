package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/go-releaserc/internal/config"
	"github.com/MyCarrier-DevOps/go-releaserc/internal/log"
)

var (
	flagInitFormat string
	flagForce      bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the project release configuration",
	Long: `Write the project release configuration into the repository. The file
name follows the format: .releaserc.json, .releaserc.yaml, .releaserc.toml
or release.config.js.`,
	Args: cobra.NoArgs,
	RunE: initRunE,
}

func init() {
	initCmd.Flags().StringVar(&flagInitFormat, "format", "json", "file format: json, yaml, toml or js")
	initCmd.Flags().BoolVar(&flagForce, "force", false, "overwrite an existing configuration file")

	rootCmd.AddCommand(initCmd)
}

func initRunE(cmd *cobra.Command, _ []string) error {
	format, err := config.ParseFormat(flagInitFormat)
	if err != nil {
		return err
	}
	name, err := config.FileNameFor(format)
	if err != nil {
		return err
	}
	path := filepath.Join(flagPath, name)

	if _, err := os.Stat(path); err == nil && !flagForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	// Another file earlier in the search order would shadow the new one.
	if existing, err := config.Discover(flagPath); err == nil && existing != "" && existing != path {
		logger := log.WithComponent("cli")
		logger.Warn().Str("existing", existing).Msg("another configuration file is present and may take precedence")
	}

	if err := config.WriteFile(path, config.Default(), format); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
