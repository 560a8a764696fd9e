package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/syntree/internal/logging"
	"github.com/yaklabco/syntree/pkg/config"
	"github.com/yaklabco/syntree/pkg/fsutil"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// defaultConfigFile is the file init writes when --output is not given.
const defaultConfigFile = ".syntree.yml"

type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a syntree configuration file",
		Long: `Create a .syntree.yml configuration file in the current directory
holding the default settings. Edit it to choose the parser, the
extensions to discover, the ignored paths and the using root left out.

Examples:
  syntree init                        Create .syntree.yml
  syntree init --force                Replace an existing file
  syntree init --output syntree.yml   Write to another path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultConfigFile, "output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "info")

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrInvalidUsage, flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	content, err := config.GenerateTemplate()
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	written, err := fsutil.WriteAtomicIfChanged(cmd.Context(), absPath, content, configFilePermissions)
	if err != nil {
		return fmt.Errorf("%w: write file: %w", ErrInputFailed, err)
	}

	if !written {
		logger.Info("configuration file is already up to date", logging.FieldPath, flags.output)
		return nil
	}
	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("run 'syntree config' to see the resolved settings")

	return nil
}
