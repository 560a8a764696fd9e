package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/syntree/internal/configloader"
)

type configFlags struct {
	paths bool
	env   bool
}

func newConfigCommand() *cobra.Command {
	flags := &configFlags{}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Long: `Print the configuration the analysis commands would use, after
merging the user and project files, the --config file and SYNTREE_*
environment variables.

Examples:
  syntree config              Resolved settings as YAML
  syntree config --paths      Configuration files that were searched
  syntree config --env        Supported environment variables`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.paths, "paths", false, "list the configuration files that were searched")
	cmd.Flags().BoolVar(&flags.env, "env", false, "list the supported environment variables")

	return cmd
}

func runConfig(cmd *cobra.Command, flags *configFlags) error {
	out := cmd.OutOrStdout()

	if flags.env {
		descriptions := configloader.ListEnvVars()
		for _, name := range configloader.EnvVarNames() {
			fmt.Fprintf(out, "%-28s %s\n", name, descriptions[name])
		}
		return nil
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	result, err := configloader.Load(cmd.Context(), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
	})
	if err != nil {
		return errors.Join(ErrConfig, err)
	}

	if flags.paths {
		fmt.Fprintf(out, "user:     %s\n", orNone(result.Paths.User))
		fmt.Fprintf(out, "project:  %s\n", orNone(result.Paths.Project))
		fmt.Fprintf(out, "explicit: %s\n", orNone(result.Paths.Explicit))
		return nil
	}

	header := "# resolved configuration (defaults only)"
	if len(result.LoadedFrom) > 0 {
		header = "# resolved configuration from " + strings.Join(result.LoadedFrom, ", ")
	}
	data, err := result.Config.ToYAMLWithHeader(header)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func orNone(path string) string {
	if path == "" {
		return "(none)"
	}
	return path
}
