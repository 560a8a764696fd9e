// Package cli provides the Cobra command structure for syntree.
package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/syntree/internal/logging"
	"github.com/yaklabco/syntree/internal/ui/pretty"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root syntree command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "syntree",
		Short: "Full-fidelity C# syntax trees from the command line",
		Long: `syntree parses C# source into full-fidelity syntax trees and reports
what it finds in them.

Every tree keeps all tokens and trivia, so the text of any node is exactly
the text it was parsed from. Commands trace the kinds of a depth-first walk,
list using directives, collect declarations and invocations, query nodes by
kind and describe the structure of a program. C# code blocks in Markdown
documents can be analyzed like source files.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.Default()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", pretty.ColorAuto,
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Join(ErrInvalidUsage, err)
	})

	rootCmd.AddCommand(newDumpCommand())
	rootCmd.AddCommand(newUsingsCommand())
	rootCmd.AddCommand(newCollectCommand())
	rootCmd.AddCommand(newQueryCommand())
	rootCmd.AddCommand(newDescribeCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
