package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/syntree/internal/configloader"
	"github.com/yaklabco/syntree/internal/logging"
	"github.com/yaklabco/syntree/internal/ui/pretty"
	"github.com/yaklabco/syntree/pkg/analyze"
	"github.com/yaklabco/syntree/pkg/config"
	"github.com/yaklabco/syntree/pkg/fsutil"
	"github.com/yaklabco/syntree/pkg/parser/csharp"
	"github.com/yaklabco/syntree/pkg/parser/treesitter"
	"github.com/yaklabco/syntree/pkg/reporter"
	"github.com/yaklabco/syntree/pkg/runner"
	"github.com/yaklabco/syntree/pkg/snippets"
	"github.com/yaklabco/syntree/pkg/walk"
)

// stdinPath names standard input in arguments and reports.
const stdinPath = "-"

// outputFilePermissions is the file mode for --output files.
const outputFilePermissions = 0o644

// analyzeFlags holds the flags shared by the analysis commands.
type analyzeFlags struct {
	format        string
	parser        string
	jobs          int
	ignore        []string
	extensions    []string
	excludePrefix string
	allUsings     bool
	strict        bool
	noContext     bool
	compact       bool
	summaryOrder  string
	output        string
	noMarkdown    bool
	withGenerated bool
	detect        bool

	// dump
	tokens bool
	depth  string

	// query
	kinds []string
}

// analysisCommand describes one analysis subcommand.
type analysisCommand struct {
	use     string
	short   string
	long    string
	mode    analyze.Mode
	addMore func(cmd *cobra.Command, flags *analyzeFlags)
}

func newAnalysisCommand(spec analysisCommand) *cobra.Command {
	flags := &analyzeFlags{}

	cmd := &cobra.Command{
		Use:   spec.use,
		Short: spec.short,
		Long:  spec.long,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalysis(cmd, args, spec.mode, flags)
		},
	}

	addAnalyzeFlags(cmd, flags)
	if spec.addMore != nil {
		spec.addMore(cmd, flags)
	}

	return cmd
}

func newDumpCommand() *cobra.Command {
	return newAnalysisCommand(analysisCommand{
		use:   "dump [paths...]",
		short: "Trace the kinds of a depth-first walk",
		long: `Print one "Visit: <Kind>" line for every node of a depth-first walk,
indented by depth. With --tokens each token is listed under its parent
as "Token: <Kind>" with its text.

Examples:
  syntree dump Program.cs              # Node kinds only
  syntree dump --tokens Program.cs     # Nodes and tokens
  cat Program.cs | syntree dump        # Read standard input`,
		mode: analyze.ModeDump,
		addMore: func(cmd *cobra.Command, flags *analyzeFlags) {
			cmd.Flags().BoolVar(&flags.tokens, "tokens", false, "include tokens in the trace")
			cmd.Flags().StringVar(&flags.depth, "depth", "", "walk depth: nodes, tokens, trivia")
		},
	})
}

func newUsingsCommand() *cobra.Command {
	return newAnalysisCommand(analysisCommand{
		use:   "usings [paths...]",
		short: "List using directives outside the System namespace",
		long: `List the using directives of each file, leaving out System and any
System.* namespace. --exclude-prefix replaces the namespace root that is
left out; --all-usings lists every directive.

Examples:
  syntree usings src/
  syntree usings --exclude-prefix Microsoft src/
  syntree usings --format json Program.cs`,
		mode: analyze.ModeUsings,
	})
}

func newCollectCommand() *cobra.Command {
	return newAnalysisCommand(analysisCommand{
		use:   "collect [paths...]",
		short: "Collect usings, variable declarations and invocations",
		long: `Collect the using directives outside the System namespace, every
variable declaration and every invocation outside a declaration, each with
its full text and location.

Examples:
  syntree collect Program.cs
  syntree collect --format table src/
  syntree collect docs/README.md       # C# blocks in Markdown`,
		mode: analyze.ModeCollect,
	})
}

func newQueryCommand() *cobra.Command {
	return newAnalysisCommand(analysisCommand{
		use:   "query --kind KIND [paths...]",
		short: "List the nodes of the given kinds",
		long: `List every node whose kind is one of the given kinds, in document
order, with its location and text. Kinds use the names printed by dump.

Examples:
  syntree query --kind MethodDeclaration src/
  syntree query --kind Parameter,Argument Program.cs`,
		mode: analyze.ModeQuery,
		addMore: func(cmd *cobra.Command, flags *analyzeFlags) {
			cmd.Flags().StringSliceVarP(&flags.kinds, "kind", "k", nil, "node kinds to list (repeatable or comma separated)")
		},
	})
}

func newDescribeCommand() *cobra.Command {
	return newAnalysisCommand(analysisCommand{
		use:   "describe [paths...]",
		short: "Describe the structure of a program",
		long: `Walk the first class of the first namespace and describe its first
method: name, return type, parameters, body statements and the first
argument of the first statement. A file with a different shape is
described up to the point where it differs.

Examples:
  syntree describe Program.cs`,
		mode: analyze.ModeDescribe,
	})
}

func addAnalyzeFlags(cmd *cobra.Command, flags *analyzeFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, table, json, summary")
	cmd.Flags().StringVar(&flags.parser, "parser", "", "tree builder: native, treesitter")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "file extensions to discover (default .cs)")
	cmd.Flags().StringVar(&flags.excludePrefix, "exclude-prefix", "", "namespace root left out of using lists (default System)")
	cmd.Flags().BoolVar(&flags.allUsings, "all-usings", false, "list every using, including those under the excluded root")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit with status 1 when any tree has syntax errors")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	cmd.Flags().StringVar(&flags.summaryOrder, "summary-order", string(reporter.SummaryOrderCodes),
		"order of tables in summary output: codes, files")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write results to a file instead of stdout")
	cmd.Flags().BoolVar(&flags.noMarkdown, "no-markdown", false, "parse Markdown files as C# instead of extracting code blocks")
	cmd.Flags().BoolVar(&flags.withGenerated, "include-generated", false, "analyze generated and vendored files")
	cmd.Flags().BoolVar(&flags.detect, "detect-language", false, "include extension-less files detected as C#")
}

// cliConfig builds the CLI configuration layer from the flags that were
// set explicitly.
func cliConfig(cmd *cobra.Command, flags *analyzeFlags) *config.Config {
	cfg := &config.Config{
		Parser:         config.Parser(flags.parser),
		Format:         config.OutputFormat(flags.format),
		Jobs:           flags.jobs,
		ExcludePrefix:  flags.excludePrefix,
		DetectLanguage: flags.detect,
		Strict:         flags.strict,
		Output:         flags.output,
	}
	if cmd.Flags().Changed("ignore") {
		cfg.Ignore = flags.ignore
	}
	if cmd.Flags().Changed("ext") {
		cfg.Extensions = flags.extensions
	}
	if flags.noMarkdown {
		cfg.Markdown.Enabled = config.Bool(false)
	}
	if flags.withGenerated {
		cfg.SkipGenerated = config.Bool(false)
	}
	if flags.allUsings {
		cfg.FilterUsings = config.Bool(false)
	}
	switch {
	case flags.depth != "":
		cfg.Walk.Depth = flags.depth
	case flags.tokens:
		cfg.Walk.Depth = config.DepthTokens
	}
	return cfg
}

// validateFlags rejects bad flag values as usage errors.
func validateFlags(cfg *config.Config) error {
	switch {
	case cfg.Parser != "" && !configloader.IsValidParser(cfg.Parser):
		return fmt.Errorf("--parser: unknown parser %q", cfg.Parser)
	case cfg.Format != "" && !configloader.IsValidFormat(cfg.Format):
		return fmt.Errorf("--format: unknown format %q", cfg.Format)
	case cfg.Walk.Depth != "" && !configloader.IsValidDepth(cfg.Walk.Depth):
		return fmt.Errorf("--depth: unknown depth %q", cfg.Walk.Depth)
	case cfg.Jobs < 0:
		return fmt.Errorf("--jobs: must be >= 0, got %d", cfg.Jobs)
	}
	return nil
}

func runAnalysis(cmd *cobra.Command, args []string, mode analyze.Mode, flags *analyzeFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	cliCfg := cliConfig(cmd, flags)
	if err := validateFlags(cliCfg); err != nil {
		return errors.Join(ErrInvalidUsage, err)
	}

	cfg, err := loadConfig(ctx, cmd, workDir, cliCfg)
	if err != nil {
		return err
	}

	opts, err := analysisOptions(cfg, mode, flags.kinds)
	if err != nil {
		return errors.Join(ErrInvalidUsage, err)
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return errors.Join(ErrInvalidUsage, err)
	}

	engine := newEngine(cfg)
	analysisRunner := runner.New(engine)

	logger.Debug("configuration loaded",
		logging.FieldParser, engine.Parser.Name(),
		logging.FieldMode, string(mode),
		logging.FieldDepth, opts.Depth.String(),
		logging.FieldJobs, cfg.Jobs,
		logging.FieldSnippets, engine.Snippets != nil,
	)

	var result *runner.Result
	if readsStdin(cmd, args) {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return errors.Join(ErrInputFailed, fmt.Errorf("read standard input: %w", err))
		}
		result, err = analysisRunner.RunContent(ctx, stdinPath, content, opts)
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}
	} else {
		runOpts := runner.Options{
			Paths:          args,
			WorkingDir:     workDir,
			Extensions:     cfg.Extensions,
			ExcludeGlobs:   cfg.Ignore,
			DetectLanguage: cfg.DetectLanguage,
			Jobs:           cfg.Jobs,
			Analysis:       opts,
		}

		logger.Debug("starting analysis run",
			logging.FieldPaths, runOpts.Paths,
			logging.FieldWorkingDir, runOpts.WorkingDir,
		)

		result, err = analysisRunner.Run(ctx, runOpts)
		if err != nil {
			return errors.Join(ErrInputFailed, fmt.Errorf("analysis run failed: %w", err))
		}
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = pretty.ColorAuto
	}

	var out io.Writer = cmd.OutOrStdout()
	var buf bytes.Buffer
	if cfg.Output != "" {
		out = &buf
		colorMode = pretty.ColorNever
	}

	rep, err := reporter.New(reporter.Options{
		Writer:       out,
		ErrorWriter:  cmd.ErrOrStderr(),
		Format:       format,
		Color:        colorMode,
		ShowContext:  !flags.noContext,
		ShowSummary:  true,
		Compact:      flags.compact,
		SummaryOrder: reporter.SummaryOrder(flags.summaryOrder),
		WorkingDir:   workDir,
	})
	if err != nil {
		return errors.Join(ErrInvalidUsage, fmt.Errorf("create reporter: %w", err))
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if cfg.Output != "" {
		written, err := fsutil.WriteAtomicIfChanged(ctx, cfg.Output, buf.Bytes(), outputFilePermissions)
		if err != nil {
			return errors.Join(ErrInputFailed, fmt.Errorf("write output: %w", err))
		}
		logger.Debug("results written", logging.FieldOutput, cfg.Output, "changed", written)
	}

	return errorForExitCode(ExitCodeFromResult(result, cfg.Strict))
}

// loadConfig layers the configuration files, the environment and the CLI
// flags.
func loadConfig(ctx context.Context, cmd *cobra.Command, workDir string, cliCfg *config.Config) (*config.Config, error) {
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	return loadResult.Config, nil
}

// analysisOptions maps the configuration onto the options of one analysis.
func analysisOptions(cfg *config.Config, mode analyze.Mode, kindNames []string) (analyze.Options, error) {
	depth, err := walk.ParseDepth(cfg.Walk.Depth)
	if err != nil {
		return analyze.Options{}, err
	}
	if cfg.Walk.Depth == "" {
		depth = walk.DepthNodes
	}

	opts := analyze.Options{
		Mode:          mode,
		Depth:         depth,
		ExcludedRoot:  cfg.ExcludePrefix,
		AllUsings:     !cfg.FiltersUsings(),
		SkipGenerated: cfg.SkipsGenerated(),
	}

	if mode == analyze.ModeQuery {
		kinds, err := analyze.ParseKinds(kindNames...)
		if err != nil {
			return analyze.Options{}, fmt.Errorf("--kind: %w", err)
		}
		opts.Kinds = kinds
	}

	return opts, nil
}

// newEngine creates the engine selected by the configuration.
func newEngine(cfg *config.Config) *analyze.Engine {
	var parser analyze.Parser = csharp.New()
	if cfg.Parser == config.ParserTreeSitter {
		parser = treesitter.New()
	}

	var extractor *snippets.Extractor
	if cfg.Markdown.IsEnabled() {
		opts := []snippets.Option{
			snippets.WithGFM(),
			snippets.WithDetection(cfg.Markdown.DetectsUnlabeled()),
		}
		if len(cfg.Markdown.Languages) > 0 {
			opts = append(opts, snippets.WithLanguages(cfg.Markdown.Languages...))
		}
		extractor = snippets.New(opts...)
	}

	return analyze.NewEngine(parser, extractor)
}

// readsStdin reports whether the command analyzes standard input: either
// "-" is the only path, or no path is given and input is piped.
func readsStdin(cmd *cobra.Command, args []string) bool {
	if len(args) == 1 && args[0] == stdinPath {
		return true
	}
	if len(args) > 0 {
		return false
	}

	file, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		// Input was replaced by a reader, as in tests.
		return true
	}
	if term.IsTerminal(int(file.Fd())) {
		return false
	}
	info, err := file.Stat()
	if err != nil {
		return false
	}
	mode := info.Mode()
	return mode&os.ModeNamedPipe != 0 || mode.IsRegular()
}
