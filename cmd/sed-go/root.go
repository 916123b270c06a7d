package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	sed "github.com/rwtodd/tealsed"
	"github.com/rwtodd/tealsed/internal/config"
)

const (
	exitLoad    = 1 // the script or configuration could not be loaded
	exitRuntime = 2 // reading, writing or replacing a file failed
)

// exitError carries the process exit code. Its error has already been
// shown to the user.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

type options struct {
	cfgFile     string
	quiet       bool
	expressions []string
	scriptFiles []string
	extended    bool
	teal        bool
	dialect     string
	inPlace     bool
	verbose     bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "sed-go [flags] [script] [file...]",
		Short: "sed-go - a stream editor with basic, extended and teal regex dialects",
		Long: `Reads each file (or standard input) line by line, runs the script on
every line and writes the result to standard output.

When neither -e nor -f is given, the first argument is the script.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.quiet, "quiet", "n", false, "do not automatically print lines")
	flags.BoolVar(&opts.quiet, "silent", false, "do not automatically print lines")
	// StringArray, not StringSlice: scripts are full of commas
	flags.StringArrayVarP(&opts.expressions, "expression", "e", nil, "a script to run (repeatable)")
	flags.StringArrayVarP(&opts.scriptFiles, "file", "f", nil, "a file to read as a script (repeatable)")
	flags.BoolVarP(&opts.extended, "regexp-extended", "E", false, "use the extended regex dialect")
	flags.BoolVar(&opts.teal, "teal", false, "use the teal regex dialect")
	flags.StringVar(&opts.dialect, "dialect", "", "regex dialect: basic, extended or teal")
	flags.BoolVarP(&opts.inPlace, "in-place", "i", false, "change file(s) in place")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")
	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", config.DefaultPath, "configuration file")

	cmd.AddCommand(newInitCmd(opts))
	return cmd
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	stderr := cmd.ErrOrStderr()

	cfg, err := config.Load(opts.cfgFile)
	if err != nil {
		return fail(stderr, exitLoad, err)
	}

	logger := newLogger(stderr, opts.verbose || cfg.Verbose)
	defer logger.Sync() //nolint:errcheck

	dialect, err := opts.resolveDialect(cmd.Flags(), cfg)
	if err != nil {
		return fail(stderr, exitLoad, err)
	}

	scripts, files, err := opts.scripts(cfg, args)
	if err != nil {
		return fail(stderr, exitLoad, err)
	}

	script, err := sed.Compile(dialect, scripts...)
	if err != nil {
		logger.Debug("script compile failed", zap.Error(err))
		reportLoadErrors(stderr, err)
		return &exitError{code: exitLoad, err: err}
	}
	logger.Debug("script compiled",
		zap.Stringer("dialect", dialect),
		zap.Int("commands", len(script.Commands)),
		zap.Strings("files", files))

	engine := sed.New(script,
		sed.WithQuiet(opts.quiet || cfg.Quiet),
		sed.WithLogger(logger))

	if err := process(cmd, engine, logger, opts.inPlace, files); err != nil {
		logger.Error("engine failed", zap.Error(err))
		return fail(stderr, exitRuntime, err)
	}
	return nil
}

func fail(w io.Writer, code int, err error) error {
	reportError(w, err)
	return &exitError{code: code, err: err}
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.DebugLevel)
	return zap.New(core)
}

// resolveDialect picks the dialect from at most one of -E, --teal and
// --dialect, falling back to the configuration file.
func (o *options) resolveDialect(flags *pflag.FlagSet, cfg config.Config) (sed.Dialect, error) {
	chosen := 0
	for _, name := range []string{"regexp-extended", "teal", "dialect"} {
		if flags.Changed(name) {
			chosen++
		}
	}
	if chosen > 1 {
		return sed.Basic, errors.New("choose only one of -E, --teal and --dialect")
	}

	switch {
	case o.teal:
		return sed.Teal, nil
	case o.extended:
		return sed.Extended, nil
	case flags.Changed("dialect"):
		return sed.ParseDialect(o.dialect)
	}
	return cfg.Dialect()
}

// scripts collects the script texts and returns the remaining arguments,
// which name the input files.
func (o *options) scripts(cfg config.Config, args []string) ([]string, []string, error) {
	expressions, scriptFiles := o.expressions, o.scriptFiles
	if len(expressions) == 0 && len(scriptFiles) == 0 {
		expressions, scriptFiles = cfg.Expressions, cfg.ScriptFiles
	}

	if len(expressions) == 0 && len(scriptFiles) == 0 {
		// no -e or -f given, so the first argument is taken as the script to run
		if len(args) == 0 {
			return nil, nil, errors.New("no script given (use -e, -f or a script argument)")
		}
		return args[:1], args[1:], nil
	}

	scripts := append([]string(nil), expressions...)
	for _, name := range scriptFiles {
		text, err := os.ReadFile(name)
		if err != nil {
			return nil, nil, fmt.Errorf("reading script file: %w", err)
		}
		scripts = append(scripts, string(text))
	}
	return scripts, args, nil
}

// process runs the engine once over all files, so line numbers continue
// from one file to the next. In place, every file is a run of its own.
func process(cmd *cobra.Command, engine *sed.Engine, logger *zap.Logger, inPlace bool, files []string) error {
	if len(files) == 0 {
		if inPlace {
			return errors.New("in-place editing needs at least one file")
		}
		return engine.Run(cmd.OutOrStdout(), cmd.InOrStdin())
	}

	if inPlace {
		for _, name := range files {
			if err := editInPlace(engine, logger, name); err != nil {
				return err
			}
		}
		return nil
	}

	inputs := make([]io.Reader, 0, len(files))
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		inputs = append(inputs, f)
	}
	return engine.Run(cmd.OutOrStdout(), inputs...)
}
