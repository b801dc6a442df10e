package main

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/WJQSERVER/cripple"
)

// app carries the state shared by all subcommands of one invocation.
type app struct {
	cfgFile string
	verbose bool
	numeric bool
	color   bool

	cfg *Config
	log *slog.Logger
}

// reportedError marks errors that have already been printed through the
// error hook, so Execute does not print them twice.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error { return e.error }

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}
	root := &cobra.Command{
		Use:   "cripplec",
		Short: "Cripple Code front end",
		Long: `cripplec tokenizes, parses and checks Cripple Code (.cc) source files.

Commands:
  tokens   print the token stream of a file
  ast      print the parsed tree of a file
  lint     report structural problems in files
  watch    re-parse a file whenever it changes`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./cripple.toml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	root.PersistentFlags().BoolVar(&a.numeric, "numeric", false, "classify numeric literals in the lexer")
	root.PersistentFlags().BoolVar(&a.color, "color", false, "colorize output")

	root.AddCommand(
		newTokensCmd(a),
		newASTCmd(a),
		newLintCmd(a),
		newWatchCmd(a),
		newVersionCmd(),
	)
	return root, a
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := LoadFromEnv(a.cfgFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("numeric") {
		cfg.Lexer.NumericLiterals = a.numeric
	}
	if flags.Changed("color") {
		cfg.Output.Color = a.color
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := newLogger(cmd.ErrOrStderr(), cfg.Log, a.verbose)
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, logger
	a.log.Debug("configuration loaded",
		"extension", cfg.Source.Extension,
		"numeric_literals", cfg.Lexer.NumericLiterals,
		"format", cfg.Output.Format)
	return nil
}

// fatalHook reports fatal parse errors on w.
func (a *app) fatalHook(w io.Writer) cripple.ErrorHook {
	return func(d cripple.Diagnostic) {
		renderError(w, d.Error(), a.cfg.Output.Color)
	}
}

// parseFile runs the front end over path. Fatal parse errors are reported
// through the error hook and come back wrapped in reportedError.
func (a *app) parseFile(cmd *cobra.Command, path string) ([]*cripple.Node, error) {
	forest, err := cripple.ParseFile(path, a.cfg.FrontEndOptions(a.fatalHook(cmd.ErrOrStderr()))...)
	if err != nil {
		var d cripple.Diagnostic
		if errors.As(err, &d) && d.IsFatal() {
			return nil, reportedError{err}
		}
		return nil, err
	}
	a.log.Debug("parsed", "path", path, "nodes", len(forest))
	return forest, nil
}

// readSource checks the extension of path and reads it.
func (a *app) readSource(path string) ([]byte, error) {
	if !cripple.CheckExtension(path, a.cfg.Source.Extension) {
		return nil, errors.New("unknown file type! expecting '" + a.cfg.Source.Extension + "' files")
	}
	return os.ReadFile(path)
}

// Execute runs cripplec with the process arguments.
func Execute() error {
	return execute(os.Args[1:], os.Stdout, os.Stderr)
}

func execute(args []string, stdout, stderr io.Writer) error {
	root, a := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.Execute()
	if err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			renderError(stderr, err.Error(), a.cfg != nil && a.cfg.Output.Color)
		}
	}
	return err
}
