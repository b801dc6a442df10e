package main

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/spf13/cobra"

	"github.com/WJQSERVER/cripple"
)

type fileReport struct {
	Path        string               `json:"path"`
	Diagnostics []cripple.Diagnostic `json:"diagnostics"`
	err         error
}

func newLintCmd(a *app) *cobra.Command {
	var (
		jsonOutput bool
		concurrent bool
	)
	cmd := &cobra.Command{
		Use:   "lint <file>...",
		Short: "Report structural problems in source files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.lintFiles(cmd.OutOrStdout(), cmd.ErrOrStderr(), args, jsonOutput, concurrent)
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output issues in JSON format")
	cmd.Flags().BoolVar(&concurrent, "concurrent", false, "lint files in parallel")
	return cmd
}

func (a *app) lintFile(path string) fileReport {
	report := fileReport{Path: path}
	data, err := a.readSource(path)
	if err != nil {
		report.err = fmt.Errorf("%s: %w", path, err)
		return report
	}
	// Fatal errors are rendered with the other diagnostics, not by the hook.
	_, report.Diagnostics = cripple.Lint(data, a.cfg.FrontEndOptions(nil)...)
	a.log.Debug("linted", "path", path, "issues", len(report.Diagnostics))
	return report
}

func (a *app) lintFiles(stdout, stderr io.Writer, paths []string, jsonOutput, concurrent bool) error {
	reports := make([]fileReport, len(paths))
	if !concurrent {
		for i, path := range paths {
			reports[i] = a.lintFile(path)
		}
	} else {
		// One independent lexer/parser per file.
		numWorkers := runtime.NumCPU()
		jobs := make(chan int, len(paths))
		var wg sync.WaitGroup
		for w := 0; w < numWorkers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					reports[i] = a.lintFile(paths[i])
				}
			}()
		}
		for i := range paths {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}

	var readErrs []error
	issues := 0
	for _, r := range reports {
		if r.err != nil {
			readErrs = append(readErrs, r.err)
			continue
		}
		issues += len(r.Diagnostics)
	}

	if jsonOutput {
		out := make([]fileReport, 0, len(reports))
		for _, r := range reports {
			if r.err == nil {
				if r.Diagnostics == nil {
					r.Diagnostics = []cripple.Diagnostic{}
				}
				out = append(out, r)
			}
		}
		if err := json.MarshalWrite(stdout, out, jsontext.Multiline(true), jsontext.WithIndent("  ")); err != nil {
			return fmt.Errorf("could not marshal json: %w", err)
		}
		fmt.Fprintln(stdout)
	} else if issues > 0 {
		fmt.Fprintln(stderr, "Linter found issues:")
		for _, r := range reports {
			for _, d := range r.Diagnostics {
				renderDiagnostic(stderr, r.Path, d, a.cfg.Output.Color)
			}
		}
	}

	if len(readErrs) > 0 {
		return errors.Join(readErrs...)
	}
	if issues > 0 {
		return fmt.Errorf("linting found %d issues", issues)
	}
	return nil
}
