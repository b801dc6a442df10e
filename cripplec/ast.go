package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/WJQSERVER/cripple"
)

func newASTCmd(a *app) *cobra.Command {
	var (
		format    string
		positions bool
	)
	cmd := &cobra.Command{
		Use:   "ast <file>",
		Short: "Print the parsed tree of a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			forest, err := a.parseFile(cmd, args[0])
			if err != nil {
				return err
			}
			if format == "" {
				format = a.cfg.Output.Format
			}
			return a.printForest(cmd.OutOrStdout(), forest, format, positions)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format (tree, sexpr, json, yaml)")
	cmd.Flags().BoolVar(&positions, "positions", false, "include line and column numbers in json/yaml")
	return cmd
}

func (a *app) printForest(w io.Writer, forest []*cripple.Node, format string, positions bool) error {
	f, err := cripple.ParseFormat(format)
	if err != nil {
		return err
	}
	opts := []cripple.EncoderOption{
		cripple.WithFormat(f),
		cripple.WithIndent(a.cfg.Output.Indent),
	}
	if a.cfg.Output.Color && (f == cripple.FormatTree || f == cripple.FormatSExpr) {
		opts = append(opts, cripple.WithColorizer(colorize))
	}
	if positions || a.cfg.Output.Positions {
		opts = append(opts, cripple.WithPositions())
	}
	return cripple.NewEncoder(w, opts...).Encode(forest)
}
