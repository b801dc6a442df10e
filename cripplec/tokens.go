package main

import (
	"github.com/spf13/cobra"

	"github.com/WJQSERVER/cripple"
)

func newTokensCmd(a *app) *cobra.Command {
	var (
		jsonOutput bool
		positions  bool
	)
	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.readSource(args[0])
			if err != nil {
				return err
			}
			l := cripple.NewLexer(data, cripple.WithNumericLiterals(a.cfg.Lexer.NumericLiterals))
			tokens := l.Tokenize()
			for _, d := range l.Diagnostics() {
				a.log.Warn(d.Message, "path", args[0], "line", d.Line, "column", d.Column)
			}

			opts := []cripple.EncoderOption{cripple.WithIndent(a.cfg.Output.Indent)}
			if jsonOutput {
				opts = append(opts, cripple.WithFormat(cripple.FormatJSON))
			} else if a.cfg.Output.Color {
				opts = append(opts, cripple.WithColorizer(colorize))
			}
			if positions || a.cfg.Output.Positions {
				opts = append(opts, cripple.WithPositions())
			}
			return cripple.NewEncoder(cmd.OutOrStdout(), opts...).EncodeTokens(tokens)
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output tokens in JSON format")
	cmd.Flags().BoolVar(&positions, "positions", false, "include line and column numbers")
	return cmd
}
