package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/WJQSERVER/cripple"
)

// Colors
var (
	colorKeyword = lipgloss.Color("#7C3AED")
	colorString  = lipgloss.Color("#10B981")
	colorNumber  = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
	colorWrapper = lipgloss.Color("#06B6D4")
)

// Styles
var (
	KeywordStyle = lipgloss.NewStyle().
			Foreground(colorKeyword).
			Bold(true)

	StringStyle = lipgloss.NewStyle().
			Foreground(colorString)

	NumberStyle = lipgloss.NewStyle().
			Foreground(colorNumber)

	MarkerStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	WrapperStyle = lipgloss.NewStyle().
			Foreground(colorWrapper).
			Italic(true)

	ErrorTagStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	WarningTagStyle = lipgloss.NewStyle().
			Foreground(colorNumber).
			Bold(true)
)

// colorize is the node label decorator handed to the encoder.
func colorize(tok cripple.Token, label string) string {
	switch {
	case tok.Type.IsKeyword():
		return KeywordStyle.Render(label)
	case tok.Type == cripple.STRING:
		return StringStyle.Render(label)
	case tok.Type.IsNumeric():
		return NumberStyle.Render(label)
	case tok.Type == cripple.RESULT:
		return WrapperStyle.Render(label)
	case tok.Type == cripple.IDENT:
		return label
	default:
		return MarkerStyle.Render(label)
	}
}

// renderError writes msg with the product tag, styled when color is on.
func renderError(w io.Writer, msg string, color bool) {
	if !color {
		cripple.LogError(w, msg)
		return
	}
	fmt.Fprintf(w, "%s %s\n", ErrorTagStyle.Render(cripple.ProductTag+": ERROR:"), msg)
}

func renderDiagnostic(w io.Writer, path string, d cripple.Diagnostic, color bool) {
	tag := fmt.Sprintf("[%s]", d.Level)
	if color {
		if d.IsFatal() {
			tag = ErrorTagStyle.Render(tag)
		} else {
			tag = WarningTagStyle.Render(tag)
		}
	}
	fmt.Fprintf(w, "  - %s %s:%d:%d: %s\n", tag, path, d.Line, d.Column, d.Message)
}
