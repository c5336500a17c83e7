// Package ui styles terminal output with termenv and renders deadline badges.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
)

type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

const LinkColor = "#87CEEB"

// ANSI palette indexes.
const (
	colorRed    = "1"
	colorGreen  = "2"
	colorYellow = "3"
	colorBlue   = "4"
	colorGray   = "8"
)

type UI struct {
	Out          io.Writer
	Err          io.Writer
	Output       *termenv.Output
	ErrOutput    *termenv.Output
	ColorEnabled bool
}

func New(out io.Writer, err io.Writer, mode ColorMode, disableColor bool) *UI {
	output := termenv.NewOutput(out)
	errOutput := termenv.NewOutput(err)

	colorEnabled := shouldEnableColor(output, mode, disableColor)
	return &UI{
		Out:          out,
		Err:          err,
		Output:       output,
		ErrOutput:    errOutput,
		ColorEnabled: colorEnabled,
	}
}

func shouldEnableColor(output *termenv.Output, mode ColorMode, disableColor bool) bool {
	if disableColor {
		return false
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return output.ColorProfile() != termenv.Ascii
	}
}

func (u *UI) Errorf(format string, args ...any) {
	fmt.Fprintln(u.Err, u.paint(u.ErrOutput, message(format, args), colorRed, false))
}

func (u *UI) Warnf(format string, args ...any) {
	fmt.Fprintln(u.Err, u.paint(u.ErrOutput, message(format, args), colorYellow, false))
}

func (u *UI) Infof(format string, args ...any) {
	fmt.Fprintln(u.Out, u.paint(u.Output, message(format, args), colorBlue, false))
}

func (u *UI) Successf(format string, args ...any) {
	fmt.Fprintln(u.Out, u.paint(u.Output, message(format, args), colorGreen, false))
}

// Dim renders secondary text such as company names and hints.
func (u *UI) Dim(text string) string {
	return u.paint(u.Output, text, colorGray, false)
}

func (u *UI) Bold(text string) string {
	if !u.ColorEnabled || u.Output == nil {
		return text
	}
	return u.Output.String(text).Bold().String()
}

func (u *UI) paint(output *termenv.Output, text, color string, bold bool) string {
	if !u.ColorEnabled || output == nil {
		return text
	}
	style := output.String(text).Foreground(output.Color(color))
	if bold {
		style = style.Bold()
	}
	return style.String()
}

func message(format string, args []any) string {
	return strings.TrimRight(fmt.Sprintf(format, args...), "\n")
}

func ColorizeLink(output *termenv.Output, enabled bool, text string) string {
	if !enabled || output == nil {
		return text
	}
	return output.String(text).Foreground(output.Color(LinkColor)).String()
}

func (u *UI) LinkText(text string) string {
	return ColorizeLink(u.Output, u.ColorEnabled, text)
}

func NormalizeColorMode(value string) ColorMode {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case string(ColorAlways):
		return ColorAlways
	case string(ColorNever):
		return ColorNever
	default:
		return ColorAuto
	}
}
