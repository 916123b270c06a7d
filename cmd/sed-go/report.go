package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/multierr"

	sed "github.com/rwtodd/tealsed"
)

const tabWidth = 8

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	lineStyle    = color.New(color.FgBlue, color.Bold)
	messageStyle = color.New(color.FgRed, color.Bold)
)

// reportLoadErrors writes every failure of a script load, each pointing at
// the offending command.
func reportLoadErrors(w io.Writer, err error) {
	for _, e := range multierr.Errors(err) {
		fmt.Fprint(w, formatLoadError(e))
	}
}

func reportError(w io.Writer, err error) {
	fmt.Fprint(w, errorStyle.Sprint("error: ")+err.Error()+"\n")
}

func formatLoadError(err error) string {
	var (
		synErr  *sed.ScriptSyntaxError
		compErr *sed.PatternCompileError
	)
	switch {
	case errors.As(err, &synErr):
		var detail string
		var reErr *sed.RegexSyntaxError
		if errors.As(err, &reErr) {
			detail = reErr.Msg
		}
		return formatAtOffset(synErr.Msg, synErr.Script, synErr.Offset, detail)
	case errors.As(err, &compErr):
		var b strings.Builder
		b.WriteString(errorStyle.Sprint("error: ") + "cannot compile pattern " + compErr.Pattern + "\n")
		b.WriteString(lineStyle.Sprint("  | ") + expandTabs(compErr.Script) + "\n")
		b.WriteString(lineStyle.Sprint("  | ") + messageStyle.Sprint(compErr.Err.Error()) + "\n\n")
		return b.String()
	}
	return errorStyle.Sprint("error: ") + err.Error() + "\n"
}

// formatAtOffset shows script with a caret under the byte at offset.
func formatAtOffset(msg, script string, offset int, detail string) string {
	var b strings.Builder
	b.WriteString(errorStyle.Sprint("error: ") + msg + "\n")
	b.WriteString(lineStyle.Sprint("  |") + "\n")
	b.WriteString(lineStyle.Sprint("  | ") + expandTabs(script) + "\n")
	b.WriteString(lineStyle.Sprint("  | "))
	b.WriteString(strings.Repeat(" ", visualColumn(script, offset)))
	b.WriteString(messageStyle.Sprint("^"))
	if detail != "" {
		b.WriteString(" " + messageStyle.Sprint(detail))
	}
	b.WriteString("\n\n")
	return b.String()
}

func expandTabs(line string) string {
	var b strings.Builder
	col := 0
	for _, r := range line {
		if r == '\t' {
			spaces := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", spaces))
			col += spaces
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}

// visualColumn is the 0-based screen column of byte offset in line, once
// tabs are expanded.
func visualColumn(line string, offset int) int {
	if offset > len(line) {
		offset = len(line)
	}
	col := 0
	for _, r := range line[:offset] {
		if r == '\t' {
			col += tabWidth - col%tabWidth
		} else {
			col++
		}
	}
	return col
}
