package errors

import (
	"strings"
)

const (
	ansiReset = "\033[0m"
	ansiRed   = "\033[31m"
	ansiCyan  = "\033[36m"
	ansiBold  = "\033[1m"
)

// Pretty renders e for a terminal: a header line with the code and message,
// the detail wrapped at 70 columns, the suggestion and the wrapped cause.
// With color set the header and hint carry ANSI escapes.
func (e *Error) Pretty(color bool) string {
	paint := func(code, text string) string {
		if !color {
			return text
		}
		return code + text + ansiReset
	}

	var b strings.Builder
	header := "error"
	if e.Code != "" {
		header += " " + e.Code
	}
	b.WriteString(paint(ansiRed+ansiBold, header+":"))
	b.WriteString(" ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Detail != "" {
		b.WriteString("\n")
		for _, line := range wrapText(e.Detail, 70) {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	if e.Suggestion != "" {
		b.WriteString("\n  ")
		b.WriteString(paint(ansiCyan, "hint:"))
		b.WriteString(" ")
		b.WriteString(e.Suggestion)
		b.WriteString("\n")
	}
	if e.Wrapped != nil {
		b.WriteString("  cause: ")
		b.WriteString(e.Wrapped.Error())
		b.WriteString("\n")
	}
	return b.String()
}

// wrapText splits text into lines no wider than width where possible.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}
