// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package console prints localized status lines. Lines that start with a
// bracketed tag such as "[OK]" or "[ERROR]" get the tag colored.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var tagColors = map[string]*color.Color{
	"[OK]":    color.New(color.FgGreen),
	"[SKIP]":  color.New(color.FgYellow),
	"[INFO]":  color.New(color.FgBlue),
	"[WARN]":  color.New(color.Bold, color.FgYellow),
	"[ERROR]": color.New(color.FgRed),
}

// Console writes one line per call to w.
type Console struct {
	w     io.Writer
	color bool
}

// New returns a Console writing to w. Colors are used only when colored is
// true and fatih/color has not detected a non-terminal output.
func New(w io.Writer, colored bool) *Console {
	return &Console{w: w, color: colored && !color.NoColor}
}

// Printf formats a message and writes it followed by a newline.
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintln(c.w, c.paint(fmt.Sprintf(format, args...)))
}

// Println writes a message as is, with no formatting, followed by a newline.
// With no arguments it writes a blank line.
func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.w, c.paint(fmt.Sprint(a...)))
}

func (c *Console) paint(line string) string {
	if !c.color || !strings.HasPrefix(line, "[") {
		return line
	}
	end := strings.IndexByte(line, ']')
	if end < 0 {
		return line
	}
	tag := line[:end+1]
	col, ok := tagColors[tag]
	if !ok {
		return line
	}
	col.EnableColor()
	return col.Sprint(tag) + line[end+1:]
}
