package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/tentacle-scylla/sqlcontext/pkg/types"
)

func getInput(c *cli.Context) (string, error) {
	// Check for file flag
	if file := c.String("file"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading file: %w", err)
		}
		return string(data), nil
	}

	// Check for positional argument
	if c.NArg() > 0 {
		return strings.Join(c.Args().Slice(), " "), nil
	}

	// Check for stdin
	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	// Interactive mode - read until empty line or EOF
	fmt.Fprintln(os.Stderr, "Enter SQL (empty line or Ctrl+D to finish):")
	var lines []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			break
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}

	return strings.Join(lines, "\n"), nil
}

// cursorSpec is the cursor as given on the command line.
type cursorSpec struct {
	Offset    int
	HasOffset bool
	Line      int
	Col       int
	UTF16     bool
}

func cursorFromFlags(c *cli.Context, input string) int {
	return cursorSpec{
		Offset:    c.Int("offset"),
		HasOffset: c.IsSet("offset"),
		Line:      c.Int("line"),
		Col:       c.Int("col"),
		UTF16:     c.Bool("utf16"),
	}.resolve(input)
}

// resolve converts the cursor to a byte offset in input. Without a line or
// offset the cursor is at the end of input.
func (s cursorSpec) resolve(input string) int {
	switch {
	case s.Line > 0:
		if !s.UTF16 {
			return types.OffsetOf(input, types.Position{Line: s.Line, Column: s.Col})
		}
		start := types.OffsetOf(input, types.Position{Line: s.Line})
		line := input[start:]
		if nl := strings.IndexByte(line, '\n'); nl >= 0 {
			line = line[:nl]
		}
		return start + types.ByteOffsetFromUTF16(line, s.Col)

	case s.HasOffset:
		if s.UTF16 {
			return types.ByteOffsetFromUTF16(input, s.Offset)
		}
		if s.Offset < 0 {
			return 0
		}
		if s.Offset > len(input) {
			return len(input)
		}
		return s.Offset
	}
	return len(input)
}
