package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prompter reads configuration values interactively from stdio.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter constructs a prompter referencing stdio.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Ask prints a labelled prompt and returns the trimmed line. An empty line
// keeps the current value.
func (p *Prompter) Ask(label, current string) (string, error) {
	if current != "" {
		fmt.Fprintf(p.out, "%s [current: %s]: ", label, maskValue(current))
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return current, nil
	}
	return line, nil
}

func maskValue(value string) string {
	if len(value) <= 4 {
		return "****"
	}
	return "****" + value[len(value)-4:]
}
