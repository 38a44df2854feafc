package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// promptLine prints a label to errOut and reads one trimmed line.
func promptLine(in *bufio.Reader, errOut io.Writer, label string) (string, error) {
	fmt.Fprintf(errOut, "%s: ", label)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echo when the input is a
// terminal. Piped input (scripts, tests) falls back to a plain line
// read.
func promptPassword(in *bufio.Reader, raw io.Reader, errOut io.Writer, label string) (string, error) {
	fmt.Fprintf(errOut, "%s: ", label)
	if f, ok := raw.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		data, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(errOut)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptConfirm asks a yes/no question and returns true only for an
// explicit yes.
func promptConfirm(in *bufio.Reader, errOut io.Writer, prompt string) bool {
	fmt.Fprintf(errOut, "%s [y/N]: ", prompt)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
