package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// terminalPassword reads a line from the controlling terminal without echo.
func terminalPassword() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

// GetSimpleText prints a prompt to w and reads a single trimmed line.
// If EOF arrives after some input, the partial line is returned.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prompts on w and reads the password with read.
func GetPassword(w io.Writer, read func() ([]byte, error)) (string, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return "", err
	}
	pw, err := read()
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
