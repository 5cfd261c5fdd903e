// Package prompt collects credentials interactively. The password is read
// with terminal echo disabled and held only in memory.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// ErrNotATerminal is returned when credentials are needed but stdin is not
// interactive. Failing fast beats a cron job hanging on a hidden prompt.
var ErrNotATerminal = errors.New("prompt: stdin is not a terminal; run 'ghost-backup login' interactively first")

// Credentials returns a prompt function reading the username and password
// from in (normally os.Stdin), writing prompts to out (normally os.Stderr,
// so they never mix with piped output). The returned function's signature
// matches ghost.CredentialPrompt.
func Credentials(in *os.File, out io.Writer) func(defaultUsername string) (string, string, error) {
	return func(defaultUsername string) (string, string, error) {
		if !isatty.IsTerminal(in.Fd()) && !isatty.IsCygwinTerminal(in.Fd()) {
			return "", "", ErrNotATerminal
		}

		username, err := readUsername(in, out, defaultUsername)
		if err != nil {
			return "", "", err
		}

		fmt.Fprint(out, "Password: ")

		password, err := term.ReadPassword(int(in.Fd()))

		// The suppressed echo ate the user's newline.
		fmt.Fprintln(out)

		if err != nil {
			return "", "", fmt.Errorf("prompt: reading password: %w", err)
		}

		if len(password) == 0 {
			return "", "", errors.New("prompt: password is required")
		}

		return username, string(password), nil
	}
}

// readUsername prompts for the username, offering defaultUsername (the last
// one that logged in successfully) when present.
func readUsername(in io.Reader, out io.Writer, defaultUsername string) (string, error) {
	if defaultUsername != "" {
		fmt.Fprintf(out, "Username [%s]: ", defaultUsername)
	} else {
		fmt.Fprint(out, "Username: ")
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("prompt: reading username: %w", err)
	}

	username := strings.TrimSpace(line)
	if username == "" {
		username = defaultUsername
	}

	if username == "" {
		return "", errors.New("prompt: username is required")
	}

	return username, nil
}
