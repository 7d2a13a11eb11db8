package commands

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"BwClient/internal/secret"
)

// readPassword prompts on the terminal without echo. Tests replace it.
var readPassword = func(prompt string) (secret.Value, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return secret.Value{}, fmt.Errorf("no terminal to prompt for the master password; set BW_PASSWORD")
	}
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return secret.Value{}, err
	}
	return secret.New(string(b)), nil
}
