// Package secrets obtains secret values that are not part of the
// stored credentials: account passwords during profile add, and the
// per-feature passwords (database, FTP, mailbox) some operations carry.
// Sources are checked in order: environment, OS keyring, masked prompt.
// In non-interactive contexts the prompt tier fails closed.
package secrets

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/zalando/go-keyring"
	"golang.org/x/term"

	hcerrors "github.com/hostops/hostctl/internal/errors"
	"github.com/hostops/hostctl/internal/logging"
)

// KeyringService is the service name hostctl registers secrets under
// in the OS keyring (Secret Service, Keychain, Credential Manager).
const KeyringService = "hostctl"

// ExitInterrupted is the exit status used when SIGINT arrives during a
// masked read. The process terminates immediately rather than resuming
// the pipeline with a partial value.
const ExitInterrupted = 130

// Options describes one acquisition.
type Options struct {
	// EnvVars are checked in order; the first non-empty value wins.
	EnvVars []string
	// KeyringKey, when non-empty, is looked up in the OS keyring after
	// the environment. Keyring misses fall through silently.
	KeyringKey string
	// Prompt is shown before the masked read.
	Prompt string
	// AllowInteractive is false when --non-interactive was given.
	AllowInteractive bool
}

// Acquirer resolves secrets. The function fields exist so tests can
// script every tier; New wires the real implementations.
type Acquirer struct {
	logger *logging.Logger

	getenv     func(string) string
	keyringGet func(service, account string) (string, error)
	isTerminal func() bool
	readMasked func(prompt string) (string, error)
}

// New creates an Acquirer backed by the process environment, the OS
// keyring and the controlling terminal.
func New(logger *logging.Logger) *Acquirer {
	return &Acquirer{
		logger:     logger,
		getenv:     os.Getenv,
		keyringGet: keyring.Get,
		isTerminal: StdioIsTerminal,
		readMasked: readMaskedFromTerminal,
	}
}

// Acquire returns the secret per the tier order, or a UsageError when
// no tier can supply one.
func (a *Acquirer) Acquire(opts Options) (string, error) {
	for _, name := range opts.EnvVars {
		if v := a.getenv(name); v != "" {
			a.logger.Debug("secret taken from environment variable %s", name)
			return v, nil
		}
	}

	if opts.KeyringKey != "" {
		v, err := a.keyringGet(KeyringService, opts.KeyringKey)
		if err == nil && v != "" {
			a.logger.Debug("secret taken from OS keyring (%s)", opts.KeyringKey)
			return v, nil
		}
		if err != nil && err != keyring.ErrNotFound {
			// Headless hosts routinely have no keyring daemon; that is
			// a fall-through, not a failure.
			a.logger.Debug("keyring lookup failed: %v", err)
		}
	}

	if !opts.AllowInteractive || !a.isTerminal() {
		return "", &hcerrors.Error{
			Kind:       hcerrors.KindUsage,
			Message:    "secret required but no interactive terminal is available",
			Details:    "checked environment variables: " + strings.Join(opts.EnvVars, ", "),
			Suggestion: "Set one of the variables above, or run without --non-interactive on a terminal",
		}
	}

	v, err := a.readMasked(opts.Prompt)
	if err != nil {
		return "", hcerrors.Wrap(err, hcerrors.KindUsage, "failed to read secret from terminal")
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", hcerrors.Usagef("empty secret")
	}
	return v, nil
}

// StdioIsTerminal reports whether both stdin and stderr are attached to
// a terminal. Prompts go to stderr so stdout stays clean for results.
func StdioIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
}

// readMaskedFromTerminal reads a secret without echo. An interrupt
// during the read restores the terminal state and terminates the
// process with ExitInterrupted; the blocked read never returns a
// partial value to the pipeline.
func readMaskedFromTerminal(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	state, err := term.GetState(fd)
	if err != nil {
		return "", err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)
	go func() {
		if _, ok := <-sigCh; ok {
			_ = term.Restore(fd, state)
			fmt.Fprintln(os.Stderr)
			os.Exit(ExitInterrupted)
		}
	}()

	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
