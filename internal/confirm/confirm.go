// Package confirm implements the confirmation gate for destructive
// operations. The prompt is a capability interface so the pipeline can
// be tested without a terminal.
package confirm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	hcerrors "github.com/hostops/hostctl/internal/errors"
)

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(label string) error
}

// Terminal prompts on Out and reads one line from In. Accepts y/yes,
// case-insensitive; anything else, including an empty line or EOF,
// cancels.
type Terminal struct {
	In  io.Reader
	Out io.Writer
}

// NewTerminal returns a Confirmer on the process's stdin/stderr.
// Prompts go to stderr so stdout carries only results.
func NewTerminal() *Terminal {
	return &Terminal{In: os.Stdin, Out: os.Stderr}
}

func (t *Terminal) Confirm(label string) error {
	fmt.Fprintf(t.Out, "%s. Continue? [y/N]: ", label)

	line, err := bufio.NewReader(t.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return hcerrors.Wrap(err, hcerrors.KindUsage, "failed to read confirmation")
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return nil
	}
	return hcerrors.Usagef("cancelled by user")
}

// Scripted is the test stub: a fixed answer, with a record of the
// labels it was asked about.
type Scripted struct {
	Answer bool
	Asked  []string
}

func (s *Scripted) Confirm(label string) error {
	s.Asked = append(s.Asked, label)
	if s.Answer {
		return nil
	}
	return hcerrors.Usagef("cancelled by user")
}

// Gate applies the confirmation policy for one risky operation.
// A requested bypass succeeds without prompting; a non-interactive
// context without a bypass fails closed; otherwise the Confirmer
// decides.
func Gate(bypass, allowInteractive bool, label string, c Confirmer) error {
	if bypass {
		return nil
	}
	if !allowInteractive {
		return &hcerrors.Error{
			Kind:       hcerrors.KindUsage,
			Message:    "operation is destructive and requires confirmation",
			Details:    label,
			Suggestion: "Pass --yes to confirm in non-interactive mode",
		}
	}
	return c.Confirm(label)
}
