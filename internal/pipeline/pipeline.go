// Package pipeline orchestrates one command execution: dry-run
// short-circuit, risk confirmation, credential resolution, remote
// invocation and result emission. Every remote command in hostctl runs
// through this one state machine; the catalog record is the only thing
// that varies its behavior.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/hostops/hostctl/internal/api"
	"github.com/hostops/hostctl/internal/catalog"
	"github.com/hostops/hostctl/internal/config"
	"github.com/hostops/hostctl/internal/confirm"
	"github.com/hostops/hostctl/internal/logging"
	"github.com/hostops/hostctl/internal/resolve"
	"github.com/hostops/hostctl/internal/secrets"
)

// Invoker performs the remote call. api.Client is the real
// implementation; tests substitute recorders.
type Invoker interface {
	Invoke(ctx context.Context, creds *resolve.Credentials, req api.Request) (json.RawMessage, error)
}

// Acquirer obtains per-operation secrets. *secrets.Acquirer is the
// real implementation.
type Acquirer interface {
	Acquire(opts secrets.Options) (string, error)
}

// Options are the per-invocation behavior switches, populated from
// global flags.
type Options struct {
	DryRun         bool
	AssumeYes      bool
	NonInteractive bool
	JSON           bool
	Timeout        time.Duration
}

// SecretInput asks the pipeline to acquire a per-operation secret and
// inject it into the input payload under Field. Acquisition happens
// after the risk gate and never in dry-run mode, so simulated output
// contains no secret and never triggers a prompt.
type SecretInput struct {
	Field      string
	Prompt     string
	KeyringKey string
}

// Runner executes operations. One Runner serves one process
// invocation; the store is loaded fresh by the caller.
type Runner struct {
	Store     *config.Store
	Inputs    resolve.Inputs
	Invoker   Invoker
	Confirmer confirm.Confirmer
	Acquirer  Acquirer
	Logger    *logging.Logger
	Stdout    io.Writer
	Opts      Options

	// IsTerminal reports whether the process can prompt. A detached
	// stdin makes the run non-interactive even without the flag. Nil
	// means assume a terminal.
	IsTerminal func() bool
}

// simulatedCall is the dry-run output contract: the address and
// payload of the call that would have been made, tagged as simulated.
type simulatedCall struct {
	Simulated bool           `json:"simulated"`
	Section   string         `json:"section"`
	Method    string         `json:"method"`
	Input     map[string]any `json:"input,omitempty"`
	Query     url.Values     `json:"query,omitempty"`
}

// Run executes one operation to a terminal state. A nil return means
// the result (real or simulated) was emitted on stdout; a non-nil
// return is a taxonomy error the caller renders once and maps to an
// exit code. No state is retried.
func (r *Runner) Run(ctx context.Context, op catalog.Operation, input map[string]any, query url.Values, sec *SecretInput) error {
	if op.Mutates && r.Opts.DryRun {
		return r.emitSimulated(op, input, query)
	}

	if op.Risky {
		interactive := !r.Opts.NonInteractive && r.terminal()
		if err := confirm.Gate(r.Opts.AssumeYes, interactive, op.RiskLabel, r.Confirmer); err != nil {
			return err
		}
	}

	creds, err := resolve.Resolve(r.Inputs, r.Store)
	if err != nil {
		return err
	}
	if creds.ProfileName != "" {
		r.Logger.Debug("using profile %s", creds.ProfileName)
	}

	if sec != nil {
		var envVars []string
		if op.SecretEnv != "" {
			envVars = []string{op.SecretEnv}
		}
		value, err := r.Acquirer.Acquire(secrets.Options{
			EnvVars:          envVars,
			KeyringKey:       sec.KeyringKey,
			Prompt:           sec.Prompt,
			AllowInteractive: !r.Opts.NonInteractive,
		})
		if err != nil {
			return err
		}
		if input == nil {
			input = map[string]any{}
		}
		input[sec.Field] = value
	}

	var payload any
	if len(input) > 0 {
		payload = input
	}
	result, err := r.Invoker.Invoke(ctx, creds, api.Request{
		Section: op.Section,
		Method:  op.Method,
		Input:   payload,
		Query:   query,
		Timeout: r.Opts.Timeout,
	})
	if err != nil {
		return err
	}

	return r.emitResult(result)
}

func (r *Runner) terminal() bool {
	if r.IsTerminal == nil {
		return true
	}
	return r.IsTerminal()
}

func (r *Runner) emitSimulated(op catalog.Operation, input map[string]any, query url.Values) error {
	call := simulatedCall{
		Simulated: true,
		Section:   op.Section,
		Method:    op.Method,
		Input:     input,
		Query:     query,
	}
	if r.Opts.JSON {
		enc := json.NewEncoder(r.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(call)
	}
	fmt.Fprintf(r.Stdout, "dry-run: would call %s.%s\n", op.Section, op.Method)
	if len(input) > 0 {
		data, err := json.MarshalIndent(input, "  ", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintf(r.Stdout, "  input: %s\n", data)
	}
	if len(query) > 0 {
		fmt.Fprintf(r.Stdout, "  query: %s\n", query.Encode())
	}
	return nil
}

// emitResult writes the provider's result to stdout: raw in machine
// mode, indented otherwise. Results that are not valid JSON cannot
// occur here (interpretation already succeeded).
func (r *Runner) emitResult(result json.RawMessage) error {
	if len(result) == 0 {
		result = json.RawMessage("null")
	}
	if r.Opts.JSON {
		fmt.Fprintf(r.Stdout, "%s\n", result)
		return nil
	}
	var pretty any
	if err := json.Unmarshal(result, &pretty); err != nil {
		fmt.Fprintf(r.Stdout, "%s\n", result)
		return nil
	}
	data, err := json.MarshalIndent(pretty, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintf(r.Stdout, "%s\n", data)
	return nil
}
