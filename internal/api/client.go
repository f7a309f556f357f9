// Package api is the remote call invoker: it serializes one procedure
// call against the hosting API, enforces the caller's timeout budget,
// and turns the two-level response envelope into a result or a
// classified error. No retries; a failed attempt is final.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	hcerrors "github.com/hostops/hostctl/internal/errors"
	"github.com/hostops/hostctl/internal/resolve"
)

// DefaultTimeout bounds a call when the caller supplies no budget.
const DefaultTimeout = 30 * time.Second

// Request is an immutable description of one remote operation
// instance. Section and Method are the routable address; Input, when
// non-nil, is serialized as the structured input payload; Query pairs
// are appended to the form verbatim.
type Request struct {
	Section string
	Method  string
	Input   any
	Query   url.Values
	Timeout time.Duration
}

// Client invokes calls over HTTP.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient returns a client using the given http.Client, or a default
// one when nil. The per-call deadline comes from Request.Timeout, not
// from http.Client.Timeout, so callers keep control of the budget.
func NewClient(hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{httpClient: hc, userAgent: "hostctl"}
}

// Invoke performs one call and interprets the response. Credentials
// are embedded in the request body; the secret is opened from its
// enclave only for the duration of building the form.
func (c *Client) Invoke(ctx context.Context, creds *resolve.Credentials, req Request) (json.RawMessage, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	form := url.Values{}
	form.Set("login", creds.Login)
	if err := creds.Secret.Reveal(func(plaintext string) error {
		form.Set("passwd", plaintext)
		return nil
	}); err != nil {
		return nil, hcerrors.Wrap(err, hcerrors.KindAuth, "cannot access stored secret")
	}
	form.Set("output_format", "json")
	if req.Input != nil {
		payload, err := json.Marshal(req.Input)
		if err != nil {
			return nil, hcerrors.Wrap(err, hcerrors.KindUsage, "cannot encode input payload")
		}
		form.Set("input_format", "json")
		form.Set("input_data", string(payload))
	}
	for key, vals := range req.Query {
		for _, v := range vals {
			form.Add(key, v)
		}
	}

	callURL := strings.TrimRight(creds.Endpoint, "/") + "/" + req.Section + "/" + req.Method
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, callURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, hcerrors.Wrap(err, hcerrors.KindUsage, "invalid endpoint URL")
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return nil, hcerrors.Networkf("timeout after %dms", timeout.Milliseconds())
		}
		return nil, &hcerrors.Error{
			Kind:       hcerrors.KindNetwork,
			Message:    "request failed",
			Details:    err.Error(),
			Suggestion: "Check connectivity and the endpoint URL",
			Err:        err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused; the body of a failed
		// transaction is not interpreted.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, hcerrors.Networkf("HTTP %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return nil, hcerrors.Networkf("timeout after %dms", timeout.Milliseconds())
		}
		return nil, hcerrors.Wrap(err, hcerrors.KindNetwork, "failed to read response")
	}

	return interpret(body)
}

// Address formats the routable address for diagnostics and dry-run
// output.
func (r Request) Address() string {
	return fmt.Sprintf("%s.%s", r.Section, r.Method)
}
