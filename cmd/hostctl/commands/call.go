package commands

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hostops/hostctl/internal/catalog"
	"github.com/hostops/hostctl/internal/config"
	hcerrors "github.com/hostops/hostctl/internal/errors"
)

// NewCallCommand creates the raw call command. It exposes the whole
// operation catalog directly, for methods that have no dedicated
// subcommand yet. The catalog stays closed: unknown addresses are
// rejected rather than forwarded blind, so risk classification can
// never be sidestepped.
func NewCallCommand(cfg *config.Config) *cobra.Command {
	var (
		inputJSON  string
		queryPairs []string
		list       bool
	)

	cmd := &cobra.Command{
		Use:   "call <section> <method>",
		Short: "Invoke a catalog operation directly",
		Long: `Invoke any operation from the built-in catalog by its address.

Mutating and destructive operations keep their --dry-run and
confirmation behavior; 'call' is routing sugar, not a bypass.

Examples:
  hostctl call domain getList
  hostctl call site add --input '{"name":"blog"}'
  hostctl call db dropDb --input '{"name":"blog"}' --yes
  hostctl call --list`,
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				return listOperations(cfg)
			}
			if len(args) != 2 {
				return hcerrors.Usagef("expected <section> <method> (or --list)")
			}

			op, ok := catalog.Get(args[0], args[1])
			if !ok {
				return hcerrors.Usagef("unknown operation %s.%s (see 'hostctl call --list')", args[0], args[1])
			}

			var input map[string]any
			if inputJSON != "" {
				if err := json.Unmarshal([]byte(inputJSON), &input); err != nil {
					return hcerrors.Wrap(err, hcerrors.KindUsage, "--input is not valid JSON")
				}
			}

			query := url.Values{}
			for _, pair := range queryPairs {
				key, value, found := strings.Cut(pair, "=")
				if !found || key == "" {
					return hcerrors.Usagef("--query needs key=value form, got %q", pair)
				}
				query.Add(key, value)
			}
			if len(query) == 0 {
				query = nil
			}

			return runOperation(cmd, cfg, op, input, query, nil)
		},
	}

	cmd.Flags().StringVar(&inputJSON, "input", "", "JSON input payload")
	cmd.Flags().StringArrayVar(&queryPairs, "query", nil, "query parameter key=value (repeatable)")
	cmd.Flags().BoolVar(&list, "list", false, "list all catalog operations")
	return cmd
}

func listOperations(cfg *config.Config) error {
	ops := catalog.All()
	sort.Slice(ops, func(i, j int) bool { return ops[i].Address() < ops[j].Address() })

	if cfg.JSON {
		enc := json.NewEncoder(cfg.Stdout())
		enc.SetIndent("", "  ")
		type entry struct {
			Address string `json:"address"`
			Mutates bool   `json:"mutates"`
			Risky   bool   `json:"risky"`
		}
		entries := make([]entry, 0, len(ops))
		for _, op := range ops {
			entries = append(entries, entry{Address: op.Address(), Mutates: op.Mutates, Risky: op.Risky})
		}
		return enc.Encode(entries)
	}

	for _, op := range ops {
		flags := ""
		switch {
		case op.Risky:
			flags = " (mutates, risky)"
		case op.Mutates:
			flags = " (mutates)"
		}
		fmt.Fprintf(cfg.Stdout(), "%s%s\n", op.Address(), flags)
	}
	return nil
}
