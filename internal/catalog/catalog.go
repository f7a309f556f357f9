// Package catalog holds the closed, data-driven table of remote
// operations. Every logical command maps to exactly one record here;
// the execution pipeline reads the behavior flags and treats the
// (section, method) pair as an opaque routable address.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var rawCatalog []byte

// Operation describes one remote operation's address and behavior.
type Operation struct {
	Section   string `yaml:"section"`
	Method    string `yaml:"method"`
	Mutates   bool   `yaml:"mutates"`
	Risky     bool   `yaml:"risky"`
	RiskLabel string `yaml:"riskLabel"`
	// SecretEnv names the environment variable secret acquisition
	// checks first for operations that carry their own password
	// (database, FTP, mailbox), before falling back to the keyring
	// and an interactive prompt.
	SecretEnv string `yaml:"secretEnv"`
}

// Address returns the section.method form used in lookups and output.
func (o Operation) Address() string {
	return o.Section + "." + o.Method
}

type document struct {
	Operations []Operation `yaml:"operations"`
}

var byAddress map[string]Operation

func init() {
	var doc document
	if err := yaml.Unmarshal(rawCatalog, &doc); err != nil {
		// The catalog is a build artifact; a parse failure is a broken
		// binary, not a runtime condition.
		panic(fmt.Sprintf("catalog: embedded table is invalid: %v", err))
	}
	byAddress = make(map[string]Operation, len(doc.Operations))
	for _, op := range doc.Operations {
		if op.Section == "" || op.Method == "" {
			panic(fmt.Sprintf("catalog: entry %+v missing section or method", op))
		}
		if _, dup := byAddress[op.Address()]; dup {
			panic(fmt.Sprintf("catalog: duplicate entry %s", op.Address()))
		}
		byAddress[op.Address()] = op
	}
}

// Get returns the operation for a section.method address.
func Get(section, method string) (Operation, bool) {
	op, ok := byAddress[section+"."+method]
	return op, ok
}

// MustGet is Get for addresses the command table hardcodes; an unknown
// address is a programming error.
func MustGet(section, method string) Operation {
	op, ok := Get(section, method)
	if !ok {
		panic(fmt.Sprintf("catalog: unknown operation %s.%s", section, method))
	}
	return op
}

// All returns every operation in the table.
func All() []Operation {
	ops := make([]Operation, 0, len(byAddress))
	for _, op := range byAddress {
		ops = append(ops, op)
	}
	return ops
}
