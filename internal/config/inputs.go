// Package config parses the action's inputs and the optional eipw options
// file into the gate's runtime configuration.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/eipw-action/internal/domain"
)

// DefaultIncludePattern matches the conventional proposals subdirectory.
const DefaultIncludePattern = "EIPS/**"

// ErrMissingToken indicates the required token input was not supplied.
var ErrMissingToken = errors.New("the \"token\" input is required")

// InputSource provides named action inputs. The Actions runtime adapter
// implements it; tests supply maps.
type InputSource interface {
	Input(name string) string
}

// Inputs holds the recognized action inputs after parsing.
type Inputs struct {
	Token            string
	WorkingDirectory string

	// Include is the ordered glob pattern list a changed file must match
	// to be in scope.
	Include []string

	// Unchecked is the set of proposal numbers excluded from linting,
	// normalized from numbers or legacy filenames.
	Unchecked map[uint64]struct{}

	DenyChecks  []string
	WarnChecks  []string
	AllowChecks []string

	OptionsFile string
}

// ParseInputs reads and validates the action inputs.
func ParseInputs(src InputSource) (Inputs, error) {
	token := src.Input("token")
	if token == "" {
		return Inputs{}, ErrMissingToken
	}

	include := splitLines(src.Input("include"))
	if len(include) == 0 {
		include = []string{DefaultIncludePattern}
	}

	unchecked, err := parseUnchecked(src.Input("unchecked"))
	if err != nil {
		return Inputs{}, err
	}

	return Inputs{
		Token:            token,
		WorkingDirectory: src.Input("working-directory"),
		Include:          include,
		Unchecked:        unchecked,
		DenyChecks:       splitList(src.Input("deny-checks")),
		WarnChecks:       splitList(src.Input("warn-checks")),
		AllowChecks:      splitList(src.Input("allow-checks")),
		OptionsFile:      src.Input("options-file"),
	}, nil
}

// parseUnchecked normalizes exclusion entries to proposal numbers. Entries
// may be bare numbers or legacy filenames ("eip-20", "eip-20.md"); both
// resolve through the same extraction rules applied to changed files.
func parseUnchecked(raw string) (map[uint64]struct{}, error) {
	entries := splitList(raw)
	if len(entries) == 0 {
		return map[uint64]struct{}{}, nil
	}

	set := make(map[uint64]struct{}, len(entries))
	for _, entry := range entries {
		n, err := domain.ProposalNumber(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid \"unchecked\" entry: %w", err)
		}
		set[n] = struct{}{}
	}
	return set, nil
}

// splitList splits a comma-separated list, trimming entries and dropping
// empties.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// splitLines splits a newline-separated list, trimming entries and
// dropping empties.
func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
