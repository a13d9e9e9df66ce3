// Package eipw adapts the external eipw linting engine. The engine is
// invoked as a subprocess with a generated TOML config; it reports one
// JSON diagnostic per stdout line.
package eipw

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/ethereum/eipw-action/internal/domain"
)

// DefaultBinary is the engine binary resolved from PATH when no explicit
// path is configured.
const DefaultBinary = "eipw"

// Engine abstracts the linting engine so the gate can be tested without
// the eipw binary installed.
type Engine interface {
	Lint(ctx context.Context, paths []string, cfg domain.SeverityConfig) ([]domain.Diagnostic, error)
}

// ExecEngine runs the eipw binary.
type ExecEngine struct {
	binPath string
}

// NewExecEngine creates an engine around the given binary path. An empty
// path falls back to DefaultBinary.
func NewExecEngine(binPath string) *ExecEngine {
	if binPath == "" {
		binPath = DefaultBinary
	}
	return &ExecEngine{binPath: binPath}
}

// Lint invokes the engine against the given file paths and decodes its
// diagnostics. A nonzero exit with well-formed diagnostic output is not an
// invocation failure: the engine exits nonzero whenever it finds errors,
// and those findings drive the verdict through normal data flow. Spawn
// failures and undecodable output are fatal.
func (e *ExecEngine) Lint(ctx context.Context, paths []string, cfg domain.SeverityConfig) ([]domain.Diagnostic, error) {
	args := []string{"--format", "json"}

	if cfg.DefaultLints != nil || cfg.DefaultModifiers != nil {
		configPath, err := writeEngineConfig(cfg)
		if err != nil {
			return nil, err
		}
		defer os.Remove(configPath)
		args = append(args, "--config", configPath)
	}
	for _, lint := range cfg.Deny {
		args = append(args, "--deny", lint)
	}
	for _, lint := range cfg.Warn {
		args = append(args, "--warn", lint)
	}
	for _, lint := range cfg.Allow {
		args = append(args, "--allow", lint)
	}
	args = append(args, paths...)

	cmd := exec.CommandContext(ctx, e.binPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return nil, fmt.Errorf("failed to invoke eipw: %w", runErr)
		}
	}

	diags, decodeErr := decodeDiagnostics(&stdout)
	if decodeErr != nil {
		return nil, decodeErr
	}

	// Nonzero exit without any diagnostics means the engine could not
	// process the inputs at all.
	if runErr != nil && len(diags) == 0 {
		return nil, fmt.Errorf("eipw failed: %w (stderr: %s)", runErr, bytes.TrimSpace(stderr.Bytes()))
	}

	return diags, nil
}

// decodeDiagnostics reads one JSON diagnostic per line.
func decodeDiagnostics(r *bytes.Buffer) ([]domain.Diagnostic, error) {
	var diags []domain.Diagnostic

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var d domain.Diagnostic
		if err := json.Unmarshal(line, &d); err != nil {
			return nil, fmt.Errorf("undecodable eipw output %q: %w", string(line), err)
		}
		d.Severity = domain.ParseSeverity(d.Level)
		diags = append(diags, d)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read eipw output: %w", err)
	}

	return diags, nil
}
