// Package cli defines the eipw-gate command line. In Actions the defaults
// suffice; the flags exist so maintainers can replay a gate run locally
// against a live pull request.
package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"
)

// Options are the command-line overrides applied on top of the action
// inputs and event context.
type Options struct {
	EipwPath  string
	LogLevel  string
	LogFormat string

	// Owner, Repo, PullNumber and HeadSHA override the triggering event's
	// pull request identity for local runs.
	Owner      string
	Repo       string
	PullNumber int
	HeadSHA    string
}

// Runner executes one gate run with the resolved options.
type Runner func(ctx context.Context, opts Options) error

// Dependencies captures the collaborators for the CLI.
type Dependencies struct {
	Run       Runner
	Version   string
	OutWriter io.Writer
	ErrWriter io.Writer
}

// NewRootCommand constructs the root Cobra command.
func NewRootCommand(deps Dependencies) *cobra.Command {
	versionString := deps.Version
	if versionString == "" {
		versionString = "v0.0.0"
	}

	var opts Options
	cmd := &cobra.Command{
		Use:           "eipw-gate",
		Short:         "Gate pull requests on the eipw proposal linter",
		Long:          "eipw-gate lints the proposal documents changed by a pull request and fails the run when eipw reports errors.",
		Version:       versionString,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return deps.Run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.EipwPath, "eipw-path", "", "path to the eipw binary (default: eipw on PATH)")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&opts.LogFormat, "log-format", "", "log format (text, json; default: text on a terminal)")
	cmd.Flags().StringVar(&opts.Owner, "owner", "", "repository owner override for local runs")
	cmd.Flags().StringVar(&opts.Repo, "repo", "", "repository name override for local runs")
	cmd.Flags().IntVar(&opts.PullNumber, "pull-number", 0, "pull request number override for local runs")
	cmd.Flags().StringVar(&opts.HeadSHA, "head-sha", "", "head commit SHA override for local runs")

	if deps.OutWriter != nil {
		cmd.SetOut(deps.OutWriter)
	}
	if deps.ErrWriter != nil {
		cmd.SetErr(deps.ErrWriter)
	}

	return cmd
}
