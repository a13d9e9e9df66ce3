package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/eipw-action/internal/adapter/actions"
	"github.com/ethereum/eipw-action/internal/adapter/cli"
	"github.com/ethereum/eipw-action/internal/adapter/eipw"
	githubadapter "github.com/ethereum/eipw-action/internal/adapter/github"
	"github.com/ethereum/eipw-action/internal/config"
	"github.com/ethereum/eipw-action/internal/domain"
	"github.com/ethereum/eipw-action/internal/logger"
	"github.com/ethereum/eipw-action/internal/usecase/gate"
	"github.com/ethereum/eipw-action/internal/version"
)

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, gate.ErrLintFailed) {
			log.Println(err)
		}
		os.Exit(1)
	}
}

func run() error {
	// Cancellable context with signal handling for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	root := cli.NewRootCommand(cli.Dependencies{
		Run:       executeGate,
		Version:   version.Version(),
		OutWriter: os.Stdout,
		ErrWriter: os.Stderr,
	})
	return root.ExecuteContext(ctx)
}

func executeGate(ctx context.Context, opts cli.Options) error {
	logg := logger.New(opts.LogLevel, opts.LogFormat)
	runtime := actions.New()

	inputs, err := config.ParseInputs(runtime)
	if err != nil {
		logg.Error("invalid action inputs", err)
		return err
	}

	rc, err := runtime.RunContext()
	if err != nil {
		logg.Error("unreadable event context", err)
		return err
	}

	run := gate.Run{
		EventName:     rc.EventName,
		IsPullRequest: rc.IsPullRequest(),
		Owner:         rc.Owner,
		Repo:          rc.Repo,
		PullNumber:    rc.PullNumber,
		HeadSHA:       rc.HeadSHA,
		RunURL:        rc.RunURL,
	}
	applyOverrides(&run, opts)

	client := githubadapter.NewClient(inputs.Token, logg)
	controller := gate.NewController(gate.Dependencies{
		Lister:    client,
		Commenter: client,
		Engine:    eipw.NewExecEngine(opts.EipwPath),
		Reporter:  gate.NewReporter(runtime, eipw.Render),
		Annotator: runtime,
		Selector: gate.Selector{
			Include:          inputs.Include,
			Unchecked:        inputs.Unchecked,
			WorkingDirectory: inputs.WorkingDirectory,
		},
		Resolve: func() (domain.SeverityConfig, error) {
			return config.ResolveSeverity(inputs)
		},
		Log: logg,
	})

	if err := controller.Execute(ctx, run); err != nil {
		logg.Error("gate failed", err)
		return err
	}
	logg.Info("gate passed")
	return nil
}

// applyOverrides lets local runs target a pull request explicitly instead
// of relying on the Actions event payload.
func applyOverrides(run *gate.Run, opts cli.Options) {
	if opts.Owner != "" {
		run.Owner = opts.Owner
	}
	if opts.Repo != "" {
		run.Repo = opts.Repo
	}
	if opts.HeadSHA != "" {
		run.HeadSHA = opts.HeadSHA
	}
	if opts.PullNumber > 0 {
		run.PullNumber = opts.PullNumber
		run.IsPullRequest = true
		if run.EventName == "" {
			run.EventName = "local"
		}
	}
}
