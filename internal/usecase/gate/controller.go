package gate

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/eipw-action/internal/domain"
)

// ErrLintFailed is the run's terminal error when the engine reported at
// least one error-severity diagnostic. It is expected output, not a
// malfunction: the tool worked and found problems.
var ErrLintFailed = errors.New("eipw reported errors")

// ChangeLister fetches a pull request's change set.
type ChangeLister interface {
	ListPullRequestFiles(ctx context.Context, owner, repo string, pullNumber int) ([]domain.ChangedFile, error)
}

// CommentPoster posts a comment on a pull request's conversation.
type CommentPoster interface {
	CreateIssueComment(ctx context.Context, owner, repo string, issueNumber int, body string) error
}

// Engine invokes the external linting engine.
type Engine interface {
	Lint(ctx context.Context, paths []string, cfg domain.SeverityConfig) ([]domain.Diagnostic, error)
}

// ConfigResolver produces the severity configuration for the engine.
type ConfigResolver func() (domain.SeverityConfig, error)

// Logger is the subset of logging the controller needs.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Error(msg string, err error)
}

// Run describes the triggering event.
type Run struct {
	EventName     string
	IsPullRequest bool
	Owner         string
	Repo          string
	PullNumber    int
	HeadSHA       string
	RunURL        string
}

// Dependencies captures the controller's collaborators.
type Dependencies struct {
	Lister    ChangeLister
	Commenter CommentPoster
	Engine    Engine
	Reporter  *Reporter
	Annotator Annotator
	Selector  Selector
	Resolve   ConfigResolver
	Log       Logger
}

// Controller orchestrates one gate run:
// fetch -> select -> resolve -> lint -> report -> verdict.
type Controller struct {
	deps Dependencies
}

// NewController creates a Controller.
func NewController(deps Dependencies) *Controller {
	return &Controller{deps: deps}
}

// Execute runs the gate. A nil return is Pass; any error is Fail. Panics
// anywhere below are recovered here so the run always reaches a terminal
// state with a message.
func (c *Controller) Execute(ctx context.Context, run Run) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("gate aborted: %v", r)
			c.deps.Log.Error("unexpected failure", err)
		}
	}()

	if !run.IsPullRequest {
		// Guard against the action being wired to the wrong event.
		c.deps.Log.Warnf("event %q is not a pull request trigger", run.EventName)
		c.deps.Annotator.Warning(domain.Annotation{
			Message: fmt.Sprintf("eipw-action skipped: %q is not a pull request event", run.EventName),
		})
		return nil
	}

	files, err := c.deps.Lister.ListPullRequestFiles(ctx, run.Owner, run.Repo, run.PullNumber)
	if err != nil {
		return fmt.Errorf("fetch change set: %w", err)
	}
	c.deps.Log.Infof("pull request #%d touches %d files", run.PullNumber, len(files))

	paths, err := c.deps.Selector.Select(files)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		c.deps.Annotator.Notice(domain.Annotation{
			Message: "no proposal files changed; nothing to lint",
		})
		return nil
	}
	c.deps.Log.Infof("linting %d proposal files", len(paths))

	cfg, err := c.deps.Resolve()
	if err != nil {
		return err
	}

	diags, err := c.deps.Engine.Lint(ctx, paths, cfg)
	if err != nil {
		return fmt.Errorf("lint: %w", err)
	}

	verdict := c.deps.Reporter.Report(diags)
	if !verdict.HasErrors {
		return nil
	}

	// Fire-and-forget: a failed comment post must not mask the verdict.
	if postErr := c.deps.Commenter.CreateIssueComment(ctx, run.Owner, run.Repo, run.PullNumber, failureComment(run)); postErr != nil {
		c.deps.Log.Error("failed to post summary comment", postErr)
	}
	return ErrLintFailed
}

// failureComment composes the summary comment posted when the gate fails
// on lint errors.
func failureComment(run Run) string {
	return fmt.Sprintf(
		"The commit `%s` contains errors flagged by eipw. To merge, every error must be fixed or explicitly allowed.\n\nSee the [run summary](%s) for the full diagnostics.",
		run.HeadSHA,
		run.RunURL,
	)
}
