// Package actions wraps the GitHub Actions runtime surface the gate
// consumes: inputs, the triggering event context, and workflow-command
// annotations.
package actions

import (
	"fmt"
	"strconv"
	"strings"

	githubactions "github.com/sethvargo/go-githubactions"

	"github.com/ethereum/eipw-action/internal/domain"
)

// Runtime adapts go-githubactions to the gate's collaborator interfaces.
type Runtime struct {
	action *githubactions.Action
}

// New creates a Runtime backed by the real process environment.
func New() *Runtime {
	return NewWithAction(githubactions.New())
}

// NewWithAction creates a Runtime around an explicit action, letting tests
// substitute writer and environment.
func NewWithAction(action *githubactions.Action) *Runtime {
	return &Runtime{action: action}
}

// Input returns the named action input, trimmed.
func (r *Runtime) Input(name string) string {
	return strings.TrimSpace(r.action.GetInput(name))
}

// Notice emits an informational annotation.
func (r *Runtime) Notice(a domain.Annotation) {
	r.scoped(a).Noticef("%s", a.Message)
}

// Warning emits a warning annotation.
func (r *Runtime) Warning(a domain.Annotation) {
	r.scoped(a).Warningf("%s", a.Message)
}

// Error emits an error annotation.
func (r *Runtime) Error(a domain.Annotation) {
	r.scoped(a).Errorf("%s", a.Message)
}

// scoped attaches the annotation's location metadata as workflow-command
// fields. Absent fields are omitted rather than sent empty.
func (r *Runtime) scoped(a domain.Annotation) *githubactions.Action {
	fields := map[string]string{}
	if a.Title != "" {
		fields["title"] = a.Title
	}
	if a.File != "" {
		fields["file"] = a.File
	}
	if a.Line > 0 {
		fields["line"] = strconv.Itoa(a.Line)
	}
	if len(fields) == 0 {
		return r.action
	}
	return r.action.WithFieldsMap(fields)
}

// RunContext is the slice of the triggering event the gate needs.
type RunContext struct {
	EventName  string
	Owner      string
	Repo       string
	PullNumber int
	HeadSHA    string

	// RunURL links to this action run's summary page.
	RunURL string
}

// IsPullRequest reports whether the triggering event carries a pull
// request payload.
func (c RunContext) IsPullRequest() bool {
	return c.EventName == "pull_request" || c.EventName == "pull_request_target"
}

// RunContext extracts the gate's view of the triggering event.
func (r *Runtime) RunContext() (RunContext, error) {
	gctx, err := r.action.Context()
	if err != nil {
		return RunContext{}, fmt.Errorf("read github context: %w", err)
	}

	owner, repo := gctx.Repo()
	rc := RunContext{
		EventName: gctx.EventName,
		Owner:     owner,
		Repo:      repo,
		RunURL:    fmt.Sprintf("%s/%s/actions/runs/%d", gctx.ServerURL, gctx.Repository, gctx.RunID),
	}

	pr, ok := gctx.Event["pull_request"].(map[string]any)
	if !ok {
		return rc, nil
	}
	if number, ok := pr["number"].(float64); ok {
		rc.PullNumber = int(number)
	}
	if head, ok := pr["head"].(map[string]any); ok {
		if sha, ok := head["sha"].(string); ok {
			rc.HeadSHA = sha
		}
	}

	return rc, nil
}
