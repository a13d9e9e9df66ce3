package gate

import "github.com/ethereum/eipw-action/internal/domain"

// fallbackMessage is used when a diagnostic has neither renderable text
// nor a title. It points at the engine because that combination can only
// come from an upstream rendering bug.
const fallbackMessage = "eipw produced a diagnostic that could not be rendered; this is a bug in eipw"

// Annotator emits severity-tagged annotations on the run's output.
type Annotator interface {
	Notice(domain.Annotation)
	Warning(domain.Annotation)
	Error(domain.Annotation)
}

// Renderer produces the display text for a diagnostic. It may fail; the
// reporter degrades to the title and then to a fixed placeholder.
type Renderer func(domain.Diagnostic) (string, error)

// Reporter maps each diagnostic to exactly one annotation, in input
// order, and accumulates the overall verdict.
type Reporter struct {
	annotator Annotator
	render    Renderer
}

// NewReporter creates a Reporter.
func NewReporter(annotator Annotator, render Renderer) *Reporter {
	return &Reporter{annotator: annotator, render: render}
}

// Report consumes the diagnostic sequence. Help, note and info become
// notices; warnings become warnings; errors and unrecognized severities
// become errors and flip the verdict. Informational and warning findings
// never fail the run.
func (r *Reporter) Report(diags []domain.Diagnostic) domain.Verdict {
	var verdict domain.Verdict

	for _, d := range diags {
		a := domain.Annotation{
			Message: r.display(d),
			Title:   d.Title,
			File:    d.OriginFile(),
			Line:    d.StartLine(),
		}

		switch d.Severity {
		case domain.SeverityHelp, domain.SeverityNote, domain.SeverityInfo:
			r.annotator.Notice(a)
		case domain.SeverityWarning:
			r.annotator.Warning(a)
		case domain.SeverityError:
			r.annotator.Error(a)
			verdict.HasErrors = true
		default:
			// Unrecognized severities fail closed.
			r.annotator.Error(a)
			verdict.HasErrors = true
		}
	}

	return verdict
}

// display renders a diagnostic's message, never failing.
func (r *Reporter) display(d domain.Diagnostic) string {
	if text, err := r.render(d); err == nil {
		return text
	}
	if d.Title != "" {
		return d.Title
	}
	return fallbackMessage
}
