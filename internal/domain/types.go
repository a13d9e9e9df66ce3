package domain

// File change statuses reported by the GitHub pull request files API.
const (
	FileStatusAdded    = "added"
	FileStatusModified = "modified"
	FileStatusRemoved  = "removed"
	FileStatusRenamed  = "renamed"
	FileStatusCopied   = "copied"
	FileStatusChanged  = "changed"
)

// ChangedFile is one entry of a pull request's change set.
type ChangedFile struct {
	Path   string
	Status string
}

// Snippet is a source excerpt attached to a diagnostic.
type Snippet struct {
	File string `json:"file"`
	Line int    `json:"line"`
}

// Diagnostic is a single finding reported by the eipw engine.
type Diagnostic struct {
	Severity Severity  `json:"-"`
	Level    string    `json:"level"`
	Title    string    `json:"title"`
	Lint     string    `json:"lint"`
	Snippets []Snippet `json:"snippets"`

	// Formatted is the engine's pre-rendered display text. It may be
	// missing or contain byte sequences that fail to render; callers
	// go through the renderer rather than reading it directly.
	Formatted string `json:"formatted"`
}

// OriginFile returns the file of the first snippet, or "" when the
// diagnostic carries no source excerpt.
func (d Diagnostic) OriginFile() string {
	if len(d.Snippets) == 0 {
		return ""
	}
	return d.Snippets[0].File
}

// StartLine returns the line of the first snippet, or 0 when the
// diagnostic carries no source excerpt.
func (d Diagnostic) StartLine() int {
	if len(d.Snippets) == 0 {
		return 0
	}
	return d.Snippets[0].Line
}

// SeverityConfig is the severity-override configuration handed to the engine.
type SeverityConfig struct {
	// Deny, Warn and Allow promote or demote individual lints by name.
	Deny  []string
	Warn  []string
	Allow []string

	// DefaultLints and DefaultModifiers replace the engine's built-in
	// defaults when an options file supplies the corresponding key.
	// Their contents are opaque to the gate and passed through verbatim.
	DefaultLints     map[string]any
	DefaultModifiers map[string]any
}

// HasOverrides reports whether the config changes anything relative to
// the engine's defaults.
func (c SeverityConfig) HasOverrides() bool {
	return len(c.Deny) > 0 || len(c.Warn) > 0 || len(c.Allow) > 0 ||
		c.DefaultLints != nil || c.DefaultModifiers != nil
}

// Annotation is a severity-tagged message surfaced on the run's output.
// File and Line are optional; a zero Line means "no location".
type Annotation struct {
	Message string
	Title   string
	File    string
	Line    int
}

// Verdict accumulates the run's pass/fail decision. HasErrors flips to
// true on the first error-severity diagnostic and never flips back.
type Verdict struct {
	HasErrors bool
}
