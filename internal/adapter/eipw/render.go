package eipw

import (
	"errors"
	"unicode/utf8"

	"github.com/ethereum/eipw-action/internal/domain"
)

// ErrNotRenderable indicates a diagnostic whose display text could not be
// produced. Known cause: diagnostic text containing byte sequences that do
// not survive the engine's serialization. Callers fall back to the title.
var ErrNotRenderable = errors.New("diagnostic is not renderable")

// Render returns the diagnostic's display text.
func Render(d domain.Diagnostic) (string, error) {
	if d.Formatted == "" {
		return "", ErrNotRenderable
	}
	if !utf8.ValidString(d.Formatted) {
		return "", ErrNotRenderable
	}
	return d.Formatted, nil
}
