// Package gate implements the pull request lint gate: change-set
// selection, severity resolution, diagnostic reporting, and the run's
// pass/fail decision.
package gate

import (
	"fmt"
	"path"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ethereum/eipw-action/internal/domain"
)

// Selector filters a change set down to the in-scope proposal files.
type Selector struct {
	// Include is the ordered glob pattern list; a file is in scope iff it
	// matches at least one pattern.
	Include []string

	// Unchecked excludes proposals by number.
	Unchecked map[uint64]struct{}

	// WorkingDirectory, when set, prefixes every selected path for the
	// engine invocation.
	WorkingDirectory string
}

// Select returns the in-scope file paths in the order the API returned
// them. Removed files and excluded proposals are skipped; a matching file
// whose name encodes no proposal number is a fatal configuration error.
func (s Selector) Select(files []domain.ChangedFile) ([]string, error) {
	var selected []string

	for _, f := range files {
		if f.Status == domain.FileStatusRemoved {
			continue
		}

		matched, err := s.matchesInclude(f.Path)
		if err != nil {
			return nil, err
		}
		if !matched {
			continue
		}

		number, err := domain.ProposalNumber(f.Path)
		if err != nil {
			return nil, err
		}
		if _, excluded := s.Unchecked[number]; excluded {
			continue
		}

		p := f.Path
		if s.WorkingDirectory != "" {
			p = path.Join(s.WorkingDirectory, p)
		}
		selected = append(selected, p)
	}

	return selected, nil
}

func (s Selector) matchesInclude(p string) (bool, error) {
	for _, pattern := range s.Include {
		ok, err := doublestar.Match(pattern, p)
		if err != nil {
			return false, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
