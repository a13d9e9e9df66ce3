package domain

import (
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"
)

// ErrMalformedName indicates a proposal file whose path does not encode a
// proposal number under any recognized naming convention.
var ErrMalformedName = errors.New("cannot extract proposal number")

// ProposalNumber extracts the numeric proposal identifier from a file
// path. Three naming conventions are recognized, in precedence order:
//
//   - legacy dash suffix: "EIPS/eip-1234.md" -> 1234
//   - index file under a numeric directory: "EIPS/01234/index.md" -> 1234
//   - numeric stem: "EIPS/01234.md" -> 1234
//
// A path matching none of the conventions is a configuration error, not a
// silent skip: a malformed filename in the proposals directory is exactly
// what the linter exists to catch early.
func ProposalNumber(p string) (uint64, error) {
	base := path.Base(p)
	stem := strings.TrimSuffix(base, path.Ext(base))

	if i := strings.LastIndex(stem, "-"); i >= 0 {
		return parseProposalNumber(stem[i+1:], p)
	}
	if base == "index.md" {
		return parseProposalNumber(path.Base(path.Dir(p)), p)
	}
	return parseProposalNumber(stem, p)
}

func parseProposalNumber(s, p string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w from %q", ErrMalformedName, p)
	}
	return n, nil
}
