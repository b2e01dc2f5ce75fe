package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	m "tagsweep.dev/pkg/tagsweep/internal/model"
)

// RawMatch is one (path, line, text) triple returned by the search backend.
// Paths are reported exactly as the backend printed them; the matcher is
// responsible for resolving and filtering them.
type RawMatch struct {
	Path m.Path
	Line int
	Text string
}

// SearchAdapter abstracts full-text search over a directory tree so the
// matcher can be tested against an in-memory fake. A nil slice with a nil
// error means the pattern matched nothing, which is a normal outcome.
type SearchAdapter interface {
	Search(ctx context.Context, pattern string, root m.Path) ([]RawMatch, error)
}

// SearchToolError reports a search invocation that terminated with
// something other than success or no-matches. It is fatal for the whole
// audit: a partial usage report must never be written.
type SearchToolError struct {
	Pattern string
	Stderr  string
	Err     error
}

func (e *SearchToolError) Error() string {
	msg := fmt.Sprintf("search for %q failed: %v", e.Pattern, e.Err)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}

	return msg
}

func (e *SearchToolError) Unwrap() error {
	return e.Err
}

// DefaultSearchTimeout bounds a single search invocation. Hitting it is
// treated as the same hard-failure class as any other search error.
const DefaultSearchTimeout = 30 * time.Second

// RipgrepSearchAdapter provides a concrete SearchAdapter using the rg
// binary via os/exec.
type RipgrepSearchAdapter struct {
	timeout time.Duration
}

// NewRipgrepSearchAdapter constructs a RipgrepSearchAdapter. A zero or
// negative timeout falls back to DefaultSearchTimeout.
func NewRipgrepSearchAdapter(timeout time.Duration) *RipgrepSearchAdapter {
	if timeout <= 0 {
		timeout = DefaultSearchTimeout
	}

	return &RipgrepSearchAdapter{timeout: timeout}
}

// Search runs rg for a literal pattern over the tree rooted at root.
// Exit code 1 means no matches and yields an empty result; any other
// non-zero termination is a SearchToolError. Matches are sorted by path so
// repeated runs over an unchanged tree produce identical artifacts; without
// the sort, rg's multi-threaded traversal interleaves files in arbitrary
// order.
func (a *RipgrepSearchAdapter) Search(ctx context.Context, pattern string, root m.Path) ([]RawMatch, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "rg", "--no-heading", "--line-number", "--fixed-strings", "--sort", "path", pattern, string(root))

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 && ctx.Err() == nil {
			return nil, nil
		}

		if ctx.Err() != nil {
			err = fmt.Errorf("%w: %v", ctx.Err(), err)
		}

		return nil, &SearchToolError{Pattern: pattern, Stderr: stderr.String(), Err: err}
	}

	return parseSearchOutput(stdout.String()), nil
}

// parseSearchOutput splits rg's --no-heading output into matches. Each line
// has the form path:line:text, where text may itself contain colons.
func parseSearchOutput(output string) []RawMatch {
	trimmed := strings.TrimRight(output, "\n")
	if trimmed == "" {
		return nil
	}

	var matches []RawMatch

	for _, line := range strings.Split(trimmed, "\n") {
		parts := strings.SplitN(line, ":", 3)
		if len(parts) != 3 {
			continue
		}

		lineNo, err := strconv.Atoi(parts[1])
		if err != nil {
			continue
		}

		matches = append(matches, RawMatch{
			Path: m.Path(parts[0]),
			Line: lineNo,
			Text: parts[2],
		})
	}

	return matches
}
