package adapter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "tagsweep.dev/pkg/tagsweep/internal/model"
)

// stubSearchTool puts a shell script named rg at the front of PATH so the
// adapter's real subprocess path can be exercised with controlled exit
// codes and output.
func stubSearchTool(t *testing.T, script string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rg"), []byte("#!/bin/sh\n"+script), 0o700))

	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestRipgrepSearch_Success(t *testing.T) {
	stubSearchTool(t, `echo 'crates/ops/src/apply.rs:40:    emit(OrderEvent::Created(id));'
echo 'crates/net/src/client.rs:12:OrderEvent::Created'
exit 0
`)

	adapter := NewRipgrepSearchAdapter(0)

	matches, err := adapter.Search(context.Background(), "OrderEvent::Created", ".")
	require.NoError(t, err)

	require.Len(t, matches, 2)
	assert.Equal(t, m.Path("crates/ops/src/apply.rs"), matches[0].Path)
	assert.Equal(t, 40, matches[0].Line)
}

func TestRipgrepSearch_NoMatchesIsBenign(t *testing.T) {
	// Exit code 1 is rg's "nothing matched": an empty result, not a
	// failure.
	stubSearchTool(t, "exit 1\n")

	adapter := NewRipgrepSearchAdapter(0)

	matches, err := adapter.Search(context.Background(), "OrderEvent::Cancelled", ".")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestRipgrepSearch_FailureCarriesStderr(t *testing.T) {
	stubSearchTool(t, `echo 'regex parse error' >&2
exit 2
`)

	adapter := NewRipgrepSearchAdapter(0)

	matches, err := adapter.Search(context.Background(), "OrderEvent::Created", ".")
	require.Error(t, err)
	assert.Nil(t, matches)

	var toolErr *SearchToolError

	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, "OrderEvent::Created", toolErr.Pattern)
	assert.Contains(t, toolErr.Stderr, "regex parse error")
}

func TestRipgrepSearch_InvocationArguments(t *testing.T) {
	// Echo the argument list back as a match line; line text may contain
	// colons, so the whole list survives parsing.
	stubSearchTool(t, `echo "args:1:$@"
exit 0
`)

	adapter := NewRipgrepSearchAdapter(0)

	matches, err := adapter.Search(context.Background(), "OrderEvent::Created", "some/root")
	require.NoError(t, err)

	require.Len(t, matches, 1)
	args := matches[0].Text
	assert.Contains(t, args, "--fixed-strings")
	// Sorted output keeps repeated audits byte-identical.
	assert.Contains(t, args, "--sort path")
	assert.Contains(t, args, "OrderEvent::Created some/root")
}

func TestParseSearchOutput(t *testing.T) {
	output := "crates/ops/src/apply.rs:40:    emit(OrderEvent::Created(id));\n" +
		"crates/net/src/client.rs:12:let kind = OrderEvent::Created; // path: a:b\n"

	matches := parseSearchOutput(output)

	require.Len(t, matches, 2)
	assert.Equal(t, m.Path("crates/ops/src/apply.rs"), matches[0].Path)
	assert.Equal(t, 40, matches[0].Line)
	assert.Equal(t, "    emit(OrderEvent::Created(id));", matches[0].Text)

	// The match text may itself contain colons; only the first two
	// separators delimit fields.
	assert.Equal(t, "let kind = OrderEvent::Created; // path: a:b", matches[1].Text)
}

func TestParseSearchOutput_Empty(t *testing.T) {
	assert.Nil(t, parseSearchOutput(""))
	assert.Nil(t, parseSearchOutput("\n"))
}

func TestParseSearchOutput_SkipsMalformedLines(t *testing.T) {
	output := "no separators here\n" +
		"file.rs:notanumber:text\n" +
		"file.rs:7:ok\n"

	matches := parseSearchOutput(output)

	require.Len(t, matches, 1)
	assert.Equal(t, 7, matches[0].Line)
}

func TestSearchToolError_Message(t *testing.T) {
	underlying := errors.New("exit status 2")
	err := &SearchToolError{Pattern: "OrderEvent::Created", Stderr: "regex parse error\n", Err: underlying}

	assert.Contains(t, err.Error(), "OrderEvent::Created")
	assert.Contains(t, err.Error(), "regex parse error")
	assert.ErrorIs(t, err, underlying)
}

func TestNewRipgrepSearchAdapter_DefaultTimeout(t *testing.T) {
	adapter := NewRipgrepSearchAdapter(0)
	assert.Equal(t, DefaultSearchTimeout, adapter.timeout)

	adapter = NewRipgrepSearchAdapter(5 * time.Second)
	assert.Equal(t, 5*time.Second, adapter.timeout)
}
