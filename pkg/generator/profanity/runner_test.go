package profanity

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts")
	}
	path := filepath.Join(t.TempDir(), "profanity2")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestRunnerStreamsOutput(t *testing.T) {
	path := writeScript(t, `echo "Devices:"
echo "  Time: 1s Score: 1 Private: 0x`+privA+` Address: `+addrA+`"
`)
	var progress strings.Builder
	var lines []string
	r := NewRunner(path, &progress, nil)

	err := r.Run(context.Background(), []string{"-z", "x"}, func(l string) { lines = append(lines, l) })
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Contains(t, progress.String(), "Devices:")

	tweak, err := ParseOutput(strings.Join(lines, "\n"))
	require.NoError(t, err)
	assert.Equal(t, addrA, tweak.Address)
}

func TestRunnerPassesArgs(t *testing.T) {
	path := writeScript(t, `echo "$@"`)
	var got string
	err := NewRunner(path, nil, nil).Run(context.Background(), []string{"-z", "abc", "--zero-bytes"}, func(l string) { got = l })
	require.NoError(t, err)
	assert.Equal(t, "-z abc --zero-bytes", got)
}

func TestRunnerFailure(t *testing.T) {
	path := writeScript(t, `echo "clGetPlatformIDs failed" >&2
exit 3
`)
	err := NewRunner(path, nil, nil).Run(context.Background(), nil, nil)
	require.ErrorIs(t, err, ErrToolFailed)
	assert.Contains(t, err.Error(), "clGetPlatformIDs failed")
}

func TestRunnerNotFound(t *testing.T) {
	r := NewRunner(filepath.Join(t.TempDir(), "missing-profanity2"), nil, nil)
	err := r.Run(context.Background(), nil, nil)
	require.ErrorIs(t, err, ErrToolNotFound)
	assert.Contains(t, err.Error(), "--profanity-path")
}

func TestRunnerCancel(t *testing.T) {
	path := writeScript(t, `echo "Devices:"
exec sleep 30
`)
	ctx, cancel := context.WithCancel(context.Background())
	start := time.Now()
	err := NewRunner(path, nil, nil).Run(ctx, nil, func(string) { cancel() })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 10*time.Second)
}
