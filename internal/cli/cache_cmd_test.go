package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheListEmpty(t *testing.T) {
	testEnv(t)

	stdout, _, err := execute(t, "cache", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No cache entries found.")
}

func TestCacheList(t *testing.T) {
	testEnv(t)

	_, _, err := execute(t, "--ttl", "3600", "echo hello")
	require.NoError(t, err)
	_, _, err = execute(t, "--ttl", "0", "echo stale")
	require.NoError(t, err)

	stdout, _, err := execute(t, "cache", "list")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Cached results")
	assert.Contains(t, stdout, "echo hello")
	assert.Contains(t, stdout, "echo stale")
	assert.Contains(t, stdout, "expired")
	assert.Contains(t, stdout, "2 entries")
}

func TestCacheListTruncatesLongCommands(t *testing.T) {
	testEnv(t)

	long := "echo " + "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	_, _, err := execute(t, "--ttl", "3600", long)
	require.NoError(t, err)

	stdout, _, err := execute(t, "cache", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "...")
	assert.NotContains(t, stdout, long)
}

func TestCacheClear(t *testing.T) {
	testEnv(t)

	_, _, err := execute(t, "--ttl", "3600", "echo one")
	require.NoError(t, err)
	_, _, err = execute(t, "--ttl", "3600", "echo two")
	require.NoError(t, err)

	stdout, _, err := execute(t, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Removed 2 cache entries.")

	stdout, _, err = execute(t, "cache", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No cache entries found.")
}

func TestCacheCleanup(t *testing.T) {
	testEnv(t)

	_, _, err := execute(t, "--ttl", "3600", "echo fresh")
	require.NoError(t, err)
	_, _, err = execute(t, "--ttl", "0", "echo stale")
	require.NoError(t, err)

	stdout, _, err := execute(t, "cache", "cleanup")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Removed 1 expired cache entries.")

	stdout, _, err = execute(t, "cache", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "echo fresh")
	assert.NotContains(t, stdout, "echo stale")
}

func TestTruncateCommand(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "short passes through", input: "echo hi", want: "echo hi"},
		{name: "control characters replaced", input: "echo\thi\nthere", want: "echo hi there"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncateCommand(tt.input))
		})
	}

	t.Run("long command truncated", func(t *testing.T) {
		long := make([]byte, 100)
		for i := range long {
			long[i] = 'x'
		}
		got := truncateCommand(string(long))
		assert.Len(t, got, maxCommandDisplay)
		assert.Contains(t, got, "...")
	})
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0B"},
		{512, "512B"},
		{2048, "2.0KiB"},
		{3 * 1024 * 1024, "3.0MiB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatBytes(tt.n))
	}
}
