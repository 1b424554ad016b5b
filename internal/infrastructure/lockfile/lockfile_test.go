package lockfile_test

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/armor-tracker/internal/infrastructure/lockfile"
)

func TestLockFile_AcquireAndRelease(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "nested", "tracker.lock")
	lock := lockfile.New(path)

	// Act
	require.NoError(t, lock.Acquire())

	// Assert
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid()), strings.TrimSpace(string(data)))

	require.NoError(t, lock.Release())
	assert.NoFileExists(t, path)
	assert.NoError(t, lock.Release())
}

func TestLockFile_HeldByLiveProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.lock")
	require.NoError(t, lockfile.New(path).Acquire())

	err := lockfile.New(path).Acquire()

	var locked *lockfile.LockedError
	require.ErrorAs(t, err, &locked)
	assert.Equal(t, os.Getpid(), locked.PID)
}

func TestLockFile_ReplacesStaleOrGarbage(t *testing.T) {
	for _, content := range []string{"99999999\n", "not a pid", ""} {
		path := filepath.Join(t.TempDir(), "tracker.lock")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		require.NoError(t, lockfile.New(path).Acquire(), content)

		data, _ := os.ReadFile(path)
		assert.Equal(t, strconv.Itoa(os.Getpid()), strings.TrimSpace(string(data)))
	}
}
