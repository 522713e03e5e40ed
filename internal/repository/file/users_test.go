package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LazizbekQuvondiqov/Tarjimon-bot/internal/testutil"
)

func TestUserRepo_LoadCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.txt")
	repo := NewUserRepo(path, testutil.NewTestLogger())

	err := repo.Load()

	assert.NoError(t, err)
	assert.Equal(t, 0, repo.Count())
	_, statErr := os.Stat(path)
	assert.NoError(t, statErr, "backing file should be created")
}

func TestUserRepo_LoadSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.txt")
	content := "123\nnot-a-number\n456\n\n-5\n789\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	repo := NewUserRepo(path, testutil.NewTestLogger())
	err := repo.Load()

	assert.NoError(t, err)
	assert.Equal(t, 3, repo.Count())
	assert.Contains(t, repo.All(), int64(123))
	assert.Contains(t, repo.All(), int64(456))
	assert.Contains(t, repo.All(), int64(789))
}

func TestUserRepo_AddIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.txt")
	repo := NewUserRepo(path, testutil.NewTestLogger())
	assert.NoError(t, repo.Load())

	assert.True(t, repo.Add(42), "first add should report a new user")
	assert.False(t, repo.Add(42), "second add should report already known")
	assert.Equal(t, 1, repo.Count())

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "42\n", string(data), "exactly one persisted entry")
}

func TestUserRepo_AddSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.txt")
	repo := NewUserRepo(path, testutil.NewTestLogger())
	assert.NoError(t, repo.Load())
	repo.Add(1)
	repo.Add(2)

	reloaded := NewUserRepo(path, testutil.NewTestLogger())
	assert.NoError(t, reloaded.Load())
	assert.Equal(t, 2, reloaded.Count())
}

func TestUserRepo_AddReportsFalseOnWriteFailure(t *testing.T) {
	// Point the repo at a path whose parent directory does not exist.
	path := filepath.Join(t.TempDir(), "missing", "users.txt")
	repo := NewUserRepo(path, testutil.NewTestLogger())

	assert.False(t, repo.Add(42))
	assert.Equal(t, 0, repo.Count(), "memory must stay consistent with storage")
}

func TestUserRepo_AllReturnsDefensiveCopy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.txt")
	repo := NewUserRepo(path, testutil.NewTestLogger())
	assert.NoError(t, repo.Load())
	repo.Add(1)

	snapshot := repo.All()
	snapshot[999] = struct{}{}

	assert.Equal(t, 1, repo.Count())
	assert.NotContains(t, repo.All(), int64(999))
}
