package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileTokenStore {
	t.Helper()
	t.Setenv("BRANDPULSE_HOME", t.TempDir())

	fs, err := NewFileTokenStore()
	require.NoError(t, err)
	return fs
}

func TestFileTokenStore_SaveAndLoad(t *testing.T) {
	fs := newTestStore(t)

	pair := &TokenPair{AccessToken: "acc-1", RefreshToken: "ref-1"}
	require.NoError(t, fs.Save(pair))

	loaded, err := fs.Load()
	require.NoError(t, err)
	assert.Equal(t, "acc-1", loaded.AccessToken)
	assert.Equal(t, "ref-1", loaded.RefreshToken)

	assert.Equal(t, "acc-1", fs.AccessToken())
	assert.Equal(t, "ref-1", fs.RefreshToken())
}

func TestFileTokenStore_LoadWithoutFile(t *testing.T) {
	fs := newTestStore(t)

	_, err := fs.Load()
	assert.ErrorIs(t, err, ErrNoTokens)
	assert.Empty(t, fs.AccessToken())
	assert.Empty(t, fs.RefreshToken())
}

// TestFileTokenStore_SaveReplacesPair проверяет, что Save заменяет пару
// целиком: после записи новой пары старые токены недоступны.
func TestFileTokenStore_SaveReplacesPair(t *testing.T) {
	fs := newTestStore(t)

	require.NoError(t, fs.Save(&TokenPair{AccessToken: "old-acc", RefreshToken: "old-ref"}))
	require.NoError(t, fs.Save(&TokenPair{AccessToken: "new-acc", RefreshToken: "new-ref"}))

	loaded, err := fs.Load()
	require.NoError(t, err)
	assert.Equal(t, "new-acc", loaded.AccessToken)
	assert.Equal(t, "new-ref", loaded.RefreshToken)
}

func TestFileTokenStore_SaveLeavesNoTempFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("BRANDPULSE_HOME", home)

	fs, err := NewFileTokenStore()
	require.NoError(t, err)

	require.NoError(t, fs.Save(&TokenPair{AccessToken: "acc", RefreshToken: "ref"}))

	_, err = os.Stat(filepath.Join(home, "tokens.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestFileTokenStore_FilePermissions(t *testing.T) {
	home := t.TempDir()
	t.Setenv("BRANDPULSE_HOME", home)

	fs, err := NewFileTokenStore()
	require.NoError(t, err)
	require.NoError(t, fs.Save(&TokenPair{AccessToken: "acc", RefreshToken: "ref"}))

	info, err := os.Stat(filepath.Join(home, "tokens"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

// TestFileTokenStore_ClearIdempotent проверяет, что Clear удаляет оба
// токена и его можно вызывать повторно без ошибки.
func TestFileTokenStore_ClearIdempotent(t *testing.T) {
	fs := newTestStore(t)

	require.NoError(t, fs.Save(&TokenPair{AccessToken: "acc", RefreshToken: "ref"}))

	require.NoError(t, fs.Clear())
	assert.Empty(t, fs.AccessToken())
	assert.Empty(t, fs.RefreshToken())

	// Повторный Clear без сохраненной пары — не ошибка
	require.NoError(t, fs.Clear())
}
