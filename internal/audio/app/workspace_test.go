package app

import (
	"os"
	"path/filepath"
	"testing"

	"audio_extract_service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspace(t *testing.T) {
	logger.SetNewNop()
	root := t.TempDir()

	first, err := NewWorkspace(root)
	require.NoError(t, err)
	second, err := NewWorkspace(root)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, first.Dir, second.Dir)
	assert.DirExists(t, first.Dir)

	require.NoError(t, os.WriteFile(filepath.Join(first.Dir, "a.mp3"), []byte("x"), 0644))

	require.NoError(t, first.Release())
	assert.NoDirExists(t, first.Dir)
	assert.DirExists(t, second.Dir)

	// 重複 Release 不報錯
	assert.NoError(t, first.Release())

	// 目錄已被外部刪除
	require.NoError(t, os.RemoveAll(second.Dir))
	assert.NoError(t, second.Release())
}

func TestNewWorkspaceRootIsFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(root, []byte("x"), 0644))

	_, err := NewWorkspace(root)
	assert.Error(t, err)
}
