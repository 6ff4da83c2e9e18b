package scripts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverListsRegularFilesSorted(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.sh"), []byte("echo b"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.sh"), []byte("echo a"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte(""), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0755))

	list, err := Discover(dir)
	require.NoError(t, err)

	require.Len(t, list, 2, "隐藏文件和子目录不应出现在列表中")
	assert.Equal(t, "a.sh", list[0].Name)
	assert.Equal(t, "b.sh", list[1].Name)
	assert.Equal(t, filepath.Join(dir, "a.sh"), list[0].Path)
	assert.False(t, list[0].Executable)
	assert.True(t, list[1].Executable)
	assert.False(t, list[0].ModifiedAt.IsZero())
}

func TestDiscoverMissingDirYieldsEmptyList(t *testing.T) {
	list, err := Discover(filepath.Join(t.TempDir(), "does-not-exist"))

	require.NoError(t, err, "目录不存在不应视为错误")
	assert.Empty(t, list)
}
