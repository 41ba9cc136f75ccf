package assets

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-obj/pkg/formats"
)

func writeAsset(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestManager_ReadFile(t *testing.T) {
	root := t.TempDir()
	writeAsset(t, root, "models/tri.obj", "v 0 0 0\n")

	m := NewManager(root)
	data, err := m.ReadFile("models/tri.obj")
	require.NoError(t, err)
	assert.Equal(t, "v 0 0 0\n", string(data))

	// Second read is served from cache even after the file changes.
	writeAsset(t, root, "models/tri.obj", "changed")
	data, err = m.ReadFile("models/tri.obj")
	require.NoError(t, err)
	assert.Equal(t, "v 0 0 0\n", string(data))

	hits, misses := m.Cache().Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)

	m.Invalidate("models/tri.obj")
	data, err = m.ReadFile("models/tri.obj")
	require.NoError(t, err)
	assert.Equal(t, "changed", string(data))
}

func TestManager_ReadFileMissing(t *testing.T) {
	m := NewManager(t.TempDir())
	_, err := m.ReadFile("nope.obj")
	assert.ErrorIs(t, err, formats.ErrIO)
	assert.Equal(t, 0, m.Cache().Len())
}

func TestManager_DefaultRoot(t *testing.T) {
	m := NewManager("")
	assert.Equal(t, DefaultRoot, m.Root())
	assert.Equal(t, filepath.Join("assets", "models", "a.obj"), m.Path("models/a.obj"))
}

func TestManager_Close(t *testing.T) {
	root := t.TempDir()
	writeAsset(t, root, "a.mtl", "newmtl A\n")

	m := NewManager(root)
	_, err := m.ReadFile("a.mtl")
	require.NoError(t, err)
	assert.Equal(t, 1, m.Cache().Len())

	m.Close()
	assert.Equal(t, 0, m.Cache().Len())
}

func TestManager_ConcurrentReads(t *testing.T) {
	root := t.TempDir()
	writeAsset(t, root, "a.obj", "v 1 2 3\n")
	m := NewManager(root)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := m.ReadFile("a.obj")
			assert.NoError(t, err)
			assert.Equal(t, "v 1 2 3\n", string(data))
		}()
	}
	wg.Wait()

	hits, misses := m.Cache().Stats()
	assert.Equal(t, 16, hits+misses)
}
