package words

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFold(t *testing.T) {
	cases := map[string]string{
		"HOLA":     "hola",
		" Canción": "cancion",
		"AÑO":      "año",
		"pingüino": "pinguino",
		"":         "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Fold(in), "Fold(%q)", in)
	}
}

func TestContainsIsCaseAndAccentInsensitive(t *testing.T) {
	d := New(FromList([]string{"hola", "Canción", "año"}))
	require.NoError(t, d.EnsureLoaded())

	assert.True(t, d.Contains("HOLA"))
	assert.True(t, d.Contains("Hola"))
	assert.True(t, d.Contains("CANCION"))
	assert.True(t, d.Contains("AÑO"))
	assert.False(t, d.Contains("ano"), "ñ must not fold to n")
	assert.False(t, d.Contains("adios"))
}

func TestContainsBeforeLoad(t *testing.T) {
	d := New(FromList([]string{"hola"}))
	assert.False(t, d.Contains("hola"))
	assert.Nil(t, d.Trie())
	assert.False(t, d.Stats().IsLoaded)
}

func TestEnsureLoadedRunsSourceOnce(t *testing.T) {
	var calls atomic.Int32
	d := New(func() ([]string, error) {
		calls.Add(1)
		return []string{"casa", "perro"}, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, d.EnsureLoaded())
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, calls.Load())
	assert.Equal(t, 2, d.Stats().WordCount)
}

func TestEnsureLoadedErrorIsSticky(t *testing.T) {
	boom := errors.New("disk on fire")
	d := New(func() ([]string, error) { return nil, boom })
	err := d.EnsureLoaded()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, d.EnsureLoaded(), boom)
	assert.False(t, d.Loaded())
}

func TestEnsureLoadedRejectsEmptyList(t *testing.T) {
	d := New(FromList([]string{"", "  ", "12"}))
	assert.ErrorIs(t, d.EnsureLoaded(), ErrEmpty)
}

func TestDuplicatesCollapse(t *testing.T) {
	d := New(FromList([]string{"Sol", "sol", "SOL", "luna"}))
	require.NoError(t, d.EnsureLoaded())
	assert.Equal(t, 2, d.Stats().WordCount)
	assert.Equal(t, []string{"sol", "luna"}, d.Words())
}

func TestFromFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dictionary.json")
	require.NoError(t, os.WriteFile(path, []byte(`["Hola","mundo","árbol"]`), 0o644))

	d := New(FromFile(path))
	require.NoError(t, d.EnsureLoaded())
	assert.True(t, d.Contains("arbol"))
	assert.True(t, d.Contains("MUNDO"))
}

func TestFromFileLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("# comment\ngato\n\n  perro \n"), 0o644))

	d := New(FromFile(path))
	require.NoError(t, d.EnsureLoaded())
	assert.Equal(t, 2, d.Stats().WordCount)
	assert.True(t, d.Contains("perro"))
}

func TestFromFileMissing(t *testing.T) {
	d := New(FromFile(filepath.Join(t.TempDir(), "nope.json")))
	assert.Error(t, d.EnsureLoaded())
}

func TestEmbeddedListLoads(t *testing.T) {
	d := New(SourceFor(""))
	require.NoError(t, d.EnsureLoaded())
	assert.True(t, d.Contains("hola"))
	assert.True(t, d.Contains("NIÑO"))
	assert.Greater(t, d.Stats().WordCount, 100)
}

func TestTrieIsCached(t *testing.T) {
	d := New(FromList([]string{"hola"}))
	require.NoError(t, d.EnsureLoaded())
	first := d.Trie()
	require.NotNil(t, first)
	assert.Same(t, first, d.Trie())
	assert.True(t, first.Contains("hola"))
}
