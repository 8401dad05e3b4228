package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"photo.png", "photo.png"},
		{"../../etc/passwd", "passwd"},
		{"my round notes (final).pdf", "my_round_notes_final_.pdf"},
		{"семь.png", "png"},
		{"", "file"},
		{"...", "file"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, SanitizeFilename(tc.in), "input %q", tc.in)
	}
}

func TestAllowedFile(t *testing.T) {
	allowed := []string{"jpg", "png", "pdf"}

	assert.True(t, AllowedFile("photo.png", allowed))
	assert.True(t, AllowedFile("PHOTO.PNG", allowed))
	assert.False(t, AllowedFile("script.sh", allowed))
	assert.False(t, AllowedFile("noextension", allowed))
	assert.False(t, AllowedFile("archive.zip", allowed))
}

func TestSaveCollisions(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	first, err := store.Save("photo.png", strings.NewReader("one"))
	require.NoError(t, err)
	assert.Equal(t, "photo.png", first)

	second, err := store.Save("photo.png", strings.NewReader("two"))
	require.NoError(t, err)
	assert.Equal(t, "photo_1.png", second)

	third, err := store.Save("photo.png", strings.NewReader("three"))
	require.NoError(t, err)
	assert.Equal(t, "photo_2.png", third)

	// The original is untouched.
	data, err := os.ReadFile(filepath.Join(dir, "photo.png"))
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))

	data, err = os.ReadFile(store.Path(third))
	require.NoError(t, err)
	assert.Equal(t, "three", string(data))
}

func TestSaveSanitizesPathTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	stored, err := store.Save("../escape.png", strings.NewReader("data"))
	require.NoError(t, err)
	assert.Equal(t, "escape.png", stored)

	_, err = os.Stat(filepath.Join(dir, "escape.png"))
	assert.NoError(t, err)
}
