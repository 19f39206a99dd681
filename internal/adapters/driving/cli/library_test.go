package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibraryListCmd_ShowsStatus(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("library", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "roadmap.pptx")
	assert.Contains(t, out, "12 slide(s) indexed")
}

func TestLibraryListCmd_EmptyLibrary(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	libraryService = &stubLibrary{}

	out, err := execute("library", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Library is empty.")
}

func TestLibraryUploadCmd_UsesFileBaseName(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	library := &stubLibrary{}
	libraryService = library

	path := filepath.Join(t.TempDir(), "deck.pptx")
	require.NoError(t, os.WriteFile(path, []byte("bytes"), 0o600))

	out, err := execute("library", "upload", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Uploaded and indexed deck.pptx.")
	assert.Equal(t, []string{"deck.pptx"}, library.uploaded)
}

func TestLibraryUploadCmd_MissingFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("library", "upload", "/does/not/exist.pptx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading")
}

func TestLibraryRemoveCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	library := &stubLibrary{}
	libraryService = library

	out, err := execute("library", "remove", "roadmap.pptx")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed roadmap.pptx.")
	assert.Equal(t, []string{"roadmap.pptx"}, library.removed)
}
