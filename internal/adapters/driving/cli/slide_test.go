package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlideCmd_ShowsRecord(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("slide", "roadmap.pptx", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "roadmap_Slide_00")
	assert.Contains(t, out, "Roadmap 2026\nGoals")
	assert.Contains(t, out, "Indexed: 2026-08-01T00:00:00Z")
}

func TestSlideCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer func() { slideJSON = false }()

	out, err := execute("slide", "--json", "roadmap.pptx", "0")
	require.NoError(t, err)
	assert.Contains(t, out, `"slide_id": "roadmap_Slide_00"`)
	assert.Contains(t, out, `"indexed_at": "2026-08-01T00:00:00Z"`)
}

func TestSlideCmd_InvalidIndex(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("slide", "roadmap.pptx", "first")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid slide index")
}

func TestSlideCmd_NotFound(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	retrievalService = &stubRetrieval{}

	_, err := execute("slide", "roadmap.pptx", "9")
	require.Error(t, err)
}
