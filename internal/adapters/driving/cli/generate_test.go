package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestGenerateCmd_SynthesizesAndRenders(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writePlan(t, `{
		"name": "board_update",
		"context": "quarterly review",
		"slides": [
			{"source_slide": "roadmap_Slide_00", "answers": [{"question": "Q?", "reply": "A"}]}
		]
	}`)

	out, err := execute("generate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Generated generated/board_update.json (1 slides).")
}

func TestGenerateCmd_EmptyPlan(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writePlan(t, `{"slides": []}`)

	_, err := execute("generate", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no slides")
}

func TestGenerateCmd_InvalidJSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writePlan(t, `not json`)

	_, err := execute("generate", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing plan")
}

func TestQuestionsCmd_PrintsNumberedList(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("questions", "roadmap.pptx", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "1. Who is the audience?")
}

func TestQuestionsCmd_NoQuestions(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	composeService = &stubCompose{}

	out, err := execute("questions", "roadmap.pptx", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "No questions could be generated")
}

func TestVersionCmd(t *testing.T) {
	out, err := execute("version")
	require.NoError(t, err)
	assert.Contains(t, out, "deckdex version")
}
