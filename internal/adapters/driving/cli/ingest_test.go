package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferrous-labs/deckdex-cli/internal/core/ports/driving"
)

func TestIngestCmd_PrintsSummary(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	ingestService = &stubIngest{
		results: []driving.IngestResult{
			{SourceName: "a.pptx", Outcome: driving.OutcomeIndexed, Slides: 3},
			{SourceName: "b.pptx", Outcome: driving.OutcomeSkippedDuplicate},
			{SourceName: "c.pptx", Outcome: driving.OutcomeFailed, Err: errors.New("corrupt")},
		},
	}

	out, err := execute("ingest")
	require.NoError(t, err)
	assert.Contains(t, out, "1 indexed, 1 skipped, 1 failed")
	assert.Contains(t, out, "failed: c.pptx")
}

func TestIngestCmd_WatchWithoutSupport(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	prev := watchFunc
	SetWatchFunc(nil)
	defer func() {
		watchFunc = prev
		ingestWatch = false
	}()

	_, err := execute("ingest", "--watch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}

func TestIngestCmd_MissingService(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	ingestService = nil

	_, err := execute("ingest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
