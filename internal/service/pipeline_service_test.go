package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/constants"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/extraction"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/redaction"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/security"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/storage"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/utils"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/visual"
)

// sampleDocument is plain printable content the raw-scan strategy can recover
// from a non-PDF upload, with labeled identifiers for the detectors.
const sampleDocument = `Declaration of the applicant regarding the pending asylum proceeding.
The applicant submitted supporting evidence before the scheduled hearing.
SSN: 123-45-6789 and the contact email is maria.lopez@example.com for notices.
The record also lists Phone: (555) 123-4567 as the preferred callback number.
Counsel will file additional briefing before the next scheduled master hearing.`

func newTestPipeline(t *testing.T) *PipelineService {
	t.Helper()
	crypto, err := security.NewService("pipeline-test-secret")
	require.NoError(t, err)

	return NewPipelineService(
		extraction.NewDefaultChain(),
		redaction.NewRedactor(redaction.Options{IncludeLegal: true}),
		visual.NewRedactor(),
		crypto,
		storage.NewMemoryStore(),
		30*time.Second,
	)
}

// waitForFinish polls the job until it leaves the PROCESSING state.
func waitForFinish(t *testing.T, svc *PipelineService, id uuid.UUID) string {
	t.Helper()
	var state string
	require.Eventually(t, func() bool {
		job, err := svc.GetJob(context.Background(), id)
		if err != nil {
			return false
		}
		state = job.State
		return state != constants.JobStateProcessing
	}, 10*time.Second, 20*time.Millisecond, "Job never finished")
	return state
}

func TestPipelineProcessesDocumentEndToEnd(t *testing.T) {
	svc := newTestPipeline(t)
	ctx := context.Background()

	job, err := svc.AcceptDocument(ctx, "applicant-declaration.pdf", []byte(sampleDocument))
	require.NoError(t, err)
	assert.Equal(t, constants.JobStateProcessing, job.State)
	assert.Equal(t, "applicant-declaration.pdf", job.FileName)

	state := waitForFinish(t, svc, job.ID)
	require.Equal(t, constants.JobStateDone, state)

	finished, err := svc.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, finished.Progress)
	assert.Empty(t, finished.Error)

	text, err := svc.GetRedactedText(ctx, job.ID)
	require.NoError(t, err)
	assert.NotContains(t, text, "123-45-6789")
	assert.NotContains(t, text, "maria.lopez@example.com")
	assert.Contains(t, text, constants.TokenSSN)
	assert.Contains(t, text, constants.TokenEmail)

	doc, err := svc.GetRedactedDocument(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.VisualVariantSynthesized, doc.Variant,
		"A non-PDF original cannot be overlaid in place")
	assert.True(t, strings.HasPrefix(string(doc.Content), "%PDF-"))
	assert.GreaterOrEqual(t, doc.PageCount, 1)
}

func TestAcceptDocumentReturnsStableSnapshot(t *testing.T) {
	svc := newTestPipeline(t)
	ctx := context.Background()

	job, err := svc.AcceptDocument(ctx, "snapshot-check.pdf", []byte(sampleDocument))
	require.NoError(t, err)

	// The returned job must stay safe to read and serialize while the
	// background goroutine advances the stored copy.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			_, err := json.Marshal(job)
			assert.NoError(t, err)
			time.Sleep(time.Millisecond)
		}
	}()

	state := waitForFinish(t, svc, job.ID)
	require.Equal(t, constants.JobStateDone, state)
	<-done

	// The stored job finished, but the accepted snapshot never moved.
	assert.Equal(t, constants.JobStateProcessing, job.State)
	assert.Equal(t, 0, job.Progress)
}

func TestPipelineRefusesExhaustedExtraction(t *testing.T) {
	svc := newTestPipeline(t)
	ctx := context.Background()

	garbage := make([]byte, 4096)
	for i := range garbage {
		garbage[i] = byte(i % 7)
	}

	job, err := svc.AcceptDocument(ctx, "asylum-motion.pdf", garbage)
	require.NoError(t, err)

	state := waitForFinish(t, svc, job.ID)
	require.Equal(t, constants.JobStateError, state)

	failed, err := svc.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "The document text could not be extracted", failed.Error)

	// No artifacts were produced and nothing can be served.
	_, err = svc.GetRedactedDocument(ctx, job.ID)
	assert.Error(t, err)
	_, err = svc.GetRedactedText(ctx, job.ID)
	assert.Error(t, err)
}

func TestPipelineRejectsQueriesBeforeCompletion(t *testing.T) {
	svc := newTestPipeline(t)
	ctx := context.Background()

	// Register a job directly so it stays in PROCESSING.
	job, err := svc.AcceptDocument(ctx, "slow.pdf", []byte(sampleDocument))
	require.NoError(t, err)

	_, inFlightErr := svc.GetRedactedText(ctx, job.ID)
	if inFlightErr != nil {
		appErr := utils.ParseError(inFlightErr)
		require.NotNil(t, appErr)
		assert.Equal(t, 400, appErr.StatusCode)
	}

	// Unknown jobs are not found, regardless of state.
	_, err = svc.GetRedactedText(ctx, uuid.New())
	assert.True(t, utils.IsNotFoundError(err))
	_, err = svc.GetJob(ctx, uuid.New())
	assert.True(t, utils.IsNotFoundError(err))
}

func TestPipelineRedactionRecordsAreClientSafe(t *testing.T) {
	svc := newTestPipeline(t)
	ctx := context.Background()

	job, err := svc.AcceptDocument(ctx, "records.pdf", []byte(sampleDocument))
	require.NoError(t, err)
	require.Equal(t, constants.JobStateDone, waitForFinish(t, svc, job.ID))

	records, err := svc.GetRedactionRecords(ctx, job.ID)
	require.NoError(t, err)
	require.NotEmpty(t, records)

	kinds := make(map[string]bool)
	for i, rec := range records {
		kinds[rec.Kind] = true
		assert.NotEmpty(t, rec.ReplacementToken)
		assert.Greater(t, rec.Length, 0)
		if i > 0 {
			assert.GreaterOrEqual(t, rec.Position, records[i-1].Position,
				"Records are ordered by position in the original text")
		}
	}
	assert.True(t, kinds[constants.CategorySSN])
	assert.True(t, kinds[constants.CategoryEmail])
	assert.True(t, kinds[constants.CategoryPhone])
}

func TestPipelineSecurityStatus(t *testing.T) {
	svc := newTestPipeline(t)
	ctx := context.Background()

	job, err := svc.AcceptDocument(ctx, "status.pdf", []byte(sampleDocument))
	require.NoError(t, err)
	require.Equal(t, constants.JobStateDone, waitForFinish(t, svc, job.ID))

	status, err := svc.GetSecurityStatus(ctx, job.ID)
	require.NoError(t, err)
	assert.True(t, status.IsEncrypted)
	assert.True(t, status.IntegrityVerified)
	assert.GreaterOrEqual(t, status.RedactedItemsCount, 3)
	assert.Equal(t, 1, status.RedactionSummary[constants.CategorySSN])
}

func TestPipelineDeleteDocument(t *testing.T) {
	svc := newTestPipeline(t)
	ctx := context.Background()

	job, err := svc.AcceptDocument(ctx, "delete-me.pdf", []byte(sampleDocument))
	require.NoError(t, err)
	require.Equal(t, constants.JobStateDone, waitForFinish(t, svc, job.ID))

	require.NoError(t, svc.DeleteDocument(ctx, job.ID))
	_, err = svc.GetJob(ctx, job.ID)
	assert.True(t, utils.IsNotFoundError(err))
	_, err = svc.GetRedactedDocument(ctx, job.ID)
	assert.True(t, utils.IsNotFoundError(err))

	assert.Error(t, svc.DeleteDocument(ctx, job.ID), "Double delete reports not found")
}

func TestPipelinePurgeExpired(t *testing.T) {
	svc := newTestPipeline(t)
	ctx := context.Background()

	job, err := svc.AcceptDocument(ctx, "retained.pdf", []byte(sampleDocument))
	require.NoError(t, err)
	require.Equal(t, constants.JobStateDone, waitForFinish(t, svc, job.ID))

	// A freshly finished job is within the retention window.
	purged, err := svc.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, purged)

	_, err = svc.GetJob(ctx, job.ID)
	assert.NoError(t, err)
}
