package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/constants"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/models"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/utils"
)

func newStoredJob(t *testing.T, store *MemoryStore) *models.ProcessingJob {
	t.Helper()
	job := models.NewProcessingJob("declaration.pdf")
	require.NoError(t, store.CreateJob(context.Background(), job))
	return job
}

func TestMemoryStoreJobLifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	job := newStoredJob(t, store)

	got, err := store.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, got.ID)
	assert.Equal(t, constants.JobStateProcessing, got.State)

	got.State = constants.JobStateDone
	got.Progress = 100
	require.NoError(t, store.UpdateJob(ctx, got))

	updated, err := store.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.JobStateDone, updated.State)
	assert.Equal(t, 100, updated.Progress)
	assert.False(t, updated.UpdatedAt.IsZero())

	require.NoError(t, store.DeleteJob(ctx, job.ID))
	_, err = store.GetJob(ctx, job.ID)
	assert.True(t, utils.IsNotFoundError(err))
}

func TestMemoryStoreDuplicateCreateRejected(t *testing.T) {
	store := NewMemoryStore()
	job := newStoredJob(t, store)

	err := store.CreateJob(context.Background(), job)
	assert.Error(t, err)
}

func TestMemoryStoreNotFoundErrors(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	missing := uuid.New()

	_, err := store.GetJob(ctx, missing)
	assert.True(t, utils.IsNotFoundError(err))

	err = store.UpdateJob(ctx, &models.ProcessingJob{ID: missing})
	assert.True(t, utils.IsNotFoundError(err))

	_, err = store.GetArtifacts(ctx, missing)
	assert.True(t, utils.IsNotFoundError(err))

	err = store.DeleteJob(ctx, missing)
	assert.True(t, utils.IsNotFoundError(err))

	err = store.SaveArtifacts(ctx, &ArtifactRecord{JobID: missing})
	assert.True(t, utils.IsNotFoundError(err), "Artifacts require an existing job")
}

func TestMemoryStoreArtifacts(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	job := newStoredJob(t, store)

	record := &ArtifactRecord{
		JobID:             job.ID,
		EncryptedText:     &models.EncryptedPayload{Ciphertext: "abc"},
		EncryptedDocument: &models.EncryptedPayload{Ciphertext: "def"},
		Variant:           constants.VisualVariantOverlay,
		PageCount:         2,
		TemplateName:      "generic",
		Items:             []models.RedactionItem{{Kind: constants.CategorySSN}},
		ExtractionMethod:  constants.ExtractionMethodPrimary,
		ExtractionQuality: constants.QualityHigh,
	}
	require.NoError(t, store.SaveArtifacts(ctx, record))

	got, err := store.GetArtifacts(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "abc", got.EncryptedText.Ciphertext)
	assert.Equal(t, constants.VisualVariantOverlay, got.Variant)
	assert.Equal(t, 2, got.PageCount)
	assert.False(t, got.StoredAt.IsZero(), "SaveArtifacts stamps the storage time")

	// Deleting the job removes its artifacts too.
	require.NoError(t, store.DeleteJob(ctx, job.ID))
	_, err = store.GetArtifacts(ctx, job.ID)
	assert.True(t, utils.IsNotFoundError(err))
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	job := newStoredJob(t, store)

	got, err := store.GetJob(ctx, job.ID)
	require.NoError(t, err)
	got.State = constants.JobStateError
	got.Error = "mutated by caller"

	fresh, err := store.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.JobStateProcessing, fresh.State,
		"Caller mutations must not leak into the store")
	assert.Empty(t, fresh.Error)
}

func TestMemoryStorePurgeFinishedBefore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	stale := func(state string) *models.ProcessingJob {
		job := newStoredJob(t, store)
		job.State = state
		require.NoError(t, store.UpdateJob(ctx, job))
		// Backdate past the cutoff by writing directly; UpdateJob stamps now.
		store.mu.Lock()
		store.jobs[job.ID].UpdatedAt = time.Now().Add(-48 * time.Hour)
		store.mu.Unlock()
		return job
	}

	doneStale := stale(constants.JobStateDone)
	errorStale := stale(constants.JobStateError)
	processingStale := stale(constants.JobStateProcessing)
	doneFresh := newStoredJob(t, store)
	doneFresh.State = constants.JobStateDone
	require.NoError(t, store.UpdateJob(ctx, doneFresh))

	purged, err := store.PurgeFinishedBefore(ctx, time.Now().Add(-constants.JobRetention))
	require.NoError(t, err)
	assert.Equal(t, 2, purged, "Only stale finished jobs are purged")

	_, err = store.GetJob(ctx, doneStale.ID)
	assert.True(t, utils.IsNotFoundError(err))
	_, err = store.GetJob(ctx, errorStale.ID)
	assert.True(t, utils.IsNotFoundError(err))

	_, err = store.GetJob(ctx, processingStale.ID)
	assert.NoError(t, err, "In-flight jobs survive the sweep regardless of age")
	_, err = store.GetJob(ctx, doneFresh.ID)
	assert.NoError(t, err, "Recently finished jobs survive the sweep")
}
