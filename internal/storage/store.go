// Package storage provides at-rest storage for processing jobs and their
// encrypted document artifacts. The pipeline only ever hands this package
// encrypted payloads; plaintext never crosses the storage boundary.
//
// The bundled implementation is an in-memory store scoped to the server
// process. Persistence beyond the process lifetime is a deployment concern
// satisfied by swapping the ArtifactStore implementation.
package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/constants"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/models"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/utils"
)

// ArtifactRecord bundles everything stored for one processed document. Text
// and document content are encrypted payloads; only shape metadata is kept in
// the clear.
type ArtifactRecord struct {
	// JobID identifies the processing job that produced these artifacts.
	JobID uuid.UUID

	// EncryptedText is the redacted transcript, encrypted at rest.
	EncryptedText *models.EncryptedPayload

	// EncryptedDocument is the visually redacted PDF, encrypted at rest.
	EncryptedDocument *models.EncryptedPayload

	// Variant, PageCount, and TemplateName describe the visual rendition.
	// See models.VisuallyRedactedDocument.
	Variant      string
	PageCount    int
	TemplateName string

	// Items lists the redaction records for the document. OriginalValue is
	// sensitive; this field must never be serialized to clients verbatim.
	Items []models.RedactionItem

	// ExtractionMethod and ExtractionQuality describe how the transcript was
	// obtained.
	ExtractionMethod  string
	ExtractionQuality string

	// StoredAt records when the artifacts were written.
	StoredAt time.Time
}

// ArtifactStore stores processing jobs and their encrypted artifacts.
type ArtifactStore interface {
	// CreateJob registers a new processing job.
	CreateJob(ctx context.Context, job *models.ProcessingJob) error

	// GetJob retrieves a job by ID.
	GetJob(ctx context.Context, id uuid.UUID) (*models.ProcessingJob, error)

	// UpdateJob replaces the stored job state.
	UpdateJob(ctx context.Context, job *models.ProcessingJob) error

	// SaveArtifacts stores the encrypted artifacts for a completed job.
	SaveArtifacts(ctx context.Context, record *ArtifactRecord) error

	// GetArtifacts retrieves the artifacts for a job.
	GetArtifacts(ctx context.Context, jobID uuid.UUID) (*ArtifactRecord, error)

	// DeleteJob removes a job and any artifacts it produced.
	DeleteJob(ctx context.Context, id uuid.UUID) error

	// PurgeFinishedBefore removes finished jobs last updated before the cutoff
	// and returns how many were removed.
	PurgeFinishedBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// MemoryStore is a mutex-guarded in-memory ArtifactStore.
type MemoryStore struct {
	mu        sync.RWMutex
	jobs      map[uuid.UUID]*models.ProcessingJob
	artifacts map[uuid.UUID]*ArtifactRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		jobs:      make(map[uuid.UUID]*models.ProcessingJob),
		artifacts: make(map[uuid.UUID]*ArtifactRecord),
	}
}

// CreateJob registers a new processing job.
func (s *MemoryStore) CreateJob(ctx context.Context, job *models.ProcessingJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.ID]; exists {
		return utils.NewBadRequestError("job already exists")
	}
	s.jobs[job.ID] = cloneJob(job)
	return nil
}

// GetJob retrieves a job by ID.
func (s *MemoryStore) GetJob(ctx context.Context, id uuid.UUID) (*models.ProcessingJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, utils.NewNotFoundError("job", id)
	}
	return cloneJob(job), nil
}

// UpdateJob replaces the stored job state.
func (s *MemoryStore) UpdateJob(ctx context.Context, job *models.ProcessingJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[job.ID]; !ok {
		return utils.NewNotFoundError("job", job.ID)
	}
	job.UpdatedAt = time.Now()
	s.jobs[job.ID] = cloneJob(job)
	return nil
}

// SaveArtifacts stores the encrypted artifacts for a completed job.
func (s *MemoryStore) SaveArtifacts(ctx context.Context, record *ArtifactRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[record.JobID]; !ok {
		return utils.NewNotFoundError("job", record.JobID)
	}
	stored := *record
	stored.StoredAt = time.Now()
	s.artifacts[record.JobID] = &stored
	return nil
}

// GetArtifacts retrieves the artifacts for a job.
func (s *MemoryStore) GetArtifacts(ctx context.Context, jobID uuid.UUID) (*ArtifactRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.artifacts[jobID]
	if !ok {
		return nil, utils.NewNotFoundError("artifacts", jobID)
	}
	copied := *record
	return &copied, nil
}

// DeleteJob removes a job and any artifacts it produced.
func (s *MemoryStore) DeleteJob(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[id]; !ok {
		return utils.NewNotFoundError("job", id)
	}
	delete(s.jobs, id)
	delete(s.artifacts, id)
	return nil
}

// PurgeFinishedBefore removes finished jobs last updated before the cutoff.
func (s *MemoryStore) PurgeFinishedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	purged := 0
	for id, job := range s.jobs {
		finished := job.State == constants.JobStateDone || job.State == constants.JobStateError
		if finished && job.UpdatedAt.Before(cutoff) {
			delete(s.jobs, id)
			delete(s.artifacts, id)
			purged++
		}
	}
	return purged, nil
}

func cloneJob(job *models.ProcessingJob) *models.ProcessingJob {
	copied := *job
	return &copied
}
