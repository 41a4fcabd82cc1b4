// Package service implements the document ingestion pipeline: text
// extraction, PII redaction, visual redaction, and encrypted storage of the
// resulting artifacts. The service layer owns stage ordering and job state
// transitions; the stage mechanics live in their own packages.
package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/constants"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/extraction"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/models"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/redaction"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/security"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/storage"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/utils"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/visual"
)

// RedactionRecord is the client-safe projection of one redacted value. The
// original value is deliberately absent.
type RedactionRecord struct {
	Kind             string `json:"kind"`
	ReplacementToken string `json:"replacement_token"`
	Position         int    `json:"position"`
	Length           int    `json:"length"`
}

// RedactedDocument is a decrypted, integrity-verified redacted PDF ready to
// serve.
type RedactedDocument struct {
	Content      []byte
	Variant      string
	PageCount    int
	TemplateName string
}

// PipelineService runs documents through the ingestion pipeline and answers
// queries about the results.
type PipelineService struct {
	chain      *extraction.Chain
	redactor   *redaction.Redactor
	visualizer *visual.Redactor
	crypto     *security.Service
	store      storage.ArtifactStore

	pipelineTimeout time.Duration
}

// NewPipelineService creates the pipeline service with its stage
// collaborators.
func NewPipelineService(
	chain *extraction.Chain,
	redactor *redaction.Redactor,
	visualizer *visual.Redactor,
	crypto *security.Service,
	store storage.ArtifactStore,
	pipelineTimeout time.Duration,
) *PipelineService {
	if pipelineTimeout <= 0 {
		pipelineTimeout = constants.PipelineTimeout
	}
	return &PipelineService{
		chain:           chain,
		redactor:        redactor,
		visualizer:      visualizer,
		crypto:          crypto,
		store:           store,
		pipelineTimeout: pipelineTimeout,
	}
}

// AcceptDocument registers a new processing job for an uploaded document and
// starts processing it in the background. The job is returned immediately so
// the caller can begin polling.
func (s *PipelineService) AcceptDocument(ctx context.Context, fileName string, content []byte) (*models.ProcessingJob, error) {
	job := models.NewProcessingJob(utils.SanitizeFileName(fileName))
	if err := s.store.CreateJob(ctx, job); err != nil {
		return nil, err
	}

	log.Info().
		Str("job_id", job.ID.String()).
		Str("file_name", job.FileName).
		Int("size", len(content)).
		Msg("Accepted document for processing")

	// The background goroutine works on its own copy so the returned job is
	// a stable snapshot the caller can serialize while processing runs.
	worker := *job
	go s.process(&worker, content)

	return job, nil
}

// process runs the full pipeline for one document. It owns its own context;
// the upload request that spawned it has already returned.
func (s *PipelineService) process(job *models.ProcessingJob, content []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), s.pipelineTimeout)
	defer cancel()

	start := time.Now()

	// Extraction.
	s.advance(ctx, job, 10)
	extracted := s.chain.Extract(ctx, content, job.FileName)
	if !extracted.Success || !extracted.HasValidContent {
		log.Warn().
			Str("job_id", job.ID.String()).
			Str("method", extracted.Method).
			Str("error", extracted.Error).
			Msg("Extraction exhausted, refusing to redact placeholder text")
		s.fail(ctx, job, "The document text could not be extracted")
		return
	}
	s.advance(ctx, job, 40)

	// Redaction. Detection always runs against the extracted original text.
	rr := s.redactor.Redact(extracted.Text, job.FileName)
	utils.LogRedaction(job.ID.String(), job.FileName, rr.CategoryCounts(), len(rr.Items))
	if leaked := s.redactor.VerifyRedaction(rr.RedactedText); len(leaked) > 0 {
		log.Error().
			Str("job_id", job.ID.String()).
			Strs("categories", leaked).
			Msg("Sensitive values survived redaction, refusing to publish transcript")
		s.fail(ctx, job, "The document could not be fully redacted")
		return
	}
	s.advance(ctx, job, 60)

	// Visual redaction.
	doc, err := s.visualizer.RedactDocument(content, rr, job.FileName)
	if err != nil {
		log.Error().Err(err).Str("job_id", job.ID.String()).Msg("Visual redaction failed")
		s.fail(ctx, job, "A redacted document could not be produced")
		return
	}
	s.advance(ctx, job, 80)

	// Encryption and storage. Plaintext artifacts are discarded after this.
	encText, err := s.crypto.EncryptText(rr.RedactedText)
	if err != nil {
		log.Error().Err(err).Str("job_id", job.ID.String()).Msg("Transcript encryption failed")
		s.fail(ctx, job, "The processed document could not be secured")
		return
	}
	encDoc, err := s.crypto.EncryptBinary(doc.Content)
	if err != nil {
		log.Error().Err(err).Str("job_id", job.ID.String()).Msg("Document encryption failed")
		s.fail(ctx, job, "The processed document could not be secured")
		return
	}

	record := &storage.ArtifactRecord{
		JobID:             job.ID,
		EncryptedText:     encText,
		EncryptedDocument: encDoc,
		Variant:           doc.Variant,
		PageCount:         doc.PageCount,
		TemplateName:      doc.TemplateName,
		Items:             rr.Items,
		ExtractionMethod:  extracted.Method,
		ExtractionQuality: extracted.Quality,
	}
	if err := s.store.SaveArtifacts(ctx, record); err != nil {
		log.Error().Err(err).Str("job_id", job.ID.String()).Msg("Artifact storage failed")
		s.fail(ctx, job, "The processed document could not be stored")
		return
	}

	job.State = constants.JobStateDone
	job.Progress = 100
	job.Error = ""
	if err := s.store.UpdateJob(ctx, job); err != nil {
		log.Error().Err(err).Str("job_id", job.ID.String()).Msg("Job completion update failed")
		return
	}

	log.Info().
		Str("job_id", job.ID.String()).
		Str("method", extracted.Method).
		Str("quality", extracted.Quality).
		Str("variant", doc.Variant).
		Int("redacted_items", len(rr.Items)).
		Dur("elapsed", time.Since(start)).
		Msg("Document processing complete")
}

// GetJob returns the current state of a processing job.
func (s *PipelineService) GetJob(ctx context.Context, id uuid.UUID) (*models.ProcessingJob, error) {
	return s.store.GetJob(ctx, id)
}

// GetRedactedDocument decrypts and integrity-checks the stored redacted PDF
// for a completed job.
func (s *PipelineService) GetRedactedDocument(ctx context.Context, id uuid.UUID) (*RedactedDocument, error) {
	record, err := s.requireDone(ctx, id)
	if err != nil {
		return nil, err
	}

	content, err := s.crypto.Decrypt(record.EncryptedDocument)
	if err != nil {
		log.Error().Err(err).Str("job_id", id.String()).Msg("Redacted document retrieval failed")
		return nil, err
	}

	return &RedactedDocument{
		Content:      content,
		Variant:      record.Variant,
		PageCount:    record.PageCount,
		TemplateName: record.TemplateName,
	}, nil
}

// GetSecurityStatus reports the security posture of a completed job's
// artifacts, verifying stored content against its integrity hash.
func (s *PipelineService) GetSecurityStatus(ctx context.Context, id uuid.UUID) (*models.SecurityStatus, error) {
	record, err := s.requireDone(ctx, id)
	if err != nil {
		return nil, err
	}

	verified := true
	if _, err := s.crypto.Decrypt(record.EncryptedText); err != nil {
		verified = false
	}
	if _, err := s.crypto.Decrypt(record.EncryptedDocument); err != nil {
		verified = false
	}

	summary := make(map[string]int)
	for _, item := range record.Items {
		summary[item.Kind]++
	}

	return &models.SecurityStatus{
		IsEncrypted:        true,
		IntegrityVerified:  verified,
		RedactionSummary:   summary,
		RedactedItemsCount: len(record.Items),
	}, nil
}

// GetRedactionRecords returns the client-safe redaction records for a
// completed job, in original-text order.
func (s *PipelineService) GetRedactionRecords(ctx context.Context, id uuid.UUID) ([]RedactionRecord, error) {
	record, err := s.requireDone(ctx, id)
	if err != nil {
		return nil, err
	}

	out := make([]RedactionRecord, 0, len(record.Items))
	for _, item := range record.Items {
		out = append(out, RedactionRecord{
			Kind:             item.Kind,
			ReplacementToken: item.ReplacementToken,
			Position:         item.Position,
			Length:           item.Length,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })

	return out, nil
}

// GetRedactedText decrypts and returns the stored redacted transcript.
func (s *PipelineService) GetRedactedText(ctx context.Context, id uuid.UUID) (string, error) {
	record, err := s.requireDone(ctx, id)
	if err != nil {
		return "", err
	}
	text, err := s.crypto.Decrypt(record.EncryptedText)
	if err != nil {
		log.Error().Err(err).Str("job_id", id.String()).Msg("Redacted transcript retrieval failed")
		return "", err
	}
	return string(text), nil
}

// PurgeExpired removes finished jobs older than the retention window.
func (s *PipelineService) PurgeExpired(ctx context.Context) (int, error) {
	return s.store.PurgeFinishedBefore(ctx, time.Now().Add(-constants.JobRetention))
}

// DeleteDocument removes a job and its stored artifacts.
func (s *PipelineService) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteJob(ctx, id)
}

// requireDone loads the artifacts for a job, rejecting jobs that have not
// completed successfully.
func (s *PipelineService) requireDone(ctx context.Context, id uuid.UUID) (*storage.ArtifactRecord, error) {
	job, err := s.store.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.State != constants.JobStateDone {
		return nil, utils.NewBadRequestError("document processing has not completed")
	}
	return s.store.GetArtifacts(ctx, id)
}

// advance moves a job's progress marker forward.
func (s *PipelineService) advance(ctx context.Context, job *models.ProcessingJob, progress int) {
	job.Progress = progress
	if err := s.store.UpdateJob(ctx, job); err != nil {
		log.Warn().Err(err).Str("job_id", job.ID.String()).Msg("Job progress update failed")
	}
}

// fail marks a job as failed with a user-safe message.
func (s *PipelineService) fail(ctx context.Context, job *models.ProcessingJob, message string) {
	job.State = constants.JobStateError
	job.Error = message
	if err := s.store.UpdateJob(ctx, job); err != nil {
		log.Error().Err(err).Str("job_id", job.ID.String()).Msg("Job failure update failed")
	}
}
