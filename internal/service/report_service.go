package service

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jdvillanueva/brgy-health-api/internal/models"
	appErrors "github.com/jdvillanueva/brgy-health-api/pkg/errors"
	"github.com/jdvillanueva/brgy-health-api/pkg/jobs"
)

type jobDispatcher interface {
	Enqueue(job jobs.Job) error
}

type exportGenerator interface {
	Generate(ctx context.Context, job *models.ReportJob) (*ExportResult, error)
	ParseToken(token string) (jobID, relPath string, expiresAt time.Time, err error)
	Open(relPath string) (*os.File, error)
	Cleanup(ttl time.Duration) ([]string, error)
}

// ReportDownload aggregates resolved download data.
type ReportDownload struct {
	File      *os.File
	Filename  string
	ExpiresAt time.Time
}

// ReportService orchestrates export job lifecycle. Jobs are held in memory
// only; a process restart forgets anything not yet downloaded.
type ReportService struct {
	queue    jobDispatcher
	exporter exportGenerator
	logger   *zap.Logger
	now      func() time.Time

	mu   sync.Mutex
	jobs map[string]*models.ReportJob
}

// NewReportService constructs the report service.
func NewReportService(queue jobDispatcher, exporter exportGenerator, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		queue:    queue,
		exporter: exporter,
		logger:   logger,
		now:      time.Now,
		jobs:     make(map[string]*models.ReportJob),
	}
}

// SetQueue attaches the dispatcher. The queue's handler is this service's
// Process method, so the two are built in turn and joined here.
func (s *ReportService) SetQueue(queue jobDispatcher) {
	s.queue = queue
}

// CreateJob registers an export job and queues it for processing.
func (s *ReportService) CreateJob(ctx context.Context, reportType models.ReportType, params models.ReportJobParams, createdBy string) (*models.ReportJob, error) {
	switch reportType {
	case models.ReportTypeRecords, models.ReportTypeResidents, models.ReportTypeSummary:
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported report type")
	}
	switch params.Format {
	case models.ReportFormatCSV, models.ReportFormatPDF:
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported report format")
	}

	job := &models.ReportJob{
		ID:        uuid.NewString(),
		Type:      reportType,
		Params:    params,
		Status:    models.ReportStatusQueued,
		CreatedBy: createdBy,
		CreatedAt: s.now().UTC(),
	}
	if s.queue == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "export queue not running")
	}
	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: string(job.Type)}); err != nil {
		s.markFailed(job.ID, "failed to enqueue job")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue report job")
	}
	return s.snapshot(job.ID), nil
}

// GetJob returns a copy of the job's current state.
func (s *ReportService) GetJob(id string) (*models.ReportJob, error) {
	job := s.snapshot(id)
	if job == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "report job not found")
	}
	return job, nil
}

// Process is the queue handler: it renders and stores the export, then
// records the signed download URL on the job.
func (s *ReportService) Process(ctx context.Context, queued jobs.Job) error {
	s.mu.Lock()
	job, ok := s.jobs[queued.ID]
	if !ok {
		s.mu.Unlock()
		s.logger.Warn("queued report job unknown", zap.String("job_id", queued.ID))
		return nil
	}
	job.Status = models.ReportStatusProcessing
	working := *job
	s.mu.Unlock()

	result, err := s.exporter.Generate(ctx, &working)
	if err != nil {
		s.markFailed(queued.ID, err.Error())
		return err
	}

	finished := s.now().UTC()
	s.mu.Lock()
	if job, ok := s.jobs[queued.ID]; ok {
		job.Status = models.ReportStatusFinished
		job.ResultURL = &result.URL
		job.FinishedAt = &finished
	}
	s.mu.Unlock()
	return nil
}

// ResolveDownload validates a signed token and opens the stored file.
func (s *ReportService) ResolveDownload(token string) (*ReportDownload, error) {
	_, relPath, expiresAt, err := s.exporter.ParseToken(token)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download token")
	}
	file, err := s.exporter.Open(relPath)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export file not found")
	}
	return &ReportDownload{
		File:      file,
		Filename:  filepath.Base(relPath),
		ExpiresAt: expiresAt,
	}, nil
}

// Cleanup drops stored files older than ttl and forgets finished jobs
// whose files are gone.
func (s *ReportService) Cleanup(ttl time.Duration) {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	removed, err := s.exporter.Cleanup(ttl)
	if err != nil {
		s.logger.Warn("export cleanup failed", zap.Error(err))
		return
	}
	if len(removed) > 0 {
		s.logger.Info("export files cleaned up", zap.Int("count", len(removed)))
	}
	cutoff := s.now().Add(-ttl)
	s.mu.Lock()
	for id, job := range s.jobs {
		if job.FinishedAt != nil && job.FinishedAt.Before(cutoff) {
			delete(s.jobs, id)
		}
	}
	s.mu.Unlock()
}

func (s *ReportService) markFailed(id, message string) {
	finished := s.now().UTC()
	s.mu.Lock()
	if job, ok := s.jobs[id]; ok {
		job.Status = models.ReportStatusFailed
		job.ErrorMessage = &message
		job.FinishedAt = &finished
	}
	s.mu.Unlock()
}

func (s *ReportService) snapshot(id string) *models.ReportJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil
	}
	copied := *job
	return &copied
}
