package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tripgrid/trip-logistics-api/internal/dto"
	"github.com/tripgrid/trip-logistics-api/internal/models"
	appErrors "github.com/tripgrid/trip-logistics-api/pkg/errors"
	"github.com/tripgrid/trip-logistics-api/pkg/export"
	"github.com/tripgrid/trip-logistics-api/pkg/jobs"
	"github.com/tripgrid/trip-logistics-api/pkg/storage"
)

const exportJobType = "export"

// ExportService renders transport lists and calendar grids into
// downloadable files through a background worker pool.
type ExportService struct {
	transports calendarTransportReader
	people     calendarPersonReader
	calendar   *CalendarService
	store      *storage.LocalStorage
	signer     *storage.SignedURLSigner
	csv        *export.CSVExporter
	pdf        *export.PDFExporter
	queue      *jobs.Queue
	validate   *validator.Validate
	logger     *zap.Logger

	mu      sync.RWMutex
	entries map[string]*models.ExportJob
}

// ExportServiceConfig tunes the export worker pool.
type ExportServiceConfig struct {
	Workers    int
	QueueSize  int
	MaxRetries int
	RetryDelay time.Duration
}

// NewExportService wires the export pipeline.
func NewExportService(
	transports calendarTransportReader,
	people calendarPersonReader,
	calendar *CalendarService,
	store *storage.LocalStorage,
	signer *storage.SignedURLSigner,
	cfg ExportServiceConfig,
	logger *zap.Logger,
) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ExportService{
		transports: transports,
		people:     people,
		calendar:   calendar,
		store:      store,
		signer:     signer,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
		validate:   validator.New(),
		logger:     logger,
		entries:    make(map[string]*models.ExportJob),
	}
	s.queue = jobs.NewQueue(exportJobType, s.process, jobs.QueueConfig{
		Workers:    cfg.Workers,
		BufferSize: cfg.QueueSize,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Logger:     logger,
	})
	return s
}

// Start launches the export workers.
func (s *ExportService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the export workers.
func (s *ExportService) Stop() {
	s.queue.Stop()
}

// Create validates and enqueues an export job.
func (s *ExportService) Create(ctx context.Context, tripID string, req dto.CreateExportRequest) (*models.ExportJob, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export request")
	}
	kind := models.ExportKind(req.Kind)
	if kind == models.ExportKindCalendar {
		if _, err := time.Parse("2006-01", req.Month); err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "month is required for calendar exports (YYYY-MM)")
		}
	}

	job := &models.ExportJob{
		ID:        uuid.NewString(),
		TripID:    tripID,
		Kind:      kind,
		Format:    models.ExportFormat(req.Format),
		Month:     req.Month,
		Status:    models.ExportJobQueued,
		CreatedAt: time.Now().UTC(),
	}
	s.mu.Lock()
	s.entries[job.ID] = job
	s.mu.Unlock()

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: exportJobType, Payload: job.ID}); err != nil {
		s.fail(job.ID, err)
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "export queue is full")
	}
	s.logger.Info("export enqueued",
		zap.String("job_id", job.ID),
		zap.String("trip_id", tripID),
		zap.String("kind", req.Kind),
		zap.String("format", req.Format))
	return s.snapshot(job.ID), nil
}

// Get returns the current state of an export job.
func (s *ExportService) Get(ctx context.Context, id string) (*models.ExportJob, error) {
	job := s.snapshot(id)
	if job == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}
	return job, nil
}

// Download resolves a signed token into the finished file.
func (s *ExportService) Download(ctx context.Context, id, token string) (*os.File, string, error) {
	job := s.snapshot(id)
	if job == nil {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}
	if job.Status != models.ExportJobCompleted {
		return nil, "", appErrors.Clone(appErrors.ErrConflict, "export is not finished")
	}
	subject, relPath, _, err := s.signer.Parse(token, false)
	if err != nil || subject != id || relPath != job.FilePath {
		return nil, "", appErrors.Clone(appErrors.ErrLinkInvalid, "download token rejected")
	}
	f, err := s.store.Open(job.FilePath)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open export file")
	}
	return f, job.FilePath, nil
}

// Cleanup removes export files older than ttl and forgets their jobs.
func (s *ExportService) Cleanup(ttl time.Duration) {
	removed, err := s.store.CleanupOlderThan(ttl)
	if err != nil {
		s.logger.Warn("export cleanup failed", zap.Error(err))
		return
	}
	if len(removed) == 0 {
		return
	}
	s.mu.Lock()
	for id, job := range s.entries {
		for _, name := range removed {
			if job.FilePath == name {
				delete(s.entries, id)
			}
		}
	}
	s.mu.Unlock()
	s.logger.Info("export cleanup", zap.Int("removed", len(removed)))
}

func (s *ExportService) process(ctx context.Context, job jobs.Job) error {
	id, _ := job.Payload.(string)
	entry := s.snapshot(id)
	if entry == nil {
		return fmt.Errorf("unknown export job %s", id)
	}
	s.transition(id, func(j *models.ExportJob) {
		j.Status = models.ExportJobRunning
		j.Error = ""
	})

	data, ext, err := s.render(ctx, entry)
	if err != nil {
		s.fail(id, err)
		return err
	}

	filename := fmt.Sprintf("%s_%s_%s.%s", strings.ToLower(string(entry.Kind)), entry.TripID, id[:8], ext)
	if _, err := s.store.Save(filename, data); err != nil {
		s.fail(id, err)
		return err
	}
	token, _, err := s.signer.Generate(id, filename)
	if err != nil {
		s.fail(id, err)
		return err
	}

	now := time.Now().UTC()
	s.transition(id, func(j *models.ExportJob) {
		j.Status = models.ExportJobCompleted
		j.FilePath = filename
		j.DownloadURL = fmt.Sprintf("/exports/%s/download?token=%s", id, token)
		j.CompletedAt = &now
	})
	s.logger.Info("export completed", zap.String("job_id", id), zap.String("file", filename))
	return nil
}

func (s *ExportService) render(ctx context.Context, job *models.ExportJob) ([]byte, string, error) {
	switch job.Kind {
	case models.ExportKindTransports:
		dataset, err := s.transportDataset(ctx, job.TripID)
		if err != nil {
			return nil, "", err
		}
		if job.Format == models.ExportFormatPDF {
			data, err := s.pdf.RenderTable(*dataset, fmt.Sprintf("Transports %s", job.TripID))
			return data, "pdf", err
		}
		data, err := s.csv.Render(*dataset)
		return data, "csv", err
	case models.ExportKindCalendar:
		month, _, err := s.calendar.Month(ctx, job.TripID, job.Month)
		if err != nil {
			return nil, "", err
		}
		if job.Format == models.ExportFormatPDF {
			data, err := s.pdf.RenderCalendar(calendarDocument(month))
			return data, "pdf", err
		}
		data, err := s.csv.Render(calendarDataset(month))
		return data, "csv", err
	default:
		return nil, "", fmt.Errorf("unsupported export kind %q", job.Kind)
	}
}

func (s *ExportService) transportDataset(ctx context.Context, tripID string) (*export.Dataset, error) {
	transports, err := s.transports.List(ctx, models.TransportFilter{TripID: tripID})
	if err != nil {
		return nil, fmt.Errorf("failed to load transports: %w", err)
	}
	people, err := s.people.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to load people: %w", err)
	}
	names := make(map[string]string, len(people))
	for _, p := range people {
		names[p.ID] = p.Name
	}

	dataset := &export.Dataset{
		Headers: []string{"person", "type", "datetime", "location", "needs_pickup", "driver_id"},
	}
	for _, t := range transports {
		driver := ""
		if t.DriverID != nil {
			driver = *t.DriverID
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"person":       names[t.PersonID],
			"type":         string(t.Type),
			"datetime":     t.Datetime.UTC().Format(time.RFC3339),
			"location":     t.Location,
			"needs_pickup": fmt.Sprintf("%t", t.NeedsPickup),
			"driver_id":    driver,
		})
	}
	return dataset, nil
}

func calendarDocument(month *models.CalendarMonth) export.CalendarDocument {
	doc := export.CalendarDocument{
		Title:    fmt.Sprintf("Calendar %s", month.Month),
		Weekdays: []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
	}
	for i := 0; i < len(month.Days); i += 7 {
		week := make([]export.CalendarCell, 0, 7)
		for _, day := range month.Days[i:min(i+7, len(month.Days))] {
			cell := export.CalendarCell{
				Day:    strings.TrimPrefix(day.Date[8:], "0"),
				Muted:  !day.InMonth,
				Hidden: day.HiddenCount,
			}
			for _, ev := range day.Events {
				if ev.ShowLabel {
					cell.Entries = append(cell.Entries, ev.Label)
				}
			}
			for _, tr := range day.Transports {
				cell.Entries = append(cell.Entries, tr.Label)
			}
			week = append(week, cell)
		}
		doc.Weeks = append(doc.Weeks, week)
	}
	return doc
}

func calendarDataset(month *models.CalendarMonth) export.Dataset {
	dataset := export.Dataset{Headers: []string{"date", "kind", "label"}}
	for _, day := range month.Days {
		if !day.InMonth {
			continue
		}
		for _, ev := range day.Events {
			dataset.Rows = append(dataset.Rows, map[string]string{
				"date":  day.Date,
				"kind":  "stay",
				"label": ev.Label,
			})
		}
		for _, tr := range day.Transports {
			dataset.Rows = append(dataset.Rows, map[string]string{
				"date":  day.Date,
				"kind":  strings.ToLower(string(tr.Type)),
				"label": tr.Label,
			})
		}
	}
	return dataset
}

func (s *ExportService) snapshot(id string) *models.ExportJob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.entries[id]
	if !ok {
		return nil
	}
	copied := *job
	return &copied
}

func (s *ExportService) transition(id string, mutate func(*models.ExportJob)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.entries[id]; ok {
		mutate(job)
	}
}

func (s *ExportService) fail(id string, cause error) {
	s.transition(id, func(j *models.ExportJob) {
		j.Status = models.ExportJobFailed
		j.Error = cause.Error()
	})
}
