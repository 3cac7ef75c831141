package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripgrid/trip-logistics-api/internal/dto"
	"github.com/tripgrid/trip-logistics-api/internal/models"
	"github.com/tripgrid/trip-logistics-api/pkg/storage"
)

func newTestExportService(t *testing.T, transports *stubTransportReader, people *stubPersonReader) *ExportService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)
	svc := NewExportService(transports, people, nil, store, signer, ExportServiceConfig{
		Workers:    1,
		RetryDelay: 10 * time.Millisecond,
	}, nil)
	svc.Start(context.Background())
	t.Cleanup(svc.Stop)
	return svc
}

func waitForExport(t *testing.T, svc *ExportService, id string, want models.ExportJobStatus) *models.ExportJob {
	t.Helper()
	var job *models.ExportJob
	require.Eventually(t, func() bool {
		var err error
		job, err = svc.Get(context.Background(), id)
		return err == nil && job.Status == want
	}, 2*time.Second, 10*time.Millisecond, "export never reached %s", want)
	return job
}

func TestExportServiceCreateValidation(t *testing.T) {
	svc := newTestExportService(t, &stubTransportReader{}, &stubPersonReader{})

	_, err := svc.Create(context.Background(), "trip-1", dto.CreateExportRequest{Kind: "SOMETHING", Format: "CSV"})
	require.Error(t, err)

	_, err = svc.Create(context.Background(), "trip-1", dto.CreateExportRequest{Kind: "CALENDAR", Format: "PDF"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "month")
}

func TestExportServiceTransportsCSVPipeline(t *testing.T) {
	transports := &stubTransportReader{transports: []models.Transport{
		{ID: "t1", TripID: "trip-1", PersonID: "p1", Type: models.TransportArrival,
			Datetime: time.Date(2024, time.July, 15, 9, 0, 0, 0, time.UTC),
			Location: "Airport", NeedsPickup: true},
	}}
	people := &stubPersonReader{people: []models.Person{{ID: "p1", TripID: "trip-1", Name: "Alice"}}}
	svc := newTestExportService(t, transports, people)

	job, err := svc.Create(context.Background(), "trip-1", dto.CreateExportRequest{Kind: "TRANSPORTS", Format: "CSV"})
	require.NoError(t, err)
	assert.Equal(t, models.ExportJobQueued, job.Status)

	done := waitForExport(t, svc, job.ID, models.ExportJobCompleted)
	require.NotEmpty(t, done.DownloadURL)
	require.NotNil(t, done.CompletedAt)

	_, token, found := strings.Cut(done.DownloadURL, "token=")
	require.True(t, found)

	file, name, err := svc.Download(context.Background(), job.ID, token)
	require.NoError(t, err)
	defer file.Close()
	assert.True(t, strings.HasSuffix(name, ".csv"))

	content, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Alice")
	assert.Contains(t, string(content), "Airport")
	assert.Contains(t, string(content), "2024-07-15T09:00:00Z")
}

func TestExportServiceDownloadRejectsBadToken(t *testing.T) {
	svc := newTestExportService(t, &stubTransportReader{}, &stubPersonReader{})

	job, err := svc.Create(context.Background(), "trip-1", dto.CreateExportRequest{Kind: "TRANSPORTS", Format: "CSV"})
	require.NoError(t, err)
	waitForExport(t, svc, job.ID, models.ExportJobCompleted)

	_, _, err = svc.Download(context.Background(), job.ID, "forged.token.value.here")
	require.Error(t, err)
}

func TestExportServiceFailureIsRecorded(t *testing.T) {
	transports := &stubTransportReader{err: assert.AnError}
	svc := newTestExportService(t, transports, &stubPersonReader{})

	job, err := svc.Create(context.Background(), "trip-1", dto.CreateExportRequest{Kind: "TRANSPORTS", Format: "CSV"})
	require.NoError(t, err)

	failed := waitForExport(t, svc, job.ID, models.ExportJobFailed)
	assert.NotEmpty(t, failed.Error)
}

func TestExportServiceGetUnknownJob(t *testing.T) {
	svc := newTestExportService(t, &stubTransportReader{}, &stubPersonReader{})

	_, err := svc.Get(context.Background(), "nope")
	require.Error(t, err)
}
