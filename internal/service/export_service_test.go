package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/unischedule/internal/domain"
	"github.com/noah-isme/unischedule/pkg/export"
	"github.com/noah-isme/unischedule/pkg/storage"
)

func newTestExportService(t *testing.T) *ExportService {
	fs, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)
	return NewExportService(export.NewCSVExporter(), export.NewPDFExporter(), fs, signer)
}

func TestExportCSVRoundTrip(t *testing.T) {
	svc := newTestExportService(t)
	result := domain.SolveResult{
		Status: domain.StatusSolved,
		Assignments: []domain.Assignment{
			{CourseID: "c1", TimeslotID: "mon.0", RoomID: "r1", TeacherID: "t1"},
		},
	}

	token, filename, err := svc.Export("sched-1", result, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "sched-1.csv", filename)

	f, name, err := svc.Open(token)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, "sched-1.csv", name)
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	svc := newTestExportService(t)
	_, _, err := svc.Export("sched-1", domain.SolveResult{}, Format("xml"))
	require.Error(t, err)
}
