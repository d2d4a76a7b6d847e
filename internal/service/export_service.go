package service

import (
	"fmt"
	"os"

	"github.com/noah-isme/unischedule/internal/domain"
	"github.com/noah-isme/unischedule/pkg/export"
	"github.com/noah-isme/unischedule/pkg/storage"
)

// ExportService renders a solve result into a downloadable file and a
// signed URL referencing it, pairing pkg/export.{CSV,PDF}Exporter with
// pkg/storage for persistence and token signing.
type ExportService struct {
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	storage *storage.LocalStorage
	signer  *storage.SignedURLSigner
}

// NewExportService wires the exporters, file storage and URL signer.
func NewExportService(csv *export.CSVExporter, pdf *export.PDFExporter, fs *storage.LocalStorage, signer *storage.SignedURLSigner) *ExportService {
	return &ExportService{csv: csv, pdf: pdf, storage: fs, signer: signer}
}

// Format selects the rendered export file type.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// Export renders result as the requested format, persists it and returns
// a signed download token together with the stored file name.
func (s *ExportService) Export(scheduleID string, result domain.SolveResult, format Format) (token string, filename string, err error) {
	dataset := toDataset(result)

	var rendered []byte
	switch format {
	case FormatCSV:
		filename = fmt.Sprintf("%s.csv", scheduleID)
		rendered, err = s.csv.Render(dataset)
	case FormatPDF:
		filename = fmt.Sprintf("%s.pdf", scheduleID)
		rendered, err = s.pdf.Render(dataset, "Schedule "+scheduleID)
	default:
		return "", "", fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return "", "", fmt.Errorf("render export: %w", err)
	}

	if _, err = s.storage.Save(filename, rendered); err != nil {
		return "", "", fmt.Errorf("persist export: %w", err)
	}

	token, _, err = s.signer.Generate(scheduleID, filename)
	if err != nil {
		return "", "", fmt.Errorf("sign export url: %w", err)
	}
	return token, filename, nil
}

// Open resolves a signed token back to an open file handle and its name.
func (s *ExportService) Open(token string) (*os.File, string, error) {
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", fmt.Errorf("invalid export token: %w", err)
	}
	f, err := s.storage.Open(relPath)
	if err != nil {
		return nil, "", err
	}
	return f, relPath, nil
}

func toDataset(result domain.SolveResult) export.Dataset {
	headers := []string{"course_id", "timeslot_id", "room_id", "teacher_id"}
	rows := make([]map[string]string, 0, len(result.Assignments))
	for _, a := range result.Assignments {
		rows = append(rows, map[string]string{
			"course_id":   string(a.CourseID),
			"timeslot_id": string(a.TimeslotID),
			"room_id":     string(a.RoomID),
			"teacher_id":  string(a.TeacherID),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
