package service

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jdvillanueva/brgy-health-api/internal/models"
	"github.com/jdvillanueva/brgy-health-api/pkg/export"
	"github.com/jdvillanueva/brgy-health-api/pkg/storage"
)

type exportRecordRepository interface {
	List(ctx context.Context) ([]models.HealthRecordDetail, error)
}

type exportResidentRepository interface {
	List(ctx context.Context, filter models.ResidentFilter) ([]models.Resident, int, error)
}

type exportSummaryBuilder interface {
	Summary(ctx context.Context) (*models.AnalyticsSummary, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	RelativePath string
	Token        string
	URL          string
	Format       models.ReportFormat
	ExpiresAt    time.Time
}

// ExportService builds report datasets and persists rendered files.
type ExportService struct {
	records   exportRecordRepository
	residents exportResidentRepository
	analytics exportSummaryBuilder
	storage   fileStorage
	csv       csvRenderer
	pdf       pdfRenderer
	signer    *storage.SignedURLSigner
	logger    *zap.Logger
	cfg       ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(records exportRecordRepository, residents exportResidentRepository, analytics exportSummaryBuilder, store fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		records:   records,
		residents: residents,
		analytics: analytics,
		storage:   store,
		csv:       csv,
		pdf:       pdf,
		signer:    signer,
		logger:    logger,
		cfg:       cfg,
	}
}

// Generate builds the dataset for the job and stores the rendered export.
func (s *ExportService) Generate(ctx context.Context, job *models.ReportJob) (*ExportResult, error) {
	if job == nil {
		return nil, fmt.Errorf("job nil")
	}
	dataset, title, err := s.buildDataset(ctx, job)
	if err != nil {
		return nil, err
	}

	var payload []byte
	switch job.Params.Format {
	case models.ReportFormatCSV:
		payload, err = s.csv.Render(dataset)
	case models.ReportFormatPDF:
		payload, err = s.pdf.Render(dataset, title)
	default:
		err = fmt.Errorf("unsupported format %s", job.Params.Format)
	}
	if err != nil {
		return nil, err
	}

	filename := s.buildFilename(job)
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.signer.Generate(job.ID, relPath)
	if err != nil {
		return nil, err
	}
	signedURL := strings.TrimRight(s.cfg.APIPrefix, "/")
	if signedURL == "" {
		signedURL = "/api/v1"
	}
	signedURL = fmt.Sprintf("%s/exports/download/%s", signedURL, token)

	return &ExportResult{
		RelativePath: relPath,
		Token:        token,
		URL:          signedURL,
		Format:       job.Params.Format,
		ExpiresAt:    expiresAt,
	}, nil
}

// ParseToken validates download token metadata.
func (s *ExportService) ParseToken(token string) (jobID, relPath string, expiresAt time.Time, err error) {
	return s.signer.Parse(token)
}

// Open returns a handle to the stored file.
func (s *ExportService) Open(relPath string) (*os.File, error) {
	return s.storage.Open(relPath)
}

// Cleanup removes files older than ttl (defaults to configured ResultTTL
// when ttl <= 0).
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(ttl)
}

func (s *ExportService) buildFilename(job *models.ReportJob) string {
	timestamp := time.Now().UTC().Format("20060102_150405")
	return fmt.Sprintf("%s_%s.%s", strings.ToLower(string(job.Type)), timestamp, job.Params.Format)
}

func (s *ExportService) buildDataset(ctx context.Context, job *models.ReportJob) (export.Dataset, string, error) {
	switch job.Type {
	case models.ReportTypeRecords:
		return s.buildRecordsDataset(ctx)
	case models.ReportTypeResidents:
		return s.buildResidentsDataset(ctx, job.Params)
	case models.ReportTypeSummary:
		return s.buildSummaryDataset(ctx)
	default:
		return export.Dataset{}, "", fmt.Errorf("unsupported report type %s", job.Type)
	}
}

func (s *ExportService) buildRecordsDataset(ctx context.Context) (export.Dataset, string, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return export.Dataset{}, "", err
	}
	dataset := export.Dataset{
		Headers: []string{"Resident ID", "Name", "Sex", "Street", "PWD", "Blood Pressure", "Weight (kg)", "Height (cm)", "BMI", "Nutrition", "Condition", "Diagnosis", "Visit Date"},
	}
	for _, rec := range records {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Resident ID":    rec.HealthRecord.ResidentID,
			"Name":           rec.ResidentName(),
			"Sex":            rec.Sex,
			"Street":         rec.Street,
			"PWD":            boolLabel(rec.IsPWD),
			"Blood Pressure": rec.BloodPressure,
			"Weight (kg)":    formatFloat(rec.WeightKg),
			"Height (cm)":    formatFloat(rec.HeightCm),
			"BMI":            formatFloat(rec.BMI),
			"Nutrition":      rec.NutritionStatus,
			"Condition":      rec.HealthCondition,
			"Diagnosis":      rec.Diagnosis,
			"Visit Date":     rec.VisitDate.Format("2006-01-02"),
		})
	}
	return dataset, "Health Record Register", nil
}

func (s *ExportService) buildResidentsDataset(ctx context.Context, params models.ReportJobParams) (export.Dataset, string, error) {
	filter := models.ResidentFilter{Street: params.Street, PageSize: 100}
	var residents []models.Resident
	for page := 1; ; page++ {
		filter.Page = page
		batch, total, err := s.residents.List(ctx, filter)
		if err != nil {
			return export.Dataset{}, "", err
		}
		residents = append(residents, batch...)
		if len(batch) == 0 || len(residents) >= total {
			break
		}
	}
	dataset := export.Dataset{
		Headers: []string{"Resident ID", "Name", "Sex", "Civil Status", "Birthdate", "Contact", "Street", "Barangay"},
	}
	for _, res := range residents {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Resident ID":  res.ResidentID,
			"Name":         res.FullName(),
			"Sex":          res.Sex,
			"Civil Status": res.CivilStatus,
			"Birthdate":    res.Birthdate.Format("2006-01-02"),
			"Contact":      res.ContactNumber,
			"Street":       res.Street,
			"Barangay":     res.Barangay,
		})
	}
	title := "Resident Roster"
	if params.Street != "" {
		title = fmt.Sprintf("Resident Roster - %s", params.Street)
	}
	return dataset, title, nil
}

func (s *ExportService) buildSummaryDataset(ctx context.Context) (export.Dataset, string, error) {
	summary, err := s.analytics.Summary(ctx)
	if err != nil {
		return export.Dataset{}, "", err
	}
	dataset := export.Dataset{Headers: []string{"Metric", "Value"}}
	add := func(metric, value string) {
		dataset.Rows = append(dataset.Rows, map[string]string{"Metric": metric, "Value": value})
	}
	add("Total Records", strconv.Itoa(summary.TotalRecords))
	add("Total Residents", strconv.Itoa(summary.TotalResidents))
	add("Male", fmt.Sprintf("%d (%d%%)", summary.Sex.MaleCount, summary.Sex.MalePercentage))
	add("Female", fmt.Sprintf("%d (%d%%)", summary.Sex.FemaleCount, summary.Sex.FemalePercentage))
	add("PWD", strconv.Itoa(summary.PWD.PWD))
	add("Non-PWD", strconv.Itoa(summary.PWD.NonPWD))
	add("Top Condition", summary.TopCondition)
	add("Top Diagnosis", summary.TopDiagnosis)
	add("Infants", strconv.Itoa(summary.AgeGroups.Infants))
	add("Children", strconv.Itoa(summary.AgeGroups.Children))
	add("Teens", strconv.Itoa(summary.AgeGroups.Teens))
	add("Adults", strconv.Itoa(summary.AgeGroups.Adults))
	add("Seniors", strconv.Itoa(summary.AgeGroups.Seniors))
	for _, item := range summary.NutritionStatuses {
		add(fmt.Sprintf("Nutrition: %s", item.Label), strconv.Itoa(item.Count))
	}
	for _, item := range summary.StreetCounts {
		add(fmt.Sprintf("Street: %s", item.Label), strconv.Itoa(item.Count))
	}
	return dataset, "Community Health Summary", nil
}

func boolLabel(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
