package service

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jdvillanueva/brgy-health-api/internal/models"
	appErrors "github.com/jdvillanueva/brgy-health-api/pkg/errors"
)

const (
	analyticsSummaryCacheKey = "analytics:summary"
	analyticsHeatmapCacheKey = "analytics:heatmap"
	analyticsCachePattern    = "analytics:*"
)

type analyticsRecordRepository interface {
	List(ctx context.Context) ([]models.HealthRecordDetail, error)
}

// AnalyticsService derives community statistics from the health-record set.
// Nothing is precomputed or stored; every figure is recomputed from the
// records on demand, with an optional short-lived cache in front.
type AnalyticsService struct {
	records analyticsRecordRepository
	cache   *CacheService
	logger  *zap.Logger
	now     func() time.Time
}

// NewAnalyticsService constructs the analytics service.
func NewAnalyticsService(records analyticsRecordRepository, cache *CacheService, logger *zap.Logger) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsService{records: records, cache: cache, logger: logger, now: time.Now}
}

// Summary computes the full statistics payload.
func (s *AnalyticsService) Summary(ctx context.Context) (*models.AnalyticsSummary, error) {
	if s.cache.Enabled() {
		var cached models.AnalyticsSummary
		if hit, err := s.cache.Get(ctx, analyticsSummaryCacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	records, err := s.records.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load records for analytics")
	}
	summary := s.buildSummary(records)

	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, analyticsSummaryCacheKey, summary, 0)
	}
	return summary, nil
}

// Heatmap computes per-street severity tallies across the fixed street list.
func (s *AnalyticsService) Heatmap(ctx context.Context) (*models.HeatmapSummary, error) {
	if s.cache.Enabled() {
		var cached models.HeatmapSummary
		if hit, err := s.cache.Get(ctx, analyticsHeatmapCacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	records, err := s.records.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load records for analytics")
	}
	heatmap := buildHeatmap(records)

	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, analyticsHeatmapCacheKey, heatmap, 0)
	}
	return heatmap, nil
}

// Invalidate drops cached analytics payloads. Call it after any mutation
// of residents or records.
func (s *AnalyticsService) Invalidate(ctx context.Context) {
	if s == nil || !s.cache.Enabled() {
		return
	}
	if err := s.cache.Invalidate(ctx, analyticsCachePattern); err != nil {
		s.logger.Warn("analytics cache invalidation failed", zap.Error(err))
	}
}

func (s *AnalyticsService) buildSummary(records []models.HealthRecordDetail) *models.AnalyticsSummary {
	summary := &models.AnalyticsSummary{
		TotalRecords:      len(records),
		StreetCounts:      []models.CountItem{},
		NutritionStatuses: []models.CountItem{},
	}

	// Resident-scoped figures count each resident once, keyed by their
	// newest record since listings come back newest first.
	seen := make(map[string]bool, len(records))
	residents := make([]models.HealthRecordDetail, 0, len(records))
	for _, rec := range records {
		if seen[rec.HealthRecord.ResidentID] {
			continue
		}
		seen[rec.HealthRecord.ResidentID] = true
		residents = append(residents, rec)
	}
	summary.TotalResidents = len(residents)

	today := s.now()
	streetCounts := newOrderedCounter()
	nutritionCounts := newOrderedCounter()
	conditionCounts := newOrderedCounter()
	diagnosisCounts := newOrderedCounter()

	for _, rec := range residents {
		switch rec.Sex {
		case "Male", "male", "M", "m":
			summary.Sex.MaleCount++
		case "Female", "female", "F", "f":
			summary.Sex.FemaleCount++
		}
		if rec.IsPWD {
			summary.PWD.PWD++
		} else {
			summary.PWD.NonPWD++
		}

		age := models.AgeOn(rec.Birthdate, today)
		switch {
		case age <= 1:
			summary.AgeGroups.Infants++
		case age <= 12:
			summary.AgeGroups.Children++
		case age <= 19:
			summary.AgeGroups.Teens++
		case age <= 59:
			summary.AgeGroups.Adults++
		default:
			summary.AgeGroups.Seniors++
		}

		if street := strings.TrimSpace(rec.Street); street != "" {
			streetCounts.add(street)
		}
		if rec.NutritionStatus != "" {
			nutritionCounts.add(rec.NutritionStatus)
		}
	}

	// Condition and diagnosis tallies range over every record, not just
	// the newest per resident. Diagnoses are folded to a lower-cased,
	// trimmed form so case and whitespace variants count as one.
	for _, rec := range records {
		if rec.HealthCondition != "" {
			conditionCounts.add(rec.HealthCondition)
		}
		if diagnosis := strings.ToLower(strings.TrimSpace(rec.Diagnosis)); diagnosis != "" {
			diagnosisCounts.add(diagnosis)
		}
	}

	sexTotal := summary.Sex.MaleCount + summary.Sex.FemaleCount
	if sexTotal > 0 {
		summary.Sex.MalePercentage = int(math.Round(float64(summary.Sex.MaleCount) / float64(sexTotal) * 100))
		summary.Sex.FemalePercentage = 100 - summary.Sex.MalePercentage
	}

	summary.TopCondition = conditionCounts.top()
	summary.TopDiagnosis = diagnosisCounts.top()
	summary.StreetCounts = streetCounts.items()
	summary.NutritionStatuses = nutritionCounts.items()
	return summary
}

func buildHeatmap(records []models.HealthRecordDetail) *models.HeatmapSummary {
	perStreet := make(map[string]*models.StreetSeverity, len(models.Streets))
	heatmap := &models.HeatmapSummary{Streets: make([]models.StreetSeverity, 0, len(models.Streets))}
	for _, street := range models.Streets {
		perStreet[street] = &models.StreetSeverity{Street: street, Severities: map[string]int{}}
	}

	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		if seen[rec.HealthRecord.ResidentID] {
			continue
		}
		seen[rec.HealthRecord.ResidentID] = true
		street := strings.TrimSpace(rec.Street)
		entry, ok := perStreet[street]
		if !ok {
			// Streets outside the fixed list still show up rather than
			// silently dropping residents.
			entry = &models.StreetSeverity{Street: street, Severities: map[string]int{}}
			perStreet[street] = entry
		}
		entry.Residents++
		entry.Severities[models.ClassifySeverity(rec.Diagnosis)]++
	}

	extras := make([]string, 0)
	for street := range perStreet {
		known := false
		for _, fixed := range models.Streets {
			if street == fixed {
				known = true
				break
			}
		}
		if !known {
			extras = append(extras, street)
		}
	}
	sort.Strings(extras)

	for _, street := range append(append([]string{}, models.Streets...), extras...) {
		entry := perStreet[street]
		entry.Dominant = dominantSeverity(entry.Severities)
		heatmap.Streets = append(heatmap.Streets, *entry)
	}
	return heatmap
}

// severityPrecedence breaks dominant-tier ties toward the riskier label.
var severityPrecedence = []string{
	models.SeverityHigh,
	models.SeverityMedium,
	models.SeverityLow,
	models.SeverityHealthy,
	models.SeverityUnknown,
	models.SeverityUnclassified,
}

func dominantSeverity(tally map[string]int) string {
	best := ""
	bestCount := 0
	for _, tier := range severityPrecedence {
		if count := tally[tier]; count > bestCount {
			best = tier
			bestCount = count
		}
	}
	return best
}

// orderedCounter tallies labels while remembering first-seen order, so the
// most frequent label with the earliest first appearance wins ties.
type orderedCounter struct {
	counts map[string]int
	order  []string
}

func newOrderedCounter() *orderedCounter {
	return &orderedCounter{counts: make(map[string]int)}
}

func (c *orderedCounter) add(label string) {
	if _, ok := c.counts[label]; !ok {
		c.order = append(c.order, label)
	}
	c.counts[label]++
}

func (c *orderedCounter) top() string {
	best := ""
	bestCount := 0
	for _, label := range c.order {
		if c.counts[label] > bestCount {
			best = label
			bestCount = c.counts[label]
		}
	}
	return best
}

func (c *orderedCounter) items() []models.CountItem {
	items := make([]models.CountItem, 0, len(c.order))
	for _, label := range c.order {
		items = append(items, models.CountItem{Label: label, Count: c.counts[label]})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Count > items[j].Count })
	return items
}
