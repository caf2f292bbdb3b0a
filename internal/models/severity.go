package models

import "strings"

// Severity tiers used to color the heatmap.
const (
	SeverityHigh         = "High"
	SeverityMedium       = "Medium"
	SeverityLow          = "Low"
	SeverityHealthy      = "Healthy"
	SeverityUnknown      = "Unknown"
	SeverityUnclassified = "Unclassified"
)

// diagnosisSeverity is static reference data: a closed mapping from literal
// diagnosis strings to a risk tier. Keys are lower-cased trimmed forms.
var diagnosisSeverity = map[string]string{
	"hypertension":           SeverityHigh,
	"diabetes":               SeverityHigh,
	"diabetes mellitus":      SeverityHigh,
	"tuberculosis":           SeverityHigh,
	"pneumonia":              SeverityHigh,
	"dengue":                 SeverityHigh,
	"heart disease":          SeverityHigh,
	"stroke":                 SeverityHigh,
	"chronic kidney disease": SeverityHigh,
	"severe malnutrition":    SeverityHigh,

	"asthma":                  SeverityMedium,
	"urinary tract infection": SeverityMedium,
	"anemia":                  SeverityMedium,
	"gastritis":               SeverityMedium,
	"bronchitis":              SeverityMedium,
	"typhoid fever":           SeverityMedium,
	"hepatitis":               SeverityMedium,
	"arthritis":               SeverityMedium,
	"peptic ulcer":            SeverityMedium,
	"obesity":                 SeverityMedium,

	"common cold":  SeverityLow,
	"cough":        SeverityLow,
	"influenza":    SeverityLow,
	"flu":          SeverityLow,
	"fever":        SeverityLow,
	"headache":     SeverityLow,
	"diarrhea":     SeverityLow,
	"skin allergy": SeverityLow,
	"sore throat":  SeverityLow,
	"minor wound":  SeverityLow,

	"none":         SeverityHealthy,
	"healthy":      SeverityHealthy,
	"no diagnosis": SeverityHealthy,
	"n/a":          SeverityHealthy,
}

// ClassifySeverity maps a diagnosis string to its tier. Empty input is
// Unknown; strings outside the table are Unclassified.
func ClassifySeverity(diagnosis string) string {
	normalized := strings.ToLower(strings.TrimSpace(diagnosis))
	if normalized == "" {
		return SeverityUnknown
	}
	if tier, ok := diagnosisSeverity[normalized]; ok {
		return tier
	}
	return SeverityUnclassified
}
