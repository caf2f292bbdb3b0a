package models

// CountItem pairs a label with its occurrence count.
type CountItem struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// SexBreakdown reports counts and the rounded percentage split. The female
// percentage is defined as 100 minus the male percentage so the two always
// sum to 100.
type SexBreakdown struct {
	MaleCount        int `json:"male_count"`
	FemaleCount      int `json:"female_count"`
	MalePercentage   int `json:"male_percentage"`
	FemalePercentage int `json:"female_percentage"`
}

// AgeGroupHistogram buckets residents into the five fixed bins.
type AgeGroupHistogram struct {
	Infants  int `json:"infants"`
	Children int `json:"children"`
	Teens    int `json:"teens"`
	Adults   int `json:"adults"`
	Seniors  int `json:"seniors"`
}

// PWDBreakdown splits residents by PWD flag.
type PWDBreakdown struct {
	PWD    int `json:"pwd"`
	NonPWD int `json:"non_pwd"`
}

// AnalyticsSummary is the full derived-statistics payload, recomputed from
// the health-record set on every fetch.
type AnalyticsSummary struct {
	TotalRecords      int               `json:"total_records"`
	TotalResidents    int               `json:"total_residents"`
	Sex               SexBreakdown      `json:"sex"`
	PWD               PWDBreakdown      `json:"pwd"`
	TopCondition      string            `json:"top_condition"`
	TopDiagnosis      string            `json:"top_diagnosis"`
	AgeGroups         AgeGroupHistogram `json:"age_groups"`
	StreetCounts      []CountItem       `json:"street_counts"`
	NutritionStatuses []CountItem       `json:"nutrition_statuses"`
}

// StreetSeverity carries per-street severity tallies for the heatmap.
type StreetSeverity struct {
	Street     string         `json:"street"`
	Residents  int            `json:"residents"`
	Severities map[string]int `json:"severities"`
	Dominant   string         `json:"dominant"`
}

// HeatmapSummary is the heatmap payload keyed by street.
type HeatmapSummary struct {
	Streets []StreetSeverity `json:"streets"`
}
