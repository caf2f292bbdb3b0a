package models

import "time"

// Health condition labels recorded per visit.
const (
	ConditionGood = "Good"
	ConditionFair = "Fair"
	ConditionPoor = "Poor"
)

// HealthRecord is one clinical visit entry tied to a resident. BMI and
// nutrition status are derived from weight and height, never user-entered.
type HealthRecord struct {
	ID              int64     `db:"id" json:"id"`
	ResidentID      string    `db:"resident_id" json:"resident_id"`
	IsPWD           bool      `db:"is_pwd" json:"is_pwd"`
	BloodPressure   string    `db:"blood_pressure" json:"blood_pressure"`
	WeightKg        float64   `db:"weight_kg" json:"weight_kg"`
	HeightCm        float64   `db:"height_cm" json:"height_cm"`
	BMI             float64   `db:"bmi" json:"bmi"`
	NutritionStatus string    `db:"nutrition_status" json:"nutrition_status"`
	HealthCondition string    `db:"health_condition" json:"health_condition"`
	Diagnosis       string    `db:"diagnosis" json:"diagnosis"`
	Allergies       string    `db:"allergies" json:"allergies"`
	VisitDate       time.Time `db:"visit_date" json:"visit_date"`
	Remarks         string    `db:"remarks" json:"remarks"`
	RecordedBy      *string   `db:"recorded_by" json:"recorded_by,omitempty"`
	RegisteredAt    time.Time `db:"registered_at" json:"registered_at"`
}

// HealthRecordDetail joins a record with its resident identity and the
// recording admin's username for listings and analytics.
type HealthRecordDetail struct {
	HealthRecord
	FirstName      string    `db:"first_name" json:"first_name"`
	MiddleName     string    `db:"middle_name" json:"middle_name"`
	LastName       string    `db:"last_name" json:"last_name"`
	Suffix         string    `db:"suffix" json:"suffix"`
	Sex            string    `db:"sex" json:"sex"`
	CivilStatus    string    `db:"civil_status" json:"civil_status"`
	Birthdate      time.Time `db:"birthdate" json:"birthdate"`
	Street         string    `db:"street" json:"street"`
	Barangay       string    `db:"barangay" json:"barangay"`
	RecordedByName *string   `db:"recorded_by_name" json:"recorded_by_name,omitempty"`
}

// ResidentName builds the display name for the joined row.
func (d HealthRecordDetail) ResidentName() string {
	return Resident{
		FirstName:  d.FirstName,
		MiddleName: d.MiddleName,
		LastName:   d.LastName,
		Suffix:     d.Suffix,
	}.FullName()
}
