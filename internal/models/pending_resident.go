package models

import "time"

// PendingResident is a resident-submitted health snapshot awaiting review.
// The referenced resident row is created eagerly at submission time; the
// pending entry's terminal transition is exactly one of approved or rejected.
type PendingResident struct {
	ID              int64     `db:"id" json:"id"`
	ResidentID      string    `db:"resident_id" json:"resident_id"`
	IsPWD           bool      `db:"is_pwd" json:"is_pwd"`
	HeightCm        float64   `db:"height_cm" json:"height_cm"`
	WeightKg        float64   `db:"weight_kg" json:"weight_kg"`
	BMI             float64   `db:"bmi" json:"bmi"`
	HealthCondition string    `db:"health_condition" json:"health_condition"`
	Allergies       string    `db:"allergies" json:"allergies"`
	VerifiedBy      string    `db:"verified_by" json:"verified_by"`
	SubmittedAt     time.Time `db:"submitted_at" json:"submitted_at"`
}

// PendingResidentDetail joins a pending entry with its resident's identity
// for review listings and for capturing the display name before deletions.
type PendingResidentDetail struct {
	PendingResident
	FirstName  string    `db:"first_name" json:"first_name"`
	MiddleName string    `db:"middle_name" json:"middle_name"`
	LastName   string    `db:"last_name" json:"last_name"`
	Suffix     string    `db:"suffix" json:"suffix"`
	Sex        string    `db:"sex" json:"sex"`
	Birthdate  time.Time `db:"birthdate" json:"birthdate"`
	Street     string    `db:"street" json:"street"`
}

// ResidentName builds the display name for the joined row.
func (d PendingResidentDetail) ResidentName() string {
	return Resident{
		FirstName:  d.FirstName,
		MiddleName: d.MiddleName,
		LastName:   d.LastName,
		Suffix:     d.Suffix,
	}.FullName()
}
