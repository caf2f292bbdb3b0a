package models

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"
)

// DefaultBarangay is the community every resident belongs to unless stated
// otherwise on the registration form.
const DefaultBarangay = "Barangay San Isidro"

// Streets is the fixed list of streets residents can register under.
var Streets = []string{
	"Acacia St",
	"Bayabas St",
	"Camia St",
	"Dahlia St",
	"Ilang-Ilang St",
	"Kalachuchi St",
	"Mabini St",
	"Rizal St",
	"Sampaguita St",
	"Santan St",
}

// ResidentIDPattern matches externally visible resident identifiers.
var ResidentIDPattern = regexp.MustCompile(`^RES-\d{7}-\d{4}$`)

// Resident is the identity record health records hang off of.
type Resident struct {
	ResidentID    string    `db:"resident_id" json:"resident_id"`
	FirstName     string    `db:"first_name" json:"first_name"`
	MiddleName    string    `db:"middle_name" json:"middle_name"`
	LastName      string    `db:"last_name" json:"last_name"`
	Suffix        string    `db:"suffix" json:"suffix"`
	Sex           string    `db:"sex" json:"sex"`
	CivilStatus   string    `db:"civil_status" json:"civil_status"`
	Birthdate     time.Time `db:"birthdate" json:"birthdate"`
	ContactNumber string    `db:"contact_number" json:"contact_number"`
	Street        string    `db:"street" json:"street"`
	Barangay      string    `db:"barangay" json:"barangay"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// FullName renders the display name used by listings and the activity log.
func (r Resident) FullName() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{r.FirstName, r.MiddleName, r.LastName, r.Suffix} {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " ")
}

// ResidentFilter encapsulates allowed search parameters for the roster.
type ResidentFilter struct {
	Search   string
	Street   string
	Page     int
	PageSize int
}

// NewResidentID generates an identifier in the RES-<7digit>-<4digit> form.
// Uniqueness is probabilistic; the primary key constraint is the backstop,
// so a collision surfaces as a creation failure rather than an overwrite.
func NewResidentID() string {
	return fmt.Sprintf("RES-%d-%d", 1000000+rand.Intn(9000000), 1000+rand.Intn(9000))
}

// AgeOn returns completed years between birthdate and the reference day.
func AgeOn(birthdate, on time.Time) int {
	if birthdate.IsZero() || birthdate.After(on) {
		return 0
	}
	years := on.Year() - birthdate.Year()
	if on.Month() < birthdate.Month() ||
		(on.Month() == birthdate.Month() && on.Day() < birthdate.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
