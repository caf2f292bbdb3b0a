package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jdvillanueva/brgy-health-api/internal/models"
	"github.com/jdvillanueva/brgy-health-api/internal/repository"
	"github.com/jdvillanueva/brgy-health-api/pkg/config"
	"github.com/jdvillanueva/brgy-health-api/pkg/database"
)

// Seeds the schema and a first admin account, plus optional demo residents.
func main() {
	var (
		adminUser string
		adminPass string
		demo      bool
	)
	flag.StringVar(&adminUser, "admin-user", "admin", "username for the seeded admin account")
	flag.StringVar(&adminPass, "admin-pass", "", "password for the seeded admin account (required)")
	flag.BoolVar(&demo, "demo", false, "also insert demo residents with health records")
	flag.Parse()

	if adminPass == "" {
		log.Fatal("missing -admin-pass")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			log.Fatalf("failed to apply schema: %v", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPass), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	const upsertAdmin = `INSERT INTO admins (id, username, password_hash, created_at)
        VALUES (gen_random_uuid()::text, $1, $2, NOW())
        ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash`
	if _, err := db.ExecContext(ctx, upsertAdmin, adminUser, string(hash)); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("admin account %q ready\n", adminUser)

	if !demo {
		return
	}

	residents := repository.NewResidentRepository(db)
	records := repository.NewHealthRecordRepository(db)
	for i, seed := range demoResidents {
		if err := residents.Create(ctx, &seed.resident); err != nil {
			log.Fatalf("failed to seed resident %d: %v", i, err)
		}
		record := seed.record
		record.ResidentID = seed.resident.ResidentID
		record.BMI = models.ComputeBMI(record.WeightKg, record.HeightCm)
		record.NutritionStatus = models.NutritionStatusFor(record.BMI)
		if err := records.Create(ctx, &record); err != nil {
			log.Fatalf("failed to seed record %d: %v", i, err)
		}
	}
	fmt.Printf("seeded %d demo residents\n", len(demoResidents))
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS residents (
        resident_id    TEXT PRIMARY KEY,
        first_name     TEXT NOT NULL,
        middle_name    TEXT NOT NULL DEFAULT '',
        last_name      TEXT NOT NULL,
        suffix         TEXT NOT NULL DEFAULT '',
        sex            TEXT NOT NULL DEFAULT '',
        civil_status   TEXT NOT NULL DEFAULT '',
        birthdate      TIMESTAMPTZ NOT NULL DEFAULT '0001-01-01',
        contact_number TEXT NOT NULL DEFAULT '',
        street         TEXT NOT NULL DEFAULT '',
        barangay       TEXT NOT NULL,
        created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS health_records (
        id               BIGSERIAL PRIMARY KEY,
        resident_id      TEXT NOT NULL REFERENCES residents (resident_id),
        is_pwd           BOOLEAN NOT NULL DEFAULT FALSE,
        blood_pressure   TEXT NOT NULL DEFAULT '',
        weight_kg        DOUBLE PRECISION NOT NULL DEFAULT 0,
        height_cm        DOUBLE PRECISION NOT NULL DEFAULT 0,
        bmi              DOUBLE PRECISION NOT NULL DEFAULT 0,
        nutrition_status TEXT NOT NULL DEFAULT '',
        health_condition TEXT NOT NULL DEFAULT '',
        diagnosis        TEXT NOT NULL DEFAULT '',
        allergies        TEXT NOT NULL DEFAULT '',
        visit_date       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        remarks          TEXT NOT NULL DEFAULT '',
        recorded_by      TEXT,
        registered_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS pending_residents (
        id               BIGSERIAL PRIMARY KEY,
        resident_id      TEXT NOT NULL REFERENCES residents (resident_id),
        is_pwd           SMALLINT NOT NULL DEFAULT 0,
        height_cm        DOUBLE PRECISION NOT NULL DEFAULT 0,
        weight_kg        DOUBLE PRECISION NOT NULL DEFAULT 0,
        bmi              DOUBLE PRECISION NOT NULL DEFAULT 0,
        health_condition TEXT NOT NULL DEFAULT '',
        allergies        TEXT NOT NULL DEFAULT '',
        verified_by      TEXT NOT NULL DEFAULT '',
        submitted_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS admins (
        id            TEXT PRIMARY KEY,
        username      TEXT NOT NULL UNIQUE,
        password_hash TEXT NOT NULL,
        created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS activity_logs (
        id             TEXT PRIMARY KEY,
        resident_name  TEXT NOT NULL,
        action         TEXT NOT NULL,
        admin_username TEXT NOT NULL,
        created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE INDEX IF NOT EXISTS idx_health_records_resident ON health_records (resident_id)`,
	`CREATE INDEX IF NOT EXISTS idx_pending_residents_resident ON pending_residents (resident_id)`,
	`CREATE INDEX IF NOT EXISTS idx_activity_logs_created ON activity_logs (created_at DESC)`,
}

type residentSeed struct {
	resident models.Resident
	record   models.HealthRecord
}

var demoResidents = []residentSeed{
	{
		resident: models.Resident{
			ResidentID:  models.NewResidentID(),
			FirstName:   "Juan",
			LastName:    "Dela Cruz",
			Sex:         "Male",
			CivilStatus: "Married",
			Birthdate:   time.Date(1968, 3, 14, 0, 0, 0, 0, time.UTC),
			Street:      "Rizal St",
		},
		record: models.HealthRecord{
			BloodPressure:   "140/90",
			WeightKg:        82,
			HeightCm:        168,
			HealthCondition: models.ConditionFair,
			Diagnosis:       "Hypertension",
			VisitDate:       time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
		},
	},
	{
		resident: models.Resident{
			ResidentID:  models.NewResidentID(),
			FirstName:   "Maria",
			LastName:    "Santos",
			Sex:         "Female",
			CivilStatus: "Single",
			Birthdate:   time.Date(1999, 11, 2, 0, 0, 0, 0, time.UTC),
			Street:      "Sampaguita St",
		},
		record: models.HealthRecord{
			BloodPressure:   "110/70",
			WeightKg:        54,
			HeightCm:        158,
			HealthCondition: models.ConditionGood,
			Diagnosis:       "Common Cold",
			VisitDate:       time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
		},
	},
	{
		resident: models.Resident{
			ResidentID:  models.NewResidentID(),
			FirstName:   "Lito",
			LastName:    "Ramos",
			Sex:         "Male",
			CivilStatus: "Widowed",
			Birthdate:   time.Date(1950, 7, 30, 0, 0, 0, 0, time.UTC),
			Street:      "Mabini St",
		},
		record: models.HealthRecord{
			IsPWD:           true,
			BloodPressure:   "150/95",
			WeightKg:        65,
			HeightCm:        162,
			HealthCondition: models.ConditionPoor,
			Diagnosis:       "Diabetes",
			VisitDate:       time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC),
		},
	},
}
