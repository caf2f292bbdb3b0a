package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeBMI(t *testing.T) {
	assert.InDelta(t, 22.86, ComputeBMI(70, 175), 0.001)
	assert.InDelta(t, 30.86, ComputeBMI(100, 180), 0.001)
	assert.Zero(t, ComputeBMI(0, 175))
	assert.Zero(t, ComputeBMI(70, 0))
	assert.Zero(t, ComputeBMI(-5, 175))
}

func TestNutritionStatusBoundaries(t *testing.T) {
	cases := []struct {
		bmi  float64
		want string
	}{
		{17.0, NutritionUnderweight},
		{18.49, NutritionUnderweight},
		{18.5, NutritionNormal},
		{24.99, NutritionNormal},
		{25, NutritionOverweight},
		{29.99, NutritionOverweight},
		{30, NutritionObese},
		{42.5, NutritionObese},
		{0, ""},
		{-1, ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NutritionStatusFor(tc.bmi), "bmi=%v", tc.bmi)
	}
}

func TestAgeOnCompletedYears(t *testing.T) {
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	// Birthday one day after today's month/day: the year is not complete.
	assert.Equal(t, 23, AgeOn(time.Date(2000, time.June, 16, 0, 0, 0, 0, time.UTC), now))
	// Birthday today counts as completed.
	assert.Equal(t, 24, AgeOn(time.Date(2000, time.June, 15, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 24, AgeOn(time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 0, AgeOn(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 0, AgeOn(time.Time{}, now))
	assert.Equal(t, 0, AgeOn(now.AddDate(1, 0, 0), now))
}

func TestNewResidentIDFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := NewResidentID()
		assert.Regexp(t, ResidentIDPattern, id)
	}
}

func TestResidentFullName(t *testing.T) {
	r := Resident{FirstName: "Maria", MiddleName: " ", LastName: "Reyes", Suffix: ""}
	assert.Equal(t, "Maria Reyes", r.FullName())

	r = Resident{FirstName: "Jose", MiddleName: "P", LastName: "Santos", Suffix: "Jr"}
	assert.Equal(t, "Jose P Santos Jr", r.FullName())
}
