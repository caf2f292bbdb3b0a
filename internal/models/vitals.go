package models

import "math"

// Nutrition status labels derived from BMI.
const (
	NutritionUnderweight = "Underweight"
	NutritionNormal      = "Normal"
	NutritionOverweight  = "Overweight"
	NutritionObese       = "Obese"
)

// ComputeBMI derives body mass index from weight in kilograms and height in
// centimeters, rounded to two decimals. Non-positive inputs yield 0.
func ComputeBMI(weightKg, heightCm float64) float64 {
	if weightKg <= 0 || heightCm <= 0 {
		return 0
	}
	meters := heightCm / 100
	bmi := weightKg / (meters * meters)
	return math.Round(bmi*100) / 100
}

// NutritionStatusFor classifies a BMI value. An absent or invalid BMI is
// left unclassified as the empty string.
func NutritionStatusFor(bmi float64) string {
	switch {
	case bmi <= 0 || math.IsNaN(bmi) || math.IsInf(bmi, 0):
		return ""
	case bmi < 18.5:
		return NutritionUnderweight
	case bmi < 25:
		return NutritionNormal
	case bmi < 30:
		return NutritionOverweight
	default:
		return NutritionObese
	}
}
