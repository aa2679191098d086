package fitness

import "math"

// Sex values accepted by the calorie calculator.
const (
	SexMale   = "male"
	SexFemale = "female"
)

// Default and allowed bounds for the bulk surplus / cut deficit in kcal.
const (
	defaultAdjustKcal = 300
	minAdjustKcal     = 100
	maxAdjustKcal     = 800
)

// Macros is a daily macronutrient split in grams.
type Macros struct {
	ProteinG int `json:"protein_g"`
	FatG     int `json:"fat_g"`
	CarbG    int `json:"carb_g"`
}

// Target pairs a calorie goal with its macro split.
type Target struct {
	Kcal   int    `json:"kcal"`
	Macros Macros `json:"macros"`
}

// CaloriePlan is the full output of the calorie calculator.
type CaloriePlan struct {
	BMR  int    `json:"bmr"`
	TDEE Target `json:"tdee"`
	Bulk Target `json:"bulk"`
	Cut  Target `json:"cut"`
}

// CalorieInput holds the parameters for a calorie plan. BulkSurplus and
// CutDeficit fall back to 300 kcal when zero and are clamped to [100, 800].
type CalorieInput struct {
	Sex         string
	Age         int
	HeightCm    float64
	WeightKg    float64
	Activity    float64
	BulkSurplus int
	CutDeficit  int
}

// BMR computes the basal metabolic rate with the Mifflin-St Jeor equation.
func BMR(sex string, age int, heightCm, weightKg float64) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if sex == SexMale {
		return bmr + 5
	}
	return bmr - 161
}

// macrosFor splits a calorie goal into macros: protein 1.8 g/kg bodyweight,
// fat 0.8 g/kg, carbs from the remaining calories (4 kcal/g, floored at 0).
func macrosFor(kcal int, weightKg float64) Macros {
	proteinG := int(math.Round(1.8 * weightKg))
	fatG := int(math.Round(0.8 * weightKg))
	kcalFromPF := proteinG*4 + fatG*9
	carbG := int(math.Round(float64(kcal-kcalFromPF) / 4))
	if carbG < 0 {
		carbG = 0
	}
	return Macros{ProteinG: proteinG, FatG: fatG, CarbG: carbG}
}

func clampAdjust(kcal int) int {
	if kcal == 0 {
		kcal = defaultAdjustKcal
	}
	if kcal < minAdjustKcal {
		return minAdjustKcal
	}
	if kcal > maxAdjustKcal {
		return maxAdjustKcal
	}
	return kcal
}

// Calorie computes a maintenance / bulk / cut calorie plan with macro splits.
func Calorie(input CalorieInput) CaloriePlan {
	bmr := BMR(input.Sex, input.Age, input.HeightCm, input.WeightKg)
	tdee := bmr * input.Activity

	tdeeK := int(math.Round(tdee))
	bulkK := int(math.Round(tdee)) + clampAdjust(input.BulkSurplus)
	cutK := int(math.Round(tdee)) - clampAdjust(input.CutDeficit)

	return CaloriePlan{
		BMR:  int(math.Round(bmr)),
		TDEE: Target{Kcal: tdeeK, Macros: macrosFor(tdeeK, input.WeightKg)},
		Bulk: Target{Kcal: bulkK, Macros: macrosFor(bulkK, input.WeightKg)},
		Cut:  Target{Kcal: cutK, Macros: macrosFor(cutK, input.WeightKg)},
	}
}
