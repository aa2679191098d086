package fitness

import "math"

// plateStep is the smallest practical plate increment in kilograms.
const plateStep = 0.5

// RoundToPlate rounds a weight to the nearest plate increment.
func RoundToPlate(kg float64) float64 {
	return math.Round(kg/plateStep) * plateStep
}

// EstimateOneRM estimates a one-rep max from a weight lifted for the given
// number of reps, using the Epley formula: w * (1 + r/30).
func EstimateOneRM(weight float64, reps int) float64 {
	return weight * (1 + float64(reps)/30)
}

// weightAtReps inverts Epley: the weight liftable for the given reps at a
// known one-rep max.
func weightAtReps(oneRM float64, reps int) float64 {
	return oneRM / (1 + 0.0333*float64(reps))
}

// RepEstimate is one row of a rep/load table.
type RepEstimate struct {
	Reps     int     `json:"reps"`
	WeightKg float64 `json:"weight_kg"`
}

// OneRMResult holds the rounded one-rep max estimate and a 1..10-rep load table.
type OneRMResult struct {
	OneRMKg float64       `json:"one_rm_kg"`
	Table   []RepEstimate `json:"table"`
}

// OneRM computes the rounded one-rep max estimate for a lift plus the
// estimated loads for one through ten reps.
func OneRM(weight float64, reps int) OneRMResult {
	oneRM := RoundToPlate(EstimateOneRM(weight, reps))

	table := make([]RepEstimate, 0, 10)
	for r := 1; r <= 10; r++ {
		table = append(table, RepEstimate{
			Reps:     r,
			WeightKg: RoundToPlate(weightAtReps(oneRM, r)),
		})
	}

	return OneRMResult{OneRMKg: oneRM, Table: table}
}
