package fitness

import "math"

// Grade bands for wrist-curl strength relative to bodyweight.
type Grade struct {
	Level string `json:"level"`
	Range string `json:"range"`
}

var wristCurlGrades = []struct {
	upper float64
	grade Grade
}{
	{0.10, Grade{Level: "novice", Range: "< 10%"}},
	{0.18, Grade{Level: "beginner", Range: "10% - 18%"}},
	{0.25, Grade{Level: "intermediate", Range: "18% - 25%"}},
	{0.35, Grade{Level: "advanced", Range: "25% - 35%"}},
	{math.Inf(1), Grade{Level: "elite", Range: "35% +"}},
}

// WristCurlResult is the output of the wrist-curl grading calculator.
type WristCurlResult struct {
	UsedWeightKg float64 `json:"used_weight_kg"`
	PercentBW    float64 `json:"percent_bw"`
	Grade        Grade   `json:"grade"`
	Estimated    bool    `json:"estimated"`
}

// wristCurlOneRM estimates a wrist-curl one-rep max. Reps outside the 2..20
// trust window are clamped; a single rep (or none) means the weight is taken
// as-is.
func wristCurlOneRM(weight float64, reps int) float64 {
	if reps <= 1 {
		return weight
	}
	r := float64(min(max(reps, 2), 20))
	return weight * (1 + r/30)
}

// WristCurl grades a wrist-curl lift against bodyweight. When reps > 1 the
// lift is first converted to an estimated one-rep max.
func WristCurl(bodyweightKg, weightKg float64, reps int) WristCurlResult {
	used := wristCurlOneRM(weightKg, reps)
	ratio := used / bodyweightKg

	grade := wristCurlGrades[len(wristCurlGrades)-1].grade
	for _, band := range wristCurlGrades {
		if ratio < band.upper {
			grade = band.grade
			break
		}
	}

	return WristCurlResult{
		UsedWeightKg: math.Round(used*10) / 10,
		PercentBW:    math.Round(ratio*1000) / 10,
		Grade:        grade,
		Estimated:    reps > 1,
	}
}
