package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/seojunkim/fitforge/internal/fitness"
	"github.com/seojunkim/fitforge/pkg/validator"
)

// FitnessHandler handles HTTP requests for the calculator endpoints. The
// calculators are pure functions; the handler only parses and validates.
type FitnessHandler struct{}

// NewFitnessHandler creates a new fitness HTTP handler.
func NewFitnessHandler() *FitnessHandler {
	return &FitnessHandler{}
}

// --- Request DTOs ---

// CalorieRequest is the JSON request body for the calorie planner.
type CalorieRequest struct {
	Sex         string  `json:"sex" validate:"required,oneof=male female"`
	Age         int     `json:"age" validate:"required,gte=10,lte=100"`
	HeightCm    float64 `json:"height_cm" validate:"required,gte=120,lte=230"`
	WeightKg    float64 `json:"weight_kg" validate:"required,gte=30,lte=250"`
	Activity    float64 `json:"activity" validate:"required,gte=1.1,lte=2.2"`
	BulkSurplus int     `json:"bulk_surplus" validate:"omitempty,gte=0,lte=2000"`
	CutDeficit  int     `json:"cut_deficit" validate:"omitempty,gte=0,lte=2000"`
}

// WristCurlRequest is the JSON request body for the wrist-curl grader.
type WristCurlRequest struct {
	BodyweightKg float64 `json:"bodyweight_kg" validate:"required,gt=0,lte=300"`
	WeightKg     float64 `json:"weight_kg" validate:"required,gt=0,lte=200"`
	Reps         int     `json:"reps" validate:"omitempty,gte=1,lte=50"`
}

// --- Handlers ---

// OneRM handles GET /api/v1/fitness/onerm?weight=<kg>&reps=<n>
func (h *FitnessHandler) OneRM(w http.ResponseWriter, r *http.Request) {
	weight, err := strconv.ParseFloat(r.URL.Query().Get("weight"), 64)
	if err != nil || weight <= 0 || weight > 1000 {
		writeError(w, http.StatusBadRequest, "weight must be a positive number")
		return
	}

	reps, err := strconv.Atoi(r.URL.Query().Get("reps"))
	if err != nil || reps < 1 || reps > 20 {
		writeError(w, http.StatusBadRequest, "reps must be between 1 and 20")
		return
	}

	writeJSON(w, http.StatusOK, fitness.OneRM(weight, reps))
}

// Calorie handles POST /api/v1/fitness/calorie
func (h *FitnessHandler) Calorie(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req CalorieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	plan := fitness.Calorie(fitness.CalorieInput{
		Sex:         req.Sex,
		Age:         req.Age,
		HeightCm:    req.HeightCm,
		WeightKg:    req.WeightKg,
		Activity:    req.Activity,
		BulkSurplus: req.BulkSurplus,
		CutDeficit:  req.CutDeficit,
	})

	writeJSON(w, http.StatusOK, plan)
}

// WristCurl handles POST /api/v1/fitness/wristcurl
func (h *FitnessHandler) WristCurl(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req WristCurlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, fitness.WristCurl(req.BodyweightKg, req.WeightKg, req.Reps))
}
