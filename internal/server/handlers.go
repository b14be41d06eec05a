// Package server exposes the latest snapshot and the write-back actions over
// a small JSON API.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jfparis/home-assistant-garmin-connect/internal/apperr"
	"github.com/jfparis/home-assistant-garmin-connect/internal/client/garmin"
	"github.com/jfparis/home-assistant-garmin-connect/internal/coordinator"
	"github.com/jfparis/home-assistant-garmin-connect/internal/snapshot"
	"github.com/jfparis/home-assistant-garmin-connect/internal/version"
)

// Coordinator is the surface the HTTP layer needs from the refresh
// coordinator.
type Coordinator interface {
	Snapshot() snapshot.Snapshot
	SetActiveGear(ctx context.Context, gearUUID string, setting coordinator.GearSetting, activityTypeLabel string) error
	AddBodyComposition(ctx context.Context, entry garmin.BodyCompositionEntry) error
	AddBloodPressure(ctx context.Context, reading garmin.BloodPressureReading) error
}

type Handler struct {
	coordinator Coordinator
	logger      *slog.Logger
}

func NewHandler(c Coordinator, logger *slog.Logger) *Handler {
	return &Handler{coordinator: c, logger: logger}
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.handleHealth)
	mux.HandleFunc("GET /api/snapshot", h.handleSnapshot)
	mux.HandleFunc("GET /api/gear", h.handleGear)
	mux.HandleFunc("POST /api/gear/default", h.handleSetGearDefault)
	mux.HandleFunc("POST /api/body-composition", h.handleAddBodyComposition)
	mux.HandleFunc("POST /api/blood-pressure", h.handleAddBloodPressure)

	return chain(mux,
		recovery(h.logger),
		requestLogging(h.logger),
	)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Get(),
	})
}

func (h *Handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.coordinator.Snapshot())
}

func (h *Handler) handleGear(w http.ResponseWriter, r *http.Request) {
	data := h.coordinator.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		snapshot.KeyGear:          data[snapshot.KeyGear],
		snapshot.KeyGearStats:     data[snapshot.KeyGearStats],
		snapshot.KeyGearDefaults:  data[snapshot.KeyGearDefaults],
		snapshot.KeyActivityTypes: data[snapshot.KeyActivityTypes],
	})
}

type setGearDefaultRequest struct {
	UUID         string `json:"uuid"`
	Setting      string `json:"setting"`
	ActivityType string `json:"activity_type"`
}

func (h *Handler) handleSetGearDefault(w http.ResponseWriter, r *http.Request) {
	var req setGearDefaultRequest
	if err := go_json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.BadRequest("invalid_body", "request body is not valid JSON"))
		return
	}

	if _, err := uuid.Parse(req.UUID); err != nil {
		writeError(w, apperr.BadRequest("invalid_uuid", "uuid is not a valid gear identifier"))
		return
	}
	setting, err := coordinator.ParseGearSetting(req.Setting)
	if err != nil {
		writeError(w, apperr.BadRequest("invalid_setting", err.Error()))
		return
	}
	if req.ActivityType == "" {
		writeError(w, apperr.BadRequest("missing_activity_type", "activity_type is required"))
		return
	}

	if err := h.coordinator.SetActiveGear(r.Context(), req.UUID, setting, req.ActivityType); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type bodyCompositionRequest struct {
	Timestamp         *time.Time `json:"timestamp"`
	Weight            *float64   `json:"weight"`
	PercentFat        *float64   `json:"percent_fat"`
	PercentHydration  *float64   `json:"percent_hydration"`
	VisceralFatMass   *float64   `json:"visceral_fat_mass"`
	BoneMass          *float64   `json:"bone_mass"`
	MuscleMass        *float64   `json:"muscle_mass"`
	BasalMet          *float64   `json:"basal_met"`
	ActiveMet         *float64   `json:"active_met"`
	PhysiqueRating    *float64   `json:"physique_rating"`
	MetabolicAge      *float64   `json:"metabolic_age"`
	VisceralFatRating *float64   `json:"visceral_fat_rating"`
	BMI               *float64   `json:"bmi"`
}

func (h *Handler) handleAddBodyComposition(w http.ResponseWriter, r *http.Request) {
	var req bodyCompositionRequest
	if err := go_json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.BadRequest("invalid_body", "request body is not valid JSON"))
		return
	}
	if req.Weight == nil {
		writeError(w, apperr.BadRequest("missing_weight", "weight is required"))
		return
	}

	entry := garmin.BodyCompositionEntry{
		Timestamp:         req.Timestamp,
		Weight:            *req.Weight,
		PercentFat:        req.PercentFat,
		PercentHydration:  req.PercentHydration,
		VisceralFatMass:   req.VisceralFatMass,
		BoneMass:          req.BoneMass,
		MuscleMass:        req.MuscleMass,
		BasalMet:          req.BasalMet,
		ActiveMet:         req.ActiveMet,
		PhysiqueRating:    req.PhysiqueRating,
		MetabolicAge:      req.MetabolicAge,
		VisceralFatRating: req.VisceralFatRating,
		BMI:               req.BMI,
	}
	if err := h.coordinator.AddBodyComposition(r.Context(), entry); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type bloodPressureRequest struct {
	Systolic  int    `json:"systolic"`
	Diastolic int    `json:"diastolic"`
	Pulse     int    `json:"pulse"`
	Note      string `json:"note"`
}

func (h *Handler) handleAddBloodPressure(w http.ResponseWriter, r *http.Request) {
	var req bloodPressureRequest
	if err := go_json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.BadRequest("invalid_body", "request body is not valid JSON"))
		return
	}
	if req.Systolic <= 0 || req.Diastolic <= 0 || req.Pulse <= 0 {
		writeError(w, apperr.BadRequest("invalid_reading", "systolic, diastolic and pulse must be positive"))
		return
	}

	reading := garmin.BloodPressureReading{
		Systolic:  req.Systolic,
		Diastolic: req.Diastolic,
		Pulse:     req.Pulse,
		Note:      req.Note,
	}
	if err := h.coordinator.AddBloodPressure(r.Context(), reading); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
