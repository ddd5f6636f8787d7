package handler

import (
	footprintv1dto "carbonhero/internal/dto/footprint_v1_dto"
	"carbonhero/internal/footprint"
	"carbonhero/internal/schema"
	"carbonhero/internal/service"
	"carbonhero/internal/storage"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	footprintService footprintService
	requestTimeout   time.Duration
}

func New(footprintService footprintService, timeout time.Duration) *Handler {
	return &Handler{
		footprintService: footprintService,
		requestTimeout:   timeout,
	}
}

// Score scores a questionnaire and stores it for identified users
func (h *Handler) Score(w http.ResponseWriter, r *http.Request) {
	var request footprintv1dto.FootprintRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, footprintv1dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := request.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, footprintv1dto.ErrorResponse{Error: err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	reqStart := time.Now()
	record, err := h.footprintService.Score(ctx, request.UserID, request.Answers.Model())
	latency := time.Since(reqStart)

	log.Debug().Str("latency", latency.String()).Msg("score latency")

	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			writeJSON(w, http.StatusBadRequest, footprintv1dto.ErrorResponse{
				Error:  "Invalid answers",
				Errors: validationErr.Result.Errors,
			})
			return
		}
		log.Error().Err(err).Str("user_id", request.UserID).Msg("couldn't score footprint")
		writeJSON(w, http.StatusInternalServerError, footprintv1dto.ErrorResponse{Error: "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, convert(record))
}

// Validate reports missing required answers without scoring
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var answers footprintv1dto.Answers
	if err := json.NewDecoder(r.Body).Decode(&answers); err != nil {
		writeJSON(w, http.StatusBadRequest, footprintv1dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	result := footprint.ValidateAnswers(answers.Model())
	writeJSON(w, http.StatusOK, footprintv1dto.ValidationResponse{
		Valid:  result.Valid,
		Errors: result.Errors,
	})
}

// Options lists the recognised answer options
func (h *Handler) Options(w http.ResponseWriter, _ *http.Request) {
	questions := footprint.Questions()
	response := footprintv1dto.OptionsResponse{
		Questions: make([]footprintv1dto.Question, 0, len(questions)),
	}
	for _, q := range questions {
		response.Questions = append(response.Questions, footprintv1dto.Question{
			Field:   q.Field,
			Options: q.Options,
		})
	}

	writeJSON(w, http.StatusOK, response)
}

// Update rescores the latest answers of a user with one answer changed
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var request footprintv1dto.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, footprintv1dto.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if err := request.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, footprintv1dto.ErrorResponse{Error: err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	record, err := h.footprintService.Update(ctx, userID, request.Field, request.Value)
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.As(err, &validationErr):
			writeJSON(w, http.StatusBadRequest, footprintv1dto.ErrorResponse{
				Error:  "Invalid answers",
				Errors: validationErr.Result.Errors,
			})
		case errors.Is(err, service.ErrUnknownField):
			writeJSON(w, http.StatusBadRequest, footprintv1dto.ErrorResponse{Error: "Unknown answer field"})
		default:
			h.writeLookupError(w, err, userID)
		}
		return
	}

	writeJSON(w, http.StatusOK, convert(record))
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	history, err := h.footprintService.History(ctx, userID)
	if err != nil {
		h.writeLookupError(w, err, userID)
		return
	}

	writeJSON(w, http.StatusOK, footprintv1dto.HistoryResponse{
		UserID:     userID,
		Footprints: convertAll(history),
	})
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	stats, err := h.footprintService.Stats(ctx, userID)
	if err != nil {
		h.writeLookupError(w, err, userID)
		return
	}

	writeJSON(w, http.StatusOK, footprintv1dto.StatsResponse{
		UserID:                stats.UserID,
		CurrentFootprint:      stats.CurrentFootprint,
		AverageFootprint:      stats.AverageFootprint,
		Trend:                 stats.Trend,
		TrendPercentage:       stats.TrendPercentage,
		ImprovementPercentage: stats.ImprovementPercentage,
		Breakdown:             convertBreakdown(stats.Breakdown),
		Level:                 stats.Level,
		RecentFootprints:      convertAll(stats.Recent),
	})
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeLookupError(w http.ResponseWriter, err error, userID string) {
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, footprintv1dto.ErrorResponse{Error: "No footprints found"})
		return
	}
	log.Error().Err(err).Str("user_id", userID).Msg("couldn't read footprints")
	writeJSON(w, http.StatusInternalServerError, footprintv1dto.ErrorResponse{Error: "Internal server error"})
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("couldn't write a response")
	}
}

func convertBreakdown(b schema.Breakdown) footprintv1dto.Breakdown {
	return footprintv1dto.Breakdown{
		Diet:           b.Diet,
		Transportation: b.Transportation,
		Housing:        b.Housing,
		Lifestyle:      b.Lifestyle,
		Waste:          b.Waste,
		Total:          b.Total,
	}
}

func convert(record schema.Record) footprintv1dto.FootprintResponse {
	return footprintv1dto.FootprintResponse{
		ID:        record.ID,
		UserID:    record.UserID,
		Timestamp: record.Timestamp,
		Breakdown: convertBreakdown(record.Breakdown),
		Total:     record.Breakdown.Total,
		Level:     record.Level,
	}
}

func convertAll(records []schema.Record) []footprintv1dto.FootprintResponse {
	result := make([]footprintv1dto.FootprintResponse, 0, len(records))
	for _, record := range records {
		result = append(result, convert(record))
	}
	return result
}
