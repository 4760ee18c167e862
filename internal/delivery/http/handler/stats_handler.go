package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"clinic-stats/internal/aggregator"
	"clinic-stats/internal/delivery/dto"
	"clinic-stats/internal/usecase"
	"clinic-stats/pkg/response"
	"clinic-stats/pkg/validator"

	"github.com/gorilla/mux"
)

type StatsHandler struct {
	statsUsecase usecase.ClinicStatsUsecase
	validator    *validator.CustomValidator
	timeout      time.Duration
}

func NewStatsHandler(statsUsecase usecase.ClinicStatsUsecase, validator *validator.CustomValidator, timeout time.Duration) *StatsHandler {
	return &StatsHandler{
		statsUsecase: statsUsecase,
		validator:    validator,
		timeout:      timeout,
	}
}

type statsView func(ctx context.Context, req *dto.StatsQueryRequest) (interface{}, error)

func (h *StatsHandler) GetAppointmentStats(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "Appointment statistics retrieved successfully", func(ctx context.Context, req *dto.StatsQueryRequest) (interface{}, error) {
		return h.statsUsecase.GetAppointmentStats(ctx, req)
	})
}

func (h *StatsHandler) GetServiceStats(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "Service statistics retrieved successfully", func(ctx context.Context, req *dto.StatsQueryRequest) (interface{}, error) {
		return h.statsUsecase.GetServiceStats(ctx, req)
	})
}

func (h *StatsHandler) GetDemographicStats(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "Demographic statistics retrieved successfully", func(ctx context.Context, req *dto.StatsQueryRequest) (interface{}, error) {
		return h.statsUsecase.GetDemographicStats(ctx, req)
	})
}

func (h *StatsHandler) GetRatingStats(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "Rating statistics retrieved successfully", func(ctx context.Context, req *dto.StatsQueryRequest) (interface{}, error) {
		return h.statsUsecase.GetRatingStats(ctx, req)
	})
}

func (h *StatsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "Summary retrieved successfully", func(ctx context.Context, req *dto.StatsQueryRequest) (interface{}, error) {
		return h.statsUsecase.GetSummary(ctx, req)
	})
}

func (h *StatsHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "Dashboard retrieved successfully", func(ctx context.Context, req *dto.StatsQueryRequest) (interface{}, error) {
		return h.statsUsecase.GetDashboard(ctx, req)
	})
}

func (h *StatsHandler) serve(w http.ResponseWriter, r *http.Request, message string, view statsView) {
	query := r.URL.Query()
	req := dto.StatsQueryRequest{
		ClinicID: mux.Vars(r)["clinic_id"],
		From:     query.Get("from"),
		To:       query.Get("to"),
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	data, err := view(ctx, &req)
	if err != nil {
		var validationErr *aggregator.ValidationError
		switch {
		case errors.As(err, &validationErr):
			response.ValidationError(w, map[string]string{validationErr.Field: validationErr.Error()})
		case errors.Is(err, usecase.ErrInvalidClinicID):
			response.ValidationError(w, map[string]string{"clinic_id": "clinic_id must be a valid UUID"})
		case errors.Is(err, usecase.ErrClinicNotFound):
			response.NotFound(w, "Clinic not found")
		case errors.Is(err, context.DeadlineExceeded):
			response.GatewayTimeout(w, "Statistics took too long to compute")
		default:
			response.InternalServerError(w, "Failed to compute clinic statistics")
		}
		return
	}

	response.Success(w, http.StatusOK, message, data)
}
