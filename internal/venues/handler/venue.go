package handler

import (
	"fmt"
	"net/http"
	"time"

	"venuebook/internal/venues/service"
	apperrors "venuebook/pkg/errors"
	httputil "venuebook/pkg/http"
	"venuebook/pkg/logger"
	"venuebook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type VenueHandler struct {
	service service.VenueService
	log     *logger.Logger
}

func NewVenueHandler(service service.VenueService, log *logger.Logger) *VenueHandler {
	return &VenueHandler{
		service: service,
		log:     log,
	}
}

func (h *VenueHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	venueQuery := service.VenueQuery{
		Text:        query.Get("q"),
		Category:    query.Get("category"),
		MinCapacity: query.Get("min_capacity"),
	}

	venues, total, err := h.service.List(r.Context(), venueQuery, limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, venues, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *VenueHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	venue, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, venue); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *VenueHandler) GetAvailability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("'date' query parameter is required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAvailability", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	date, err := time.Parse(model.DateLayout, dateStr)
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("invalid date format, must be %s", model.DateLayout))); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAvailability", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	day, err := h.service.GetAvailability(r.Context(), id, date)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAvailability", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, day); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAvailability", "operation", "WriteSuccess", "error", err)
	}
}

func (h *VenueHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/venues", h.GetAll)
	router.GET("/api/v1/venues/id/:id", h.GetByID)
	router.GET("/api/v1/venues/id/:id/availability", h.GetAvailability)
}
