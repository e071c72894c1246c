package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"venuebook/internal/bookings/service"
	apperrors "venuebook/pkg/errors"
	httputil "venuebook/pkg/http"
	"venuebook/pkg/logger"
	"venuebook/pkg/middleware"
	"venuebook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

// submitRequest is the wire shape for POST /api/v1/bookings. Dates travel as
// YYYY-MM-DD strings; requester identity comes from the session, never the body.
type submitRequest struct {
	VenueID     string `json:"venue_id"`
	Date        string `json:"date"`
	TimeSlot    string `json:"time_slot"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Attendees   int    `json:"attendees"`
}

type decisionRequest struct {
	Decision string `json:"decision"`
}

func (h *BookingHandler) Submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		if writeErr := httputil.WriteError(w, apperrors.Unauthorized("Authentication required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Submit", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Submit", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	date, err := time.Parse(model.DateLayout, req.Date)
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.FieldValidation("Date", fmt.Sprintf("date must be in %s format", model.DateLayout))); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Submit", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	booking := &model.BookingRequest{
		VenueID:     req.VenueID,
		Date:        date,
		Slot:        model.TimeSlot(req.TimeSlot),
		Title:       req.Title,
		Description: req.Description,
		Attendees:   req.Attendees,
	}

	if err := h.service.Submit(r.Context(), principal, booking); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Submit", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Submit", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		if writeErr := httputil.WriteError(w, apperrors.Unauthorized("Authentication required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	id := ps.ByName("id")

	booking, err := h.service.GetByID(r.Context(), principal, id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		if writeErr := httputil.WriteError(w, apperrors.Unauthorized("Authentication required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	query := r.URL.Query()

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	bookingQuery := service.BookingQuery{
		Text:   query.Get("q"),
		Status: query.Get("status"),
		Scope:  query.Get("scope"),
	}

	bookings, total, err := h.service.List(r.Context(), principal, bookingQuery, limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *BookingHandler) Decide(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		if writeErr := httputil.WriteError(w, apperrors.Unauthorized("Authentication required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Decide", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	id := ps.ByName("id")

	var req decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Decide", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	booking, err := h.service.Decide(r.Context(), principal, id, req.Decision)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Decide", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "Decide", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.Submit)
	router.GET("/api/v1/bookings", h.GetAll)
	router.GET("/api/v1/bookings/id/:id", h.GetByID)
	router.POST("/api/v1/bookings/id/:id/decision", h.Decide)
}
