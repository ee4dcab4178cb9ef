package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"clinica/backend/internal/domain"
	"clinica/backend/internal/metrics"
	"clinica/backend/internal/service/scheduling"
	"clinica/backend/internal/store"
)

type schedulingService interface {
	Create(ctx context.Context, in scheduling.CreateInput) (domain.Appointment, error)
	Cancel(ctx context.Context, id uuid.UUID) (bool, error)
	Edit(ctx context.Context, id uuid.UUID, in scheduling.EditInput) (domain.Appointment, error)
	Filter(ctx context.Context, f store.Filter) ([]domain.Appointment, error)
}

type AppointmentsHandler struct {
	svc       schedulingService
	log       *slog.Logger
	collector *metrics.Collector
	loc       *time.Location
}

func NewAppointmentsHandler(svc schedulingService, log *slog.Logger, collector *metrics.Collector, loc *time.Location) *AppointmentsHandler {
	if log == nil {
		log = slog.Default()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &AppointmentsHandler{
		svc:       svc,
		log:       log.With(slog.String("component", "http.appointments")),
		collector: collector,
		loc:       loc,
	}
}

type appointmentRequest struct {
	DoctorID         uuid.UUID `json:"doctorId" binding:"required"`
	ConsultingRoomID uuid.UUID `json:"consultingRoomId" binding:"required"`
	ConsultationTime time.Time `json:"consultationTime" binding:"required"`
	PatientName      string    `json:"patientName" binding:"required"`
}

type appointmentResponse struct {
	ID               uuid.UUID `json:"id"`
	DoctorID         uuid.UUID `json:"doctorId"`
	ConsultingRoomID uuid.UUID `json:"consultingRoomId"`
	ConsultationTime time.Time `json:"consultationTime"`
	PatientName      string    `json:"patientName"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type cancelResponse struct {
	Cancelled bool   `json:"cancelled"`
	Error     string `json:"error,omitempty"`
}

func (h *AppointmentsHandler) Create(c *gin.Context) {
	log := h.log.With(slog.String("handler", "CreateAppointment"))

	var req appointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("invalid request", slog.Any("err", err))
		h.countBooking("invalid")
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	appt, err := h.svc.Create(c.Request.Context(), scheduling.CreateInput{
		DoctorID:         req.DoctorID,
		ConsultingRoomID: req.ConsultingRoomID,
		ConsultationTime: req.ConsultationTime,
		PatientName:      req.PatientName,
	})
	if err != nil {
		h.countBooking(bookingOutcome(err))
		respondServiceError(c, log, err)
		return
	}

	h.countBooking("created")
	log.Info(
		"appointment created",
		slog.String("appointment_id", appt.ID.String()),
		slog.String("doctor_id", appt.DoctorID.String()),
		slog.String("consulting_room_id", appt.ConsultingRoomID.String()),
		slog.Time("consultation_time", appt.ConsultationTime),
	)
	c.JSON(http.StatusCreated, toAppointmentResponse(appt))
}

func (h *AppointmentsHandler) Filter(c *gin.Context) {
	log := h.log.With(slog.String("handler", "FilterAppointments"))

	var f store.Filter
	if raw := c.Query("doctorId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			log.Warn("invalid request", slog.String("reason", "invalid_doctor_id"))
			respondError(c, http.StatusBadRequest, "doctorId must be a UUID")
			return
		}
		f.DoctorID = &id
	}
	if raw := c.Query("consultingRoomId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			log.Warn("invalid request", slog.String("reason", "invalid_consulting_room_id"))
			respondError(c, http.StatusBadRequest, "consultingRoomId must be a UUID")
			return
		}
		f.ConsultingRoomID = &id
	}

	switch {
	case c.Query("consultationDate") != "":
		day, err := time.ParseInLocation("2006-01-02", c.Query("consultationDate"), h.loc)
		if err != nil {
			log.Warn("invalid request", slog.String("reason", "invalid_consultation_date"))
			respondError(c, http.StatusBadRequest, "consultationDate must be formatted as YYYY-MM-DD")
			return
		}
		from, to := store.DayBounds(day, h.loc)
		f.From = &from
		f.To = &to
	case c.Query("from") != "" || c.Query("to") != "":
		from, to, err := parseRange(c.Query("from"), c.Query("to"))
		if err != nil {
			log.Warn("invalid request", slog.String("reason", "invalid_range"))
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		f.From = from
		f.To = to
	}

	appts, err := h.svc.Filter(c.Request.Context(), f)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	if len(appts) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	out := make([]appointmentResponse, 0, len(appts))
	for _, a := range appts {
		out = append(out, toAppointmentResponse(a))
	}

	log.Debug("appointments filtered", slog.Int("count", len(out)))
	c.JSON(http.StatusOK, out)
}

func (h *AppointmentsHandler) Cancel(c *gin.Context) {
	log := h.log.With(slog.String("handler", "CancelAppointment"))

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Warn("invalid request", slog.String("reason", "invalid_uuid"))
		respondError(c, http.StatusBadRequest, "appointment id must be a UUID")
		return
	}

	cancelled, err := h.svc.Cancel(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	if !cancelled {
		log.Info("appointment not cancellable", slog.String("appointment_id", id.String()))
		c.JSON(http.StatusBadRequest, cancelResponse{
			Cancelled: false,
			Error:     "appointment cannot be cancelled: it may not be pending or does not exist",
		})
		return
	}

	log.Info("appointment cancelled", slog.String("appointment_id", id.String()))
	c.JSON(http.StatusOK, cancelResponse{Cancelled: true})
}

func (h *AppointmentsHandler) Edit(c *gin.Context) {
	log := h.log.With(slog.String("handler", "EditAppointment"))

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Warn("invalid request", slog.String("reason", "invalid_uuid"))
		respondError(c, http.StatusBadRequest, "appointment id must be a UUID")
		return
	}

	var req appointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("invalid request", slog.Any("err", err))
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	appt, err := h.svc.Edit(c.Request.Context(), id, scheduling.EditInput{
		DoctorID:         req.DoctorID,
		ConsultingRoomID: req.ConsultingRoomID,
		ConsultationTime: req.ConsultationTime,
		PatientName:      req.PatientName,
	})
	if err != nil {
		respondServiceError(c, log, err)
		return
	}

	log.Info(
		"appointment edited",
		slog.String("appointment_id", appt.ID.String()),
		slog.Time("consultation_time", appt.ConsultationTime),
	)
	c.JSON(http.StatusOK, toAppointmentResponse(appt))
}

func (h *AppointmentsHandler) countBooking(outcome string) {
	if h.collector == nil {
		return
	}
	h.collector.BookingsTotal.WithLabelValues(outcome).Inc()
}

func bookingOutcome(err error) string {
	switch {
	case errors.Is(err, store.ErrRoomConflict):
		return "room_conflict"
	case errors.Is(err, store.ErrDoctorConflict):
		return "doctor_conflict"
	case errors.Is(err, store.ErrSpacingConflict):
		return "spacing_conflict"
	case errors.Is(err, store.ErrQuotaExceeded):
		return "quota_exceeded"
	case errors.Is(err, store.ErrNotFound):
		return "not_found"
	default:
		var invalid *scheduling.ValidationError
		if errors.As(err, &invalid) {
			return "invalid"
		}
		return "error"
	}
}

func parseRange(fromRaw, toRaw string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if fromRaw != "" {
		t, err := time.Parse(time.RFC3339, fromRaw)
		if err != nil {
			return nil, nil, errors.New("from must be an RFC 3339 timestamp")
		}
		from = &t
	}
	if toRaw != "" {
		t, err := time.Parse(time.RFC3339, toRaw)
		if err != nil {
			return nil, nil, errors.New("to must be an RFC 3339 timestamp")
		}
		to = &t
	}
	return from, to, nil
}

func toAppointmentResponse(a domain.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:               a.ID,
		DoctorID:         a.DoctorID,
		ConsultingRoomID: a.ConsultingRoomID,
		ConsultationTime: a.ConsultationTime,
		PatientName:      a.PatientName,
		Status:           string(a.Status),
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}
