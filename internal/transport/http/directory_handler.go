package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"clinica/backend/internal/domain"
	"clinica/backend/internal/service/directory"
)

type directoryService interface {
	CreateDoctor(ctx context.Context, in directory.CreateDoctorInput) (domain.Doctor, error)
	GetDoctor(ctx context.Context, id uuid.UUID) (domain.Doctor, error)
	ListDoctors(ctx context.Context) ([]domain.Doctor, error)
	CreateConsultingRoom(ctx context.Context, in directory.CreateConsultingRoomInput) (domain.ConsultingRoom, error)
	GetConsultingRoom(ctx context.Context, id uuid.UUID) (domain.ConsultingRoom, error)
	ListConsultingRooms(ctx context.Context) ([]domain.ConsultingRoom, error)
}

type DirectoryHandler struct {
	svc directoryService
	log *slog.Logger
}

func NewDirectoryHandler(svc directoryService, log *slog.Logger) *DirectoryHandler {
	if log == nil {
		log = slog.Default()
	}
	return &DirectoryHandler{
		svc: svc,
		log: log.With(slog.String("component", "http.directory")),
	}
}

type doctorRequest struct {
	FirstName  string `json:"firstName" binding:"required"`
	LastName   string `json:"lastName" binding:"required"`
	MiddleName string `json:"middleName"`
	Specialty  string `json:"specialty" binding:"required"`
}

type doctorResponse struct {
	ID         uuid.UUID `json:"id"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	MiddleName string    `json:"middleName,omitempty"`
	Specialty  string    `json:"specialty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type consultingRoomRequest struct {
	RoomNumber string `json:"roomNumber" binding:"required"`
	Floor      string `json:"floor" binding:"required"`
}

type consultingRoomResponse struct {
	ID         uuid.UUID `json:"id"`
	RoomNumber string    `json:"roomNumber"`
	Floor      string    `json:"floor"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (h *DirectoryHandler) CreateDoctor(c *gin.Context) {
	log := h.log.With(slog.String("handler", "CreateDoctor"))

	var req doctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("invalid request", slog.Any("err", err))
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	d, err := h.svc.CreateDoctor(c.Request.Context(), directory.CreateDoctorInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		MiddleName: req.MiddleName,
		Specialty:  req.Specialty,
	})
	if err != nil {
		respondServiceError(c, log, err)
		return
	}

	log.Info("doctor created", slog.String("doctor_id", d.ID.String()))
	c.JSON(http.StatusCreated, toDoctorResponse(d))
}

func (h *DirectoryHandler) GetDoctor(c *gin.Context) {
	log := h.log.With(slog.String("handler", "GetDoctor"))

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Warn("invalid request", slog.String("reason", "invalid_uuid"))
		respondError(c, http.StatusBadRequest, "doctor id must be a UUID")
		return
	}

	d, err := h.svc.GetDoctor(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, toDoctorResponse(d))
}

func (h *DirectoryHandler) ListDoctors(c *gin.Context) {
	log := h.log.With(slog.String("handler", "ListDoctors"))

	doctors, err := h.svc.ListDoctors(c.Request.Context())
	if err != nil {
		respondServiceError(c, log, err)
		return
	}

	out := make([]doctorResponse, 0, len(doctors))
	for _, d := range doctors {
		out = append(out, toDoctorResponse(d))
	}
	c.JSON(http.StatusOK, out)
}

func (h *DirectoryHandler) CreateConsultingRoom(c *gin.Context) {
	log := h.log.With(slog.String("handler", "CreateConsultingRoom"))

	var req consultingRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("invalid request", slog.Any("err", err))
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	room, err := h.svc.CreateConsultingRoom(c.Request.Context(), directory.CreateConsultingRoomInput{
		RoomNumber: req.RoomNumber,
		Floor:      req.Floor,
	})
	if err != nil {
		respondServiceError(c, log, err)
		return
	}

	log.Info("consulting room created", slog.String("consulting_room_id", room.ID.String()))
	c.JSON(http.StatusCreated, toConsultingRoomResponse(room))
}

func (h *DirectoryHandler) GetConsultingRoom(c *gin.Context) {
	log := h.log.With(slog.String("handler", "GetConsultingRoom"))

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Warn("invalid request", slog.String("reason", "invalid_uuid"))
		respondError(c, http.StatusBadRequest, "consulting room id must be a UUID")
		return
	}

	room, err := h.svc.GetConsultingRoom(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, toConsultingRoomResponse(room))
}

func (h *DirectoryHandler) ListConsultingRooms(c *gin.Context) {
	log := h.log.With(slog.String("handler", "ListConsultingRooms"))

	rooms, err := h.svc.ListConsultingRooms(c.Request.Context())
	if err != nil {
		respondServiceError(c, log, err)
		return
	}

	out := make([]consultingRoomResponse, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, toConsultingRoomResponse(room))
	}
	c.JSON(http.StatusOK, out)
}

func toDoctorResponse(d domain.Doctor) doctorResponse {
	return doctorResponse{
		ID:         d.ID,
		FirstName:  d.FirstName,
		LastName:   d.LastName,
		MiddleName: d.MiddleName,
		Specialty:  d.Specialty,
		CreatedAt:  d.CreatedAt,
	}
}

func toConsultingRoomResponse(r domain.ConsultingRoom) consultingRoomResponse {
	return consultingRoomResponse{
		ID:         r.ID,
		RoomNumber: r.RoomNumber,
		Floor:      r.Floor,
		CreatedAt:  r.CreatedAt,
	}
}
