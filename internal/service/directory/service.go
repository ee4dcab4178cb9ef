package directory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"clinica/backend/internal/domain"
	"clinica/backend/internal/store"
)

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

// Service manages doctor and consulting-room master data. Create and read
// only; the scheduling engine never mutates these records.
type Service struct {
	repo store.DirectoryRepository
}

func NewService(repo store.DirectoryRepository) *Service {
	return &Service{repo: repo}
}

type CreateDoctorInput struct {
	FirstName  string
	LastName   string
	MiddleName string
	Specialty  string
}

func (s *Service) CreateDoctor(ctx context.Context, in CreateDoctorInput) (domain.Doctor, error) {
	firstName := strings.TrimSpace(in.FirstName)
	if firstName == "" {
		return domain.Doctor{}, validationError("first_name is required")
	}
	lastName := strings.TrimSpace(in.LastName)
	if lastName == "" {
		return domain.Doctor{}, validationError("last_name is required")
	}
	specialty := strings.TrimSpace(in.Specialty)
	if specialty == "" {
		return domain.Doctor{}, validationError("specialty is required")
	}

	return s.repo.CreateDoctor(ctx, domain.Doctor{
		FirstName:  firstName,
		LastName:   lastName,
		MiddleName: strings.TrimSpace(in.MiddleName),
		Specialty:  specialty,
	})
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (domain.Doctor, error) {
	if id == uuid.Nil {
		return domain.Doctor{}, validationError("doctor_id is required")
	}
	return s.repo.FindDoctorByID(ctx, id)
}

func (s *Service) ListDoctors(ctx context.Context) ([]domain.Doctor, error) {
	return s.repo.ListDoctors(ctx)
}

type CreateConsultingRoomInput struct {
	RoomNumber string
	Floor      string
}

func (s *Service) CreateConsultingRoom(ctx context.Context, in CreateConsultingRoomInput) (domain.ConsultingRoom, error) {
	roomNumber := strings.TrimSpace(in.RoomNumber)
	if roomNumber == "" {
		return domain.ConsultingRoom{}, validationError("room_number is required")
	}
	floor := strings.TrimSpace(in.Floor)
	if floor == "" {
		return domain.ConsultingRoom{}, validationError("floor is required")
	}

	return s.repo.CreateConsultingRoom(ctx, domain.ConsultingRoom{
		RoomNumber: roomNumber,
		Floor:      floor,
	})
}

func (s *Service) GetConsultingRoom(ctx context.Context, id uuid.UUID) (domain.ConsultingRoom, error) {
	if id == uuid.Nil {
		return domain.ConsultingRoom{}, validationError("consulting_room_id is required")
	}
	return s.repo.FindConsultingRoomByID(ctx, id)
}

func (s *Service) ListConsultingRooms(ctx context.Context) ([]domain.ConsultingRoom, error) {
	return s.repo.ListConsultingRooms(ctx)
}
