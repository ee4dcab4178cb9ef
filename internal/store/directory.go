package store

import (
	"context"

	"github.com/google/uuid"

	"clinica/backend/internal/domain"
)

// DirectoryRepository holds doctor and consulting-room master records. The
// scheduling engine only reads it; writes come from the directory service.
type DirectoryRepository interface {
	CreateDoctor(ctx context.Context, d domain.Doctor) (domain.Doctor, error)
	FindDoctorByID(ctx context.Context, id uuid.UUID) (domain.Doctor, error)
	ListDoctors(ctx context.Context) ([]domain.Doctor, error)

	CreateConsultingRoom(ctx context.Context, r domain.ConsultingRoom) (domain.ConsultingRoom, error)
	FindConsultingRoomByID(ctx context.Context, id uuid.UUID) (domain.ConsultingRoom, error)
	ListConsultingRooms(ctx context.Context) ([]domain.ConsultingRoom, error)
}
