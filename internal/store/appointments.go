package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"clinica/backend/internal/domain"
)

// Filter narrows an appointment listing. Nil fields are ignored; the time
// range is inclusive of From and exclusive of To.
type Filter struct {
	DoctorID         *uuid.UUID
	ConsultingRoomID *uuid.UUID
	From             *time.Time
	To               *time.Time
}

type AppointmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (domain.Appointment, error)
	Filter(ctx context.Context, f Filter) ([]domain.Appointment, error)

	// InScheduleTx runs fn inside a transaction holding advisory locks for
	// the given slot keys, serializing concurrent check-then-write
	// sequences that touch the same doctor or room.
	InScheduleTx(ctx context.Context, lockKeys []string, fn func(ctx context.Context, tx ScheduleTx) error) error
}

// ScheduleTx is the transactional view the conflict checker and the mutating
// workflows operate on.
type ScheduleTx interface {
	ExistsByRoomAndTime(ctx context.Context, roomID uuid.UUID, at time.Time) (bool, error)
	ExistsByDoctorAndTime(ctx context.Context, doctorID uuid.UUID, at time.Time) (bool, error)
	ListByPatientBetween(ctx context.Context, patientName string, from, to time.Time, excludeID uuid.UUID) ([]domain.Appointment, error)
	CountByDoctorBetween(ctx context.Context, doctorID uuid.UUID, from, to time.Time, excludeID uuid.UUID) (int, error)

	GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Appointment, error)
	Insert(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	Update(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
}

// DoctorLockKey and RoomLockKey name the advisory-lock keys for a slot's
// owning doctor and room.
func DoctorLockKey(id uuid.UUID) string { return "doctor:" + id.String() }

func RoomLockKey(id uuid.UUID) string { return "room:" + id.String() }
