package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// AppointmentStatus is the closed set of lifecycle states. The only
// transition is PENDING → CANCELLED; a cancelled appointment is terminal
// and stays in the table for audit and querying.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "PENDING"
	StatusCancelled AppointmentStatus = "CANCELLED"
)

func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusCancelled:
		return true
	}
	return false
}

type Appointment struct {
	bun.BaseModel `bun:"table:appointments"`

	ID               uuid.UUID         `bun:"id,pk,type:uuid"`
	DoctorID         uuid.UUID         `bun:"doctor_id,notnull,type:uuid"`
	ConsultingRoomID uuid.UUID         `bun:"consulting_room_id,notnull,type:uuid"`
	ConsultationTime time.Time         `bun:"consultation_time,notnull"`
	PatientName      string            `bun:"patient_name,notnull"`
	Status           AppointmentStatus `bun:"status,notnull"`
	CreatedAt        time.Time         `bun:"created_at,notnull"`
	UpdatedAt        time.Time         `bun:"updated_at,notnull"`
}

// IsPending reports whether the appointment can still be cancelled or edited.
func (a *Appointment) IsPending() bool {
	return a.Status == StatusPending
}

func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	return a.Status == StatusPending && next == StatusCancelled
}

func (a *Appointment) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if a.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			a.ID = id
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		if a.UpdatedAt.IsZero() {
			a.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		a.UpdatedAt = now
	}
	return nil
}
