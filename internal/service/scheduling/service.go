package scheduling

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

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

// Service owns the appointment lifecycle: the create/cancel/edit workflows
// run their check-then-write sequences inside a single advisory-locked store
// transaction, and status transitions happen nowhere else.
type Service struct {
	repo      store.AppointmentRepository
	directory store.DirectoryRepository
	loc       *time.Location
}

func NewService(repo store.AppointmentRepository, directory store.DirectoryRepository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, directory: directory, loc: loc}
}

type CreateInput struct {
	DoctorID         uuid.UUID
	ConsultingRoomID uuid.UUID
	ConsultationTime time.Time
	PatientName      string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Appointment, error) {
	name := strings.TrimSpace(in.PatientName)
	if name == "" {
		return domain.Appointment{}, validationError("patient_name is required")
	}
	if in.DoctorID == uuid.Nil {
		return domain.Appointment{}, validationError("doctor_id is required")
	}
	if in.ConsultingRoomID == uuid.Nil {
		return domain.Appointment{}, validationError("consulting_room_id is required")
	}
	if in.ConsultationTime.IsZero() {
		return domain.Appointment{}, validationError("consultation_time is required")
	}
	at := in.ConsultationTime.UTC()

	if err := s.resolveReferences(ctx, in.DoctorID, in.ConsultingRoomID); err != nil {
		return domain.Appointment{}, err
	}

	lockKeys := []string{store.DoctorLockKey(in.DoctorID), store.RoomLockKey(in.ConsultingRoomID)}

	var out domain.Appointment
	err := s.repo.InScheduleTx(ctx, lockKeys, func(ctx context.Context, tx store.ScheduleTx) error {
		if err := checkRoomAvailability(ctx, tx, in.ConsultingRoomID, at); err != nil {
			return err
		}
		if err := checkDoctorAvailability(ctx, tx, in.DoctorID, at); err != nil {
			return err
		}
		if err := checkPatientSpacing(ctx, tx, name, at, uuid.Nil, s.loc); err != nil {
			return err
		}
		if err := checkDoctorDailyQuota(ctx, tx, in.DoctorID, at, uuid.Nil, s.loc); err != nil {
			return err
		}

		created, err := tx.Insert(ctx, domain.Appointment{
			DoctorID:         in.DoctorID,
			ConsultingRoomID: in.ConsultingRoomID,
			ConsultationTime: at,
			PatientName:      name,
			Status:           domain.StatusPending,
		})
		if err != nil {
			return err
		}
		out = created
		return nil
	})
	if err != nil {
		return domain.Appointment{}, err
	}
	return out, nil
}

// Cancel flips a pending appointment to cancelled. An absent or already
// non-pending appointment reports false; that is an expected outcome, not an
// error.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (bool, error) {
	if id == uuid.Nil {
		return false, validationError("appointment_id is required")
	}

	cancelled := false
	err := s.repo.InScheduleTx(ctx, nil, func(ctx context.Context, tx store.ScheduleTx) error {
		a, err := tx.GetForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil
			}
			return err
		}
		if !a.CanTransitionTo(domain.StatusCancelled) {
			return nil
		}

		a.Status = domain.StatusCancelled
		if _, err := tx.Update(ctx, a); err != nil {
			return err
		}
		cancelled = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return cancelled, nil
}

type EditInput struct {
	DoctorID         uuid.UUID
	ConsultingRoomID uuid.UUID
	ConsultationTime time.Time
	PatientName      string
}

func (s *Service) Edit(ctx context.Context, id uuid.UUID, in EditInput) (domain.Appointment, error) {
	if id == uuid.Nil {
		return domain.Appointment{}, validationError("appointment_id is required")
	}
	name := strings.TrimSpace(in.PatientName)
	if name == "" {
		return domain.Appointment{}, validationError("patient_name is required")
	}
	if in.DoctorID == uuid.Nil {
		return domain.Appointment{}, validationError("doctor_id is required")
	}
	if in.ConsultingRoomID == uuid.Nil {
		return domain.Appointment{}, validationError("consulting_room_id is required")
	}
	if in.ConsultationTime.IsZero() {
		return domain.Appointment{}, validationError("consultation_time is required")
	}
	at := in.ConsultationTime.UTC()

	if err := s.resolveReferences(ctx, in.DoctorID, in.ConsultingRoomID); err != nil {
		return domain.Appointment{}, err
	}

	lockKeys := []string{store.DoctorLockKey(in.DoctorID), store.RoomLockKey(in.ConsultingRoomID)}

	var out domain.Appointment
	err := s.repo.InScheduleTx(ctx, lockKeys, func(ctx context.Context, tx store.ScheduleTx) error {
		a, err := tx.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !a.IsPending() {
			return store.ErrNotPending
		}

		if err := checkNotPast(at, time.Now().UTC()); err != nil {
			return err
		}

		// An appointment moving within its own day already counts toward
		// that day's quota; only a day change re-checks it.
		if !store.SameDay(a.ConsultationTime, at, s.loc) {
			if err := checkDoctorDailyQuota(ctx, tx, in.DoctorID, at, a.ID, s.loc); err != nil {
				return err
			}
		}

		a.DoctorID = in.DoctorID
		a.ConsultingRoomID = in.ConsultingRoomID
		a.ConsultationTime = at
		a.PatientName = name

		updated, err := tx.Update(ctx, a)
		if err != nil {
			return err
		}
		out = updated
		return nil
	})
	if err != nil {
		return domain.Appointment{}, err
	}
	return out, nil
}

// Filter is the read side: all provided filters apply together, the time
// range is [from, to), and no match yields an empty slice.
func (s *Service) Filter(ctx context.Context, f store.Filter) ([]domain.Appointment, error) {
	if f.From != nil {
		from := f.From.UTC()
		f.From = &from
	}
	if f.To != nil {
		to := f.To.UTC()
		f.To = &to
	}
	return s.repo.Filter(ctx, f)
}

func (s *Service) resolveReferences(ctx context.Context, doctorID, roomID uuid.UUID) error {
	if _, err := s.directory.FindDoctorByID(ctx, doctorID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("doctor %s: %w", doctorID, store.ErrNotFound)
		}
		return err
	}
	if _, err := s.directory.FindConsultingRoomByID(ctx, roomID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("consulting room %s: %w", roomID, store.ErrNotFound)
		}
		return err
	}
	return nil
}
