package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"

	"clinica/backend/internal/store"
)

// Conflict checks. Each is a pure read of the transactional view: they decide
// whether committing the candidate would break a booking rule and perform no
// writes themselves.

func checkRoomAvailability(ctx context.Context, tx store.ScheduleTx, roomID uuid.UUID, at time.Time) error {
	taken, err := tx.ExistsByRoomAndTime(ctx, roomID, at)
	if err != nil {
		return err
	}
	if taken {
		return store.ErrRoomConflict
	}
	return nil
}

func checkDoctorAvailability(ctx context.Context, tx store.ScheduleTx, doctorID uuid.UUID, at time.Time) error {
	taken, err := tx.ExistsByDoctorAndTime(ctx, doctorID, at)
	if err != nil {
		return err
	}
	if taken {
		return store.ErrDoctorConflict
	}
	return nil
}

// checkPatientSpacing rejects the candidate when any of the patient's other
// pending appointments on the same calendar day is closer than MinPatientGap.
// excludeID skips the appointment being edited; pass uuid.Nil on create.
func checkPatientSpacing(ctx context.Context, tx store.ScheduleTx, patientName string, at time.Time, excludeID uuid.UUID, loc *time.Location) error {
	from, to := store.DayBounds(at, loc)
	sameDay, err := tx.ListByPatientBetween(ctx, patientName, from, to, excludeID)
	if err != nil {
		return err
	}
	for _, existing := range sameDay {
		gap := existing.ConsultationTime.Sub(at)
		if gap < 0 {
			gap = -gap
		}
		if gap < store.MinPatientGap {
			return store.ErrSpacingConflict
		}
	}
	return nil
}

// checkDoctorDailyQuota rejects when the doctor already carries the daily
// maximum of pending appointments on the candidate's calendar day.
func checkDoctorDailyQuota(ctx context.Context, tx store.ScheduleTx, doctorID uuid.UUID, at time.Time, excludeID uuid.UUID, loc *time.Location) error {
	from, to := store.DayBounds(at, loc)
	n, err := tx.CountByDoctorBetween(ctx, doctorID, from, to, excludeID)
	if err != nil {
		return err
	}
	if n >= store.MaxDoctorAppointmentsPerDay {
		return store.ErrQuotaExceeded
	}
	return nil
}

func checkNotPast(at, now time.Time) error {
	if at.Before(now) {
		return store.ErrPastTime
	}
	return nil
}
