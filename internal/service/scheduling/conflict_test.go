package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"clinica/backend/internal/domain"
	"clinica/backend/internal/store"
)

// fakeScheduleTx implements store.ScheduleTx with configurable functions.
// Unconfigured methods panic so tests notice unexpected calls.
type fakeScheduleTx struct {
	existsByRoomAndTimeFn   func(ctx context.Context, roomID uuid.UUID, at time.Time) (bool, error)
	existsByDoctorAndTimeFn func(ctx context.Context, doctorID uuid.UUID, at time.Time) (bool, error)
	listByPatientBetweenFn  func(ctx context.Context, patientName string, from, to time.Time, excludeID uuid.UUID) ([]domain.Appointment, error)
	countByDoctorBetweenFn  func(ctx context.Context, doctorID uuid.UUID, from, to time.Time, excludeID uuid.UUID) (int, error)
	getForUpdateFn          func(ctx context.Context, id uuid.UUID) (domain.Appointment, error)
	insertFn                func(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	updateFn                func(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
}

func (f *fakeScheduleTx) ExistsByRoomAndTime(ctx context.Context, roomID uuid.UUID, at time.Time) (bool, error) {
	if f.existsByRoomAndTimeFn == nil {
		panic("unexpected call to ExistsByRoomAndTime")
	}
	return f.existsByRoomAndTimeFn(ctx, roomID, at)
}

func (f *fakeScheduleTx) ExistsByDoctorAndTime(ctx context.Context, doctorID uuid.UUID, at time.Time) (bool, error) {
	if f.existsByDoctorAndTimeFn == nil {
		panic("unexpected call to ExistsByDoctorAndTime")
	}
	return f.existsByDoctorAndTimeFn(ctx, doctorID, at)
}

func (f *fakeScheduleTx) ListByPatientBetween(ctx context.Context, patientName string, from, to time.Time, excludeID uuid.UUID) ([]domain.Appointment, error) {
	if f.listByPatientBetweenFn == nil {
		panic("unexpected call to ListByPatientBetween")
	}
	return f.listByPatientBetweenFn(ctx, patientName, from, to, excludeID)
}

func (f *fakeScheduleTx) CountByDoctorBetween(ctx context.Context, doctorID uuid.UUID, from, to time.Time, excludeID uuid.UUID) (int, error) {
	if f.countByDoctorBetweenFn == nil {
		panic("unexpected call to CountByDoctorBetween")
	}
	return f.countByDoctorBetweenFn(ctx, doctorID, from, to, excludeID)
}

func (f *fakeScheduleTx) GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Appointment, error) {
	if f.getForUpdateFn == nil {
		panic("unexpected call to GetForUpdate")
	}
	return f.getForUpdateFn(ctx, id)
}

func (f *fakeScheduleTx) Insert(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	if f.insertFn == nil {
		panic("unexpected call to Insert")
	}
	return f.insertFn(ctx, appt)
}

func (f *fakeScheduleTx) Update(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	if f.updateFn == nil {
		panic("unexpected call to Update")
	}
	return f.updateFn(ctx, appt)
}

func TestCheckRoomAvailability(t *testing.T) {
	at := time.Date(2030, 5, 9, 10, 0, 0, 0, time.UTC)
	roomID := uuid.New()

	tx := &fakeScheduleTx{
		existsByRoomAndTimeFn: func(ctx context.Context, gotRoom uuid.UUID, gotAt time.Time) (bool, error) {
			if gotRoom != roomID || !gotAt.Equal(at) {
				t.Fatalf("queried room=%s at=%v", gotRoom, gotAt)
			}
			return false, nil
		},
	}
	if err := checkRoomAvailability(context.Background(), tx, roomID, at); err != nil {
		t.Fatalf("free room err = %v, want nil", err)
	}

	tx.existsByRoomAndTimeFn = func(ctx context.Context, _ uuid.UUID, _ time.Time) (bool, error) {
		return true, nil
	}
	if err := checkRoomAvailability(context.Background(), tx, roomID, at); !errors.Is(err, store.ErrRoomConflict) {
		t.Fatalf("taken room err = %v, want %v", err, store.ErrRoomConflict)
	}
}

func TestCheckDoctorAvailability(t *testing.T) {
	at := time.Date(2030, 5, 9, 10, 0, 0, 0, time.UTC)
	doctorID := uuid.New()

	tx := &fakeScheduleTx{
		existsByDoctorAndTimeFn: func(ctx context.Context, _ uuid.UUID, _ time.Time) (bool, error) {
			return false, nil
		},
	}
	if err := checkDoctorAvailability(context.Background(), tx, doctorID, at); err != nil {
		t.Fatalf("free doctor err = %v, want nil", err)
	}

	tx.existsByDoctorAndTimeFn = func(ctx context.Context, _ uuid.UUID, _ time.Time) (bool, error) {
		return true, nil
	}
	if err := checkDoctorAvailability(context.Background(), tx, doctorID, at); !errors.Is(err, store.ErrDoctorConflict) {
		t.Fatalf("busy doctor err = %v, want %v", err, store.ErrDoctorConflict)
	}
}

func TestCheckPatientSpacing(t *testing.T) {
	at := time.Date(2030, 5, 9, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		existing []time.Duration // offsets from at of same-day appointments
		wantErr  error
	}{
		{name: "no other appointments", existing: nil, wantErr: nil},
		{name: "119 minutes after", existing: []time.Duration{119 * time.Minute}, wantErr: store.ErrSpacingConflict},
		{name: "119 minutes before", existing: []time.Duration{-119 * time.Minute}, wantErr: store.ErrSpacingConflict},
		{name: "exactly 120 minutes", existing: []time.Duration{120 * time.Minute}, wantErr: nil},
		{name: "one near among far", existing: []time.Duration{-4 * time.Hour, 30 * time.Minute}, wantErr: store.ErrSpacingConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &fakeScheduleTx{
				listByPatientBetweenFn: func(ctx context.Context, patientName string, from, to time.Time, excludeID uuid.UUID) ([]domain.Appointment, error) {
					wantFrom, wantTo := store.DayBounds(at, time.UTC)
					if !from.Equal(wantFrom) || !to.Equal(wantTo) {
						t.Fatalf("queried [%v, %v), want [%v, %v)", from, to, wantFrom, wantTo)
					}
					out := make([]domain.Appointment, 0, len(tt.existing))
					for _, off := range tt.existing {
						out = append(out, domain.Appointment{ID: uuid.New(), ConsultationTime: at.Add(off)})
					}
					return out, nil
				},
			}
			err := checkPatientSpacing(context.Background(), tx, "Alice", at, uuid.Nil, time.UTC)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckDoctorDailyQuota(t *testing.T) {
	at := time.Date(2030, 5, 9, 12, 0, 0, 0, time.UTC)
	doctorID := uuid.New()
	excludeID := uuid.New()

	tests := []struct {
		name    string
		count   int
		wantErr error
	}{
		{name: "below quota", count: 7, wantErr: nil},
		{name: "at quota", count: 8, wantErr: store.ErrQuotaExceeded},
		{name: "above quota", count: 9, wantErr: store.ErrQuotaExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &fakeScheduleTx{
				countByDoctorBetweenFn: func(ctx context.Context, gotDoctor uuid.UUID, from, to time.Time, gotExclude uuid.UUID) (int, error) {
					if gotDoctor != doctorID {
						t.Fatalf("queried doctor = %s, want %s", gotDoctor, doctorID)
					}
					if gotExclude != excludeID {
						t.Fatalf("exclude id = %s, want %s", gotExclude, excludeID)
					}
					return tt.count, nil
				},
			}
			err := checkDoctorDailyQuota(context.Background(), tx, doctorID, at, excludeID, time.UTC)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckNotPast(t *testing.T) {
	now := time.Date(2030, 5, 9, 12, 0, 0, 0, time.UTC)

	if err := checkNotPast(now.Add(-time.Second), now); !errors.Is(err, store.ErrPastTime) {
		t.Fatalf("past err = %v, want %v", err, store.ErrPastTime)
	}
	if err := checkNotPast(now, now); err != nil {
		t.Fatalf("exact now err = %v, want nil", err)
	}
	if err := checkNotPast(now.Add(time.Second), now); err != nil {
		t.Fatalf("future err = %v, want nil", err)
	}
}
