package postgres

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"

	"clinica/backend/internal/domain"
	"clinica/backend/internal/store"
)

// Partial unique indexes guarding slot exclusivity for PENDING rows. Their
// violations are the last-resort guard when two transactions race past the
// advisory locks (e.g. after a manual data load).
const (
	roomSlotIndex   = "appointments_room_slot_key"
	doctorSlotIndex = "appointments_doctor_slot_key"
)

type AppointmentRepo struct {
	db *bun.DB
}

func NewAppointmentRepo(db *bun.DB) *AppointmentRepo {
	return &AppointmentRepo{db: db}
}

type scheduleTx struct {
	tx bun.Tx
}

func (r *AppointmentRepo) FindByID(ctx context.Context, id uuid.UUID) (domain.Appointment, error) {
	var a domain.Appointment
	err := r.db.NewSelect().
		Model(&a).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Appointment{}, store.ErrNotFound
		}
		return domain.Appointment{}, err
	}
	return a, nil
}

func (r *AppointmentRepo) Filter(ctx context.Context, f store.Filter) ([]domain.Appointment, error) {
	rows := make([]domain.Appointment, 0)
	q := r.db.NewSelect().Model(&rows)
	if f.DoctorID != nil {
		q = q.Where("doctor_id = ?", *f.DoctorID)
	}
	if f.ConsultingRoomID != nil {
		q = q.Where("consulting_room_id = ?", *f.ConsultingRoomID)
	}
	if f.From != nil {
		q = q.Where("consultation_time >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("consultation_time < ?", *f.To)
	}
	err := q.OrderExpr("consultation_time ASC, id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AppointmentRepo) InScheduleTx(ctx context.Context, lockKeys []string, fn func(ctx context.Context, tx store.ScheduleTx) error) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := lockSlotKeys(ctx, tx, lockKeys); err != nil {
			return err
		}
		return fn(ctx, scheduleTx{tx: tx})
	})
}

// lockSlotKeys takes the advisory locks in sorted order so that two
// transactions locking the same doctor and room cannot deadlock.
func lockSlotKeys(ctx context.Context, tx bun.Tx, keys []string) error {
	sorted := make([]string, len(keys))
	copy(sorted, keys)
	sort.Strings(sorted)
	for _, key := range sorted {
		if _, err := tx.NewRaw("SELECT pg_advisory_xact_lock(hashtext(?))", key).Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (r scheduleTx) ExistsByRoomAndTime(ctx context.Context, roomID uuid.UUID, at time.Time) (bool, error) {
	return r.tx.NewSelect().
		Model((*domain.Appointment)(nil)).
		Where("consulting_room_id = ?", roomID).
		Where("consultation_time = ?", at).
		Where("status = ?", domain.StatusPending).
		Exists(ctx)
}

func (r scheduleTx) ExistsByDoctorAndTime(ctx context.Context, doctorID uuid.UUID, at time.Time) (bool, error) {
	return r.tx.NewSelect().
		Model((*domain.Appointment)(nil)).
		Where("doctor_id = ?", doctorID).
		Where("consultation_time = ?", at).
		Where("status = ?", domain.StatusPending).
		Exists(ctx)
}

func (r scheduleTx) ListByPatientBetween(ctx context.Context, patientName string, from, to time.Time, excludeID uuid.UUID) ([]domain.Appointment, error) {
	var rows []domain.Appointment
	q := r.tx.NewSelect().
		Model(&rows).
		Where("patient_name = ?", patientName).
		Where("consultation_time >= ?", from).
		Where("consultation_time < ?", to).
		Where("status = ?", domain.StatusPending)
	if excludeID != uuid.Nil {
		q = q.Where("id != ?", excludeID)
	}
	if err := q.OrderExpr("consultation_time ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r scheduleTx) CountByDoctorBetween(ctx context.Context, doctorID uuid.UUID, from, to time.Time, excludeID uuid.UUID) (int, error) {
	q := r.tx.NewSelect().
		Model((*domain.Appointment)(nil)).
		Where("doctor_id = ?", doctorID).
		Where("consultation_time >= ?", from).
		Where("consultation_time < ?", to).
		Where("status = ?", domain.StatusPending)
	if excludeID != uuid.Nil {
		q = q.Where("id != ?", excludeID)
	}
	return q.Count(ctx)
}

func (r scheduleTx) GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Appointment, error) {
	var a domain.Appointment
	err := r.tx.NewSelect().
		Model(&a).
		Where("id = ?", id).
		For("UPDATE").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Appointment{}, store.ErrNotFound
		}
		return domain.Appointment{}, err
	}
	return a, nil
}

func (r scheduleTx) Insert(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	m := appt
	_, err := r.tx.NewInsert().Model(&m).Exec(ctx)
	if err != nil {
		return domain.Appointment{}, mapSlotViolation(err)
	}
	return m, nil
}

func (r scheduleTx) Update(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	m := appt
	res, err := r.tx.NewUpdate().
		Model(&m).
		WherePK().
		Exec(ctx)
	if err != nil {
		return domain.Appointment{}, mapSlotViolation(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Appointment{}, err
	}
	if affected == 0 {
		return domain.Appointment{}, store.ErrNotFound
	}
	return m, nil
}

func mapSlotViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	switch pgErr.ConstraintName {
	case roomSlotIndex:
		return store.ErrRoomConflict
	case doctorSlotIndex:
		return store.ErrDoctorConflict
	}
	return err
}
