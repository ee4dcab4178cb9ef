package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"clinica/backend/internal/domain"
	"clinica/backend/internal/store"
)

type DirectoryRepo struct {
	db *bun.DB
}

func NewDirectoryRepo(db *bun.DB) *DirectoryRepo {
	return &DirectoryRepo{db: db}
}

func (r *DirectoryRepo) CreateDoctor(ctx context.Context, d domain.Doctor) (domain.Doctor, error) {
	m := d
	if _, err := r.db.NewInsert().Model(&m).Exec(ctx); err != nil {
		return domain.Doctor{}, err
	}
	return m, nil
}

func (r *DirectoryRepo) FindDoctorByID(ctx context.Context, id uuid.UUID) (domain.Doctor, error) {
	var d domain.Doctor
	err := r.db.NewSelect().
		Model(&d).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Doctor{}, store.ErrNotFound
		}
		return domain.Doctor{}, err
	}
	return d, nil
}

func (r *DirectoryRepo) ListDoctors(ctx context.Context) ([]domain.Doctor, error) {
	rows := make([]domain.Doctor, 0)
	err := r.db.NewSelect().
		Model(&rows).
		OrderExpr("last_name ASC, first_name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *DirectoryRepo) CreateConsultingRoom(ctx context.Context, room domain.ConsultingRoom) (domain.ConsultingRoom, error) {
	m := room
	if _, err := r.db.NewInsert().Model(&m).Exec(ctx); err != nil {
		return domain.ConsultingRoom{}, err
	}
	return m, nil
}

func (r *DirectoryRepo) FindConsultingRoomByID(ctx context.Context, id uuid.UUID) (domain.ConsultingRoom, error) {
	var room domain.ConsultingRoom
	err := r.db.NewSelect().
		Model(&room).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ConsultingRoom{}, store.ErrNotFound
		}
		return domain.ConsultingRoom{}, err
	}
	return room, nil
}

func (r *DirectoryRepo) ListConsultingRooms(ctx context.Context) ([]domain.ConsultingRoom, error) {
	rows := make([]domain.ConsultingRoom, 0)
	err := r.db.NewSelect().
		Model(&rows).
		OrderExpr("floor ASC, room_number ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
