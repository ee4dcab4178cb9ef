package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Doctor and ConsultingRoom are master data. The scheduling engine only ever
// resolves them by id; creation and listing happen through the directory
// service.
type Doctor struct {
	bun.BaseModel `bun:"table:doctors"`

	ID         uuid.UUID `bun:"id,pk,type:uuid"`
	FirstName  string    `bun:"first_name,notnull"`
	LastName   string    `bun:"last_name,notnull"`
	MiddleName string    `bun:"middle_name"`
	Specialty  string    `bun:"specialty,notnull"`
	CreatedAt  time.Time `bun:"created_at,notnull"`
}

type ConsultingRoom struct {
	bun.BaseModel `bun:"table:consulting_rooms"`

	ID         uuid.UUID `bun:"id,pk,type:uuid"`
	RoomNumber string    `bun:"room_number,notnull"`
	Floor      string    `bun:"floor,notnull"`
	CreatedAt  time.Time `bun:"created_at,notnull"`
}

func (d *Doctor) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); !ok {
		return nil
	}
	if d.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		d.ID = id
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	return nil
}

func (r *ConsultingRoom) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); !ok {
		return nil
	}
	if r.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		r.ID = id
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	return nil
}
