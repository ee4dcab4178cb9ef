package directory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"clinica/backend/internal/domain"
	"clinica/backend/internal/store"
)

type fakeDirectoryRepo struct {
	createDoctorFn         func(ctx context.Context, d domain.Doctor) (domain.Doctor, error)
	findDoctorByIDFn       func(ctx context.Context, id uuid.UUID) (domain.Doctor, error)
	listDoctorsFn          func(ctx context.Context) ([]domain.Doctor, error)
	createConsultingRoomFn func(ctx context.Context, r domain.ConsultingRoom) (domain.ConsultingRoom, error)
	findConsultingRoomFn   func(ctx context.Context, id uuid.UUID) (domain.ConsultingRoom, error)
	listConsultingRoomsFn  func(ctx context.Context) ([]domain.ConsultingRoom, error)
}

func (f *fakeDirectoryRepo) CreateDoctor(ctx context.Context, d domain.Doctor) (domain.Doctor, error) {
	if f.createDoctorFn == nil {
		panic("unexpected call to CreateDoctor")
	}
	return f.createDoctorFn(ctx, d)
}

func (f *fakeDirectoryRepo) FindDoctorByID(ctx context.Context, id uuid.UUID) (domain.Doctor, error) {
	if f.findDoctorByIDFn == nil {
		panic("unexpected call to FindDoctorByID")
	}
	return f.findDoctorByIDFn(ctx, id)
}

func (f *fakeDirectoryRepo) ListDoctors(ctx context.Context) ([]domain.Doctor, error) {
	if f.listDoctorsFn == nil {
		panic("unexpected call to ListDoctors")
	}
	return f.listDoctorsFn(ctx)
}

func (f *fakeDirectoryRepo) CreateConsultingRoom(ctx context.Context, r domain.ConsultingRoom) (domain.ConsultingRoom, error) {
	if f.createConsultingRoomFn == nil {
		panic("unexpected call to CreateConsultingRoom")
	}
	return f.createConsultingRoomFn(ctx, r)
}

func (f *fakeDirectoryRepo) FindConsultingRoomByID(ctx context.Context, id uuid.UUID) (domain.ConsultingRoom, error) {
	if f.findConsultingRoomFn == nil {
		panic("unexpected call to FindConsultingRoomByID")
	}
	return f.findConsultingRoomFn(ctx, id)
}

func (f *fakeDirectoryRepo) ListConsultingRooms(ctx context.Context) ([]domain.ConsultingRoom, error) {
	if f.listConsultingRoomsFn == nil {
		panic("unexpected call to ListConsultingRooms")
	}
	return f.listConsultingRoomsFn(ctx)
}

func TestCreateDoctor(t *testing.T) {
	repo := &fakeDirectoryRepo{
		createDoctorFn: func(ctx context.Context, d domain.Doctor) (domain.Doctor, error) {
			d.ID = uuid.New()
			return d, nil
		},
	}
	svc := NewService(repo)

	d, err := svc.CreateDoctor(context.Background(), CreateDoctorInput{
		FirstName:  "  Ana ",
		LastName:   "Olvera",
		MiddleName: " Maria ",
		Specialty:  "cardiology",
	})
	if err != nil {
		t.Fatalf("CreateDoctor error: %v", err)
	}
	if d.FirstName != "Ana" || d.MiddleName != "Maria" {
		t.Fatalf("names not trimmed: %+v", d)
	}
	if d.ID == uuid.Nil {
		t.Fatalf("expected assigned id")
	}
}

func TestCreateDoctor_Validation(t *testing.T) {
	svc := NewService(&fakeDirectoryRepo{})

	tests := []struct {
		name string
		in   CreateDoctorInput
		want string
	}{
		{name: "missing first name", in: CreateDoctorInput{LastName: "Olvera", Specialty: "general"}, want: "first_name is required"},
		{name: "missing last name", in: CreateDoctorInput{FirstName: "Ana", Specialty: "general"}, want: "last_name is required"},
		{name: "missing specialty", in: CreateDoctorInput{FirstName: "Ana", LastName: "Olvera"}, want: "specialty is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateDoctor(context.Background(), tt.in)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("error type = %T, want *ValidationError", err)
			}
			if vErr.Error() != tt.want {
				t.Fatalf("error = %q, want %q", vErr.Error(), tt.want)
			}
		})
	}
}

func TestGetDoctor(t *testing.T) {
	id := uuid.New()
	repo := &fakeDirectoryRepo{
		findDoctorByIDFn: func(ctx context.Context, gotID uuid.UUID) (domain.Doctor, error) {
			if gotID != id {
				t.Fatalf("looked up %s, want %s", gotID, id)
			}
			return domain.Doctor{}, store.ErrNotFound
		},
	}
	svc := NewService(repo)

	if _, err := svc.GetDoctor(context.Background(), id); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want %v", err, store.ErrNotFound)
	}

	var vErr *ValidationError
	if _, err := svc.GetDoctor(context.Background(), uuid.Nil); !errors.As(err, &vErr) {
		t.Fatalf("nil id error type = %T, want *ValidationError", err)
	}
}

func TestCreateConsultingRoom(t *testing.T) {
	repo := &fakeDirectoryRepo{
		createConsultingRoomFn: func(ctx context.Context, r domain.ConsultingRoom) (domain.ConsultingRoom, error) {
			r.ID = uuid.New()
			return r, nil
		},
	}
	svc := NewService(repo)

	room, err := svc.CreateConsultingRoom(context.Background(), CreateConsultingRoomInput{
		RoomNumber: " 204 ",
		Floor:      "2",
	})
	if err != nil {
		t.Fatalf("CreateConsultingRoom error: %v", err)
	}
	if room.RoomNumber != "204" {
		t.Fatalf("room number = %q, want %q", room.RoomNumber, "204")
	}

	var vErr *ValidationError
	if _, err := svc.CreateConsultingRoom(context.Background(), CreateConsultingRoomInput{Floor: "2"}); !errors.As(err, &vErr) {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	if _, err := svc.CreateConsultingRoom(context.Background(), CreateConsultingRoomInput{RoomNumber: "204"}); !errors.As(err, &vErr) {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
}
