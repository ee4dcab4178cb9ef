package store

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrRoomConflict    = errors.New("consulting room is already occupied at this time")
	ErrDoctorConflict  = errors.New("doctor is already booked at this time")
	ErrSpacingConflict = errors.New("patient must have at least 2 hours between appointments on the same day")
	ErrQuotaExceeded   = errors.New("doctor cannot have more than 8 appointments per day")
	ErrPastTime        = errors.New("consultation time is in the past")
	ErrNotPending      = errors.New("appointment is not pending")
)
