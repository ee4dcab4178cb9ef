package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"clinica/backend/internal/service/directory"
	"clinica/backend/internal/service/scheduling"
	"clinica/backend/internal/store"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, errorResponse{Error: message})
}

func respondServiceError(c *gin.Context, log *slog.Logger, err error) {
	var schedInvalid *scheduling.ValidationError
	var dirInvalid *directory.ValidationError
	if errors.As(err, &schedInvalid) || errors.As(err, &dirInvalid) {
		log.Warn("invalid request", slog.Any("err", err))
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		log.Info("resource not found", slog.Any("err", err))
		respondError(c, http.StatusNotFound, err.Error())

	case errors.Is(err, store.ErrRoomConflict), errors.Is(err, store.ErrDoctorConflict):
		log.Info("slot conflict", slog.Any("err", err))
		respondError(c, http.StatusConflict, err.Error())

	case errors.Is(err, store.ErrSpacingConflict),
		errors.Is(err, store.ErrQuotaExceeded),
		errors.Is(err, store.ErrPastTime),
		errors.Is(err, store.ErrNotPending):
		log.Info("booking rule rejected", slog.Any("err", err))
		respondError(c, http.StatusBadRequest, err.Error())

	default:
		log.Error("request failed", slog.Any("err", err))
		respondError(c, http.StatusInternalServerError, "internal error")
	}
}
