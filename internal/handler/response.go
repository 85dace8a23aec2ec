package handler

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/aebalz/mindful-journey/internal/llm"
	"github.com/aebalz/mindful-journey/internal/model"
	"github.com/aebalz/mindful-journey/internal/service"
	"github.com/aebalz/mindful-journey/internal/streak"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeDataIntegrity     = "data_integrity"
	CodeValidation        = "validation"
	CodeUnknownMood       = "unknown_mood"
	CodeEmptyText         = "empty_text"
	CodeUnsupportedFormat = "unsupported_format"
	CodeNotFound          = "not_found"
	CodeInternal          = "internal"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// CheckInRequest logs today's mood.
type CheckInRequest struct {
	Mood    string `json:"mood" binding:"required" validate:"required" example:"calm"`
	Journal string `json:"journal" binding:"max=5000" validate:"max=5000" example:"Went for a long walk."`
}

// TextRequest carries free text for the assistant.
type TextRequest struct {
	Text string `json:"text" binding:"required,max=4000" validate:"required,max=4000" example:"I have an exam tomorrow and can't focus."`
}

// AffirmationRequest asks for an affirmation for a mood.
type AffirmationRequest struct {
	Mood string `json:"mood" binding:"required" validate:"required" example:"sad"`
}

// StreakResponse is the current streak.
type StreakResponse struct {
	Streak int `json:"streak"`
}

// HistoryResponse is the charted window.
type HistoryResponse struct {
	Logs  []model.MoodLog     `json:"logs"`
	Chart []streak.ChartPoint `json:"chart"`
}

var validate = validator.New()

// errorStatus maps service errors onto HTTP answers. Integrity errors are
// checked first: a stored unknown mood is a server fault, not a bad request.
func errorStatus(err error) (int, ErrorResponse) {
	var integrity *streak.IntegrityError
	switch {
	case errors.As(err, &integrity):
		return http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Code: CodeDataIntegrity}
	case errors.Is(err, model.ErrUnknownMood):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeUnknownMood}
	case errors.Is(err, llm.ErrEmptyText):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeEmptyText}
	case errors.Is(err, service.ErrUnsupportedFormat):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeUnsupportedFormat}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error", Code: CodeInternal}
	}
}

func validationError(err error) ErrorResponse {
	return ErrorResponse{Error: err.Error(), Code: CodeValidation}
}
