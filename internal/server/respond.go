package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cardwall/backend/internal/problem"
	"github.com/cardwall/backend/internal/service"
)

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		problem.Write(w, http.StatusInternalServerError, "Error preparing response.")
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// decodeJSON decodes the request body into dst, rejecting unknown fields.
// On failure it writes a 400 problem response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	err := decoder.Decode(dst)
	if err == nil {
		return true
	}

	var syntaxError *json.SyntaxError
	var unmarshalTypeError *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxError):
		problem.Write(w, http.StatusBadRequest,
			fmt.Sprintf("Request body contains badly-formed JSON (at position %d).", syntaxError.Offset))
	case errors.Is(err, io.ErrUnexpectedEOF):
		problem.Write(w, http.StatusBadRequest, "Request body contains badly-formed JSON.")
	case errors.As(err, &unmarshalTypeError):
		problem.Write(w, http.StatusBadRequest,
			fmt.Sprintf("Request body contains an invalid value for the %q field (at position %d).",
				unmarshalTypeError.Field, unmarshalTypeError.Offset))
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
		problem.Write(w, http.StatusBadRequest,
			fmt.Sprintf("Request body contains unknown field %s.", fieldName))
	case errors.Is(err, io.EOF):
		problem.Write(w, http.StatusBadRequest, "Request body must not be empty.")
	default:
		slog.Error("failed to decode request body", "error", err)
		problem.Write(w, http.StatusInternalServerError, "Error processing request.")
	}
	return false
}

// respondServiceError maps service-layer errors onto problem responses.
func respondServiceError(w http.ResponseWriter, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		problem.Write(w, http.StatusUnprocessableEntity, vErr.Error())
	case errors.Is(err, service.ErrCardNotFound),
		errors.Is(err, service.ErrItemNotFound):
		problem.Write(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		problem.Write(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		problem.Write(w, http.StatusUnauthorized, err.Error())
	default:
		problem.Write(w, http.StatusInternalServerError, err.Error())
	}
}
