package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/zatekoja/tourism-directory/backend/internal/auth"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/tourism-directory/backend/pkg/errors"
)

const maxBodyBytes = 1 << 20

// Envelope is the shape of every API response
type Envelope struct {
	Success    bool               `json:"success"`
	Data       interface{}        `json:"data,omitempty"`
	Message    string             `json:"message,omitempty"`
	Error      string             `json:"error,omitempty"`
	Pagination *entities.PageInfo `json:"pagination,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondWithData(w http.ResponseWriter, data interface{}, message string) {
	respondWithJSON(w, http.StatusOK, Envelope{Success: true, Data: data, Message: message})
}

func respondWithMessage(w http.ResponseWriter, message string) {
	respondWithJSON(w, http.StatusOK, Envelope{Success: true, Message: message})
}

func respondWithPage(w http.ResponseWriter, data interface{}, page entities.Page, total int) {
	info := entities.NewPageInfo(page, total)
	respondWithJSON(w, http.StatusOK, Envelope{Success: true, Data: data, Pagination: &info})
}

// respondWithError maps err onto the envelope. Errors that are not client
// errors are logged and replaced with fallback.
func respondWithError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status, message := statusFor(err, fallback)
	if status >= http.StatusInternalServerError {
		observability.LoggerFromContext(r.Context()).Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Msg(fallback)
	}
	respondWithJSON(w, status, Envelope{Success: false, Error: message})
}

func statusFor(err error, fallback string) (int, string) {
	appErr, ok := apperrors.As(err)
	if !ok {
		return http.StatusInternalServerError, fallback
	}

	switch appErr.Type {
	case apperrors.ErrorTypeNotFound:
		return http.StatusNotFound, appErr.Message
	case apperrors.ErrorTypeValidation:
		return http.StatusBadRequest, appErr.Message
	case apperrors.ErrorTypeConflict:
		return http.StatusConflict, appErr.Message
	case apperrors.ErrorTypeUnauthorized:
		return http.StatusUnauthorized, appErr.Message
	case apperrors.ErrorTypeForbidden:
		return http.StatusForbidden, appErr.Message
	case apperrors.ErrorTypeExternal:
		return http.StatusBadGateway, appErr.Message
	default:
		return http.StatusInternalServerError, fallback
	}
}

// decodeJSON reads a bounded JSON body into dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return apperrors.NewValidationError("Request body is too large")
		case errors.Is(err, io.EOF):
			return apperrors.NewValidationError("Request body is required")
		default:
			return apperrors.NewValidationError("Invalid request body")
		}
	}
	return nil
}

// int64Path parses a numeric path segment
func int64Path(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("Invalid " + name)
	}
	return id, nil
}

// uuidPath parses a UUID path segment
func uuidPath(r *http.Request, name string) (string, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return "", apperrors.NewValidationError("Invalid " + name)
	}
	return id.String(), nil
}

// pageFrom reads page and limit, falling back to defaults for malformed values
func pageFrom(r *http.Request) entities.Page {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return entities.NewPage(page, limit)
}

func boolQuery(r *http.Request, name string) *bool {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

func identityOf(r *http.Request) *auth.Identity {
	return auth.IdentityFromContext(r.Context())
}
