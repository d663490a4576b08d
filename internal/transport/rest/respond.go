package rest

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/communities-gateway/internal/domain"
	"github.com/heartmarshall/communities-gateway/internal/forumstub"
	"github.com/heartmarshall/communities-gateway/pkg/ctxutil"
)

type detailResponse struct {
	Detail string `json:"detail"`
}

type validationResponse struct {
	Detail []domain.FieldError `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, detailResponse{Detail: detail})
}

func writeValidation(w http.ResponseWriter, errs []domain.FieldError) {
	writeJSON(w, http.StatusUnprocessableEntity, validationResponse{Detail: errs})
}

// writeError maps a service error to a status code and detail body.
func (h *ForumHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeValidation(w, ve.Errors)
		return
	}

	var fe *forumstub.Error
	if errors.As(err, &fe) {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeDetail(w, http.StatusNotFound, fe.Detail)
			return
		case errors.Is(err, domain.ErrForbidden):
			writeDetail(w, http.StatusForbidden, fe.Detail)
			return
		case errors.Is(err, domain.ErrUnauthorized):
			writeDetail(w, http.StatusUnauthorized, fe.Detail)
			return
		}
	}

	h.log.ErrorContext(r.Context(), "unexpected error",
		slog.String("error", err.Error()),
		slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
	)
	writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
}

// requireUser returns the authenticated caller or answers 401.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return "", false
	}
	return userID, true
}

// decodeBody decodes a JSON request body into dst. A malformed body is
// answered with 422 and reported as false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	switch {
	case err == nil:
		return true
	case errors.Is(err, io.EOF):
		writeValidation(w, []domain.FieldError{{
			Location: []string{"body"},
			Message:  "Field required",
			Type:     "missing",
		}})
	default:
		writeValidation(w, []domain.FieldError{{
			Location: []string{"body"},
			Message:  "JSON decode error",
			Type:     "json_invalid",
		}})
	}
	return false
}
