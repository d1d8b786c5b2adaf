package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/platify/platify-core/internal/logger"
)

// DecodeAndValidateRequest decodes a JSON request body and validates it.
// If it returns an error, the HTTP response has already been written and the
// handler should return.
//
// Example usage:
//
//	var req CompleteRecipeRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Complete recipe"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	if err := decodeJSON(r, w, req, actionName); err != nil {
		return err
	}

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// decodeJSON decodes the request body into req, writing a 400 on failure
func decodeJSON(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Warn(LogMsgDecodeFailed, "action", actionName, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}
	log.Debug(LogMsgRequestDecoded, "action", actionName)
	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// GetOptionalQueryParam retrieves an optional query parameter from the request,
// returning defaultValue when it is missing.
func GetOptionalQueryParam(r *http.Request, paramName string, defaultValue string) string {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return defaultValue
	}
	return value
}

// RequireUserID returns the user partition key of the request. The server
// middleware stores it on the context; the header is read directly otherwise.
// If ok is false, the HTTP response has already been written.
func RequireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	if userID, found := logger.UserIDFromContext(r.Context()); found && userID != "" {
		return userID, true
	}
	if userID := strings.TrimSpace(r.Header.Get(HeaderUserID)); userID != "" {
		return userID, true
	}
	logger.FromContext(r.Context()).Warn(fmt.Sprintf("Missing %s header", HeaderUserID))
	respondError(w, http.StatusBadRequest, ErrMsgMissingUserID)
	return "", false
}
