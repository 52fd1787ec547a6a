package response

import (
	"encoding/json"
	"net/http"
)

// Application status codes carried in the response envelope. Status 0
// means success; everything else is an application failure code that
// clients branch on independently of the HTTP status.
const (
	StatusSuccess      = 0
	StatusValidation   = 102
	StatusBusinessRule = 103
	StatusInvalidToken = 108
	StatusNotFound     = 404
	StatusInternal     = 500
)

// Envelope is the wire shape of every API response
type Envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// JSON writes an envelope with the given HTTP and application statuses
func JSON(w http.ResponseWriter, httpStatus, appStatus int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)

	json.NewEncoder(w).Encode(Envelope{
		Status:  appStatus,
		Message: message,
		Data:    data,
	})
}

// OK sends a 200 success envelope
func OK(w http.ResponseWriter, message string, data interface{}) {
	JSON(w, http.StatusOK, StatusSuccess, message, data)
}

// Created sends a 201 success envelope
func Created(w http.ResponseWriter, message string, data interface{}) {
	JSON(w, http.StatusCreated, StatusSuccess, message, data)
}

// Validation sends a 400 with application status 102
func Validation(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, StatusValidation, message, nil)
}

// RuleViolation sends a 400 with application status 103
func RuleViolation(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, StatusBusinessRule, message, nil)
}

// AuthFailed sends a 401 with application status 103 (bad credentials)
func AuthFailed(w http.ResponseWriter, message string) {
	JSON(w, http.StatusUnauthorized, StatusBusinessRule, message, nil)
}

// InvalidToken sends a 401 with application status 108
func InvalidToken(w http.ResponseWriter, message string) {
	JSON(w, http.StatusUnauthorized, StatusInvalidToken, message, nil)
}

// NotFound sends a 404 envelope
func NotFound(w http.ResponseWriter, message string) {
	JSON(w, http.StatusNotFound, StatusNotFound, message, nil)
}

// Internal sends a 500 envelope
func Internal(w http.ResponseWriter) {
	JSON(w, http.StatusInternalServerError, StatusInternal, "Internal server error", nil)
}
