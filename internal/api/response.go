package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/policywise/policywise/internal/domain"
)

// ErrorResponse represents an error API response
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSON writes a JSON response with the given status code
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// Error writes an error JSON response
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{Error: message})
}

// HTML writes an HTML response with the given status code
func HTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

// DomainErrorToHTTP maps domain errors to HTTP status codes
func DomainErrorToHTTP(err error) int {
	if err == nil {
		return http.StatusOK
	}

	domainErr, ok := err.(*domain.DomainError)
	if !ok {
		return http.StatusInternalServerError
	}

	switch domainErr.Code {
	case domain.ErrCodeValidation:
		return http.StatusBadRequest
	case domain.ErrCodeNotFound:
		return http.StatusNotFound
	case domain.ErrCodeAlreadyExists:
		return http.StatusConflict
	case domain.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case domain.ErrCodeInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// HandleError writes an appropriate error response based on the error
// type. Clients only ever see the domain message; wrapped causes
// (driver errors, file paths, library internals) stay in the server log.
func HandleError(w http.ResponseWriter, err error) {
	status := DomainErrorToHTTP(err)

	message := "internal server error"
	if domainErr, ok := err.(*domain.DomainError); ok {
		message = domainErr.Message
		if domainErr.Err != nil {
			log.Printf("%s: %v", domainErr.Message, domainErr.Err)
		}
	} else if err != nil {
		log.Printf("unhandled error: %v", err)
	}

	Error(w, status, message)
}
