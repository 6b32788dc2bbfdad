package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"miniblog/internal/apperror"
)

// writeError sends a plain error response for the non-form failure modes
// (404, 403, 500). Validation and conflict errors re-render the form instead.
func writeError(w http.ResponseWriter, message string, statusCode int) {
	http.Error(w, message, statusCode)
}

// serviceError translates an error coming out of a service call. It returns
// the inline message when the form should be re-rendered, or "" when the
// response has already been written.
func serviceError(w http.ResponseWriter, err error) (inline string) {
	switch {
	case apperror.IsValidation(err), apperror.IsConflict(err):
		return apperror.Message(err)
	case apperror.IsNotFound(err):
		writeError(w, apperror.Message(err), http.StatusNotFound)
	case apperror.IsForbidden(err):
		writeError(w, "Forbidden", http.StatusForbidden)
	default:
		log.Printf("internal error: %v", err)
		writeError(w, "Internal server error", http.StatusInternalServerError)
	}
	return ""
}

// formErrorMessage turns the first validator failure into the user-facing
// message, e.g. a missing Username field becomes "Username is required.".
func formErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field() + " is required."
	}
	return "Invalid form submission."
}
