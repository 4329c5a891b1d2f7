package apperror

import "net/http"

// Code identifies a failure signal in the external contract. Controllers
// never invent their own status codes; the mapping lives here.
type Code string

const (
	CodeDuplicateEmail     Code = "DUPLICATE_EMAIL"
	CodeInvalidEmail       Code = "INVALID_EMAIL"
	CodeInvalidName        Code = "INVALID_NAME"
	CodePasswordMismatch   Code = "PASSWORD_MISMATCH"
	CodeWeakPassword       Code = "WEAK_PASSWORD"
	CodeUnknownEmail       Code = "UNKNOWN_EMAIL"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeUnauthenticated    Code = "UNAUTHENTICATED"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeNotFound           Code = "NOT_FOUND"
	CodeInvalidTitle       Code = "INVALID_TITLE"
	CodeInvalidContent     Code = "INVALID_CONTENT"
	CodeValidation         Code = "VALIDATION"
)

type AppError struct {
	Code    Code
	Message string
	Status  int
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) HTTPStatus() int {
	return e.Status
}

var (
	ErrDuplicateEmail = &AppError{Code: CodeDuplicateEmail, Message: "email already registered", Status: http.StatusConflict}
	ErrInvalidEmail   = &AppError{Code: CodeInvalidEmail, Message: "email must be at least 4 characters", Status: http.StatusBadRequest}

	ErrInvalidFirstName = &AppError{Code: CodeInvalidName, Message: "first name must be at least 2 characters", Status: http.StatusBadRequest}
	ErrInvalidLastName  = &AppError{Code: CodeInvalidName, Message: "last name must be at least 2 characters", Status: http.StatusBadRequest}

	ErrPasswordMismatch = &AppError{Code: CodePasswordMismatch, Message: "passwords do not match", Status: http.StatusBadRequest}
	ErrWeakPassword     = &AppError{Code: CodeWeakPassword, Message: "password must be at least 7 characters", Status: http.StatusBadRequest}

	// UnknownEmail and InvalidCredentials are deliberately distinguishable.
	// This enumerates registered emails; accepted tradeoff, see DESIGN.md.
	ErrUnknownEmail       = &AppError{Code: CodeUnknownEmail, Message: "email does not exist", Status: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: CodeInvalidCredentials, Message: "incorrect password", Status: http.StatusUnauthorized}

	ErrUnauthenticated = &AppError{Code: CodeUnauthenticated, Message: "authentication required", Status: http.StatusUnauthorized}
	ErrUnauthorized    = &AppError{Code: CodeUnauthorized, Message: "access denied", Status: http.StatusForbidden}

	ErrNoteNotFound = &AppError{Code: CodeNotFound, Message: "note not found", Status: http.StatusNotFound}

	ErrInvalidTitle   = &AppError{Code: CodeInvalidTitle, Message: "title must not be empty", Status: http.StatusBadRequest}
	ErrInvalidContent = &AppError{Code: CodeInvalidContent, Message: "content must not be empty", Status: http.StatusBadRequest}
)

// Validation wraps a structural request problem (malformed body, bad field
// format) that has no dedicated code of its own.
func Validation(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message, Status: http.StatusBadRequest}
}
