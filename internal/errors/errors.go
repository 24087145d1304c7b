package errors

import (
	"errors"
	"net/http"
)

// Kind classifies a domain error for transport mapping.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuth
	KindForbidden
	KindNotFound
	KindConflict
)

// Error is a domain error carrying its classification.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation creates a new validation error.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Auth creates a new authentication error.
func Auth(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

// Forbidden creates a new authorization error.
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NotFound creates a new not-found error.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict creates a new uniqueness error.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

var (
	// ErrUserAlreadyExists is returned when registering an email that is taken.
	ErrUserAlreadyExists = Validation("user already exists")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = Auth("invalid email or password")
	// ErrNoToken is returned when a protected route is called without a credential.
	ErrNoToken = Auth("not authorized, no token")
	// ErrInvalidToken is returned when the credential is malformed, expired or orphaned.
	ErrInvalidToken = Auth("not authorized, token failed")
	// ErrRoleRequired is returned when the caller lacks the role a route requires.
	ErrRoleRequired = Forbidden("you do not have permission to perform this action")

	// ErrRecipeNotFound is returned when no recipe matches an id or slug.
	ErrRecipeNotFound = NotFound("recipe not found")
	// ErrDuplicateRecipe is returned when a recipe title slugifies to an existing slug.
	ErrDuplicateRecipe = Conflict("a recipe with this title already exists")
	// ErrNotRecipeOwner is returned when a non-author, non-admin modifies a recipe.
	ErrNotRecipeOwner = Forbidden("not authorized to modify this recipe")

	// ErrGalleryItemNotFound is returned when no gallery item matches an id.
	ErrGalleryItemNotFound = NotFound("gallery item not found")
	// ErrNotGalleryOwner is returned when a non-uploader, non-admin modifies a gallery item.
	ErrNotGalleryOwner = Forbidden("not authorized to modify this gallery item")

	// ErrMessageNotFound is returned when no contact message matches an id.
	ErrMessageNotFound = NotFound("contact message not found")
	// ErrInvalidStatus is returned for a status outside NEW, READ, REPLIED, ARCHIVED.
	ErrInvalidStatus = Validation("invalid status")
	// ErrInvalidEventDate is returned when an event date cannot be parsed.
	ErrInvalidEventDate = Validation("invalid event date")

	// ErrNoFile is returned when an upload request carries no image part.
	ErrNoFile = Validation("no image file provided")
	// ErrFileTooLarge is returned when an upload exceeds its target's ceiling.
	ErrFileTooLarge = Validation("file too large")
	// ErrUnsupportedFormat is returned for extensions outside jpg, jpeg, png, webp.
	ErrUnsupportedFormat = Validation("only jpg, jpeg, png and webp images are allowed")
	// ErrInvalidImageURL is returned when an image URL has no folder/filename path.
	ErrInvalidImageURL = Validation("invalid image url")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Detail     string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, detail string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Detail:     detail,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Success: false,
		Message: e.Message,
		Error:   e.Detail,
	}
}

// StatusFor returns the HTTP status of a kind.
func StatusFor(kind Kind) int {
	switch kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
// Anything unclassified becomes a 500 carrying the underlying error string.
func MapErrorToHTTP(err error) *HTTPError {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		detail := ""
		if domainErr.Err != nil {
			detail = domainErr.Err.Error()
		}
		return NewHTTPError(StatusFor(domainErr.Kind), domainErr.Message, detail)
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", err.Error())
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind Kind) bool {
	var domainErr *Error
	return errors.As(err, &domainErr) && domainErr.Kind == kind
}
