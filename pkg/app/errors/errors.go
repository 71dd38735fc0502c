// Package errors contains the service error type shared by all HTTP facing services.
//
// Domain packages declare plain sentinel errors. Service layers wrap them into a
// ServiceError that carries a Category (mapped to an HTTP status) and a stable
// Reason code that clients can branch on.
package errors

import (
	"errors"
	"net/http"
)

// Category defines error category
type Category int

const (
	// CategoryNoError marks the absence of an error in request tracking.
	CategoryNoError Category = iota
	// CategoryDataError The client sends some invalid data in the request,
	// for example, missing or incorrect content in the payload or parameters.
	CategoryDataError
	// CategoryUnauthorized The client is not authenticated or its credentials are not valid anymore
	CategoryUnauthorized
	// CategoryForbidden The client is authenticated but not allowed to perform the operation
	CategoryForbidden
	// CategoryResourceNotFound The client is attempting to access a resource that does not exist
	CategoryResourceNotFound
	// CategoryNotSupported The requested functionality is not supported
	CategoryNotSupported
	// CategoryDataConflict The request conflicts with existing state, on chain or in the store
	CategoryDataConflict
	// CategoryDependencyFailure A dependent service (ledger node, database) is throwing errors
	CategoryDependencyFailure
	// CategoryGeneralError The service failed in an unexpected way
	CategoryGeneralError
	// CategoryRecovering The service is failing but is expected to recover
	CategoryRecovering
	// CategoryConnectionTimeout Connection to a dependent service timing out
	CategoryConnectionTimeout
)

func (c Category) String() string {
	switch c {
	case CategoryDataError:
		return "CategoryDataError"
	case CategoryUnauthorized:
		return "CategoryUnauthorized"
	case CategoryForbidden:
		return "CategoryForbidden"
	case CategoryResourceNotFound:
		return "CategoryResourceNotFound"
	case CategoryNotSupported:
		return "CategoryNotSupported"
	case CategoryDataConflict:
		return "CategoryDataConflict"
	case CategoryDependencyFailure:
		return "CategoryDependencyFailure"
	case CategoryRecovering:
		return "CategoryRecovering"
	case CategoryConnectionTimeout:
		return "CategoryConnectionTimeout"
	default:
		return "CategoryGeneralError"
	}
}

// ServiceError is the error type returned across service boundaries.
type ServiceError struct {
	Category Category
	// Reason is a stable machine readable code, e.g. "LightDidNotAllowed".
	Reason  string
	Message string
	Err     error
}

// Error method to comply with error interface
func (err ServiceError) Error() string {
	if err.Err != nil {
		return err.Err.Error()
	}
	return err.Message
}

// Unwrap returns the underlying error
func (err ServiceError) Unwrap() error {
	return err.Err
}

// Is checks that provided error is a ServiceError with desired Category
func Is(err error, cat Category) bool {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) && svcErr.Category == cat {
		return true
	}
	return false
}

// Reason returns the reason code of the first ServiceError in the chain, or "".
func Reason(err error) string {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Reason
	}
	return ""
}

// IsInternalError reports whether err is a server side failure: a dependency, timeout
// or unexpected error rather than a rejected request. Plain errors count as internal.
func IsInternalError(err error) bool {
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		return true
	}
	return svcErr.Category >= CategoryDependencyFailure
}

// New builds a ServiceError with an explicit category and reason code.
func New(cat Category, reason string, err error, message string) error {
	if err == nil {
		err = errors.New(message)
	}
	return &ServiceError{
		Category: cat,
		Reason:   reason,
		Message:  message,
		Err:      err,
	}
}

// GeneralError hides err behind "Internal Server Error". err is only logged.
func GeneralError(err error) error {
	return wrap(CategoryGeneralError, err, "Internal Server Error", "internal server error")
}

// The constructors below return message to the client and keep err for logs.
// They carry no reason code; use New when clients need to branch on the failure.

// ResourceNotFoundError returns an error with category ResourceNotFound.
func ResourceNotFoundError(err error, message string) error {
	return wrap(CategoryResourceNotFound, err, message, "resource not found: "+message)
}

// BadRequestError returns an error with category DataError.
func BadRequestError(err error, message string) error {
	return wrap(CategoryDataError, err, message, "bad request: "+message)
}

// UnAuthorizedError returns an error with category Unauthorized.
func UnAuthorizedError(err error, message string) error {
	return wrap(CategoryUnauthorized, err, message, "unauthorized")
}

// DependencyError returns an error with category DependencyFailure.
func DependencyError(err error, message string) error {
	return wrap(CategoryDependencyFailure, err, message, "dependency failure")
}

func wrap(cat Category, err error, message, fallback string) error {
	if err == nil {
		err = errors.New(fallback)
	}
	return &ServiceError{Category: cat, Message: message, Err: err}
}

// StatusCode returns the HTTP status code for the error category
func (err ServiceError) StatusCode() int {
	switch err.Category {
	case CategoryDataError:
		return http.StatusBadRequest
	case CategoryUnauthorized:
		return http.StatusUnauthorized
	case CategoryForbidden:
		return http.StatusForbidden
	case CategoryResourceNotFound:
		return http.StatusNotFound
	case CategoryNotSupported:
		return http.StatusMethodNotAllowed
	case CategoryDataConflict:
		return http.StatusConflict
	case CategoryDependencyFailure:
		return http.StatusBadGateway
	case CategoryGeneralError:
		return http.StatusInternalServerError
	case CategoryRecovering:
		return http.StatusServiceUnavailable
	case CategoryConnectionTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
