package airborne

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinels matched by the typed API errors through errors.Is.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrInternal     = errors.New("internal server error")
)

// Error codes returned by the Airborne server in the "code" field.
const (
	CodeNotFound       = "AB_001"
	CodeInternal       = "AB_003"
	CodeUnauthorized   = "AB_004"
	CodeBadRequest     = "AB_005"
	CodeForbidden      = "AB_006"
	requestIDHeaderKey = "x-request-id"
)

// APIError is the generic non-2xx response. The typed errors below embed it.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	RequestID  string `json:"-"`
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "airborne: %d", e.StatusCode)
	if e.Code != "" {
		fmt.Fprintf(&b, " %s", e.Code)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if e.RequestID != "" {
		fmt.Fprintf(&b, " (request id %s)", e.RequestID)
	}
	return b.String()
}

// BadRequestError is returned for AB_005 / HTTP 400.
type BadRequestError struct{ APIError }

func (e *BadRequestError) Unwrap() error { return ErrBadRequest }

// UnauthorizedError is returned for AB_004 / HTTP 401.
type UnauthorizedError struct{ APIError }

func (e *UnauthorizedError) Unwrap() error { return ErrUnauthorized }

// ForbiddenError is returned for AB_006 / HTTP 403.
type ForbiddenError struct{ APIError }

func (e *ForbiddenError) Unwrap() error { return ErrForbidden }

// NotFoundError is returned for AB_001 / HTTP 404.
type NotFoundError struct{ APIError }

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// InternalServerError is returned for AB_003 / HTTP 5xx.
type InternalServerError struct{ APIError }

func (e *InternalServerError) Unwrap() error { return ErrInternal }

// decodeError turns a non-2xx response into a typed error. The error code in
// the body wins over the HTTP status.
func decodeError(resp *http.Response, body []byte) error {
	apiErr := APIError{
		StatusCode: resp.StatusCode,
		RequestID:  resp.Header.Get(requestIDHeaderKey),
	}
	if err := json.Unmarshal(body, &apiErr); err != nil || (apiErr.Code == "" && apiErr.Message == "") {
		apiErr.Code = ""
		apiErr.Message = strings.TrimSpace(string(body))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	switch normalizeCode(apiErr.Code) {
	case CodeBadRequest:
		return &BadRequestError{apiErr}
	case CodeUnauthorized:
		return &UnauthorizedError{apiErr}
	case CodeForbidden:
		return &ForbiddenError{apiErr}
	case CodeNotFound:
		return &NotFoundError{apiErr}
	case CodeInternal:
		return &InternalServerError{apiErr}
	}

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return &BadRequestError{apiErr}
	case resp.StatusCode == http.StatusUnauthorized:
		return &UnauthorizedError{apiErr}
	case resp.StatusCode == http.StatusForbidden:
		return &ForbiddenError{apiErr}
	case resp.StatusCode == http.StatusNotFound:
		return &NotFoundError{apiErr}
	case resp.StatusCode >= http.StatusInternalServerError:
		return &InternalServerError{apiErr}
	}
	return &apiErr
}

// normalizeCode accepts both the AB_xxx codes and the shape names used by the
// generated clients ("NotFoundError", "io.airborne.server#NotFoundError").
func normalizeCode(code string) string {
	if i := strings.LastIndex(code, "#"); i >= 0 {
		code = code[i+1:]
	}
	switch code {
	case "BadRequestError":
		return CodeBadRequest
	case "Unauthorized", "UnauthorizedError":
		return CodeUnauthorized
	case "ForbiddenError":
		return CodeForbidden
	case "NotFoundError":
		return CodeNotFound
	case "InternalServerError":
		return CodeInternal
	}
	return code
}

// IsNotFound reports whether err is an Airborne 404.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsUnauthorized reports whether err is an Airborne 401.
func IsUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }
