package quote0

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrAPITokenMissing indicates the client was constructed without an API token.
	ErrAPITokenMissing = errors.New("quote0: API token is required")
	// ErrDeviceIDMissing indicates deviceId is required.
	ErrDeviceIDMissing = errors.New("quote0: deviceId is required")
	// ErrImagePayloadMissing indicates image payload is required.
	ErrImagePayloadMissing = errors.New("quote0: image payload is required")
)

// ErrorKind classifies an APIError by the failure it represents. Each remote
// HTTP status maps to exactly one kind; server-side (5xx) and unrecognized
// statuses share the generic KindServer/KindUnknown buckets.
type ErrorKind int

const (
	// KindUnknown covers responses with a status outside the documented set.
	KindUnknown ErrorKind = iota
	// KindValidation covers HTTP 400 and client-side precondition failures
	// such as an unsupported task type.
	KindValidation
	// KindAuthentication covers HTTP 401 (invalid or expired API token).
	KindAuthentication
	// KindPermission covers HTTP 403 (authenticated but not authorized).
	KindPermission
	// KindNotFound covers HTTP 404 (device or resource absent).
	KindNotFound
	// KindRateLimit covers HTTP 429 (documented limit is ~10 requests/second).
	KindRateLimit
	// KindServer covers HTTP 500-599.
	KindServer
)

// String returns a short label for the kind, used in error messages.
func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindPermission:
		return "permission"
	case KindNotFound:
		return "not_found"
	case KindRateLimit:
		return "rate_limit"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// APIError captures any failure classified from an authV2 response, plus
// client-side precondition failures that belong to the same taxonomy (those
// carry StatusCode 0). The service may return JSON or plain text bodies.
type APIError struct {
	// Kind is the classified failure category.
	Kind ErrorKind
	// StatusCode is the HTTP status observed, or 0 for a local failure.
	StatusCode int
	// Message is a human-readable description of the failure.
	Message string
	// Code is a normalized string form of the server error code when present (e.g. "429").
	Code string
	// RawBody keeps the original payload for debugging.
	RawBody []byte
}

func (e *APIError) Error() string {
	b := strings.Builder{}
	b.WriteString("quote0: ")
	b.WriteString(e.Kind.String())
	b.WriteString(" error")
	if e.StatusCode != 0 {
		b.WriteString(" (status=")
		b.WriteString(strconv.Itoa(e.StatusCode))
		if e.Code != "" {
			b.WriteString(", code=")
			b.WriteString(e.Code)
		}
		b.WriteString(")")
	}
	if m := strings.TrimSpace(e.Message); m != "" {
		b.WriteString(": ")
		b.WriteString(m)
	}
	return b.String()
}

// DecodeError reports a 200 response whose body could not be parsed into the
// expected model. It is deliberately outside the status taxonomy: the request
// succeeded, the payload did not.
type DecodeError struct {
	// Target names the model the body failed to decode into (e.g. "[]Device").
	Target string
	// Err is the underlying JSON error.
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("quote0: decode response into %s: %v", e.Target, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsValidationError returns true if err is an APIError classified from HTTP 400
// or a local precondition failure (e.g. an unsupported task type).
func IsValidationError(err error) bool { return hasKind(err, KindValidation) }

// IsAuthenticationError returns true if err is an APIError from HTTP 401.
func IsAuthenticationError(err error) bool { return hasKind(err, KindAuthentication) }

// IsPermissionError returns true if err is an APIError from HTTP 403.
func IsPermissionError(err error) bool { return hasKind(err, KindPermission) }

// IsNotFoundError returns true if err is an APIError from HTTP 404.
func IsNotFoundError(err error) bool { return hasKind(err, KindNotFound) }

// IsRateLimitError returns true if err is an APIError from HTTP 429 (Too Many Requests).
func IsRateLimitError(err error) bool { return hasKind(err, KindRateLimit) }

// IsServerError returns true if err is an APIError from HTTP 5xx.
func IsServerError(err error) bool { return hasKind(err, KindServer) }

// IsAuthError returns true for either 401 or 403 classifications.
func IsAuthError(err error) bool {
	return hasKind(err, KindAuthentication) || hasKind(err, KindPermission)
}

func hasKind(err error, k ErrorKind) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Kind == k
}

// classifyStatus maps an HTTP status to its error kind and fixed message.
func classifyStatus(status int) (ErrorKind, string) {
	switch {
	case status == 400:
		return KindValidation, "request validation failed"
	case status == 401:
		return KindAuthentication, "invalid API token or authentication failed"
	case status == 403:
		return KindPermission, "insufficient permissions to access this resource"
	case status == 404:
		return KindNotFound, "device or resource not found"
	case status == 429:
		return KindRateLimit, "rate limit exceeded, please reduce request frequency"
	case status >= 500 && status < 600:
		return KindServer, fmt.Sprintf("server error: %d", status)
	default:
		return KindUnknown, fmt.Sprintf("unexpected status code: %d", status)
	}
}

// buildAPIError classifies a non-200 response into a typed APIError. When the
// body carries a JSON envelope, its message/code refine the fixed description.
func buildAPIError(status int, body []byte) error {
	kind, msg := classifyStatus(status)
	ae := &APIError{Kind: kind, StatusCode: status, RawBody: body, Message: msg}

	trimmed := strings.TrimSpace(string(body))
	if isJSONObject(trimmed) {
		if obj := tryParseJSON(body); obj != nil {
			extractErrorFields(ae, obj)
		}
	} else if trimmed != "" {
		// Plain text bodies (sometimes Chinese) replace the fixed message.
		ae.Message = trimmed
	}
	return ae
}

// newLocalValidationError builds a KindValidation error raised before any
// network call (StatusCode stays 0).
func newLocalValidationError(msg string) error {
	return &APIError{Kind: KindValidation, Message: msg}
}

// isJSONObject checks if a string looks like a JSON object
func isJSONObject(s string) bool {
	return len(s) > 0 && strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}")
}

// tryParseJSON attempts to unmarshal body into a map, returning nil on failure
func tryParseJSON(body []byte) map[string]interface{} {
	var obj map[string]interface{}
	if err := json.Unmarshal(body, &obj); err == nil {
		return obj
	}
	return nil
}

// extractErrorFields populates APIError fields from a parsed JSON object
func extractErrorFields(ae *APIError, obj map[string]interface{}) {
	if v, ok := obj["message"].(string); ok && v != "" {
		ae.Message = v
	} else if v, ok := obj["error"].(string); ok && v != "" {
		ae.Message = v
	}
	if v, ok := obj["code"]; ok {
		ae.Code = formatCode(v)
	}
}

// formatCode converts a code field (string or number) to a string
func formatCode(v interface{}) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.Itoa(int(t))
	default:
		return ""
	}
}
