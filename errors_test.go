package quote0

import (
	"errors"
	"strings"
	"testing"
)

func TestClassifyStatus(t *testing.T) {
	cases := []struct {
		status int
		kind   ErrorKind
	}{
		{400, KindValidation},
		{401, KindAuthentication},
		{403, KindPermission},
		{404, KindNotFound},
		{429, KindRateLimit},
		{500, KindServer},
		{503, KindServer},
		{599, KindServer},
		{600, KindUnknown},
		{302, KindUnknown},
		{201, KindUnknown},
	}
	for _, tc := range cases {
		kind, msg := classifyStatus(tc.status)
		if kind != tc.kind {
			t.Errorf("status %d: kind=%v, want %v", tc.status, kind, tc.kind)
		}
		if msg == "" {
			t.Errorf("status %d: empty message", tc.status)
		}
	}
}

func TestAPIError_ErrorString(t *testing.T) {
	err := buildAPIError(404, nil)
	if got := err.Error(); !strings.Contains(got, "not_found") || !strings.Contains(got, "status=404") {
		t.Fatalf("error string: %s", got)
	}

	local := newLocalValidationError("invalid task type")
	if got := local.Error(); strings.Contains(got, "status=") {
		t.Fatalf("local error must not mention an HTTP status: %s", got)
	}
}

func TestPredicates(t *testing.T) {
	cases := []struct {
		status int
		pred   func(error) bool
	}{
		{400, IsValidationError},
		{401, IsAuthenticationError},
		{403, IsPermissionError},
		{404, IsNotFoundError},
		{429, IsRateLimitError},
		{500, IsServerError},
	}
	for _, tc := range cases {
		err := buildAPIError(tc.status, nil)
		if !tc.pred(err) {
			t.Errorf("status %d: predicate rejected %v", tc.status, err)
		}
	}
	if !IsAuthError(buildAPIError(401, nil)) || !IsAuthError(buildAPIError(403, nil)) {
		t.Error("IsAuthError must cover both 401 and 403")
	}
	if IsAuthError(buildAPIError(404, nil)) {
		t.Error("IsAuthError must reject 404")
	}
	if IsNotFoundError(errors.New("plain")) {
		t.Error("predicates must reject non-API errors")
	}
}

func TestErrorsAs_CatchesAllVariants(t *testing.T) {
	// Catching *APIError is the uniform handler for every remote classification.
	for _, status := range []int{400, 401, 403, 404, 429, 500, 418} {
		err := buildAPIError(status, nil)
		var ae *APIError
		if !errors.As(err, &ae) {
			t.Errorf("status %d: not an APIError", status)
		}
	}
}

func TestBuildAPIError_JSONBody(t *testing.T) {
	err := buildAPIError(400, []byte(`{"code":"E100","message":"boom"}`))
	var ae *APIError
	if !errors.As(err, &ae) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if ae.Code != "E100" || ae.Message != "boom" || ae.StatusCode != 400 {
		t.Fatalf("unexpected api error: %+v", ae)
	}
}

func TestBuildAPIError_NumericCodeAndErrorField(t *testing.T) {
	err := buildAPIError(429, []byte(`{"code":429,"error":"too many requests"}`))
	var ae *APIError
	if !errors.As(err, &ae) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if ae.Code != "429" || ae.Message != "too many requests" {
		t.Fatalf("unexpected api error: %+v", ae)
	}
}

func TestBuildAPIError_MalformedJSONKeepsFixedMessage(t *testing.T) {
	err := buildAPIError(400, []byte(`{"code":`))
	var ae *APIError
	if !errors.As(err, &ae) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if !strings.Contains(ae.Message, "validation failed") {
		t.Fatalf("fixed message expected for unparseable body: %+v", ae)
	}
}

func TestDecodeError_Unwrap(t *testing.T) {
	inner := errors.New("bad json")
	de := &DecodeError{Target: "[]Device", Err: inner}
	if !errors.Is(de, inner) {
		t.Fatal("DecodeError must unwrap to the JSON error")
	}
	if !strings.Contains(de.Error(), "[]Device") {
		t.Fatalf("error string: %s", de.Error())
	}
}
