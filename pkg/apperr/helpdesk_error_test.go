package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"bad request", BadRequest("bad input"), CodeBadRequest, 400},
		{"not found", NotFound("ticket abc"), CodeNotFound, 404},
		{"conflict", Conflict("duplicate"), CodeConflict, 409},
		{"unauthorized", Unauthorized(""), CodeUnauthorized, 401},
		{"forbidden", Forbidden(""), CodeForbidden, 403},
		{"internal", Internal("boom"), CodeInternalError, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", tt.err.Code, tt.wantCode)
			}
			if tt.err.Status != tt.wantStatus {
				t.Errorf("status = %d, want %d", tt.err.Status, tt.wantStatus)
			}
		})
	}
}

func TestNotFoundMessage(t *testing.T) {
	err := NotFound("ticket abc")
	if err.Message != "ticket abc not found" {
		t.Errorf("message = %q", err.Message)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, CodeExternalError, "upstream failed", 502)

	if !errors.Is(err, cause) {
		t.Error("wrapped error must satisfy errors.Is with its cause")
	}
}

func TestSentinelWrapping(t *testing.T) {
	err := fmt.Errorf("%w: model-x: status 503", ErrRemoteUnavailable)
	if !errors.Is(err, ErrRemoteUnavailable) {
		t.Error("wrapped sentinel must survive errors.Is")
	}
	if errors.Is(err, ErrMalformedResponse) {
		t.Error("sentinels must not match each other")
	}
}

func TestAsAppError(t *testing.T) {
	app := BadRequest("nope")
	if got := AsAppError(app); got != app {
		t.Error("AsAppError must return the original *AppError")
	}

	plain := errors.New("something broke")
	got := AsAppError(plain)
	if got.Code != CodeInternalError || got.Status != 500 {
		t.Errorf("plain error mapped to %q/%d, want internal/500", got.Code, got.Status)
	}
}

func TestGetHTTPStatus(t *testing.T) {
	if got := GetHTTPStatus(NotFound("x")); got != 404 {
		t.Errorf("status = %d, want 404", got)
	}
	if got := GetHTTPStatus(errors.New("plain")); got != 500 {
		t.Errorf("plain error status = %d, want 500", got)
	}
}

func TestWithDetail(t *testing.T) {
	err := BadRequest("invalid field").WithDetail("field", "priority")
	if err.Details["field"] != "priority" {
		t.Errorf("details = %v", err.Details)
	}
}
