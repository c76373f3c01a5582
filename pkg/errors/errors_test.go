package errors

import (
	stdErrors "errors"
	"net/http"
	"testing"
)

func TestErrorIncludesInternal(t *testing.T) {
	internal := stdErrors.New("boom")
	err := Wrap(internal, "failed")

	if err.Error() != "failed: boom" {
		t.Fatalf("unexpected error string: %s", err.Error())
	}
}

func TestWithInternalCopies(t *testing.T) {
	base := New("TEST", "test", 400)
	with := base.WithInternal(stdErrors.New("oops"))

	if with == base {
		t.Fatal("expected WithInternal to return a copy")
	}

	if base.Internal != nil {
		t.Fatal("expected original error to remain unchanged")
	}

	if with.Internal == nil {
		t.Fatal("expected internal error to be set")
	}
}

func TestWithMessageCopies(t *testing.T) {
	with := ErrConflict.WithMessage("slot already requested")

	if with == ErrConflict {
		t.Fatal("expected WithMessage to return a copy")
	}
	if with.Message != "slot already requested" {
		t.Fatalf("unexpected message: %s", with.Message)
	}
	if ErrConflict.Message == with.Message {
		t.Fatal("expected original error to remain unchanged")
	}
}

func TestIsMatchesByCode(t *testing.T) {
	copied := ErrConflict.WithMessage("slot already requested")

	if !stdErrors.Is(copied, ErrConflict) {
		t.Fatal("expected message-carrying copy to match its sentinel")
	}
	if stdErrors.Is(copied, ErrNotFound) {
		t.Fatal("expected different codes not to match")
	}
}

func TestFromError(t *testing.T) {
	appErr := ErrNotFound
	if out := FromError(appErr); out != appErr {
		t.Fatal("expected FromError to return the same AppError instance")
	}

	raw := stdErrors.New("raw")
	out := FromError(raw)
	if out.Code != ErrInternalServer.Code {
		t.Fatalf("expected internal server code, got %s", out.Code)
	}
	if out.Internal == nil {
		t.Fatal("expected internal error to be attached")
	}
}

func TestConflictAndInvalidStateMapToConflictStatus(t *testing.T) {
	if ErrConflict.StatusCode != http.StatusConflict {
		t.Fatalf("unexpected conflict status: %d", ErrConflict.StatusCode)
	}
	if ErrInvalidState.StatusCode != http.StatusConflict {
		t.Fatalf("unexpected invalid state status: %d", ErrInvalidState.StatusCode)
	}
	if ErrConflict.Code == ErrInvalidState.Code {
		t.Fatal("expected distinct codes for conflict and invalid state")
	}
}

func TestNewBadRequest(t *testing.T) {
	err := NewBadRequest("invalid payload")
	if err.Code != ErrBadRequest.Code {
		t.Fatalf("expected %s, got %s", ErrBadRequest.Code, err.Code)
	}
	if err.Message != "invalid payload" {
		t.Fatalf("unexpected message: %s", err.Message)
	}
	if err.StatusCode != ErrBadRequest.StatusCode {
		t.Fatalf("unexpected status: %d", err.StatusCode)
	}
}

func TestNewConflict(t *testing.T) {
	err := NewConflict("overlapping slot")
	if err.Code != ErrConflict.Code {
		t.Fatalf("expected %s, got %s", ErrConflict.Code, err.Code)
	}
	if err.Message != "overlapping slot" {
		t.Fatalf("unexpected message: %s", err.Message)
	}
}
