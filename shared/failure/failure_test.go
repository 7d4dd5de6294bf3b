package failure_test

import (
	"errors"
	"fmt"
	"hotel/shared/failure"
	"net/http"
	"testing"

	"github.com/lib/pq"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestBadRequest(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected *failure.Failure
	}{
		{
			name:     "with error",
			input:    errors.New("validation failed"),
			expected: &failure.Failure{Code: http.StatusBadRequest, Message: "validation failed"},
		},
		{
			name:     "with nil error",
			input:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.BadRequest(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", result)
				}

				return
			}

			f, ok := result.(*failure.Failure)
			if !ok {
				t.Fatalf("expected result to be *failure.Failure, got %T", result)
			}

			if f.Code != tt.expected.Code || f.Message != tt.expected.Message {
				t.Errorf("expected %+v, got %+v", tt.expected, f)
			}
		})
	}
}

func TestBadRequestFromString(t *testing.T) {
	result := failure.BadRequestFromString("custom bad request")

	f, ok := result.(*failure.Failure)
	if !ok {
		t.Fatalf("expected result to be *failure.Failure, got %T", result)
	}

	if f.Code != http.StatusBadRequest {
		t.Errorf("expected code to be %d, got %d", http.StatusBadRequest, f.Code)
	}

	if f.Message != "custom bad request" {
		t.Errorf("expected message to be 'custom bad request', got %s", f.Message)
	}
}

func TestNotFoundAndConflict(t *testing.T) {
	if code := failure.GetCode(failure.NotFound("hotel not found")); code != http.StatusNotFound {
		t.Errorf("expected %d, got %d", http.StatusNotFound, code)
	}

	if code := failure.GetCode(failure.Conflict("already booked")); code != http.StatusConflict {
		t.Errorf("expected %d, got %d", http.StatusConflict, code)
	}

	if failure.Unavailable(nil) != nil {
		t.Error("expected nil for Unavailable(nil)")
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    &failure.Failure{Code: http.StatusBadRequest, Message: "test"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
		{
			name:     "wrapped booking conflict",
			input:    fmt.Errorf("admit: %w", failure.ErrBookingConflict),
			expected: http.StatusConflict,
		},
		{
			name:     "room not found",
			input:    failure.ErrRoomNotFound,
			expected: http.StatusNotFound,
		},
		{
			name:     "invalid date range",
			input:    failure.ErrInvalidDateRange,
			expected: http.StatusBadRequest,
		},
		{
			name:     "connection error",
			input:    fmt.Errorf("begin: %w", failure.ErrConnection),
			expected: http.StatusServiceUnavailable,
		},
		{
			name:     "schema conflict",
			input:    fmt.Errorf("migrate: %w", failure.ErrSchemaConflict),
			expected: http.StatusConflict,
		},
		{
			name:     "seed reference missing",
			input:    fmt.Errorf("%w: guest 42", failure.ErrSeedReferenceMissing),
			expected: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.GetCode(tt.input)
			if result != tt.expected {
				t.Errorf("expected code to be %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestPqClassification(t *testing.T) {
	unique := &pq.Error{Code: "23505"}
	fk := &pq.Error{Code: "23503"}
	dupTable := &pq.Error{Code: "42P07"}
	dupDB := &pq.Error{Code: "42P04"}
	serialization := &pq.Error{Code: "40001"}

	if !failure.IsUniqueViolation(fmt.Errorf("insert: %w", unique)) {
		t.Error("expected wrapped 23505 to be a unique violation")
	}

	if !failure.IsForeignKeyViolation(fk) {
		t.Error("expected 23503 to be a foreign key violation")
	}

	for _, err := range []error{unique, dupTable, dupDB} {
		if !failure.IsAlreadyExists(err) {
			t.Errorf("expected %s to be treated as already exists", err.(*pq.Error).Code)
		}
	}

	if failure.IsAlreadyExists(fk) {
		t.Error("foreign key violation must not be treated as already exists")
	}

	if !failure.IsRetryable(serialization) {
		t.Error("expected 40001 to be retryable")
	}

	if failure.IsUniqueViolation(errors.New("plain")) {
		t.Error("plain errors carry no SQLSTATE")
	}
}
