package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeUnsupported, "unknown method: %s", "spinglass")

	if err.Code != ErrCodeUnsupported {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeUnsupported)
	}

	if err.Message != "unknown method: spinglass" {
		t.Errorf("Message = %v, want %v", err.Message, "unknown method: spinglass")
	}

	expected := "UNSUPPORTED_OPTION: unknown method: spinglass"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("graphviz exited")
	err := Wrap(ErrCodeInternal, cause, "layout failed")

	if err.Code != ErrCodeInternal {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInternal)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "INTERNAL_ERROR: layout failed: graphviz exited"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeEmpty, "no seeds"),
			code:     ErrCodeEmpty,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeEmpty, "no seeds"),
			code:     ErrCodeTooSmall,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeTooSmall, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeTooSmall,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      wrapf(New(ErrCodeNotFound, "subnetwork9")),
			code:     ErrCodeNotFound,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func wrapf(err error) error {
	return errors.Join(errors.New("context"), err)
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidTable, "test"),
			expected: ErrCodeInvalidTable,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeEmpty, "no subnetwork found"),
			expected: "no subnetwork found",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Outcome
	}{
		{"nil", nil, OutcomeSuccess},
		{"empty", New(ErrCodeEmpty, "no seeds present"), OutcomeEmpty},
		{"too small", New(ErrCodeTooSmall, "module has 2 nodes"), OutcomeEmpty},
		{"unsupported", New(ErrCodeUnsupported, "bad method"), OutcomeError},
		{"plain", errors.New("boom"), OutcomeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.expected {
				t.Errorf("Classify() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestOutcomeString(t *testing.T) {
	if OutcomeSuccess.String() != "success" || OutcomeEmpty.String() != "empty" || OutcomeError.String() != "error" {
		t.Error("unexpected outcome names")
	}
}

func TestIsRecoverable(t *testing.T) {
	if !IsRecoverable(New(ErrCodeUnsupported, "x")) {
		t.Error("unsupported option should be recoverable")
	}
	if IsRecoverable(New(ErrCodeInternal, "x")) {
		t.Error("internal error should not be recoverable")
	}
	if IsRecoverable(nil) {
		t.Error("nil should not be recoverable")
	}
}
