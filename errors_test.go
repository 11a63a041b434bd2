package lexicon

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestSentinelErrors verifies that all sentinel errors are defined correctly.
func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "ErrIDAssigned",
			err:  ErrIDAssigned,
			want: "entity id already assigned",
		},
		{
			name: "ErrIDRange",
			err:  ErrIDRange,
			want: "id out of range",
		},
		{
			name: "ErrHookContract",
			err:  ErrHookContract,
			want: "factory hook violated its contract",
		},
		{
			name: "ErrInvalidConfig",
			err:  ErrInvalidConfig,
			want: "invalid configuration",
		},
		{
			name: "ErrSnapshotNotFound",
			err:  ErrSnapshotNotFound,
			want: "snapshot not found",
		},
		{
			name: "ErrStorageFailed",
			err:  ErrStorageFailed,
			want: "storage operation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatalf("sentinel error %s is nil", tt.name)
			}
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("error message = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestErrorError verifies the Error() method formatting.
func TestErrorError(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "basic error",
			err: &Error{
				Op:   "Manager.AssignID",
				Kind: KindPrecondition,
				Err:  ErrIDAssigned,
			},
			want: "lexicon: Manager.AssignID (precondition): entity id already assigned",
		},
		{
			name: "error with context",
			err: &Error{
				Op:   "Manager.At",
				Kind: KindNotFound,
				Err:  ErrIDRange,
				Context: map[string]any{
					"id":   42,
					"size": 3,
				},
			},
			want: "lexicon: Manager.At (not_found): id out of range [context:",
		},
		{
			name: "error without underlying error",
			err: &Error{
				Op:   "Config.Validate",
				Kind: KindValidation,
			},
			want: "lexicon: Config.Validate: validation",
		},
		{
			name: "error with wrapped error",
			err: &Error{
				Op:   "Config.Build",
				Kind: KindConfiguration,
				Err:  fmt.Errorf("failed to load config: %w", ErrInvalidConfig),
			},
			want: "lexicon: Config.Build (configuration): failed to load config: invalid configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if !strings.Contains(got, tt.want) {
				t.Errorf("Error() = %q, want to contain %q", got, tt.want)
			}
		})
	}
}

// TestErrorUnwrap verifies the Unwrap() method.
func TestErrorUnwrap(t *testing.T) {
	underlyingErr := errors.New("underlying error")
	err := &Error{
		Op:   "Test.Operation",
		Kind: KindInternal,
		Err:  underlyingErr,
	}

	unwrapped := err.Unwrap()
	if unwrapped != underlyingErr {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, underlyingErr)
	}

	// Test with nil underlying error
	errNil := &Error{
		Op:   "Test.Operation",
		Kind: KindInternal,
	}
	if unwrapped := errNil.Unwrap(); unwrapped != nil {
		t.Errorf("Unwrap() with nil Err = %v, want nil", unwrapped)
	}
}

// TestErrorIs verifies the Is() method and errors.Is() compatibility.
func TestErrorIs(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{
			name: "matches underlying sentinel error",
			err: &Error{
				Op:   "Manager.AssignID",
				Kind: KindPrecondition,
				Err:  ErrIDAssigned,
			},
			target: ErrIDAssigned,
			want:   true,
		},
		{
			name: "matches wrapped error",
			err: &Error{
				Op:   "RedisStore.Load",
				Kind: KindNotFound,
				Err:  fmt.Errorf("wrapped: %w", ErrSnapshotNotFound),
			},
			target: ErrSnapshotNotFound,
			want:   true,
		},
		{
			name: "matches Error by kind",
			err: &Error{
				Op:   "Manager.AssignID",
				Kind: KindPrecondition,
				Err:  ErrIDAssigned,
			},
			target: &Error{Kind: KindPrecondition},
			want:   true,
		},
		{
			name: "matches Error by kind and op",
			err: &Error{
				Op:   "Manager.AssignID",
				Kind: KindPrecondition,
				Err:  ErrIDAssigned,
			},
			target: &Error{
				Op:   "Manager.AssignID",
				Kind: KindPrecondition,
			},
			want: true,
		},
		{
			name: "does not match different kind",
			err: &Error{
				Op:   "Manager.AssignID",
				Kind: KindPrecondition,
				Err:  ErrIDAssigned,
			},
			target: &Error{Kind: KindValidation},
			want:   false,
		},
		{
			name: "does not match different underlying error",
			err: &Error{
				Op:   "Manager.AssignID",
				Kind: KindPrecondition,
				Err:  ErrIDAssigned,
			},
			target: ErrIDRange,
			want:   false,
		},
		{
			name: "does not match nil",
			err: &Error{
				Op:   "Manager.AssignID",
				Kind: KindPrecondition,
				Err:  ErrIDAssigned,
			},
			target: nil,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.want {
				t.Errorf("errors.Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestErrorAs verifies errors.As() compatibility.
func TestErrorAs(t *testing.T) {
	originalErr := &Error{
		Op:   "Manager.AssignID",
		Kind: KindPrecondition,
		Err:  ErrIDAssigned,
		Context: map[string]any{
			"key": "walked",
		},
	}

	wrappedErr := fmt.Errorf("outer error: %w", originalErr)

	var lexErr *Error
	if !errors.As(wrappedErr, &lexErr) {
		t.Fatal("errors.As() failed to extract Error")
	}

	if lexErr.Op != originalErr.Op {
		t.Errorf("Op = %q, want %q", lexErr.Op, originalErr.Op)
	}
	if lexErr.Kind != originalErr.Kind {
		t.Errorf("Kind = %q, want %q", lexErr.Kind, originalErr.Kind)
	}
}

// TestErrorWithContext verifies that WithContext copies rather than mutates.
func TestErrorWithContext(t *testing.T) {
	base := &Error{
		Op:   "Manager.AssignID",
		Kind: KindPrecondition,
		Err:  ErrIDAssigned,
	}

	withCtx := base.WithContext(map[string]any{"key": "cat"})

	if base.Context != nil {
		t.Errorf("base error mutated: Context = %v, want nil", base.Context)
	}
	if withCtx.Context["key"] != "cat" {
		t.Errorf("Context[key] = %v, want %q", withCtx.Context["key"], "cat")
	}

	// Constructors produce the expected kinds.
	if err := NewPreconditionError("Op", ErrIDAssigned); err.Kind != KindPrecondition {
		t.Errorf("NewPreconditionError kind = %q", err.Kind)
	}
	if err := NewStorageError("Op", ErrStorageFailed); err.Kind != KindStorage {
		t.Errorf("NewStorageError kind = %q", err.Kind)
	}
}
