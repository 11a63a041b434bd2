package lexicon

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Sentinel errors for common lexicon error conditions.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrIDAssigned indicates an entity that already carries an id was passed
	// to an assignment operation. This signals a logic bug in the caller
	// (double registration); the manager state is left untouched.
	ErrIDAssigned = errors.New("entity id already assigned")

	// ErrIDRange indicates an id-indexed lookup outside [0, size).
	ErrIDRange = errors.New("id out of range")

	// ErrHookContract indicates a factory hook violated its contract, for
	// example by returning an instance whose id does not match the id it was
	// asked to carry.
	ErrHookContract = errors.New("factory hook violated its contract")

	// ErrInvalidConfig indicates the provided configuration is invalid or incomplete.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrSnapshotNotFound indicates the requested vocabulary snapshot does not
	// exist in the backing store.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrStorageFailed indicates the underlying snapshot storage backend failed.
	ErrStorageFailed = errors.New("storage operation failed")
)

// Error kinds categorize errors by their type.
const (
	// KindPrecondition represents caller contract violations (programmer error).
	KindPrecondition = "precondition"

	// KindNotFound represents errors where a resource was not found.
	KindNotFound = "not_found"

	// KindValidation represents errors related to input validation.
	KindValidation = "validation"

	// KindConfiguration represents errors related to configuration.
	KindConfiguration = "configuration"

	// KindStorage represents errors from snapshot storage backends.
	KindStorage = "storage"

	// KindInternal represents internal library errors.
	KindInternal = "internal"
)

// Error is a structured error type that wraps underlying errors with
// additional context about the operation that failed and the category of error.
//
// Error implements the error interface and supports error unwrapping,
// making it compatible with errors.Is() and errors.As().
//
// Example usage:
//
//	err := &lexicon.Error{
//		Op:   "Manager.AssignID",
//		Kind: lexicon.KindPrecondition,
//		Err:  lexicon.ErrIDAssigned,
//	}
type Error struct {
	// Op is the operation that failed (e.g., "Manager.AssignID", "RedisStore.Load").
	Op string

	// Kind categorizes the error (e.g., KindPrecondition, KindNotFound).
	Kind string

	// Err is the underlying error that caused this error.
	Err error

	// Context provides additional context about the error (optional).
	// This can include keys, ids, or other debugging information.
	Context map[string]any
}

// Error implements the error interface, returning a formatted error message
// that includes the operation, kind, and underlying error.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("lexicon: %s: %s", e.Op, e.Kind)
	}

	if len(e.Context) > 0 {
		return fmt.Sprintf("lexicon: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}

	return fmt.Sprintf("lexicon: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error, allowing errors.Is() and errors.As()
// to work correctly with wrapped errors.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error matching for Error, allowing comparison based on
// the underlying error or the Error itself.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	// Check if target is an Error with matching Kind
	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	// Delegate to underlying error
	return errors.Is(e.Err, target)
}

// WithContext returns a new Error with the provided context added.
// This is useful for adding debugging information to errors.
func (e *Error) WithContext(ctx map[string]any) *Error {
	newErr := *e
	if newErr.Context == nil {
		newErr.Context = make(map[string]any)
	}
	for k, v := range ctx {
		newErr.Context[k] = v
	}
	return &newErr
}

// NewPreconditionError creates a new Error with KindPrecondition.
func NewPreconditionError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindPrecondition,
		Err:  err,
	}
}

// NewNotFoundError creates a new Error with KindNotFound.
func NewNotFoundError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindNotFound,
		Err:  err,
	}
}

// NewValidationError creates a new Error with KindValidation.
func NewValidationError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindValidation,
		Err:  err,
	}
}

// NewConfigurationError creates a new Error with KindConfiguration.
func NewConfigurationError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindConfiguration,
		Err:  err,
	}
}

// NewStorageError creates a new Error with KindStorage.
func NewStorageError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindStorage,
		Err:  err,
	}
}

// NewInternalError creates a new Error with KindInternal.
func NewInternalError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindInternal,
		Err:  err,
	}
}

// CloseWithLog attempts to close the provided resource and logs any error
// at warning level. This is intended for use in defer statements to ensure
// cleanup errors are not silently ignored.
//
// The name parameter should describe the resource being closed (e.g.,
// "snapshot store", "connection"). If logger is nil, slog.Default() is used.
//
// Example usage:
//
//	defer lexicon.CloseWithLog(store, logger, "snapshot store")
func CloseWithLog(closer io.Closer, logger *slog.Logger, name string) {
	if closer == nil {
		return
	}

	if logger == nil {
		logger = slog.Default()
	}

	if err := closer.Close(); err != nil {
		logger.Warn("failed to close resource",
			"resource", name,
			"error", err)
	}
}
