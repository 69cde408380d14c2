package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Connection/availability errors (retryable)
const (
	// ErrCodeConnectionFailed indicates the storage target could not be reached.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeTimeout indicates the storage call timed out or was canceled.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeExternalService indicates the storage service reported a failure.
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
	// ErrCodeUploadFailed indicates an object write was rejected.
	ErrCodeUploadFailed ErrorCode = "UPLOAD_FAILED"
)

// Resource errors
const (
	// ErrCodeNotFound indicates the bucket or path does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeUnknownBackend indicates no connector is registered under the name.
	ErrCodeUnknownBackend ErrorCode = "UNKNOWN_BACKEND"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Authorization errors
const (
	// ErrCodeForbidden indicates the credentials lack permission.
	ErrCodeForbidden ErrorCode = "FORBIDDEN"
)

// Internal errors
const (
	// ErrCodeRenderFailed indicates a package could not be serialized.
	ErrCodeRenderFailed ErrorCode = "RENDER_FAILED"
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeConnectionFailed: true,
	ErrCodeTimeout:          true,
	ErrCodeExternalService:  true,
	ErrCodeUploadFailed:     true,
	ErrCodeInternal:         false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
