package errors

// Error codes for standardized error responses
const (
	// Validation errors
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeMissingField   = "missing_field"

	// Session errors
	ErrCodeSessionNotFound = "session_not_found"
	ErrCodeInvalidSession  = "invalid_session_id"
	ErrCodeUnknownQuestion = "unknown_question"
	ErrCodeSubmitInFlight  = "submit_in_flight"
	ErrCodeAlreadyDone     = "already_completed"
	ErrCodeSubmitFailed    = "submit_failed"

	// Admin errors
	ErrCodeUnauthorized    = "unauthorized"
	ErrCodeInvalidToken    = "invalid_token"
	ErrCodeInvalidPasscode = "invalid_passcode"

	// Server errors
	ErrCodeInternalError = "internal_error"
)
