package core

// AuthError classifies failures of the login, verification and session steps.
type AuthError string

func (e AuthError) Error() string {
	return string(e)
}

const (
	ErrInvalidCredentials  AuthError = "invalid_credentials"
	ErrInvalidCode         AuthError = "invalid_code"
	ErrExpiredVerification AuthError = "expired_verification"
	ErrUnauthenticated     AuthError = "unauthenticated"
)

// TransferError classifies rejected transfers. A transfer that returns one
// leaves every balance untouched.
type TransferError string

func (e TransferError) Error() string {
	return string(e)
}

const (
	ErrInvalidAmount     TransferError = "invalid_amount"
	ErrNotAuthorized     TransferError = "not_authorized"
	ErrSameCard          TransferError = "same_card"
	ErrInsufficientFunds TransferError = "insufficient_funds"
	ErrTraceConflict     TransferError = "trace_conflict"
)
