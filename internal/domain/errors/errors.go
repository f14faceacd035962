package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors
var (
	ErrNotFound             = errors.New("resource not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrBadRequest           = errors.New("bad request")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrConflict             = errors.New("conflict")
	ErrWalletNotConnected   = errors.New("wallet not connected")
	ErrAllowanceCheckFailed = errors.New("allowance check failed")
	ErrApprovalRejected     = errors.New("approval rejected by signer")
	ErrApprovalFailed       = errors.New("approval transaction failed")
	ErrTxReverted           = errors.New("transaction reverted")
	ErrCancelRejected       = errors.New("cancellation rejected by chain")
	ErrMirrorFailed         = errors.New("mirror write failed")
	ErrRateUnavailable      = errors.New("rate unavailable")
	ErrOutOfLimitRange      = errors.New("amount outside order limits")
	ErrTransport            = errors.New("chain or network unreachable")
)

// Error codes rendered in HTTP responses
const (
	CodeNotFound        = "NOT_FOUND"
	CodeValidation      = "VALIDATION_ERROR"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeConflict        = "CONFLICT"
	CodeAllowanceCheck  = "ALLOWANCE_CHECK_FAILED"
	CodeApprovalFailed  = "APPROVAL_FAILED"
	CodeTxReverted      = "TX_REVERTED"
	CodeCancelRejected  = "CANCEL_REJECTED"
	CodeRateUnavailable = "RATE_UNAVAILABLE"
	CodeOutOfLimitRange = "OUT_OF_LIMIT_RANGE"
	CodeTransport       = "TRANSPORT_ERROR"
	CodeInternalError   = "INTERNAL_ERROR"
)

// AppError carries an HTTP status and a stable code alongside the wrapped
// domain error.
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: field %q", e.Message, e.Field)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeValidation, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrConflict)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

// Validation builds a field-scoped validation error, the failure shape of
// the ad lifecycle's Validating state.
func Validation(field, message string) *AppError {
	e := BadRequest(message)
	e.Field = field
	return e
}

// WalletNotConnected blocks every write path that has no vendor address to
// act for.
func WalletNotConnected() *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, "wallet not connected", ErrWalletNotConnected)
}

// AllowanceCheckFailed means the allowance read itself failed; callers must
// treat sufficiency as unknown and block the write path.
func AllowanceCheckFailed(err error) *AppError {
	return NewAppError(http.StatusBadGateway, CodeAllowanceCheck, "could not read token allowance", errors.Join(ErrAllowanceCheckFailed, err))
}

// ApprovalRejected means the signer refused to sign the approval, as opposed
// to the approval tx reverting on chain.
func ApprovalRejected(err error) *AppError {
	return NewAppError(http.StatusBadGateway, CodeApprovalFailed, "token approval rejected", errors.Join(ErrApprovalRejected, err))
}

func ApprovalFailed(err error) *AppError {
	return NewAppError(http.StatusBadGateway, CodeApprovalFailed, "token approval failed", errors.Join(ErrApprovalFailed, err))
}

func TxReverted(txHash string) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, CodeTxReverted, "transaction "+txHash+" reverted", ErrTxReverted)
}

func CancelRejected(message string) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, CodeCancelRejected, message, ErrCancelRejected)
}

func RateUnavailable(message string) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, CodeRateUnavailable, message, ErrRateUnavailable)
}

func OutOfLimitRange(message string) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, CodeOutOfLimitRange, message, ErrOutOfLimitRange)
}

// Transport wraps a chain or network failure verbatim; these are retryable
// by re-invocation.
func Transport(err error) *AppError {
	return NewAppError(http.StatusBadGateway, CodeTransport, err.Error(), errors.Join(ErrTransport, err))
}
